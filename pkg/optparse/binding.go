// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

type bindingKind int

const (
	bindBool bindingKind = iota + 1
	bindScalar
	bindNullable
	bindArray
	bindList
)

func (k bindingKind) String() string {
	switch k {
	case bindBool:
		return "bool"
	case bindScalar:
		return "scalar"
	case bindNullable:
		return "nullable"
	case bindArray:
		return "array"
	case bindList:
		return "list"
	default:
		return "invalid"
	}
}

var (
	errEmptyValue   = errors.New("an explicit value is required")
	errBoolValue    = errors.New("flag does not take a value")
	errMissingValue = errors.New("missing value")
)

// Binding connects an Option to the field it writes. Construct one with
// Bool, Scalar, Enum, Nullable, Array or List; the conversion is resolved
// when the Binding is built and never again per token.
type Binding struct {
	kind     bindingKind
	typeName string

	setBool   func(bool)
	setString func(string) error
	setList   func(string, rune)
	setArray  func([]string) error

	acceptsDefault func(any) bool
	setDefault     func(any)
}

// IsZero reports whether b was never initialized.
func (b Binding) IsZero() bool {
	return b.kind == 0
}

// Bool binds a flag that is set to true when present and takes no value.
func Bool(p *bool) Binding {
	return Binding{
		kind:     bindBool,
		typeName: "bool",
		setBool:  func(v bool) { *p = v },
		acceptsDefault: func(v any) bool {
			_, ok := v.(bool)
			return ok
		},
		setDefault: func(v any) { *p = v.(bool) },
	}
}

// Scalar binds a single value of type T. A *bool target yields the same
// binding as Bool. Scalar panics with a *ContractError if T cannot be
// converted from a string.
func Scalar[T any](p *T) Binding {
	if bp, ok := any(p).(*bool); ok {
		return Bool(bp)
	}
	conv, err := converterFor[T]()
	if err != nil {
		panic(&ContractError{Reason: "bad scalar binding", Err: err})
	}
	return Binding{
		kind:     bindScalar,
		typeName: typeNameOf[T](),
		setString: func(s string) error {
			v, err := conv(s)
			if err != nil {
				return err
			}
			*p = v
			return nil
		},
		acceptsDefault: acceptsType[T],
		setDefault:     func(v any) { *p = v.(T) },
	}
}

// Enum binds a value chosen by name from names. Matching ignores case.
func Enum[T any](p *T, names map[string]T) Binding {
	lower := make(map[string]T, len(names))
	for name, v := range names {
		lower[strings.ToLower(name)] = v
	}
	return Binding{
		kind:     bindScalar,
		typeName: typeNameOf[T](),
		setString: func(s string) error {
			v, ok := lower[strings.ToLower(s)]
			if !ok {
				return fmt.Errorf("unknown %s %q", typeNameOf[T](), s)
			}
			*p = v
			return nil
		},
		acceptsDefault: acceptsType[T],
		setDefault:     func(v any) { *p = v.(T) },
	}
}

// Nullable binds an optional value of type T. The pointer stays nil unless
// the option is given an explicit, non-empty value.
func Nullable[T any](p **T) Binding {
	conv, err := converterFor[T]()
	if err != nil {
		panic(&ContractError{Reason: "bad nullable binding", Err: err})
	}
	return Binding{
		kind:     bindNullable,
		typeName: typeNameOf[T](),
		setString: func(s string) error {
			if s == "" {
				return errEmptyValue
			}
			v, err := conv(s)
			if err != nil {
				return err
			}
			*p = &v
			return nil
		},
		acceptsDefault: func(v any) bool {
			switch v.(type) {
			case T, *T:
				return true
			}
			return false
		},
		setDefault: func(v any) {
			switch d := v.(type) {
			case T:
				*p = &d
			case *T:
				*p = d
			}
		},
	}
}

// Array binds every value following the option, converted to T. A single
// bad element fails the whole bind and leaves the slice untouched.
func Array[T any](p *[]T) Binding {
	conv, err := converterFor[T]()
	if err != nil {
		panic(&ContractError{Reason: "bad array binding", Err: err})
	}
	return Binding{
		kind:     bindArray,
		typeName: "[]" + typeNameOf[T](),
		setArray: func(values []string) error {
			out := make([]T, len(values))
			for i, s := range values {
				v, err := conv(s)
				if err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}
				out[i] = v
			}
			*p = out
			return nil
		},
		acceptsDefault: acceptsType[[]T],
		setDefault:     func(v any) { *p = v.([]T) },
	}
}

// List binds a single value split on the option's separator. Items are kept
// verbatim.
func List(p *[]string) Binding {
	return Binding{
		kind:     bindList,
		typeName: "[]string",
		setList: func(s string, sep rune) {
			*p = append([]string(nil), strings.Split(s, string(sep))...)
		},
		acceptsDefault: acceptsType[[]string],
		setDefault:     func(v any) { *p = v.([]string) },
	}
}

func acceptsType[T any](v any) bool {
	_, ok := v.(T)
	return ok
}

func typeNameOf[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
