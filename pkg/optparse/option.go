// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Arity describes how many values an option binds.
type Arity int

const (
	// ScalarArity options bind one value, or none for booleans.
	ScalarArity Arity = iota
	// ArrayArity options bind every value that follows them.
	ArrayArity
	// DelimitedList options bind one value split on a separator.
	DelimitedList
)

func (a Arity) String() string {
	switch a {
	case ScalarArity:
		return "scalar"
	case ArrayArity:
		return "array"
	case DelimitedList:
		return "list"
	default:
		return fmt.Sprintf("Arity(%d)", int(a))
	}
}

// DefaultSeparator splits DelimitedList values when Option.Separator is zero.
const DefaultSeparator = ':'

// Option declares one command-line option bound to a field of the target.
type Option struct {
	ShortName string // at most one character
	LongName  string

	Required bool

	// DefaultValue is assigned before parsing starts. Its dynamic type must
	// match the binding: T for Scalar and Enum, T or *T for Nullable, []T for
	// Array, []string for List and bool for Bool.
	DefaultValue any

	HelpText string

	// MutuallyExclusiveSet groups options of which at most one may be given.
	MutuallyExclusiveSet string

	Arity     Arity
	Separator rune

	Value Binding
}

// CanonicalName is the short name if there is one, else the long name.
func (o Option) CanonicalName() string {
	if o.ShortName != "" {
		return o.ShortName
	}
	return o.LongName
}

// HasBothNames reports whether the option has a short and a long name.
func (o Option) HasBothNames() bool {
	return o.ShortName != "" && o.LongName != ""
}

// IsBoolean reports whether the option is a flag that takes no value.
func (o Option) IsBoolean() bool {
	return o.Value.kind == bindBool
}

func (o Option) separator() rune {
	if o.Separator == 0 {
		return DefaultSeparator
	}
	return o.Separator
}

func (o Option) badOption() BadOption {
	return BadOption{ShortName: o.ShortName, LongName: o.LongName}
}

// Validate checks a single declaration.
func (o Option) Validate() error {
	if strings.TrimSpace(o.ShortName) == "" && strings.TrimSpace(o.LongName) == "" {
		return ErrNoName
	}
	name := o.CanonicalName()
	if utf8.RuneCountInString(o.ShortName) > 1 {
		return &ContractError{Option: name, Reason: "short name must be a single character"}
	}
	if strings.HasPrefix(o.ShortName, "-") || strings.HasPrefix(o.LongName, "-") {
		return &ContractError{Option: name, Reason: "names must not start with a dash"}
	}
	if strings.ContainsAny(o.LongName, "= ") {
		return &ContractError{Option: name, Reason: "long name must not contain '=' or spaces"}
	}
	if o.Value.IsZero() {
		return &ContractError{Option: name, Reason: "option has no binding"}
	}

	switch o.Arity {
	case ScalarArity:
		if o.Value.kind == bindArray || o.Value.kind == bindList {
			return &ContractError{Option: name, Reason: fmt.Sprintf("scalar option bound to %s field", o.Value.typeName)}
		}
	case ArrayArity:
		if o.Value.kind != bindArray {
			return &ContractError{Option: name, Reason: fmt.Sprintf("array option bound to non-array %s field", o.Value.typeName)}
		}
	case DelimitedList:
		if o.Value.kind != bindList {
			return &ContractError{Option: name, Reason: fmt.Sprintf("list option bound to %s field", o.Value.typeName)}
		}
	default:
		return &ContractError{Option: name, Reason: fmt.Sprintf("unknown arity %v", o.Arity)}
	}
	if o.Separator != 0 && o.Arity != DelimitedList {
		return &ContractError{Option: name, Reason: "separator is only valid on list options"}
	}

	if o.DefaultValue != nil && !o.Value.acceptsDefault(o.DefaultValue) {
		return &ContractError{
			Option: name,
			Reason: fmt.Sprintf("bad default value of type %T for %s field", o.DefaultValue, o.Value.typeName),
		}
	}
	return nil
}

// Validate checks a set of declarations the way a parse would see them:
// every option must be valid and canonical names must be unique.
func Validate(opts []Option) error {
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if err := o.Validate(); err != nil {
			return err
		}
		name := o.CanonicalName()
		if seen[name] {
			return &ContractError{Option: name, Reason: "duplicate option name"}
		}
		seen[name] = true
		if o.HasBothNames() {
			if seen[o.LongName] {
				return &ContractError{Option: name, Reason: fmt.Sprintf("long name %q is already in use", o.LongName)}
			}
			seen[o.LongName] = true
		}
	}
	return nil
}

// HelpOption designates the option that asks for the help screen.
type HelpOption struct {
	ShortName string
	LongName  string
	HelpText  string
}

// DefaultHelpText is used when a HelpOption has no help text.
const DefaultHelpText = "Display this help screen."

// DefaultHelpOption is --help with the default help text.
func DefaultHelpOption() HelpOption {
	return HelpOption{LongName: "help", HelpText: DefaultHelpText}
}

func (h HelpOption) option() Option {
	text := h.HelpText
	if text == "" {
		text = DefaultHelpText
	}
	return Option{ShortName: h.ShortName, LongName: h.LongName, HelpText: text}
}

// Target is a configuration object that declares its options. Options is
// called once per parse; the returned bindings write into the target.
type Target interface {
	Options() []Option
}

// Helper is a Target with a help option and a help screen.
type Helper interface {
	Target
	HelpOption() HelpOption
	Usage() string
}

// ValueList receives positional values. MaximumElements <= 0 means no limit.
type ValueList struct {
	Values          *[]string
	MaximumElements int
}

// ValueLister is a Target that collects positional values.
type ValueLister interface {
	ValueList() ValueList
}
