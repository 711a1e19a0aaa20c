// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	urlType      = reflect.TypeOf(url.URL{})
	urlPtrType   = reflect.TypeOf((*url.URL)(nil))
	textType     = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// converterFor resolves the string conversion for T once, at declaration
// time. It returns an error if T cannot be converted from a string.
func converterFor[T any]() (func(string) (T, error), error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if err := checkConvertible(t); err != nil {
		return nil, err
	}
	return func(s string) (T, error) {
		var v T
		err := setValue(reflect.ValueOf(&v).Elem(), s)
		return v, err
	}, nil
}

// checkConvertible reports whether setValue can handle t.
func checkConvertible(t reflect.Type) error {
	if reflect.PointerTo(t).Implements(textType) {
		return nil
	}
	switch t {
	case durationType, urlType, urlPtrType:
		return nil
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Ptr:
		return checkConvertible(t.Elem())
	}
	return fmt.Errorf("unsupported value type %s", t)
}

// setValue sets dst from value. Conversions do not depend on the locale.
func setValue(dst reflect.Value, value string) error {
	if dst.CanAddr() {
		if u, ok := dst.Addr().Interface().(encoding.TextUnmarshaler); ok {
			if err := u.UnmarshalText([]byte(value)); err != nil {
				return fmt.Errorf("invalid %s value %q: %w", dst.Type(), value, err)
			}
			return nil
		}
	}

	switch dst.Type() {
	case durationType:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		dst.SetInt(int64(d))
		return nil
	case urlType:
		u, err := url.Parse(value)
		if err != nil {
			return fmt.Errorf("invalid URL %q: %w", value, err)
		}
		dst.Set(reflect.ValueOf(*u))
		return nil
	case urlPtrType:
		u, err := url.Parse(value)
		if err != nil {
			return fmt.Errorf("invalid URL %q: %w", value, err)
		}
		dst.Set(reflect.ValueOf(u))
		return nil
	}

	switch dst.Kind() {
	case reflect.String:
		dst.SetString(value)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value %q: %w", value, err)
		}
		dst.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q: %w", value, err)
		}
		dst.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q: %w", value, err)
		}
		dst.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q: %w", value, err)
		}
		dst.SetFloat(f)
		return nil

	case reflect.Ptr:
		v := reflect.New(dst.Type().Elem())
		if err := setValue(v.Elem(), value); err != nil {
			return err
		}
		dst.Set(v)
		return nil
	}
	return fmt.Errorf("unsupported value type %s", dst.Type())
}
