// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"errors"
	"net/netip"
	"net/url"
	"reflect"
	"strconv"
	"testing"
	"time"
)

func TestScalar(t *testing.T) {
	var (
		s   string
		i   int
		i8  int8
		u   uint16
		f   float64
		d   time.Duration
		u1  url.URL
		u2  *url.URL
		ip  netip.Addr
		ptr *int
	)

	tests := []struct {
		name  string
		b     Binding
		value string
		check func() bool
	}{
		{"string", Scalar(&s), `C:\logs`, func() bool { return s == `C:\logs` }},
		{"int", Scalar(&i), "-42", func() bool { return i == -42 }},
		{"int8", Scalar(&i8), "127", func() bool { return i8 == 127 }},
		{"uint16", Scalar(&u), "65535", func() bool { return u == 65535 }},
		{"float64", Scalar(&f), "1.5", func() bool { return f == 1.5 }},
		{"duration", Scalar(&d), "1m30s", func() bool { return d == 90*time.Second }},
		{"url", Scalar(&u1), "https://example.com/x", func() bool { return u1.Host == "example.com" }},
		{"url pointer", Scalar(&u2), "https://example.com/y", func() bool { return u2 != nil && u2.Path == "/y" }},
		{"text unmarshaler", Scalar(&ip), "10.0.0.1", func() bool { return ip == netip.MustParseAddr("10.0.0.1") }},
		{"pointer", Scalar(&ptr), "7", func() bool { return ptr != nil && *ptr == 7 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.b.kind != bindScalar {
				t.Fatalf("kind = %v, want %v", tt.b.kind, bindScalar)
			}
			if err := tt.b.setString(tt.value); err != nil {
				t.Fatalf("setString(%q) error = %v", tt.value, err)
			}
			if !tt.check() {
				t.Errorf("setString(%q) bound the wrong value", tt.value)
			}
		})
	}
}

func TestScalar_ConversionErrors(t *testing.T) {
	var (
		i8 int8
		u  uint
		f  float32
		b  bool
		ip netip.Addr
	)

	tests := []struct {
		name    string
		b       Binding
		value   string
		wantErr error
	}{
		{"overflow", Scalar(&i8), "300", strconv.ErrRange},
		{"negative uint", Scalar(&u), "-1", strconv.ErrSyntax},
		{"bad float", Scalar(&f), "one", strconv.ErrSyntax},
		{"bad int", Scalar(&i8), "1.0", strconv.ErrSyntax},
		{"text unmarshaler", Scalar(&ip), "not-an-ip", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.setString(tt.value)
			if err == nil {
				t.Fatalf("setString(%q) succeeded", tt.value)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("setString(%q) error = %v, want %v", tt.value, err, tt.wantErr)
			}
		})
	}

	// bool fields are flags, so a Bool binding has no string setter.
	if bb := Scalar(&b); bb.kind != bindBool || bb.setString != nil {
		t.Errorf("Scalar(*bool) kind = %v, want %v", bb.kind, bindBool)
	}
}

func TestScalar_UnsupportedTypePanics(t *testing.T) {
	defer func() {
		r := recover()
		var ce *ContractError
		if err, ok := r.(error); !ok || !errors.As(err, &ce) {
			t.Fatalf("recover() = %v, want *ContractError", r)
		}
	}()
	var v struct{ X int }
	Scalar(&v)
}

type level int

func TestEnum(t *testing.T) {
	var l level
	b := Enum(&l, map[string]level{"Debug": 1, "info": 2})

	if err := b.setString("DEBUG"); err != nil || l != 1 {
		t.Errorf("setString(\"DEBUG\") = %v, level = %d, want nil, 1", err, l)
	}
	if err := b.setString("Info"); err != nil || l != 2 {
		t.Errorf("setString(\"Info\") = %v, level = %d, want nil, 2", err, l)
	}
	if err := b.setString("trace"); err == nil {
		t.Error("setString(\"trace\") succeeded")
	}
	if l != 2 {
		t.Errorf("failed setString changed the value to %d", l)
	}
}

func TestNullable(t *testing.T) {
	var p *int
	b := Nullable(&p)

	if p != nil {
		t.Fatal("Nullable bound a value at construction")
	}
	if err := b.setString(""); !errors.Is(err, errEmptyValue) {
		t.Errorf("setString(\"\") error = %v, want %v", err, errEmptyValue)
	}
	if p != nil {
		t.Error("empty value bound a pointer")
	}
	if err := b.setString("4"); err != nil || p == nil || *p != 4 {
		t.Errorf("setString(\"4\") = %v, want 4", err)
	}

	if !b.acceptsDefault(3) || !b.acceptsDefault(new(int)) || b.acceptsDefault("3") {
		t.Error("acceptsDefault should take int and *int only")
	}
	b.setDefault(9)
	if p == nil || *p != 9 {
		t.Errorf("setDefault(9) = %v", p)
	}
	n := 11
	b.setDefault(&n)
	if p != &n {
		t.Error("setDefault(*int) should keep the pointer")
	}
}

func TestArray(t *testing.T) {
	var got []int
	b := Array(&got)

	if err := b.setArray([]string{"1", "2", "3"}); err != nil {
		t.Fatalf("setArray() error = %v", err)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	err := b.setArray([]string{"4", "x", "6"})
	if err == nil {
		t.Fatal("setArray() with a bad element succeeded")
	}
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("setArray() error = %v, want a syntax error", err)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("failed setArray() left %v, want %v", got, want)
	}
}

func TestList(t *testing.T) {
	var got []string
	b := List(&got)

	b.setList("log:txt::out", ':')
	if want := []string{"log", "txt", "", "out"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
	b.setList("a;b", ';')
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBinding_IsZero(t *testing.T) {
	if !(Binding{}).IsZero() {
		t.Error("zero Binding IsZero() = false")
	}
	var s string
	if Scalar(&s).IsZero() {
		t.Error("Scalar binding IsZero() = true")
	}
}
