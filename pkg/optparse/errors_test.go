// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"errors"
	"io"
	"testing"
)

func TestBadOption_String(t *testing.T) {
	tests := []struct {
		opt  BadOption
		want string
	}{
		{BadOption{"d", "directory"}, "-d/--directory"},
		{BadOption{ShortName: "d"}, "-d"},
		{BadOption{LongName: "directory"}, "--directory"},
		{BadOption{}, ""},
	}
	for _, tt := range tests {
		if got := tt.opt.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.opt, got, tt.want)
		}
	}
}

func TestParsingError_Error(t *testing.T) {
	e := ParsingError{BadOption: BadOption{"d", "directory"}, ViolatesRequired: true}
	if got, want := e.Error(), "-d/--directory required option is missing"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	e = ParsingError{BadOption: BadOption{ShortName: "n"}, ViolatesFormat: true, Err: io.ErrUnexpectedEOF}
	if !errors.Is(e, io.ErrUnexpectedEOF) {
		t.Error("ParsingError does not unwrap its cause")
	}
}

func TestContractError(t *testing.T) {
	e := &ContractError{Option: "d", Reason: "bad default value", Err: io.EOF}
	if got, want := e.Error(), `optparse: option "d": bad default value: EOF`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(e, io.EOF) {
		t.Error("ContractError does not unwrap its cause")
	}
	if got, want := (&ContractError{Reason: "nil target"}).Error(), "optparse: nil target"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
