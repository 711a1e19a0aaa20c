// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNoName is returned by Validate when an option declares neither a short
// nor a long name.
var ErrNoName = errors.New("option must have a short or a long name")

// ContractError reports a mistake in the option declarations themselves, as
// opposed to a mistake in the user's command line. Validate returns it and
// Parse panics with it.
type ContractError struct {
	Option string // canonical name of the offending option, if known
	Reason string
	Err    error
}

func (e *ContractError) Error() string {
	var b strings.Builder
	b.WriteString("optparse: ")
	if e.Option != "" {
		fmt.Fprintf(&b, "option %q: ", e.Option)
	}
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// BadOption names the option a ParsingError refers to.
type BadOption struct {
	ShortName string
	LongName  string
}

func (o BadOption) String() string {
	var b strings.Builder
	if o.ShortName != "" {
		b.WriteString("-")
		b.WriteString(o.ShortName)
		if o.LongName != "" {
			b.WriteString("/")
		}
	}
	if o.LongName != "" {
		b.WriteString("--")
		b.WriteString(o.LongName)
	}
	return b.String()
}

// ParsingError is a user-facing problem found while parsing a command line.
// More than one violation flag may be set for the same option.
type ParsingError struct {
	BadOption BadOption

	ViolatesRequired            bool
	ViolatesFormat              bool
	ViolatesMutualExclusiveness bool
	ViolatesUnknown             bool

	// Err is the underlying conversion error for format violations.
	Err error
}

func (e ParsingError) Error() string {
	return e.BadOption.String() + " " + composeClauses(EnglishSentenceBuilder{}, e)
}

func (e ParsingError) Unwrap() error {
	return e.Err
}

// composeClauses renders the violation part of an error line, without the
// option name or the trailing period.
func composeClauses(sb SentenceBuilder, e ParsingError) string {
	var b strings.Builder
	if e.ViolatesRequired {
		b.WriteString(sb.RequiredOptionMissingText())
	} else {
		b.WriteString(sb.OptionWord())
	}
	if e.ViolatesFormat {
		b.WriteString(" ")
		b.WriteString(sb.ViolatesFormatText())
	}
	if e.ViolatesUnknown {
		b.WriteString(" ")
		b.WriteString(sb.UnknownOptionText())
	}
	if e.ViolatesMutualExclusiveness {
		if e.ViolatesFormat || e.ViolatesRequired || e.ViolatesUnknown {
			b.WriteString(" ")
			b.WriteString(sb.AndWord())
		}
		b.WriteString(" ")
		b.WriteString(sb.ViolatesMutualExclusivenessText())
	}
	return b.String()
}

// PostParsingState collects the ParsingErrors of the last parse of a target.
// It is append-only while a parse runs.
type PostParsingState struct {
	mu     sync.Mutex
	errors []ParsingError
	help   bool
}

// AddError appends e to the state.
func (s *PostParsingState) AddError(e ParsingError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, e)
}

// Errors returns a copy of the collected errors.
func (s *PostParsingState) Errors() []ParsingError {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.errors) == 0 {
		return nil
	}
	out := make([]ParsingError, len(s.errors))
	copy(out, s.errors)
	return out
}

// Err joins the collected errors, or returns nil when there are none.
func (s *PostParsingState) Err() error {
	errs := s.Errors()
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}

// HelpRequested reports whether the last parse stopped because the help
// option was given.
func (s *PostParsingState) HelpRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.help
}

func (s *PostParsingState) setHelpRequested() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.help = true
}

func (s *PostParsingState) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = nil
	s.help = false
}

// Base is embedded in a target struct to receive the errors of the last parse.
//
//	type Flags struct {
//	    optparse.Base
//	    Directory string
//	}
type Base struct {
	state PostParsingState
}

// LastPostParsingState returns the errors recorded by the most recent parse.
func (b *Base) LastPostParsingState() *PostParsingState {
	return &b.state
}

type stateHolder interface {
	LastPostParsingState() *PostParsingState
}
