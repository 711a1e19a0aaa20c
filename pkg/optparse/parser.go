// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"io"
	"log/slog"
	"strings"
)

// Settings configures a Parser.
type Settings struct {
	// CaseSensitive controls how option names and the help option match.
	CaseSensitive bool
	// MutuallyExclusive enables the exclusive set check.
	MutuallyExclusive bool
	// IgnoreUnknownArguments skips unknown options instead of failing.
	IgnoreUnknownArguments bool
	// HelpWriter receives the help screen of a Helper target when help is
	// requested or the parse fails. Nil disables the help screen.
	HelpWriter io.Writer
	// Logger receives debug traces. Nil discards them.
	Logger *slog.Logger
}

// DefaultSettings returns case sensitive settings with everything else off.
func DefaultSettings() Settings {
	return Settings{CaseSensitive: true}
}

// Parser binds command-line tokens onto targets. A Parser holds no per-parse
// state and may be reused, but a single target must not be parsed
// concurrently.
type Parser struct {
	settings Settings
	log      *slog.Logger
}

// New returns a Parser configured by s.
func New(s Settings) *Parser {
	log := s.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Parser{settings: s, log: log}
}

// parserState is the outcome of parsing one token.
type parserState int

const (
	stateSuccess parserState = 1 << iota
	stateFailure
	// stateMoveOnNextElement asks the caller to skip the following token
	// because it was consumed as a value.
	stateMoveOnNextElement
)

func (s parserState) has(f parserState) bool { return s&f == f }

// Parse binds args onto t and reports whether the parse succeeded. Errors
// are recorded in t's PostParsingState when t embeds Base.
//
// When a HelpWriter is configured and t is a Helper, Parse writes t.Usage()
// and returns false if the help option is present or the parse fails. A
// help request is recorded in the PostParsingState.
//
// Parse panics with a *ContractError if t declares invalid options.
func (p *Parser) Parse(args []string, t Target) bool {
	if t == nil {
		panic(&ContractError{Reason: "nil target"})
	}
	opts := t.Options()
	if err := Validate(opts); err != nil {
		panic(err)
	}

	state := &PostParsingState{}
	if h, ok := t.(stateHolder); ok {
		state = h.LastPostParsingState()
	}
	state.reset()

	h, ok := t.(Helper)
	if p.settings.HelpWriter == nil || !ok {
		return p.doParse(args, t, opts, state)
	}
	help := p.helpRequested(args, h.HelpOption())
	if help {
		state.setHelpRequested()
	}
	if help || !p.doParse(args, t, opts, state) {
		if _, err := io.WriteString(p.settings.HelpWriter, h.Usage()); err != nil {
			p.log.Debug("optparse: writing help", "err", err)
		}
		return false
	}
	return true
}

// helpRequested scans args for a literal match of the help option.
func (p *Parser) helpRequested(args []string, h HelpOption) bool {
	for _, a := range args {
		if h.ShortName != "" && p.equalName(a, "-"+h.ShortName) {
			return true
		}
		if h.LongName != "" && p.equalName(a, "--"+h.LongName) {
			return true
		}
	}
	return false
}

func (p *Parser) equalName(a, b string) bool {
	if p.settings.CaseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

func (p *Parser) doParse(args []string, t Target, opts []Option, state *PostParsingState) bool {
	m, err := newOptionMap(opts, p.settings.CaseSensitive)
	if err != nil {
		panic(err)
	}
	m.applyDefaults()

	var positional *ValueList
	if vl, ok := t.(ValueLister); ok {
		l := vl.ValueList()
		if l.Values == nil {
			panic(&ContractError{Reason: "value list has no destination"})
		}
		*l.Values = nil
		positional = &l
	}

	ok := true
	ae := newArgEnumerator(args)
	for ae.MoveNext() {
		tok := ae.Current()
		if strings.TrimSpace(tok) == "" {
			continue
		}

		var st parserState
		var errs []ParsingError
		switch {
		case tok == "-" || !strings.HasPrefix(tok, "-"):
			if positional == nil {
				p.log.Debug("optparse: ignoring positional value", "value", tok)
				continue
			}
			if positional.MaximumElements > 0 && len(*positional.Values) >= positional.MaximumElements {
				p.log.Debug("optparse: too many positional values", "value", tok, "max", positional.MaximumElements)
				ok = false
				continue
			}
			*positional.Values = append(*positional.Values, tok)
			continue
		case strings.HasPrefix(tok, "--"):
			st, errs = p.parseLong(ae, m)
		default:
			st, errs = p.parseGroup(ae, m)
		}

		for _, e := range errs {
			p.log.Debug("optparse: parse error", "token", tok, "err", e)
			state.AddError(e)
		}
		if st.has(stateFailure) {
			ok = false
		}
		if st.has(stateMoveOnNextElement) {
			ae.MoveNext()
		}
	}

	if p.settings.MutuallyExclusive && !m.enforceMutualExclusiveness(state) {
		ok = false
	}
	if !m.enforceRequired(state) {
		ok = false
	}
	return ok
}

// isInputValue reports whether a token can be consumed as an option value.
func isInputValue(s string) bool {
	return s == "" || s == "-" || s[0] != '-'
}

// nextInputValues consumes the value tokens that follow the current one and
// leaves the cursor on the last of them.
func nextInputValues(ae *argEnumerator) []string {
	var values []string
	for ae.MoveNext() {
		if !isInputValue(ae.Current()) {
			break
		}
		values = append(values, ae.Current())
	}
	ae.MovePrevious()
	return values
}

func formatError(e *optionEntry, err error) []ParsingError {
	return []ParsingError{{BadOption: e.badOption(), ViolatesFormat: true, Err: err}}
}

// bindAll binds an array option from an explicit first value, if any, and
// the value tokens that follow.
func bindAll(ae *argEnumerator, e *optionEntry, first []string) (parserState, []ParsingError) {
	values := append(first, nextInputValues(ae)...)
	if len(values) == 0 {
		return stateFailure, formatError(e, errMissingValue)
	}
	if err := e.setValues(values); err != nil {
		return stateFailure, formatError(e, err)
	}
	return stateSuccess, nil
}

// bindNext binds the token after the current one, which is consumed even
// when the conversion fails.
func bindNext(ae *argEnumerator, e *optionEntry) (parserState, []ParsingError) {
	next, ok := ae.Next()
	if !ok || !isInputValue(next) {
		return stateFailure, formatError(e, errMissingValue)
	}
	if e.Arity == ArrayArity {
		return bindAll(ae, e, nil)
	}
	if err := e.setValue(next); err != nil {
		return stateFailure | stateMoveOnNextElement, formatError(e, err)
	}
	return stateSuccess | stateMoveOnNextElement, nil
}

// parseLong handles --name, --name=value and --name value.
func (p *Parser) parseLong(ae *argEnumerator, m *optionMap) (parserState, []ParsingError) {
	name, value, hasValue := strings.Cut(strings.TrimPrefix(ae.Current(), "--"), "=")
	e := m.lookup(name)
	if e == nil {
		if p.settings.IgnoreUnknownArguments {
			p.log.Debug("optparse: skipping unknown option", "name", name)
			return stateSuccess, nil
		}
		return stateFailure, []ParsingError{{BadOption: BadOption{LongName: name}, ViolatesUnknown: true}}
	}
	e.defined = true

	if e.IsBoolean() {
		if hasValue {
			return stateFailure, formatError(e, errBoolValue)
		}
		e.setFlag()
		return stateSuccess, nil
	}
	if !hasValue {
		return bindNext(ae, e)
	}
	if e.Arity == ArrayArity {
		return bindAll(ae, e, []string{value})
	}
	if err := e.setValue(value); err != nil {
		return stateFailure, formatError(e, err)
	}
	return stateSuccess, nil
}

// parseGroup handles one or more short options in a single token. Flags may
// be chained; the first option that takes a value ends the group. A group
// naming an unknown option binds nothing.
func (p *Parser) parseGroup(ae *argEnumerator, m *optionMap) (parserState, []ParsingError) {
	body := strings.TrimPrefix(ae.Current(), "-")
	if c, ok := unknownInGroup(body, m); ok {
		if p.settings.IgnoreUnknownArguments {
			p.log.Debug("optparse: skipping token with unknown option", "name", c, "token", ae.Current())
			return stateSuccess, nil
		}
		return stateFailure, []ParsingError{{BadOption: BadOption{ShortName: c}, ViolatesUnknown: true}}
	}

	group := newCharEnumerator(body)
	for group.MoveNext() {
		e := m.lookup(group.Current())
		e.defined = true

		if e.IsBoolean() {
			e.setFlag()
			continue
		}
		rest := group.RemainingFromNext()
		if rest == "" {
			return bindNext(ae, e)
		}
		if e.Arity == ArrayArity {
			return bindAll(ae, e, []string{rest})
		}
		if err := e.setValue(rest); err != nil {
			return stateFailure, formatError(e, err)
		}
		return stateSuccess, nil
	}
	return stateSuccess, nil
}

// unknownInGroup returns the first name in group that matches no option.
// Names after the first option that takes a value are its value.
func unknownInGroup(group string, m *optionMap) (string, bool) {
	for _, r := range group {
		e := m.lookup(string(r))
		if e == nil {
			return string(r), true
		}
		if !e.IsBoolean() {
			break
		}
	}
	return "", false
}
