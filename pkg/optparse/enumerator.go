// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

// argEnumerator is a cursor over the command-line tokens. It starts before
// the first token.
type argEnumerator struct {
	args []string
	pos  int
}

func newArgEnumerator(args []string) *argEnumerator {
	return &argEnumerator{args: args, pos: -1}
}

// Current panics when the cursor is not on a token.
func (e *argEnumerator) Current() string {
	if e.pos < 0 || e.pos >= len(e.args) {
		panic("optparse: enumerator is not positioned on a token")
	}
	return e.args[e.pos]
}

// Next returns the token after the current one without advancing.
func (e *argEnumerator) Next() (string, bool) {
	if e.pos+1 >= len(e.args) {
		return "", false
	}
	return e.args[e.pos+1], true
}

func (e *argEnumerator) IsLast() bool {
	return e.pos >= len(e.args)-1
}

func (e *argEnumerator) MoveNext() bool {
	if e.pos < len(e.args) {
		e.pos++
	}
	return e.pos < len(e.args)
}

// MovePrevious steps back one token. It reports false when already before
// the first token.
func (e *argEnumerator) MovePrevious() bool {
	if e.pos < 0 {
		return false
	}
	e.pos--
	return e.pos >= 0
}

// charEnumerator walks the characters of one grouped short option token,
// with the leading dash removed. It does not support pushback.
type charEnumerator struct {
	chars []rune
	pos   int
}

func newCharEnumerator(s string) *charEnumerator {
	return &charEnumerator{chars: []rune(s), pos: -1}
}

func (e *charEnumerator) Current() string {
	if e.pos < 0 || e.pos >= len(e.chars) {
		panic("optparse: enumerator is not positioned on a character")
	}
	return string(e.chars[e.pos])
}

func (e *charEnumerator) Next() (string, bool) {
	if e.pos+1 >= len(e.chars) {
		return "", false
	}
	return string(e.chars[e.pos+1]), true
}

func (e *charEnumerator) IsLast() bool {
	return e.pos >= len(e.chars)-1
}

func (e *charEnumerator) MoveNext() bool {
	if e.pos < len(e.chars) {
		e.pos++
	}
	return e.pos < len(e.chars)
}

// RemainingFromNext returns the characters after the current one.
func (e *charEnumerator) RemainingFromNext() string {
	if e.pos+1 >= len(e.chars) {
		return ""
	}
	return string(e.chars[e.pos+1:])
}
