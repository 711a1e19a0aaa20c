// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"strings"
	"sync"
)

// optionEntry is the per-parse state of one declared option.
type optionEntry struct {
	Option

	mu      sync.Mutex // guards writes through Value
	defined bool
}

func (e *optionEntry) setFlag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Value.setBool(true)
}

// setValue binds a single value. Array options receive it as a one element
// array and list options split it on their separator.
func (e *optionEntry) setValue(v string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.Value.kind {
	case bindList:
		e.Value.setList(v, e.separator())
		return nil
	case bindArray:
		return e.Value.setArray([]string{v})
	case bindBool:
		return errBoolValue
	}
	return e.Value.setString(v)
}

func (e *optionEntry) setValues(vs []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Value.setArray(vs)
}

func (e *optionEntry) applyDefault() {
	if e.DefaultValue == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Value.setDefault(e.DefaultValue)
}

// optionMap indexes the options of one parse by canonical name. Long names
// of options that also have a short name resolve through aliases.
type optionMap struct {
	caseSensitive bool
	byName        map[string]*optionEntry
	aliases       map[string]string
	order         []*optionEntry
}

func newOptionMap(opts []Option, caseSensitive bool) (*optionMap, error) {
	m := &optionMap{
		caseSensitive: caseSensitive,
		byName:        make(map[string]*optionEntry, len(opts)),
		aliases:       make(map[string]string),
		order:         make([]*optionEntry, 0, len(opts)),
	}
	for _, o := range opts {
		e := &optionEntry{Option: o}
		name := m.key(o.CanonicalName())
		if _, ok := m.byName[name]; ok {
			return nil, &ContractError{Option: o.CanonicalName(), Reason: "duplicate option name"}
		}
		m.byName[name] = e
		if o.HasBothNames() {
			long := m.key(o.LongName)
			if _, ok := m.aliases[long]; ok {
				return nil, &ContractError{Option: o.CanonicalName(), Reason: "duplicate long name " + o.LongName}
			}
			m.aliases[long] = name
		}
		m.order = append(m.order, e)
	}
	return m, nil
}

func (m *optionMap) key(name string) string {
	if m.caseSensitive {
		return name
	}
	return strings.ToLower(name)
}

// lookup finds an option by short or long name.
func (m *optionMap) lookup(name string) *optionEntry {
	k := m.key(name)
	if short, ok := m.aliases[k]; ok {
		k = short
	}
	return m.byName[k]
}

func (m *optionMap) applyDefaults() {
	for _, e := range m.order {
		e.applyDefault()
	}
}
