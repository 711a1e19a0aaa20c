// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import "strings"

// enforceMutualExclusiveness reports the first exclusive set with more than
// one defined member, against the first defined member of that set.
func (m *optionMap) enforceMutualExclusiveness(state *PostParsingState) bool {
	first := make(map[string]*optionEntry)
	for _, e := range m.order {
		if !e.defined || e.MutuallyExclusiveSet == "" {
			continue
		}
		set := strings.ToLower(e.MutuallyExclusiveSet)
		rep, seen := first[set]
		if !seen {
			first[set] = e
			continue
		}
		state.AddError(ParsingError{
			BadOption:                   rep.badOption(),
			ViolatesMutualExclusiveness: true,
		})
		return false
	}
	return true
}

// enforceRequired reports the first required option that was not given.
func (m *optionMap) enforceRequired(state *PostParsingState) bool {
	for _, e := range m.order {
		if e.Required && !e.defined {
			state.AddError(ParsingError{
				BadOption:        e.badOption(),
				ViolatesRequired: true,
			})
			return false
		}
	}
	return true
}
