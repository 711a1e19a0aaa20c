// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optparse binds command-line tokens onto a configuration struct.
//
// A target declares its options as a list of Option values, each bound to
// one of its fields:
//
//	type Flags struct {
//		optparse.Base
//		Directory string
//		Verbose   bool
//	}
//
//	func (f *Flags) Options() []optparse.Option {
//		return []optparse.Option{
//			{ShortName: "d", LongName: "directory", Required: true, Value: optparse.Scalar(&f.Directory)},
//			{ShortName: "v", LongName: "verbose", Value: optparse.Bool(&f.Verbose)},
//		}
//	}
//
// Short options may be grouped (-vi) and take attached values (-d/tmp).
// Long options take their value after '=' or in the next token. Array
// options consume every following token that does not start with '-'.
//
// After the tokens are consumed the parser checks mutually exclusive sets
// (when enabled) and required options. Each check reports at most one
// error. Errors are recorded in the target's PostParsingState when it
// embeds Base, and HelpText can fold them into a help screen.
package optparse
