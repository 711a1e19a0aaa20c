// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

// SentenceBuilder supplies the words used to render errors and help.
type SentenceBuilder interface {
	OptionWord() string
	AndWord() string
	RequiredOptionMissingText() string
	ViolatesFormatText() string
	ViolatesMutualExclusivenessText() string
	UnknownOptionText() string
	ErrorsHeadingText() string
}

// EnglishSentenceBuilder is the default SentenceBuilder.
type EnglishSentenceBuilder struct{}

func (EnglishSentenceBuilder) OptionWord() string                { return "option" }
func (EnglishSentenceBuilder) AndWord() string                   { return "and" }
func (EnglishSentenceBuilder) RequiredOptionMissingText() string { return "required option is missing" }
func (EnglishSentenceBuilder) ViolatesFormatText() string        { return "violates format" }
func (EnglishSentenceBuilder) ViolatesMutualExclusivenessText() string {
	return "violates mutual exclusiveness"
}
func (EnglishSentenceBuilder) UnknownOptionText() string { return "is unknown" }
func (EnglishSentenceBuilder) ErrorsHeadingText() string { return "ERROR(S):" }
