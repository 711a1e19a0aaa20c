// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaximumDisplayWidth is the help width when none is set.
	DefaultMaximumDisplayWidth = 80
	// DefaultRequiredWord prefixes the help text of required options.
	DefaultRequiredWord = "Required."

	optionIndent = "  "
	optionGutter = "    "

	// Below this many columns of help text, an option's help goes on the
	// lines after its name instead of beside it.
	minOptionTextWidth = 16
)

// HelpText builds a help screen. Lines and options are stored as given and
// laid out by String, so rendering never changes the HelpText.
type HelpText struct {
	Heading string

	// MaximumDisplayWidth bounds every rendered line. Zero means
	// DefaultMaximumDisplayWidth.
	MaximumDisplayWidth int

	AddDashesToOption            bool
	AdditionalNewLineAfterOption bool

	// RequiredWord is prepended to the help text of required options. Empty
	// means DefaultRequiredWord.
	RequiredWord string

	// SentenceBuilder renders error lines. Nil means English.
	SentenceBuilder SentenceBuilder

	// FormatOptionHelpText may rewrite an option's help text, including the
	// required word, right before it is wrapped.
	FormatOptionHelpText func(opt Option, text string) string

	pre     []string
	post    []string
	options []Option
}

// AutoBuild returns a HelpText for t with dashes and a blank line after
// every option. Errors of the last parse of t are folded into the
// preamble.
func AutoBuild(t Target, heading HeadingInfo) *HelpText {
	h := &HelpText{
		Heading:                      heading.String(),
		AddDashesToOption:            true,
		AdditionalNewLineAfterOption: true,
	}
	h.AddParsingErrors(t)
	h.AddOptions(t)
	return h
}

func (h *HelpText) width() int {
	if h.MaximumDisplayWidth <= 0 {
		return DefaultMaximumDisplayWidth
	}
	return h.MaximumDisplayWidth
}

func (h *HelpText) requiredWord() string {
	if h.RequiredWord == "" {
		return DefaultRequiredWord
	}
	return h.RequiredWord
}

func (h *HelpText) sentenceBuilder() SentenceBuilder {
	if h.SentenceBuilder == nil {
		return EnglishSentenceBuilder{}
	}
	return h.SentenceBuilder
}

// AddPreOptionsLine adds a line above the options. Embedded newlines start
// new lines and leading spaces are kept on every wrapped line.
func (h *HelpText) AddPreOptionsLine(s string) {
	h.pre = append(h.pre, s)
}

// AddPostOptionsLine adds a line below the options.
func (h *HelpText) AddPostOptionsLine(s string) {
	h.post = append(h.post, s)
}

// AddOptions adds the options of t, followed by its help option if t is a
// Helper. Calling it again replaces the previous options.
func (h *HelpText) AddOptions(t Target) {
	opts := append([]Option(nil), t.Options()...)
	if hp, ok := t.(Helper); ok {
		if ho := hp.HelpOption(); ho.ShortName != "" || ho.LongName != "" {
			opts = append(opts, ho.option())
		}
	}
	h.options = opts
}

// AddParsingErrors adds the errors of the last parse of t to the preamble,
// under the errors heading. It does nothing if there are none.
func (h *HelpText) AddParsingErrors(t Target) {
	sh, ok := t.(stateHolder)
	if !ok {
		return
	}
	errs := sh.LastPostParsingState().Errors()
	if len(errs) == 0 {
		return
	}
	h.AddPreOptionsLine("\n" + h.sentenceBuilder().ErrorsHeadingText())
	for _, line := range strings.Split(strings.TrimSuffix(h.RenderParsingErrorsText(errs, 2), "\n"), "\n") {
		h.AddPreOptionsLine(line)
	}
}

// RenderParsingErrorsText renders one line per error, each indented by
// indent spaces and ending in a period.
func (h *HelpText) RenderParsingErrorsText(errs []ParsingError, indent int) string {
	if len(errs) == 0 {
		return ""
	}
	sb := h.sentenceBuilder()
	pad := strings.Repeat(" ", max(indent, 0))
	var b strings.Builder
	for _, e := range errs {
		b.WriteString(pad)
		b.WriteString(e.BadOption.String())
		b.WriteString(" ")
		b.WriteString(composeClauses(sb, e))
		b.WriteString(".\n")
	}
	return b.String()
}

// String lays out the heading, the preamble, the options and the
// postamble, separated by blank lines.
func (h *HelpText) String() string {
	var blocks []string
	if h.Heading != "" {
		blocks = append(blocks, h.Heading)
	}
	if s := h.renderLines(h.pre); s != "" {
		blocks = append(blocks, s)
	}
	if s := h.renderOptions(); s != "" {
		blocks = append(blocks, s)
	}
	if s := h.renderLines(h.post); s != "" {
		blocks = append(blocks, s)
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func (h *HelpText) renderLines(values []string) string {
	var out []string
	for _, v := range values {
		for _, para := range strings.Split(v, "\n") {
			if strings.TrimSpace(para) == "" {
				out = append(out, "")
				continue
			}
			out = append(out, wrapIndented(para, h.width())...)
		}
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

func (h *HelpText) optionName(o Option) string {
	var b strings.Builder
	if o.ShortName != "" {
		if h.AddDashesToOption {
			b.WriteString("-")
		}
		b.WriteString(o.ShortName)
		if o.LongName != "" {
			b.WriteString(", ")
		}
	}
	if o.LongName != "" {
		if h.AddDashesToOption {
			b.WriteString("--")
		}
		b.WriteString(o.LongName)
	}
	return b.String()
}

func (h *HelpText) renderOptions() string {
	if len(h.options) == 0 {
		return ""
	}
	maxLen := 0
	for _, o := range h.options {
		maxLen = max(maxLen, utf8.RuneCountInString(h.optionName(o)))
	}
	column := len(optionIndent) + maxLen + len(optionGutter)
	width := h.width() - column
	stacked := width < minOptionTextWidth
	cont := strings.Repeat(" ", column)

	entries := make([]string, 0, len(h.options))
	for _, o := range h.options {
		name := h.optionName(o)
		prefix := optionIndent + name + strings.Repeat(" ", maxLen-utf8.RuneCountInString(name)) + optionGutter

		text := o.HelpText
		if o.Required {
			text = strings.TrimSpace(h.requiredWord() + " " + text)
		}
		if h.FormatOptionHelpText != nil {
			text = h.FormatOptionHelpText(o, text)
		}

		if stacked {
			lines := wrapIndented(optionIndent+name, h.width())
			if text != "" {
				lines = append(lines, wrapIndented(optionIndent+optionGutter+text, h.width())...)
			}
			entries = append(entries, strings.Join(lines, "\n"))
			continue
		}

		lines := wrapText(text, width)
		if len(lines) == 0 {
			entries = append(entries, strings.TrimRight(prefix, " "))
			continue
		}
		var b strings.Builder
		b.WriteString(prefix)
		b.WriteString(lines[0])
		for _, l := range lines[1:] {
			b.WriteString("\n")
			b.WriteString(cont)
			b.WriteString(l)
		}
		entries = append(entries, b.String())
	}
	sep := "\n"
	if h.AdditionalNewLineAfterOption {
		sep = "\n\n"
	}
	return strings.Join(entries, sep)
}

// wrapIndented wraps s to width, repeating its leading spaces on every line.
func wrapIndented(s string, width int) []string {
	body := strings.TrimLeft(s, " ")
	indent := s[:len(s)-len(body)]
	if len(indent) >= width {
		indent = ""
	}
	lines := wrapText(body, width-len(indent))
	for i := range lines {
		lines[i] = indent + lines[i]
	}
	return lines
}

// wrapText breaks text on spaces into lines of at most width characters.
// A word longer than width is split across lines.
func wrapText(text string, width int) []string {
	width = max(width, 1)
	var (
		lines  []string
		cur    strings.Builder
		curLen int
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curLen = 0
	}
	for _, w := range strings.Split(text, " ") {
		if w == "" {
			continue
		}
		r := []rune(w)
		for len(r) > width {
			if curLen > 0 {
				flush()
			}
			lines = append(lines, string(r[:width]))
			r = r[width:]
		}
		if len(r) == 0 {
			continue
		}
		if curLen > 0 && curLen+1+len(r) > width {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(string(r))
		curLen += len(r)
	}
	if curLen > 0 {
		flush()
	}
	return lines
}
