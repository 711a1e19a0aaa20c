// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli declares the clearlogs command-line options.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/yeetrun/clearlogs/pkg/compress"
	"github.com/yeetrun/clearlogs/pkg/config"
	"github.com/yeetrun/clearlogs/pkg/logging"
	"github.com/yeetrun/clearlogs/pkg/optparse"
)

const ProgramName = "ClearLogs"

// Flags is the parsed clearlogs command line.
type Flags struct {
	optparse.Base

	Directory   string
	Verbose     bool
	Quiet       bool
	Interactive bool
	Parallel    *int
	Extensions  []string
	Exclude     []string
	Archive     compress.Format
	LogLevel    slog.Level
	LogFile     string

	// Files are the positional file names. When set, only they are cleared.
	Files []string

	// Version is shown in the help heading.
	Version string
	// DisplayWidth is the help screen width. Zero means 80 columns.
	DisplayWidth int

	defaults *config.Config
}

// NewFlags returns Flags whose defaults come from cfg, which may be nil.
func NewFlags(version string, cfg *config.Config) *Flags {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Flags{Version: version, defaults: cfg}
}

// Options implements optparse.Target.
func (f *Flags) Options() []optparse.Option {
	cfg := f.defaults
	if cfg == nil {
		cfg = &config.Config{}
	}

	opts := []optparse.Option{
		{
			ShortName: "d", LongName: "directory",
			Required: cfg.Directory == "",
			HelpText: "Denotes log directory.",
			Value:    optparse.Scalar(&f.Directory),
		},
		{
			ShortName: "v", LongName: "verbose",
			DefaultValue:         true,
			HelpText:             "Prints all messages to standard output.",
			MutuallyExclusiveSet: "output",
			Value:                optparse.Bool(&f.Verbose),
		},
		{
			ShortName: "q", LongName: "quiet",
			HelpText:             "Prints nothing but errors.",
			MutuallyExclusiveSet: "output",
			Value:                optparse.Bool(&f.Quiet),
		},
		{
			ShortName: "i", LongName: "interactive",
			DefaultValue: cfg.Interactive,
			HelpText:     "Interactive mode between clearing logs.",
			Value:        optparse.Bool(&f.Interactive),
		},
		{
			ShortName: "p", LongName: "parallel",
			HelpText: "Clears up to this many files at once.",
			Value:    optparse.Nullable(&f.Parallel),
		},
		{
			ShortName: "e", LongName: "extensions",
			Arity:    optparse.DelimitedList,
			HelpText: "Only clears files with these extensions, separated by ':'.",
			Value:    optparse.List(&f.Extensions),
		},
		{
			ShortName: "x", LongName: "exclude",
			Arity:    optparse.ArrayArity,
			HelpText: "Names of files to leave alone.",
			Value:    optparse.Array(&f.Exclude),
		},
		{
			ShortName: "a", LongName: "archive",
			DefaultValue: cfg.Archive,
			HelpText:     "Archives each file before clearing it: none, zstd, gzip or deflate.",
			Value:        optparse.Scalar(&f.Archive),
		},
		{
			LongName:     "log-level",
			DefaultValue: slog.LevelInfo,
			HelpText:     "Log level: debug, info, warn or error.",
			Value:        optparse.Enum(&f.LogLevel, logging.Levels()),
		},
		{
			LongName:     "log-file",
			DefaultValue: cfg.LogFile,
			HelpText:     "Also writes logs to this file, rotating it as it grows.",
			Value:        optparse.Scalar(&f.LogFile),
		},
	}

	for i := range opts {
		o := &opts[i]
		switch o.LongName {
		case "directory":
			if cfg.Directory != "" {
				o.DefaultValue = cfg.Directory
			}
		case "verbose":
			if cfg.Verbose != nil {
				o.DefaultValue = *cfg.Verbose
			}
		case "parallel":
			if cfg.Parallel > 0 {
				o.DefaultValue = cfg.Parallel
			}
		case "extensions":
			if cfg.Extensions != nil {
				o.DefaultValue = append([]string(nil), cfg.Extensions...)
			}
		case "exclude":
			if cfg.Exclude != nil {
				o.DefaultValue = append([]string(nil), cfg.Exclude...)
			}
		case "log-level":
			if cfg.LogLevel != "" {
				o.DefaultValue = logging.ParseLevel(cfg.LogLevel)
			}
		}
	}
	return opts
}

// ValueList implements optparse.ValueLister.
func (f *Flags) ValueList() optparse.ValueList {
	return optparse.ValueList{Values: &f.Files}
}

// HelpOption implements optparse.Helper.
func (f *Flags) HelpOption() optparse.HelpOption {
	return optparse.HelpOption{ShortName: "h", LongName: "help", HelpText: optparse.DefaultHelpText}
}

// Usage implements optparse.Helper. Errors of the last parse are listed
// under the usage line.
func (f *Flags) Usage() string {
	help := &optparse.HelpText{
		Heading:                      optparse.HeadingInfo{ProgramName: ProgramName, Version: f.Version}.String(),
		MaximumDisplayWidth:          f.DisplayWidth,
		AdditionalNewLineAfterOption: true,
		AddDashesToOption:            true,
		FormatOptionHelpText:         withDefault,
	}
	help.AddPreOptionsLine("Usage: clearlogs -d [log directory] [file...]")
	help.AddParsingErrors(f)
	help.AddOptions(f)
	help.AddPostOptionsLine("Example: clearlogs -d /var/log/myapp -e log:txt -a zstd")
	return help.String()
}

// withDefault appends the default value to the help text of options that
// take a value.
func withDefault(opt optparse.Option, text string) string {
	if opt.DefaultValue == nil || opt.IsBoolean() {
		return text
	}
	var s string
	switch v := opt.DefaultValue.(type) {
	case []string:
		s = strings.Join(v, string(optparse.DefaultSeparator))
	case slog.Level:
		s = strings.ToLower(v.String())
	default:
		s = fmt.Sprint(v)
	}
	if s == "" {
		return text
	}
	return text + " Default: " + s + "."
}

// IsVerbose reports whether progress messages should be printed.
func (f *Flags) IsVerbose() bool {
	return f.Verbose && !f.Quiet
}

// Workers returns the number of files to clear at once.
func (f *Flags) Workers() int {
	if f.Parallel == nil || *f.Parallel < 1 {
		return 1
	}
	return *f.Parallel
}

// Parse parses args into f. Help and errors are written to helpW; a nil
// helpW disables the help screen.
func Parse(args []string, f *Flags, helpW io.Writer, log *slog.Logger) bool {
	p := optparse.New(optparse.Settings{
		CaseSensitive:     true,
		MutuallyExclusive: true,
		HelpWriter:        helpW,
		Logger:            log,
	})
	return p.Parse(args, f)
}
