// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command clearlogs empties the log files of a directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/yeetrun/clearlogs/pkg/cli"
	"github.com/yeetrun/clearlogs/pkg/cmdutil"
	"github.com/yeetrun/clearlogs/pkg/config"
	"github.com/yeetrun/clearlogs/pkg/logclear"
	"github.com/yeetrun/clearlogs/pkg/logging"
	"github.com/yeetrun/clearlogs/pkg/optparse"
	"golang.org/x/term"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// errUsage means the help screen has already been written.
	errUsage = errors.New("invalid command line")
	// errHelp means the user asked for the help screen.
	errHelp = errors.New("help requested")
)

var isTerminalFn = term.IsTerminal
var getwdFn = os.Getwd

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	switch {
	case err == nil, errors.Is(err, errHelp):
	case errors.Is(err, errUsage):
		os.Exit(1)
	default:
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	heading := optparse.HeadingInfo{ProgramName: cli.ProgramName}
	// Nothing is left to report a failed write of the error to.
	_ = heading.WriteMessage(color.RedString(err.Error()), w)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cwd, err := getwdFn()
	if err != nil {
		return err
	}
	cfg, cfgPath, err := config.LoadFromDir(cwd)
	if err != nil {
		return err
	}

	// Without a file the closer is a no-op.
	bootLog, _ := logging.New(logging.Config{Level: slog.LevelWarn}, stderr)
	flags := cli.NewFlags(version, cfg)
	flags.DisplayWidth = terminalWidth(stdout)
	if !cli.Parse(args, flags, stderr, bootLog) {
		if flags.LastPostParsingState().HelpRequested() {
			return errHelp
		}
		return errUsage
	}

	log, closer := logging.New(logging.Config{
		Level:    flags.LogLevel,
		File:     flags.LogFile,
		Rotation: cfg.LogRotation,
	}, stderr)
	defer closer.Close()
	if cfgPath != "" {
		log.Debug("loaded config", "path", cfgPath)
	}

	opts := logclear.Options{
		Directory:   flags.Directory,
		Files:       flags.Files,
		Extensions:  flags.Extensions,
		Exclude:     flags.Exclude,
		Archive:     flags.Archive,
		Workers:     flags.Workers(),
		Interactive: flags.Interactive,
		Logger:      log,
	}
	if flags.IsVerbose() {
		opts.Progress = stdout
	}
	if flags.Interactive {
		opts.Confirm = func(path string, lines int) (bool, error) {
			return cmdutil.Confirm(stdin, stdout, fmt.Sprintf("Clear %s (%d lines)?", path, lines))
		}
	}

	report, err := logclear.Run(ctx, opts)
	if err != nil {
		return err
	}
	if flags.IsVerbose() {
		fmt.Fprintln(stdout, color.GreenString(report.Summary()))
	}
	if flags.Interactive && isTerminal(stdin) {
		return cmdutil.WaitForEnter(stdin, stdout, "Press [Enter] to continue.")
	}
	return nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && isTerminalFn(int(f.Fd()))
}

// terminalWidth returns the width of the terminal behind w, or zero.
func terminalWidth(w io.Writer) int {
	if !isTerminal(w) {
		return 0
	}
	f := w.(*os.File)
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
