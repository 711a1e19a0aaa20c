// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logclear empties the log files of a directory.
package logclear

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/yeetrun/clearlogs/pkg/compress"
	"github.com/yeetrun/clearlogs/pkg/fileutil"
	"golang.org/x/sync/errgroup"
)

// ErrNoDirectory is returned when the log directory does not exist.
var ErrNoDirectory = errors.New("log directory does not exist")

// Options configures Run.
type Options struct {
	Directory string

	// Files restricts clearing to these base names. Empty means every file.
	Files []string
	// Extensions restricts clearing to files with these extensions.
	Extensions []string
	// Exclude lists base names that are never cleared.
	Exclude []string

	// Archive, unless None, keeps a compressed copy of each file.
	Archive compress.Format

	// Workers is the number of files cleared at once. Interactive runs
	// always use one.
	Workers int

	Interactive bool
	// Confirm is asked before each file in interactive runs. Nil clears
	// without asking.
	Confirm func(path string, lines int) (bool, error)

	// Progress receives one line per cleared file. Nil discards.
	Progress io.Writer
	Logger   *slog.Logger
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string
	Lines   int
	Archive string // archive path, if one was written
	Cleared bool
}

// Report summarizes a Run.
type Report struct {
	Directory string
	// Files holds a result for every candidate file, in name order.
	Files []FileResult
}

// Cleared returns the number of files that were emptied.
func (r *Report) Cleared() int {
	n := 0
	for _, f := range r.Files {
		if f.Cleared {
			n++
		}
	}
	return n
}

// Lines returns the number of lines removed.
func (r *Report) Lines() int {
	n := 0
	for _, f := range r.Files {
		if f.Cleared {
			n += f.Lines
		}
	}
	return n
}

// Summary is the closing message of a run.
func (r *Report) Summary() string {
	switch {
	case len(r.Files) == 0:
		return fmt.Sprintf("The specified log directory '%s' didn't contain any log files.", r.Directory)
	case r.Cleared() > 0:
		return fmt.Sprintf("Success! Cleared all log files at %s successfully.", r.Directory)
	default:
		return fmt.Sprintf("All clear! There wasn't any log files with log lines at %s to clear.", r.Directory)
	}
}

// Run clears the matching files of opts.Directory. On error the report
// covers the files handled before it, and no new files are started.
func Run(ctx context.Context, opts Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	fi, err := os.Stat(opts.Directory)
	if err != nil || !fi.IsDir() {
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrNoDirectory, opts.Directory)
	}

	paths, err := candidates(opts, log)
	if err != nil {
		return nil, err
	}
	report := &Report{Directory: opts.Directory, Files: make([]FileResult, len(paths))}
	for i, path := range paths {
		report.Files[i].Path = path
	}

	workers := opts.Workers
	if workers < 1 || opts.Interactive {
		workers = 1
	}
	log.Debug("clearing logs", "dir", opts.Directory, "files", len(paths), "workers", workers)

	c := &clearer{opts: opts, log: log}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.clear(path)
			report.Files[i] = res
			return err
		})
	}
	err = g.Wait()
	return report, err
}

func candidates(opts Options, log *slog.Logger) ([]string, error) {
	files, err := fileutil.ListFiles(opts.Directory)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, path := range files {
		name := filepath.Base(path)
		switch {
		case len(opts.Files) > 0 && !slices.Contains(opts.Files, name):
		case compress.IsArchive(name):
			log.Debug("skipping archive", "file", path)
		case slices.Contains(opts.Exclude, name):
			log.Debug("excluded", "file", path)
		case !fileutil.HasExtension(name, opts.Extensions):
		default:
			out = append(out, path)
		}
	}
	for _, name := range opts.Files {
		if !slices.Contains(files, filepath.Join(opts.Directory, name)) {
			log.Warn("file not found in log directory", "file", name)
		}
	}
	return out, nil
}

type clearer struct {
	opts Options
	log  *slog.Logger

	mu sync.Mutex // serializes Confirm and Progress
}

func (c *clearer) clear(path string) (FileResult, error) {
	res := FileResult{Path: path}
	lines, err := fileutil.CountLines(path)
	if err != nil {
		return res, fmt.Errorf("clear %s: %w", path, err)
	}
	res.Lines = lines
	if lines == 0 {
		c.log.Debug("skipping empty file", "file", path)
		return res, nil
	}

	if c.opts.Interactive && c.opts.Confirm != nil {
		c.mu.Lock()
		ok, err := c.opts.Confirm(path, lines)
		c.mu.Unlock()
		if err != nil {
			return res, err
		}
		if !ok {
			c.log.Info("skipped", "file", path)
			return res, nil
		}
	}

	if c.opts.Archive != compress.None {
		dst, n, err := compress.ArchiveFile(path, c.opts.Archive)
		if err != nil {
			return res, fmt.Errorf("archive %s: %w", path, err)
		}
		res.Archive = dst
		c.log.Debug("archived", "file", path, "archive", dst, "bytes", n)
	}

	c.progress("Clearing log file '%s' (%d lines of text).\n", path, lines)
	if err := fileutil.Truncate(path); err != nil {
		return res, fmt.Errorf("clear %s: %w", path, err)
	}
	res.Cleared = true
	c.log.Info("cleared", "file", path, "lines", lines)
	return res, nil
}

func (c *clearer) progress(format string, args ...any) {
	if c.opts.Progress == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.opts.Progress, format, args...)
}
