// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Version returns a version string based on the current time.
func Version() string {
	return time.Now().Format("20060102150405")
}

// ListFiles returns the regular files directly inside dir, sorted by name.
// Subdirectories and symlinks to directories are skipped.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.Type().IsRegular() {
			files = append(files, path)
			continue
		}
		if e.Type()&os.ModeSymlink != 0 {
			fi, err := os.Stat(path)
			if err == nil && fi.Mode().IsRegular() {
				files = append(files, path)
			}
		}
	}
	slices.Sort(files)
	return files, nil
}

// HasExtension reports whether name ends in one of exts. Extensions match
// without regard to case and may be given with or without the dot. An empty
// list matches every name.
func HasExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	for _, e := range exts {
		e = strings.TrimPrefix(strings.TrimSpace(e), ".")
		if e != "" && strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// CountLines returns the number of lines in the file at path. A final line
// without a trailing newline is counted.
func CountLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, 32*1024)
	lines := 0
	last := byte('\n')
	for {
		n, err := f.Read(buf)
		if n > 0 {
			lines += bytes.Count(buf[:n], []byte{'\n'})
			last = buf[n-1]
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	if last != '\n' {
		lines++
	}
	return lines, nil
}

// Truncate empties the file at path, keeping its mode and ownership.
func Truncate(path string) error {
	return os.Truncate(path, 0)
}
