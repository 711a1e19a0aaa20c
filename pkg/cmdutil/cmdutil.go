// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdutil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirm writes msg followed by a [y/N] prompt to w and reads one answer
// line from r. Anything other than y or yes is a no.
func Confirm(r io.Reader, w io.Writer, msg string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N]: ", msg)

	confirm, err := readLine(r)
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(confirm)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// WaitForEnter writes msg to w and blocks until a line is read from r or r
// is exhausted.
func WaitForEnter(r io.Reader, w io.Writer, msg string) error {
	fmt.Fprintln(w, msg)
	if _, err := readLine(r); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// readLine reads up to and including the next newline one byte at a time,
// so that nothing past the line is consumed from r. EOF ends the line.
func readLine(r io.Reader) (string, error) {
	if br, ok := r.(*bufio.Reader); ok {
		line, err := br.ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		return strings.TrimRight(line, "\r\n"), err
	}
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			b.WriteByte(buf[0])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimRight(b.String(), "\r"), nil
}
