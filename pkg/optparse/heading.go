// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"fmt"
	"io"
	"strings"
)

// HeadingInfo is the first line of a help screen.
type HeadingInfo struct {
	ProgramName string
	Version     string
}

func (h HeadingInfo) String() string {
	if strings.TrimSpace(h.Version) == "" {
		return h.ProgramName
	}
	return h.ProgramName + " " + h.Version
}

// WriteMessage writes "program: msg" and a newline to w.
func (h HeadingInfo) WriteMessage(msg string, w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s: %s\n", h.ProgramName, msg)
	return err
}
