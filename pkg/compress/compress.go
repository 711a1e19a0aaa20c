// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compress

import (
	"compress/flate"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/yeetrun/clearlogs/pkg/fileutil"
)

// Format is an archive compression format. The zero value means no archive.
type Format int

const (
	None Format = iota
	Zstd
	Gzip
	Deflate
)

var formatNames = map[Format]string{
	None:    "none",
	Zstd:    "zstd",
	Gzip:    "gzip",
	Deflate: "deflate",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the file extension of archives in format f, including the dot.
func (f Format) Ext() string {
	switch f {
	case Zstd:
		return ".zst"
	case Gzip:
		return ".gz"
	case Deflate:
		return ".zz"
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are matched
// without regard to case; an empty name means None.
func (f *Format) UnmarshalText(b []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(b)))
	if name == "" {
		*f = None
		return nil
	}
	for v, n := range formatNames {
		if n == name {
			*f = v
			return nil
		}
	}
	return fmt.Errorf("unknown archive format %q", name)
}

// NewWriter returns a writer that compresses into w. Closing it flushes the
// compressor but does not close w. Format None writes through unchanged.
func NewWriter(w io.Writer, f Format) (io.WriteCloser, error) {
	switch f {
	case Zstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		return zw, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Deflate:
		fw, err := flate.NewWriter(w, flate.DefaultCompression)
		if err != nil {
			return nil, err
		}
		return fw, nil
	case None:
		return nopWriteCloser{w}, nil
	}
	return nil, fmt.Errorf("unsupported archive format %v", f)
}

// NewReader returns a reader that decompresses r. Closing it releases the
// decompressor but does not close r.
func NewReader(r io.Reader, f Format) (io.ReadCloser, error) {
	switch f {
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create decompressor for %v: %w", f, err)
		}
		return zr.IOReadCloser(), nil
	case Gzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create decompressor for %v: %w", f, err)
		}
		return gr, nil
	case Deflate:
		return flate.NewReader(r), nil
	case None:
		return io.NopCloser(r), nil
	}
	return nil, fmt.Errorf("unsupported archive format %v", f)
}

// OpenArchive opens an archive written by ArchiveFile for reading.
func OpenArchive(path string, f Format) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := NewReader(file, f)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &closeWrapper{ReadCloser: rc, onClose: file.Close}, nil
}

// archiveName matches the base names ArchiveFile produces.
var archiveName = regexp.MustCompile(`-[0-9]{14}(-[0-9]+)?\.(zst|gz|zz)$`)

// IsArchive reports whether name looks like an archive written by
// ArchiveFile.
func IsArchive(name string) bool {
	return archiveName.MatchString(filepath.Base(name))
}

// ArchiveFile writes a compressed copy of src next to it and returns the
// archive path and the number of uncompressed bytes archived. An existing
// archive is never replaced: a numeric suffix is added when the timestamped
// name is taken.
func ArchiveFile(src string, f Format) (dst string, n int64, err error) {
	if f == None {
		return "", 0, errors.New("no archive format")
	}
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, err
	}
	defer srcFile.Close()

	srcStat, err := srcFile.Stat()
	if err != nil {
		return "", 0, err
	}

	out, path, err := createArchive(src, f, srcStat.Mode().Perm())
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
			dst, n = "", 0
		}
	}()

	zw, err := NewWriter(out, f)
	if err != nil {
		return "", 0, err
	}
	if n, err = io.Copy(zw, srcFile); err != nil {
		zw.Close()
		return "", 0, fmt.Errorf("failed to archive %s: %w", src, err)
	}
	if err = zw.Close(); err != nil {
		return "", 0, err
	}
	if err = out.Sync(); err != nil {
		return "", 0, err
	}
	return path, n, nil
}

const maxArchiveNames = 100

// createArchive creates a new archive file for src, picking the first free
// name.
func createArchive(src string, f Format, perm os.FileMode) (*os.File, string, error) {
	base := src + "-" + fileutil.Version()
	for i := range maxArchiveNames {
		path := base + f.Ext()
		if i > 0 {
			path = fmt.Sprintf("%s-%d%s", base, i, f.Ext())
		}
		out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if err == nil {
			return out, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("no free archive name for %s", src)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// closeWrapper wraps an io.ReadCloser and calls an additional function on Close.
type closeWrapper struct {
	io.ReadCloser
	onClose func() error
}

func (cw *closeWrapper) Close() error {
	err1 := cw.ReadCloser.Close()
	err2 := cw.onClose()
	return errors.Join(err1, err2)
}
