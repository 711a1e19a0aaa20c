// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compress

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormat_Text(t *testing.T) {
	for want, name := range formatNames {
		var f Format
		if err := f.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", name, err)
		}
		if f != want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", name, f, want)
		}
		b, _ := f.MarshalText()
		if string(b) != name {
			t.Errorf("MarshalText() = %q, want %q", b, name)
		}
	}

	var f Format = Gzip
	if err := f.UnmarshalText(nil); err != nil || f != None {
		t.Errorf("UnmarshalText(empty) = %v, %v, want None", f, err)
	}
	if err := f.UnmarshalText([]byte("brotli")); err == nil {
		t.Error("UnmarshalText(\"brotli\") succeeded")
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("2025-01-02 15:04:05 INFO request served\n"), 200)

	for _, f := range []Format{None, Zstd, Gzip, Deflate} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, f)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if _, err := w.Write(payload); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}
			if f != None && buf.Len() >= len(payload) {
				t.Errorf("compressed %d bytes into %d", len(payload), buf.Len())
			}

			r, err := NewReader(&buf, f)
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Error("round trip changed the payload")
			}
		})
	}
}

func TestNewWriter_Unsupported(t *testing.T) {
	if _, err := NewWriter(io.Discard, Format(42)); err == nil {
		t.Error("NewWriter(Format(42)) succeeded")
	}
	if _, err := NewReader(strings.NewReader(""), Format(42)); err == nil {
		t.Error("NewReader(Format(42)) succeeded")
	}
}

func TestArchiveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.log")
	content := []byte("line one\nline two\n")
	if err := os.WriteFile(src, content, 0o640); err != nil {
		t.Fatal(err)
	}

	for _, f := range []Format{Zstd, Gzip, Deflate} {
		t.Run(f.String(), func(t *testing.T) {
			dst, n, err := ArchiveFile(src, f)
			if err != nil {
				t.Fatalf("ArchiveFile() error = %v", err)
			}
			if n != int64(len(content)) {
				t.Errorf("archived %d bytes, want %d", n, len(content))
			}
			if filepath.Dir(dst) != dir || !strings.HasPrefix(filepath.Base(dst), "app.log-") || !strings.HasSuffix(dst, f.Ext()) {
				t.Errorf("archive path = %q", dst)
			}
			if !IsArchive(dst) {
				t.Errorf("IsArchive(%q) = false, want true", dst)
			}

			r, err := OpenArchive(dst, f)
			if err != nil {
				t.Fatalf("OpenArchive() error = %v", err)
			}
			got, err := io.ReadAll(r)
			r.Close()
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !bytes.Equal(got, content) {
				t.Errorf("archive content = %q, want %q", got, content)
			}
			os.Remove(dst)
		})
	}
}

func TestArchiveFile_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := ArchiveFile(filepath.Join(dir, "missing.log"), Gzip); err == nil {
		t.Error("ArchiveFile() of a missing file succeeded")
	}
	src := filepath.Join(dir, "a.log")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ArchiveFile(src, None); err == nil {
		t.Error("ArchiveFile() with format None succeeded")
	}
}

func TestArchiveFile_KeepsExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.log")
	if err := os.WriteFile(src, []byte("first\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	first, _, err := ArchiveFile(src, Gzip)
	if err != nil {
		t.Fatalf("ArchiveFile() error = %v", err)
	}
	// Claim the names the next call could pick within the same second.
	base := strings.TrimSuffix(first, Gzip.Ext())
	for i := 1; i < 3; i++ {
		if err := os.WriteFile(fmt.Sprintf("%s-%d%s", base, i, Gzip.Ext()), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.WriteFile(src, []byte("second\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	second, _, err := ArchiveFile(src, Gzip)
	if err != nil {
		t.Fatalf("ArchiveFile() error = %v", err)
	}
	if second == first {
		t.Fatalf("second archive reused %q", first)
	}

	for path, want := range map[string]string{first: "first\n", second: "second\n"} {
		r, err := OpenArchive(path, Gzip)
		if err != nil {
			t.Fatalf("OpenArchive(%q) error = %v", path, err)
		}
		got, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("ReadAll(%q) error = %v", path, err)
		}
		if string(got) != want {
			t.Errorf("archive %q = %q, want %q", path, got, want)
		}
	}
}

func TestIsArchive(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"app.log", false},
		{"app.log-20250102150405.zst", true},
		{"/var/log/app.log-20250102150405.gz", true},
		{"app.log-20250102150405-3.zz", true},
		{"app.log-20250102150405.log", false},
		{"app.log-2025.gz", false},
		{"app.gz", false},
		{"backup-20250102150405", false},
	}
	for _, tt := range tests {
		if got := IsArchive(tt.name); got != tt.want {
			t.Errorf("IsArchive(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
