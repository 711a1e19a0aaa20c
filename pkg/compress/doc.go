// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compress archives log files before they are cleared.
//
// # Supported Formats
//
//   - zstd (Zstandard) - Modern compression with excellent ratio and speed
//   - gzip - Widely supported, good general-purpose compression
//   - deflate - Raw deflate stream with broad compatibility
//
// # Archiving
//
// ArchiveFile copies the content of a file into a compressed sibling named
// after the file, a timestamp and the format's extension:
//
//	dst, n, err := compress.ArchiveFile("/var/log/app.log", compress.Zstd)
//	// dst == "/var/log/app.log-20250102150405.zst"
//
// An existing archive is never overwritten; a second archive of the same
// file within one second gets a numeric suffix ("app.log-20250102150405-1.zst").
// A failed archive is removed. IsArchive recognizes these names so that
// archives are not themselves cleared.
//
// # Formats on the command line
//
// Format implements encoding.TextUnmarshaler, so it can be bound directly
// from flags and decoded from TOML or YAML config files:
//
//	var f compress.Format
//	_ = f.UnmarshalText([]byte("zstd"))
package compress
