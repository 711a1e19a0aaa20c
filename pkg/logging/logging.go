// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging builds the structured logger used by clearlogs.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Levels maps level names to slog levels.
func Levels() map[string]slog.Level {
	return map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
}

// ParseLevel returns the level named s, or info if s is unknown.
func ParseLevel(s string) slog.Level {
	if l, ok := Levels()[strings.ToLower(s)]; ok {
		return l
	}
	return slog.LevelInfo
}

// Rotation configures the rotating log file. Zero values use the
// lumberjack defaults.
type Rotation struct {
	MaxSize    int  `toml:"max_size" yaml:"max_size"` // megabytes
	MaxBackups int  `toml:"max_backups" yaml:"max_backups"`
	MaxAge     int  `toml:"max_age" yaml:"max_age"` // days
	Compress   bool `toml:"compress" yaml:"compress"`
}

type Config struct {
	Level slog.Level
	JSON  bool
	// File, if set, also receives every record through a rotating writer.
	File     string
	Rotation Rotation
}

// New returns a logger writing to w and, when cfg.File is set, to a rotating
// file. The returned closer releases the file.
func New(cfg Config, w io.Writer) (*slog.Logger, io.Closer) {
	var writers []io.Writer
	if w != nil {
		writers = append(writers, w)
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.Rotation.MaxSize,
			MaxBackups: cfg.Rotation.MaxBackups,
			MaxAge:     cfg.Rotation.MaxAge,
			Compress:   cfg.Rotation.Compress,
		}
		writers = append(writers, fileWriter)
		closer = fileWriter
	}

	if len(writers) == 0 {
		return slog.New(slog.DiscardHandler), closer
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.Level}
	out := io.MultiWriter(writers...)
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	return slog.New(handler), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
