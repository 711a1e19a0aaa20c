// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the optional clearlogs config file. Values found in
// it become the defaults of the command-line options.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/clearlogs/pkg/compress"
	"github.com/yeetrun/clearlogs/pkg/logging"
	"gopkg.in/yaml.v3"
)

// EnvVar names a config file to use instead of searching for one.
const EnvVar = "CLEARLOGS_CONFIG"

// FileNames are the config file names searched for, in order, in each
// directory.
var FileNames = []string{"clearlogs.toml", "clearlogs.yaml", "clearlogs.yml"}

// Config mirrors the command-line options. Unset fields leave the built-in
// defaults alone.
type Config struct {
	Directory   string          `toml:"directory" yaml:"directory"`
	Verbose     *bool           `toml:"verbose" yaml:"verbose"`
	Interactive bool            `toml:"interactive" yaml:"interactive"`
	Parallel    int             `toml:"parallel" yaml:"parallel"`
	Extensions  []string        `toml:"extensions" yaml:"extensions"`
	Exclude     []string        `toml:"exclude" yaml:"exclude"`
	Archive     compress.Format `toml:"archive" yaml:"archive"`
	LogLevel    string          `toml:"log_level" yaml:"log_level"`
	LogFile     string          `toml:"log_file" yaml:"log_file"`

	LogRotation logging.Rotation `toml:"log_rotation" yaml:"log_rotation"`
}

// Find returns the config file named by EnvVar, or the first of FileNames
// found in startDir or one of its parents. It returns an error wrapping
// os.ErrNotExist if there is none.
func Find(startDir string) (string, error) {
	if path := os.Getenv(EnvVar); path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%s: %w", EnvVar, err)
		}
		return path, nil
	}

	dir := filepath.Clean(startDir)
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			} else if !os.IsNotExist(err) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Load decodes the config file at path as TOML or YAML, chosen by its
// extension. Unknown keys are an error.
func Load(path string) (*Config, error) {
	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format %q", path, ext)
	}
	return &cfg, nil
}

// LoadFromDir finds and loads the config for startDir. It returns an empty
// Config and an empty path when there is no config file.
func LoadFromDir(startDir string) (*Config, string, error) {
	path, err := Find(startDir)
	if errors.Is(err, os.ErrNotExist) && os.Getenv(EnvVar) == "" {
		return &Config{}, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
