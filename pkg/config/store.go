// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Engine unmarshals a configuration document from one file format.
type Engine interface {
	Unmarshal(b []byte, cfg *DenyFilterConfig) error
}

// NewEngine returns the engine for the format indicated by the file
// extension of path. JSON and YAML are supported.
func NewEngine(path string) (Engine, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return jsonEngine{}, nil
	case ".yaml", ".yml":
		return yamlEngine{}, nil
	default:
		return nil, fmt.Errorf("unsupported config file extension for %q", path)
	}
}

type jsonEngine struct{}

func (jsonEngine) Unmarshal(b []byte, cfg *DenyFilterConfig) error {
	return json.Unmarshal(b, cfg)
}

type yamlEngine struct{}

func (yamlEngine) Unmarshal(b []byte, cfg *DenyFilterConfig) error {
	return yaml.Unmarshal(b, cfg)
}

// Store loads the deny filter configuration from some source.
type Store interface {
	Load() (*DenyFilterConfig, error)
}

// FileStore loads configuration from one or more files on a filesystem.
// Several files merge in path order: scalar settings take the first value
// set, lists append, so operators can keep shared lists in one file and
// environment-specific ones in another.
type FileStore struct {
	fs    afero.Fs
	paths []string
}

// NewFileStore creates a FileStore reading the given paths from fs.
func NewFileStore(fs afero.Fs, paths []string) *FileStore {
	return &FileStore{fs: fs, paths: paths}
}

// Load reads, parses and merges all configured files.
func (s *FileStore) Load() (*DenyFilterConfig, error) {
	merged := &DenyFilterConfig{}
	for _, path := range s.paths {
		engine, err := NewEngine(path)
		if err != nil {
			return nil, err
		}
		b, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return nil, fmt.Errorf("reading config %q: %w", path, err)
		}
		var cfg DenyFilterConfig
		if err := engine.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %q: %w", path, err)
		}
		merge(merged, &cfg)
	}
	return merged, nil
}

// merge folds src into dst: first-set scalar wins, lists append in order.
func merge(dst, src *DenyFilterConfig) {
	if dst.Backend == "" {
		dst.Backend = src.Backend
	}
	if dst.MaxPatterns == 0 {
		dst.MaxPatterns = src.MaxPatterns
	}
	if dst.MaxDepth == 0 {
		dst.MaxDepth = src.MaxDepth
	}
	if dst.MaxScanBytes == 0 {
		dst.MaxScanBytes = src.MaxScanBytes
	}
	dst.AllowEmpty = dst.AllowEmpty || src.AllowEmpty
	dst.ExposeWords = dst.ExposeWords || src.ExposeWords
	dst.Lists = append(dst.Lists, src.Lists...)
}
