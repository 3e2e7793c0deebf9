// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

// Package config loads, validates and compiles the deny filter's
// configuration: an ordered collection of named, prioritized word lists plus
// the backend selection and scan guards.
package config

import (
	"fmt"

	"github.com/mcpany/denyfilter/pkg/denylist"
)

// DenyFilterConfig is the root configuration document.
type DenyFilterConfig struct {
	// Backend selects the matching algorithm: "automaton" (default),
	// "alternation" or "doublearray". The choice never changes observable
	// match outcomes, only performance and memory.
	Backend string `json:"backend" yaml:"backend"`
	// MaxPatterns caps the number of distinct compiled patterns.
	MaxPatterns int `json:"max_patterns" yaml:"max_patterns"`
	// MaxDepth and MaxScanBytes bound each structural scan.
	MaxDepth     int `json:"max_depth" yaml:"max_depth"`
	MaxScanBytes int `json:"max_scan_bytes" yaml:"max_scan_bytes"`
	// AllowEmpty accepts a configuration with zero usable words, compiling a
	// matcher that never matches instead of failing.
	AllowEmpty bool `json:"allow_empty" yaml:"allow_empty"`
	// ExposeWords includes the literal matched word in rejection messages.
	ExposeWords bool `json:"expose_words" yaml:"expose_words"`
	// Lists are the deny word lists, in configuration order.
	Lists []WordListConfig `json:"lists" yaml:"lists"`
}

// WordListConfig is one named deny word list.
type WordListConfig struct {
	Name     string   `json:"name" yaml:"name"`
	Priority int      `json:"priority" yaml:"priority"`
	Words    []string `json:"words" yaml:"words"`
}

// Limits returns the scan guards configured for this filter.
func (c *DenyFilterConfig) Limits() denylist.ScanLimits {
	return denylist.ScanLimits{
		MaxDepth:     c.MaxDepth,
		MaxScanBytes: c.MaxScanBytes,
	}
}

// Compile validates the configuration and builds a CompiledMatcher from it.
func Compile(cfg *DenyFilterConfig) (*denylist.CompiledMatcher, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	backend, err := denylist.ParseBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	lists := make([]denylist.DenyWordList, 0, len(cfg.Lists))
	for _, l := range cfg.Lists {
		lists = append(lists, denylist.DenyWordList{
			Name:     l.Name,
			Priority: l.Priority,
			Words:    l.Words,
		})
	}
	m, err := denylist.Compile(lists, backend, denylist.CompileOptions{
		MaxPatterns: cfg.MaxPatterns,
		AllowEmpty:  cfg.AllowEmpty,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling deny lists: %w", err)
	}
	return m, nil
}
