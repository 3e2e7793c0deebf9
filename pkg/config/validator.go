// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/mcpany/denyfilter/pkg/denylist"
)

// Validate checks the structural invariants of a configuration before it is
// compiled: known backend, non-negative limits, and list names that are
// present and unique. Word-level problems (empty entries, duplicates) are
// compile-time warnings, not validation errors.
func Validate(cfg *DenyFilterConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}
	if _, err := denylist.ParseBackend(cfg.Backend); err != nil {
		return err
	}
	if cfg.MaxPatterns < 0 {
		return fmt.Errorf("max_patterns must not be negative, got %d", cfg.MaxPatterns)
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", cfg.MaxDepth)
	}
	if cfg.MaxScanBytes < 0 {
		return fmt.Errorf("max_scan_bytes must not be negative, got %d", cfg.MaxScanBytes)
	}
	seen := make(map[string]struct{}, len(cfg.Lists))
	for i, l := range cfg.Lists {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			return fmt.Errorf("list %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate list name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
