// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package denylist

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultMaxPatterns bounds the number of distinct compiled patterns so a
// misconfigured word list cannot grow the automaton without limit.
const DefaultMaxPatterns = 100000

// CompileOptions tune a single compilation. The zero value selects the
// defaults.
type CompileOptions struct {
	// MaxPatterns caps the number of distinct normalized patterns. Zero means
	// DefaultMaxPatterns.
	MaxPatterns int
	// AllowEmpty permits compiling a configuration whose lists yield zero
	// usable words, producing an explicit never-matching matcher. By default
	// such a configuration is a CompileError: a filter silently running with
	// no active words is treated as a misconfiguration.
	AllowEmpty bool
}

// CompileError reports a configuration that could not be compiled into a
// matcher. The previous matcher generation, if any, stays in service.
type CompileError struct {
	Reason   string
	Warnings int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("deny list compilation failed: %s", e.Reason)
}

// Compile builds an immutable CompiledMatcher from the given lists using the
// selected backend.
//
// Every word is trimmed and normalized with the module's case-folding rule.
// Words that are empty after trimming are skipped and counted as warnings
// rather than failing the compile. Identical normalized words appearing in
// several lists are compiled once, attributed to the list that mentions them
// first (first-listed wins, deterministically).
//
// Compile fails with a *CompileError when the lists yield zero usable words
// (unless opts.AllowEmpty) or when the pattern count exceeds the configured
// maximum.
func Compile(lists []DenyWordList, backend Backend, opts CompileOptions) (*CompiledMatcher, error) {
	maxPatterns := opts.MaxPatterns
	if maxPatterns <= 0 {
		maxPatterns = DefaultMaxPatterns
	}

	seen := make(map[string]struct{})
	var pats []pattern
	warnings := 0
	for _, list := range lists {
		for _, w := range list.Words {
			trimmed := strings.TrimSpace(w)
			folded := fold(trimmed)
			if folded == "" {
				warnings++
				continue
			}
			if _, dup := seen[folded]; dup {
				continue
			}
			if len(pats) >= maxPatterns {
				return nil, &CompileError{
					Reason:   fmt.Sprintf("pattern count exceeds maximum of %d", maxPatterns),
					Warnings: warnings,
				}
			}
			seen[folded] = struct{}{}
			pats = append(pats, pattern{
				id:       len(pats),
				word:     trimmed,
				folded:   folded,
				listName: list.Name,
				priority: list.Priority,
			})
		}
	}

	if len(pats) == 0 && !opts.AllowEmpty {
		return nil, &CompileError{Reason: "no usable deny words after normalization", Warnings: warnings}
	}

	var m textMatcher
	var err error
	switch backend {
	case BackendAutomaton, "":
		backend = BackendAutomaton
		m = newAutomaton(pats)
	case BackendAlternation:
		m, err = newAlternation(pats)
	case BackendDoubleArray:
		m = newDoubleArray(pats)
	default:
		return nil, &CompileError{Reason: fmt.Sprintf("unknown matcher backend %q", backend), Warnings: warnings}
	}
	if err != nil {
		return nil, &CompileError{Reason: err.Error(), Warnings: warnings}
	}

	return &CompiledMatcher{
		backend:  backend,
		matcher:  m,
		patterns: pats,
		version:  uuid.NewString(),
		warnings: warnings,
	}, nil
}
