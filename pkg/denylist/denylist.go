// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

// Package denylist implements the multi-pattern deny-word matching engine used
// to screen request payloads before they are allowed to proceed. A set of
// named, prioritized word lists is compiled once into an immutable
// CompiledMatcher; every incoming payload is then walked structurally and each
// string leaf is checked against the compiled patterns.
//
// Matching is case-insensitive. Words are normalized with Unicode simple
// case folding (strings.ToLower) exactly once: at compile time for patterns,
// and at the traversal boundary for payload strings. Backends never
// re-normalize the text they receive.
package denylist

import (
	"fmt"
	"strings"
)

// Backend identifies the matching algorithm a CompiledMatcher is built on.
// All backends produce identical match outcomes for identical input; they
// differ only in throughput and memory footprint.
type Backend string

const (
	// BackendAutomaton is an Aho-Corasick multi-pattern automaton. One linear
	// pass over the text regardless of pattern count; the default choice for
	// medium and large lists.
	BackendAutomaton Backend = "automaton"
	// BackendAlternation compiles all patterns into one combined alternation
	// matcher. Simplest to reason about, slower for large pattern counts.
	BackendAlternation Backend = "alternation"
	// BackendDoubleArray is a compact double-array trie. Same semantics as the
	// automaton backend with a smaller memory footprint.
	BackendDoubleArray Backend = "doublearray"
)

// ParseBackend converts a configuration string into a Backend. The empty
// string selects BackendAutomaton.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendAutomaton, "":
		return BackendAutomaton, nil
	case BackendAlternation:
		return BackendAlternation, nil
	case BackendDoubleArray:
		return BackendDoubleArray, nil
	}
	return "", fmt.Errorf("unknown matcher backend %q", s)
}

// DenyWordList is a named, prioritized collection of deny words as supplied by
// configuration. Lists are immutable once handed to Compile; reconfiguration
// replaces them wholesale.
type DenyWordList struct {
	// Name identifies the list. Unique within one configuration.
	Name string
	// Priority breaks ties between lists whose words match at the same
	// position with the same length. A lower value wins.
	Priority int
	// Words are the deny words, matched case-insensitively as substrings.
	Words []string
}

// fold normalizes text for matching. It is the single case-folding rule of
// the module: Unicode simple lowercasing, locale independent. Compile applies
// it to patterns and the scanners apply it to string leaves; nothing else
// may fold.
func fold(s string) string {
	return strings.ToLower(s)
}
