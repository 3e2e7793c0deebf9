// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package denylist

import (
	"encoding/json"
	"fmt"
	"sort"
)

// DefaultMaxDepth is the nesting bound applied when ScanLimits does not set
// one. Payloads deeper than this are rejected rather than scanned.
const DefaultMaxDepth = 32

// ScanLimits bound a single structural scan against pathological or
// adversarial payloads. The zero value applies DefaultMaxDepth and no size
// bound.
type ScanLimits struct {
	// MaxDepth is the maximum container nesting depth. Zero or negative
	// selects DefaultMaxDepth.
	MaxDepth int
	// MaxScanBytes caps the cumulative number of string-leaf bytes examined
	// in one scan. Zero means unbounded. Exceeding the cap is an error, never
	// silent truncation, so the caller decides policy.
	MaxScanBytes int
}

// maxDepth resolves the effective depth bound.
func (l ScanLimits) maxDepth() int {
	if l.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return l.MaxDepth
}

// DepthExceededError reports a payload nested beyond the configured bound.
type DepthExceededError struct {
	Path     string
	MaxDepth int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("max scan depth %d exceeded at %q", e.MaxDepth, e.Path)
}

// SizeExceededError reports a payload whose string content exceeds the
// configured byte budget.
type SizeExceededError struct {
	Limit int
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("scanned string bytes exceed limit of %d", e.Limit)
}

// UnsupportedTypeError reports a payload value outside the scannable kinds
// (string, number, bool, nil, []any, map[string]any). Unknown kinds fail fast
// instead of being coerced: coercion could hide deny words behind a textual
// type the scanner does not recognize as a string.
type UnsupportedTypeError struct {
	Path  string
	Value any
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported payload value of type %T at %q", e.Value, e.Path)
}

// MatchOutcome is the verdict of one structural scan. It is produced fresh
// per call and never mutated afterwards.
type MatchOutcome struct {
	// Matched reports whether any deny word was found.
	Matched bool
	// Word is the matched deny word as configured. Empty unless Matched.
	Word string
	// ListName and Priority attribute the match to its originating list.
	ListName string
	Priority int
	// Location is the key/index path of the string leaf the match occurred
	// in, e.g. "a.b[1]". Empty when the payload root itself is the leaf.
	Location string
}

// frame is one work-list entry of the iterative traversal.
type frame struct {
	value any
	path  string
	depth int
}

// ScanAny walks an arbitrarily nested payload value and checks every string
// leaf against the matcher, depth-first pre-order: sequences by ascending
// index, mappings by sorted key (Go maps carry no insertion order; use
// ScanJSON for wire payloads whose document order matters). The scan
// short-circuits on the first match in traversal order.
//
// Traversal uses an explicit work-list rather than native recursion so the
// depth guard is enforced deterministically instead of by the platform call
// stack.
func ScanAny(value any, m *CompiledMatcher, limits ScanLimits) (*MatchOutcome, error) {
	maxDepth := limits.maxDepth()
	scanned := 0
	stack := []frame{{value: value}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > maxDepth {
			return nil, &DepthExceededError{Path: f.path, MaxDepth: maxDepth}
		}

		switch v := f.value.(type) {
		case nil, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64, json.Number:
			// Inert leaves: numbers, booleans and null never match.

		case string:
			scanned += len(v)
			if limits.MaxScanBytes > 0 && scanned > limits.MaxScanBytes {
				return nil, &SizeExceededError{Limit: limits.MaxScanBytes}
			}
			if out, ok := matchLeaf(m, v, f.path); ok {
				return out, nil
			}

		case []any:
			// Pushed in reverse so index 0 is scanned first.
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, frame{
					value: v[i],
					path:  indexPath(f.path, i),
					depth: f.depth + 1,
				})
			}

		case map[string]any:
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for i := len(keys) - 1; i >= 0; i-- {
				stack = append(stack, frame{
					value: v[keys[i]],
					path:  keyPath(f.path, keys[i]),
					depth: f.depth + 1,
				})
			}

		default:
			return nil, &UnsupportedTypeError{Path: f.path, Value: f.value}
		}
	}
	return &MatchOutcome{}, nil
}

// matchLeaf folds one string leaf and queries the matcher, cheapest check
// first. This is the single point where payload text is normalized.
func matchLeaf(m *CompiledMatcher, leaf, path string) (*MatchOutcome, bool) {
	folded := fold(leaf)
	if !m.isMatchFolded(folded) {
		return nil, false
	}
	tm, ok := m.scanFolded(folded)
	if !ok {
		return nil, false
	}
	return &MatchOutcome{
		Matched:  true,
		Word:     tm.Word,
		ListName: tm.ListName,
		Priority: tm.Priority,
		Location: path,
	}, true
}

func keyPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}
