// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package denylist

import (
	"fmt"
	"regexp"
	"strings"
)

// alternation is the regex-set style backend: all patterns are combined into
// one alternation for the existence check, and attribution probes every
// pattern's first occurrence. It tests all alternatives per scan, which keeps
// it simple and predictably scaling but slower than the automaton backend for
// large lists.
type alternation struct {
	re       *regexp.Regexp // nil when the pattern set is empty
	patterns []pattern
}

func newAlternation(pats []pattern) (*alternation, error) {
	a := &alternation{patterns: pats}
	if len(pats) == 0 {
		return a, nil
	}
	alts := make([]string, len(pats))
	for i, p := range pats {
		alts[i] = regexp.QuoteMeta(p.folded)
	}
	re, err := regexp.Compile(strings.Join(alts, "|"))
	if err != nil {
		return nil, fmt.Errorf("invalid patterns: %w", err)
	}
	a.re = re
	return a, nil
}

func (a *alternation) IsMatch(text string) bool {
	return a.re != nil && a.re.MatchString(text)
}

func (a *alternation) ScanText(text string) (*TextMatch, bool) {
	best := candidate{start: -1}
	for _, p := range a.patterns {
		// The first occurrence is the only one that can win for this pattern:
		// later occurrences lose the earliest-start leg to it.
		idx := strings.Index(text, p.folded)
		if idx < 0 {
			continue
		}
		c := candidate{start: idx, length: len(p.folded), id: p.id}
		if best.start < 0 || better(a.patterns, c, best) {
			best = c
		}
	}
	if best.start < 0 {
		return nil, false
	}
	return toTextMatch(a.patterns, best), true
}
