// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package denylist

// pattern is one compiled deny word together with its attribution. The id is
// the position in the compiled pattern table and doubles as the first-listed
// tie-breaker.
type pattern struct {
	id       int
	word     string // word as configured (trimmed, not case-normalized)
	folded   string // normalized form the backends match on
	listName string
	priority int
}

// TextMatch reports the deny word selected inside a single piece of text.
// When several deny words occur, the reported one is chosen by the total
// order: earliest byte start, then longest match, then lowest priority value,
// then first-listed.
type TextMatch struct {
	// Word is the deny word as configured, not case-normalized.
	Word string
	// ListName names the originating list, Priority its configured priority.
	ListName string
	Priority int
	// Start is the byte offset of the match in the folded text.
	Start int
}

// textMatcher is the contract every backend implements. The text handed in is
// already folded; backends must not re-normalize it.
type textMatcher interface {
	// IsMatch is the cheapest possible existence check; it does not identify
	// which pattern matched.
	IsMatch(text string) bool
	// ScanText finds the single pattern to report per the match total order,
	// or reports false when nothing matches.
	ScanText(text string) (*TextMatch, bool)
}

// candidate is a backend-internal match occurrence under consideration.
type candidate struct {
	start  int
	length int
	id     int
}

// better reports whether a precedes b in the match total order. Both
// candidates must refer to patterns of the same table.
func better(pats []pattern, a, b candidate) bool {
	if a.start != b.start {
		return a.start < b.start
	}
	if a.length != b.length {
		return a.length > b.length
	}
	pa, pb := pats[a.id], pats[b.id]
	if pa.priority != pb.priority {
		return pa.priority < pb.priority
	}
	return a.id < b.id
}

// toTextMatch resolves a winning candidate against the pattern table.
func toTextMatch(pats []pattern, c candidate) *TextMatch {
	p := pats[c.id]
	return &TextMatch{
		Word:     p.word,
		ListName: p.listName,
		Priority: p.priority,
		Start:    c.start,
	}
}

// CompiledMatcher is the immutable result of compiling deny word lists with a
// backend. It is safe for unlimited concurrent use; reconfiguration builds a
// new one and swaps it in via a Handle, never mutating an existing matcher.
type CompiledMatcher struct {
	backend  Backend
	matcher  textMatcher
	patterns []pattern
	version  string
	warnings int
}

// Backend returns the algorithm this matcher was compiled with.
func (c *CompiledMatcher) Backend() Backend { return c.backend }

// Version returns the unique identifier assigned to this compilation, used to
// correlate log and metric entries with a configuration generation.
func (c *CompiledMatcher) Version() string { return c.version }

// Warnings returns the number of configured words skipped during compilation
// because they were empty after trimming.
func (c *CompiledMatcher) Warnings() int { return c.warnings }

// PatternCount returns the number of distinct normalized patterns compiled.
func (c *CompiledMatcher) PatternCount() int { return len(c.patterns) }

// IsMatch reports whether text contains any deny word. The text is folded
// here; callers pass it as received.
func (c *CompiledMatcher) IsMatch(text string) bool {
	return c.matcher.IsMatch(fold(text))
}

// ScanText folds text and returns the deny word selected by the match total
// order, or false when the text is clean.
func (c *CompiledMatcher) ScanText(text string) (*TextMatch, bool) {
	return c.matcher.ScanText(fold(text))
}

// isMatchFolded and scanFolded are the scanner-facing entry points. The
// scanners fold each string leaf exactly once and must not be folded again.
func (c *CompiledMatcher) isMatchFolded(text string) bool {
	return c.matcher.IsMatch(text)
}

func (c *CompiledMatcher) scanFolded(text string) (*TextMatch, bool) {
	return c.matcher.ScanText(text)
}
