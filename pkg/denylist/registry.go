// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package denylist

import "sync/atomic"

// Handle is a shared, swappable reference to the active CompiledMatcher.
// Concurrent checkers load the current matcher lock-free; a configuration
// reload compiles a fresh matcher and swaps it in atomically, so every check
// observes exactly one matcher generation in full. Retired generations are
// never mutated and are reclaimed by the garbage collector once the last
// in-flight scan drops its reference.
type Handle struct {
	ptr atomic.Pointer[CompiledMatcher]
}

// NewHandle returns a Handle holding m, which may be nil when no deny filter
// is configured yet.
func NewHandle(m *CompiledMatcher) *Handle {
	h := &Handle{}
	if m != nil {
		h.ptr.Store(m)
	}
	return h
}

// Load returns the current matcher generation, or nil when none is set.
func (h *Handle) Load() *CompiledMatcher {
	return h.ptr.Load()
}

// Swap installs m as the active generation and returns the previous one.
func (h *Handle) Swap(m *CompiledMatcher) *CompiledMatcher {
	return h.ptr.Swap(m)
}
