// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package denylist

// automaton is the Aho-Corasick backend: a trie over the pattern bytes with
// BFS-built failure links and dictionary-suffix outputs merged into each
// state. Matching is a single linear pass over the text, O(len(text))
// regardless of pattern count.
//
// The automaton operates on bytes. UTF-8 is self-synchronizing, so a byte-level
// occurrence of a folded pattern is always a genuine character-level
// occurrence; no rune decoding is needed on the hot path.
type automaton struct {
	root     *acNode
	patterns []pattern
	maxLen   int // longest folded pattern in bytes, bounds the ScanText window
}

// acNode is one automaton state.
type acNode struct {
	children map[byte]*acNode
	fail     *acNode
	output   []int // pattern ids matching when this state is reached
}

func newAutomaton(pats []pattern) *automaton {
	a := &automaton{
		root:     &acNode{children: make(map[byte]*acNode)},
		patterns: pats,
	}
	for _, p := range pats {
		n := a.root
		for i := 0; i < len(p.folded); i++ {
			c := p.folded[i]
			child, ok := n.children[c]
			if !ok {
				child = &acNode{children: make(map[byte]*acNode)}
				n.children[c] = child
			}
			n = child
		}
		n.output = append(n.output, p.id)
		if len(p.folded) > a.maxLen {
			a.maxLen = len(p.folded)
		}
	}
	a.buildFailureLinks()
	return a
}

// buildFailureLinks wires every state to its longest proper suffix state and
// merges the suffix state's outputs, BFS order so parents are finished before
// their children.
func (a *automaton) buildFailureLinks() {
	queue := make([]*acNode, 0, len(a.root.children))
	for _, child := range a.root.children {
		child.fail = a.root
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for c, child := range n.children {
			queue = append(queue, child)
			fail := n.fail
			for fail != nil {
				if next, ok := fail.children[c]; ok {
					child.fail = next
					break
				}
				fail = fail.fail
			}
			if child.fail == nil {
				child.fail = a.root
			}
			if len(child.fail.output) > 0 {
				child.output = append(child.output, child.fail.output...)
			}
		}
	}
}

// step advances the automaton by one byte, following failure links until a
// transition exists or the root is reached.
func (a *automaton) step(n *acNode, c byte) *acNode {
	for n != a.root {
		if _, ok := n.children[c]; ok {
			break
		}
		n = n.fail
	}
	if next, ok := n.children[c]; ok {
		return next
	}
	return n
}

func (a *automaton) IsMatch(text string) bool {
	n := a.root
	for i := 0; i < len(text); i++ {
		n = a.step(n, text[i])
		if len(n.output) > 0 {
			return true
		}
	}
	return false
}

func (a *automaton) ScanText(text string) (*TextMatch, bool) {
	n := a.root
	best := candidate{start: -1}
	for i := 0; i < len(text); i++ {
		if best.start >= 0 && i-a.maxLen+1 > best.start {
			// Every match ending at or after i starts later than the current
			// winner; the earliest-start leg of the total order is settled.
			break
		}
		n = a.step(n, text[i])
		for _, id := range n.output {
			length := len(a.patterns[id].folded)
			c := candidate{start: i - length + 1, length: length, id: id}
			if best.start < 0 || better(a.patterns, c, best) {
				best = c
			}
		}
	}
	if best.start < 0 {
		return nil, false
	}
	return toTextMatch(a.patterns, best), true
}
