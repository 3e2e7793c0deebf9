// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package denylist

import "sort"

// doubleArray is the compact trie backend: the pattern trie flattened into
// parallel base/check arrays. A child of node n for byte c lives at index
// base(n)+c and points back at n through its check entry, so the whole
// structure is two int32 slices instead of a pointer tree. Matching walks the
// trie from every start offset, keeping the longest match per start; the
// leftmost start with any match wins, which realizes the same total order as
// the other backends.
type doubleArray struct {
	nodes    []daNode
	patterns []pattern
}

// daNode is one slot of the flattened trie. check holds the owning parent
// index plus one; zero marks a free slot. term holds a terminating pattern id
// plus one; zero means no pattern ends here. After normalization-dedup at
// most one pattern can terminate in a given node.
type daNode struct {
	base  int32
	check int32
	term  int32
}

// tnode is the scratch pointer trie used only during construction.
type tnode struct {
	next map[byte]*tnode
	term int32
}

func newDoubleArray(pats []pattern) *doubleArray {
	root := &tnode{}
	for _, p := range pats {
		n := root
		for i := 0; i < len(p.folded); i++ {
			c := p.folded[i]
			if n.next == nil {
				n.next = make(map[byte]*tnode)
			}
			child, ok := n.next[c]
			if !ok {
				child = &tnode{}
				n.next[c] = child
			}
			n = child
		}
		n.term = int32(p.id) + 1
	}

	d := &doubleArray{
		nodes:    make([]daNode, 1, 1024),
		patterns: pats,
	}
	d.place(root, 0)
	return d
}

// place assigns a base to the trie node already stored at idx and recursively
// lays out its children. Children are visited in byte order so the layout is
// deterministic for a given pattern set.
func (d *doubleArray) place(t *tnode, idx int) {
	if len(t.next) == 0 {
		return
	}
	bytes := make([]int, 0, len(t.next))
	for c := range t.next {
		bytes = append(bytes, int(c))
	}
	sort.Ints(bytes)

	// First free base where every child slot is unoccupied.
	base := 1
search:
	for {
		for _, c := range bytes {
			s := base + c
			d.ensure(s)
			if d.nodes[s].check != 0 {
				base++
				continue search
			}
		}
		break
	}

	d.nodes[idx].base = int32(base)
	for _, c := range bytes {
		child := t.next[byte(c)]
		s := base + c
		d.nodes[s].check = int32(idx) + 1
		d.nodes[s].term = child.term
	}
	for _, c := range bytes {
		d.place(t.next[byte(c)], base+c)
	}
}

// ensure grows the node slice so index i is addressable.
func (d *doubleArray) ensure(i int) {
	for len(d.nodes) <= i {
		d.nodes = append(d.nodes, daNode{})
	}
}

// matchAt walks the trie over text starting at offset start and returns the
// longest pattern terminating on that walk.
func (d *doubleArray) matchAt(text string, start int) (length, id int, ok bool) {
	cur := 0
	for i := start; i < len(text); i++ {
		base := d.nodes[cur].base
		if base == 0 {
			break
		}
		s := int(base) + int(text[i])
		if s >= len(d.nodes) || int(d.nodes[s].check) != cur+1 {
			break
		}
		cur = s
		if t := d.nodes[cur].term; t != 0 {
			length, id, ok = i-start+1, int(t)-1, true
		}
	}
	return length, id, ok
}

func (d *doubleArray) IsMatch(text string) bool {
	for i := 0; i < len(text); i++ {
		if _, _, ok := d.matchAt(text, i); ok {
			return true
		}
	}
	return false
}

func (d *doubleArray) ScanText(text string) (*TextMatch, bool) {
	for i := 0; i < len(text); i++ {
		length, id, ok := d.matchAt(text, i)
		if !ok {
			continue
		}
		// Leftmost start, longest at that start. The remaining legs of the
		// total order cannot discriminate further: two deduplicated patterns
		// never share a start and a length.
		return toTextMatch(d.patterns, candidate{start: i, length: length, id: id}), true
	}
	return nil, false
}
