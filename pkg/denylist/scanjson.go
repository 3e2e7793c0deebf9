// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package denylist

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ScanJSON walks a raw JSON document with the same semantics, guards and
// short-circuit behavior as ScanAny, but preserves the document's own key
// order and never materializes an intermediate value tree. It is the entry
// point the request hook uses, since tool inputs arrive as raw JSON.
func ScanJSON(raw []byte, m *CompiledMatcher, limits ScanLimits) (*MatchOutcome, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}
	maxDepth := limits.maxDepth()
	scanned := 0
	stack := []jsonFrame{{value: gjson.ParseBytes(raw)}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > maxDepth {
			return nil, &DepthExceededError{Path: f.path, MaxDepth: maxDepth}
		}

		switch {
		case f.value.Type == gjson.String:
			scanned += len(f.value.Str)
			if limits.MaxScanBytes > 0 && scanned > limits.MaxScanBytes {
				return nil, &SizeExceededError{Limit: limits.MaxScanBytes}
			}
			if out, ok := matchLeaf(m, f.value.Str, f.path); ok {
				return out, nil
			}

		case f.value.IsArray():
			elems := f.value.Array()
			for i := len(elems) - 1; i >= 0; i-- {
				stack = append(stack, jsonFrame{
					value: elems[i],
					path:  indexPath(f.path, i),
					depth: f.depth + 1,
				})
			}

		case f.value.IsObject():
			// Collected front-to-back in document order, pushed in reverse so
			// the first document key is scanned first.
			var children []jsonFrame
			f.value.ForEach(func(key, value gjson.Result) bool {
				children = append(children, jsonFrame{
					value: value,
					path:  keyPath(f.path, key.String()),
					depth: f.depth + 1,
				})
				return true
			})
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}

		default:
			// Numbers, booleans and null are inert.
		}
	}
	return &MatchOutcome{}, nil
}

// jsonFrame is one work-list entry of the raw JSON traversal.
type jsonFrame struct {
	value gjson.Result
	path  string
	depth int
}
