// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package denylist_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpany/denyfilter/pkg/denylist"
)

func TestScanJSON(t *testing.T) {
	t.Run("preserves document key order", func(t *testing.T) {
		m := compileWords(t, "spam", "scam")
		// "z" comes first in the document, so its hit wins even though "a"
		// sorts first.
		raw := []byte(`{"z": "has spam", "a": "has scam"}`)
		out, err := denylist.ScanJSON(raw, m, denylist.ScanLimits{})
		require.NoError(t, err)
		assert.Equal(t, "spam", out.Word)
		assert.Equal(t, "z", out.Location)
	})

	t.Run("nested location path", func(t *testing.T) {
		m := compileWords(t, "phishing")
		raw := []byte(`{"args": {"messages": ["hi", "a PHISHING link"]}}`)
		out, err := denylist.ScanJSON(raw, m, denylist.ScanLimits{})
		require.NoError(t, err)
		assert.True(t, out.Matched)
		assert.Equal(t, "phishing", out.Word)
		assert.Equal(t, "args.messages[1]", out.Location)
	})

	t.Run("clean document", func(t *testing.T) {
		m := compileWords(t, "spam")
		out, err := denylist.ScanJSON([]byte(`{"text": "all clear", "n": 42, "ok": true, "x": null}`), m, denylist.ScanLimits{})
		require.NoError(t, err)
		assert.False(t, out.Matched)
	})

	t.Run("root string document", func(t *testing.T) {
		m := compileWords(t, "spam")
		out, err := denylist.ScanJSON([]byte(`"pure spam"`), m, denylist.ScanLimits{})
		require.NoError(t, err)
		assert.True(t, out.Matched)
		assert.Empty(t, out.Location)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		m := compileWords(t, "spam")
		_, err := denylist.ScanJSON([]byte(`{"broken":`), m, denylist.ScanLimits{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid JSON")
	})

	t.Run("depth guard", func(t *testing.T) {
		m := compileWords(t, "spam")
		raw := []byte(strings.Repeat("[", 40) + `"spam"` + strings.Repeat("]", 40))
		_, err := denylist.ScanJSON(raw, m, denylist.ScanLimits{MaxDepth: 32})
		var derr *denylist.DepthExceededError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, 32, derr.MaxDepth)
	})

	t.Run("size guard", func(t *testing.T) {
		m := compileWords(t, "spam")
		raw := []byte(`["a perfectly clean long opening string", "spam"]`)
		_, err := denylist.ScanJSON(raw, m, denylist.ScanLimits{MaxScanBytes: 16})
		var serr *denylist.SizeExceededError
		require.ErrorAs(t, err, &serr)
	})

	t.Run("escaped strings are decoded before matching", func(t *testing.T) {
		m := compileWords(t, "spam")
		out, err := denylist.ScanJSON([]byte(`{"t": "spam"}`), m, denylist.ScanLimits{})
		require.NoError(t, err)
		assert.True(t, out.Matched)
	})
}
