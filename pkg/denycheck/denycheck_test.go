// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package denycheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpany/denyfilter/pkg/denycheck"
	"github.com/mcpany/denyfilter/pkg/denylist"
)

func compileMatcher(t *testing.T, words ...string) *denylist.CompiledMatcher {
	t.Helper()
	m, err := denylist.Compile([]denylist.DenyWordList{
		{Name: "blocked", Priority: 1, Words: words},
	}, denylist.BackendAutomaton, denylist.CompileOptions{})
	require.NoError(t, err)
	return m
}

func TestCheck(t *testing.T) {
	m := compileMatcher(t, "spam", "phishing")

	t.Run("clean payload is allowed", func(t *testing.T) {
		out := denycheck.Check(map[string]any{"text": "hello there"}, m)
		assert.False(t, out.Matched)
		assert.Equal(t, "prompt allowed", out.Message(true))
	})

	t.Run("matched payload is rejected with attribution", func(t *testing.T) {
		out := denycheck.Check(map[string]any{"text": "obvious SPAM here"}, m)
		assert.True(t, out.Matched)
		assert.Equal(t, "spam", out.Word)
		assert.Equal(t, "blocked", out.ListName)
		assert.Equal(t, "text", out.Location)
		assert.Equal(t, "deny word matched", out.Reason)
	})

	t.Run("check is idempotent", func(t *testing.T) {
		payload := map[string]any{"text": "phishing attempt"}
		first := denycheck.Check(payload, m)
		second := denycheck.Check(payload, m)
		assert.Equal(t, first, second)
	})

	t.Run("fails closed on unsupported type", func(t *testing.T) {
		out := denycheck.Check(map[string]any{"ch": make(chan int)}, m)
		assert.True(t, out.Matched)
		assert.Empty(t, out.Word)
		assert.Contains(t, out.Reason, "unsupported payload value")
	})

	t.Run("fails closed on depth limit", func(t *testing.T) {
		var payload any = "deep"
		for i := 0; i < 5; i++ {
			payload = []any{payload}
		}
		c := denycheck.Checker{Limits: denylist.ScanLimits{MaxDepth: 3}}
		out := c.Check(payload, m)
		assert.True(t, out.Matched)
		assert.Contains(t, out.Reason, "max scan depth")
	})
}

func TestCheckJSON(t *testing.T) {
	m := compileMatcher(t, "spam")

	t.Run("clean document is allowed", func(t *testing.T) {
		out := denycheck.CheckJSON([]byte(`{"text": "ham and eggs"}`), m)
		assert.False(t, out.Matched)
	})

	t.Run("matched document is rejected", func(t *testing.T) {
		out := denycheck.CheckJSON([]byte(`{"args": ["Spam please"]}`), m)
		assert.True(t, out.Matched)
		assert.Equal(t, "spam", out.Word)
		assert.Equal(t, "args[0]", out.Location)
	})

	t.Run("fails closed on invalid JSON", func(t *testing.T) {
		out := denycheck.CheckJSON([]byte(`{broken`), m)
		assert.True(t, out.Matched)
		assert.Contains(t, out.Reason, "not valid JSON")
	})

	t.Run("fails closed on size limit", func(t *testing.T) {
		c := denycheck.Checker{Limits: denylist.ScanLimits{MaxScanBytes: 8}}
		out := c.CheckJSON([]byte(`["a long clean string well past the cap"]`), m)
		assert.True(t, out.Matched)
		assert.Contains(t, out.Reason, "exceed limit")
	})
}

func TestOutcomeMessage(t *testing.T) {
	tests := []struct {
		name   string
		out    denycheck.Outcome
		redact bool
		want   string
	}{
		{
			name: "allowed",
			out:  denycheck.Outcome{},
			want: "prompt allowed",
		},
		{
			name:   "redacted match",
			out:    denycheck.Outcome{Matched: true, Word: "spam", ListName: "blocked"},
			redact: true,
			want:   `prompt rejected: matched deny word from list "blocked"`,
		},
		{
			name: "exposed match",
			out:  denycheck.Outcome{Matched: true, Word: "spam", ListName: "blocked"},
			want: `prompt rejected: matched deny word "spam" from list "blocked"`,
		},
		{
			name:   "fail closed",
			out:    denycheck.Outcome{Matched: true, Reason: "max scan depth 32 exceeded at \"a\""},
			redact: true,
			want:   `prompt rejected: max scan depth 32 exceeded at "a"`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.out.Message(tc.redact))
		})
	}
}
