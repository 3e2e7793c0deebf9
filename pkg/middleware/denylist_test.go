// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpany/denyfilter/pkg/denylist"
	"github.com/mcpany/denyfilter/pkg/middleware"
	"github.com/mcpany/denyfilter/pkg/tool"
)

func newHandle(t *testing.T, words ...string) *denylist.Handle {
	t.Helper()
	m, err := denylist.Compile([]denylist.DenyWordList{
		{Name: "blocked", Priority: 1, Words: words},
	}, denylist.BackendAutomaton, denylist.CompileOptions{})
	require.NoError(t, err)
	return denylist.NewHandle(m)
}

func passThrough(called *bool) tool.ExecutionFunc {
	return func(ctx context.Context, req *tool.ExecutionRequest) (any, error) {
		*called = true
		return "ok", nil
	}
}

func TestDenyListMiddleware(t *testing.T) {
	ctx := context.Background()

	t.Run("clean inputs pass through", func(t *testing.T) {
		mw := middleware.NewDenyListMiddleware(newHandle(t, "spam"))
		var called bool
		res, err := mw.Execute(ctx, &tool.ExecutionRequest{
			ToolName:   "echo",
			ToolInputs: json.RawMessage(`{"text": "hello"}`),
		}, passThrough(&called))
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "ok", res)
	})

	t.Run("no matcher configured passes through", func(t *testing.T) {
		mw := middleware.NewDenyListMiddleware(denylist.NewHandle(nil))
		var called bool
		_, err := mw.Execute(ctx, &tool.ExecutionRequest{
			ToolName:   "echo",
			ToolInputs: json.RawMessage(`{"text": "spam"}`),
		}, passThrough(&called))
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("empty inputs pass through", func(t *testing.T) {
		mw := middleware.NewDenyListMiddleware(newHandle(t, "spam"))
		var called bool
		_, err := mw.Execute(ctx, &tool.ExecutionRequest{ToolName: "echo"}, passThrough(&called))
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("matched inputs are blocked", func(t *testing.T) {
		mw := middleware.NewDenyListMiddleware(newHandle(t, "spam"))
		var called bool
		res, err := mw.Execute(ctx, &tool.ExecutionRequest{
			ToolName:   "echo",
			ToolInputs: json.RawMessage(`{"text": "SPAM offer"}`),
		}, passThrough(&called))
		require.Error(t, err)
		assert.False(t, called)
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, middleware.ErrDenied))
		// Redacted by default: the list name appears, the word does not.
		assert.Contains(t, err.Error(), `list "blocked"`)
		assert.NotContains(t, err.Error(), "spam")

		var derr *middleware.DeniedError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "spam", derr.Outcome.Word)
		assert.Equal(t, "text", derr.Outcome.Location)
	})

	t.Run("exposed words appear in the error", func(t *testing.T) {
		mw := middleware.NewDenyListMiddleware(newHandle(t, "spam"), middleware.WithExposedWords())
		_, err := mw.Execute(ctx, &tool.ExecutionRequest{
			ToolName:   "echo",
			ToolInputs: json.RawMessage(`{"text": "spam"}`),
		}, func(context.Context, *tool.ExecutionRequest) (any, error) { return nil, nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), `deny word "spam"`)
	})

	t.Run("fails closed on unscannable inputs", func(t *testing.T) {
		mw := middleware.NewDenyListMiddleware(newHandle(t, "spam"))
		var called bool
		_, err := mw.Execute(ctx, &tool.ExecutionRequest{
			ToolName:   "echo",
			ToolInputs: json.RawMessage(`{"broken`),
		}, passThrough(&called))
		require.Error(t, err)
		assert.False(t, called)
		assert.True(t, errors.Is(err, middleware.ErrDenied))
		assert.Contains(t, err.Error(), "not valid JSON")
	})

	t.Run("custom scan limits apply", func(t *testing.T) {
		mw := middleware.NewDenyListMiddleware(newHandle(t, "spam"),
			middleware.WithScanLimits(denylist.ScanLimits{MaxDepth: 1}))
		var called bool
		_, err := mw.Execute(ctx, &tool.ExecutionRequest{
			ToolName:   "echo",
			ToolInputs: json.RawMessage(`{"a": {"b": {"c": "fine"}}}`),
		}, passThrough(&called))
		require.Error(t, err)
		assert.False(t, called)
		assert.Contains(t, err.Error(), "max scan depth")
	})

	t.Run("reload takes effect without rewiring", func(t *testing.T) {
		handle := newHandle(t, "spam")
		mw := middleware.NewDenyListMiddleware(handle)
		req := &tool.ExecutionRequest{
			ToolName:   "echo",
			ToolInputs: json.RawMessage(`{"text": "scam alert"}`),
		}

		var called bool
		_, err := mw.Execute(ctx, req, passThrough(&called))
		require.NoError(t, err)
		assert.True(t, called)

		next, err := denylist.Compile([]denylist.DenyWordList{
			{Name: "blocked", Words: []string{"scam"}},
		}, denylist.BackendAutomaton, denylist.CompileOptions{})
		require.NoError(t, err)
		handle.Swap(next)

		_, err = mw.Execute(ctx, req, passThrough(&called))
		require.Error(t, err)
		assert.True(t, errors.Is(err, middleware.ErrDenied))
	})
}
