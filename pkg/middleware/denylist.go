// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"errors"

	"github.com/armon/go-metrics"

	"github.com/mcpany/denyfilter/pkg/denycheck"
	"github.com/mcpany/denyfilter/pkg/denylist"
	"github.com/mcpany/denyfilter/pkg/logging"
	"github.com/mcpany/denyfilter/pkg/tool"
)

// ErrDenied is wrapped into every rejection returned by the deny-list
// middleware so callers can distinguish policy blocks from execution errors.
var ErrDenied = errors.New("request blocked by deny list")

// DenyListMiddleware checks tool inputs against the active deny-word matcher
// before execution and blocks the request when a deny word is found or the
// payload cannot be scanned safely.
type DenyListMiddleware struct {
	handle  *denylist.Handle
	checker denycheck.Checker
	// exposeWords controls whether the literal matched word appears in the
	// returned error. Off by default; the decision and list name are enough
	// for callers, and echoing the word back leaks the configured list.
	exposeWords bool
}

// DenyListOption configures a DenyListMiddleware.
type DenyListOption func(*DenyListMiddleware)

// WithScanLimits overrides the default depth and size guards.
func WithScanLimits(limits denylist.ScanLimits) DenyListOption {
	return func(m *DenyListMiddleware) { m.checker.Limits = limits }
}

// WithExposedWords includes the literal matched word in rejection errors.
func WithExposedWords() DenyListOption {
	return func(m *DenyListMiddleware) { m.exposeWords = true }
}

// NewDenyListMiddleware creates a middleware reading the active matcher from
// handle on every call, so configuration reloads take effect without
// re-wiring the chain.
func NewDenyListMiddleware(handle *denylist.Handle, opts ...DenyListOption) *DenyListMiddleware {
	m := &DenyListMiddleware{handle: handle}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Execute scans the request inputs and either blocks or passes the request to
// next. A request with no inputs has nothing to scan and passes through, as
// does every request while no matcher is configured.
func (m *DenyListMiddleware) Execute(ctx context.Context, req *tool.ExecutionRequest, next tool.ExecutionFunc) (any, error) {
	cm := m.handle.Load()
	if cm == nil || len(req.ToolInputs) == 0 {
		return next(ctx, req)
	}

	out := m.checker.CheckJSON(req.ToolInputs, cm)
	if !out.Matched {
		return next(ctx, req)
	}

	logging.GetLogger().Warn("deny word detected in tool inputs",
		"tool", req.ToolName,
		"list", out.ListName,
		"location", out.Location,
		"reason", out.Reason,
		"matcher_version", cm.Version(),
	)
	metrics.IncrCounterWithLabels([]string{"deny_filter", "blocked_total"}, 1, []metrics.Label{
		{Name: "tool_name", Value: req.ToolName},
		{Name: "list", Value: out.ListName},
	})
	return nil, &DeniedError{Outcome: out, exposeWords: m.exposeWords}
}

// DeniedError is the rejection returned when a request is blocked. It wraps
// ErrDenied and renders the outcome's message, redacted unless the middleware
// was configured to expose words.
type DeniedError struct {
	Outcome     denycheck.Outcome
	exposeWords bool
}

func (e *DeniedError) Error() string {
	return e.Outcome.Message(!e.exposeWords)
}

func (e *DeniedError) Unwrap() error { return ErrDenied }
