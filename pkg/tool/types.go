// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

// Package tool defines the request types the gateway hands to its tool
// execution pipeline. Only the middleware-facing surface lives here; the
// tool runtimes themselves belong to the host gateway.
package tool

import (
	"context"
	"encoding/json"
)

// ExecutionRequest represents a request to execute a specific tool, including
// its name and input arguments as a raw JSON message.
type ExecutionRequest struct {
	ToolName string
	// ToolInputs is the raw JSON message of the tool inputs, preserved
	// verbatim so pre-processing checks see exactly what the caller sent.
	ToolInputs json.RawMessage
}

// ExecutionFunc is the continuation a middleware invokes to pass the request
// further down the chain.
type ExecutionFunc func(ctx context.Context, req *ExecutionRequest) (any, error)
