// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

// Package middleware contains the pre-processing checks the gateway runs in
// front of tool execution.
package middleware

import (
	"context"

	"github.com/mcpany/denyfilter/pkg/tool"
)

// Middleware is the interface for tool execution middleware.
type Middleware interface {
	Execute(ctx context.Context, req *tool.ExecutionRequest, next tool.ExecutionFunc) (any, error)
}
