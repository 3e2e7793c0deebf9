// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

// Package logging provides the module's shared structured logger. It is
// initialized once, at process start, and read from everywhere else.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	once          sync.Once
	defaultLogger *slog.Logger
)

// ForTestsOnlyResetLogger resets the `sync.Once` guard so tests can
// re-initialize the global logger. Not for production code.
func ForTestsOnlyResetLogger() {
	once = sync.Once{}
	defaultLogger = nil
}

// Init initializes the global logger with the given minimum level and output
// destination. Only the first call has any effect; later calls are no-ops,
// which keeps the logging setup consistent for the lifetime of the process.
func Init(level slog.Level, output io.Writer) {
	once.Do(func() {
		defaultLogger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
			Level: level,
		}))
	})
}

// GetLogger returns the shared logger, initializing it with the defaults
// (text handler, info level, stderr) if Init was never called.
func GetLogger() *slog.Logger {
	once.Do(func() {
		defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	})
	return defaultLogger
}

// ParseLevel converts a configuration string into a slog.Level, defaulting
// to info for unknown values.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
