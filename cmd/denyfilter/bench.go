// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mcpany/denyfilter/pkg/config"
	"github.com/mcpany/denyfilter/pkg/denycheck"
	"github.com/mcpany/denyfilter/pkg/denylist"
	"github.com/mcpany/denyfilter/pkg/logging"
	"github.com/mcpany/denyfilter/pkg/metrics"
)

func newBenchCmd() *cobra.Command {
	var (
		payloadPath string
		backend     string
		count       int
		metricsAddr string
		watch       bool
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure check latency over repeated runs of one payload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := metrics.Initialize(); err != nil {
				return fmt.Errorf("initializing metrics: %w", err)
			}
			if metricsAddr != "" {
				go func() {
					if err := metrics.StartServer(metricsAddr); err != nil {
						logging.GetLogger().Error("metrics server stopped", "error", err)
					}
				}()
			}

			fs := afero.NewOsFs()
			paths, err := cmd.Flags().GetStringSlice("config")
			if err != nil {
				return err
			}

			var (
				cfg    *config.DenyFilterConfig
				handle *denylist.Handle
			)
			if watch {
				// Hot-reload the word lists while the bench runs; each
				// iteration picks up the active matcher generation.
				store := config.NewFileStore(fs, paths)
				cfg, err = store.Load()
				if err != nil {
					return err
				}
				h, watcher, werr := config.NewReloadingHandle(store, paths)
				if werr != nil {
					return werr
				}
				watcher.Start(ctx)
				defer watcher.Stop()
				handle = h
			} else {
				var m *denylist.CompiledMatcher
				cfg, m, err = loadAndCompile(fs, paths, backend)
				if err != nil {
					return err
				}
				handle = denylist.NewHandle(m)
			}

			raw, err := afero.ReadFile(fs, payloadPath)
			if err != nil {
				return fmt.Errorf("reading payload %q: %w", payloadPath, err)
			}

			checker := denycheck.Checker{Limits: cfg.Limits()}
			var (
				total   time.Duration
				minimum time.Duration
				maximum time.Duration
				blocked int
			)
			wallStart := time.Now()
			for i := 0; i < count; i++ {
				if ctx.Err() != nil {
					count = i
					break
				}
				start := time.Now()
				out := checker.CheckJSON(raw, handle.Load())
				elapsed := time.Since(start)
				metrics.MeasureSince([]string{"deny_filter", "check_duration"}, start)

				total += elapsed
				if minimum == 0 || elapsed < minimum {
					minimum = elapsed
				}
				if elapsed > maximum {
					maximum = elapsed
				}
				if out.Matched {
					blocked++
				}
			}
			wall := time.Since(wallStart)
			if count == 0 {
				return ctx.Err()
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "runs:        %d\n", count)
			fmt.Fprintf(w, "wall time:   %s\n", wall)
			fmt.Fprintf(w, "check time:  %s (sum of individual checks)\n", total)
			fmt.Fprintf(w, "avg:         %s\n", total/time.Duration(count))
			fmt.Fprintf(w, "min:         %s\n", minimum)
			fmt.Fprintf(w, "max:         %s\n", maximum)
			fmt.Fprintf(w, "blocked:     %d\n", blocked)
			fmt.Fprintf(w, "passed:      %d\n", count-blocked)
			return nil
		},
	}
	cmd.Flags().StringVar(&payloadPath, "payload", "", "JSON payload file to check")
	cmd.Flags().StringVar(&backend, "backend", "", "Override the configured matcher backend")
	cmd.Flags().IntVar(&count, "count", 1000, "Number of checks to run")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address while benching")
	cmd.Flags().BoolVar(&watch, "watch", false, "Hot-reload configuration files during the run")
	_ = cmd.MarkFlagRequired("payload")
	return cmd
}
