// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mcpany/denyfilter/pkg/config"
	"github.com/mcpany/denyfilter/pkg/denycheck"
	"github.com/mcpany/denyfilter/pkg/denylist"
)

// loadAndCompile builds a matcher from the configured files, with an
// optional backend override from the command line.
func loadAndCompile(fs afero.Fs, paths []string, backend string) (*config.DenyFilterConfig, *denylist.CompiledMatcher, error) {
	cfg, err := config.NewFileStore(fs, paths).Load()
	if err != nil {
		return nil, nil, err
	}
	if backend != "" {
		cfg.Backend = backend
	}
	m, err := config.Compile(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, m, nil
}

func newCheckCmd() *cobra.Command {
	var (
		payloadPath string
		backend     string
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check one JSON payload against the configured deny lists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := afero.NewOsFs()
			paths, err := cmd.Flags().GetStringSlice("config")
			if err != nil {
				return err
			}
			cfg, m, err := loadAndCompile(fs, paths, backend)
			if err != nil {
				return err
			}
			raw, err := afero.ReadFile(fs, payloadPath)
			if err != nil {
				return fmt.Errorf("reading payload %q: %w", payloadPath, err)
			}

			checker := denycheck.Checker{Limits: cfg.Limits()}
			out := checker.CheckJSON(raw, m)
			fmt.Fprintln(cmd.OutOrStdout(), out.Message(!cfg.ExposeWords))
			if out.Matched {
				return fmt.Errorf("payload rejected")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&payloadPath, "payload", "", "JSON payload file to check")
	cmd.Flags().StringVar(&backend, "backend", "", "Override the configured matcher backend")
	_ = cmd.MarkFlagRequired("payload")
	return cmd
}
