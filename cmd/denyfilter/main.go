// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

// The denyfilter command compiles deny word lists and checks request
// payloads against them, either once (check) or repeatedly for performance
// measurement (bench).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcpany/denyfilter/pkg/logging"
)

func newRootCmd() *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:   "denyfilter",
		Short: "Deny-word filtering for request payloads",
		Long: "denyfilter compiles configured deny word lists into a multi-pattern\n" +
			"matcher and screens structured payloads against it.",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Init(logging.ParseLevel(logLevel), os.Stderr)
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringSlice("config", []string{"denyfilter.yaml"}, "Configuration file(s), merged in order")
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newBenchCmd())
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
