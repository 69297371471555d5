// Package main provides the entry point for the urlhound CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for urlhound.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "urlhound",
		Short: "Fast URL discovery tool for security researchers",
		Long: `urlhound crawls web applications and streams every in-scope URL it
discovers from links, script references and form actions.

Seeds are given as arguments or piped in on stdin, one URL per line.
Output is one URL per line by default, or JSON Lines with --json, so it
composes with the rest of a reconnaissance pipeline.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
