// Package cmd implements the CLI commands for tumblr2ghpages using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tumblr2ghpages",
	Short: "tumblr2ghpages — migrate a Tumblr blog into Jekyll post files",
	Long: `tumblr2ghpages walks a Tumblr blog through the v2 API and writes one
Jekyll-compatible Markdown file per post, with YAML front-matter and
optionally re-hosted media.

Usage:
  tumblr2ghpages import <blog> [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
