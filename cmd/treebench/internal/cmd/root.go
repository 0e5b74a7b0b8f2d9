// Package cmd implements the CLI commands for treebench.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the treebench release.
const Version = "0.1.0"

// RootCmd represents the base "treebench" command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "treebench",
	Short: "Time updates and recalculation of an array Merkle tree",
	Long: `treebench builds an array Merkle tree of a given depth, applies
pseudo-random updates to it and times the updates and the bottom-up
recalculation, to help choose a depth for a memory and latency budget.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
