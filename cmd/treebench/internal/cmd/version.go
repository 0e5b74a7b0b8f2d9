package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of treebench.",
	Long:  `Print the version number of treebench.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "treebench v"+Version)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
