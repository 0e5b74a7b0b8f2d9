package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/jrhy/arraymerkle/cmd/treebench/internal/bench"
	"github.com/jrhy/arraymerkle/internal/binutils"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a benchmark",
	Long: `Run a benchmark

This will look for a config file with the default name (treebench.toml)
in the current directory if not specified differently, and fall back to
built-in defaults if there is none. Flags override the config file.
	`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadRunConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := binutils.NewLogger(conf.Logger)
		if err != nil {
			return err
		}
		defer logger.Sync()
		_, err = bench.Run(conf, logger, cmd.OutOrStdout())
		return err
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("config", "c", bench.ConfigFile, "Path to benchmark configuration file")
	runCmd.Flags().IntP("depth", "d", 0, "Tree depth, overriding the config file")
	runCmd.Flags().IntP("entries", "n", 0, "Number of updates, overriding the config file")
	runCmd.Flags().Int64P("seed", "s", 0, "Random seed, overriding the config file")
	runCmd.Flags().Bool("dump", false, "Dump every node after recalculating")
}

func loadRunConfig(cmd *cobra.Command) (*bench.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	conf, err := bench.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) && !flags.Changed("config") {
		conf, err = bench.DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	if flags.Changed("depth") {
		conf.Depth, _ = flags.GetInt("depth")
	}
	if flags.Changed("entries") {
		conf.Entries, _ = flags.GetInt("entries")
	}
	if flags.Changed("seed") {
		conf.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("dump") {
		conf.Dump, _ = flags.GetBool("dump")
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return conf, nil
}
