package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/madHatter106/state-of-the-climate/pkg/config"
	"github.com/madHatter106/state-of-the-climate/pkg/logger"
)

var (
	// Global flags
	env     string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "soc",
	Short: "State of the Climate - ocean colour time series",
	Long: `State of the Climate CLI

Loads satellite chlorophyll records, computes monthly climatologies and
anomalies per sensor, fetches the Multivariate ENSO Index and renders
comparison plots.

Usage:
  go run ./cmd/soc [command]

Examples:
  go run ./cmd/soc load data/aqua.txt
  go run ./cmd/soc climatology data/aqua.txt --start 2003 --end 2012
  go run ./cmd/soc run --sensor aqua=data/aqua.txt --sensor viirs=data/viirs.txt --plot soc.png
  go run ./cmd/soc serve`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment (development|staging|production), overrides ENV")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads configuration and builds the logger, applying global flags
func setup() (*config.Config, *logger.Logger, error) {
	if env != "" {
		if err := os.Setenv("ENV", env); err != nil {
			return nil, nil, fmt.Errorf("set ENV: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, logger.New(cfg), nil
}
