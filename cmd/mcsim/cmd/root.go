// Package cmd provides the command-line interface for mcsim.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var envFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mcsim",
	Short: "mcsim runs and inspects a DRAM-cache memory controller core.",
	Long: `mcsim resolves a DRAM-cache memory controller's configuration and ` +
		`can run a monitored session against it, for driving or inspecting ` +
		`one of the nine-plus-one caching schemes outside of a full simulator.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "",
		"optional .env file overlaying the DRAMCACHE_* configuration keys")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
