package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/dramcachectl/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as JSON.",
	Run: func(_ *cobra.Command, _ []string) {
		loader := config.NewLoader()
		if envFile != "" {
			loader = loader.WithEnvFile(envFile)
		}

		cfg, err := loader.Load()
		if err != nil {
			log.Fatalf("mcsim: %v", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
