// Package main provides the entry point for the sales maturity diagnostic.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/sales-diagnostic/internal/config"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "diagnostic",
	Short: "Sales maturity diagnostic",
	Long: "Scores a B2B sales organisation on four pillars, projects the revenue an optimised " +
		"funnel would bring and ranks the actions to take first. Available as a CLI, an HTTP API " +
		"and an MCP tool.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML, JSON or TOML config file")
}

func main() {
	if _, err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
