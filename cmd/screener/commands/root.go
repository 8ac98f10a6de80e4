package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	thresholdsFile string
	verbose        bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Mizan - Shariah-compliant equity screener",
	Long: `Mizan Screener CLI

Screens equities for Shariah compliance (AAOIFI ratios, business activity,
boycott list) and scores them under pluggable fundamental strategies.

Examples:
  go run ./cmd/screener api
  go run ./cmd/screener analyze AAPL --strategy Graham
  go run ./cmd/screener search "coca cola"
  go run ./cmd/screener status`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&thresholdsFile, "thresholds", "", "YAML file overriding strategy thresholds")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
