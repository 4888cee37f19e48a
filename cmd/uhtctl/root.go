package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "uhtctl",
	Short:        "UHT Deck toolbox - decode, compare, and query trait codes",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `uhtctl works with UHT codes: 8 uppercase hex characters packing 32 trait
bits across four layers (Physical, Functional, Abstract, Social).

Decode codes into layer breakdowns, compare and match them, run the query
pipeline over an entity file, and inspect externally computed trait stats.`,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to a YAML config file")
}
