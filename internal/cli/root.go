// Package cli implements the screenlog command-line interface using Cobra.
// Each subcommand maps to one library or achievement operation.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "screenlog",
	Short: "screenlog — track what you watch and read",
	Long: `screenlog is a local-first watch, binge, and reading tracker.
Log movies, series episodes, and books; earn achievement levels computed
from your history — nothing leaves your machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
