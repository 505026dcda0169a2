// Package cmd implements the demo CLI driving pattern/traffic/stats over
// the internal/testtopology fixture (SPEC_FULL.md §7): the outer event
// loop, routing, router microarchitecture, and result-file writing are
// out of scope for the core (spec.md §1), but a thin driver is still
// useful to exercise the core end to end.
//
// Structured exactly like the teacher's cmd/root.go: package-level flag
// variables, one file per subcommand, Execute() called from main.go.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "toposim",
	Short: "Cycle-accurate discrete-event simulator core for interconnection networks",
}

// Execute runs the root command; a returned error exits the process with
// status 1, matching the teacher's cmd.Execute().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(simulateCmd)
}
