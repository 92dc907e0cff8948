// SPDX-License-Identifier: MIT

// Command kspcheck runs the sparse linear-solver verification battery.
//
//	kspcheck run      synthetic, reference and equivalence suites
//	kspcheck equiv    construction-path equivalence only
//	kspcheck cases    show which cases would run on this platform
//	kspcheck gen      write a generated stiffness problem
//
// The exit status is 1 when any case fails.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/katalvlaran/kspcheck/internal/logging"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

// errFailed is returned when the run completed but some case failed.
var errFailed = errors.New("verification failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kspcheck",
		Short: "Verification harness for sparse linear solvers",
		Long: `kspcheck builds sparse operators two independent ways and checks they
agree, then drives a matrix of solver configurations (method x
preconditioner x factorization backend) against a synthetic problem and a
stored stiffness problem, reporting PASS, FAIL, SKIP, XFAIL, XPASS or
ERROR for every case.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output reports as JSON")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: error, warn, info, debug, trace")
	rootCmd.PersistentFlags().String("trace", "", "Append one JSON line per finished case to this file")

	rootCmd.AddCommand(
		newRunCmd(),
		newEquivCmd(),
		newCasesCmd(),
		newGenCmd(),
	)

	return rootCmd
}

// loggerFor builds the stderr logger from the --log-level flag.
func loggerFor(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")

	return logging.NewLogger(level, cmd.ErrOrStderr())
}
