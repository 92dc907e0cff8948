// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/katalvlaran/kspcheck/battery"
	"github.com/katalvlaran/kspcheck/dataset"
	"github.com/katalvlaran/kspcheck/internal/logging"
	"github.com/katalvlaran/kspcheck/ksp"
	"github.com/katalvlaran/kspcheck/sparse"
	"github.com/katalvlaran/kspcheck/verify"
	"github.com/spf13/cobra"
)

var allSuites = []string{battery.SuiteEquivalence, battery.SuiteSynthetic, battery.SuiteReference}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the verification suites",
		Long: `Run the equivalence, synthetic round-trip and reference suites.

The synthetic suite solves A x = 1 for the n x n 1-D Laplacian and checks
A x against 1. The reference suite loads system_matrix.npz, system_rhs.npz
and system_sol.npz from --data and checks every solution. A problem that
cannot be loaded makes every runnable reference case an ERROR;
--allow-missing-data skips the suite instead when --data does not exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data")
			n, _ := cmd.Flags().GetInt("n")
			casesPath, _ := cmd.Flags().GetString("cases")
			suites, _ := cmd.Flags().GetStringSlice("suite")
			coarsening, _ := cmd.Flags().GetString("coarsening")
			tracePath, _ := cmd.Flags().GetString("trace")
			allowMissing, _ := cmd.Flags().GetBool("allow-missing-data")

			for _, s := range suites {
				if !slices.Contains(allSuites, s) {
					return fmt.Errorf("unknown suite %q (want one of %v)", s, allSuites)
				}
			}

			log := loggerFor(cmd)
			trace, err := logging.NewTrace(tracePath)
			if err != nil {
				return fmt.Errorf("failed to open trace: %w", err)
			}
			defer trace.Close()

			eng := ksp.NewNative()
			opts := []verify.Option{verify.WithLogger(log)}
			if coarsening != "" {
				if !eng.Available(ksp.KindCoarsening, coarsening) {
					return fmt.Errorf("coarsening %q is not available in engine %s", coarsening, eng.Name())
				}
				opts = append(opts, verify.WithCoarsening(ksp.Coarsening(coarsening)))
			}
			runner := battery.NewRunner(verify.New(eng, opts...),
				battery.WithLogger(log), battery.WithTrace(trace))

			synthetic, reference := battery.SyntheticCases(), battery.ReferenceCases()
			if casesPath != "" {
				custom, err := battery.LoadCasesFile(casesPath)
				if err != nil {
					return err
				}
				synthetic, reference = custom, custom
			}

			platform := battery.CurrentPlatform()
			var reports []battery.Report
			if slices.Contains(suites, battery.SuiteEquivalence) {
				reports = append(reports, runner.RunEquivalence(battery.EquivalenceSizes)...)
			}
			if slices.Contains(suites, battery.SuiteSynthetic) {
				a, err := sparse.Tridiagonal(n)
				if err != nil {
					return err
				}
				reports = append(reports, runner.RunSynthetic(runner.Plan(synthetic, platform), a)...)
			}
			if slices.Contains(suites, battery.SuiteReference) {
				plans := runner.Plan(reference, platform)
				reports = append(reports, runReference(runner, plans, dataDir, allowMissing, log)...)
			}

			return writeReports(cmd, eng.Name(), reports)
		},
	}

	cmd.Flags().String("data", "data", "Directory holding the stored reference problem")
	cmd.Flags().Int("n", battery.SyntheticSize, "Order of the synthetic operator")
	cmd.Flags().String("cases", "", "YAML case table replacing the default tables")
	cmd.Flags().StringSlice("suite", allSuites, "Suites to run")
	cmd.Flags().String("coarsening", "", "Default multigrid coarsening (pairwise, greedy)")
	cmd.Flags().Bool("allow-missing-data", false, "Skip the reference suite when --data does not exist")

	return cmd
}

// runReference loads the stored problem and runs plans against it. Every
// runnable plan is an error when the problem cannot be loaded, unless
// allowMissing is set and the data directory does not exist.
func runReference(runner *battery.Runner, plans []battery.Plan, dataDir string, allowMissing bool, log *slog.Logger) []battery.Report {
	if _, err := os.Stat(dataDir); allowMissing && errors.Is(err, fs.ErrNotExist) {
		log.Warn("reference suite skipped", "data", dataDir)
		return unrunnable(plans, battery.StatusSkip, "no problem data in "+dataDir)
	}
	p, err := dataset.LoadProblem(dataDir)
	if err != nil {
		return unrunnable(plans, battery.StatusError, err.Error())
	}
	log.Info("reference problem loaded", "rows", p.Operator.Rows(), "nnz", p.Operator.NNZ(), "pairs", len(p.Pairs))

	return runner.RunReference(plans, p)
}

// unrunnable reports every plan with status; plans already gated keep their
// own skip reason.
func unrunnable(plans []battery.Plan, status battery.Status, reason string) []battery.Report {
	out := make([]battery.Report, 0, len(plans))
	for _, pl := range plans {
		rep := battery.Report{Suite: battery.SuiteReference, Case: pl.Case.Name, Config: pl.Config.String()}
		rep.Status, rep.Reason = status, reason
		if !pl.Run {
			rep.Status, rep.Reason = battery.StatusSkip, pl.Reason
		}
		out = append(out, rep)
	}

	return out
}
