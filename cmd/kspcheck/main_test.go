// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/kspcheck/battery"
	"github.com/katalvlaran/kspcheck/dataset"
	"github.com/katalvlaran/kspcheck/ksp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRootCmd creates a root command with the persistent flags the
// subcommands read.
func newTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kspcheck",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output reports as JSON")
	rootCmd.PersistentFlags().String("log-level", "error", "Log level")
	rootCmd.PersistentFlags().String("trace", "", "Trace file")

	return rootCmd
}

// execute runs sub under a fresh test root and returns stdout.
func execute(t *testing.T, sub *cobra.Command, args ...string) (string, error) {
	t.Helper()
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(sub)
	rootCmd.SetArgs(args)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.Execute()

	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "kspcheck", cmd.Use)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"run", "equiv", "cases", "gen"}, names)

	for _, flag := range []string{"json", "log-level", "trace"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestEquivCmd(t *testing.T) {
	out, err := execute(t, newEquivCmd(), "equiv", "--n", "10,100")
	require.NoError(t, err)
	assert.Contains(t, out, "equivalence")
	assert.Contains(t, out, "2 passed")
}

func TestEquivCmd_InvalidSizeFails(t *testing.T) {
	out, err := execute(t, newEquivCmd(), "equiv", "--n", "1")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "ERROR")
}

func TestCasesCmd_Platforms(t *testing.T) {
	tests := []struct {
		os      string
		running []string
	}{
		{battery.OSLinux, []string{"cg/jacobi", "preonly/lu/skyline"}},
		{battery.OSDarwin, []string{"cg/amg", "preonly/cholesky/dense"}},
	}
	for _, tt := range tests {
		t.Run(tt.os, func(t *testing.T) {
			out, err := execute(t, newCasesCmd(), "cases", "--os", tt.os, "--json")
			require.NoError(t, err)

			var plans []casePlan
			require.NoError(t, json.Unmarshal([]byte(out), &plans))
			require.Len(t, plans, len(battery.SyntheticCases()))
			run := map[string]bool{}
			for _, p := range plans {
				run[p.Case] = p.Run
			}
			for _, name := range tt.running {
				assert.True(t, run[name], name)
			}
			// mkl_pardiso and mumps are not part of the native engine.
			assert.False(t, run["preonly/lu/mkl_pardiso"])
			assert.False(t, run["preonly/lu/mumps"])
		})
	}
}

func TestCasesCmd_UnknownSuite(t *testing.T) {
	_, err := execute(t, newCasesCmd(), "cases", "--suite", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown suite")
}

func TestGenThenRunReference(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	out, err := execute(t, newGenCmd(), "gen", "--data", dir, "--nx", "6", "--ny", "5", "--k", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "wrote Operator(30x30"), out)
	for _, f := range []string{"system_matrix.npz", "system_rhs.npz", "system_sol.npz"} {
		_, err = os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, f)
	}

	trace := filepath.Join(t.TempDir(), "trace.jsonl")
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newRunCmd())
	rootCmd.SetArgs([]string{"run", "--suite", "reference", "--data", dir, "--json", "--trace", trace})
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	require.NoError(t, rootCmd.Execute())

	var doc runOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "native", doc.Engine)
	assert.Len(t, doc.Reports, len(battery.ReferenceCases()))
	assert.Zero(t, doc.Summary.Failing)
	assert.Positive(t, doc.Summary.Counts[battery.StatusPass])

	data, err := os.ReadFile(trace)
	require.NoError(t, err)
	assert.Equal(t, len(doc.Reports), strings.Count(string(data), "\n"))
}

func TestRunCmd_MissingDataFailsReference(t *testing.T) {
	absent := filepath.Join(t.TempDir(), "absent")
	out, err := execute(t, newRunCmd(), "run", "--suite", "reference", "--data", absent, "--json")
	require.ErrorIs(t, err, errFailed)

	var doc runOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	plans := battery.Select(battery.ReferenceCases(), battery.CurrentPlatform(), ksp.NewNative())
	require.Len(t, doc.Reports, len(plans))
	for i, rep := range doc.Reports {
		if !plans[i].Run {
			assert.Equal(t, battery.StatusSkip, rep.Status, rep.Case)
			continue
		}
		assert.Equal(t, battery.StatusError, rep.Status, rep.Case)
		assert.Contains(t, rep.Reason, dataset.ErrProblemLoad.Error(), rep.Case)
	}
	assert.Positive(t, doc.Summary.Counts[battery.StatusError])
	assert.Zero(t, doc.Summary.Counts[battery.StatusPass])
}

func TestRunCmd_AllowMissingDataSkipsReference(t *testing.T) {
	absent := filepath.Join(t.TempDir(), "absent")
	out, err := execute(t, newRunCmd(), "run", "--suite", "reference", "--data", absent, "--allow-missing-data")
	require.NoError(t, err)
	assert.NotContains(t, out, "PASS")
	assert.Contains(t, out, "no problem data")
}

func TestRunCmd_UnavailableCoarsening(t *testing.T) {
	_, err := execute(t, newRunCmd(), "run", "--suite", "synthetic", "--n", "50", "--coarsening", "HMIS")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errFailed)
	assert.Contains(t, err.Error(), `coarsening "HMIS"`)
}

func TestRunCmd_Synthetic(t *testing.T) {
	out, err := execute(t, newRunCmd(), "run", "--suite", "synthetic,equivalence", "--n", "120")
	require.NoError(t, err)
	assert.Contains(t, out, "cg/amg")
	assert.NotContains(t, out, "FAIL")
}

func TestRunCmd_UnknownSuite(t *testing.T) {
	_, err := execute(t, newRunCmd(), "run", "--suite", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown suite")
}

func TestRunCmd_CaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`cases:
  - name: jacobi
    method: cg
    pc: jacobi
  - name: skyline-chol
    method: preonly
    pc: cholesky
    backend: skyline
`), 0o644))

	out, err := execute(t, newRunCmd(), "run", "--suite", "synthetic", "--n", "50", "--cases", path)
	require.NoError(t, err)
	assert.Contains(t, out, "skyline-chol")
	assert.Contains(t, out, "2 passed")
}
