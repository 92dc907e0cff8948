// SPDX-License-Identifier: MIT
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/katalvlaran/kspcheck/battery"
	"github.com/spf13/cobra"
)

// runOutput is the --json document of run and equiv.
type runOutput struct {
	Engine  string           `json:"engine,omitempty"`
	OS      string           `json:"os"`
	Reports []battery.Report `json:"reports"`
	Summary battery.Summary  `json:"summary"`
}

// writeReports prints reports as a table or JSON and returns errFailed when
// any report fails the run.
func writeReports(cmd *cobra.Command, engine string, reports []battery.Report) error {
	sum := battery.Summarize(reports)
	out := cmd.OutOrStdout()

	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		doc := runOutput{Engine: engine, OS: battery.CurrentPlatform().OS, Reports: reports, Summary: sum}
		if err := enc.Encode(doc); err != nil {
			return err
		}
	} else {
		printTable(out, reports)
		fmt.Fprintf(out, "\n%s\n", sum)
	}

	if !sum.OK() {
		return errFailed
	}

	return nil
}

func printTable(w io.Writer, reports []battery.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SUITE\tCASE\tSTATUS\tITER\tRESIDUAL\tTIME\tREASON")
	for _, r := range reports {
		iter, resid, elapsed := "-", "-", "-"
		if len(r.Iterations) > 0 {
			total := 0
			for _, it := range r.Iterations {
				total += it
			}
			iter = fmt.Sprint(total)
			resid = fmt.Sprintf("%.2e", r.Achieved)
		}
		if r.TotalTime > 0 {
			elapsed = r.TotalTime.Round(time.Microsecond).String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Suite, r.Case, r.Status, iter, resid, elapsed, r.Reason)
	}
	_ = tw.Flush()
}
