// SPDX-License-Identifier: MIT
package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/katalvlaran/kspcheck/battery"
	"github.com/katalvlaran/kspcheck/ksp"
	"github.com/katalvlaran/kspcheck/verify"
	"github.com/spf13/cobra"
)

type casePlan struct {
	Case       string `json:"case"`
	Config     string `json:"config"`
	Coarsening string `json:"coarsening,omitempty"`
	Run        bool   `json:"run"`
	ExpectFail bool   `json:"expect_fail,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func newCasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "Show which cases run on a platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			suite, _ := cmd.Flags().GetString("suite")
			casesPath, _ := cmd.Flags().GetString("cases")
			osName, _ := cmd.Flags().GetString("os")
			jsonOut, _ := cmd.Flags().GetBool("json")

			var cases []battery.Case
			switch {
			case casesPath != "":
				var err error
				if cases, err = battery.LoadCasesFile(casesPath); err != nil {
					return err
				}
			case suite == battery.SuiteSynthetic:
				cases = battery.SyntheticCases()
			case suite == battery.SuiteReference:
				cases = battery.ReferenceCases()
			default:
				return fmt.Errorf("unknown suite %q", suite)
			}

			platform := battery.CurrentPlatform()
			if osName != "" {
				platform.OS = osName
			}

			plans := battery.NewRunner(verify.New(ksp.NewNative())).Plan(cases, platform)
			out := make([]casePlan, 0, len(plans))
			for _, p := range plans {
				out = append(out, casePlan{
					Case:       p.Case.Name,
					Config:     p.Config.String(),
					Coarsening: string(p.Config.Coarsening),
					Run:        p.Run,
					ExpectFail: p.ExpectFail,
					Reason:     p.Reason,
				})
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "CASE\tRUN\tNOTE\n")
			for _, c := range out {
				run, note := "yes", ""
				if !c.Run {
					run, note = "no", c.Reason
				} else if c.ExpectFail {
					note = "expected to fail"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Case, run, note)
			}

			return tw.Flush()
		},
	}
	cmd.Flags().String("suite", battery.SuiteSynthetic, "Table to show: synthetic or reference")
	cmd.Flags().String("cases", "", "YAML case table to show instead")
	cmd.Flags().String("os", "", "Evaluate gating for this GOOS instead of the current one")

	return cmd
}
