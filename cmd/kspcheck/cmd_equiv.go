// SPDX-License-Identifier: MIT
package main

import (
	"github.com/katalvlaran/kspcheck/battery"
	"github.com/katalvlaran/kspcheck/ksp"
	"github.com/katalvlaran/kspcheck/verify"
	"github.com/spf13/cobra"
)

func newEquivCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equiv",
		Short: "Compare the two construction paths of the tridiagonal operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes, _ := cmd.Flags().GetIntSlice("n")
			runner := battery.NewRunner(verify.New(ksp.NewNative()), battery.WithLogger(loggerFor(cmd)))

			return writeReports(cmd, "", runner.RunEquivalence(sizes))
		},
	}
	cmd.Flags().IntSlice("n", battery.EquivalenceSizes, "Operator sizes")

	return cmd
}
