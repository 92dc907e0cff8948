// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/katalvlaran/kspcheck/dataset"
	"github.com/spf13/cobra"
)

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write a generated 2-D Laplacian stiffness problem",
		Long: `Write a generated problem into --data: the nx*ny five-point Laplacian,
k random right-hand sides and their reference solutions from a dense LU
solve. The files use the same layout the reference suite reads.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("data")
			nx, _ := cmd.Flags().GetInt("nx")
			ny, _ := cmd.Flags().GetInt("ny")
			k, _ := cmd.Flags().GetInt("k")
			seed, _ := cmd.Flags().GetInt64("seed")

			log := loggerFor(cmd)
			p, err := dataset.Generate(nx, ny, k, seed)
			if err != nil {
				return err
			}
			if err = dataset.SaveProblem(dir, p); err != nil {
				return err
			}
			log.Info("problem written", "dir", dir, "rows", p.Operator.Rows(), "nnz", p.Operator.NNZ(), "pairs", len(p.Pairs))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d rhs) to %s\n", p.Operator, len(p.Pairs), dir)

			return nil
		},
	}
	cmd.Flags().String("data", "data", "Output directory")
	cmd.Flags().Int("nx", 32, "Grid points in x")
	cmd.Flags().Int("ny", 32, "Grid points in y")
	cmd.Flags().Int("k", 4, "Number of right-hand sides")
	cmd.Flags().Int64("seed", 1, "Random seed for the right-hand sides")

	return cmd
}
