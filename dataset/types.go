// SPDX-License-Identifier: MIT
// Package dataset: problem value types.

package dataset

import (
	"fmt"

	"github.com/katalvlaran/kspcheck/sparse"
)

// Fixed file names inside a problem directory.
const (
	MatrixFile   = "system_matrix.npz"
	RHSFile      = "system_rhs.npz"
	SolutionFile = "system_sol.npz"
)

// VectorKey is the array name numpy.savez gives its first positional argument.
const VectorKey = "arr_0"

// VectorPair is one right-hand side and the solution it is expected to produce.
type VectorPair struct {
	RHS      []float64
	Expected []float64
}

// Problem is an operator with its ordered verification pairs.
type Problem struct {
	Operator *sparse.Operator
	Pairs    []VectorPair
}

// Validate checks that the problem and its operator are present and square and that every
// vector has Operator.Cols() entries.
func (p *Problem) Validate() error {
	if p == nil {
		return sparse.ErrNilOperator
	}
	if err := sparse.ValidateSquare(p.Operator); err != nil {
		return err
	}
	n := p.Operator.Cols()
	for i, vp := range p.Pairs {
		if len(vp.RHS) != n || len(vp.Expected) != n {
			return fmt.Errorf("pair %d: rhs len %d, expected len %d, operator %d: %w",
				i, len(vp.RHS), len(vp.Expected), n, sparse.ErrDimensionMismatch)
		}
	}

	return nil
}

// RHS returns the right-hand sides in order.
func (p *Problem) RHS() [][]float64 {
	out := make([][]float64, len(p.Pairs))
	for i := range p.Pairs {
		out[i] = p.Pairs[i].RHS
	}

	return out
}

// Expected returns the expected solutions in order.
func (p *Problem) Expected() [][]float64 {
	out := make([][]float64, len(p.Pairs))
	for i := range p.Pairs {
		out[i] = p.Pairs[i].Expected
	}

	return out
}
