// SPDX-License-Identifier: MIT
// Package dataset: synthetic stiffness problems.

package dataset

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/kspcheck/sparse"
	"gonum.org/v1/gonum/mat"
)

// Generate builds a problem on the nx×ny five-point Laplacian with k
// right-hand sides drawn uniformly from [−1, 1) by a generator seeded with
// seed. Expected solutions come from a dense LU solve (gonum mat), which is
// independent of every solver under test.
//
// Errors: sparse.ErrInvalidDimension for nx, ny < 2 or k < 1.
// Complexity: O((nx·ny)³) for the dense reference factorization.
func Generate(nx, ny, k int, seed int64) (*Problem, error) {
	if k < 1 {
		return nil, fmt.Errorf("%s: k=%d: %w", opGenerate, k, sparse.ErrInvalidDimension)
	}
	a, err := sparse.Laplacian2D(nx, ny)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGenerate, err)
	}
	n := a.Rows()

	rng := rand.New(rand.NewSource(seed))
	b := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			b.Set(i, j, 2*rng.Float64()-1)
		}
	}

	var lu mat.LU
	lu.Factorize(a.ToDense())
	var x mat.Dense
	if err = lu.SolveTo(&x, false, b); err != nil {
		return nil, fmt.Errorf("%s: reference solve: %w", opGenerate, err)
	}

	p := &Problem{Operator: a, Pairs: make([]VectorPair, k)}
	for j := range p.Pairs {
		p.Pairs[j] = VectorPair{
			RHS:      mat.Col(nil, j, b),
			Expected: mat.Col(nil, j, &x),
		}
	}

	return p, nil
}
