// SPDX-License-Identifier: MIT
// Package ksp: dense factorization backend on gonum/mat.
//
// The operator is expanded to a dense matrix once at setup; LU uses partial
// pivoting (mat.LU), Cholesky reads the upper triangle (mat.Cholesky).
// Memory is O(n²), so the backend suits reference solves of moderate size.

package ksp

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/kspcheck/sparse"
	"gonum.org/v1/gonum/mat"
)

// DenseMaxRows is the largest operator order the dense backend factors.
// The expanded matrix takes 8·n² bytes, 128 MiB at this limit.
const DenseMaxRows = 4096

type denseFactor struct {
	n    int
	lu   *mat.LU
	chol *mat.Cholesky
}

// newDenseFactor factors a with gonum.
// Errors: ErrTooLarge above DenseMaxRows; ErrBreakdown for an exactly
// singular (LU) or non-positive-definite (Cholesky) operator.
func newDenseFactor(a *sparse.Operator, cholesky bool) (*denseFactor, error) {
	if a.Rows() > DenseMaxRows {
		return nil, fmt.Errorf("dense: order %d exceeds %d: %w", a.Rows(), DenseMaxRows, ErrTooLarge)
	}
	f := &denseFactor{n: a.Rows()}
	if cholesky {
		sym, err := a.ToSymDense()
		if err != nil {
			return nil, err
		}
		var ch mat.Cholesky
		if ok := ch.Factorize(sym); !ok {
			return nil, fmt.Errorf("dense cholesky: matrix not positive definite: %w", ErrBreakdown)
		}
		f.chol = &ch

		return f, nil
	}

	var lu mat.LU
	lu.Factorize(a.ToDense())
	if math.IsInf(lu.Cond(), 1) {
		return nil, fmt.Errorf("dense lu: matrix singular: %w", ErrBreakdown)
	}
	f.lu = &lu

	return f, nil
}

// solve computes dst = A⁻¹·b. An ill-conditioning warning from gonum
// (mat.Condition) is not an error here: the solution is still computed and
// its accuracy is judged by the caller's residual check.
func (f *denseFactor) solve(dst, b []float64) error {
	x := mat.NewVecDense(f.n, dst)
	rhs := mat.NewVecDense(f.n, append([]float64(nil), b...))
	var err error
	if f.chol != nil {
		err = f.chol.SolveVecTo(x, rhs)
	} else {
		err = f.lu.SolveVecTo(x, false, rhs)
	}
	var cond mat.Condition
	if err != nil && !errors.As(err, &cond) {
		return fmt.Errorf("dense solve: %w", err)
	}

	return nil
}
