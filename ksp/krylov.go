// SPDX-License-Identifier: MIT
// Package ksp: Krylov iterations of the native engine.
//
// cg and bicgstab are driven by gonum's linsolve. The engine supplies the
// operator (sparse.Operator implements linsolve.MulVecToer) and the
// preconditioner solve; linsolve owns the iteration and its stopping test
// ‖r‖/‖b‖ < RTol. All methods start from x = 0. The reported Stats.Residual
// is always recomputed from the final iterate (true residual).

package ksp

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/kspcheck/sparse"
	"gonum.org/v1/exp/linsolve"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// normOrOne returns ‖b‖₂, or 1 for a zero right-hand side so relative
// quantities stay finite.
func normOrOne(b []float64) float64 {
	if n := floats.Norm(b, 2); n != 0 {
		return n
	}

	return 1
}

// trueResidual returns ‖b − A·x‖/‖b‖ using work as scratch (len Rows()).
func trueResidual(a *sparse.Operator, b, x, work []float64) float64 {
	if err := a.MulVec(work, x); err != nil {
		return 0 // lengths validated by the caller
	}
	floats.AddScaledTo(work, b, -1, work)

	return floats.Norm(work, 2) / normOrOne(b)
}

// solvePreOnly applies the preconditioner once: x = M⁻¹·b.
func solvePreOnly(a *sparse.Operator, pc preconditioner, b, x []float64) (Stats, error) {
	st := Stats{Iterations: 1, PCApply: 1}
	if err := pc.apply(x, b); err != nil {
		return st, err
	}
	st.Residual = trueResidual(a, b, x, make([]float64, len(b)))
	st.MatVec = 1
	st.Converged = true

	return st, nil
}

// countingOperator counts operator applications made by linsolve.
type countingOperator struct {
	a *sparse.Operator
	n int
}

func (c *countingOperator) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	c.n++
	c.a.MulVecTo(dst, trans, x)
}

// preconSolve adapts pc to linsolve's PreconSolve hook. Every native
// preconditioner is symmetric, so trans is ignored. n counts applications.
func preconSolve(pc preconditioner, size int, n *int) func(dst *mat.VecDense, rhs mat.Vector, trans bool) error {
	src := make([]float64, size)
	out := make([]float64, size)

	return func(dst *mat.VecDense, rhs mat.Vector, _ bool) error {
		for i := range src {
			src[i] = rhs.AtVec(i)
		}
		if err := pc.apply(out, src); err != nil {
			return err
		}
		*n++
		if dst.IsEmpty() {
			dst.ReuseAsVec(size)
		}
		for i, v := range out {
			dst.SetVec(i, v)
		}

		return nil
	}
}

// solveKrylov runs method through linsolve.Iterative and maps its outcome:
// the iteration limit becomes ErrConvergence and a linsolve breakdown
// becomes ErrBreakdown. Errors from the preconditioner pass through.
//
// Complexity: O(iterations · (nnz + cost(M⁻¹))).
func solveKrylov(name string, method linsolve.Method, a *sparse.Operator, pc preconditioner, b, x []float64, cfg Config) (Stats, error) {
	var st Stats
	if floats.Norm(b, 2) == 0 {
		st.Converged = true // x = 0 is exact
		return st, nil
	}

	n := len(b)
	op := &countingOperator{a: a}
	settings := &linsolve.Settings{
		Dst:           mat.NewVecDense(n, x),
		Tolerance:     cfg.RTol,
		MaxIterations: cfg.MaxIterations,
		PreconSolve:   preconSolve(pc, n, &st.PCApply),
	}
	res, err := linsolve.Iterative(op, mat.NewVecDense(n, append([]float64(nil), b...)), method, settings)
	st.MatVec = op.n
	if res != nil {
		st.Iterations = res.Stats.Iterations
		if res.X != nil {
			for i := range x {
				x[i] = res.X.AtVec(i)
			}
		}
	}
	st.Residual = trueResidual(a, b, x, make([]float64, n))

	var breakdown *linsolve.BreakdownError
	switch {
	case err == nil:
		st.Converged = true
		return st, nil
	case errors.Is(err, linsolve.ErrIterationLimit):
		if st.Iterations == 0 {
			st.Iterations = cfg.MaxIterations
		}
		return st, fmt.Errorf("%s: residual %.3e after %d iterations, rtol %.1e: %w", name, st.Residual, st.Iterations, cfg.RTol, ErrConvergence)
	case errors.As(err, &breakdown):
		return st, fmt.Errorf("%s: %v at iteration %d: %w", name, err, st.Iterations, ErrBreakdown)
	default:
		return st, err
	}
}

// solveCG runs preconditioned conjugate gradients. A and M must be
// symmetric positive definite.
func solveCG(a *sparse.Operator, pc preconditioner, b, x []float64, cfg Config) (Stats, error) {
	return solveKrylov("cg", &linsolve.CG{}, a, pc, b, x, cfg)
}

// solveBiCGStab runs preconditioned BiCGStab for general square A.
func solveBiCGStab(a *sparse.Operator, pc preconditioner, b, x []float64, cfg Config) (Stats, error) {
	return solveKrylov("bicgstab", &linsolve.BiCGStab{}, a, pc, b, x, cfg)
}
