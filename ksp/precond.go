// SPDX-License-Identifier: MIT
// Package ksp: preconditioners of the native engine.

package ksp

import (
	"fmt"

	"github.com/katalvlaran/kspcheck/sparse"
)

// preconditioner applies dst = M⁻¹·src. dst and src never alias.
type preconditioner interface {
	apply(dst, src []float64) error
}

// factorization is a complete direct solve of A·x = b.
type factorization interface {
	solve(dst, b []float64) error
}

// newPreconditioner builds the preconditioner named by cfg (already validated).
func newPreconditioner(a *sparse.Operator, cfg Config) (preconditioner, error) {
	switch cfg.PC {
	case PCNone:
		return identityPC{}, nil
	case PCJacobi:
		return newJacobi(a)
	case PCAMG:
		return newAMG(a, cfg.Coarsening)
	case PCLU, PCCholesky:
		f, err := newFactorization(a, cfg.PC, cfg.Backend)
		if err != nil {
			return nil, err
		}
		return factorPC{f: f}, nil
	default:
		return nil, fmt.Errorf("preconditioner %q: %w", cfg.PC, ErrUnsupportedBackend)
	}
}

// newFactorization dispatches lu/cholesky to a backend; no backend selects skyline.
func newFactorization(a *sparse.Operator, pc PCType, backend Backend) (factorization, error) {
	cholesky := pc == PCCholesky
	switch backend {
	case BackendNone, BackendSkyline:
		return newSkyline(a, cholesky)
	case BackendDense:
		return newDenseFactor(a, cholesky)
	default:
		return nil, fmt.Errorf("backend %q: %w", backend, ErrUnsupportedBackend)
	}
}

// identityPC is M = I.
type identityPC struct{}

func (identityPC) apply(dst, src []float64) error {
	copy(dst, src)

	return nil
}

// jacobiPC is M = diag(A).
type jacobiPC struct {
	inv []float64
}

func newJacobi(a *sparse.Operator) (jacobiPC, error) {
	d := a.Diagonal()
	for i, v := range d {
		if v == 0 {
			return jacobiPC{}, fmt.Errorf("jacobi: zero diagonal at row %d: %w", i, ErrBreakdown)
		}
		d[i] = 1 / v
	}

	return jacobiPC{inv: d}, nil
}

func (p jacobiPC) apply(dst, src []float64) error {
	for i, v := range src {
		dst[i] = v * p.inv[i]
	}

	return nil
}

// factorPC applies a complete factorization, so one application is an exact solve.
type factorPC struct {
	f factorization
}

func (p factorPC) apply(dst, src []float64) error {
	return p.f.solve(dst, src)
}
