// SPDX-License-Identifier: MIT
// Package ksp: the engine contract.

package ksp

import "github.com/katalvlaran/kspcheck/sparse"

// Engine is a linear-algebra engine able to prepare solvers for sparse operators.
type Engine interface {
	// Name identifies the engine build in reports.
	Name() string

	// Available reports whether the identifier of the given kind is part of
	// this engine build.
	Available(kind Kind, id string) bool

	// Supports returns nil when every component of cfg is available, or an
	// error wrapping ErrUnsupportedBackend naming the first missing one.
	Supports(cfg Config) error

	// Setup binds a to cfg and performs all one-time preparation
	// (preconditioner construction, symbolic and numeric factorization).
	// The operator is only read, never modified.
	Setup(a *sparse.Operator, cfg Config) (Handle, error)
}

// Handle is a prepared solver. Handles are not safe for concurrent use.
type Handle interface {
	// Solve writes the solution of A·x = b into x, starting from a zero
	// initial guess. len(b) must equal Rows() and len(x) Cols().
	Solve(b, x []float64) (Stats, error)

	// Close releases preconditioner and factorization memory. Further Solve
	// calls fail. Close is idempotent.
	Close() error
}
