// SPDX-License-Identifier: MIT
// Package ksp: sentinel error set.
// Setup distinguishes caller mistakes (ErrConfiguration) from gating defects
// (ErrUnsupportedBackend); Solve reports numerical outcomes (ErrConvergence,
// ErrBreakdown). Match with errors.Is.

package ksp

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks an internally inconsistent Config, e.g. preonly
	// without a factoring preconditioner. Never silently corrected.
	ErrConfiguration = errors.New("ksp: invalid solver configuration")

	// ErrUnsupportedBackend marks a Config that names a method, preconditioner,
	// backend or coarsening the engine was not built with. Reaching Setup with
	// such a Config means upstream gating failed.
	ErrUnsupportedBackend = errors.New("ksp: component not available in this engine")

	// ErrConvergence marks a solve that did not reach the relative residual
	// tolerance within the iteration limit.
	ErrConvergence = errors.New("ksp: solve did not converge")

	// ErrBreakdown marks a numerical breakdown: zero pivot, loss of positive
	// definiteness, or a vanishing Krylov inner product.
	ErrBreakdown = errors.New("ksp: numerical breakdown")

	// ErrTooLarge marks an operator beyond the size a backend accepts.
	ErrTooLarge = errors.New("ksp: operator too large for backend")

	// ErrClosed is returned by Solve on a closed Handle.
	ErrClosed = errors.New("ksp: handle closed")
)

// Operation tags for wrapped errors.
const (
	opValidate = "Config.Validate"
	opSupports = "Supports"
	opSetup    = "Setup"
	opSolve    = "Solve"
)

// kspErrorf wraps err with an operation tag. Call only with a non-nil err.
func kspErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
