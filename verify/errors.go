// SPDX-License-Identifier: MIT
// Package verify: sentinel error set.

package verify

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/kspcheck/ksp"
)

// ErrToleranceExceeded marks a solution that converged by the solver's own
// test but failed the elementwise verification check.
var ErrToleranceExceeded = errors.New("verify: solution outside verification tolerance")

// Operation tags for wrapped errors.
const (
	opPrepare   = "Verifier.Prepare"
	opSetup     = "Verifier.Setup"
	opSolve     = "Session.Solve"
	opRoundTrip = "RoundTrip"
	opReference = "Reference"
)

// verifyErrorf wraps err with an operation tag. Call only with a non-nil err.
func verifyErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// convergenceFailure marks a numerical failure as ksp.ErrConvergence unless
// it already is one.
func convergenceFailure(err error) error {
	if errors.Is(err, ksp.ErrConvergence) {
		return err
	}

	return fmt.Errorf("%w: %w", ksp.ErrConvergence, err)
}

// isNumerical reports whether err is an outcome of the solve rather than a
// usage error.
func isNumerical(err error) bool {
	return errors.Is(err, ksp.ErrConvergence) || errors.Is(err, ksp.ErrBreakdown)
}
