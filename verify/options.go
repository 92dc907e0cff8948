// SPDX-License-Identifier: MIT

// Package verify: functional options for Verifier.
//
// Options panic only on nonsensical values (programmer error).
package verify

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/kspcheck/ksp"
)

// Verification defaults (numpy assert_allclose and allclose respectively).
const (
	DefaultRoundTripRTol = 1e-7
	DefaultRoundTripATol = 0.0
	DefaultReferenceRTol = 1e-5
	DefaultReferenceATol = 1e-8
)

// DefaultCoarsening is applied to multigrid configurations that set none.
const DefaultCoarsening = ksp.CoarsenGreedy

const (
	panicToleranceInvalid = "verify: tolerances must be finite and >= 0, not both zero"
	panicCoarseningEmpty  = "verify: WithCoarsening: empty coarsening"
)

// Option configures a Verifier.
type Option func(*Verifier)

// WithLogger sets the logger; nil keeps logging disabled.
func WithLogger(l *slog.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.log = l
		}
	}
}

// WithCoarsening sets the coarsening applied to multigrid configurations
// that do not name one. Panics on an empty value.
func WithCoarsening(c ksp.Coarsening) Option {
	if c == ksp.CoarsenDefault {
		panic(panicCoarseningEmpty)
	}

	return func(v *Verifier) { v.coarsening = c }
}

// WithRoundTripTolerance sets the RoundTrip check tolerances.
func WithRoundTripTolerance(rtol, atol float64) Option {
	mustTolerance(rtol, atol)

	return func(v *Verifier) { v.roundTrip = tolerance{rtol, atol} }
}

// WithReferenceTolerance sets the Reference check tolerances.
func WithReferenceTolerance(rtol, atol float64) Option {
	mustTolerance(rtol, atol)

	return func(v *Verifier) { v.reference = tolerance{rtol, atol} }
}

func mustTolerance(rtol, atol float64) {
	bad := func(x float64) bool { return math.IsNaN(x) || math.IsInf(x, 0) || x < 0 }
	if bad(rtol) || bad(atol) || (rtol == 0 && atol == 0) {
		panic(panicToleranceInvalid)
	}
}
