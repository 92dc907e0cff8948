// SPDX-License-Identifier: MIT

// Package ksp: functional construction of Config values.
//
// Design goals:
//   - Deterministic: no global state; options apply in order, last wins.
//   - Safe by construction: WithX panics only on nonsensical values
//     (programmer error); Config.Validate reports inconsistent combinations.
package ksp

import "math"

// Internal panic messages (no magic strings).
const (
	panicRTolInvalid    = "ksp: WithRTol: rtol must be finite and in (0,1)"
	panicMaxIterInvalid = "ksp: WithMaxIterations: n must be > 0"
)

// Option mutates a Config under construction.
type Option func(*Config)

// NewConfig returns a Config for (method, pc) with defaults, then applies opts.
// The result is normalized but not validated.
func NewConfig(method Method, pc PCType, opts ...Option) Config {
	c := Config{
		Method:        method,
		PC:            pc,
		RTol:          DefaultRTol,
		MaxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithRTol sets the relative residual tolerance.
// Panics unless 0 < rtol < 1 and finite.
func WithRTol(rtol float64) Option {
	if math.IsNaN(rtol) || math.IsInf(rtol, 0) || rtol <= 0 || rtol >= 1 {
		panic(panicRTolInvalid)
	}

	return func(c *Config) { c.RTol = rtol }
}

// WithMaxIterations caps Krylov iterations. Panics if n <= 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterInvalid)
	}

	return func(c *Config) { c.MaxIterations = n }
}

// WithBackend selects the factorization backend for lu/cholesky.
func WithBackend(b Backend) Option {
	return func(c *Config) { c.Backend = b }
}

// WithCoarsening selects the multigrid coarsening strategy.
func WithCoarsening(s Coarsening) Option {
	return func(c *Config) { c.Coarsening = s }
}
