// SPDX-License-Identifier: MIT
// Package verify: Verifier and Session.

package verify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/kspcheck/internal/logging"
	"github.com/katalvlaran/kspcheck/ksp"
	"github.com/katalvlaran/kspcheck/sparse"
)

// tolerance is an elementwise closeness bound |got − want| ≤ atol + rtol·|want|.
type tolerance struct {
	rtol, atol float64
}

// Verifier prepares configurations on one engine and runs the checks.
// It holds no per-case state and may be reused sequentially.
type Verifier struct {
	eng        ksp.Engine
	log        *slog.Logger
	coarsening ksp.Coarsening
	roundTrip  tolerance
	reference  tolerance
}

// New returns a Verifier for eng. Panics if eng is nil.
func New(eng ksp.Engine, opts ...Option) *Verifier {
	if eng == nil {
		panic("verify: New: nil engine")
	}
	v := &Verifier{
		eng:        eng,
		log:        logging.Discard(),
		coarsening: DefaultCoarsening,
		roundTrip:  tolerance{DefaultRoundTripRTol, DefaultRoundTripATol},
		reference:  tolerance{DefaultReferenceRTol, DefaultReferenceATol},
	}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Engine returns the wrapped engine.
func (v *Verifier) Engine() ksp.Engine { return v.eng }

// Prepare normalizes and validates cfg and fills in the default coarsening
// for multigrid preconditioners. It never consults engine availability.
// Errors: ksp.ErrConfiguration.
func (v *Verifier) Prepare(cfg ksp.Config) (ksp.Config, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, verifyErrorf(opPrepare, err)
	}
	if cfg.PC.IsMultigrid() && cfg.Coarsening == ksp.CoarsenDefault {
		cfg.Coarsening = v.coarsening
	}

	return cfg, nil
}

// Setup prepares cfg and binds it to a, timing the engine setup.
//
// Errors:
//   - ksp.ErrConfiguration for an inconsistent cfg or a non-square operator;
//   - ksp.ErrUnsupportedBackend when cfg names a component the engine lacks
//     (upstream gating should have skipped the case);
//   - ksp.ErrBreakdown from a failed factorization.
//   - ksp.ErrTooLarge when a backend refuses the operator size.
func (v *Verifier) Setup(a *sparse.Operator, cfg ksp.Config) (*Session, error) {
	cfg, err := v.Prepare(cfg)
	if err != nil {
		return nil, verifyErrorf(opSetup, err)
	}

	start := time.Now()
	h, err := v.eng.Setup(a, cfg)
	elapsed := time.Since(start)
	if err != nil {
		return nil, verifyErrorf(opSetup, fmt.Errorf("%s on %s: %w", cfg, v.eng.Name(), err))
	}
	v.log.Debug("solver setup",
		"engine", v.eng.Name(), "config", cfg.String(), "coarsening", string(cfg.Coarsening),
		"rows", a.Rows(), "nnz", a.NNZ(), "elapsed", elapsed)

	return &Session{a: a, cfg: cfg, h: h, log: v.log, setup: elapsed}, nil
}

// Session is a configuration bound to an operator. Not safe for concurrent use.
type Session struct {
	a      *sparse.Operator
	cfg    ksp.Config
	h      ksp.Handle
	log    *slog.Logger
	setup  time.Duration
	solves []time.Duration
}

// Config returns the prepared configuration (defaults filled in).
func (s *Session) Config() ksp.Config { return s.cfg }

// SetupTime returns the engine setup duration.
func (s *Session) SetupTime() time.Duration { return s.setup }

// SolveTimes returns the duration of every Solve call so far, in order.
func (s *Session) SolveTimes() []time.Duration {
	return append([]time.Duration(nil), s.solves...)
}

// Solve returns the solution of A·x = b in a fresh vector.
//
// Errors: sparse.ErrDimensionMismatch for len(b) != Rows(); ksp.ErrClosed
// after Close; ksp.ErrConvergence or ksp.ErrBreakdown from the engine, in
// which case x and stats describe the last iterate.
func (s *Session) Solve(b []float64) (x []float64, st ksp.Stats, err error) {
	if s.h == nil {
		return nil, st, verifyErrorf(opSolve, ksp.ErrClosed)
	}
	if err = sparse.ValidateVecLen(b, s.a.Rows()); err != nil {
		return nil, st, verifyErrorf(opSolve, err)
	}

	x = s.a.NewVecRight()
	start := time.Now()
	st, err = s.h.Solve(b, x)
	elapsed := time.Since(start)
	s.solves = append(s.solves, elapsed)
	s.log.Log(context.Background(), logging.LevelTrace, "solve",
		"config", s.cfg.String(), "index", len(s.solves)-1, "iterations", st.Iterations,
		"residual", st.Residual, "converged", st.Converged, "elapsed", elapsed)
	if err != nil {
		return x, st, verifyErrorf(opSolve, err)
	}

	return x, st, nil
}

// Close releases the engine handle. Idempotent.
func (s *Session) Close() error {
	if s.h == nil {
		return nil
	}
	err := s.h.Close()
	s.h = nil

	return err
}
