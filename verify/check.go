// SPDX-License-Identifier: MIT
// Package verify: the round-trip and reference checks.

package verify

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/kspcheck/dataset"
	"github.com/katalvlaran/kspcheck/ksp"
	"github.com/katalvlaran/kspcheck/sparse"
	"gonum.org/v1/gonum/floats"
)

// Result is the outcome of one check.
type Result struct {
	Config ksp.Config

	// Passed is true only when every solve converged and every vector met
	// the verification tolerance.
	Passed bool
	// Err explains a failure and always wraps ksp.ErrConvergence; nil on pass.
	Err error

	// RequiredRTol is the solver's relative residual tolerance.
	RequiredRTol float64
	// Achieved is the worst true relative residual ‖b−Ax‖/‖b‖ over all solves.
	Achieved float64
	// MaxAbsDiff is the worst elementwise deviation seen by the check.
	MaxAbsDiff float64

	// Iterations per solve, in order.
	Iterations []int

	SetupTime  time.Duration
	SolveTimes []time.Duration
	TotalTime  time.Duration
}

// allClose checks |got[i] − want[i]| ≤ atol + rtol·|want[i]| for every i and
// returns the first violating index (or −1) and the largest deviation.
// A NaN anywhere counts as a violation.
func allClose(got, want []float64, tol tolerance) (bad int, maxDiff float64) {
	bad = -1
	maxDiff = floats.Distance(got, want, math.Inf(1))
	var d float64
	for i := range want {
		d = math.Abs(got[i] - want[i])
		if !(d <= tol.atol+tol.rtol*math.Abs(want[i])) {
			return i, maxDiff
		}
	}

	return bad, maxDiff
}

// record folds one solve into r. A numerical failure ends the check:
// it returns false with r.Err set.
func (r *Result) record(i int, st ksp.Stats, err error) bool {
	r.Iterations = append(r.Iterations, st.Iterations)
	r.Achieved = math.Max(r.Achieved, st.Residual)
	if err != nil {
		r.Err = convergenceFailure(fmt.Errorf("solve %d: %w", i, err))
		return false
	}

	return true
}

// setupFailure turns a numerical setup failure (a factorization breakdown)
// into a failed Result; anything else aborts the case.
func setupFailure(cfg ksp.Config, tag string, err error) (Result, error) {
	if isNumerical(err) {
		return Result{Config: cfg, RequiredRTol: cfg.Normalize().RTol, Err: convergenceFailure(err)}, nil
	}

	return Result{Config: cfg}, verifyErrorf(tag, err)
}

// RoundTrip solves A·x = b once and checks that A·x reproduces b.
//
// Returned errors abort the case (setup or usage problems); numerical
// failures are reported through Result.Err with Passed false.
func (v *Verifier) RoundTrip(a *sparse.Operator, cfg ksp.Config, b []float64) (r Result, err error) {
	start := time.Now()
	s, err := v.Setup(a, cfg)
	if err != nil {
		return setupFailure(cfg, opRoundTrip, err)
	}
	defer s.Close()

	r = Result{Config: s.Config(), RequiredRTol: s.Config().RTol, SetupTime: s.SetupTime()}
	defer func() {
		r.SolveTimes = s.SolveTimes()
		r.TotalTime = time.Since(start)
	}()

	x, st, err := s.Solve(b)
	if err != nil && !isNumerical(err) {
		return r, verifyErrorf(opRoundTrip, err)
	}
	if !r.record(0, st, err) {
		return r, nil
	}

	ax := a.NewVecLeft()
	if err = a.MulVec(ax, x); err != nil {
		return r, verifyErrorf(opRoundTrip, err)
	}
	bad, diff := allClose(ax, b, v.roundTrip)
	r.MaxAbsDiff = diff
	if bad >= 0 {
		r.Err = convergenceFailure(fmt.Errorf(
			"A·x differs from b at %d (%g vs %g), max |diff| %.3e, rtol %g atol %g, residual %.3e required %.1e: %w",
			bad, ax[bad], b[bad], diff, v.roundTrip.rtol, v.roundTrip.atol, r.Achieved, r.RequiredRTol, ErrToleranceExceeded))
		return r, nil
	}
	r.Passed = true

	return r, nil
}

// Reference sets cfg up once on p.Operator and solves every pair in stored
// order, comparing x with the expected solution. The first failing pair
// ends the check.
func (v *Verifier) Reference(p *dataset.Problem, cfg ksp.Config) (r Result, err error) {
	start := time.Now()
	if err = p.Validate(); err != nil {
		return Result{Config: cfg}, verifyErrorf(opReference, err)
	}
	s, err := v.Setup(p.Operator, cfg)
	if err != nil {
		return setupFailure(cfg, opReference, err)
	}
	defer s.Close()

	r = Result{Config: s.Config(), RequiredRTol: s.Config().RTol, SetupTime: s.SetupTime()}
	defer func() {
		r.SolveTimes = s.SolveTimes()
		r.TotalTime = time.Since(start)
	}()

	for i, vp := range p.Pairs {
		x, st, err := s.Solve(vp.RHS)
		if err != nil && !isNumerical(err) {
			return r, verifyErrorf(opReference, err)
		}
		if !r.record(i, st, err) {
			return r, nil
		}
		bad, diff := allClose(x, vp.Expected, v.reference)
		r.MaxAbsDiff = math.Max(r.MaxAbsDiff, diff)
		if bad >= 0 {
			r.Err = convergenceFailure(fmt.Errorf(
				"pair %d: x differs from expected at %d (%g vs %g), max |diff| %.3e, rtol %g atol %g, residual %.3e required %.1e: %w",
				i, bad, x[bad], vp.Expected[bad], diff, v.reference.rtol, v.reference.atol, r.Achieved, r.RequiredRTol, ErrToleranceExceeded))
			return r, nil
		}
	}
	r.Passed = true

	return r, nil
}
