// SPDX-License-Identifier: MIT
// Package battery: sequential case runner.

package battery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/kspcheck/dataset"
	"github.com/katalvlaran/kspcheck/internal/logging"
	"github.com/katalvlaran/kspcheck/ksp"
	"github.com/katalvlaran/kspcheck/sparse"
	"github.com/katalvlaran/kspcheck/verify"
)

// Runner executes plans one at a time and reports every case.
type Runner struct {
	v     *verify.Verifier
	log   *slog.Logger
	trace *logging.Trace
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger; nil keeps logging disabled.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.log = logging.OrDiscard(l) }
}

// WithTrace appends one JSONL event per finished case to t.
func WithTrace(t *logging.Trace) RunnerOption {
	return func(r *Runner) { r.trace = t }
}

// NewRunner returns a Runner driving v. Panics if v is nil.
func NewRunner(v *verify.Verifier, opts ...RunnerOption) *Runner {
	if v == nil {
		panic("battery: NewRunner: nil verifier")
	}
	r := &Runner{v: v, log: logging.Discard()}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Plan selects cases for platform p against the verifier's engine. Each
// configuration is first completed by the verifier (tolerance and coarsening
// defaults), so gating sees exactly what Setup will receive. A configuration
// the verifier rejects is left as written and fails when run.
func (r *Runner) Plan(cases []Case, p Platform) []Plan {
	prepared := make([]Case, len(cases))
	for i, c := range cases {
		if cfg, err := r.v.Prepare(c.Config); err == nil {
			c.Config = cfg
		}
		prepared[i] = c
	}
	plans := Select(prepared, p, r.v.Engine())
	for i := range plans {
		plans[i].Case = cases[i]
	}

	return plans
}

// RunSynthetic runs the round-trip check with b = 1 on a for every plan.
func (r *Runner) RunSynthetic(plans []Plan, a *sparse.Operator) []Report {
	b := a.NewVecLeft()
	for i := range b {
		b[i] = 1
	}

	return r.run(SuiteSynthetic, plans, func(cfg ksp.Config) (verify.Result, error) {
		return r.v.RoundTrip(a, cfg, b)
	})
}

// RunReference runs the reference check on p for every plan.
func (r *Runner) RunReference(plans []Plan, p *dataset.Problem) []Report {
	return r.run(SuiteReference, plans, func(cfg ksp.Config) (verify.Result, error) {
		return r.v.Reference(p, cfg)
	})
}

func (r *Runner) run(suite string, plans []Plan, check func(ksp.Config) (verify.Result, error)) []Report {
	reports := make([]Report, 0, len(plans))
	for _, pl := range plans {
		rep := Report{Suite: suite, Case: pl.Case.Name, Config: pl.Config.String(), Strict: pl.Case.Strict}
		if !pl.Run {
			rep.Status, rep.Reason = StatusSkip, pl.Reason
		} else {
			res, err := check(pl.Config)
			classify(&rep, pl, res, err)
		}
		r.emit(rep)
		reports = append(reports, rep)
	}

	return reports
}

// classify maps a check outcome onto a status, inverting expected failures.
func classify(rep *Report, pl Plan, res verify.Result, err error) {
	if err != nil {
		rep.Status, rep.Reason = StatusError, err.Error()
		if pl.ExpectFail && !gatingDefect(err) {
			rep.Status, rep.Reason = StatusXFail, fmt.Sprintf("%s: %v", pl.Case.ExpectReason, err)
		}
		return
	}

	rep.withResult(res)
	switch {
	case res.Passed && pl.ExpectFail:
		rep.Status, rep.Reason = StatusXPass, "unexpectedly passed: "+pl.Case.ExpectReason
	case res.Passed:
		rep.Status = StatusPass
	case pl.ExpectFail:
		rep.Status, rep.Reason = StatusXFail, fmt.Sprintf("%s: %v", pl.Case.ExpectReason, res.Err)
	default:
		rep.Status = StatusFail
		rep.Reason = fmt.Sprintf("%v (achieved %.3e, required %.1e)", res.Err, res.Achieved, res.RequiredRTol)
	}
}

// gatingDefect reports whether err means the case should never have been
// selected. Such errors stay ERROR even on an expected-fail case.
func gatingDefect(err error) bool {
	return errors.Is(err, ksp.ErrConfiguration) || errors.Is(err, ksp.ErrUnsupportedBackend)
}

// RunEquivalence compares the two construction paths of the tridiagonal
// operator for each size and checks the diagonal.
func (r *Runner) RunEquivalence(sizes []int) []Report {
	reports := make([]Report, 0, len(sizes))
	for _, n := range sizes {
		start := time.Now()
		rep := Report{Suite: SuiteEquivalence, Case: fmt.Sprintf("tridiagonal/n=%d", n)}
		rep.Status, rep.Reason = checkEquivalence(n)
		rep.TotalTime = time.Since(start)
		r.emit(rep)
		reports = append(reports, rep)
	}

	return reports
}

func checkEquivalence(n int) (Status, string) {
	direct, err := sparse.Tridiagonal(n)
	if err != nil {
		return StatusError, err.Error()
	}
	fromCSR, err := sparse.TridiagonalFromCSR(n)
	if err != nil {
		return StatusError, err.Error()
	}
	if err = sparse.CheckEquivalent(direct, fromCSR); err != nil {
		return StatusFail, err.Error()
	}
	if rows, cols := direct.Dims(); rows != n || cols != n {
		return StatusFail, fmt.Sprintf("dims %dx%d, want %dx%d", rows, cols, n, n)
	}
	for i, d := range direct.Diagonal() {
		if d != sparse.TridiagonalDiag {
			return StatusFail, fmt.Sprintf("diagonal[%d]=%g, want %g", i, d, sparse.TridiagonalDiag)
		}
	}

	return StatusPass, ""
}

// emit logs and traces one report.
func (r *Runner) emit(rep Report) {
	level := slog.LevelInfo
	if rep.Failing() {
		level = slog.LevelWarn
	}
	r.log.Log(context.Background(), level, "case",
		"suite", rep.Suite, "case", rep.Case, "status", rep.Status.String(),
		"reason", rep.Reason, "total", rep.TotalTime)

	r.trace.Log(map[string]any{
		"suite":      rep.Suite,
		"case":       rep.Case,
		"config":     rep.Config,
		"status":     rep.Status.String(),
		"reason":     rep.Reason,
		"iterations": rep.Iterations,
		"achieved":   rep.Achieved,
		"setup_ns":   rep.SetupTime.Nanoseconds(),
		"total_ns":   rep.TotalTime.Nanoseconds(),
	})
}
