// SPDX-License-Identifier: MIT
// Package battery: cases, annotations and selection.

package battery

import (
	"fmt"

	"github.com/katalvlaran/kspcheck/ksp"
)

// Annotation marks a case beyond its platform predicate.
type Annotation int

const (
	// Normal cases run and must pass.
	Normal Annotation = iota
	// Skip cases are never run where the annotation applies.
	Skip
	// ExpectedFail cases run; failure is reported XFail, success XPass.
	ExpectedFail
)

// String implements fmt.Stringer.
func (a Annotation) String() string {
	switch a {
	case Normal:
		return "normal"
	case Skip:
		return "skip"
	case ExpectedFail:
		return "xfail"
	default:
		return fmt.Sprintf("Annotation(%d)", int(a))
	}
}

// Case is one row of a configuration table.
type Case struct {
	Name   string
	Config ksp.Config

	// Applies gates the case by platform; nil means always.
	Applies    Predicate
	SkipReason string

	// Expect annotates the case where ExpectWhen holds (nil means always).
	Expect       Annotation
	ExpectWhen   Predicate
	ExpectReason string
	// Strict turns an XPass into a failure.
	Strict bool
}

// Plan is the selection decision for one case.
type Plan struct {
	Case Case
	// Config is the configuration that gating checked and that runs.
	Config     ksp.Config
	Run        bool
	Reason     string // why the case is skipped
	ExpectFail bool
}

// Support is the part of ksp.Engine that gating needs.
type Support interface {
	Supports(cfg ksp.Config) error
}

// Select decides, in table order, which cases run on platform p with eng.
// Selection never calls Setup.
func Select(cases []Case, p Platform, eng Support) []Plan {
	plans := make([]Plan, 0, len(cases))
	for _, c := range cases {
		plans = append(plans, selectOne(c, p, eng))
	}

	return plans
}

func selectOne(c Case, p Platform, eng Support) Plan {
	pl := Plan{Case: c, Config: c.Config}
	if !c.Applies.holds(p) {
		pl.Reason = c.SkipReason
		if pl.Reason == "" {
			pl.Reason = fmt.Sprintf("not applicable on %s", p.OS)
		}
		return pl
	}

	annotated := c.Expect != Normal && c.ExpectWhen.holds(p)
	if annotated && c.Expect == Skip {
		pl.Reason = c.ExpectReason
		if pl.Reason == "" {
			pl.Reason = "skipped by annotation"
		}
		return pl
	}

	if err := eng.Supports(c.Config); err != nil {
		pl.Reason = fmt.Sprintf("engine: %v", err)
		return pl
	}

	pl.Run = true
	pl.ExpectFail = annotated && c.Expect == ExpectedFail

	return pl
}
