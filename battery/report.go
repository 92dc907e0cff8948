// SPDX-License-Identifier: MIT
// Package battery: case outcomes.

package battery

import (
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/kspcheck/verify"
)

// Status is the outcome of one case.
type Status int

const (
	StatusPass Status = iota
	StatusFail
	StatusSkip
	StatusXFail
	StatusXPass
	StatusError
)

var statusNames = [...]string{"PASS", "FAIL", "SKIP", "XFAIL", "XPASS", "ERROR"}

// String implements fmt.Stringer.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}

	return statusNames[s]
}

// MarshalText renders the status name in JSON reports.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText parses a status name written by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}

	return fmt.Errorf("battery: unknown status %q", text)
}

// Report is the outcome of one case in one suite.
type Report struct {
	Suite  string `json:"suite"`
	Case   string `json:"case"`
	Config string `json:"config"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
	Strict bool   `json:"strict,omitempty"`

	RequiredRTol float64         `json:"required_rtol,omitempty"`
	Achieved     float64         `json:"achieved,omitempty"`
	MaxAbsDiff   float64         `json:"max_abs_diff,omitempty"`
	Iterations   []int           `json:"iterations,omitempty"`
	SetupTime    time.Duration   `json:"setup_ns,omitempty"`
	SolveTimes   []time.Duration `json:"solve_ns,omitempty"`
	TotalTime    time.Duration   `json:"total_ns,omitempty"`

	// Result is the raw check outcome; nil for skipped and aborted cases.
	Result *verify.Result `json:"-"`
}

// Failing reports whether the outcome fails the run: FAIL, ERROR, or a
// strict XPASS.
func (r Report) Failing() bool {
	return r.Status == StatusFail || r.Status == StatusError || (r.Status == StatusXPass && r.Strict)
}

// withResult copies the metrics of res into r.
func (r *Report) withResult(res verify.Result) {
	r.Result = &res
	r.RequiredRTol = res.RequiredRTol
	r.Achieved = res.Achieved
	r.MaxAbsDiff = res.MaxAbsDiff
	r.Iterations = res.Iterations
	r.SetupTime = res.SetupTime
	r.SolveTimes = res.SolveTimes
	r.TotalTime = res.TotalTime
}

// Summary counts outcomes.
type Summary struct {
	Counts  map[Status]int `json:"counts"`
	Total   int            `json:"total"`
	Failing int            `json:"failing"`
}

// Summarize counts reports by status.
func Summarize(reports []Report) Summary {
	s := Summary{Counts: make(map[Status]int, len(statusNames))}
	for _, r := range reports {
		s.Counts[r.Status]++
		s.Total++
		if r.Failing() {
			s.Failing++
		}
	}

	return s
}

// OK reports whether no case fails the run.
func (s Summary) OK() bool { return s.Failing == 0 }

// String renders "N passed, N failed, ..." omitting zero counts.
func (s Summary) String() string {
	words := map[Status]string{
		StatusPass: "passed", StatusFail: "failed", StatusSkip: "skipped",
		StatusXFail: "xfailed", StatusXPass: "xpassed", StatusError: "errors",
	}
	var parts []string
	for st := StatusPass; st <= StatusError; st++ {
		if n := s.Counts[st]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, words[st]))
		}
	}
	if len(parts) == 0 {
		return "no cases"
	}

	return strings.Join(parts, ", ")
}
