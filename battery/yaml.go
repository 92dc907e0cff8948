// SPDX-License-Identifier: MIT
// Package battery: YAML case tables.
//
// Layout:
//
//	cases:
//	  - name: cg/hypre            # optional, defaults to method/pc[/backend]
//	    method: cg
//	    pc: hypre
//	    backend: mkl_pardiso      # optional
//	    coarsening: HMIS          # optional, multigrid only
//	    rtol: 1e-10               # optional
//	    max_iterations: 500       # optional
//	    only_on: [darwin]         # optional, exclusive with except_on
//	    except_on: [windows]
//	    skip: "reason"            # optional Skip annotation
//	    skip_on: [linux]          # optional, where skip applies
//	    xfail:                    # optional ExpectedFail annotation
//	      on: [windows]
//	      reason: "flaky"
//	      strict: false

package battery

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/kspcheck/ksp"
	"gopkg.in/yaml.v3"
)

type caseFile struct {
	Cases []caseSpec `yaml:"cases"`
}

type caseSpec struct {
	Name          string    `yaml:"name"`
	Method        string    `yaml:"method"`
	PC            string    `yaml:"pc"`
	Backend       string    `yaml:"backend"`
	Coarsening    string    `yaml:"coarsening"`
	RTol          float64   `yaml:"rtol"`
	MaxIterations int       `yaml:"max_iterations"`
	OnlyOn        []string  `yaml:"only_on"`
	ExceptOn      []string  `yaml:"except_on"`
	Skip          string    `yaml:"skip"`
	SkipOn        []string  `yaml:"skip_on"`
	XFail         *xfailDoc `yaml:"xfail"`
}

type xfailDoc struct {
	On     []string `yaml:"on"`
	Reason string   `yaml:"reason"`
	Strict bool     `yaml:"strict"`
}

// LoadCases decodes a YAML case table. Unknown keys are rejected.
// Errors: ErrCaseTable wrapping the cause.
func LoadCases(r io.Reader) ([]Case, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f caseFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, caseErrorf(opLoadCases, errors.New("empty document"))
		}
		return nil, caseErrorf(opLoadCases, err)
	}
	if len(f.Cases) == 0 {
		return nil, caseErrorf(opLoadCases, errors.New("no cases"))
	}

	cases := make([]Case, 0, len(f.Cases))
	for i, s := range f.Cases {
		c, err := s.toCase()
		if err != nil {
			return nil, caseErrorf(opLoadCases, fmt.Errorf("case %d (%s): %w", i, s.Name, err))
		}
		cases = append(cases, c)
	}

	return cases, nil
}

// LoadCasesFile reads a YAML case table from path.
func LoadCasesFile(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, caseErrorf(opLoadCasesFile, err)
	}
	defer f.Close()

	return LoadCases(f)
}

func (s caseSpec) toCase() (Case, error) {
	cfg := ksp.Config{
		Method:        ksp.Method(s.Method),
		PC:            ksp.PCType(s.PC),
		Backend:       ksp.Backend(s.Backend),
		Coarsening:    ksp.Coarsening(s.Coarsening),
		RTol:          s.RTol,
		MaxIterations: s.MaxIterations,
	}.Normalize()
	if err := cfg.Validate(); err != nil {
		return Case{}, err
	}

	c := Case{Name: s.Name, Config: cfg}
	if c.Name == "" {
		c.Name = cfg.String()
	}

	switch {
	case len(s.OnlyOn) > 0 && len(s.ExceptOn) > 0:
		return Case{}, errors.New("only_on and except_on are exclusive")
	case len(s.OnlyOn) > 0:
		c.Applies = OnlyOn(s.OnlyOn...)
		c.SkipReason = fmt.Sprintf("only runs on %v", s.OnlyOn)
	case len(s.ExceptOn) > 0:
		c.Applies = Except(s.ExceptOn...)
		c.SkipReason = fmt.Sprintf("does not run on %v", s.ExceptOn)
	}

	switch {
	case s.Skip != "" && s.XFail != nil:
		return Case{}, errors.New("skip and xfail are exclusive")
	case s.Skip != "":
		c.Expect, c.ExpectReason = Skip, s.Skip
		if len(s.SkipOn) > 0 {
			c.ExpectWhen = OnlyOn(s.SkipOn...)
		}
	case len(s.SkipOn) > 0:
		return Case{}, errors.New("skip_on without skip reason")
	case s.XFail != nil:
		c.Expect, c.ExpectReason, c.Strict = ExpectedFail, s.XFail.Reason, s.XFail.Strict
		if len(s.XFail.On) > 0 {
			c.ExpectWhen = OnlyOn(s.XFail.On...)
		}
	}

	return c, nil
}
