// SPDX-License-Identifier: MIT
// Package ksp: identifiers and the solver configuration value.

package ksp

import (
	"fmt"
	"math"
)

// Method identifies the outer (Krylov or single-application) method.
type Method string

// PCType identifies a preconditioner.
type PCType string

// Backend identifies a direct factorization backend. The zero value means
// "no backend requested".
type Backend string

// Coarsening identifies the coarsening strategy of a multigrid preconditioner.
// The zero value lets the caller (or engine) choose.
type Coarsening string

// Kind classifies an identifier for Engine.Available.
type Kind int

const (
	KindMethod Kind = iota
	KindPC
	KindBackend
	KindCoarsening
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindPC:
		return "preconditioner"
	case KindBackend:
		return "backend"
	case KindCoarsening:
		return "coarsening"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Methods.
const (
	MethodCG       Method = "cg"
	MethodBiCGStab Method = "bicgstab"
	// MethodPreOnly applies the preconditioner exactly once; meaningful only
	// with a preconditioner that produces a full factorization.
	MethodPreOnly Method = "preonly"
)

// Preconditioners.
const (
	PCNone     PCType = "none"
	PCJacobi   PCType = "jacobi"
	PCAMG      PCType = "amg"
	PCHypre    PCType = "hypre"
	PCLU       PCType = "lu"
	PCCholesky PCType = "cholesky"
)

// Factorization backends.
const (
	BackendNone       Backend = ""
	BackendSkyline    Backend = "skyline"
	BackendDense      Backend = "dense"
	BackendMKLPardiso Backend = "mkl_pardiso"
	BackendMUMPS      Backend = "mumps"
)

// Coarsening strategies.
const (
	CoarsenDefault  Coarsening = ""
	CoarsenPairwise Coarsening = "pairwise"
	CoarsenGreedy   Coarsening = "greedy"
	CoarsenHMIS     Coarsening = "HMIS"
)

// Defaults.
const (
	// DefaultRTol is the relative residual tolerance ‖b−Ax‖/‖b‖.
	DefaultRTol = 1e-10

	// DefaultMaxIterations caps Krylov iterations.
	DefaultMaxIterations = 10000
)

// IsFactor reports whether the preconditioner computes a full factorization,
// which is what makes a single application (preonly) an exact solve.
func (p PCType) IsFactor() bool { return p == PCLU || p == PCCholesky }

// IsMultigrid reports whether the preconditioner is an algebraic multigrid variant.
func (p PCType) IsMultigrid() bool { return p == PCAMG || p == PCHypre }

// Config is one solver configuration: the (method, preconditioner,
// optional backend) triple plus tolerances. The zero values of RTol and
// MaxIterations select the defaults (see Normalize).
type Config struct {
	Method        Method
	PC            PCType
	Backend       Backend
	Coarsening    Coarsening
	RTol          float64
	MaxIterations int
}

// Normalize returns a copy with zero-valued tolerances replaced by
// DefaultRTol and DefaultMaxIterations. Nothing else is changed.
func (c Config) Normalize() Config {
	if c.RTol == 0 {
		c.RTol = DefaultRTol
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}

	return c
}

// Validate checks the internal consistency of c (after Normalize).
// It does not consult any engine; availability is Engine.Supports' job.
//
// Errors (all wrap ErrConfiguration):
//   - empty method or preconditioner;
//   - preonly with a preconditioner that does not factor;
//   - a backend on a preconditioner that does not factor;
//   - a coarsening strategy on a non-multigrid preconditioner;
//   - RTol outside (0, 1) or non-finite; negative MaxIterations.
func (c Config) Validate() error {
	c = c.Normalize()
	switch {
	case c.Method == "":
		return kspErrorf(opValidate, fmt.Errorf("empty method: %w", ErrConfiguration))
	case c.PC == "":
		return kspErrorf(opValidate, fmt.Errorf("empty preconditioner: %w", ErrConfiguration))
	case c.Method == MethodPreOnly && !c.PC.IsFactor():
		return kspErrorf(opValidate, fmt.Errorf("%s needs a factoring preconditioner, got %q: %w", c.Method, c.PC, ErrConfiguration))
	case c.Backend != BackendNone && !c.PC.IsFactor():
		return kspErrorf(opValidate, fmt.Errorf("backend %q set on non-factoring preconditioner %q: %w", c.Backend, c.PC, ErrConfiguration))
	case c.Coarsening != CoarsenDefault && !c.PC.IsMultigrid():
		return kspErrorf(opValidate, fmt.Errorf("coarsening %q set on non-multigrid preconditioner %q: %w", c.Coarsening, c.PC, ErrConfiguration))
	case math.IsNaN(c.RTol) || c.RTol <= 0 || c.RTol >= 1:
		return kspErrorf(opValidate, fmt.Errorf("rtol %g outside (0,1): %w", c.RTol, ErrConfiguration))
	case c.MaxIterations < 0:
		return kspErrorf(opValidate, fmt.Errorf("max iterations %d: %w", c.MaxIterations, ErrConfiguration))
	}

	return nil
}

// String renders the triple as "method/pc[/backend]".
func (c Config) String() string {
	s := string(c.Method) + "/" + string(c.PC)
	if c.Backend != BackendNone {
		s += "/" + string(c.Backend)
	}

	return s
}

// Stats describes one solve.
type Stats struct {
	// Iterations is the number of Krylov iterations (1 for preonly).
	Iterations int
	// Residual is the true relative residual ‖b−Ax‖/‖b‖ at exit.
	Residual float64
	// Converged reports whether the method's stopping test was met.
	Converged bool
	// MatVec and PCApply count operator and preconditioner applications.
	MatVec  int
	PCApply int
}
