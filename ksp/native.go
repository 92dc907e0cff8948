// SPDX-License-Identifier: MIT
// Package ksp: Native, the built-in pure-Go engine.

package ksp

import (
	"fmt"

	"github.com/katalvlaran/kspcheck/sparse"
)

// NativeName is the engine name reported by Native.
const NativeName = "native"

// nativeComponents lists every identifier Native was built with.
var nativeComponents = map[Kind]map[string]bool{
	KindMethod: {
		string(MethodCG):       true,
		string(MethodBiCGStab): true,
		string(MethodPreOnly):  true,
	},
	KindPC: {
		string(PCNone):     true,
		string(PCJacobi):   true,
		string(PCAMG):      true,
		string(PCLU):       true,
		string(PCCholesky): true,
	},
	KindBackend: {
		string(BackendSkyline): true,
		string(BackendDense):   true,
	},
	KindCoarsening: {
		string(CoarsenPairwise): true,
		string(CoarsenGreedy):   true,
	},
}

// Native is a pure-Go engine: CSR Krylov methods, Jacobi and aggregation
// multigrid preconditioning, and skyline or dense (gonum) factorizations.
// The zero value is ready to use.
type Native struct{}

// NewNative returns the built-in engine.
func NewNative() *Native { return &Native{} }

// Name implements Engine.
func (*Native) Name() string { return NativeName }

// Available implements Engine.
func (*Native) Available(kind Kind, id string) bool {
	return nativeComponents[kind][id]
}

// Supports implements Engine.
func (e *Native) Supports(cfg Config) error {
	return SupportsFor(e, cfg)
}

// SupportsFor implements the Supports contract for any engine in terms of
// its Available method: every set component of cfg must be available.
func SupportsFor(eng interface{ Available(Kind, string) bool }, cfg Config) error {
	check := []struct {
		kind Kind
		id   string
		set  bool
	}{
		{KindMethod, string(cfg.Method), true},
		{KindPC, string(cfg.PC), true},
		{KindBackend, string(cfg.Backend), cfg.Backend != BackendNone},
		{KindCoarsening, string(cfg.Coarsening), cfg.Coarsening != CoarsenDefault},
	}
	for _, c := range check {
		if c.set && !eng.Available(c.kind, c.id) {
			return kspErrorf(opSupports, fmt.Errorf("%s %q: %w", c.kind, c.id, ErrUnsupportedBackend))
		}
	}

	return nil
}

// Setup implements Engine.
//
// Implementation:
//   - Stage 1: normalize and validate cfg (ErrConfiguration).
//   - Stage 2: check availability (ErrUnsupportedBackend).
//   - Stage 3: require a square operator and build the preconditioner,
//     which for lu/cholesky performs the full factorization.
func (e *Native) Setup(a *sparse.Operator, cfg Config) (Handle, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, kspErrorf(opSetup, err)
	}
	if err := e.Supports(cfg); err != nil {
		return nil, kspErrorf(opSetup, err)
	}
	if err := sparse.ValidateSquare(a); err != nil {
		return nil, kspErrorf(opSetup, fmt.Errorf("%w: %w", ErrConfiguration, err))
	}

	pc, err := newPreconditioner(a, cfg)
	if err != nil {
		return nil, kspErrorf(opSetup, err)
	}

	return &nativeHandle{a: a, cfg: cfg, pc: pc}, nil
}

// nativeHandle is the prepared solver returned by Native.Setup.
type nativeHandle struct {
	a   *sparse.Operator
	cfg Config
	pc  preconditioner
}

// Solve implements Handle.
func (h *nativeHandle) Solve(b, x []float64) (Stats, error) {
	if h.a == nil {
		return Stats{}, kspErrorf(opSolve, ErrClosed)
	}
	if err := sparse.ValidateVecLen(b, h.a.Rows()); err != nil {
		return Stats{}, kspErrorf(opSolve, err)
	}
	if err := sparse.ValidateVecLen(x, h.a.Cols()); err != nil {
		return Stats{}, kspErrorf(opSolve, err)
	}
	for i := range x {
		x[i] = 0
	}

	var (
		st  Stats
		err error
	)
	switch h.cfg.Method {
	case MethodCG:
		st, err = solveCG(h.a, h.pc, b, x, h.cfg)
	case MethodBiCGStab:
		st, err = solveBiCGStab(h.a, h.pc, b, x, h.cfg)
	case MethodPreOnly:
		st, err = solvePreOnly(h.a, h.pc, b, x)
	default:
		err = fmt.Errorf("method %q: %w", h.cfg.Method, ErrUnsupportedBackend)
	}
	if err != nil {
		return st, kspErrorf(opSolve, err)
	}

	return st, nil
}

// Close implements Handle.
func (h *nativeHandle) Close() error {
	h.a, h.pc = nil, nil

	return nil
}
