// SPDX-License-Identifier: MIT
// Package battery: the default case tables.

package battery

import "github.com/katalvlaran/kspcheck/ksp"

// Gating reasons of the reference deployment.
const (
	reasonNoMKL       = "solver stack is not built with Intel MKL on macOS"
	reasonMUMPSDarwin = "solver stack is only built with MUMPS on macOS"
	reasonSlowCG      = "unpreconditioned CG is too slow on the stiffness problem"
	reasonMKLCholWin  = "mkl_pardiso Cholesky fails on the Windows CI image but not locally"
)

// Suite names used in reports.
const (
	SuiteSynthetic   = "synthetic"
	SuiteReference   = "reference"
	SuiteEquivalence = "equivalence"
)

// EquivalenceSizes are the operator sizes whose two construction paths are
// compared by default.
var EquivalenceSizes = []int{100, 1000}

// SyntheticSize is the order of the synthetic round-trip operator.
const SyntheticSize = 1000

func named(cfg ksp.Config) Case { return Case{Name: cfg.String(), Config: cfg} }

// factorCases returns preonly lu and cholesky on backend, gated by applies.
func factorCases(backend ksp.Backend, applies Predicate, reason string) []Case {
	out := make([]Case, 0, 2)
	for _, pc := range []ksp.PCType{ksp.PCLU, ksp.PCCholesky} {
		c := named(ksp.NewConfig(ksp.MethodPreOnly, pc, ksp.WithBackend(backend)))
		c.Applies, c.SkipReason = applies, reason
		out = append(out, c)
	}

	return out
}

// nativeCases are the configurations the native engine provides.
func nativeCases() []Case {
	cases := []Case{
		named(ksp.NewConfig(ksp.MethodCG, ksp.PCJacobi)),
		named(ksp.NewConfig(ksp.MethodCG, ksp.PCAMG)),
		named(ksp.NewConfig(ksp.MethodBiCGStab, ksp.PCAMG)),
	}
	cases = append(cases, factorCases(ksp.BackendSkyline, nil, "")...)

	return append(cases, factorCases(ksp.BackendDense, nil, "")...)
}

// SyntheticCases is the round-trip table: every configuration of the
// reference deployment followed by the native ones.
func SyntheticCases() []Case {
	cases := []Case{
		named(ksp.NewConfig(ksp.MethodCG, ksp.PCNone)),
		named(ksp.NewConfig(ksp.MethodCG, ksp.PCHypre)),
	}
	cases = append(cases, factorCases(ksp.BackendMKLPardiso, Except(OSDarwin), reasonNoMKL)...)
	cases = append(cases, factorCases(ksp.BackendMUMPS, OnlyOn(OSDarwin), reasonMUMPSDarwin)...)

	return append(cases, nativeCases()...)
}

// ReferenceCases is the stored-problem table. Unpreconditioned CG is
// annotated Skip, hypre uses HMIS coarsening and mkl_pardiso Cholesky is an
// expected failure on Windows.
func ReferenceCases() []Case {
	cgNone := named(ksp.NewConfig(ksp.MethodCG, ksp.PCNone))
	cgNone.Expect, cgNone.ExpectReason = Skip, reasonSlowCG

	cases := []Case{
		cgNone,
		named(ksp.NewConfig(ksp.MethodCG, ksp.PCHypre, ksp.WithCoarsening(ksp.CoarsenHMIS))),
	}
	mkl := factorCases(ksp.BackendMKLPardiso, Except(OSDarwin), reasonNoMKL)
	mkl[1].Expect, mkl[1].ExpectWhen, mkl[1].ExpectReason = ExpectedFail, OnlyOn(OSWindows), reasonMKLCholWin
	cases = append(cases, mkl...)
	cases = append(cases, factorCases(ksp.BackendMUMPS, OnlyOn(OSDarwin), reasonMUMPSDarwin)...)

	return append(cases, nativeCases()...)
}
