// SPDX-License-Identifier: MIT

// Package kspcheck is a verification harness for sparse linear solvers.
//
// It answers one question for every solver configuration an engine build
// offers: does it produce correct solutions on representative problems?
//
//	sparse/   CSR operator, triplet and incremental assembly, tridiagonal
//	          and 2-D Laplacian builders, structural equivalence
//	ksp/      solver configuration, the Engine contract and Native, a pure-Go
//	          engine (CG, BiCGStab, Jacobi, aggregation AMG, skyline and
//	          dense factorizations)
//	dataset/  NumPy .npz problem files: load, save and generate
//	verify/   round-trip and reference checks with timing
//	battery/  case tables, platform gating, expected-failure handling and
//	          the sequential runner
//	cmd/kspcheck  command line front end
//
// A configuration is a (method, preconditioner, backend) triple. Cases whose
// components are missing from the engine build are reported as skipped, not
// failed, so one table serves every platform.
package kspcheck
