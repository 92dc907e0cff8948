// SPDX-License-Identifier: MIT

// Package ksp defines the linear-solver engine contract used by the
// verification harness and ships one pure-Go engine, Native.
//
// 🚀 Contract:
//
//	Engine : reports which methods, preconditioners and factorization
//	         backends it was built with (Available, Supports) and binds an
//	         operator to a Config (Setup).
//	Handle : the prepared solver: repeated Solve calls, then Close.
//	Config : (method, preconditioner, optional backend) + tolerances.
//
// ✨ Native engine components:
//
//	methods          cg, bicgstab, preonly
//	preconditioners  none, jacobi, amg (aggregation V-cycle), lu, cholesky
//	backends         skyline (envelope factorization), dense (gonum mat)
//
// Identifiers such as hypre, mkl_pardiso or mumps are known to the package
// so that case tables can name them, but Native does not provide them:
// Available reports false and Setup fails with ErrUnsupportedBackend.
//
// ⚙️ Usage:
//
//	eng := ksp.NewNative()
//	cfg := ksp.NewConfig(ksp.MethodCG, ksp.PCAMG, ksp.WithRTol(1e-10))
//	h, err := eng.Setup(a, cfg)
//	if err != nil { ... }
//	defer h.Close()
//	stats, err := h.Solve(b, x)
//
// Concurrency: a Handle is not safe for concurrent use; an Engine is
// stateless and may be shared.
package ksp
