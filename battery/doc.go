// SPDX-License-Identifier: MIT

// Package battery is the solver configuration matrix: declarative case
// tables, platform gating and a sequential runner that reports one outcome
// per case.
//
// 🚦 Gating (Select):
//
//	a case runs only if
//	  its Applies predicate holds on this platform,
//	  it is not annotated Skip for this platform,
//	  and the engine supports its configuration (ksp.Engine.Supports).
//	Otherwise it is reported Skip with the reason.
//
// 🧪 Outcomes (Runner):
//
//	PASS   check passed                 FAIL   check failed (reason, achieved vs required)
//	SKIP   gated out (reason)           ERROR  setup/usage error aborted the case
//	XFAIL  expected failure, failed     XPASS  expected failure, passed
//
// XPASS counts as a failure only for strict cases. Adding a case means
// adding a row to a table (or a YAML file); the verify package is untouched.
//
// Default tables mirror the reference deployment (PETSc-style identifiers:
// hypre, mkl_pardiso, mumps) and add the native engine's own
// configurations, so a native run skips the former with a reason and runs
// the latter.
package battery
