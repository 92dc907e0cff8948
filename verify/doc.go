// SPDX-License-Identifier: MIT

// Package verify drives one solver configuration against one problem and
// judges the outcome.
//
// A Verifier wraps a ksp.Engine. Setup validates and prepares a
// configuration (default multigrid coarsening), binds it to an operator and
// returns a Session that can solve any number of right-hand sides. Two
// checks are built on top:
//
//	RoundTrip  synthetic problem, no known solution: A·x must reproduce b
//	           within |A·x − b| ≤ atol + rtol·|b| elementwise
//	           (defaults rtol 1e-7, atol 0).
//	Reference  stored problem: x must match each expected solution within
//	           |x − e| ≤ atol + rtol·|e| elementwise, pairs in stored order
//	           (defaults rtol 1e-5, atol 1e-8).
//
// Error policy:
//   - configuration and setup problems are returned as errors and abort the
//     case (ksp.ErrConfiguration, ksp.ErrUnsupportedBackend);
//   - numerical outcomes never abort: non-convergence, breakdown and
//     tolerance violations are captured in Result.Err, which always wraps
//     ksp.ErrConvergence.
package verify
