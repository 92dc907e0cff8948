// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - One canonical place for the guard checks shared by builders, kernels
//     and the solver packages.
//   - Return sentinels wrapped with the validator tag; call sites wrap again
//     with their own operation tag.

package sparse

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the operator reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(a *Operator) error {
	if a == nil {
		return validatorErrorf("ValidateNotNil", ErrNilOperator)
	}

	return nil
}

// ValidateSquare ensures a is non-nil and Rows()==Cols().
// Complexity: O(1).
func ValidateSquare(a *Operator) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if a.r != a.c {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures len(x)==n.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", fmt.Errorf("len %d, want %d: %w", len(x), n, ErrDimensionMismatch))
	}

	return nil
}

// ValidateFinite ensures every element of x is finite.
// Complexity: O(len(x)).
func ValidateFinite(x []float64) error {
	for i, v := range x {
		if isNonFinite(v) {
			return validatorErrorf("ValidateFinite", fmt.Errorf("index %d: %w", i, ErrNaNInf))
		}
	}

	return nil
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
