// SPDX-License-Identifier: MIT
// Package sparse: exact equivalence of two operators.

package sparse

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Equal reports whether a and b encode the same matrix: identical dimensions,
// identical column set in every row, and bit-identical stored values.
// Rows are canonical, so column sets compare position by position regardless
// of the order in which entries were originally supplied.
//
// nil operands or mismatched shapes yield false; Equal never panics.
// Complexity: O(r + nnz).
func Equal(a, b *Operator) bool {
	return firstDifference(a, b) == ""
}

// CheckEquivalent is Equal with a diagnosis: it returns nil when the
// operators are equal and an error wrapping ErrEquivalenceMismatch that names
// the first differing row (or the shape) otherwise.
func CheckEquivalent(a, b *Operator) error {
	if d := firstDifference(a, b); d != "" {
		return sparseErrorf(opEquivalent, fmt.Errorf("%s: %w", d, ErrEquivalenceMismatch))
	}

	return nil
}

// firstDifference returns "" for equal operators and a short description of
// the first mismatch otherwise.
func firstDifference(a, b *Operator) string {
	if a == nil || b == nil {
		return "nil operator"
	}
	if a.r != b.r || a.c != b.c {
		return fmt.Sprintf("shape %dx%d vs %dx%d", a.r, a.c, b.r, b.c)
	}
	var ac, bc []int
	var av, bv []float64
	for i := 0; i < a.r; i++ {
		ac, av = a.Row(i)
		bc, bv = b.Row(i)
		if !slices.Equal(ac, bc) {
			return fmt.Sprintf("row %d pattern %v vs %v", i, ac, bc)
		}
		if !floats.Equal(av, bv) {
			return fmt.Sprintf("row %d values %v vs %v", i, av, bv)
		}
	}

	return ""
}
