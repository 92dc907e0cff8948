// SPDX-License-Identifier: MIT
// Package sparse_test contains test helpers shared by the sparse tests.

package sparse_test

import (
	"testing"

	"github.com/katalvlaran/kspcheck/sparse"
	"github.com/stretchr/testify/require"
)

// mustTridiagonal builds the directly assembled operator or fails the test.
func mustTridiagonal(tb testing.TB, n int) *sparse.Operator {
	tb.Helper()
	a, err := sparse.Tridiagonal(n)
	require.NoError(tb, err, "Tridiagonal(%d)", n)

	return a
}

// mustTridiagonalCSR builds the compressed-row operator or fails the test.
func mustTridiagonalCSR(tb testing.TB, n int) *sparse.Operator {
	tb.Helper()
	a, err := sparse.TridiagonalFromCSR(n)
	require.NoError(tb, err, "TridiagonalFromCSR(%d)", n)

	return a
}

// mustFromCSR imports a CSR triple or fails the test.
func mustFromCSR(tb testing.TB, r, c int, indptr, indices []int, data []float64) *sparse.Operator {
	tb.Helper()
	a, err := sparse.FromCSR(r, c, indptr, indices, data)
	require.NoError(tb, err)

	return a
}

// ones returns a vector of n ones.
func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}

	return v
}
