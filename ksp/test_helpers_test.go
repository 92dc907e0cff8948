// SPDX-License-Identifier: MIT
// Package ksp_test contains helpers shared by the engine tests.

package ksp_test

import (
	"testing"

	"github.com/katalvlaran/kspcheck/ksp"
	"github.com/katalvlaran/kspcheck/sparse"
	"github.com/stretchr/testify/require"
)

// mustTridiagonal builds the 1-D Laplacian or fails the test.
func mustTridiagonal(tb testing.TB, n int) *sparse.Operator {
	tb.Helper()
	a, err := sparse.Tridiagonal(n)
	require.NoError(tb, err)

	return a
}

// mustLaplacian2D builds the five-point Laplacian or fails the test.
func mustLaplacian2D(tb testing.TB, nx, ny int) *sparse.Operator {
	tb.Helper()
	a, err := sparse.Laplacian2D(nx, ny)
	require.NoError(tb, err)

	return a
}

// mustSetup prepares cfg on a and registers Close with the test cleanup.
func mustSetup(tb testing.TB, a *sparse.Operator, cfg ksp.Config) ksp.Handle {
	tb.Helper()
	h, err := ksp.NewNative().Setup(a, cfg)
	require.NoError(tb, err, "Setup(%s)", cfg)
	tb.Cleanup(func() { _ = h.Close() })

	return h
}

// rhsForOnes returns b = A·1, whose exact solution is the ones vector.
func rhsForOnes(tb testing.TB, a *sparse.Operator) []float64 {
	tb.Helper()
	b := a.NewVecLeft()
	require.NoError(tb, a.MulVec(b, ones(a.Cols())))

	return b
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}

	return v
}
