// SPDX-License-Identifier: MIT
// Package dataset_test contains helpers shared by the dataset tests.

package dataset_test

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/sbinet/npyio/npz"
	"github.com/stretchr/testify/require"
)

// writeNPZ writes arrays into a fresh archive under t.TempDir and returns its path.
func writeNPZ(tb testing.TB, name string, arrays map[string]any) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	w, err := npz.Create(path)
	require.NoError(tb, err)

	keys := make([]string, 0, len(arrays))
	for k := range arrays {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		require.NoError(tb, w.Write(k, arrays[k]), "write %q", k)
	}
	require.NoError(tb, w.Close())

	return path
}

// tridiagonalCSR returns the scipy-style arrays of the 3×3 1-D Laplacian.
func tridiagonalCSR() (indptr, indices []int32, data []float64) {
	return []int32{0, 2, 5, 7},
		[]int32{0, 1, 0, 1, 2, 1, 2},
		[]float64{2, -1, -1, 2, -1, -1, 2}
}
