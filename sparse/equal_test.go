// SPDX-License-Identifier: MIT
package sparse_test

import (
	"testing"

	"github.com/katalvlaran/kspcheck/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_Mismatches(t *testing.T) {
	base := mustFromCSR(t, 2, 2, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{2, -1, -1, 2})

	tests := []struct {
		name  string
		other *sparse.Operator
		want  bool
	}{
		{"same", mustFromCSR(t, 2, 2, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{2, -1, -1, 2}), true},
		{"row order permuted", mustFromCSR(t, 2, 2, []int{0, 2, 4}, []int{1, 0, 1, 0}, []float64{-1, 2, 2, -1}), true},
		{"value differs", mustFromCSR(t, 2, 2, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{2, -1, -1, 2.0000000001}), false},
		{"pattern differs", mustFromCSR(t, 2, 2, []int{0, 2, 3}, []int{0, 1, 1}, []float64{2, -1, 2}), false},
		{"shape differs", mustFromCSR(t, 2, 3, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{2, -1, -1, 2}), false},
		{"nil", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sparse.Equal(base, tc.other))
			assert.Equal(t, tc.want, sparse.Equal(tc.other, base), "symmetric")
			if tc.want {
				assert.NoError(t, sparse.CheckEquivalent(base, tc.other))
			} else {
				assert.ErrorIs(t, sparse.CheckEquivalent(base, tc.other), sparse.ErrEquivalenceMismatch)
			}
		})
	}
}

func TestEqual_DifferentSizesNeverPanic(t *testing.T) {
	a := mustTridiagonal(t, 10)
	b := mustTridiagonalCSR(t, 11)
	require.NotPanics(t, func() { _ = sparse.Equal(a, b) })
	assert.False(t, sparse.Equal(a, b))
	assert.False(t, sparse.Equal(nil, nil))
}
