// SPDX-License-Identifier: MIT
package ksp

import (
	"testing"

	"github.com/katalvlaran/kspcheck/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entrySum(a *sparse.Operator) float64 {
	_, _, data := a.CSR()
	var s float64
	for _, v := range data {
		s += v
	}

	return s
}

func TestAggregates_CoverEveryNode(t *testing.T) {
	a, err := sparse.Laplacian2D(12, 9)
	require.NoError(t, err)

	for name, aggregate := range map[string]func(*sparse.Operator) ([]int, int){
		"greedy":   greedyAggregates,
		"pairwise": pairwiseAggregates,
	} {
		t.Run(name, func(t *testing.T) {
			agg, nc := aggregate(a)
			require.Len(t, agg, a.Rows())
			assert.Less(t, nc, a.Rows())

			size := make([]int, nc)
			for _, g := range agg {
				require.GreaterOrEqual(t, g, 0)
				require.Less(t, g, nc)
				size[g]++
			}
			for g, s := range size {
				assert.Positive(t, s, "aggregate %d is empty", g)
			}
		})
	}
}

func TestPairwiseAggregates_AtMostTwo(t *testing.T) {
	a, err := sparse.Tridiagonal(101)
	require.NoError(t, err)
	agg, nc := pairwiseAggregates(a)
	assert.Equal(t, 51, nc)
	size := make([]int, nc)
	for _, g := range agg {
		size[g]++
	}
	for _, s := range size {
		assert.LessOrEqual(t, s, 2)
	}
}

func TestGalerkin_PreservesTotal(t *testing.T) {
	a, err := sparse.Laplacian2D(10, 10)
	require.NoError(t, err)
	agg, nc := greedyAggregates(a)

	ac, err := galerkin(a, agg, nc)
	require.NoError(t, err)
	assert.Equal(t, nc, ac.Rows())
	// 1ᵀ(PᵀAP)1 = 1ᵀA1 for piecewise-constant P
	assert.InDelta(t, entrySum(a), entrySum(ac), 1e-12)
	assert.True(t, sparse.Equal(ac, mustTranspose(t, ac)), "coarse operator stays symmetric")
}

func TestNewAMG_Hierarchy(t *testing.T) {
	a, err := sparse.Laplacian2D(30, 30)
	require.NoError(t, err)

	pc, err := newAMG(a, CoarsenDefault)
	require.NoError(t, err)
	require.Greater(t, len(pc.levels), 1)
	assert.LessOrEqual(t, len(pc.levels), amgMaxLevels)
	for l := 1; l < len(pc.levels); l++ {
		assert.Less(t, pc.levels[l].a.Rows(), pc.levels[l-1].a.Rows())
	}

	_, err = newAMG(a, CoarsenHMIS)
	assert.ErrorIs(t, err, ErrUnsupportedBackend)
}

func TestNewAMG_SmallOperatorIsExact(t *testing.T) {
	a, err := sparse.Tridiagonal(amgMaxCoarse)
	require.NoError(t, err)
	pc, err := newAMG(a, CoarsenGreedy)
	require.NoError(t, err)
	require.Len(t, pc.levels, 1)

	b := a.NewVecLeft()
	b[0] = 1
	x := make([]float64, a.Cols())
	require.NoError(t, pc.apply(x, b))
	r := a.NewVecLeft()
	require.NoError(t, a.MulVec(r, x))
	assert.InDeltaSlice(t, b, r, 1e-12)
}

func mustTranspose(tb testing.TB, a *sparse.Operator) *sparse.Operator {
	tb.Helper()
	t, err := sparse.NewTriplets(a.Cols(), a.Rows())
	require.NoError(tb, err)
	for i := 0; i < a.Rows(); i++ {
		cols, vals := a.Row(i)
		for k, j := range cols {
			require.NoError(tb, t.Append(j, i, vals[k]))
		}
	}
	indptr, indices, data := t.CSR()
	at, err := sparse.FromCSR(a.Cols(), a.Rows(), indptr, indices, data)
	require.NoError(tb, err)

	return at
}
