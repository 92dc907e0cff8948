// SPDX-License-Identifier: MIT
package sparse_test

import (
	"testing"

	"github.com/katalvlaran/kspcheck/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestOperator_MulVec(t *testing.T) {
	const n = 6
	a := mustTridiagonal(t, n)

	y := a.NewVecLeft()
	require.NoError(t, a.MulVec(y, ones(n)))
	// interior rows of the 1-D Laplacian annihilate constants
	assert.Equal(t, []float64{1, 0, 0, 0, 0, 1}, y)

	assert.ErrorIs(t, a.MulVec(y, ones(n-1)), sparse.ErrDimensionMismatch)
	assert.ErrorIs(t, a.MulVec(y[:n-1], ones(n)), sparse.ErrDimensionMismatch)
}

func TestOperator_AtAndBounds(t *testing.T) {
	a := mustTridiagonal(t, 4)

	v, err := a.At(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v, "structural zero")

	_, err = a.At(4, 0)
	assert.ErrorIs(t, err, sparse.ErrOutOfRange)
	assert.Equal(t, 0, a.RowNNZ(-1))

	cols, vals := a.Row(7)
	assert.Nil(t, cols)
	assert.Nil(t, vals)
}

func TestOperator_DenseViews(t *testing.T) {
	a := mustTridiagonal(t, 5)
	d := a.ToDense()
	s, err := a.ToSymDense()
	require.NoError(t, err)

	var want float64
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			want, _ = a.At(i, j)
			assert.Equal(t, want, d.At(i, j))
			assert.Equal(t, want, s.At(i, j))
		}
	}

	rect := mustFromCSR(t, 1, 2, []int{0, 1}, []int{0}, []float64{1})
	_, err = rect.ToSymDense()
	assert.ErrorIs(t, err, sparse.ErrDimensionMismatch)
}

func TestOperator_CSRCopies(t *testing.T) {
	a := mustTridiagonal(t, 3)
	indptr, indices, data := a.CSR()
	assert.Equal(t, []int{0, 2, 5, 7}, indptr)
	assert.Equal(t, []int{0, 1, 0, 1, 2, 1, 2}, indices)

	data[0] = 42
	v, _ := a.At(0, 0)
	assert.Equal(t, 2.0, v, "CSR must return copies")
}

func TestOperator_MulVecToMatchesDense(t *testing.T) {
	// [[1 0 2] [0 3 4]]
	a, err := sparse.FromCSR(2, 3, []int{0, 2, 4}, []int{0, 2, 1, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	d := a.ToDense()

	x := mat.NewVecDense(3, []float64{1, -1, 2})
	var got, want mat.VecDense
	a.MulVecTo(&got, false, x)
	want.MulVec(d, x)
	assert.Equal(t, want.RawVector().Data, got.RawVector().Data)

	y := mat.NewVecDense(2, []float64{2, 5})
	var gotT, wantT mat.VecDense
	a.MulVecTo(&gotT, true, y)
	wantT.MulVec(d.T(), y)
	assert.Equal(t, wantT.RawVector().Data, gotT.RawVector().Data)

	assert.Panics(t, func() { a.MulVecTo(&got, false, y) })
	assert.Panics(t, func() { a.MulVecTo(mat.NewVecDense(3, nil), false, x) })
}
