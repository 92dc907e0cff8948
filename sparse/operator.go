// SPDX-License-Identifier: MIT
// Package sparse: the CSR Operator and its read-only kernels.
//
// Purpose:
//   - Hold an assembled sparse matrix in compressed-row form.
//   - Offer the operations a solver engine needs (MulVec, Diagonal, row views)
//     without ever exposing the backing arrays for mutation.
//
// Determinism & Performance:
//   - MulVec walks rows in order and each row left to right; results are
//     bit-reproducible for a given operator and input.
//   - Row views alias the backing arrays; callers must treat them read-only.

package sparse

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Operator is an immutable r×c sparse matrix in compressed-row storage.
// Row i occupies indices[indptr[i]:indptr[i+1]] and the matching data range;
// column indices are strictly increasing within each row.
type Operator struct {
	r, c    int       // rows, columns
	indptr  []int     // len r+1, indptr[0]==0, non-decreasing
	indices []int     // column index per stored entry
	data    []float64 // value per stored entry
}

// Rows returns the number of rows.
// Complexity: O(1).
func (a *Operator) Rows() int { return a.r }

// Cols returns the number of columns.
// Complexity: O(1).
func (a *Operator) Cols() int { return a.c }

// Dims returns (rows, cols).
func (a *Operator) Dims() (r, c int) { return a.r, a.c }

// NNZ returns the number of stored entries (explicit zeros included).
// Complexity: O(1).
func (a *Operator) NNZ() int { return len(a.data) }

// RowNNZ returns the number of stored entries in row i, or 0 when i is out of range.
// Complexity: O(1).
func (a *Operator) RowNNZ(i int) int {
	if i < 0 || i >= a.r {
		return 0
	}

	return a.indptr[i+1] - a.indptr[i]
}

// Row returns read-only views of the column indices and values of row i.
// The slices alias the operator storage and must not be modified.
// Complexity: O(1).
func (a *Operator) Row(i int) (cols []int, vals []float64) {
	if i < 0 || i >= a.r {
		return nil, nil
	}
	lo, hi := a.indptr[i], a.indptr[i+1]

	return a.indices[lo:hi:hi], a.data[lo:hi:hi]
}

// At returns the value stored at (i, j), or 0 for a structural zero.
// Returns ErrOutOfRange for invalid indices.
// Complexity: O(log k) where k is the row length.
func (a *Operator) At(i, j int) (float64, error) {
	if i < 0 || i >= a.r || j < 0 || j >= a.c {
		return 0, sparseErrorf(opAt, fmt.Errorf("(%d,%d): %w", i, j, ErrOutOfRange))
	}
	cols, vals := a.Row(i)
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return vals[k], nil
	}

	return 0, nil
}

// Diagonal returns a fresh slice holding A[i,i] for i < min(r, c).
// Structural zeros on the diagonal are reported as 0.
// Complexity: O(r log k).
func (a *Operator) Diagonal() []float64 {
	n := min(a.r, a.c)
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i], _ = a.At(i, i) // indices are in range by construction
	}

	return d
}

// IsSquare reports whether Rows()==Cols().
func (a *Operator) IsSquare() bool { return a.r == a.c }

// MulVec computes dst = A·x.
// Lengths: len(x)==Cols(), len(dst)==Rows(); otherwise ErrDimensionMismatch.
// dst must not alias x.
// Complexity: O(nnz).
func (a *Operator) MulVec(dst, x []float64) error {
	if len(x) != a.c || len(dst) != a.r {
		return sparseErrorf(opMulVec, ErrDimensionMismatch)
	}
	var i, k int
	var sum float64
	for i = 0; i < a.r; i++ {
		sum = 0
		for k = a.indptr[i]; k < a.indptr[i+1]; k++ {
			sum += a.data[k] * x[a.indices[k]]
		}
		dst[i] = sum
	}

	return nil
}

// MulVecTo computes dst = A·x, or dst = Aᵀ·x when trans is true, in gonum
// vector form. An empty dst is resized. It panics with mat.ErrShape on
// mismatched lengths, following gonum's convention for vector kernels.
// Complexity: O(nnz).
func (a *Operator) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	r, c := a.r, a.c
	if trans {
		r, c = c, r
	}
	if x.Len() != c {
		panic(mat.ErrShape)
	}
	if dst.IsEmpty() {
		dst.ReuseAsVec(r)
	} else if dst.Len() != r {
		panic(mat.ErrShape)
	}

	src := make([]float64, c)
	for j := range src {
		src[j] = x.AtVec(j)
	}
	out := make([]float64, r)
	if trans {
		var i, k int
		for i = 0; i < a.r; i++ {
			for k = a.indptr[i]; k < a.indptr[i+1]; k++ {
				out[a.indices[k]] += a.data[k] * src[i]
			}
		}
	} else {
		_ = a.MulVec(out, src) // lengths checked above
	}
	for i, v := range out {
		dst.SetVec(i, v)
	}
}

// NewVecLeft returns a zero vector conformant with the row space (len Rows()),
// i.e. a vector that can hold A·x.
func (a *Operator) NewVecLeft() []float64 { return make([]float64, a.r) }

// NewVecRight returns a zero vector conformant with the column space
// (len Cols()), i.e. a vector x that can be multiplied by A.
func (a *Operator) NewVecRight() []float64 { return make([]float64, a.c) }

// CSR returns copies of the row-pointer, column-index and value arrays.
// Complexity: O(r + nnz).
func (a *Operator) CSR() (indptr, indices []int, data []float64) {
	indptr = append([]int(nil), a.indptr...)
	indices = append([]int(nil), a.indices...)
	data = append([]float64(nil), a.data...)

	return indptr, indices, data
}

// ToDense expands the operator into a gonum dense matrix.
// Complexity: O(r*c) memory.
func (a *Operator) ToDense() *mat.Dense {
	d := mat.NewDense(a.r, a.c, nil)
	for i := 0; i < a.r; i++ {
		for k := a.indptr[i]; k < a.indptr[i+1]; k++ {
			d.Set(i, a.indices[k], a.data[k])
		}
	}

	return d
}

// ToSymDense expands a square operator into a gonum symmetric matrix built
// from its upper triangle (entries with j >= i); the lower triangle is ignored.
// Returns ErrDimensionMismatch for non-square operators.
func (a *Operator) ToSymDense() (*mat.SymDense, error) {
	if err := ValidateSquare(a); err != nil {
		return nil, err
	}
	s := mat.NewSymDense(a.r, nil)
	var j int
	for i := 0; i < a.r; i++ {
		for k := a.indptr[i]; k < a.indptr[i+1]; k++ {
			if j = a.indices[k]; j >= i {
				s.SetSym(i, j, a.data[k])
			}
		}
	}

	return s, nil
}

// String implements fmt.Stringer with a compact shape summary.
func (a *Operator) String() string {
	return fmt.Sprintf("Operator(%dx%d, nnz=%d)", a.r, a.c, len(a.data))
}
