// SPDX-License-Identifier: MIT
// Package sparse: known test operators.
//
// Tridiagonal and TridiagonalFromCSR encode the same 1-D Laplacian through two
// independent construction paths so that their agreement can be asserted
// bit-for-bit: every entry is an integer, so exact equality is the contract.

package sparse

import "fmt"

// Stencil values of the 1-D Laplacian.
const (
	TridiagonalDiag = 2.0  // A[i,i]
	TridiagonalOff  = -1.0 // A[i,i±1]
)

// MinTridiagonalSize is the smallest valid tridiagonal operator: both rows
// are boundary rows sharing the single off-diagonal pair.
const MinTridiagonalSize = 2

// Stencil values of the 2-D five-point Laplacian.
const (
	laplace2DDiag = 4.0
	laplace2DOff  = -1.0
)

// tridiagonalNNZ returns the per-row nonzero counts: 2 for boundary rows,
// 3 for interior rows.
func tridiagonalNNZ(n int) []int {
	nnz := make([]int, n)
	for i := range nnz {
		nnz[i] = 3
	}
	nnz[0], nnz[n-1] = 2, 2

	return nnz
}

// Tridiagonal builds the n×n operator with 2 on the diagonal and −1 on the
// first sub- and super-diagonal by direct entry insertion.
//
// Implementation:
//   - Stage 1: preallocate 2 slots for rows 0 and n−1, 3 for interior rows.
//   - Stage 2: set row 0, then row n−1, then interior rows 1..n−2 row-major.
//   - Stage 3: Assemble.
//
// Errors: ErrInvalidDimension if n < MinTridiagonalSize.
// Complexity: O(n).
func Tridiagonal(n int) (*Operator, error) {
	if n < MinTridiagonalSize {
		return nil, sparseErrorf(opTridiagonal, fmt.Errorf("n=%d: %w", n, ErrInvalidDimension))
	}
	b, err := NewAssembler(n, n, tridiagonalNNZ(n))
	if err != nil {
		return nil, sparseErrorf(opTridiagonal, err)
	}

	set := func(i, j int, v float64) {
		if err == nil {
			err = b.SetValue(i, j, v)
		}
	}
	// boundary rows
	set(0, 0, TridiagonalDiag)
	set(0, 1, TridiagonalOff)
	set(n-1, n-2, TridiagonalOff)
	set(n-1, n-1, TridiagonalDiag)
	// interior rows
	for i := 1; i < n-1; i++ {
		set(i, i-1, TridiagonalOff)
		set(i, i, TridiagonalDiag)
		set(i, i+1, TridiagonalOff)
	}
	if err != nil {
		return nil, sparseErrorf(opTridiagonal, err)
	}

	a, err := b.Assemble()
	if err != nil {
		return nil, sparseErrorf(opTridiagonal, err)
	}

	return a, nil
}

// TridiagonalFromCSR builds the same operator as Tridiagonal through flat
// (row, col, value) triplets, compacted to row-pointer form and imported
// with one FromCSR call.
//
// Errors: ErrInvalidDimension if n < MinTridiagonalSize.
// Complexity: O(n).
func TridiagonalFromCSR(n int) (*Operator, error) {
	if n < MinTridiagonalSize {
		return nil, sparseErrorf(opTriCSR, fmt.Errorf("n=%d: %w", n, ErrInvalidDimension))
	}
	t, err := NewTriplets(n, n)
	if err != nil {
		return nil, sparseErrorf(opTriCSR, err)
	}

	add := func(i, j int, v float64) {
		if err == nil {
			err = t.Append(i, j, v)
		}
	}
	// boundary rows first, exactly once each
	add(0, 0, TridiagonalDiag)
	add(0, 1, TridiagonalOff)
	add(n-1, n-2, TridiagonalOff)
	add(n-1, n-1, TridiagonalDiag)
	for i := 1; i < n-1; i++ {
		add(i, i-1, TridiagonalOff)
		add(i, i, TridiagonalDiag)
		add(i, i+1, TridiagonalOff)
	}
	if err != nil {
		return nil, sparseErrorf(opTriCSR, err)
	}

	indptr, indices, data := t.CSR()
	a, err := FromCSR(n, n, indptr, indices, data)
	if err != nil {
		return nil, sparseErrorf(opTriCSR, err)
	}

	return a, nil
}

// Laplacian2D builds the (nx·ny)×(nx·ny) five-point Laplacian on an nx×ny
// grid with Dirichlet boundaries: 4 on the diagonal, −1 for each grid
// neighbour. Node (ix, iy) maps to row iy·nx + ix.
//
// Errors: ErrInvalidDimension if nx < 2 or ny < 2.
// Complexity: O(nx·ny).
func Laplacian2D(nx, ny int) (*Operator, error) {
	if nx < 2 || ny < 2 {
		return nil, sparseErrorf(opLaplacian2D, fmt.Errorf("%dx%d grid: %w", nx, ny, ErrInvalidDimension))
	}
	n := nx * ny
	t, err := NewTriplets(n, n)
	if err != nil {
		return nil, sparseErrorf(opLaplacian2D, err)
	}

	add := func(i, j int, v float64) {
		if err == nil {
			err = t.Append(i, j, v)
		}
	}
	var ix, iy, k int
	for iy = 0; iy < ny; iy++ {
		for ix = 0; ix < nx; ix++ {
			k = iy*nx + ix
			if iy > 0 {
				add(k, k-nx, laplace2DOff)
			}
			if ix > 0 {
				add(k, k-1, laplace2DOff)
			}
			add(k, k, laplace2DDiag)
			if ix < nx-1 {
				add(k, k+1, laplace2DOff)
			}
			if iy < ny-1 {
				add(k, k+nx, laplace2DOff)
			}
		}
	}
	if err != nil {
		return nil, sparseErrorf(opLaplacian2D, err)
	}

	indptr, indices, data := t.CSR()

	return FromCSR(n, n, indptr, indices, data)
}
