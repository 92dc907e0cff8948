// SPDX-License-Identifier: MIT
// Package sparse: bulk import of compressed-row data.
//
// FromCSR is the single bulk entry point used by the compressed-row builder
// and by the problem loader. It validates the triple, copies it, and brings
// every row into canonical order (strictly increasing column indices), so
// callers may hand over rows in any internal order.

package sparse

import (
	"fmt"
	"sort"
)

// FromCSR imports an r×c operator from a row-pointer/column-index/value triple.
//
// Implementation:
//   - Stage 1: validate shape and the row-pointer array.
//   - Stage 2: copy indices/values and sort each row by column.
//   - Stage 3: reject duplicate columns within a row.
//
// Inputs are not retained; the returned Operator owns fresh copies.
//
// Errors:
//   - ErrInvalidDimension if rows <= 0 or cols <= 0.
//   - ErrMalformedCSR for len(indptr)!=rows+1, indptr[0]!=0, decreasing
//     pointers, indptr[rows]!=len(indices), len(indices)!=len(data),
//     or duplicate columns within a row.
//   - ErrOutOfRange for a column index outside [0, cols).
//   - ErrNaNInf for a non-finite value.
//
// Complexity: O(r + nnz·log k) where k is the longest row.
func FromCSR(rows, cols int, indptr, indices []int, data []float64) (*Operator, error) {
	if rows <= 0 || cols <= 0 {
		return nil, sparseErrorf(opFromCSR, fmt.Errorf("%dx%d: %w", rows, cols, ErrInvalidDimension))
	}
	if err := validateRowPointer(rows, indptr, len(indices), len(data)); err != nil {
		return nil, sparseErrorf(opFromCSR, err)
	}

	a := &Operator{
		r:       rows,
		c:       cols,
		indptr:  append([]int(nil), indptr...),
		indices: append([]int(nil), indices...),
		data:    append([]float64(nil), data...),
	}

	var lo, hi, k int
	for i := 0; i < rows; i++ {
		lo, hi = a.indptr[i], a.indptr[i+1]
		for k = lo; k < hi; k++ {
			if a.indices[k] < 0 || a.indices[k] >= cols {
				return nil, sparseErrorf(opFromCSR, fmt.Errorf("row %d col %d: %w", i, a.indices[k], ErrOutOfRange))
			}
			if isNonFinite(a.data[k]) {
				return nil, sparseErrorf(opFromCSR, fmt.Errorf("row %d col %d: %w", i, a.indices[k], ErrNaNInf))
			}
		}
		sort.Sort(rowSorter{cols: a.indices[lo:hi], vals: a.data[lo:hi]})
		for k = lo + 1; k < hi; k++ {
			if a.indices[k] == a.indices[k-1] {
				return nil, sparseErrorf(opFromCSR, fmt.Errorf("row %d duplicate col %d: %w", i, a.indices[k], ErrMalformedCSR))
			}
		}
	}

	return a, nil
}

// validateRowPointer checks the structural consistency of indptr against
// the index and value array lengths.
func validateRowPointer(rows int, indptr []int, nIndices, nData int) error {
	if len(indptr) != rows+1 {
		return fmt.Errorf("len(indptr)=%d, want %d: %w", len(indptr), rows+1, ErrMalformedCSR)
	}
	if indptr[0] != 0 {
		return fmt.Errorf("indptr[0]=%d: %w", indptr[0], ErrMalformedCSR)
	}
	for i := 1; i <= rows; i++ {
		if indptr[i] < indptr[i-1] {
			return fmt.Errorf("indptr decreases at %d: %w", i, ErrMalformedCSR)
		}
	}
	if indptr[rows] != nIndices {
		return fmt.Errorf("indptr[%d]=%d, len(indices)=%d: %w", rows, indptr[rows], nIndices, ErrMalformedCSR)
	}
	if nIndices != nData {
		return fmt.Errorf("len(indices)=%d, len(data)=%d: %w", nIndices, nData, ErrMalformedCSR)
	}

	return nil
}

// rowSorter orders one CSR row by column, carrying values along.
type rowSorter struct {
	cols []int
	vals []float64
}

func (s rowSorter) Len() int           { return len(s.cols) }
func (s rowSorter) Less(i, j int) bool { return s.cols[i] < s.cols[j] }
func (s rowSorter) Swap(i, j int) {
	s.cols[i], s.cols[j] = s.cols[j], s.cols[i]
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}
