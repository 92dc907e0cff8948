// SPDX-License-Identifier: MIT
// Package sparse: direct entry-by-entry assembly.
//
// Assembler mirrors the classic "preallocate, set values, assemble" workflow
// of sparse engines: each row gets a fixed number of slots up front, SetValue
// inserts (or overwrites) single entries, and Assemble compacts the slots into
// an immutable compressed-row Operator.

package sparse

import "fmt"

// Assembler collects entries for an r×c operator into preallocated rows.
// It is not safe for concurrent use.
type Assembler struct {
	r, c      int
	start     []int     // first slot of each row, len r+1
	used      []int     // filled slots per row
	cols      []int     // slot column indices
	vals      []float64 // slot values
	assembled bool
}

// NewAssembler preallocates nnzPerRow[i] slots for row i of an r×c operator.
//
// Errors:
//   - ErrInvalidDimension if rows <= 0 or cols <= 0.
//   - ErrDimensionMismatch if len(nnzPerRow) != rows.
//   - ErrPreallocation if some nnzPerRow[i] is negative or exceeds cols.
//
// Complexity: O(r + Σ nnzPerRow).
func NewAssembler(rows, cols int, nnzPerRow []int) (*Assembler, error) {
	if rows <= 0 || cols <= 0 {
		return nil, sparseErrorf(opAssembler, fmt.Errorf("%dx%d: %w", rows, cols, ErrInvalidDimension))
	}
	if len(nnzPerRow) != rows {
		return nil, sparseErrorf(opAssembler, fmt.Errorf("len(nnz)=%d, rows=%d: %w", len(nnzPerRow), rows, ErrDimensionMismatch))
	}

	start := make([]int, rows+1)
	for i, k := range nnzPerRow {
		if k < 0 || k > cols {
			return nil, sparseErrorf(opAssembler, fmt.Errorf("row %d nnz %d: %w", i, k, ErrPreallocation))
		}
		start[i+1] = start[i] + k
	}

	return &Assembler{
		r:     rows,
		c:     cols,
		start: start,
		used:  make([]int, rows),
		cols:  make([]int, start[rows]),
		vals:  make([]float64, start[rows]),
	}, nil
}

// SetValue stores v at (i, j), overwriting a previous value for the same
// position (insert semantics, not accumulate).
//
// Errors:
//   - ErrAssembled after Assemble.
//   - ErrOutOfRange for invalid indices.
//   - ErrNaNInf for non-finite v.
//   - ErrPreallocation when row i has no free slot for a new column.
//
// Complexity: O(k) for a row with k preallocated slots.
func (b *Assembler) SetValue(i, j int, v float64) error {
	if b.assembled {
		return sparseErrorf(opSetValue, ErrAssembled)
	}
	if i < 0 || i >= b.r || j < 0 || j >= b.c {
		return sparseErrorf(opSetValue, fmt.Errorf("(%d,%d): %w", i, j, ErrOutOfRange))
	}
	if isNonFinite(v) {
		return sparseErrorf(opSetValue, fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
	}

	lo := b.start[i]
	hi := lo + b.used[i]
	for k := lo; k < hi; k++ {
		if b.cols[k] == j {
			b.vals[k] = v

			return nil
		}
	}
	if hi == b.start[i+1] {
		return sparseErrorf(opSetValue, fmt.Errorf("row %d full (%d slots) at col %d: %w", i, b.start[i+1]-lo, j, ErrPreallocation))
	}
	b.cols[hi] = j
	b.vals[hi] = v
	b.used[i]++

	return nil
}

// Assemble compacts the filled slots into a canonical Operator. Unused
// preallocated slots are dropped. The Assembler cannot be used afterwards.
//
// Complexity: O(r + nnz·log k).
func (b *Assembler) Assemble() (*Operator, error) {
	if b.assembled {
		return nil, sparseErrorf(opAssemble, ErrAssembled)
	}
	b.assembled = true

	nnz := 0
	for _, k := range b.used {
		nnz += k
	}
	a := &Operator{
		r:       b.r,
		c:       b.c,
		indptr:  make([]int, b.r+1),
		indices: make([]int, 0, nnz),
		data:    make([]float64, 0, nnz),
	}
	var lo, hi int
	for i := 0; i < b.r; i++ {
		lo = b.start[i]
		hi = lo + b.used[i]
		rowSorter{cols: b.cols[lo:hi], vals: b.vals[lo:hi]}.sortStable()
		a.indices = append(a.indices, b.cols[lo:hi]...)
		a.data = append(a.data, b.vals[lo:hi]...)
		a.indptr[i+1] = len(a.data)
	}
	b.cols, b.vals = nil, nil

	return a, nil
}
