// SPDX-License-Identifier: MIT
// Package sparse: coordinate (triplet) staging for the compressed-row path.

package sparse

import "fmt"

// Triplets accumulates flat (row, col, value) entries for an r×c matrix and
// compacts them into compressed-row arrays. Duplicate (row, col) pairs are
// summed on compaction, matching a coordinate-to-CSR conversion.
type Triplets struct {
	r, c int
	rows []int
	cols []int
	vals []float64
}

// NewTriplets returns an empty triplet list for an r×c matrix.
// Errors: ErrInvalidDimension if r <= 0 or c <= 0.
func NewTriplets(r, c int) (*Triplets, error) {
	if r <= 0 || c <= 0 {
		return nil, sparseErrorf(opTriplets, fmt.Errorf("%dx%d: %w", r, c, ErrInvalidDimension))
	}

	return &Triplets{r: r, c: c}, nil
}

// Append records the entry (i, j, v).
// Errors: ErrOutOfRange for indices outside the shape, ErrNaNInf for non-finite v.
func (t *Triplets) Append(i, j int, v float64) error {
	if i < 0 || i >= t.r || j < 0 || j >= t.c {
		return sparseErrorf(opTriplets, fmt.Errorf("(%d,%d): %w", i, j, ErrOutOfRange))
	}
	if isNonFinite(v) {
		return sparseErrorf(opTriplets, fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
	}
	t.rows = append(t.rows, i)
	t.cols = append(t.cols, j)
	t.vals = append(t.vals, v)

	return nil
}

// Len returns the number of recorded entries (duplicates counted).
func (t *Triplets) Len() int { return len(t.vals) }

// Dims returns the declared shape.
func (t *Triplets) Dims() (r, c int) { return t.r, t.c }

// CSR compacts the triplets into row-pointer form.
//
// Implementation:
//   - Stage 1: count entries per row and prefix-sum into indptr.
//   - Stage 2: scatter entries into their rows (stable, insertion order).
//   - Stage 3: sort each row by column and sum duplicates in place.
//
// Complexity: O(r + n·log k) for n entries and longest row k.
func (t *Triplets) CSR() (indptr, indices []int, data []float64) {
	indptr = make([]int, t.r+1)
	for _, i := range t.rows {
		indptr[i+1]++
	}
	for i := 0; i < t.r; i++ {
		indptr[i+1] += indptr[i]
	}

	n := len(t.vals)
	indices = make([]int, n)
	data = make([]float64, n)
	next := append([]int(nil), indptr[:t.r]...)
	var dst int
	for k, i := range t.rows {
		dst = next[i]
		indices[dst] = t.cols[k]
		data[dst] = t.vals[k]
		next[i]++
	}

	// Sort rows and merge duplicates, compacting the arrays as we go.
	out := 0
	var lo, hi, k int
	for i := 0; i < t.r; i++ {
		lo, hi = indptr[i], indptr[i+1]
		rowSorter{cols: indices[lo:hi], vals: data[lo:hi]}.sortStable()
		indptr[i] = out
		for k = lo; k < hi; k++ {
			if k > lo && indices[k] == indices[out-1] {
				data[out-1] += data[k]
				continue
			}
			indices[out] = indices[k]
			data[out] = data[k]
			out++
		}
	}
	indptr[t.r] = out

	return indptr, indices[:out:out], data[:out:out]
}

// sortStable orders the row by column keeping insertion order among equal
// columns so duplicate sums are accumulated in a fixed order.
func (s rowSorter) sortStable() {
	// insertion sort: rows are short and usually already ordered
	var j int
	for i := 1; i < len(s.cols); i++ {
		for j = i; j > 0 && s.cols[j] < s.cols[j-1]; j-- {
			s.Swap(j, j-1)
		}
	}
}
