// SPDX-License-Identifier: MIT
// Package ksp: skyline (envelope) factorization backend.
//
// The factorization keeps, for every row i, the dense segment of the lower
// triangle from the first nonzero column up to the diagonal, and the mirror
// segment of the upper triangle stored by column. Fill-in never leaves that
// envelope, so banded operators such as the 1-D and 2-D Laplacians factor in
// O(n·w²) time for envelope width w. No pivoting is performed: the backend
// targets symmetric positive definite operators.

package ksp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/kspcheck/sparse"
)

// skyline is an envelope LU (unit lower L, upper U) or Cholesky (L·Lᵀ) factor.
type skyline struct {
	n        int
	first    []int     // first envelope column of row i (== i when empty)
	off      []int     // start of row i's segment in lo/up, len n+1
	lo       []float64 // L[i][first[i]:i]
	up       []float64 // U[first[i]:i][i], column i (LU only)
	diag     []float64 // U[i][i] for LU, L[i][i] for Cholesky
	cholesky bool
}

// at returns the segment index of (i, j) for first[i] <= j < i.
func (s *skyline) at(i, j int) int { return s.off[i] + j - s.first[i] }

// newSkyline builds and factors the envelope of a.
//
// Implementation:
//   - Stage 1: envelope: first[i] = min column reaching row i from either
//     triangle (Cholesky reads the upper triangle only).
//   - Stage 2: scatter A into the envelope.
//   - Stage 3: row-by-row Doolittle (or Cholesky) inside the envelope.
//
// Errors: ErrBreakdown for a zero pivot (LU) or a non-positive pivot (Cholesky).
func newSkyline(a *sparse.Operator, cholesky bool) (*skyline, error) {
	n := a.Rows()
	s := &skyline{
		n:        n,
		first:    make([]int, n),
		off:      make([]int, n+1),
		diag:     make([]float64, n),
		cholesky: cholesky,
	}
	for i := range s.first {
		s.first[i] = i
	}

	var cols []int
	var vals []float64
	for r := 0; r < n; r++ {
		cols, _ = a.Row(r)
		for _, c := range cols {
			switch {
			case c < r && !cholesky:
				s.first[r] = min(s.first[r], c)
			case c > r:
				s.first[c] = min(s.first[c], r)
			}
		}
	}
	for i := 0; i < n; i++ {
		s.off[i+1] = s.off[i] + i - s.first[i]
	}
	s.lo = make([]float64, s.off[n])
	if !cholesky {
		s.up = make([]float64, s.off[n])
	}

	for r := 0; r < n; r++ {
		cols, vals = a.Row(r)
		for k, c := range cols {
			switch {
			case c == r:
				s.diag[r] = vals[k]
			case c < r:
				if !cholesky {
					s.lo[s.at(r, c)] = vals[k]
				}
			default: // upper triangle, stored in column c
				if cholesky {
					s.lo[s.at(c, r)] = vals[k]
				} else {
					s.up[s.at(c, r)] = vals[k]
				}
			}
		}
	}

	factor := s.factorLU
	if cholesky {
		factor = s.factorCholesky
	}
	if err := factor(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *skyline) factorLU() error {
	var i, j, k, k0, fi, fj int
	var sumL, sumU float64
	for i = 0; i < s.n; i++ {
		fi = s.first[i]
		for j = fi; j < i; j++ {
			fj = s.first[j]
			k0 = max(fi, fj)
			sumL, sumU = s.lo[s.at(i, j)], s.up[s.at(i, j)]
			for k = k0; k < j; k++ {
				sumL -= s.lo[s.at(i, k)] * s.up[s.at(j, k)] // L[i][k]·U[k][j]
				sumU -= s.lo[s.at(j, k)] * s.up[s.at(i, k)] // L[j][k]·U[k][i]
			}
			s.lo[s.at(i, j)] = sumL / s.diag[j]
			s.up[s.at(i, j)] = sumU
		}
		for k = fi; k < i; k++ {
			s.diag[i] -= s.lo[s.at(i, k)] * s.up[s.at(i, k)]
		}
		if s.diag[i] == 0 {
			return fmt.Errorf("skyline lu: zero pivot at row %d: %w", i, ErrBreakdown)
		}
	}

	return nil
}

func (s *skyline) factorCholesky() error {
	var i, j, k, k0, fi int
	var sum float64
	for i = 0; i < s.n; i++ {
		fi = s.first[i]
		for j = fi; j < i; j++ {
			k0 = max(fi, s.first[j])
			sum = s.lo[s.at(i, j)]
			for k = k0; k < j; k++ {
				sum -= s.lo[s.at(i, k)] * s.lo[s.at(j, k)]
			}
			s.lo[s.at(i, j)] = sum / s.diag[j]
		}
		sum = s.diag[i]
		for k = fi; k < i; k++ {
			sum -= s.lo[s.at(i, k)] * s.lo[s.at(i, k)]
		}
		if sum <= 0 || math.IsNaN(sum) {
			return fmt.Errorf("skyline cholesky: non-positive pivot %g at row %d: %w", sum, i, ErrBreakdown)
		}
		s.diag[i] = math.Sqrt(sum)
	}

	return nil
}

// solve computes dst = A⁻¹·b by forward then column-oriented backward substitution.
func (s *skyline) solve(dst, b []float64) error {
	copy(dst, b)
	var i, k int
	var sum float64
	for i = 0; i < s.n; i++ {
		sum = dst[i]
		for k = s.first[i]; k < i; k++ {
			sum -= s.lo[s.at(i, k)] * dst[k]
		}
		if s.cholesky {
			sum /= s.diag[i]
		}
		dst[i] = sum
	}
	// Uᵀ is stored by column for LU and equals Lᵀ for Cholesky
	upper := s.up
	if s.cholesky {
		upper = s.lo
	}
	for i = s.n - 1; i >= 0; i-- {
		dst[i] /= s.diag[i]
		for k = s.first[i]; k < i; k++ {
			dst[k] -= upper[s.at(i, k)] * dst[i]
		}
	}

	return nil
}
