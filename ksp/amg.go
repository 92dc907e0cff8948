// SPDX-License-Identifier: MIT
// Package ksp: aggregation algebraic multigrid preconditioner.
//
// Setup builds a hierarchy A₀ = A, A₁ = PᵀA₀P, … where P is piecewise
// constant over aggregates of strongly connected unknowns. One application
// is a symmetric V-cycle:
//
//	forward Gauss–Seidel → restrict residual → recurse → prolongate → backward Gauss–Seidel
//
// with a dense Cholesky (or LU) solve on the coarsest level. The cycle is
// symmetric for symmetric A, so it is a valid CG preconditioner.

package ksp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/kspcheck/sparse"
)

// Hierarchy limits.
const (
	// amgStrength is θ in |a_ij| >= θ·sqrt(|a_ii·a_jj|).
	amgStrength = 0.25

	// amgMaxCoarse stops coarsening once a level has at most this many rows.
	amgMaxCoarse = 40

	// amgMaxLevels caps the hierarchy depth.
	amgMaxLevels = 10
)

// amgLevel is one level of the hierarchy. agg is nil on the coarsest level.
type amgLevel struct {
	a    *sparse.Operator
	diag []float64
	agg  []int     // fine row → coarse aggregate
	res  []float64 // residual scratch, len n
	b, x []float64 // rhs/solution buffers for levels > 0
}

// amgPC is the V-cycle preconditioner.
type amgPC struct {
	levels []*amgLevel
	coarse factorization
}

// newAMG builds the multigrid hierarchy of a with the given coarsening
// (CoarsenDefault selects greedy).
//
// Errors: ErrBreakdown for a zero diagonal on any level or a singular
// coarsest operator; ErrUnsupportedBackend for an unknown coarsening.
func newAMG(a *sparse.Operator, coarsening Coarsening) (*amgPC, error) {
	var aggregate func(*sparse.Operator) (agg []int, nc int)
	switch coarsening {
	case CoarsenDefault, CoarsenGreedy:
		aggregate = greedyAggregates
	case CoarsenPairwise:
		aggregate = pairwiseAggregates
	default:
		return nil, fmt.Errorf("amg coarsening %q: %w", coarsening, ErrUnsupportedBackend)
	}

	pc := &amgPC{}
	cur := a
	for {
		lvl, err := newAMGLevel(cur, len(pc.levels))
		if err != nil {
			return nil, err
		}
		pc.levels = append(pc.levels, lvl)
		n := cur.Rows()
		if n <= amgMaxCoarse || len(pc.levels) == amgMaxLevels {
			break
		}
		agg, nc := aggregate(cur)
		if nc >= n || nc == 0 {
			break // no progress
		}
		next, err := galerkin(cur, agg, nc)
		if err != nil {
			return nil, err
		}
		lvl.agg = agg
		cur = next
	}

	last := pc.levels[len(pc.levels)-1].a
	coarse, err := newDenseFactor(last, true)
	if err != nil {
		if coarse, err = newDenseFactor(last, false); err != nil {
			return nil, fmt.Errorf("amg coarse solve (%d rows): %w", last.Rows(), err)
		}
	}
	pc.coarse = coarse

	return pc, nil
}

func newAMGLevel(a *sparse.Operator, depth int) (*amgLevel, error) {
	d := a.Diagonal()
	for i, v := range d {
		if v == 0 {
			return nil, fmt.Errorf("amg level %d: zero diagonal at row %d: %w", depth, i, ErrBreakdown)
		}
	}
	n := a.Rows()
	lvl := &amgLevel{a: a, diag: d, res: make([]float64, n)}
	if depth > 0 {
		lvl.b = make([]float64, n)
		lvl.x = make([]float64, n)
	}

	return lvl, nil
}

// strongNeighbours returns the strongly connected off-diagonal columns of row i.
func strongNeighbours(a *sparse.Operator, diag []float64, i int, buf []int) []int {
	buf = buf[:0]
	cols, vals := a.Row(i)
	for k, j := range cols {
		if j != i && math.Abs(vals[k]) >= amgStrength*math.Sqrt(math.Abs(diag[i]*diag[j])) {
			buf = append(buf, j)
		}
	}

	return buf
}

// greedyAggregates runs three-pass aggregation:
//   - pass 1: a node whose strong neighbours are all free seeds an aggregate
//     with them;
//   - pass 2: free nodes join the aggregate of a pass-1 strong neighbour;
//   - pass 3: remaining nodes group with their free strong neighbours.
func greedyAggregates(a *sparse.Operator) ([]int, int) {
	n := a.Rows()
	diag := a.Diagonal()
	agg := make([]int, n)
	for i := range agg {
		agg[i] = -1
	}
	nc := 0
	var nb []int

	var i int
	for i = 0; i < n; i++ {
		if agg[i] >= 0 {
			continue
		}
		nb = strongNeighbours(a, diag, i, nb)
		if len(nb) == 0 {
			continue
		}
		free := true
		for _, j := range nb {
			if agg[j] >= 0 {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		agg[i] = nc
		for _, j := range nb {
			agg[j] = nc
		}
		nc++
	}

	pass1 := append([]int(nil), agg...)
	for i = 0; i < n; i++ {
		if agg[i] >= 0 {
			continue
		}
		for _, j := range strongNeighbours(a, diag, i, nb) {
			if pass1[j] >= 0 {
				agg[i] = pass1[j]
				break
			}
		}
	}

	for i = 0; i < n; i++ {
		if agg[i] >= 0 {
			continue
		}
		agg[i] = nc
		for _, j := range strongNeighbours(a, diag, i, nb) {
			if agg[j] < 0 {
				agg[j] = nc
			}
		}
		nc++
	}

	return agg, nc
}

// pairwiseAggregates pairs each free node with its strongest free strong
// neighbour; nodes left without a partner become singletons.
func pairwiseAggregates(a *sparse.Operator) ([]int, int) {
	n := a.Rows()
	diag := a.Diagonal()
	agg := make([]int, n)
	for i := range agg {
		agg[i] = -1
	}
	nc := 0
	var nb []int
	for i := 0; i < n; i++ {
		if agg[i] >= 0 {
			continue
		}
		best, bestW := -1, 0.0
		nb = strongNeighbours(a, diag, i, nb)
		for _, j := range nb {
			if agg[j] >= 0 {
				continue
			}
			if w, _ := a.At(i, j); math.Abs(w) > bestW {
				best, bestW = j, math.Abs(w)
			}
		}
		agg[i] = nc
		if best >= 0 {
			agg[best] = nc
		}
		nc++
	}

	return agg, nc
}

// galerkin returns PᵀAP for the piecewise-constant prolongation given by agg:
// Ac[agg[i], agg[j]] = Σ a_ij.
func galerkin(a *sparse.Operator, agg []int, nc int) (*sparse.Operator, error) {
	t, err := sparse.NewTriplets(nc, nc)
	if err != nil {
		return nil, err
	}
	for i := 0; i < a.Rows(); i++ {
		cols, vals := a.Row(i)
		for k, j := range cols {
			if err = t.Append(agg[i], agg[j], vals[k]); err != nil {
				return nil, err
			}
		}
	}
	indptr, indices, data := t.CSR()

	return sparse.FromCSR(nc, nc, indptr, indices, data)
}

// apply implements preconditioner with one V-cycle from a zero guess.
func (p *amgPC) apply(dst, src []float64) error {
	for i := range dst {
		dst[i] = 0
	}

	return p.cycle(0, src, dst)
}

func (p *amgPC) cycle(l int, b, x []float64) error {
	lvl := p.levels[l]
	if l == len(p.levels)-1 {
		return p.coarse.solve(x, b)
	}

	lvl.gaussSeidel(b, x, false)

	if err := lvl.a.MulVec(lvl.res, x); err != nil {
		return err
	}
	next := p.levels[l+1]
	for i := range next.b {
		next.b[i], next.x[i] = 0, 0
	}
	for i, r := range lvl.res {
		next.b[lvl.agg[i]] += b[i] - r
	}

	if err := p.cycle(l+1, next.b, next.x); err != nil {
		return err
	}

	for i := range x {
		x[i] += next.x[lvl.agg[i]]
	}
	lvl.gaussSeidel(b, x, true)

	return nil
}

// gaussSeidel performs one in-place sweep on A·x = b, rows ascending or,
// when backward is set, descending.
func (lvl *amgLevel) gaussSeidel(b, x []float64, backward bool) {
	n := len(x)
	var sum float64
	for s := 0; s < n; s++ {
		i := s
		if backward {
			i = n - 1 - s
		}
		sum = b[i]
		cols, vals := lvl.a.Row(i)
		for k, j := range cols {
			if j != i {
				sum -= vals[k] * x[j]
			}
		}
		x[i] = sum / lvl.diag[i]
	}
}
