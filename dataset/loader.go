// SPDX-License-Identifier: MIT
// Package dataset: reading problems from .npz archives.

package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/kspcheck/sparse"
	"github.com/sbinet/npyio/npy"
	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"
)

// Array names of the scipy CSR layout.
const (
	keyIndptr  = "indptr"
	keyIndices = "indices"
	keyData    = "data"
	keyShape   = "shape"
)

var (
	errMissingArray = errors.New("missing array")
	errDtype        = errors.New("unsupported dtype")
	errShape        = errors.New("unexpected shape")
)

// LoadOperator reads a CSR operator stored in the scipy.sparse.save_npz layout.
//
// Implementation:
//   - Stage 1: read indptr and indices (int32 or int64) and data
//     (float32 or float64).
//   - Stage 2: rows = len(indptr)−1; columns from the shape array when
//     present, else one past the largest column index.
//   - Stage 3: import through sparse.FromCSR, which validates the structure.
//
// The optional format entry is not interpreted.
// Errors: ErrProblemLoad wrapping the cause.
func LoadOperator(path string) (*sparse.Operator, error) {
	r, err := npz.Open(path)
	if err != nil {
		return nil, loadErrorf(opLoadOperator, path, err)
	}
	defer r.Close()

	indptr, err := readInts(r, keyIndptr)
	if err != nil {
		return nil, loadErrorf(opLoadOperator, path, err)
	}
	indices, err := readInts(r, keyIndices)
	if err != nil {
		return nil, loadErrorf(opLoadOperator, path, err)
	}
	data, _, err := readFloats(r, keyData)
	if err != nil {
		return nil, loadErrorf(opLoadOperator, path, err)
	}
	if len(indptr) == 0 {
		return nil, loadErrorf(opLoadOperator, path, fmt.Errorf("%s: empty: %w", keyIndptr, errShape))
	}

	rows := len(indptr) - 1
	cols := 0
	for _, j := range indices {
		cols = max(cols, j+1)
	}
	if _, ok := lookup(r, keyShape); ok {
		shape, err := readInts(r, keyShape)
		if err != nil {
			return nil, loadErrorf(opLoadOperator, path, err)
		}
		if len(shape) != 2 || shape[0] != rows {
			return nil, loadErrorf(opLoadOperator, path,
				fmt.Errorf("%s %v for %d row pointers: %w", keyShape, shape, len(indptr), errShape))
		}
		cols = shape[1]
	}

	a, err := sparse.FromCSR(rows, cols, indptr, indices, data)
	if err != nil {
		return nil, loadErrorf(opLoadOperator, path, err)
	}

	return a, nil
}

// LoadVectors reads the right-hand sides and expected solutions and pairs
// them row by row. Both arrays must have the same shape.
// Errors: ErrProblemLoad wrapping the cause.
func LoadVectors(rhsPath, solPath string) ([]VectorPair, error) {
	rhs, err := readVectorFile(rhsPath)
	if err != nil {
		return nil, loadErrorf(opLoadVectors, rhsPath, err)
	}
	sol, err := readVectorFile(solPath)
	if err != nil {
		return nil, loadErrorf(opLoadVectors, solPath, err)
	}

	rr, rc := rhs.Dims()
	sr, sc := sol.Dims()
	if rr != sr || rc != sc {
		return nil, loadErrorf(opLoadVectors, solPath,
			fmt.Errorf("solutions %dx%d, right-hand sides %dx%d: %w", sr, sc, rr, rc, errShape))
	}

	pairs := make([]VectorPair, rr)
	for i := range pairs {
		pairs[i] = VectorPair{
			RHS:      mat.Row(nil, i, rhs),
			Expected: mat.Row(nil, i, sol),
		}
	}

	return pairs, nil
}

// LoadProblem reads MatrixFile, RHSFile and SolutionFile from dir and checks
// that every vector conforms to the operator.
// Errors: ErrProblemLoad wrapping the cause.
func LoadProblem(dir string) (*Problem, error) {
	a, err := LoadOperator(filepath.Join(dir, MatrixFile))
	if err != nil {
		return nil, err
	}
	pairs, err := LoadVectors(filepath.Join(dir, RHSFile), filepath.Join(dir, SolutionFile))
	if err != nil {
		return nil, err
	}

	p := &Problem{Operator: a, Pairs: pairs}
	if err = p.Validate(); err != nil {
		return nil, loadErrorf(opLoadProblem, dir, err)
	}

	return p, nil
}

// readVectorFile returns arr_0 as a k×n matrix, one vector per row.
func readVectorFile(path string) (*mat.Dense, error) {
	r, err := npz.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	flat, shape, err := readFloats(r, VectorKey)
	if err != nil {
		return nil, err
	}
	switch len(shape) {
	case 1:
		if shape[0] == 0 {
			return nil, fmt.Errorf("%s: empty vector: %w", VectorKey, errShape)
		}
		return mat.NewDense(1, shape[0], flat), nil
	case 2:
		if shape[0] == 0 || shape[1] == 0 {
			return nil, fmt.Errorf("%s %v: %w", VectorKey, shape, errShape)
		}
		return mat.NewDense(shape[0], shape[1], flat), nil
	default:
		return nil, fmt.Errorf("%s %v: %w", VectorKey, shape, errShape)
	}
}

// lookup resolves an array name to the archive key, with or without the
// ".npy" suffix.
func lookup(r *npz.Reader, name string) (string, bool) {
	for _, k := range r.Keys() {
		if k == name || k == name+".npy" {
			return k, true
		}
	}

	return "", false
}

// header returns the npy header of the named array.
func header(r *npz.Reader, name string) (string, *npy.Header, error) {
	key, ok := lookup(r, name)
	if !ok {
		return "", nil, fmt.Errorf("%q: %w", name, errMissingArray)
	}
	h := r.Header(key)
	if h == nil {
		return "", nil, fmt.Errorf("%q: %w", name, errMissingArray)
	}

	return key, h, nil
}

// dtypeKind strips the byte-order mark from a numpy type string ("<i8" → "i8").
func dtypeKind(descr string) string {
	return strings.TrimLeft(descr, "<>|=")
}

// readInts reads an int32 or int64 array as []int.
func readInts(r *npz.Reader, name string) ([]int, error) {
	key, h, err := header(r, name)
	if err != nil {
		return nil, err
	}

	switch dtypeKind(h.Descr.Type) {
	case "i8":
		var raw []int64
		if err = r.Read(key, &raw); err != nil {
			return nil, fmt.Errorf("%q: %w", name, err)
		}
		out := make([]int, len(raw))
		for i, v := range raw {
			out[i] = int(v)
		}
		return out, nil
	case "i4":
		var raw []int32
		if err = r.Read(key, &raw); err != nil {
			return nil, fmt.Errorf("%q: %w", name, err)
		}
		out := make([]int, len(raw))
		for i, v := range raw {
			out[i] = int(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%q has %s: %w", name, h.Descr.Type, errDtype)
	}
}

// readFloats reads a float32 or float64 array in C order, returning the flat
// values and the stored shape. Fortran-ordered 2-D arrays are transposed
// into C order.
func readFloats(r *npz.Reader, name string) ([]float64, []int, error) {
	key, h, err := header(r, name)
	if err != nil {
		return nil, nil, err
	}

	var out []float64
	switch dtypeKind(h.Descr.Type) {
	case "f8":
		if err = r.Read(key, &out); err != nil {
			return nil, nil, fmt.Errorf("%q: %w", name, err)
		}
	case "f4":
		var raw []float32
		if err = r.Read(key, &raw); err != nil {
			return nil, nil, fmt.Errorf("%q: %w", name, err)
		}
		out = make([]float64, len(raw))
		for i, v := range raw {
			out[i] = float64(v)
		}
	default:
		return nil, nil, fmt.Errorf("%q has %s: %w", name, h.Descr.Type, errDtype)
	}

	shape := append([]int(nil), h.Descr.Shape...)
	if h.Descr.Fortran && len(shape) == 2 {
		// column-major k×n → row-major
		k, n := shape[0], shape[1]
		c := make([]float64, len(out))
		for i := 0; i < k; i++ {
			for j := 0; j < n; j++ {
				c[i*n+j] = out[j*k+i]
			}
		}
		out = c
	}

	return out, shape, nil
}
