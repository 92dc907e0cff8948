// SPDX-License-Identifier: MIT
// Package dataset: writing problems as .npz archives.

package dataset

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/katalvlaran/kspcheck/sparse"
	"github.com/sbinet/npyio"
	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"
)

// csrFormat is the value scipy.sparse.load_npz expects under "format".
const csrFormat = "csr"

var errEmpty = errors.New("no vectors")

// SaveOperator writes a in the scipy.sparse.save_npz CSR layout, so the
// archive loads with both LoadOperator and scipy. Index arrays are int32
// when every index fits, int64 otherwise.
// Errors: ErrProblemSave wrapping the cause.
func SaveOperator(path string, a *sparse.Operator) (err error) {
	if err = sparse.ValidateNotNil(a); err != nil {
		return saveErrorf(opSaveOperator, path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return saveErrorf(opSaveOperator, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = saveErrorf(opSaveOperator, path, cerr)
		}
	}()

	indptr, indices, data := a.CSR()
	rows, cols := a.Dims()
	entries := []struct {
		name string
		val  any
	}{
		{keyIndices, indexArray(indices, max(cols, len(data)))},
		{keyIndptr, indexArray(indptr, max(cols, len(data)))},
		{"format", nil}, // written by writeNPYBytes
		{keyShape, []int64{int64(rows), int64(cols)}},
		{keyData, data},
	}

	zw := zip.NewWriter(f)
	var w io.Writer
	for _, e := range entries {
		if w, err = zw.Create(e.name + ".npy"); err != nil {
			return saveErrorf(opSaveOperator, path, err)
		}
		if e.val == nil {
			err = writeNPYBytes(w, csrFormat)
		} else {
			err = npyio.Write(w, e.val)
		}
		if err != nil {
			return saveErrorf(opSaveOperator, path, fmt.Errorf("%s: %w", e.name, err))
		}
	}
	if err = zw.Close(); err != nil {
		return saveErrorf(opSaveOperator, path, err)
	}

	return nil
}

// indexArray narrows indices to int32 when limit fits, as scipy does.
func indexArray(idx []int, limit int) any {
	if limit <= math.MaxInt32 {
		out := make([]int32, len(idx))
		for i, v := range idx {
			out[i] = int32(v)
		}
		return out
	}
	out := make([]int64, len(idx))
	for i, v := range idx {
		out[i] = int64(v)
	}

	return out
}

// writeNPYBytes writes a 0-d numpy byte-string array (dtype |S<len>).
// npyio has no byte-string dtype, so the version 1.0 header is built here.
func writeNPYBytes(w io.Writer, s string) error {
	dict := fmt.Sprintf("{'descr': '|S%d', 'fortran_order': False, 'shape': (), }", len(s))
	const prefix = 10 // magic(6) + version(2) + header length(2)
	pad := 64 - (prefix+len(dict)+1)%64
	if pad == 64 {
		pad = 0
	}

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(dict)+pad+1))
	buf.WriteString(dict)
	buf.Write(bytes.Repeat([]byte{' '}, pad))
	buf.WriteByte('\n')
	buf.WriteString(s)

	_, err := w.Write(buf.Bytes())

	return err
}

// SaveVectors writes vecs as one k×n float64 array under VectorKey.
// All vectors must have the same non-zero length.
// Errors: ErrProblemSave wrapping the cause.
func SaveVectors(path string, vecs [][]float64) (err error) {
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return saveErrorf(opSaveVectors, path, errEmpty)
	}
	n := len(vecs[0])
	m := mat.NewDense(len(vecs), n, nil)
	for i, v := range vecs {
		if len(v) != n {
			return saveErrorf(opSaveVectors, path,
				fmt.Errorf("vector %d has len %d, want %d: %w", i, len(v), n, sparse.ErrDimensionMismatch))
		}
		m.SetRow(i, v)
	}

	w, err := npz.Create(path)
	if err != nil {
		return saveErrorf(opSaveVectors, path, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = saveErrorf(opSaveVectors, path, cerr)
		}
	}()
	if err = w.Write(VectorKey, m); err != nil {
		return saveErrorf(opSaveVectors, path, err)
	}

	return nil
}

// SaveProblem validates p and writes MatrixFile, RHSFile and SolutionFile
// into dir, creating it when needed.
// Errors: ErrProblemSave wrapping the cause.
func SaveProblem(dir string, p *Problem) error {
	if err := p.Validate(); err != nil {
		return saveErrorf(opSaveProblem, dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return saveErrorf(opSaveProblem, dir, err)
	}
	if err := SaveOperator(filepath.Join(dir, MatrixFile), p.Operator); err != nil {
		return err
	}
	if err := SaveVectors(filepath.Join(dir, RHSFile), p.RHS()); err != nil {
		return err
	}

	return SaveVectors(filepath.Join(dir, SolutionFile), p.Expected())
}
