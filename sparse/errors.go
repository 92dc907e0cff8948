// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// All constructors and kernels return these sentinels (optionally wrapped with
// a call-site tag via sparseErrorf); callers match them with errors.Is.

package sparse

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a requested operator size is
	// malformed, e.g. Tridiagonal(n) with n < 2.
	ErrInvalidDimension = errors.New("sparse: invalid dimension")

	// ErrOutOfRange indicates a row or column index outside the operator bounds.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates incompatible operand sizes (MulVec with
	// a vector of the wrong length, solution length vs. operator columns).
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrMalformedCSR indicates an inconsistent row-pointer/column-index/value triple.
	ErrMalformedCSR = errors.New("sparse: malformed compressed-row data")

	// ErrPreallocation indicates that a row received more distinct entries
	// than were preallocated for it.
	ErrPreallocation = errors.New("sparse: row preallocation exceeded")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")

	// ErrAssembled is returned when an Assembler is used after Assemble.
	ErrAssembled = errors.New("sparse: assembler already assembled")

	// ErrNilOperator indicates that a nil *Operator was passed where one is required.
	ErrNilOperator = errors.New("sparse: nil operator")

	// ErrEquivalenceMismatch reports that two construction paths produced
	// different operators. It is always fatal to the case that observes it.
	ErrEquivalenceMismatch = errors.New("sparse: operators are not equivalent")
)

// Operation tags used to prefix wrapped errors.
const (
	opAssembler   = "NewAssembler"
	opSetValue    = "SetValue"
	opAssemble    = "Assemble"
	opFromCSR     = "FromCSR"
	opTriplets    = "Triplets"
	opTridiagonal = "Tridiagonal"
	opTriCSR      = "TridiagonalFromCSR"
	opLaplacian2D = "Laplacian2D"
	opMulVec      = "MulVec"
	opAt          = "At"
	opEquivalent  = "CheckEquivalent"
)

// sparseErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with a non-nil err.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
