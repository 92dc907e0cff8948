// SPDX-License-Identifier: MIT

// Package sparse provides the compressed-row (CSR) operator used by the
// solver verification harness, together with the two independent ways of
// assembling it and the exact equivalence check between them.
//
// 🚀 What is here?
//
//	Operator  : immutable r×c CSR matrix (row pointer, column index, value).
//	Assembler : direct entry-by-entry insertion into preallocated rows,
//	            compacted into an Operator by Assemble.
//	Triplets  : flat (row, col, value) lists compacted into row-pointer form,
//	            imported in one bulk FromCSR call.
//	Equal     : exact structural and numerical comparison of two operators.
//
// ✨ Builders:
//
//	Tridiagonal(n)        : 1-D Laplacian (2 on the diagonal, −1 beside it)
//	                        by direct insertion.
//	TridiagonalFromCSR(n) : the same operator through triplets and FromCSR.
//	Laplacian2D(nx, ny)   : five-point stencil used for stored stiffness problems.
//
// ⚙️ Usage:
//
//	a, err := sparse.Tridiagonal(1000)
//	b, err := sparse.TridiagonalFromCSR(1000)
//	if !sparse.Equal(a, b) {
//		// construction paths disagree
//	}
//
// Determinism:
//
//	Every operator keeps its rows canonical (strictly increasing column
//	indices), so two operators that encode the same matrix share the same
//	backing layout and compare bit-for-bit.
package sparse
