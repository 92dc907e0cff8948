// SPDX-License-Identifier: MIT

// Package dataset loads, stores and generates persisted linear-system
// problems: one sparse operator plus an ordered list of
// (right-hand side, expected solution) pairs.
//
// 📦 On-disk layout (NumPy .npz archives, one directory per problem):
//
//	system_matrix.npz   scipy.sparse.save_npz CSR layout:
//	                    indptr, indices (int32|int64), data (float32|float64),
//	                    shape (int64[2]), format ("csr")
//	system_rhs.npz      arr_0: k×n right-hand sides, one per row
//	system_sol.npz      arr_0: k×n expected solutions, row i pairs rhs row i
//
// A one-dimensional arr_0 is read as a single vector. The archives are read
// and written with github.com/sbinet/npyio.
//
// ⚙️ Usage:
//
//	p, err := dataset.LoadProblem("data")
//	if errors.Is(err, dataset.ErrProblemLoad) { ... }
//
//	p, err = dataset.Generate(40, 40, 3, 1) // 2-D Laplacian, 3 rhs, seed 1
//	err = dataset.SaveProblem("data", p)
//
// Loading performs structural checks only (shapes, index ranges); the
// numbers themselves are taken as given.
package dataset
