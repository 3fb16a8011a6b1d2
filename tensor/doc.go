// SPDX-License-Identifier: MIT

// Package tensor provides the dense N-dimensional array used as the local
// building block of matrix product arrays.
//
// What & Why:
//
//	A Dense is a flat, row-major []complex128 together with its Shape. Every
//	reshaping operation keeps the row-major contract, so merging adjacent axes
//	into a matrix never needs a copy. Contractions run on gonum's cblas128
//	Gemm. Real matrices are factorized by gonum/mat (LAPACK); complex ones by
//	the Householder QR and one-sided Jacobi SVD in this package.
//
// Key operations:
//   - Reshape / Transpose / Insert / Concatenate: leg bookkeeping.
//   - Tensordot: contraction with numpy ordering (free axes of a, then of b).
//   - QR / SVD: reduced factorizations of 2-D views.
//   - Conj / H: element-wise and Hermitian conjugation.
//
// Complexity quicksheet:
//   - New/Zeros/Clone: O(size); Reshape: O(ndim); Transpose: O(size·ndim).
//   - Tensordot: O(size) permutations plus one O(m·k·n) matrix product.
//
// Concurrency:
//
//	Dense values are not synchronized. Concurrent reads are fine; any writer
//	(Set, Scale, Insert) must be serialized by the caller.
package tensor
