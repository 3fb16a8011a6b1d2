// SPDX-License-Identifier: MIT

// Package mparray implements matrix product arrays (MPAs): an N-index array
// stored as a chain of small local tensors, one per site.
//
//	A[(i1), ..., (iN)] = A¹[(i1)] · A²[(i2)] · ... · Aᴺ[(iN)]
//
// Each local tensor has a left bond leg (axis 0), any number of physical legs,
// and a right bond leg (last axis). Contracting the chain along its bond legs
// yields the full array; the point of the representation is that you rarely
// need to.
//
// What you get:
//
//   - Construction: New (from local tensors), FromArray (exact, by QR
//     splitting of a dense array), Random, RandomComplex.
//   - Algebra: Add, Sub, Mul, Div and their in-place forms, T, Adj, Conj.
//   - Canonical forms: Normalize with Left(m) / Right(n) targets.
//   - Compression: Compress(maxBdim) by one truncated-SVD sweep.
//   - Contractions: Dot, DotAxes, Inner, Norm, and ToArray as an escape hatch.
//
// Normal form:
//
//	(lnorm, rnorm) with 0 <= lnorm < rnorm <= L means sites [0, lnorm) are
//	left-normalized and sites [rnorm, L) are right-normalized. (0, L) says
//	nothing is known. Normalize and Compress keep it up to date; derived arrays
//	(sums, products, transposes) start from (0, L).
//
// Numbers:
//
//	Elements are complex128. Inner is conjugate-linear in its first argument,
//	Conj conjugates every entry and Adj is the conjugate transpose. Real
//	chains (Random, real FromArray input) stay real through every operation
//	and are factorized by gonum's LAPACK routines; complex chains
//	(RandomComplex) use the package's own Householder QR and Jacobi SVD.
//
// Concurrency:
//
//	An MPArray is a plain value without internal locking. Share it freely
//	between readers; serialize anything that calls Normalize, Compress,
//	MulInPlace or DivInPlace.
//
// Diagnostics:
//
//	Pass WithLogger(*slog.Logger) at construction to receive per-site sweep
//	records at Debug level and a compression summary at Info level.
//
// Reference:
//
//	[Sch11] U. Schollwöck, "The density-matrix renormalization group in the
//	age of matrix product states", Annals of Physics 326, 96 (2011).
package mparray
