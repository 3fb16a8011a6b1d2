// Package mpnum is a small numerics library for matrix product arrays:
// high-dimensional arrays kept as a chain of low-rank local tensors, so that
// sums, products, inner products and compression never touch the full array.
//
// 🚀 What is in the box?
//
//	• tensor/  : dense row-major N-d float64 arrays with reshape, transpose,
//	             block insertion, Tensordot, and QR/SVD through gonum/mat
//	• mparray/ : the MPArray chain, canonical forms (QR sweeps), truncated-SVD
//	             compression, Dot / Inner / Norm without materialization
//
// ✨ Why mpnum?
//
//   - Small surface: one container type, options for everything optional
//   - Explicit errors: sentinels plus %w wrapping, matched with errors.Is
//   - Deterministic: randomness only through a caller-supplied *rand.Rand
//
// Quick example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	a, _ := mparray.Random(8, []int{2}, 4, rng)
//	_, _ = a.Compress(2)
//	n, _ := mparray.Norm(a)
//
//	go get github.com/katalvlaran/mpnum
package mpnum
