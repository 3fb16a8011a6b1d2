// SPDX-License-Identifier: MIT

// Package tensor: sentinel error set.
// All functions return these sentinels (wrapped with call-site context via %w);
// tests match them with errors.Is. Only Zeros panics, and only on shapes that
// a caller could not have meant.
package tensor

import "errors"

var (
	// ErrBadShape is returned when a shape has a non-positive dimension or
	// does not match the length of the supplied data.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrOutOfRange indicates a multi-index outside the tensor bounds.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrAxis indicates an invalid axis or permutation (out of range, repeated,
	// or of the wrong length).
	ErrAxis = errors.New("tensor: invalid axis")

	// ErrShapeMismatch indicates incompatible operand shapes, e.g. contracted
	// dimensions that differ in Tensordot.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrFactorization signals that a dense factorization did not converge.
	ErrFactorization = errors.New("tensor: factorization failed")
)
