// SPDX-License-Identifier: MIT

// Package mparray: sentinel error set.
//
// Error policy:
//   - Every failure is a local precondition check raised at the point of
//     violation; nothing is retried or recovered internally.
//   - Functions wrap these sentinels with call-site context via %w; callers
//     branch with errors.Is (or errors.As for BondMismatchError).
//   - Validation runs before any in-place mutation, so a failed call leaves
//     the receiver untouched.
package mparray

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch indicates incompatible shapes: adjacent bond sizes that
	// disagree, operands of different length, or differing physical legs.
	ErrShapeMismatch = errors.New("mparray: shape mismatch")

	// ErrEmptyChain is returned when a chain with no sites is requested.
	ErrEmptyChain = errors.New("mparray: chain has no sites")

	// ErrUnsupportedOperand indicates a scalar operation received a value it
	// cannot apply (zero divisor, NaN or ±Inf factor).
	ErrUnsupportedOperand = errors.New("mparray: unsupported operand")

	// ErrUnsupportedMethod is returned by Compress for an unknown method.
	ErrUnsupportedMethod = errors.New("mparray: unsupported method")

	// ErrInvariantViolation marks a structurally impossible request, e.g. a
	// normalization target at or past the chain ends, or left >= right.
	ErrInvariantViolation = errors.New("mparray: invariant violation")
)

// BondMismatchError reports that the last axis of site Site (size Left) does
// not match the first axis of site Site+1 (size Right).
type BondMismatchError struct {
	Site        int
	Left, Right int
}

func (e *BondMismatchError) Error() string {
	return fmt.Sprintf("mparray: shape mismatch on %d: %d != %d", e.Site, e.Left, e.Right)
}

// Unwrap lets errors.Is(err, ErrShapeMismatch) match.
func (e *BondMismatchError) Unwrap() error { return ErrShapeMismatch }
