// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Shape lists the size of every axis of a Dense, outermost first.
type Shape []int

// Size returns the number of elements described by s (1 for the empty shape).
func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d
	}

	return n
}

// Validate reports ErrBadShape if any dimension is not positive.
func (s Shape) Validate() error {
	for i, d := range s {
		if d <= 0 {
			return fmt.Errorf("Shape.Validate: axis %d has size %d: %w", i, d, ErrBadShape)
		}
	}

	return nil
}

// Equal reports whether s and o describe the same shape.
func (s Shape) Equal(o Shape) bool { return slices.Equal(s, o) }

// Clone returns an independent copy of s.
func (s Shape) Clone() Shape { return slices.Clone(s) }

// Strides returns row-major strides: the flat offset of index idx is
// Σ idx[i]*strides[i].
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}

	return strides
}

// String formats s like a tuple, e.g. "(1, 2, 3)".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// normAxis maps a possibly negative axis onto [0, ndim).
func normAxis(axis, ndim int) (int, error) {
	if axis < 0 {
		axis += ndim
	}
	if axis < 0 || axis >= ndim {
		return 0, fmt.Errorf("axis %d for %d dims: %w", axis, ndim, ErrAxis)
	}

	return axis, nil
}

// increment advances a row-major multi-index over shape by one step.
func increment(idx []int, shape Shape) {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < shape[i] {
			return
		}
		idx[i] = 0
	}
}
