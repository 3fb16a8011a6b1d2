// SPDX-License-Identifier: MIT

// Package tensor - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a flat row-major buffer with the offset formula Σ idx[i]*stride[i].
//   - Keep the public surface error-returning (At/Set/New/Reshape never panic).
//   - Share storage on Reshape; copy on Transpose, Clone and Conj.
//   - Elements are complex128; real data simply has zero imaginary parts and
//     IsReal lets the factorizations pick gonum's real LAPACK path.
//
// AI-Hints:
//   - Data() and Shape() are views; mutate only through Set/Scale/Insert.
//   - Reshape(-1 ...) infers exactly one dimension.
package tensor

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"

	"gonum.org/v1/gonum/cmplxs"
)

// ---------- error context tags ----------

const (
	ctxNew     = "New"
	ctxAt      = "At"
	ctxSet     = "Set"
	ctxReshape = "Reshape"
)

// Dense is a concrete row-major N-dimensional array of complex128 values.
//   - shape holds the axis sizes (all > 0; empty for a 0-d scalar).
//   - data is a flat buffer of length shape.Size().
type Dense struct {
	shape Shape        // axis sizes, outermost first
	data  []complex128 // contiguous row-major storage
}

// New wraps data as a tensor of the given shape.
// A nil data slice allocates zeros; otherwise len(data) must equal the shape
// size. The slice is used directly, not copied.
//
// Errors:
//   - ErrBadShape if a dimension is non-positive or the length disagrees.
//
// Complexity:
//   - Time O(ndim) (O(size) when allocating), Space O(ndim).
func New(shape []int, data []complex128) (*Dense, error) {
	s := Shape(shape).Clone()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxNew, err)
	}
	if data == nil {
		data = make([]complex128, s.Size())
	}
	if len(data) != s.Size() {
		return nil, fmt.Errorf("%s: %d values for shape %v: %w", ctxNew, len(data), s, ErrBadShape)
	}

	return &Dense{shape: s, data: data}, nil
}

// Zeros allocates a zero tensor. It panics if a dimension is not positive;
// use New when the shape comes from user input.
func Zeros(shape ...int) *Dense {
	t, err := New(shape, nil)
	if err != nil {
		panic(err)
	}

	return t
}

// FromReal copies real values into a new tensor of the given shape.
func FromReal(shape []int, data []float64) (*Dense, error) {
	c := make([]complex128, len(data))
	for i, v := range data {
		c[i] = complex(v, 0)
	}

	return New(shape, c)
}

// Random returns a real tensor with independent standard normal entries
// drawn from rng. It panics on an invalid shape, like Zeros.
func Random(rng *rand.Rand, shape ...int) *Dense {
	t := Zeros(shape...)
	for i := range t.data {
		t.data[i] = complex(rng.NormFloat64(), 0)
	}

	return t
}

// RandomComplex returns a tensor with independent standard complex normal
// entries: real and imaginary parts are N(0, 1/2), so E|x|² = 1.
func RandomComplex(rng *rand.Rand, shape ...int) *Dense {
	t := Zeros(shape...)
	for i := range t.data {
		t.data[i] = complex(rng.NormFloat64()*math.Sqrt2/2, rng.NormFloat64()*math.Sqrt2/2)
	}

	return t
}

// Shape returns the axis sizes. The slice is the tensor's own; do not modify it.
func (t *Dense) Shape() Shape { return t.shape }

// NDim returns the number of axes.
func (t *Dense) NDim() int { return len(t.shape) }

// Size returns the number of elements.
func (t *Dense) Size() int { return len(t.data) }

// Dim returns the size of axis, counting from the end for negative values.
// It panics on an out-of-range axis, like a slice index would.
func (t *Dense) Dim(axis int) int {
	a, err := normAxis(axis, len(t.shape))
	if err != nil {
		panic(err)
	}

	return t.shape[a]
}

// Data returns the flat row-major backing slice (no copy).
func (t *Dense) Data() []complex128 { return t.data }

// IsReal reports whether every element has a zero imaginary part.
func (t *Dense) IsReal() bool {
	for _, v := range t.data {
		if imag(v) != 0 {
			return false
		}
	}

	return true
}

// offset computes the flat index of idx or returns ErrOutOfRange.
func (t *Dense) offset(method string, idx []int) (int, error) {
	if len(idx) != len(t.shape) {
		return 0, fmt.Errorf("Dense.%s%v: want %d indices: %w", method, idx, len(t.shape), ErrOutOfRange)
	}
	off := 0
	for i, k := range idx {
		if k < 0 || k >= t.shape[i] {
			return 0, fmt.Errorf("Dense.%s%v: shape %v: %w", method, idx, t.shape, ErrOutOfRange)
		}
		off = off*t.shape[i] + k
	}

	return off, nil
}

// At returns the element at the multi-index idx.
func (t *Dense) At(idx ...int) (complex128, error) {
	off, err := t.offset(ctxAt, idx)
	if err != nil {
		return 0, err
	}

	return t.data[off], nil
}

// Set assigns v at the multi-index idx.
func (t *Dense) Set(v complex128, idx ...int) error {
	off, err := t.offset(ctxSet, idx)
	if err != nil {
		return err
	}
	t.data[off] = v

	return nil
}

// Clone returns a deep copy.
func (t *Dense) Clone() *Dense {
	data := make([]complex128, len(t.data))
	copy(data, t.data)

	return &Dense{shape: t.shape.Clone(), data: data}
}

// Conj returns the element-wise complex conjugate as a new tensor.
func (t *Dense) Conj() *Dense {
	data := make([]complex128, len(t.data))
	for i, v := range t.data {
		data[i] = cmplx.Conj(v)
	}

	return &Dense{shape: t.shape.Clone(), data: data}
}

// Scale multiplies every element by f in place.
func (t *Dense) Scale(f complex128) { cmplxs.Scale(f, t.data) }

// Reshape returns a tensor sharing t's storage with a new shape.
// At most one dimension may be -1; it is inferred from the size.
//
// Errors:
//   - ErrBadShape if the sizes disagree, a dimension is invalid, or more than
//     one dimension is -1.
func (t *Dense) Reshape(shape ...int) (*Dense, error) {
	s := Shape(shape).Clone()
	infer := -1
	known := 1
	for i, d := range s {
		switch {
		case d == -1 && infer < 0:
			infer = i
		case d <= 0:
			return nil, fmt.Errorf("%s%v: %w", ctxReshape, shape, ErrBadShape)
		default:
			known *= d
		}
	}
	if infer >= 0 {
		if known == 0 || len(t.data)%known != 0 {
			return nil, fmt.Errorf("%s%v of %v: %w", ctxReshape, shape, t.shape, ErrBadShape)
		}
		s[infer] = len(t.data) / known
	}
	if s.Size() != len(t.data) {
		return nil, fmt.Errorf("%s%v of %v: %w", ctxReshape, shape, t.shape, ErrBadShape)
	}

	return &Dense{shape: s, data: t.data}, nil
}

// Norm returns the Euclidean norm of the flattened tensor.
func Norm(t *Dense) float64 { return cmplxs.Norm(t.data, 2) }

// AllClose reports whether a and b have equal shapes and all elements agree
// within the absolute tolerance tol.
func AllClose(a, b *Dense, tol float64) bool {
	return a.shape.Equal(b.shape) && cmplxs.EqualApprox(a.data, b.data, tol)
}

// String implements fmt.Stringer with the shape and flat data.
func (t *Dense) String() string {
	return fmt.Sprintf("Dense%v%v", t.shape, t.data)
}
