// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/cmplxs"
)

// Transpose returns a copy of t with its axes permuted: axis i of the result
// is axis perm[i] of t.
//
// Errors:
//   - ErrAxis if perm is not a permutation of 0..ndim-1.
//
// Complexity:
//   - Time O(size·ndim), Space O(size).
func (t *Dense) Transpose(perm ...int) (*Dense, error) {
	nd := len(t.shape)
	if len(perm) != nd {
		return nil, fmt.Errorf("Transpose%v of %d dims: %w", perm, nd, ErrAxis)
	}
	seen := make([]bool, nd)
	identity := true
	for i, p := range perm {
		if p < 0 || p >= nd || seen[p] {
			return nil, fmt.Errorf("Transpose%v: %w", perm, ErrAxis)
		}
		seen[p] = true
		identity = identity && p == i
	}
	if identity {
		return t.Clone(), nil
	}

	oldStrides := t.shape.Strides()
	shape := make(Shape, nd)
	strides := make([]int, nd) // strides of the source, in result order
	for i, p := range perm {
		shape[i] = t.shape[p]
		strides[i] = oldStrides[p]
	}

	out := make([]complex128, len(t.data))
	idx := make([]int, nd)
	for flat := range out {
		off := 0
		for i, k := range idx {
			off += k * strides[i]
		}
		out[flat] = t.data[off]
		increment(idx, shape)
	}

	return &Dense{shape: shape, data: out}, nil
}

// Insert copies src into t so that src's element idx lands at offset+idx.
// Both tensors must have the same number of axes and src must fit.
func (t *Dense) Insert(src *Dense, offset ...int) error {
	nd := len(t.shape)
	if len(src.shape) != nd || len(offset) != nd {
		return fmt.Errorf("Insert: %v into %v at %v: %w", src.shape, t.shape, offset, ErrShapeMismatch)
	}
	for i := range nd {
		if offset[i] < 0 || offset[i]+src.shape[i] > t.shape[i] {
			return fmt.Errorf("Insert: %v into %v at %v: %w", src.shape, t.shape, offset, ErrOutOfRange)
		}
	}

	strides := t.shape.Strides()
	base := 0
	for i, o := range offset {
		base += o * strides[i]
	}
	idx := make([]int, nd)
	for _, v := range src.data {
		off := base
		for i, k := range idx {
			off += k * strides[i]
		}
		t.data[off] = v
		increment(idx, src.shape)
	}

	return nil
}

// Concatenate joins a and b along axis. All other axes must agree.
func Concatenate(a, b *Dense, axis int) (*Dense, error) {
	if len(a.shape) != len(b.shape) {
		return nil, fmt.Errorf("Concatenate: %v and %v: %w", a.shape, b.shape, ErrShapeMismatch)
	}
	ax, err := normAxis(axis, len(a.shape))
	if err != nil {
		return nil, fmt.Errorf("Concatenate: %w", err)
	}
	shape := a.shape.Clone()
	for i := range shape {
		if i != ax && a.shape[i] != b.shape[i] {
			return nil, fmt.Errorf("Concatenate: %v and %v along %d: %w", a.shape, b.shape, ax, ErrShapeMismatch)
		}
	}
	shape[ax] += b.shape[ax]

	out := &Dense{shape: shape, data: make([]complex128, shape.Size())}
	offset := make([]int, len(shape))
	if err = out.Insert(a, offset...); err != nil {
		return nil, err
	}
	offset[ax] = a.shape[ax]
	if err = out.Insert(b, offset...); err != nil {
		return nil, err
	}

	return out, nil
}

// Add returns the element-wise sum a+b of two equally shaped tensors.
func Add(a, b *Dense) (*Dense, error) {
	if !a.shape.Equal(b.shape) {
		return nil, fmt.Errorf("Add: %v and %v: %w", a.shape, b.shape, ErrShapeMismatch)
	}
	data := make([]complex128, len(a.data))
	cmplxs.AddTo(data, a.data, b.data)

	return &Dense{shape: a.shape.Clone(), data: data}, nil
}

// Tensordot contracts axesA of a with axesB of b, pairwise.
// The result carries the free axes of a (in order) followed by the free axes
// of b, matching numpy.tensordot.
//
// Implementation:
//   - Stage 1: validate axis lists (equal length, distinct, in range) and the
//     contracted dimensions.
//   - Stage 2: permute a to (free, contracted) and b to (contracted, free).
//   - Stage 3: one cblas128 Gemm on the flattened row-major views.
//
// Errors:
//   - ErrAxis for malformed axis lists.
//   - ErrShapeMismatch if a contracted pair has different sizes.
//
// Complexity:
//   - Time O(size(a)+size(b)) for the permutations plus O(m·k·n) for the product.
func Tensordot(a, b *Dense, axesA, axesB []int) (*Dense, error) {
	if len(axesA) != len(axesB) {
		return nil, fmt.Errorf("Tensordot: %d vs %d contracted axes: %w", len(axesA), len(axesB), ErrAxis)
	}
	ca, err := contractedAxes(axesA, len(a.shape))
	if err != nil {
		return nil, fmt.Errorf("Tensordot: lhs: %w", err)
	}
	cb, err := contractedAxes(axesB, len(b.shape))
	if err != nil {
		return nil, fmt.Errorf("Tensordot: rhs: %w", err)
	}
	k := 1
	for i := range ca {
		if a.shape[ca[i]] != b.shape[cb[i]] {
			return nil, fmt.Errorf("Tensordot: axis %d of %v vs axis %d of %v: %w",
				ca[i], a.shape, cb[i], b.shape, ErrShapeMismatch)
		}
		k *= a.shape[ca[i]]
	}

	freeA := freeAxes(ca, len(a.shape))
	freeB := freeAxes(cb, len(b.shape))
	at, err := a.Transpose(slices.Concat(freeA, ca)...)
	if err != nil {
		return nil, err
	}
	bt, err := b.Transpose(slices.Concat(cb, freeB)...)
	if err != nil {
		return nil, err
	}

	shape := make(Shape, 0, len(freeA)+len(freeB))
	for _, ax := range freeA {
		shape = append(shape, a.shape[ax])
	}
	for _, ax := range freeB {
		shape = append(shape, b.shape[ax])
	}
	m := len(at.data) / k
	n := len(bt.data) / k

	out := make([]complex128, m*n)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1,
		general(m, k, at.data), general(k, n, bt.data),
		0, general(m, n, out))

	return &Dense{shape: shape, data: out}, nil
}

// general wraps row-major data as a dense BLAS matrix without copying.
func general(rows, cols int, data []complex128) cblas128.General {
	return cblas128.General{Rows: rows, Cols: cols, Stride: cols, Data: data}
}

// contractedAxes normalizes negative axes and rejects repeats.
func contractedAxes(axes []int, ndim int) ([]int, error) {
	out := make([]int, len(axes))
	seen := make([]bool, ndim)
	for i, ax := range axes {
		a, err := normAxis(ax, ndim)
		if err != nil {
			return nil, err
		}
		if seen[a] {
			return nil, fmt.Errorf("axis %d repeated: %w", a, ErrAxis)
		}
		seen[a] = true
		out[i] = a
	}

	return out, nil
}

// freeAxes lists 0..ndim-1 minus the contracted axes, in ascending order.
func freeAxes(contracted []int, ndim int) []int {
	skip := make([]bool, ndim)
	for _, a := range contracted {
		skip[a] = true
	}
	free := make([]int, 0, ndim-len(contracted))
	for a := range ndim {
		if !skip[a] {
			free = append(free, a)
		}
	}

	return free
}
