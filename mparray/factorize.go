// SPDX-License-Identifier: MIT

package mparray

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/mpnum/tensor"
)

// FromArray computes the exact matrix product representation of array with
// open boundary conditions [Sch11, Sec. 4.3.1].
//
// The axes of array must already be grouped per site, i.e.
// array[(i1), ..., (iN)] with plegs adjacent axes per group; the result has
// array.NDim()/plegs sites. Local tensors are split off from the left by QR
// decompositions, which leaves the chain left-canonical: NormalForm() is
// (L-1, L).
//
// Errors:
//   - ErrShapeMismatch if plegs < 1 or array.NDim() is not a multiple of plegs.
func FromArray(array *tensor.Dense, plegs int, opts ...Option) (*MPArray, error) {
	if plegs < 1 || array.NDim() == 0 || array.NDim()%plegs != 0 {
		return nil, fmt.Errorf("FromArray: plegs invalid: %d is not multiple of %d: %w",
			array.NDim(), plegs, ErrShapeMismatch)
	}

	// Prepend the trivial left bond leg.
	rest, err := array.Clone().Reshape(slices.Concat([]int{1}, []int(array.Shape()))...)
	if err != nil {
		return nil, fmt.Errorf("FromArray: %w", err)
	}
	ltens, err := extractFactors(rest, plegs)
	if err != nil {
		return nil, fmt.Errorf("FromArray: %w", err)
	}

	opts = append([]Option{WithLeftNormalized(len(ltens) - 1)}, opts...)

	return New(ltens, opts...)
}

// extractFactors peels off the leftmost local tensor (bond leg + plegs
// physical legs) with a QR decomposition until only one site remains.
func extractFactors(rest *tensor.Dense, plegs int) ([]*tensor.Dense, error) {
	ltens := make([]*tensor.Dense, 0, (rest.NDim()-1)/plegs)
	for rest.NDim() > plegs+1 {
		s := rest.Shape()
		head, tail := s[:plegs+1].Clone(), s[plegs+1:].Clone()

		a, err := rest.Matrix(plegs + 1)
		if err != nil {
			return nil, err
		}
		q, r, err := tensor.QR(a)
		if err != nil {
			return nil, err
		}
		k := q.Dim(1)

		unitary, err := q.Reshape(append(head, k)...)
		if err != nil {
			return nil, err
		}
		if rest, err = r.Reshape(slices.Concat([]int{k}, []int(tail))...); err != nil {
			return nil, err
		}
		ltens = append(ltens, unitary)
	}
	if rest.NDim() < plegs+1 {
		return nil, fmt.Errorf("number of remaining legs insufficient: %w", ErrShapeMismatch)
	}

	last, err := rest.Reshape(append(rest.Shape().Clone(), 1)...)
	if err != nil {
		return nil, err
	}

	return append(ltens, last), nil
}

// ToArray contracts the whole chain into the dense array it represents, with
// shape [(i1), ..., (iN)].
//
// WARNING: the result holds Π of all physical dimensions; this is an escape
// hatch for small chains and tests, not a hot path.
func (m *MPArray) ToArray() (*tensor.Dense, error) {
	return ltensToArray(func(yield func(*tensor.Dense) bool) {
		for _, lt := range m.ltens {
			if !yield(lt) {
				return
			}
		}
	})
}
