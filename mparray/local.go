// SPDX-License-Identifier: MIT

// Package mparray - operations on single local tensors.
//
// Purpose:
//   - Pure, stateless helpers that return a correctly shaped local tensor
//     (bond leg first, bond leg last) for every chain-level operation.
//
// Axis conventions:
//   - Axes passed to localDot are TRUE axes of the local tensors, i.e. the
//     physical leg p of a site is axis p+1.
package mparray

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/mpnum/tensor"
)

// localDot contracts axesL of l with axesR of r and rearranges the result so
// that it is a valid local tensor again:
//
//	(l0, lphys..., lN) · (r0, rphys..., rN) -> (l0*r0, lphys', rphys', lN*rN)
//
// The merged bond legs keep l as the major index on both sides of a
// junction, so neighbouring results stay compatible.
//
// Errors:
//   - ErrShapeMismatch if the numbers of contracted axes differ or the
//     contracted dimensions disagree.
func localDot(l, r *tensor.Dense, axesL, axesR []int) (*tensor.Dense, error) {
	if len(axesL) != len(axesR) {
		return nil, fmt.Errorf("localDot: number of contracted legs differ: %d != %d: %w",
			len(axesL), len(axesR), ErrShapeMismatch)
	}
	res, err := tensor.Tensordot(l, r, axesL, axesR)
	if err != nil {
		return nil, fmt.Errorf("localDot: %w: %w", ErrShapeMismatch, err)
	}

	// res axes: [l0, lphys..., lN, r0, rphys..., rN]; nl free axes come from l.
	nl := l.NDim() - len(axesL)
	total := res.NDim()
	perm := make([]int, 0, total)
	perm = append(perm, 0, nl)
	for i := 1; i < nl-1; i++ {
		perm = append(perm, i)
	}
	for i := nl + 1; i < total-1; i++ {
		perm = append(perm, i)
	}
	perm = append(perm, nl-1, total-1)

	res, err = res.Transpose(perm...)
	if err != nil {
		return nil, fmt.Errorf("localDot: %w", err)
	}

	s := res.Shape()
	shape := make([]int, 0, total-2)
	shape = append(shape, s[0]*s[1])
	shape = append(shape, s[2:total-2]...)
	shape = append(shape, s[total-2]*s[total-1])

	return res.Reshape(shape...)
}

// localAdd embeds l and r block-diagonally for an interior site of a sum:
// the result has bond sizes (l0+r0, lN+rN) and zero off-diagonal blocks.
func localAdd(l, r *tensor.Dense) (*tensor.Dense, error) {
	ls, rs := l.Shape(), r.Shape()
	if !ls[1 : len(ls)-1].Equal(rs[1 : len(rs)-1]) {
		return nil, fmt.Errorf("localAdd: physical legs %v vs %v: %w", ls, rs, ErrShapeMismatch)
	}

	shape := ls.Clone()
	shape[0] += rs[0]
	shape[len(shape)-1] += rs[len(rs)-1]
	res := tensor.Zeros(shape...)

	offset := make([]int, len(shape))
	if err := res.Insert(l, offset...); err != nil {
		return nil, fmt.Errorf("localAdd: %w", err)
	}
	offset[0], offset[len(offset)-1] = ls[0], ls[len(ls)-1]
	if err := res.Insert(r, offset...); err != nil {
		return nil, fmt.Errorf("localAdd: %w", err)
	}

	return res, nil
}

// localRavel merges all physical legs into one: (b0, p..., bN) -> (b0, Πp, bN).
func localRavel(lt *tensor.Dense) *tensor.Dense {
	res, err := lt.Reshape(lt.Dim(0), -1, lt.Dim(-1))
	if err != nil {
		panic(err) // unreachable: the sizes always divide
	}

	return res
}

// localTranspose reverses the order of the physical legs.
func localTranspose(lt *tensor.Dense) *tensor.Dense {
	n := lt.NDim()
	perm := make([]int, 0, n)
	perm = append(perm, 0)
	for i := n - 2; i > 0; i-- {
		perm = append(perm, i)
	}
	perm = append(perm, n-1)

	res, err := lt.Transpose(perm...)
	if err != nil {
		panic(err) // unreachable: perm is a permutation by construction
	}

	return res
}

// ltensToArray contracts a sequence of local tensors into one array and
// returns its [0, ..., 0] boundary slice, i.e. the physical legs only.
// The sequence is consumed once, front to back.
func ltensToArray(ltens iter.Seq[*tensor.Dense]) (*tensor.Dense, error) {
	var res *tensor.Dense
	for lt := range ltens {
		if res == nil {
			res = lt
			continue
		}
		next, err := tensor.Tensordot(res, lt, []int{res.NDim() - 1}, []int{0})
		if err != nil {
			return nil, fmt.Errorf("ltensToArray: %w: %w", ErrShapeMismatch, err)
		}
		res = next
	}
	if res == nil {
		return nil, fmt.Errorf("ltensToArray: %w", ErrEmptyChain)
	}

	// Row-major layout: element [0, p..., 0] sits at flat offset Πp-index * bN.
	s := res.Shape()
	last := s[len(s)-1]
	phys := s[1 : len(s)-1]
	out := tensor.Zeros(phys...)
	src, dst := res.Data(), out.Data()
	for i := range dst {
		dst[i] = src[i*last]
	}

	return out, nil
}
