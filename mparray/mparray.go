// SPDX-License-Identifier: MIT

package mparray

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/katalvlaran/mpnum/tensor"
)

// MPArray represents a general N-partite array A in matrix product form with
// open boundary conditions:
//
//	A[(i1), ..., (iN)] = A¹[(i1)] · A²[(i2)] · ... · Aᴺ[(iN)]
//
// Each local tensor Aᵏ has axis 0 and its last axis reserved for the bond
// legs and the axes in between for the physical legs (ik). Open boundary
// conditions mean the first axis of site 0 and the last axis of site N-1 have
// size 1.
//
// The array also records how much of the chain is in canonical form:
// sites i < lnorm are left-normalized, sites i >= rnorm are right-normalized.
// This never changes the represented value.
//
// An MPArray is not safe for concurrent mutation. Accessors may run
// concurrently with each other but not with Normalize, Compress or the
// in-place operators.
type MPArray struct {
	ltens  []*tensor.Dense
	lnorm  int
	rnorm  int
	logger *slog.Logger
}

// New builds an MPArray from local tensors, which it takes ownership of.
//
// Every tensor needs at least two axes and the last axis of site i must match
// the first axis of site i+1. Normalization metadata defaults to nothing known
// (0, len(ltens)); WithLeftNormalized / WithRightNormalized override it when
// the caller knows better.
//
// The normal form must satisfy lnorm < rnorm, which is stricter than the
// lnorm <= rnorm a pair of sweeps could in principle describe: lnorm always
// names an existing site, the one Mul and MulInPlace scale. A fully
// normalized chain is therefore written (L-1, L) or (0, 1), never (L, L).
//
// Errors:
//   - ErrEmptyChain for an empty list.
//   - *BondMismatchError (is ErrShapeMismatch) at the first bad junction.
//   - ErrShapeMismatch for a tensor with fewer than two axes.
//   - ErrInvariantViolation for metadata outside 0 <= lnorm < rnorm <= L.
func New(ltens []*tensor.Dense, opts ...Option) (*MPArray, error) {
	if len(ltens) == 0 {
		return nil, fmt.Errorf("New: %w", ErrEmptyChain)
	}
	for i, lt := range ltens {
		if lt == nil || lt.NDim() < 2 {
			return nil, fmt.Errorf("New: site %d needs at least 2 legs: %w", i, ErrShapeMismatch)
		}
	}
	for i := range len(ltens) - 1 {
		if l, r := ltens[i].Dim(-1), ltens[i+1].Dim(0); l != r {
			return nil, &BondMismatchError{Site: i, Left: l, Right: r}
		}
	}

	o := gatherOptions(opts)
	lnorm, rnorm := 0, len(ltens)
	if o.hasLeft {
		lnorm = o.leftNormalizedUpTo
	}
	if o.hasRight {
		rnorm = o.rightNormalizedFrom
	}
	if lnorm >= rnorm || rnorm > len(ltens) {
		return nil, fmt.Errorf("New: normal form (%d, %d) for %d sites: %w",
			lnorm, rnorm, len(ltens), ErrInvariantViolation)
	}

	return &MPArray{
		ltens:  append([]*tensor.Dense(nil), ltens...),
		lnorm:  lnorm,
		rnorm:  rnorm,
		logger: o.logger,
	}, nil
}

// derive wraps freshly computed tensors that already satisfy the adjacency
// invariant, carrying over the logger of m.
func (m *MPArray) derive(ltens []*tensor.Dense) *MPArray {
	return &MPArray{ltens: ltens, lnorm: 0, rnorm: len(ltens), logger: m.logger}
}

// Copy returns a deep copy: independent tensors, same normal form and logger.
func (m *MPArray) Copy() *MPArray {
	ltens := make([]*tensor.Dense, len(m.ltens))
	for i, lt := range m.ltens {
		ltens[i] = lt.Clone()
	}

	return &MPArray{ltens: ltens, lnorm: m.lnorm, rnorm: m.rnorm, logger: m.logger}
}

// Len returns the number of sites.
func (m *MPArray) Len() int { return len(m.ltens) }

// Site returns the local tensor at index i. Read-only: do not modify it.
func (m *MPArray) Site(i int) *tensor.Dense { return m.ltens[i] }

// Sites iterates over (index, local tensor) pairs. Read-only.
func (m *MPArray) Sites() iter.Seq2[int, *tensor.Dense] {
	return func(yield func(int, *tensor.Dense) bool) {
		for i, lt := range m.ltens {
			if !yield(i, lt) {
				return
			}
		}
	}
}

// Dims returns the full shape of every local tensor.
func (m *MPArray) Dims() []tensor.Shape {
	dims := make([]tensor.Shape, len(m.ltens))
	for i, lt := range m.ltens {
		dims[i] = lt.Shape().Clone()
	}

	return dims
}

// BondDims returns the bond dimension of every junction: the leading axis of
// sites 1..L-1.
func (m *MPArray) BondDims() []int {
	bdims := make([]int, 0, len(m.ltens)-1)
	for _, lt := range m.ltens[1:] {
		bdims = append(bdims, lt.Dim(0))
	}

	return bdims
}

// PhysDims returns the physical-leg shape (all axes but first and last) of
// every site.
func (m *MPArray) PhysDims() []tensor.Shape {
	pdims := make([]tensor.Shape, len(m.ltens))
	for i, lt := range m.ltens {
		s := lt.Shape()
		pdims[i] = s[1 : len(s)-1].Clone()
	}

	return pdims
}

// Legs returns the total number of legs of every site.
func (m *MPArray) Legs() []int {
	legs := make([]int, len(m.ltens))
	for i, lt := range m.ltens {
		legs[i] = lt.NDim()
	}

	return legs
}

// PhysLegs returns the number of physical legs of every site.
func (m *MPArray) PhysLegs() []int {
	plegs := make([]int, len(m.ltens))
	for i, lt := range m.ltens {
		plegs[i] = lt.NDim() - 2
	}

	return plegs
}

// NormalForm returns (lnorm, rnorm): sites below lnorm are left-normalized,
// sites from rnorm on are right-normalized.
func (m *MPArray) NormalForm() (lnorm, rnorm int) { return m.lnorm, m.rnorm }
