// SPDX-License-Identifier: MIT

package mparray

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mpnum/tensor"
)

// Dot computes the matrix product representation of a·b, contracting the last
// physical leg of a with the first physical leg of b at every site
// [Sch11, Sec. 4.2]. It is DotAxes(a, b, -1, 0).
func Dot(a, b *MPArray) (*MPArray, error) {
	return DotAxes(a, b, -1, 0)
}

// DotAxes contracts physical leg axA of a with physical leg axB of b at every
// site. Physical legs are numbered from 0; negative values count from the
// last physical leg (-1 is the last). The bond dimension of every junction of
// the result is the product of the operands' bond dimensions.
//
// Errors:
//   - ErrShapeMismatch if the lengths differ, axA or axB is not a physical leg
//     of every site (-plegs <= ax < plegs), or a contracted pair of legs has
//     different sizes.
func DotAxes(a, b *MPArray, axA, axB int) (*MPArray, error) {
	if len(a.ltens) != len(b.ltens) {
		return nil, fmt.Errorf("Dot: length is not equal: %d != %d: %w",
			len(a.ltens), len(b.ltens), ErrShapeMismatch)
	}
	for i := range a.ltens {
		if pl := a.ltens[i].NDim() - 2; axA < -pl || axA >= pl {
			return nil, fmt.Errorf("Dot: site %d: leg %d of %d physical legs: %w", i, axA, pl, ErrShapeMismatch)
		}
		if pl := b.ltens[i].NDim() - 2; axB < -pl || axB >= pl {
			return nil, fmt.Errorf("Dot: site %d: leg %d of %d physical legs: %w", i, axB, pl, ErrShapeMismatch)
		}
	}

	ltens := make([]*tensor.Dense, len(a.ltens))
	for i := range a.ltens {
		l, r := a.ltens[i], b.ltens[i]
		var err error
		if ltens[i], err = localDot(l, r, []int{trueAxis(axA, l)}, []int{trueAxis(axB, r)}); err != nil {
			return nil, fmt.Errorf("Dot: site %d: %w", i, err)
		}
	}

	return a.derive(ltens), nil
}

// trueAxis maps a physical leg index onto the axis of the local tensor,
// skipping the bond legs: p >= 0 -> p+1, p < 0 -> ndim-1+p. p must already be
// in [-plegs, plegs).
func trueAxis(p int, lt *tensor.Dense) int {
	if p >= 0 {
		return p + 1
	}

	return lt.NDim() - 1 + p
}

// Inner computes the scalar product ⟨a, b⟩ = Σ conj(a[i...])·b[i...] without
// building either array: the per-site contractions are produced lazily and
// folded left to right, so at most one intermediate is alive at a time.
//
// The physical legs must match site by site, shape for shape; (2, 3) and
// (3, 2) hold the same number of elements but are not compatible.
//
// Errors:
//   - ErrShapeMismatch if the lengths or per-site physical shapes differ.
func Inner(a, b *MPArray) (complex128, error) {
	if len(a.ltens) != len(b.ltens) {
		return 0, fmt.Errorf("Inner: length is not equal: %d != %d: %w",
			len(a.ltens), len(b.ltens), ErrShapeMismatch)
	}
	for i := range a.ltens {
		as, bs := a.ltens[i].Shape(), b.ltens[i].Shape()
		if pa, pb := as[1:len(as)-1], bs[1:len(bs)-1]; !pa.Equal(pb) {
			return 0, fmt.Errorf("Inner: site %d: physical legs %v vs %v: %w", i, pa, pb, ErrShapeMismatch)
		}
	}

	var siteErr error
	sites := func(yield func(*tensor.Dense) bool) {
		for i := range a.ltens {
			lt, err := localDot(localRavel(a.ltens[i].Conj()), localRavel(b.ltens[i]), []int{1}, []int{1})
			if err != nil {
				siteErr = fmt.Errorf("Inner: site %d: %w", i, err)
				return
			}
			if !yield(lt) {
				return
			}
		}
	}

	res, err := ltensToArray(sites)
	if siteErr != nil {
		return 0, siteErr
	}
	if err != nil {
		return 0, fmt.Errorf("Inner: %w", err)
	}

	return res.Data()[0], nil
}

// Norm returns the Frobenius norm √⟨a, a⟩.
//
// It always performs the full double contraction and ignores the normal form,
// which makes it the reference value the canonical-form shortcuts are tested
// against. ⟨a, a⟩ is real up to round-off; the imaginary residue is dropped
// and a slightly negative real part clamps to 0.
func Norm(a *MPArray) (float64, error) {
	sq, err := Inner(a, a)
	if err != nil {
		return 0, fmt.Errorf("Norm: %w", err)
	}

	return math.Sqrt(max(real(sq), 0)), nil
}
