// SPDX-License-Identifier: MIT

package mparray

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/mpnum/tensor"
)

// Compress truncates every bond of m to at most maxBdim in place, using one
// SVD sweep [Sch11, Sec. 4.5.1].
//
// Directions:
//   - DirectionRight: normalize to (0, 1), sweep from the leftmost site; the
//     result is left-canonical, NormalForm() == (L-1, L).
//   - DirectionLeft: normalize to (L-1, L), sweep from the rightmost site; the
//     result is right-canonical, NormalForm() == (0, 1).
//   - DirectionAuto (default): DirectionLeft if L - rnorm > lnorm, otherwise
//     DirectionRight, so fewer sites need normalizing up front.
//
// The returned value is Σ ‖s[k:]‖₂ / ‖s‖₂ over all factorized sites, with s
// the singular values at that site and k the kept count. It is zero when
// nothing was discarded and bounds the relative Frobenius error of the
// compressed array from above.
//
// Errors:
//   - ErrInvariantViolation if maxBdim < 1.
//   - ErrUnsupportedMethod for an unknown method or direction.
//   - tensor.ErrFactorization if an SVD fails to converge; m is then only
//     partially compressed but still represents the same array, with
//     NormalForm() marking the failing site.
//
// Complexity:
//   - Time O(L·d·D³) for physical size d and bond dimension D.
func (m *MPArray) Compress(maxBdim int, opts ...CompressOption) (float64, error) {
	cfg := compressConfig{method: DefaultMethod, direction: DefaultDirection}
	for _, opt := range opts {
		opt(&cfg)
	}
	if maxBdim < 1 {
		return 0, fmt.Errorf("Compress: max bond dimension %d < 1: %w", maxBdim, ErrInvariantViolation)
	}
	if cfg.method != MethodSVD {
		return 0, fmt.Errorf("Compress: %q is not a valid method: %w", cfg.method, ErrUnsupportedMethod)
	}

	n := len(m.ltens)
	direction := cfg.direction
	if direction == DirectionAuto {
		direction = DirectionRight
		if n-m.rnorm > m.lnorm {
			direction = DirectionLeft
		}
	}

	var (
		errSum float64
		err    error
	)
	switch direction {
	case DirectionRight:
		if err = m.Normalize(Left(0), Right(1)); err != nil {
			return 0, fmt.Errorf("Compress: %w", err)
		}
		errSum, err = m.compressSVDRight(maxBdim)
	case DirectionLeft:
		if err = m.Normalize(Left(n-1), Right(n)); err != nil {
			return 0, fmt.Errorf("Compress: %w", err)
		}
		errSum, err = m.compressSVDLeft(maxBdim)
	default:
		return 0, fmt.Errorf("Compress: direction %v: %w", cfg.direction, ErrUnsupportedMethod)
	}
	if err != nil {
		return 0, err
	}

	m.logger.Info("compressed",
		"direction", direction,
		"max_bdim", maxBdim,
		"bdims", m.BondDims(),
		"error", errSum)

	return errSum, nil
}

// truncationError is ‖s[k:]‖₂ / ‖s‖₂, or 0 for an all-zero spectrum.
func truncationError(s []float64, k int) float64 {
	total := floats.Norm(s, 2)
	if total == 0 {
		return 0
	}

	return floats.Norm(s[k:], 2) / total
}

// compressSVDRight sweeps left to right; each site keeps the leading k left
// singular vectors and diag(s)·vh moves into the next site.
func (m *MPArray) compressSVDRight(maxBdim int) (float64, error) {
	var errSum float64
	for site := range len(m.ltens) - 1 {
		lt := m.ltens[site]
		a, err := lt.Matrix(lt.NDim() - 1)
		if err != nil {
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}
		u, s, vh, err := tensor.SVD(a)
		if err != nil {
			// Only site itself is unnormalized at this point.
			m.lnorm, m.rnorm = site, site+1
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}
		rows, cols := u.Dim(0), vh.Dim(1)
		k := min(maxBdim, len(s))

		shape := lt.Shape()
		head, err := u.Block(0, rows, 0, k)
		if err != nil {
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}
		unitary, err := head.Reshape(append(shape[:len(shape)-1].Clone(), k)...)
		if err != nil {
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}
		// diag(s[:k])·vh[:k, :]
		weights, err := vh.Block(0, k, 0, cols)
		if err != nil {
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}
		if err = weights.ScaleRows(s[:k]); err != nil {
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}
		next, err := tensor.Tensordot(weights, m.ltens[site+1], []int{1}, []int{0})
		if err != nil {
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}

		m.ltens[site], m.ltens[site+1] = unitary, next
		e := truncationError(s, k)
		errSum += e
		m.logger.Debug("truncated bond", "site", site, "bond", k, "rank", len(s), "ratio", e)
	}

	m.lnorm, m.rnorm = len(m.ltens)-1, len(m.ltens)

	return errSum, nil
}

// compressSVDLeft sweeps right to left; each site keeps the leading k right
// singular vectors and u·diag(s) moves into the previous site.
func (m *MPArray) compressSVDLeft(maxBdim int) (float64, error) {
	var errSum float64
	for site := len(m.ltens) - 1; site > 0; site-- {
		lt := m.ltens[site]
		a, err := lt.Matrix(1)
		if err != nil {
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}
		u, s, vh, err := tensor.SVD(a)
		if err != nil {
			// Only site itself is unnormalized at this point.
			m.lnorm, m.rnorm = site, site+1
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}
		rows, cols := u.Dim(0), vh.Dim(1)
		k := min(maxBdim, len(s))

		shape := lt.Shape()
		tail, err := vh.Block(0, k, 0, cols)
		if err != nil {
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}
		unitary, err := tail.Reshape(slices.Concat([]int{k}, []int(shape[1:]))...)
		if err != nil {
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}
		// u[:, :k]·diag(s[:k])
		weights, err := u.Block(0, rows, 0, k)
		if err != nil {
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}
		if err = weights.ScaleCols(s[:k]); err != nil {
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}
		prev := m.ltens[site-1]
		prev, err = tensor.Tensordot(prev, weights, []int{prev.NDim() - 1}, []int{0})
		if err != nil {
			return 0, fmt.Errorf("Compress: site %d: %w", site, err)
		}

		m.ltens[site], m.ltens[site-1] = unitary, prev
		e := truncationError(s, k)
		errSum += e
		m.logger.Debug("truncated bond", "site", site, "bond", k, "rank", len(s), "ratio", e)
	}

	m.lnorm, m.rnorm = 0, 1

	return errSum, nil
}
