// SPDX-License-Identifier: MIT

// Package mparray - canonical forms via QR sweeps [Sch11, Sec. 4.4].
//
// Implementation:
//   - Left sweep: site ← Q of (Π legs[:-1]) × bond, R absorbed into site+1.
//   - Right sweep: site ← Qᴴ of the adjoint bond × (Π legs[1:]) matrix,
//     Rᴴ absorbed into site-1.
//   - Both sweeps start from the current normal form, so already-normalized
//     sites are never factorized again.
//
// Bond dimensions may shrink to min(rows, cols) of the factorized matrix; the
// represented array is unchanged.
package mparray

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/mpnum/tensor"
)

// Normalize brings the chain into (partially) canonical form in place.
//
//	Normalize()                    -> Left(L-1): full left-normalization
//	Normalize(Left(m))             -> sites 0..m-1 left-normalized,   0 <= m <= L-1
//	Normalize(Right(n))            -> sites n..L-1 right-normalized,  1 <= n <= L
//	Normalize(Left(m), Right(n))   -> both, valid for m < n
//
// Only the work needed to reach a state at least as normalized as requested is
// done; NormalForm is updated accordingly.
//
// Errors:
//   - ErrInvariantViolation for targets outside the ranges above or m >= n.
//     The chain is not modified in that case.
func (m *MPArray) Normalize(opts ...NormalizeOption) error {
	n := len(m.ltens)
	if len(opts) == 0 {
		return m.lnormalize(n - 1)
	}

	cfg := normalizeConfig{left: 0, right: n}
	for _, opt := range opts {
		opt(&cfg)
	}
	switch {
	case cfg.left >= cfg.right:
		return fmt.Errorf("Normalize: normalization %d:%d invalid: %w", cfg.left, cfg.right, ErrInvariantViolation)
	case cfg.left < 0 || cfg.left > n-1:
		return fmt.Errorf("Normalize: cannot left-normalize up to site %d of %d: %w", cfg.left, n, ErrInvariantViolation)
	case cfg.right < 1 || cfg.right > n:
		return fmt.Errorf("Normalize: cannot right-normalize from site %d of %d: %w", cfg.right, n, ErrInvariantViolation)
	}

	lnorm, rnorm := m.lnorm, m.rnorm
	if lnorm < cfg.left {
		if err := m.lnormalize(cfg.left); err != nil {
			return err
		}
	}
	if rnorm > cfg.right {
		if err := m.rnormalize(cfg.right); err != nil {
			return err
		}
	}

	return nil
}

// lnormalize left-normalizes sites lnorm..to-1.
func (m *MPArray) lnormalize(to int) error {
	if to >= len(m.ltens) {
		return fmt.Errorf("Normalize: cannot left-normalize rightmost site: %d >= %d: %w",
			to, len(m.ltens), ErrInvariantViolation)
	}

	for site := m.lnorm; site < to; site++ {
		lt := m.ltens[site]
		a, err := lt.Matrix(lt.NDim() - 1)
		if err != nil {
			return fmt.Errorf("Normalize: site %d: %w", site, err)
		}
		q, r, err := tensor.QR(a)
		if err != nil {
			return fmt.Errorf("Normalize: site %d: %w", site, err)
		}
		k := r.Dim(0)

		s := lt.Shape()
		unitary, err := q.Reshape(append(s[:len(s)-1].Clone(), k)...)
		if err != nil {
			return fmt.Errorf("Normalize: site %d: %w", site, err)
		}
		next, err := tensor.Tensordot(r, m.ltens[site+1], []int{1}, []int{0})
		if err != nil {
			return fmt.Errorf("Normalize: site %d: %w", site, err)
		}

		m.ltens[site], m.ltens[site+1] = unitary, next
		m.logger.Debug("left-normalized site", "site", site, "bond", k)
	}

	m.rnorm = max(to+1, m.rnorm)
	m.lnorm = to

	return nil
}

// rnormalize right-normalizes sites to..rnorm-1, walking leftwards.
func (m *MPArray) rnormalize(to int) error {
	if to <= 0 {
		return fmt.Errorf("Normalize: cannot right-normalize leftmost site: %d: %w", to, ErrInvariantViolation)
	}

	for site := m.rnorm - 1; site >= to; site-- {
		lt := m.ltens[site]
		a, err := lt.Matrix(1)
		if err != nil {
			return fmt.Errorf("Normalize: site %d: %w", site, err)
		}
		// a = (q·r)ᴴ = rᴴ·qᴴ with qᴴ having orthonormal rows.
		q, r, err := tensor.QR(a.H())
		if err != nil {
			return fmt.Errorf("Normalize: site %d: %w", site, err)
		}
		k := r.Dim(0)

		s := lt.Shape()
		unitary, err := q.H().Reshape(slices.Concat([]int{k}, []int(s[1:]))...)
		if err != nil {
			return fmt.Errorf("Normalize: site %d: %w", site, err)
		}
		prev := m.ltens[site-1]
		prev, err = tensor.Tensordot(prev, r.H(), []int{prev.NDim() - 1}, []int{0})
		if err != nil {
			return fmt.Errorf("Normalize: site %d: %w", site, err)
		}

		m.ltens[site], m.ltens[site-1] = unitary, prev
		m.logger.Debug("right-normalized site", "site", site, "bond", k)
	}

	m.lnorm = min(to-1, m.lnorm)
	m.rnorm = to

	return nil
}
