// SPDX-License-Identifier: MIT

package mparray

import (
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/mpnum/tensor"
)

// Add returns the sum m + b as a direct sum of the two chains: the bond
// dimension at every junction is the sum of the operands' bond dimensions.
// Boundary tensors are concatenated along their single non-trivial bond leg,
// interior tensors are embedded block-diagonally.
//
// Errors:
//   - ErrShapeMismatch if the lengths or the per-site physical legs differ.
func (m *MPArray) Add(b *MPArray) (*MPArray, error) {
	if len(m.ltens) != len(b.ltens) {
		return nil, fmt.Errorf("Add: length is not equal: %d != %d: %w",
			len(m.ltens), len(b.ltens), ErrShapeMismatch)
	}
	for i := range m.ltens {
		ls, rs := m.ltens[i].Shape(), b.ltens[i].Shape()
		if !ls[1 : len(ls)-1].Equal(rs[1 : len(rs)-1]) {
			return nil, fmt.Errorf("Add: site %d physical legs %v vs %v: %w", i, ls, rs, ErrShapeMismatch)
		}
	}

	n := len(m.ltens)
	if n == 1 {
		sum, err := tensor.Add(m.ltens[0], b.ltens[0])
		if err != nil {
			return nil, fmt.Errorf("Add: %w: %w", ErrShapeMismatch, err)
		}
		return m.derive([]*tensor.Dense{sum}), nil
	}

	ltens := make([]*tensor.Dense, n)
	var err error
	if ltens[0], err = tensor.Concatenate(m.ltens[0], b.ltens[0], -1); err != nil {
		return nil, fmt.Errorf("Add: first site: %w: %w", ErrShapeMismatch, err)
	}
	for i := 1; i < n-1; i++ {
		if ltens[i], err = localAdd(m.ltens[i], b.ltens[i]); err != nil {
			return nil, fmt.Errorf("Add: site %d: %w", i, err)
		}
	}
	if ltens[n-1], err = tensor.Concatenate(m.ltens[n-1], b.ltens[n-1], 0); err != nil {
		return nil, fmt.Errorf("Add: last site: %w: %w", ErrShapeMismatch, err)
	}

	return m.derive(ltens), nil
}

// Sub returns m - b, computed as m + (-1)·b.
func (m *MPArray) Sub(b *MPArray) (*MPArray, error) {
	neg, err := b.Mul(-1)
	if err != nil {
		return nil, fmt.Errorf("Sub: %w", err)
	}

	return m.Add(neg)
}

// Mul returns f·m (equivalently m·f). Only the site at the left
// normalization boundary is scaled, so the result keeps m's normal form and
// stays well-scaled however long the chain is.
//
// Errors:
//   - ErrUnsupportedOperand if f has a NaN or infinite component.
func (m *MPArray) Mul(f complex128) (*MPArray, error) {
	if err := checkScalar("Mul", f); err != nil {
		return nil, err
	}
	res := m.Copy()
	res.ltens[res.lnorm].Scale(f)

	return res, nil
}

// MulInPlace scales m by f, touching only the site at index lnorm.
func (m *MPArray) MulInPlace(f complex128) error {
	if err := checkScalar("MulInPlace", f); err != nil {
		return err
	}
	m.ltens[m.lnorm].Scale(f)

	return nil
}

// Div returns m/d, i.e. m·(1/d).
//
// Errors:
//   - ErrUnsupportedOperand if d is zero, NaN or infinite.
func (m *MPArray) Div(d complex128) (*MPArray, error) {
	if err := checkDivisor("Div", d); err != nil {
		return nil, err
	}

	return m.Mul(1 / d)
}

// DivInPlace divides m by d in place.
func (m *MPArray) DivInPlace(d complex128) error {
	if err := checkDivisor("DivInPlace", d); err != nil {
		return err
	}

	return m.MulInPlace(1 / d)
}

func checkScalar(ctx string, f complex128) error {
	if cmplx.IsNaN(f) || cmplx.IsInf(f) {
		return fmt.Errorf("%s: factor %v: %w", ctx, f, ErrUnsupportedOperand)
	}

	return nil
}

func checkDivisor(ctx string, d complex128) error {
	if d == 0 {
		return fmt.Errorf("%s: division by zero: %w", ctx, ErrUnsupportedOperand)
	}

	return checkScalar(ctx, d)
}

// T returns the transpose: the physical legs of every site in reverse order.
func (m *MPArray) T() *MPArray {
	ltens := make([]*tensor.Dense, len(m.ltens))
	for i, lt := range m.ltens {
		ltens[i] = localTranspose(lt)
	}

	return m.derive(ltens)
}

// Adj returns the Hermitian adjoint: transpose, then complex conjugate.
func (m *MPArray) Adj() *MPArray {
	ltens := make([]*tensor.Dense, len(m.ltens))
	for i, lt := range m.ltens {
		ltens[i] = localTranspose(lt).Conj()
	}

	return m.derive(ltens)
}

// Conj returns the element-wise complex conjugate.
func (m *MPArray) Conj() *MPArray {
	ltens := make([]*tensor.Dense, len(m.ltens))
	for i, lt := range m.ltens {
		ltens[i] = lt.Conj()
	}

	return m.derive(ltens)
}
