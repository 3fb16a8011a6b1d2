// SPDX-License-Identifier: MIT

// Package tensor - matrix views and dense factorizations.
//
// Purpose:
//   - Expose a tensor as a 2-D Dense by merging leading and trailing axes
//     (no copy, row-major contract).
//   - Provide reduced QR and thin SVD with the shapes the sweep algorithms
//     expect (k = min(m, n) in both).
//
// Implementation:
//   - Real input (IsReal) goes through gonum/mat and its LAPACK kernels.
//   - Complex input goes through householderQR and jacobiSVD in this package,
//     since gonum/mat has no complex factorizations.
//
// AI-Hints:
//   - FromMatrix always copies into contiguous storage, so slices and
//     transposed views are safe inputs.
//   - gonum's QR needs m >= n; qrReal handles wide inputs itself.
package tensor

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"
)

// Matrix returns a rows×cols view of t where rows is the product of the first
// rowAxes dimensions and cols the product of the rest. The view shares t's
// storage.
func (t *Dense) Matrix(rowAxes int) (*Dense, error) {
	if rowAxes < 0 || rowAxes > len(t.shape) {
		return nil, fmt.Errorf("Matrix(%d) of %v: %w", rowAxes, t.shape, ErrAxis)
	}
	rows := t.shape[:rowAxes].Size()

	return &Dense{shape: Shape{rows, len(t.data) / rows}, data: t.data}, nil
}

// FromMatrix copies the real matrix m into a new tensor of the given shape.
// The shape size must equal the number of matrix elements.
func FromMatrix(m mat.Matrix, shape ...int) (*Dense, error) {
	r, c := m.Dims()
	s := Shape(shape).Clone()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("FromMatrix: %w", err)
	}
	if s.Size() != r*c {
		return nil, fmt.Errorf("FromMatrix: %dx%d into %v: %w", r, c, s, ErrBadShape)
	}
	// DenseCopyOf yields stride == cols, i.e. exactly the row-major layout.
	raw := mat.DenseCopyOf(m).RawMatrix()
	data := make([]complex128, r*c)
	cmplxs.Complex(data, raw.Data[:r*c], make([]float64, r*c))

	return &Dense{shape: s, data: data}, nil
}

// realMatrix copies the real parts of a 2-D tensor into a gonum matrix.
func realMatrix(t *Dense) *mat.Dense {
	re := make([]float64, len(t.data))
	cmplxs.Real(re, t.data)

	return mat.NewDense(t.shape[0], t.shape[1], re)
}

// require2D reports ErrAxis unless t is a matrix.
func require2D(ctx string, t *Dense) error {
	if len(t.shape) != 2 {
		return fmt.Errorf("%s: %v is not a matrix: %w", ctx, t.shape, ErrAxis)
	}

	return nil
}

// H returns the conjugate transpose: all axes reversed, every element
// conjugated. For a matrix this is the Hermitian adjoint.
func (t *Dense) H() *Dense {
	nd := len(t.shape)
	perm := make([]int, nd)
	for i := range perm {
		perm[i] = nd - 1 - i
	}
	res, err := t.Transpose(perm...)
	if err != nil {
		panic(err) // unreachable: perm is a permutation by construction
	}
	for i, v := range res.data {
		res.data[i] = cmplx.Conj(v)
	}

	return res
}

// MatMul returns the matrix product a·b, contracting the last axis of a with
// the first axis of b.
func MatMul(a, b *Dense) (*Dense, error) {
	return Tensordot(a, b, []int{len(a.shape) - 1}, []int{0})
}

// Block copies rows [r0, r1) and columns [c0, c1) of a matrix.
//
// Errors:
//   - ErrAxis if t is not 2-D.
//   - ErrOutOfRange for an empty or out-of-bounds window.
func (t *Dense) Block(r0, r1, c0, c1 int) (*Dense, error) {
	if err := require2D("Block", t); err != nil {
		return nil, err
	}
	rows, cols := t.shape[0], t.shape[1]
	if r0 < 0 || r1 > rows || r0 >= r1 || c0 < 0 || c1 > cols || c0 >= c1 {
		return nil, fmt.Errorf("Block[%d:%d, %d:%d] of %v: %w", r0, r1, c0, c1, t.shape, ErrOutOfRange)
	}
	out := Zeros(r1-r0, c1-c0)
	for i := r0; i < r1; i++ {
		copy(out.data[(i-r0)*(c1-c0):], t.data[i*cols+c0:i*cols+c1])
	}

	return out, nil
}

// ScaleRows multiplies row i of a matrix by f[i] in place: t ← diag(f)·t.
func (t *Dense) ScaleRows(f []float64) error {
	if err := require2D("ScaleRows", t); err != nil {
		return err
	}
	if len(f) != t.shape[0] {
		return fmt.Errorf("ScaleRows: %d factors for %v: %w", len(f), t.shape, ErrShapeMismatch)
	}
	cols := t.shape[1]
	for i, v := range f {
		cmplxs.ScaleReal(v, t.data[i*cols:(i+1)*cols])
	}

	return nil
}

// ScaleCols multiplies column j of a matrix by f[j] in place: t ← t·diag(f).
func (t *Dense) ScaleCols(f []float64) error {
	if err := require2D("ScaleCols", t); err != nil {
		return err
	}
	cols := t.shape[1]
	if len(f) != cols {
		return fmt.Errorf("ScaleCols: %d factors for %v: %w", len(f), t.shape, ErrShapeMismatch)
	}
	for i := range t.data {
		t.data[i] *= complex(f[i%cols], 0)
	}

	return nil
}

// QR computes the reduced decomposition a = q·r of a matrix with
// k = min(m, n): q is m×k with orthonormal columns and r is k×n upper
// trapezoidal.
//
// Implementation:
//   - Real a: gonum QR (qrReal).
//   - Complex a: Householder reflections (householderQR).
//
// Errors:
//   - ErrAxis if a is not 2-D.
//
// Complexity:
//   - Time O(m·n·k), Space O(m·n).
func QR(a *Dense) (q, r *Dense, err error) {
	if err = require2D("QR", a); err != nil {
		return nil, nil, err
	}
	if !a.IsReal() {
		q, r = householderQR(a)
		return q, r, nil
	}

	qm, rm := qrReal(realMatrix(a))
	qr, qc := qm.Dims()
	rr, rc := rm.Dims()
	if q, err = FromMatrix(qm, qr, qc); err != nil {
		return nil, nil, fmt.Errorf("QR: %w", err)
	}
	if r, err = FromMatrix(rm, rr, rc); err != nil {
		return nil, nil, fmt.Errorf("QR: %w", err)
	}

	return q, r, nil
}

// qrReal is the gonum path of QR.
//   - Tall or square (m >= n): keep the leading n columns of Q and the leading
//     n rows of R.
//   - Wide (m < n): factorize the leading m×m block, then r = qᵀ·a.
func qrReal(a *mat.Dense) (q, r *mat.Dense) {
	m, n := a.Dims()
	var qr mat.QR
	if m >= n {
		qr.Factorize(a)
		var qf, rf mat.Dense
		qr.QTo(&qf)
		qr.RTo(&rf)

		return mat.DenseCopyOf(qf.Slice(0, m, 0, n)), mat.DenseCopyOf(rf.Slice(0, n, 0, n))
	}

	qr.Factorize(a.Slice(0, m, 0, m))
	q = new(mat.Dense)
	qr.QTo(q)
	r = mat.NewDense(m, n, nil)
	r.Mul(q.T(), a)
	for i := 1; i < m; i++ {
		for j := range i {
			r.Set(i, j, 0)
		}
	}

	return q, r
}

// SVD computes the thin decomposition a = u·diag(s)·vh of a matrix with
// k = min(m, n): u is m×k, s holds the k singular values in descending order,
// vh is k×n. u has orthonormal columns and vh orthonormal rows.
//
// Errors:
//   - ErrAxis if a is not 2-D.
//   - ErrFactorization if the LAPACK routine or the Jacobi sweeps do not
//     converge.
func SVD(a *Dense) (u *Dense, s []float64, vh *Dense, err error) {
	if err = require2D("SVD", a); err != nil {
		return nil, nil, nil, err
	}
	m, n := a.shape[0], a.shape[1]
	if !a.IsReal() {
		if u, s, vh, err = jacobiSVD(a); err != nil {
			return nil, nil, nil, fmt.Errorf("SVD of %dx%d: %w", m, n, err)
		}
		return u, s, vh, nil
	}

	var svd mat.SVD
	if ok := svd.Factorize(realMatrix(a), mat.SVDThin); !ok {
		return nil, nil, nil, fmt.Errorf("SVD of %dx%d: %w", m, n, ErrFactorization)
	}
	var um, vm mat.Dense
	svd.UTo(&um)
	svd.VTo(&vm)
	s = svd.Values(nil)
	k := len(s)
	if u, err = FromMatrix(&um, m, k); err != nil {
		return nil, nil, nil, fmt.Errorf("SVD: %w", err)
	}
	if vh, err = FromMatrix(vm.T(), k, n); err != nil {
		return nil, nil, nil, fmt.Errorf("SVD: %w", err)
	}

	return u, s, vh, nil
}
