// SPDX-License-Identifier: MIT

package mparray_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/cmplxs"

	"github.com/katalvlaran/mpnum/mparray"
	"github.com/katalvlaran/mpnum/tensor"
)

// denseDot contracts per-site legs of two dense arrays with two physical legs
// per site (three sites) and restores the per-site grouping.
func denseDot(t *testing.T, a, b *tensor.Dense, axesA, axesB []int) *tensor.Dense {
	t.Helper()
	c, err := tensor.Tensordot(a, b, axesA, axesB)
	require.NoError(t, err)
	c, err = c.Transpose(0, 3, 1, 4, 2, 5)
	require.NoError(t, err)

	return c
}

func TestDot_MatchesDense(t *testing.T) {
	t.Parallel()

	a := randomMPA(t, 3, []int{2, 3}, 2, 21)
	b := randomMPA(t, 3, []int{3, 4}, 3, 22)

	c, err := mparray.Dot(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 6}, c.BondDims())
	assert.Equal(t, tensor.Shape{2, 4}, c.PhysDims()[1])

	want := denseDot(t, toArray(t, a), toArray(t, b), []int{1, 3, 5}, []int{0, 2, 4})
	requireArrayClose(t, want, toArray(t, c))
}

func TestDotAxes_MatchesDense(t *testing.T) {
	t.Parallel()

	a := randomMPA(t, 3, []int{2, 3}, 2, 23)
	b := randomMPA(t, 3, []int{3, 2}, 2, 24)

	// Leg 0 of a (size 2) with the last leg of b (size 2).
	c, err := mparray.DotAxes(a, b, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 3}, c.PhysDims()[0])

	want := denseDot(t, toArray(t, a), toArray(t, b), []int{0, 2, 4}, []int{1, 3, 5})
	requireArrayClose(t, want, toArray(t, c))
}

func TestDot_Errors(t *testing.T) {
	t.Parallel()

	a := randomMPA(t, 3, []int{2, 3}, 2, 25)

	_, err := mparray.Dot(a, randomMPA(t, 2, []int{3, 2}, 2, 26))
	require.ErrorIs(t, err, mparray.ErrShapeMismatch)

	_, err = mparray.Dot(a, randomMPA(t, 3, []int{2, 2}, 2, 27))
	require.ErrorIs(t, err, mparray.ErrShapeMismatch)
}

// TestDotAxes_LegOutOfRange: with one physical leg per site, leg 1 would
// land on the right bond leg and leg -2 on the left one. Both must be
// rejected even though the bond sizes happen to match.
func TestDotAxes_LegOutOfRange(t *testing.T) {
	t.Parallel()

	site := func() *tensor.Dense { return tensor.Zeros(2, 2, 2) }
	chain := func() *mparray.MPArray {
		x, err := mparray.New([]*tensor.Dense{
			tensor.Zeros(1, 2, 2), site(), tensor.Zeros(2, 2, 1),
		})
		require.NoError(t, err)
		return x
	}
	a, b := chain(), chain()

	for _, tc := range []struct{ axA, axB int }{{1, 0}, {0, 1}, {-2, 0}, {0, -2}, {5, -7}} {
		c, err := mparray.DotAxes(a, b, tc.axA, tc.axB)
		require.ErrorIs(t, err, mparray.ErrShapeMismatch, "legs (%d, %d)", tc.axA, tc.axB)
		require.Nil(t, c)
	}

	c, err := mparray.DotAxes(a, b, -1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4}, c.BondDims())
}

func TestInner_MatchesDense(t *testing.T) {
	t.Parallel()

	a := randomMPA(t, 4, []int{2, 2}, 3, 28)
	b := randomMPA(t, 4, []int{2, 2}, 2, 29)

	got, err := mparray.Inner(a, b)
	require.NoError(t, err)
	want := cmplxs.Dot(toArray(t, a).Data(), toArray(t, b).Data())
	assert.InDelta(t, 0, cmplx.Abs(want-got), tol*max(1, cmplx.Abs(want)))

	// Symmetric for real entries.
	back, err := mparray.Inner(b, a)
	require.NoError(t, err)
	assert.InDelta(t, 0, cmplx.Abs(got-back), tol*max(1, cmplx.Abs(want)))
}

// TestInner_Complex checks the conjugate-linear first slot: <a, b> is the
// conjugate of <b, a>, and <a, a> is real and positive.
func TestInner_Complex(t *testing.T) {
	t.Parallel()

	a := randomComplexMPA(t, 4, []int{2, 2}, 3, 40)
	b := randomComplexMPA(t, 4, []int{2, 2}, 2, 41)
	scale := tensor.Norm(toArray(t, a)) * tensor.Norm(toArray(t, b))

	got, err := mparray.Inner(a, b)
	require.NoError(t, err)
	want := cmplxs.Dot(toArray(t, a).Data(), toArray(t, b).Data())
	assert.InDelta(t, 0, cmplx.Abs(want-got), tol*scale)
	assert.Greater(t, math.Abs(imag(got)), 1e-3, "random complex chains have complex overlap")

	back, err := mparray.Inner(b, a)
	require.NoError(t, err)
	assert.InDelta(t, 0, cmplx.Abs(cmplx.Conj(got)-back), tol*scale)

	sq, err := mparray.Inner(a, a)
	require.NoError(t, err)
	nrm := tensor.Norm(toArray(t, a))
	assert.InDelta(t, nrm*nrm, real(sq), tol*nrm*nrm)
	assert.InDelta(t, 0, imag(sq), tol*nrm*nrm)
	assert.Positive(t, real(sq))

	n, err := mparray.Norm(a)
	require.NoError(t, err)
	assert.InDelta(t, nrm, n, tol*nrm)

	// Scaling by a phase leaves the norm alone and rotates the overlap.
	ph, err := a.Mul(1i)
	require.NoError(t, err)
	n, err = mparray.Norm(ph)
	require.NoError(t, err)
	assert.InDelta(t, nrm, n, tol*nrm)
	rot, err := mparray.Inner(ph, b)
	require.NoError(t, err)
	assert.InDelta(t, 0, cmplx.Abs(-1i*got-rot), tol*scale)
}

func TestNorm_ConsistentWithInnerAndArray(t *testing.T) {
	t.Parallel()

	a := randomMPA(t, 5, []int{2}, 3, 30)
	want := tensor.Norm(toArray(t, a))

	n, err := mparray.Norm(a)
	require.NoError(t, err)
	assert.InDelta(t, want, n, tol*want)

	sq, err := mparray.Inner(a, a)
	require.NoError(t, err)
	assert.InDelta(t, n*n, real(sq), tol*n*n)
	assert.Zero(t, imag(sq))

	// Left-canonical: the whole norm sits on the last site.
	require.NoError(t, a.Normalize())
	n, err = mparray.Norm(a)
	require.NoError(t, err)
	assert.InDelta(t, want, n, tol*want)
	assert.InDelta(t, want, tensor.Norm(a.Site(4)), tol*want)

	s, err := a.Mul(-2)
	require.NoError(t, err)
	n, err = mparray.Norm(s)
	require.NoError(t, err)
	assert.InDelta(t, 2*want, n, tol*want)
}

func TestInner_Errors(t *testing.T) {
	t.Parallel()

	a := randomMPA(t, 3, []int{2}, 2, 31)

	_, err := mparray.Inner(a, randomMPA(t, 4, []int{2}, 2, 32))
	require.ErrorIs(t, err, mparray.ErrShapeMismatch)

	_, err = mparray.Inner(a, randomMPA(t, 3, []int{3}, 2, 33))
	require.ErrorIs(t, err, mparray.ErrShapeMismatch)

	// Same element count per site, different leg layout.
	x := randomMPA(t, 2, []int{2, 3}, 2, 34)
	y := randomMPA(t, 2, []int{3, 2}, 2, 35)
	_, err = mparray.Inner(x, y)
	require.ErrorIs(t, err, mparray.ErrShapeMismatch)
	_, err = mparray.Norm(x)
	require.NoError(t, err)

	_, err = mparray.Norm(a)
	require.NoError(t, err)
}
