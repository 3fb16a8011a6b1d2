// SPDX-License-Identifier: MIT

package mparray_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mpnum/mparray"
	"github.com/katalvlaran/mpnum/tensor"
)

const tol = 1e-10

func newRand(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b9)) }

// randomMPA is mparray.Random with a fixed seed and no error path.
func randomMPA(t testing.TB, sites int, pdims []int, bdim int, seed uint64) *mparray.MPArray {
	t.Helper()
	a, err := mparray.Random(sites, pdims, bdim, newRand(seed))
	require.NoError(t, err)

	return a
}

// randomComplexMPA is randomMPA with complex entries.
func randomComplexMPA(t testing.TB, sites int, pdims []int, bdim int, seed uint64) *mparray.MPArray {
	t.Helper()
	a, err := mparray.RandomComplex(sites, pdims, bdim, newRand(seed))
	require.NoError(t, err)

	return a
}

// toArray is ToArray without an error path.
func toArray(t testing.TB, a *mparray.MPArray) *tensor.Dense {
	t.Helper()
	arr, err := a.ToArray()
	require.NoError(t, err)

	return arr
}

// requireArrayClose compares shapes exactly and values up to tol, relative to
// the size of want.
func requireArrayClose(t testing.TB, want, got *tensor.Dense) {
	t.Helper()
	require.Truef(t, want.Shape().Equal(got.Shape()), "shape %v != %v", got.Shape(), want.Shape())
	scale := max(1, tensor.Norm(want))
	require.True(t, tensor.AllClose(want, got, tol*scale), "arrays differ:\nwant %v\ngot  %v", want, got)
}

// requireIsometry asserts that a has orthonormal columns (aᴴa = I) or, with
// rows set, orthonormal rows (a·aᴴ = I).
func requireIsometry(t testing.TB, a *tensor.Dense, rows bool) {
	t.Helper()
	if rows {
		a = a.H()
	}
	k := a.Dim(1)
	g, err := tensor.MatMul(a.H(), a)
	require.NoError(t, err)
	eye := tensor.Zeros(k, k)
	for i := range k {
		eye.Data()[i*k+i] = 1
	}
	require.True(t, tensor.AllClose(g, eye, tol), "not an isometry:\n%v", g)
}

// requireLeftNormalized checks sites [0, upTo) for orthonormal columns of the
// (legs[:-1]) × bond matrix.
func requireLeftNormalized(t testing.TB, a *mparray.MPArray, upTo int) {
	t.Helper()
	for i := range upTo {
		lt := a.Site(i)
		m, err := lt.Matrix(lt.NDim() - 1)
		require.NoError(t, err)
		requireIsometry(t, m, false)
	}
}

// requireRightNormalized checks sites [from, L) for orthonormal rows of the
// bond × (legs[1:]) matrix.
func requireRightNormalized(t testing.TB, a *mparray.MPArray, from int) {
	t.Helper()
	for i := from; i < a.Len(); i++ {
		m, err := a.Site(i).Matrix(1)
		require.NoError(t, err)
		requireIsometry(t, m, true)
	}
}

// productState builds a chain of (1, len(v), 1) sites, one per vector.
func productState(t testing.TB, vecs ...[]float64) *mparray.MPArray {
	t.Helper()
	ltens := make([]*tensor.Dense, len(vecs))
	for i, v := range vecs {
		lt, err := tensor.FromReal([]int{1, len(v), 1}, v)
		require.NoError(t, err)
		ltens[i] = lt
	}
	a, err := mparray.New(ltens)
	require.NoError(t, err)

	return a
}
