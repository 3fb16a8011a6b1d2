// SPDX-License-Identifier: MIT

package tensor_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/mpnum/tensor"
)

const tol = 1e-10

// eye returns the k×k identity.
func eye(k int) *tensor.Dense {
	id := tensor.Zeros(k, k)
	for i := range k {
		id.Data()[i*k+i] = 1
	}

	return id
}

// requireOrthonormalColumns asserts qᴴq == I.
func requireOrthonormalColumns(t *testing.T, q *tensor.Dense) {
	t.Helper()
	g, err := tensor.MatMul(q.H(), q)
	require.NoError(t, err)
	require.True(t, tensor.AllClose(g, eye(q.Dim(1)), tol), "QᴴQ != I: %v", g)
}

// factorInputs yields a real and a complex matrix of the given size.
func factorInputs(seed uint64, m, n int) map[string]*tensor.Dense {
	return map[string]*tensor.Dense{
		"real":    tensor.Random(newRand(seed), m, n),
		"complex": tensor.RandomComplex(newRand(seed), m, n),
	}
}

func TestQR_Shapes(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ m, n int }{{5, 3}, {4, 4}, {2, 6}, {1, 4}, {4, 1}} {
		for kind, a := range factorInputs(uint64(tc.m*10+tc.n), tc.m, tc.n) {
			t.Run(fmt.Sprintf("%s/%dx%d", kind, tc.m, tc.n), func(t *testing.T) {
				q, r, err := tensor.QR(a)
				require.NoError(t, err)
				k := min(tc.m, tc.n)
				require.Equal(t, tensor.Shape{tc.m, k}, q.Shape())
				require.Equal(t, tensor.Shape{k, tc.n}, r.Shape())
				requireOrthonormalColumns(t, q)

				for i := 1; i < k; i++ {
					for j := range i {
						v, err := r.At(i, j)
						require.NoError(t, err)
						require.Zero(t, v, "r[%d,%d] below the diagonal", i, j)
					}
				}

				back, err := tensor.MatMul(q, r)
				require.NoError(t, err)
				require.True(t, tensor.AllClose(back, a, tol))
			})
		}
	}
}

func TestQR_RankDeficientComplex(t *testing.T) {
	t.Parallel()

	// Second column is i times the first, third is zero.
	a, err := tensor.New([]int{3, 3}, []complex128{
		1, 1i, 0,
		2 - 1i, 1 + 2i, 0,
		-1i, 1, 0,
	})
	require.NoError(t, err)

	q, r, err := tensor.QR(a)
	require.NoError(t, err)
	requireOrthonormalColumns(t, q)
	back, err := tensor.MatMul(q, r)
	require.NoError(t, err)
	require.True(t, tensor.AllClose(back, a, tol))
}

func TestSVD_Reconstructs(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ m, n int }{{6, 3}, {3, 6}, {4, 4}, {1, 5}} {
		for kind, a := range factorInputs(uint64(tc.m+tc.n), tc.m, tc.n) {
			t.Run(fmt.Sprintf("%s/%dx%d", kind, tc.m, tc.n), func(t *testing.T) {
				u, s, vh, err := tensor.SVD(a)
				require.NoError(t, err)
				k := min(tc.m, tc.n)
				require.Len(t, s, k)
				require.Equal(t, tensor.Shape{tc.m, k}, u.Shape())
				require.Equal(t, tensor.Shape{k, tc.n}, vh.Shape())
				for i := 1; i < k; i++ {
					require.GreaterOrEqual(t, s[i-1], s[i])
				}
				requireOrthonormalColumns(t, u)
				requireOrthonormalColumns(t, vh.H())

				us := u.Clone()
				require.NoError(t, us.ScaleCols(s))
				back, err := tensor.MatMul(us, vh)
				require.NoError(t, err)
				require.True(t, tensor.AllClose(back, a, tol))
			})
		}
	}
}

// TestSVD_ComplexMatchesGram compares the Jacobi singular values against the
// eigenvalues of the real embedding [[Re, -Im], [Im, Re]], whose singular
// values are those of the complex matrix, each twice.
func TestSVD_ComplexMatchesGram(t *testing.T) {
	t.Parallel()

	const m, n = 5, 3
	a := tensor.RandomComplex(rand.New(rand.NewPCG(7, 8)), m, n)
	_, s, _, err := tensor.SVD(a)
	require.NoError(t, err)

	emb := mat.NewDense(2*m, 2*n, nil)
	for i := range m {
		for j := range n {
			v, _ := a.At(i, j)
			emb.Set(i, j, real(v))
			emb.Set(i, j+n, -imag(v))
			emb.Set(i+m, j, imag(v))
			emb.Set(i+m, j+n, real(v))
		}
	}
	var ref mat.SVD
	require.True(t, ref.Factorize(emb, mat.SVDNone))
	want := ref.Values(nil)
	for i, v := range s {
		require.InDelta(t, want[2*i], v, tol)
		require.InDelta(t, want[2*i+1], v, tol)
	}
}

func TestSVD_ZeroComplexKeepsIsometries(t *testing.T) {
	t.Parallel()

	a := tensor.Zeros(4, 3)
	a.Data()[0] = 1i

	u, s, vh, err := tensor.SVD(a)
	require.NoError(t, err)
	require.InDelta(t, 1, s[0], tol)
	require.Zero(t, s[1])
	require.Zero(t, s[2])
	requireOrthonormalColumns(t, u)
	requireOrthonormalColumns(t, vh.H())
}

func TestFactorizations_RequireMatrix(t *testing.T) {
	t.Parallel()

	x := arange(t, 2, 2, 2)
	_, _, err := tensor.QR(x)
	require.ErrorIs(t, err, tensor.ErrAxis)
	_, _, _, err = tensor.SVD(x)
	require.ErrorIs(t, err, tensor.ErrAxis)
}

func TestMatrixFromMatrixRoundTrip(t *testing.T) {
	t.Parallel()

	x := arange(t, 2, 3, 4)
	m, err := x.Matrix(2)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{6, 4}, m.Shape())

	// the view shares storage
	require.NoError(t, m.Set(-5, 5, 3))
	v, err := x.At(1, 2, 3)
	require.NoError(t, err)
	require.Equal(t, complex128(-5), v)

	// transposed gonum views are copied into row-major order
	g := mat.NewDense(6, 4, nil)
	for i := range 24 {
		g.Set(i/4, i%4, float64(i))
	}
	z, err := tensor.FromMatrix(g.T(), 4, 6)
	require.NoError(t, err)
	v, err = z.At(3, 5)
	require.NoError(t, err)
	require.Equal(t, complex128(23), v)

	_, err = tensor.FromMatrix(g, 5, 5)
	require.ErrorIs(t, err, tensor.ErrBadShape)
	_, err = x.Matrix(4)
	require.ErrorIs(t, err, tensor.ErrAxis)
}

func TestMatrixHelpers(t *testing.T) {
	t.Parallel()

	a, err := tensor.New([]int{2, 3}, []complex128{1, 2i, 3, 4, 5, 6 - 1i})
	require.NoError(t, err)

	h := a.H()
	require.Equal(t, tensor.Shape{3, 2}, h.Shape())
	require.Equal(t, []complex128{1, 4, -2i, 5, 3, 6 + 1i}, h.Data())

	b, err := a.Block(0, 2, 1, 3)
	require.NoError(t, err)
	require.Equal(t, []complex128{2i, 3, 5, 6 - 1i}, b.Data())
	_, err = a.Block(0, 3, 0, 1)
	require.ErrorIs(t, err, tensor.ErrOutOfRange)
	_, err = a.Block(1, 1, 0, 1)
	require.ErrorIs(t, err, tensor.ErrOutOfRange)

	rows := a.Clone()
	require.NoError(t, rows.ScaleRows([]float64{2, -1}))
	require.Equal(t, []complex128{2, 4i, 6, -4, -5, -6 + 1i}, rows.Data())
	require.ErrorIs(t, rows.ScaleRows([]float64{1}), tensor.ErrShapeMismatch)

	cols := a.Clone()
	require.NoError(t, cols.ScaleCols([]float64{0, 1, 2}))
	require.Equal(t, []complex128{0, 2i, 6, 0, 5, 12 - 2i}, cols.Data())
	require.ErrorIs(t, arange(t, 2).ScaleCols([]float64{1, 1}), tensor.ErrAxis)

	p, err := tensor.MatMul(a, h)
	require.NoError(t, err)
	// a·aᴴ is Hermitian with real diagonal ‖row‖².
	d0, _ := p.At(0, 0)
	d1, _ := p.At(1, 1)
	require.Equal(t, complex128(14), d0)
	require.Equal(t, complex128(78), d1)
}
