// SPDX-License-Identifier: MIT

package tensor

import (
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/cmplxs"
)

// householderQR computes the reduced QR decomposition of a complex m×n
// matrix with Householder reflections H = I - τ·v·vᴴ, τ = 2/(vᴴv).
// It returns q (m×k, orthonormal columns) and r (k×n, upper trapezoidal)
// with k = min(m, n). The input is not modified.
//
// Implementation:
//   - Stage 1: copy a into a working buffer w that turns into R.
//   - Stage 2: for each pivot column j build v from w[j:, j] and reflect
//     w[j:, j:]. The pivot becomes α = -e^{i·arg(x₀)}·‖x‖, which keeps
//     v₀ = x₀ - α free of cancellation.
//   - Stage 3: accumulate q = H₀·H₁·…·H_{k-1}·I[:, :k] by applying the
//     reflectors to the identity columns in reverse order.
//
// Complexity:
//   - Time O(m·n·k), Space O(m·n).
func householderQR(a *Dense) (q, r *Dense) {
	// Stage 1: working copy
	m, n := a.shape[0], a.shape[1]
	k := min(m, n)
	w := slices.Clone(a.data)
	vs := make([][]complex128, k) // Householder vectors; nil for a zero column
	taus := make([]float64, k)

	// Stage 2: reflect column by column
	x := make([]complex128, m)
	for j := range k {
		// 2.1: x = w[j:, j]
		x = x[:m-j]
		for i := range x {
			x[i] = w[(j+i)*n+j]
		}
		norm := cmplxs.Norm(x, 2)
		if norm == 0 {
			continue
		}
		// 2.2: v = x - α·e₀
		alpha := -cmplx.Rect(norm, cmplx.Phase(x[0]))
		v := slices.Clone(x)
		v[0] -= alpha
		tau := 2 / real(cmplxs.Dot(v, v))
		vs[j], taus[j] = v, tau

		// 2.3: w[j:, c] -= τ·v·(vᴴ·w[j:, c]) for the trailing columns
		for c := j + 1; c < n; c++ {
			applyReflector(w, n, j, c, v, tau)
		}
		// 2.4: the pivot column collapses onto α·e₀ exactly
		w[j*n+j] = alpha
		for i := j + 1; i < m; i++ {
			w[i*n+j] = 0
		}
	}

	// Stage 3: q from the identity columns
	q = Zeros(m, k)
	for i := range k {
		q.data[i*k+i] = 1
	}
	for j := k - 1; j >= 0; j-- {
		if vs[j] == nil {
			continue
		}
		for c := range k {
			applyReflector(q.data, k, j, c, vs[j], taus[j])
		}
	}

	r = Zeros(k, n)
	copy(r.data, w[:k*n])

	return q, r
}

// applyReflector updates column c of the row-major buffer d (stride cols)
// in rows j.. with I - τ·v·vᴴ.
func applyReflector(d []complex128, cols, j, c int, v []complex128, tau float64) {
	var dot complex128
	for i, vi := range v {
		dot += cmplx.Conj(vi) * d[(j+i)*cols+c]
	}
	if dot == 0 {
		return
	}
	f := complex(tau, 0) * dot
	for i, vi := range v {
		d[(j+i)*cols+c] -= f * vi
	}
}
