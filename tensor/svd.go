// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/cmplxs"
)

const (
	jacobiTol       = 1e-14 // relative off-orthogonality |uᵢᴴuⱼ| / (‖uᵢ‖·‖uⱼ‖)
	jacobiMaxSweeps = 100
	epsilon         = 0x1p-52
)

// jacobiSVD computes the thin SVD of a complex matrix with one-sided
// (Hestenes) Jacobi rotations: the columns of A·V are rotated pairwise
// until they are mutually orthogonal, then their norms are the singular
// values and their directions the left singular vectors.
//
// Wide inputs are handled through a = (aᴴ)ᴴ, so the rotated side always has
// the smaller dimension.
//
// Errors:
//   - ErrFactorization if the sweeps do not converge.
//
// Complexity:
//   - Time O(sweeps·m·n²) for m >= n, Space O(m·n + n²).
func jacobiSVD(a *Dense) (u *Dense, s []float64, vh *Dense, err error) {
	m, n := a.shape[0], a.shape[1]
	if m < n {
		ut, st, vht, err := jacobiSVD(a.H())
		if err != nil {
			return nil, nil, nil, err
		}
		return vht.H(), st, ut.H(), nil
	}

	// cols[j] is column j of A·V, vcols[j] column j of V.
	cols := make([][]complex128, n)
	vcols := make([][]complex128, n)
	for j := range n {
		cols[j] = make([]complex128, m)
		for i := range m {
			cols[j][i] = a.data[i*n+j]
		}
		vcols[j] = make([]complex128, n)
		vcols[j][j] = 1
	}

	converged := false
	for sweep := 0; sweep < jacobiMaxSweeps && !converged; sweep++ {
		converged = true
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				if rotatePair(cols, vcols, i, j) {
					converged = false
				}
			}
		}
	}
	if !converged {
		return nil, nil, nil, fmt.Errorf("jacobi: %d sweeps: %w", jacobiMaxSweeps, ErrFactorization)
	}

	// Singular values in descending order.
	s = make([]float64, n)
	for j, c := range cols {
		s[j] = cmplxs.Norm(c, 2)
	}
	order := make([]int, n)
	for j := range order {
		order[j] = j
	}
	slices.SortStableFunc(order, func(x, y int) int {
		switch {
		case s[x] > s[y]:
			return -1
		case s[x] < s[y]:
			return 1
		}
		return 0
	})

	ucols := make([][]complex128, n)
	sorted := make([]float64, n)
	for p, j := range order {
		sorted[p] = s[j]
		ucols[p] = cols[j]
	}
	floor := sorted[0] * float64(m) * epsilon
	valid := make([]bool, n)
	for p, c := range ucols {
		if sorted[p] > floor && sorted[p] > 0 {
			cmplxs.ScaleReal(1/sorted[p], c)
			valid[p] = true
		}
	}
	completeBasis(ucols, valid, m)

	u = Zeros(m, n)
	vh = Zeros(n, n)
	for p, j := range order {
		for i := range m {
			u.data[i*n+p] = ucols[p][i]
		}
		for i := range n {
			vh.data[p*n+i] = cmplx.Conj(vcols[j][i])
		}
	}

	return u, sorted, vh, nil
}

// rotatePair orthogonalizes columns i and j of cols and applies the same
// unitary to vcols. It reports whether a rotation was needed.
//
// With γ = cᵢᴴcⱼ = |γ|·e^{iφ}, column j is first rotated by e^{-iφ} so the
// overlap is real; the remaining 2×2 problem is the real Jacobi rotation
// with ζ = (β-α)/(2|γ|) and t the smaller root of t² + 2ζt - 1 = 0.
func rotatePair(cols, vcols [][]complex128, i, j int) bool {
	alpha := real(cmplxs.Dot(cols[i], cols[i]))
	beta := real(cmplxs.Dot(cols[j], cols[j]))
	gamma := cmplxs.Dot(cols[i], cols[j])
	g := cmplx.Abs(gamma)
	if g == 0 || g <= jacobiTol*math.Sqrt(alpha)*math.Sqrt(beta) {
		return false
	}

	zeta := (beta - alpha) / (2 * g)
	t := math.Copysign(1, zeta) / (math.Abs(zeta) + math.Sqrt(1+zeta*zeta))
	c := 1 / math.Sqrt(1+t*t)
	sn := c * t
	phase := cmplx.Conj(gamma) / complex(g, 0)

	rotate(cols[i], cols[j], c, sn, phase)
	rotate(vcols[i], vcols[j], c, sn, phase)

	return true
}

// rotate applies x, y ← c·x - s·e·y, s·x + c·e·y element-wise.
func rotate(x, y []complex128, c, s float64, e complex128) {
	cc, sc := complex(c, 0), complex(s, 0)
	for k := range x {
		xv, yv := x[k], e*y[k]
		x[k] = cc*xv - sc*yv
		y[k] = sc*xv + cc*yv
	}
}

// completeBasis replaces every column not marked valid with a unit vector
// orthogonal to all valid columns, so u keeps orthonormal columns when a
// singular value is zero. Candidates are the standard basis vectors; the one
// with the largest residual after two Gram-Schmidt passes wins.
func completeBasis(cols [][]complex128, valid []bool, m int) {
	for p := range cols {
		if valid[p] {
			continue
		}
		var best []complex128
		bestNorm := -1.0
		for r := range m {
			cand := make([]complex128, m)
			cand[r] = 1
			for range 2 {
				for q, c := range cols {
					if valid[q] {
						cmplxs.AddScaled(cand, -cmplxs.Dot(c, cand), c)
					}
				}
			}
			if nrm := cmplxs.Norm(cand, 2); nrm > bestNorm {
				best, bestNorm = cand, nrm
			}
		}
		cmplxs.ScaleReal(1/bestNorm, best)
		cols[p], valid[p] = best, true
	}
}
