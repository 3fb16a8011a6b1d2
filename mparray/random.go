// SPDX-License-Identifier: MIT

package mparray

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/katalvlaran/mpnum/tensor"
)

// Random builds a chain of sites local tensors with independent real
// standard normal entries drawn from rng. Every site has physical shape
// pdims; every junction has bond dimension bdim and the two open ends have
// size 1.
//
// The draw order is fixed (site by site, row-major), so a given rng seed
// always yields the same chain.
//
// Errors:
//   - ErrInvariantViolation for sites < 1, an empty pdims or a non-positive
//     entry in it, bdim < 1, or a nil rng.
func Random(sites int, pdims []int, bdim int, rng *rand.Rand, opts ...Option) (*MPArray, error) {
	return random("Random", tensor.Random, sites, pdims, bdim, rng, opts...)
}

// RandomComplex is Random with standard complex normal entries
// (E|x|² = 1).
func RandomComplex(sites int, pdims []int, bdim int, rng *rand.Rand, opts ...Option) (*MPArray, error) {
	return random("RandomComplex", tensor.RandomComplex, sites, pdims, bdim, rng, opts...)
}

func random(
	ctx string,
	draw func(*rand.Rand, ...int) *tensor.Dense,
	sites int, pdims []int, bdim int, rng *rand.Rand, opts ...Option,
) (*MPArray, error) {
	switch {
	case sites < 1:
		return nil, fmt.Errorf("%s: %d sites: %w", ctx, sites, ErrInvariantViolation)
	case len(pdims) == 0:
		return nil, fmt.Errorf("%s: no physical legs: %w", ctx, ErrInvariantViolation)
	case slices.ContainsFunc(pdims, func(d int) bool { return d < 1 }):
		return nil, fmt.Errorf("%s: physical dims %v: %w", ctx, pdims, ErrInvariantViolation)
	case bdim < 1:
		return nil, fmt.Errorf("%s: bond dimension %d: %w", ctx, bdim, ErrInvariantViolation)
	case rng == nil:
		return nil, fmt.Errorf("%s: nil rng: %w", ctx, ErrInvariantViolation)
	}

	ltens := make([]*tensor.Dense, sites)
	for i := range ltens {
		left, right := bdim, bdim
		if i == 0 {
			left = 1
		}
		if i == sites-1 {
			right = 1
		}
		ltens[i] = draw(rng, slices.Concat([]int{left}, pdims, []int{right})...)
	}

	return New(ltens, opts...)
}
