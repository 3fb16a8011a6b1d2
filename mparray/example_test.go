// SPDX-License-Identifier: MIT

package mparray_test

import (
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/mpnum/mparray"
	"github.com/katalvlaran/mpnum/tensor"
)

// ExampleFromArray splits a dense 2×2×2 array into three sites and contracts
// it back.
func ExampleFromArray() {
	array := tensor.Zeros(2, 2, 2)
	for i := range array.Data() {
		array.Data()[i] = complex(float64(i), 0)
	}

	a, err := mparray.FromArray(array, 1)
	if err != nil {
		fmt.Println(err)
		return
	}
	ln, rn := a.NormalForm()
	fmt.Println("sites:", a.Len())
	fmt.Println("bonds:", a.BondDims())
	fmt.Printf("normal form: (%d, %d)\n", ln, rn)

	back, _ := a.ToArray()
	fmt.Println("round trip:", tensor.AllClose(array, back, 1e-12))

	// Output:
	// sites: 3
	// bonds: [2 2]
	// normal form: (2, 3)
	// round trip: true
}

// ExampleMPArray_Compress truncates a random chain to bond dimension 2.
func ExampleMPArray_Compress() {
	rng := rand.New(rand.NewPCG(1, 2))
	a, _ := mparray.Random(6, []int{2}, 4, rng)
	fmt.Println("before:", a.BondDims())

	e, err := a.Compress(2)
	if err != nil {
		fmt.Println(err)
		return
	}
	ln, rn := a.NormalForm()
	fmt.Println("after:", a.BondDims())
	fmt.Printf("normal form: (%d, %d)\n", ln, rn)
	fmt.Println("lossy:", e > 0)

	// Output:
	// before: [4 4 4 4 4]
	// after: [2 2 2 2 2]
	// normal form: (5, 6)
	// lossy: true
}

// ExampleMPArray_Normalize puts the orthogonality center on site 1..2.
func ExampleMPArray_Normalize() {
	rng := rand.New(rand.NewPCG(3, 4))
	a, _ := mparray.Random(4, []int{2}, 3, rng)

	if err := a.Normalize(mparray.Left(1), mparray.Right(3)); err != nil {
		fmt.Println(err)
		return
	}
	ln, rn := a.NormalForm()
	fmt.Printf("normal form: (%d, %d)\n", ln, rn)

	// Output:
	// normal form: (1, 3)
}

// ExampleInner computes the squared norm of the uniform product state
// (1, 1) ⊗ (1, 1) without building the 2×2 array.
func ExampleInner() {
	site := func() *tensor.Dense {
		t, _ := tensor.New([]int{1, 2, 1}, []complex128{1, 1})
		return t
	}
	a, _ := mparray.New([]*tensor.Dense{site(), site()})

	sq, _ := mparray.Inner(a, a)
	n, _ := mparray.Norm(a)
	fmt.Printf("<a, a> = %.1f\n", real(sq))
	fmt.Printf("|a| = %.1f\n", n)

	// Output:
	// <a, a> = 4.0
	// |a| = 2.0
}
