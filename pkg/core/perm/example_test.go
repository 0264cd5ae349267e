package perm_test

import (
	"fmt"

	"github.com/matzehuels/isomer/pkg/core/perm"
)

func ExampleNew() {
	r, err := perm.New(map[string]string{"1": "2", "2": "3", "3": "4", "4": "1"})
	if err != nil {
		panic(err)
	}
	fmt.Println(r, "order", r.Order())

	r2, _ := r.Power(2)
	fmt.Println(r2, "order", r2.Order())
	// Output:
	// (1 2 3 4) order 4
	// (1 3)(2 4) order 2
}

func ExampleCompose() {
	r1 := perm.MustParseCycles("(1 3)(2 4)", nil)
	r2 := perm.MustParseCycles("(1 2 3 4)", nil)

	// r2 is applied first, then r1.
	c, _ := perm.Compose(r1, r2)
	fmt.Println(c)
	// Output:
	// (1 4 3 2)
}

func ExampleParseCycles() {
	labels := []string{"A1", "A2", "B1", "B2", "C1", "C2"}
	r := perm.MustParseCycles("(A1 B1 A2 B2)", labels)
	fmt.Println(r)
	fmt.Println(r.MustApply("B2"))
	// Output:
	// (A1 B1 A2 B2)(C1)(C2)
	// A1
}

func ExampleGenerate() {
	// Every ordering of three generators
	for _, o := range perm.Generate(3, -1) {
		fmt.Println(o)
	}
	// Output:
	// [0 1 2]
	// [1 0 2]
	// [2 0 1]
	// [0 2 1]
	// [1 2 0]
	// [2 1 0]
}

func ExampleCombinations() {
	perm.Combinations(4, 2, func(idx []int) bool {
		fmt.Println(idx)
		return true
	})
	// Output:
	// [0 1]
	// [0 2]
	// [0 3]
	// [1 2]
	// [1 3]
	// [2 3]
}
