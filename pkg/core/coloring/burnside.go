package coloring

import (
	"github.com/matzehuels/isomer/pkg/core/group"
	"github.com/matzehuels/isomer/pkg/errors"
)

// Burnside counts the orbits of g on colorings with exactly zeros Zero
// vertices using Burnside's lemma: the average, over the group, of the
// number of colorings each element fixes.
//
// A coloring is fixed by an element iff it is constant on each of the
// element's cycles, so the fixed count is the number of ways to pick cycles
// whose lengths sum to zeros.
func Burnside(g *group.Group, zeros int) (int, error) {
	if g == nil || g.Order() == 0 {
		return 0, errors.New(errors.ErrCodeArityMismatch, "empty group")
	}
	n := len(g.Labels())
	if zeros < 0 || zeros > n {
		return 0, errors.New(errors.ErrCodeArityMismatch, "%d zeros on %d vertices", zeros, n)
	}

	total := 0
	for _, p := range g.Elements() {
		// ways[s] = number of cycle subsets with total length s
		ways := make([]int, zeros+1)
		ways[0] = 1
		for _, c := range p.Cycles() {
			for s := zeros; s >= len(c); s-- {
				ways[s] += ways[s-len(c)]
			}
		}
		total += ways[zeros]
	}

	if total%g.Order() != 0 {
		return 0, errors.New(errors.ErrCodeInconsistentGenerators,
			"fixed-point total %d not divisible by group order %d", total, g.Order())
	}
	return total / g.Order(), nil
}
