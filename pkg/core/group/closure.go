package group

import (
	"github.com/matzehuels/isomer/pkg/core/perm"
	"github.com/matzehuels/isomer/pkg/errors"
)

// Mode selects the closure algorithm.
type Mode string

// Closure modes.
const (
	// ModeBrute composes every ordering of the generators at every
	// combination of powers.
	ModeBrute Mode = "brute"

	// ModeIncremental multiplies known elements by the generators until no
	// new element appears.
	ModeIncremental Mode = "bfs"
)

// ParseMode converts a flag value into a Mode. The empty string selects
// ModeBrute.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeBrute:
		return ModeBrute, nil
	case ModeIncremental:
		return ModeIncremental, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown closure mode %q (want brute or bfs)", s)
}

// Generate builds the group generated by generators using the given mode.
func Generate(mode Mode, generators []*perm.Permutation) (*Group, error) {
	switch mode {
	case "", ModeBrute:
		return Closure(generators)
	case ModeIncremental:
		return Incremental(generators)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown closure mode %q", mode)
}

// Closure derives the group generated by generators by brute force.
//
// For every ordering of the generator list and every tuple of exponents
// (exponent i ranging over 0..order_i-1) the correspondingly powered
// generators are composed in that order, leftmost applied last. All results
// are collected into one set; duplicates collapse by key.
//
// Trying every ordering matters because rotation groups are not abelian. The
// cost is factorial in the number of generators and exponential in their
// orders, which is acceptable for the two or three small-order generators a
// polyhedron needs. Callers are responsible for supplying generators that
// reach the whole group this way; see Incremental for a closure that always
// reaches a fixed point.
//
// Closure returns an ErrCodeInconsistentGenerators error when the generators
// do not share a label set, and ErrCodeInvalidInput when there are none.
func Closure(generators []*perm.Permutation) (*Group, error) {
	labels, err := sharedLabels(generators)
	if err != nil {
		return nil, err
	}

	// Each generator's powers, computed once.
	powers := make([][]*perm.Permutation, len(generators))
	for i, g := range generators {
		powers[i] = make([]*perm.Permutation, g.Order())
		for e := range g.Order() {
			if powers[i][e], err = g.Power(e); err != nil {
				return nil, err
			}
		}
	}

	set := make(map[string]*perm.Permutation)
	chosen := make([]*perm.Permutation, len(generators))
	for _, ordering := range perm.Generate(len(generators), -1) {
		exps := make([]int, len(ordering))
		for {
			for slot, gi := range ordering {
				chosen[slot] = powers[gi][exps[slot]]
			}
			p, err := perm.Compose(chosen...)
			if err != nil {
				return nil, err
			}
			set[p.Key()] = p

			if !advance(exps, ordering, powers) {
				break
			}
		}
	}

	return newGroup(labels, set, generators), nil
}

// advance steps exps like an odometer whose digit at slot has base equal to
// the order of the generator placed there. It returns false after the last
// combination.
func advance(exps, ordering []int, powers [][]*perm.Permutation) bool {
	for slot := len(exps) - 1; slot >= 0; slot-- {
		exps[slot]++
		if exps[slot] < len(powers[ordering[slot]]) {
			return true
		}
		exps[slot] = 0
	}
	return false
}

// Incremental derives the group generated by generators breadth first.
//
// Starting from the identity it multiplies every newly found element by each
// generator and keeps the products it has not seen, until a round adds
// nothing. The result is closed under composition for any generator set,
// which makes it the reference the brute-force closure is checked against.
func Incremental(generators []*perm.Permutation) (*Group, error) {
	labels, err := sharedLabels(generators)
	if err != nil {
		return nil, err
	}

	id := perm.Identity(labels)
	set := map[string]*perm.Permutation{id.Key(): id}
	frontier := []*perm.Permutation{id}
	for len(frontier) > 0 {
		var next []*perm.Permutation
		for _, p := range frontier {
			for _, g := range generators {
				q, err := perm.Compose(g, p)
				if err != nil {
					return nil, err
				}
				if _, ok := set[q.Key()]; ok {
					continue
				}
				set[q.Key()] = q
				next = append(next, q)
			}
		}
		frontier = next
	}

	return newGroup(labels, set, generators), nil
}

// sharedLabels checks that all generators act on one label set and returns it.
func sharedLabels(generators []*perm.Permutation) ([]string, error) {
	if len(generators) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no generators")
	}
	first := generators[0]
	for i, g := range generators[1:] {
		if !first.SameDomain(g) {
			return nil, errors.New(errors.ErrCodeInconsistentGenerators,
				"generator %d acts on %v, generator 1 on %v", i+2, g.Labels(), first.Labels())
		}
	}
	return first.Labels(), nil
}
