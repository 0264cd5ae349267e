// Package group derives a finite permutation group from a few generators.
//
// A polyhedron's rotation group is given by a handful of generating
// rotations. [Closure] expands them into every rotation by composing each
// ordering of the generators at every combination of their powers, which is
// what the rest of isomer relies on. [Incremental] computes the same set
// breadth first and is used to cross-check the brute-force result, or in its
// place when there are more generators than the brute-force search can afford.
//
//	cube := []*perm.Permutation{
//	    perm.MustParseCycles("(A1 B1 A2 B2)", faces),
//	    perm.MustParseCycles("(A1 C1 A2 C2)", faces),
//	    perm.MustParseCycles("(B1 C1 B2 C2)", faces),
//	}
//	g, err := group.Closure(cube)
//	g.Order() // 24
//
// A [Group] is immutable and iterates its elements in a canonical order.
package group
