// Package solid defines the polyhedra isomer knows how to color.
//
// A [Solid] bundles the vertex labels of a polyhedron with the rotations
// generating its symmetry group and a distance between every pair of
// vertices. The built-in solids are the rhombicuboctahedron ("rbc"), the
// pseudo-rhombicuboctahedron ("prbc") and the faces of a cube ("cube").
//
// Other solids are described in TOML and loaded with [Load]:
//
//	name = "square"
//	expected_order = 4
//	zero_range = [1, 3]
//
//	[[generator]]
//	cycles = "(1 2 3 4)"
//
//	[[distance]]
//	a = "1"
//	b = "3"
//	d = 1.4142135623730951
//
// A [Registry] serves both kinds by name.
package solid
