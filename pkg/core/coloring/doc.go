// Package coloring enumerates two-colorings of a polyhedron's vertices up to
// rotation.
//
// A [Coloring] assigns [Zero] or [One] to every label. Two colorings are
// equivalent when some rotation carries one onto the other; the equivalence
// classes are the orbits of the rotation group. [Enumerate] returns one
// representative per orbit for a fixed number of zeros:
//
//	g, _ := group.Closure(generators)
//	res, err := coloring.Enumerate(g, 2, len(g.Labels())-2)
//	for i, c := range res.Unique {
//	    fmt.Println(c.Zeros(), res.OrbitSizes[i])
//	}
//
// Already classified colorings are tracked in a [SeenSet]. The map-backed
// set is fine for the built-in solids; [SeenLSM] trades speed for memory on
// larger label sets.
//
// [Burnside] computes the number of orbits independently and is used to
// check enumeration results.
package coloring
