// Package pkg provides the libraries behind isomer, which enumerates vertex
// two-colorings of polyhedra up to rotation.
//
// # Overview
//
// A two-coloring assigns Zero or One to every vertex of a solid. Two
// colorings are equivalent when a rotation of the solid carries one onto the
// other. isomer lists one representative per equivalence class (orbit) for
// each number of Zero vertices and ranks the representatives by the average
// distance between their Zero vertices.
//
// # Architecture
//
// The typical data flow:
//
//	Solid (built-in or TOML)
//	         ↓
//	    [core/perm] generators in cycle notation
//	         ↓
//	    [core/group] closure into the rotation group
//	         ↓
//	    [core/geometry] distance checks against the group
//	         ↓
//	    [core/coloring] orbit enumeration
//	         ↓
//	    [report] ranking, text files, run.json
//
// # Quick Start
//
//	s := solid.Rhombicuboctahedron()
//	g, _ := s.Group(group.ModeBrute)      // 24 rotations
//	res, _ := coloring.Enumerate(g, 3, 15) // colorings with 3 Zero vertices
//	fmt.Println(len(res.Unique))
//
// # Main Packages
//
// ## Core
//
// [core/perm] - Immutable permutations of string labels, cycle notation,
// orderings and combinations, Graphviz rendering.
//
// [core/group] - Group closure by brute force over generator orderings and
// powers, or by breadth-first multiplication.
//
// [core/coloring] - Colorings, the group action on them, orbit enumeration
// with pluggable seen-sets, and Burnside's count.
//
// [core/geometry] - Metric, distance-preservation and edge-label checks, and
// average pairwise distance.
//
// ## Solids and Output
//
// [solid] - Built-in solids (rbc, prbc, cube), TOML definitions and the
// registry resolving them by name.
//
// [report] - Ranking, label and distance formatting, output files.
//
// ## Infrastructure
//
// [pipeline] - The complete run (group → validate → enumerate → rank) used by
// the CLI and the API server.
//
// [cache] - Result cache with file, Redis and null backends.
//
// [store] - Run persistence in MongoDB or memory.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Structured error codes.
//
// [buildinfo] - Version information.
//
// # Testing
//
//	go test ./...                   # All tests
//	go test ./pkg/core/coloring/... # Specific package
//	go test -run Example ./pkg/...  # Examples only
//
// [core/perm]: https://pkg.go.dev/github.com/matzehuels/isomer/pkg/core/perm
// [core/group]: https://pkg.go.dev/github.com/matzehuels/isomer/pkg/core/group
// [core/coloring]: https://pkg.go.dev/github.com/matzehuels/isomer/pkg/core/coloring
// [core/geometry]: https://pkg.go.dev/github.com/matzehuels/isomer/pkg/core/geometry
// [solid]: https://pkg.go.dev/github.com/matzehuels/isomer/pkg/solid
// [report]: https://pkg.go.dev/github.com/matzehuels/isomer/pkg/report
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/isomer/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/isomer/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/isomer/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/isomer/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/isomer/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/isomer/pkg/buildinfo
package pkg
