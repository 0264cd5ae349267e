// Package perm provides immutable permutations of a finite label set and
// the ordering utilities used to build symmetry groups from them.
//
// # Overview
//
// A rotation of a polyhedron permutes its vertices. This package models such
// a rotation as a [Permutation]: a bijection of a set of string labels onto
// itself. Permutations are immutable, compare by their (label, image) pairs
// regardless of construction order, and expose a canonical [Permutation.Key]
// so that they can be deduplicated with an ordinary Go map.
//
//   - [New]: Build from a label -> image map (validated to be a bijection)
//   - [ParseCycles]: Build from cycle notation such as "(A1 B1 A2 B2)"
//   - [Compose]: Function composition, R1(R2(...Rk(label)))
//   - [Permutation.Power], [Permutation.Inverse], [Permutation.Order]
//
// # Order
//
// The order of a permutation is derived once at construction by composing
// the mapping with itself until the identity is reached. The search stops at
// [MaxOrder]; hitting that bound fails construction with DEGREE_OVERFLOW,
// because no rotation of a small solid comes anywhere near it.
//
// # Basic Usage
//
//	r, err := perm.New(map[string]string{"1": "2", "2": "3", "3": "4", "4": "1"})
//	if err != nil {
//	    return err
//	}
//	r.Order()          // 4
//	r2, _ := r.Power(2) // (1 3)(2 4)
//
//	s := perm.MustParseCycles("(1 4 3 2)", nil)
//	id, _ := perm.Compose(r, s)
//	id.IsIdentity() // true
//
// # Orderings
//
// [Generate] enumerates every ordering of n items with Heap's algorithm and
// [Combinations] walks k-subsets in lexicographic order. The group closure
// uses the former to try every generator order; the coloring enumerator uses
// the latter to place zero colors.
//
// # Rendering
//
// [ToDOT] and [RenderSVG] draw one or more permutations as a labelled
// digraph, which is handy for checking hand-written generator tables.
package perm
