package solid

import (
	"math"

	"github.com/matzehuels/isomer/pkg/core/perm"
)

// Cube returns the faces of a unit cube as a solid. Faces A1/A2, B1/B2 and
// C1/C2 are opposite; distances are between face centres.
func Cube() *Solid {
	labels := []string{"A1", "A2", "B1", "B2", "C1", "C2"}
	ordinals := make(map[string]int, len(labels))
	classes := make(map[string]string, len(labels))
	for i, l := range labels {
		ordinals[l] = i + 1
		classes[l] = "4"
	}

	return &Solid{
		Name:     "cube",
		Title:    "Cube (faces)",
		Labels:   labels,
		Ordinals: ordinals,
		Classes:  classes,
		Generators: []*perm.Permutation{
			perm.MustParseCycles("(A1 B1 A2 B2)", labels),
			perm.MustParseCycles("(A1 C1 A2 C2)", labels),
			perm.MustParseCycles("(B1 C1 B2 C2)", labels),
		},
		Distance: func(a, b string) (float64, error) {
			if _, ok := ordinals[a]; !ok {
				return 0, unknownDistance(a, b)
			}
			if _, ok := ordinals[b]; !ok {
				return 0, unknownDistance(a, b)
			}
			switch {
			case a == b:
				return 0, nil
			case a[0] == b[0]:
				return 1, nil
			}
			return math.Sqrt2 / 2, nil
		},
		ZeroMin:       0,
		ZeroMax:       6,
		ExpectedOrder: 24,
		FilePrefix:    "cube",
		Precision:     4,
		Source:        "builtin",
	}
}

// Builtins returns fresh copies of the solids compiled into isomer.
func Builtins() []*Solid {
	return []*Solid{Cube(), PseudoRhombicuboctahedron(), Rhombicuboctahedron()}
}
