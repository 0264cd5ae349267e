package solid

import (
	"strings"

	"github.com/matzehuels/isomer/pkg/core/perm"
)

// Rhombicuboctahedron vertices: six majors A1..C2 where four squares meet,
// and twelve edge vertices named after the two majors they join, e.g.
// "a1b1". A and a share an axis, and so on.
var rbcOrdinals = map[string]int{
	"C2": 1, "B2": 2, "A2": 3, "B1": 4, "A1": 5, "C1": 6,
	"b2c2": 1, "a2c2": 2, "b1c2": 3, "a1c2": 4,
	"a2b2": 5, "a1b2": 6, "a1b1": 7, "a2b1": 8,
	"a2c1": 9, "b2c1": 10, "a1c1": 11, "b1c1": 12,
}

// Rhombicuboctahedron returns the rbc solid: 18 vertices, rotation group of
// order 24 generated by quarter turns about the three axes.
func Rhombicuboctahedron() *Solid {
	labels := sortedKeys(rbcOrdinals)
	classes := make(map[string]string, len(labels))
	for _, l := range labels {
		if len(l) == 2 {
			classes[l] = "4"
		} else {
			classes[l] = "2"
		}
	}

	return &Solid{
		Name:     "rbc",
		Title:    "Rhombicuboctahedron",
		Labels:   labels,
		Ordinals: rbcOrdinals,
		Classes:  classes,
		Generators: []*perm.Permutation{
			perm.MustParseCycles("(A1 B1 A2 B2)(a1b1 a2b1 a2b2 a1b2)(a1c1 b1c1 a2c1 b2c1)(a1c2 b1c2 a2c2 b2c2)", labels),
			perm.MustParseCycles("(A1 C1 A2 C2)(a1c1 a2c1 a2c2 a1c2)(a1b1 b1c1 a2b1 b1c2)(a1b2 b2c1 a2b2 b2c2)", labels),
			perm.MustParseCycles("(C1 B1 C2 B2)(b1c1 b1c2 b2c2 b2c1)(a1c1 a1b1 a1c2 a1b2)(a2c1 a2b1 a2c2 a2b2)", labels),
		},
		Distance:      rbcDistance,
		ZeroMin:       2,
		ZeroMax:       9,
		ExpectedOrder: 24,
		FilePrefix:    "rbc",
		Precision:     2,
		Source:        "builtin",
	}
}

// rbcDistance returns measured distances between rbc vertices. The table is
// expressed as rules on the label structure.
func rbcDistance(a, b string) (float64, error) {
	if a == b {
		return 0, nil
	}
	if !rbcOK(a) || !rbcOK(b) {
		return 0, unknownDistance(a, b)
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	switch {
	case len(a) == 2 && len(b) == 2:
		if a[0] == b[0] {
			return 781.5, nil // opposite majors
		}
		return 552, nil

	case len(a) == 2:
		m := strings.ToLower(a)
		switch {
		case b[:2] == m || b[2:] == m:
			return 294, nil // edge touching the major
		case !strings.Contains(b, m[:1]):
			return 543, nil
		default:
			return 709.3, nil
		}
	}

	sameAxes := a[0] == b[0] && a[2] == b[2]
	switch {
	case sameAxes && (a[1] == b[1] || a[3] == b[3]):
		return 533.1, nil
	case a[:2] == b[:2] || a[2:] == b[:2] || a[:2] == b[2:] || a[2:] == b[2:]:
		return 377, nil // share a major
	case sameAxes:
		return 754, nil
	default:
		return 653, nil
	}
}

func rbcOK(l string) bool {
	_, ok := rbcOrdinals[l]
	return ok
}
