package solid

import (
	"github.com/matzehuels/isomer/pkg/core/perm"
)

// Pseudo-rhombicuboctahedron vertices: poles X1 and X2 where four squares
// meet, eight equator vertices A1..D2 (three squares), and eight mid-arc
// vertices such as "b1x1" between an equator vertex and a pole (two squares).
var prbcOrdinals = map[string]int{
	"X1": 1, "X2": 2,
	"d2x1": 1, "b1x1": 2, "d1x1": 3, "b2x1": 4,
	"a1x2": 5, "c1x2": 6, "a2x2": 7, "c2x2": 8,
	"A1": 1, "B1": 2, "C1": 3, "D1": 4, "A2": 5, "B2": 6, "C2": 7, "D2": 8,
}

// equatorRing lists the equator vertices in the order they are joined.
var equatorRing = map[string]int{
	"A1": 0, "B1": 1, "C1": 2, "D1": 3, "A2": 4, "B2": 5, "C2": 6, "D2": 7,
}

// PseudoRhombicuboctahedron returns the prbc solid: 18 vertices, rotation
// group of order 8 generated by a quarter turn about the polar axis combined
// with the equator twist, and a half turn swapping the poles.
func PseudoRhombicuboctahedron() *Solid {
	labels := sortedKeys(prbcOrdinals)
	classes := make(map[string]string, len(labels))
	for _, l := range labels {
		switch {
		case len(l) == 4:
			classes[l] = "2"
		case l[0] == 'X':
			classes[l] = "4"
		default:
			classes[l] = "3"
		}
	}

	return &Solid{
		Name:     "prbc",
		Title:    "Pseudo-rhombicuboctahedron",
		Labels:   labels,
		Ordinals: prbcOrdinals,
		Classes:  classes,
		Generators: []*perm.Permutation{
			perm.MustParseCycles("(A1 C1 A2 C2)(B1 D1 B2 D2)(a1x2 c1x2 a2x2 c2x2)(b1x1 d1x1 b2x1 d2x1)", labels),
			perm.MustParseCycles("(X1 X2)(A1 B1)(A2 B2)(C1 D2)(C2 D1)(a1x2 b1x1)(c1x2 d2x1)(a2x2 b2x1)(c2x2 d1x1)", labels),
		},
		Distance:      prbcDistance,
		ZeroMin:       1,
		ZeroMax:       9,
		ExpectedOrder: 8,
		FilePrefix:    "pseudo_rbc",
		Precision:     8,
		Source:        "builtin",
	}
}

// prbcDistance returns measured distances between prbc vertices.
func prbcDistance(a, b string) (float64, error) {
	if a == b {
		return 0, nil
	}
	if _, ok := prbcOrdinals[a]; !ok {
		return 0, unknownDistance(a, b)
	}
	if _, ok := prbcOrdinals[b]; !ok {
		return 0, unknownDistance(a, b)
	}
	if len(a) > len(b) || (len(a) == len(b) && a > b) {
		a, b = b, a
	}

	switch {
	case len(a) == 2 && len(b) == 2:
		return prbcMajorDistance(a, b), nil
	case len(a) == 2:
		return prbcMixedDistance(a, b), nil
	default:
		return prbcArcDistance(a, b), nil
	}
}

// prbcMajorDistance handles pole and equator pairs. a < b.
func prbcMajorDistance(a, b string) float64 {
	switch {
	case a == "X1" && b == "X2":
		return 8.1092
	case b[0] == 'X':
		if nearPole(a) == b {
			return 5.5633
		}
		return 5.7835
	}
	return [...]float64{0, 3.0517, 5.61, 7.3363, 7.9338}[ringSteps(a, b)]
}

// prbcMixedDistance handles a pole or equator vertex a and a mid-arc b.
func prbcMixedDistance(a, b string) float64 {
	if a[0] == 'X' {
		if pole(b) == a {
			return 3.0474
		}
		return 7.2806
	}
	return [...]float64{3.1076, 3.786, 5.5944, 6.7036, 7.2759}[ringSteps(a, arcBase(b))]
}

// prbcArcDistance handles two mid-arc vertices.
func prbcArcDistance(a, b string) float64 {
	steps := ringSteps(arcBase(a), arcBase(b))
	if pole(a) == pole(b) {
		if steps == 4 {
			return 5.4554
		}
		return 3.8575
	}
	if steps == 1 {
		return 5.7815
	}
	return 7.3804
}

// ringSteps returns the number of equator edges between two equator vertices.
func ringSteps(a, b string) int {
	d := equatorRing[a] - equatorRing[b]
	if d < 0 {
		d = -d
	}
	return min(d, len(equatorRing)-d)
}

// nearPole returns the pole closer to an equator vertex.
func nearPole(equator string) string {
	if equator[0] == 'A' || equator[0] == 'C' {
		return "X1"
	}
	return "X2"
}

// arcBase returns the equator vertex at the end of a mid-arc vertex.
func arcBase(arc string) string {
	return string(arc[0]-'a'+'A') + arc[1:2]
}

// pole returns the pole at the end of a mid-arc vertex.
func pole(arc string) string {
	return "X" + arc[3:]
}
