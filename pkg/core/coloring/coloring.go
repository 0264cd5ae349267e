package coloring

import (
	"slices"
	"sort"
	"strings"

	"github.com/matzehuels/isomer/pkg/core/perm"
	"github.com/matzehuels/isomer/pkg/errors"
)

// Color is one of the two vertex colors.
type Color byte

// The two colors. Their byte values are what Key concatenates.
const (
	Zero Color = '0'
	One  Color = '1'
)

// Coloring is an immutable assignment of a Color to every label of a label set.
type Coloring struct {
	labels []string // sorted
	colors []byte   // colors[i] is the color of labels[i]
}

// New builds the coloring of labels in which exactly the labels in zeros are
// colored Zero and all others One. Labels are sorted; duplicates are
// rejected, as are zero labels outside the label set.
func New(labels []string, zeros []string) (Coloring, error) {
	sorted := slices.Clone(labels)
	sort.Strings(sorted)
	if len(slices.Compact(slices.Clone(sorted))) != len(sorted) {
		return Coloring{}, errors.New(errors.ErrCodeInvalidInput, "duplicate labels in %v", labels)
	}

	colors := make([]byte, len(sorted))
	for i := range colors {
		colors[i] = byte(One)
	}
	for _, z := range zeros {
		i, ok := slices.BinarySearch(sorted, z)
		if !ok {
			return Coloring{}, errors.New(errors.ErrCodeUnknownLabel, "label %q not in label set", z)
		}
		colors[i] = byte(Zero)
	}
	return Coloring{labels: sorted, colors: colors}, nil
}

// FromKey rebuilds a coloring from its Key over the given labels.
func FromKey(labels []string, key string) (Coloring, error) {
	sorted := slices.Clone(labels)
	sort.Strings(sorted)
	if len(key) != len(sorted) {
		return Coloring{}, errors.New(errors.ErrCodeArityMismatch,
			"key %q has %d colors for %d labels", key, len(key), len(sorted))
	}
	for i := range len(key) {
		if c := Color(key[i]); c != Zero && c != One {
			return Coloring{}, errors.New(errors.ErrCodeInvalidInput, "invalid color %q in key %q", key[i], key)
		}
	}
	return Coloring{labels: sorted, colors: []byte(key)}, nil
}

// fromIndices builds a coloring over already sorted labels with the given
// positions colored Zero. labels is shared, not copied.
func fromIndices(labels []string, zeroIdx []int) Coloring {
	colors := make([]byte, len(labels))
	for i := range colors {
		colors[i] = byte(One)
	}
	for _, i := range zeroIdx {
		colors[i] = byte(Zero)
	}
	return Coloring{labels: labels, colors: colors}
}

// Key returns the per-vertex colors concatenated in sorted label order,
// e.g. "001101". Two colorings of the same label set are equal iff their
// keys are.
func (c Coloring) Key() string { return string(c.colors) }

// Len returns the number of labels.
func (c Coloring) Len() int { return len(c.labels) }

// Labels returns the colored labels in sorted order.
func (c Coloring) Labels() []string { return slices.Clone(c.labels) }

// Color returns the color of label.
func (c Coloring) Color(label string) (Color, error) {
	i, ok := slices.BinarySearch(c.labels, label)
	if !ok {
		return 0, errors.New(errors.ErrCodeUnknownLabel, "label %q not in coloring", label)
	}
	return Color(c.colors[i]), nil
}

// Zeros returns the labels colored Zero, sorted.
func (c Coloring) Zeros() []string { return c.withColor(Zero) }

// Ones returns the labels colored One, sorted.
func (c Coloring) Ones() []string { return c.withColor(One) }

func (c Coloring) withColor(want Color) []string {
	var out []string
	for i, col := range c.colors {
		if Color(col) == want {
			out = append(out, c.labels[i])
		}
	}
	return out
}

// Apply returns the image of c under the rotation g: the vertex g(v) gets
// the color v had, so every vertex receives the old color of the vertex that
// rotates into it. g must act on c's label set.
func (c Coloring) Apply(g *perm.Permutation) (Coloring, error) {
	if !slices.Equal(g.Labels(), c.labels) {
		return Coloring{}, errors.New(errors.ErrCodeArityMismatch,
			"permutation acts on %v, coloring on %v", g.Labels(), c.labels)
	}
	out := make([]byte, len(c.colors))
	for i, l := range c.labels {
		j, _ := slices.BinarySearch(c.labels, g.MustApply(l))
		out[j] = c.colors[i]
	}
	return Coloring{labels: c.labels, colors: out}, nil
}

// String renders the coloring as "label:color" pairs, e.g. "A1:0 A2:1".
func (c Coloring) String() string {
	parts := make([]string, len(c.labels))
	for i, l := range c.labels {
		parts[i] = l + ":" + string(c.colors[i])
	}
	return strings.Join(parts, " ")
}
