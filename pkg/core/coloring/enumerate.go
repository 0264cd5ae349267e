package coloring

import (
	"slices"
	"sort"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/matzehuels/isomer/pkg/core/group"
	"github.com/matzehuels/isomer/pkg/core/perm"
	"github.com/matzehuels/isomer/pkg/errors"
)

// Result holds the outcome of one Enumerate call.
type Result struct {
	// Zeros is the number of Zero-colored vertices in every coloring.
	Zeros int

	// Unique holds one representative per orbit, in discovery order.
	Unique []Coloring

	// OrbitSizes[i] is the size of the orbit of Unique[i]. The sizes sum
	// to Visited and each divides GroupOrder.
	OrbitSizes []int

	// Visited is the number of distinct colorings marked seen, which is
	// C(N, Zeros) once enumeration completes.
	Visited int

	// GroupOrder is the order of the group the colorings were reduced by.
	GroupOrder int

	tree *redblacktree.Tree
}

// Sorted returns the representatives ordered by Key.
func (r *Result) Sorted() []Coloring {
	out := make([]Coloring, 0, r.tree.Size())
	it := r.tree.Iterator()
	for it.Next() {
		out = append(out, it.Value().(Coloring))
	}
	return out
}

// Option configures Enumerate.
type Option func(*options)

type options struct {
	seen SeenKind
}

// WithSeenSet selects the seen-set implementation. The default is SeenMap.
func WithSeenSet(kind SeenKind) Option {
	return func(o *options) { o.seen = kind }
}

// Enumerate lists one representative of every orbit of g acting on the
// two-colorings of g's labels with exactly zeros Zero vertices and ones One
// vertices.
//
// Position subsets are walked in lexicographic order over the sorted labels.
// A coloring whose key is already seen is skipped; otherwise it becomes a
// representative and all its images under g are marked seen. The output is
// therefore deterministic for a given group and label set.
//
// Enumerate returns an ErrCodeArityMismatch error when zeros+ones differs from
// the number of labels, either count is negative, or g is nil or empty.
func Enumerate(g *group.Group, zeros, ones int, opts ...Option) (*Result, error) {
	if g == nil || g.Order() == 0 {
		return nil, errors.New(errors.ErrCodeArityMismatch, "empty group")
	}
	labels := g.Labels()
	if zeros < 0 || ones < 0 || zeros+ones != len(labels) {
		return nil, errors.New(errors.ErrCodeArityMismatch,
			"%d zeros + %d ones does not cover %d vertices", zeros, ones, len(labels))
	}

	o := options{seen: SeenMap}
	for _, opt := range opts {
		opt(&o)
	}
	seen, err := o.seen.Open()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open seen-set")
	}

	tables := actionTables(g, labels)
	res := &Result{
		Zeros:      zeros,
		GroupOrder: g.Order(),
		tree:       redblacktree.NewWithStringComparator(),
	}

	image := make([]byte, len(labels))
	perm.Combinations(len(labels), zeros, func(idx []int) bool {
		c := fromIndices(labels, idx)
		if !seen.TryAdd(c.Key()) {
			return true
		}
		size := 1
		for _, t := range tables {
			for i, j := range t {
				image[j] = c.colors[i]
			}
			if seen.TryAdd(string(image)) {
				size++
			}
		}
		res.Unique = append(res.Unique, c)
		res.OrbitSizes = append(res.OrbitSizes, size)
		res.tree.Put(c.Key(), c)
		return true
	})

	res.Visited = seen.Len()
	if err := seen.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "seen-set")
	}
	return res, nil
}

// Orbit returns the distinct images of c under every element of g, sorted
// by key.
func Orbit(c Coloring, g *group.Group) ([]Coloring, error) {
	if g == nil || !slices.Equal(g.Labels(), c.labels) {
		return nil, errors.New(errors.ErrCodeArityMismatch, "group does not act on the coloring's labels")
	}
	byKey := make(map[string]Coloring, g.Order())
	for _, p := range g.Elements() {
		img, err := c.Apply(p)
		if err != nil {
			return nil, err
		}
		byKey[img.Key()] = img
	}
	out := make([]Coloring, 0, len(byKey))
	for _, img := range byKey {
		out = append(out, img)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

// actionTables precomputes, for every group element, the position each
// sorted label moves to.
func actionTables(g *group.Group, labels []string) [][]int {
	pos := make(map[string]int, len(labels))
	for i, l := range labels {
		pos[l] = i
	}
	tables := make([][]int, 0, g.Order())
	g.Each(func(p *perm.Permutation) {
		t := make([]int, len(labels))
		for i, l := range labels {
			t[i] = pos[p.MustApply(l)]
		}
		tables = append(tables, t)
	})
	return tables
}
