package group

import (
	"sort"

	"github.com/matzehuels/isomer/pkg/core/perm"
)

// Group is an immutable, deduplicated set of permutations over one label set.
//
// Elements are held in key order so that iteration is deterministic across
// runs. A Group returned by Closure or Incremental always contains the
// identity.
type Group struct {
	labels     []string
	elements   []*perm.Permutation
	byKey      map[string]*perm.Permutation
	generators []*perm.Permutation
}

// newGroup builds a Group from a key -> permutation set.
func newGroup(labels []string, set map[string]*perm.Permutation, generators []*perm.Permutation) *Group {
	elements := make([]*perm.Permutation, 0, len(set))
	for _, p := range set {
		elements = append(elements, p)
	}
	sort.Slice(elements, func(i, j int) bool { return elements[i].Key() < elements[j].Key() })
	return &Group{
		labels:     labels,
		elements:   elements,
		byKey:      set,
		generators: generators,
	}
}

// Order returns the number of distinct elements.
func (g *Group) Order() int { return len(g.elements) }

// Elements returns the members in canonical key order. The returned slice is
// a copy; the permutations themselves are immutable.
func (g *Group) Elements() []*perm.Permutation {
	out := make([]*perm.Permutation, len(g.elements))
	copy(out, g.elements)
	return out
}

// Each calls fn for every element in canonical order.
func (g *Group) Each(fn func(p *perm.Permutation)) {
	for _, p := range g.elements {
		fn(p)
	}
}

// Labels returns the shared label set in sorted order.
func (g *Group) Labels() []string {
	out := make([]string, len(g.labels))
	copy(out, g.labels)
	return out
}

// Generators returns the permutations the group was generated from.
func (g *Group) Generators() []*perm.Permutation {
	out := make([]*perm.Permutation, len(g.generators))
	copy(out, g.generators)
	return out
}

// Contains reports whether p is a member.
func (g *Group) Contains(p *perm.Permutation) bool {
	_, ok := g.byKey[p.Key()]
	return ok
}

// Identity returns the identity element on the group's labels.
func (g *Group) Identity() *perm.Permutation {
	return perm.Identity(g.labels)
}

// IsClosed reports whether the product of every pair of members is a member.
// It costs Order()² compositions and is meant for verification, not for the
// enumeration path.
func (g *Group) IsClosed() bool {
	for _, a := range g.elements {
		for _, b := range g.elements {
			ab, err := perm.Compose(a, b)
			if err != nil || !g.Contains(ab) {
				return false
			}
		}
	}
	return true
}

// Regenerate runs the incremental closure with the group's own elements as
// generators. For a closed group the result has the same members. The
// brute-force closure is not used here: with every element as a generator
// its cost is factorial in the group order.
func (g *Group) Regenerate() (*Group, error) {
	return Incremental(g.elements)
}

// Equal reports whether g and h have the same members.
func (g *Group) Equal(h *Group) bool {
	if g.Order() != h.Order() {
		return false
	}
	for k := range g.byKey {
		if _, ok := h.byKey[k]; !ok {
			return false
		}
	}
	return true
}
