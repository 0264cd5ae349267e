package perm

import (
	"slices"
	"sort"
	"strings"

	"github.com/matzehuels/isomer/pkg/errors"
)

// MaxOrder is the largest order a Permutation may have. Small polyhedra have
// rotations of order at most six; anything past this bound indicates bad
// generator data rather than a legitimate symmetry.
const MaxOrder = 1000

// Permutation is an immutable bijection of a finite label set onto itself.
//
// Labels are kept sorted; the mapping is stored as an index table over that
// sorted order, so two permutations built from the same pairs in a different
// order are identical in memory and produce the same Key.
type Permutation struct {
	labels []string       // sorted domain
	index  map[string]int // label -> position in labels
	image  []int          // image[i] is the position of labels[i]'s image
	order  int
	key    string
}

// New creates a permutation from a label -> image mapping.
//
// New returns an ErrCodeMalformedPermutation error when the mapping is empty
// or is not a bijection on a single label set (the key set differs from the
// value set, or two labels share an image). It returns ErrCodeDegreeOverflow
// when the order of the mapping exceeds MaxOrder.
//
// The mapping is copied; later changes to it do not affect the permutation.
func New(mapping map[string]string) (*Permutation, error) {
	if len(mapping) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedPermutation, "empty mapping")
	}

	labels := make([]string, 0, len(mapping))
	for k := range mapping {
		if err := errors.ValidateLabel(k); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedPermutation, err, "invalid label")
		}
		labels = append(labels, k)
	}
	sort.Strings(labels)
	index := indexOf(labels)

	image := make([]int, len(labels))
	used := make([]bool, len(labels))
	for i, l := range labels {
		v := mapping[l]
		j, ok := index[v]
		if !ok {
			return nil, errors.New(errors.ErrCodeMalformedPermutation,
				"image %q of %q is not in the label set", v, l)
		}
		if used[j] {
			return nil, errors.New(errors.ErrCodeMalformedPermutation,
				"label %q is the image of more than one label", v)
		}
		used[j] = true
		image[i] = j
	}

	return build(labels, index, image)
}

// MustNew is like New but panics on error. It is intended for hard-coded
// generator tables.
func MustNew(mapping map[string]string) *Permutation {
	p, err := New(mapping)
	if err != nil {
		panic(err)
	}
	return p
}

// Identity returns the identity permutation on the given labels.
// Duplicate labels are collapsed.
func Identity(labels []string) *Permutation {
	sorted := slices.Clone(labels)
	sort.Strings(sorted)
	sorted = slices.Compact(sorted)
	p, _ := build(sorted, indexOf(sorted), Seq(len(sorted)))
	return p
}

// build finalizes a permutation from validated parts and derives its order.
func build(labels []string, index map[string]int, image []int) (*Permutation, error) {
	p := &Permutation{labels: labels, index: index, image: image}
	p.key = p.canonicalKey()

	order, err := p.deriveOrder()
	if err != nil {
		return nil, err
	}
	p.order = order
	return p, nil
}

// deriveOrder composes the mapping with itself until the identity is reached.
func (p *Permutation) deriveOrder() (int, error) {
	cur := slices.Clone(p.image)
	order := 1
	for !isIdentity(cur) {
		for i, v := range cur {
			cur[i] = p.image[v]
		}
		order++
		if order > MaxOrder {
			return 0, errors.New(errors.ErrCodeDegreeOverflow,
				"order of %s exceeds %d", p.String(), MaxOrder)
		}
	}
	return order, nil
}

// Apply returns the image of label. It returns an ErrCodeUnknownLabel error
// when label is outside the permutation's domain.
func (p *Permutation) Apply(label string) (string, error) {
	i, ok := p.index[label]
	if !ok {
		return "", errors.New(errors.ErrCodeUnknownLabel, "label %q not in domain", label)
	}
	return p.labels[p.image[i]], nil
}

// MustApply is like Apply but panics on an unknown label.
func (p *Permutation) MustApply(label string) string {
	v, err := p.Apply(label)
	if err != nil {
		panic(err)
	}
	return v
}

// Power returns the permutation equal to applying p n times.
// Power(0) is the identity on p's labels. Negative n is rejected.
func (p *Permutation) Power(n int) (*Permutation, error) {
	if n < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "negative power %d", n)
	}
	cur := Seq(len(p.labels))
	for range n % p.order {
		for i, v := range cur {
			cur[i] = p.image[v]
		}
	}
	return build(p.labels, p.index, cur)
}

// Inverse returns the permutation that undoes p.
func (p *Permutation) Inverse() *Permutation {
	inv := make([]int, len(p.image))
	for i, v := range p.image {
		inv[v] = i
	}
	q, _ := build(p.labels, p.index, inv)
	return q
}

// Order returns the smallest positive n such that Power(n) is the identity.
func (p *Permutation) Order() int { return p.order }

// Len returns the number of labels in the domain.
func (p *Permutation) Len() int { return len(p.labels) }

// Labels returns the domain in sorted order. The returned slice is a copy.
func (p *Permutation) Labels() []string { return slices.Clone(p.labels) }

// HasLabel reports whether label is in the domain.
func (p *Permutation) HasLabel(label string) bool {
	_, ok := p.index[label]
	return ok
}

// SameDomain reports whether p and q act on the same label set.
func (p *Permutation) SameDomain(q *Permutation) bool {
	return slices.Equal(p.labels, q.labels)
}

// Mapping returns the permutation as a label -> image map.
func (p *Permutation) Mapping() map[string]string {
	m := make(map[string]string, len(p.labels))
	for i, l := range p.labels {
		m[l] = p.labels[p.image[i]]
	}
	return m
}

// IsIdentity reports whether every label maps to itself.
func (p *Permutation) IsIdentity() bool { return isIdentity(p.image) }

// Key returns the canonical serialization of p: its (label, image) pairs in
// sorted label order. Equal permutations share a key, which makes it usable
// as a map key for deduplication. It is not meant for display; use String.
func (p *Permutation) Key() string { return p.key }

// Equal reports whether p and q consist of the same (label, image) pairs.
func (p *Permutation) Equal(q *Permutation) bool {
	if p == nil || q == nil {
		return p == q
	}
	return p.key == q.key
}

// Cycles returns the disjoint-cycle decomposition of p. Each cycle starts
// at its smallest label and cycles are ordered by their first label.
// Fixed points appear as one-element cycles.
func (p *Permutation) Cycles() [][]string {
	seen := make([]bool, len(p.labels))
	var cycles [][]string
	for i := range p.labels {
		if seen[i] {
			continue
		}
		var c []string
		for j := i; !seen[j]; j = p.image[j] {
			seen[j] = true
			c = append(c, p.labels[j])
		}
		cycles = append(cycles, c)
	}
	return cycles
}

// String returns p in cycle notation, e.g. "(A1 B1 A2 B2)(C1)(C2)".
func (p *Permutation) String() string {
	var b strings.Builder
	for _, c := range p.Cycles() {
		b.WriteByte('(')
		b.WriteString(strings.Join(c, " "))
		b.WriteByte(')')
	}
	return b.String()
}

// canonicalKey serializes the sorted pairs. The unit separator cannot occur
// in a valid label.
func (p *Permutation) canonicalKey() string {
	var b strings.Builder
	for i, l := range p.labels {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(l)
		b.WriteByte('\x1e')
		b.WriteString(p.labels[p.image[i]])
	}
	return b.String()
}

func isIdentity(image []int) bool {
	for i, v := range image {
		if i != v {
			return false
		}
	}
	return true
}

func indexOf(labels []string) map[string]int {
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	return index
}
