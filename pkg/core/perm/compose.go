package perm

import (
	"github.com/matzehuels/isomer/pkg/errors"
)

// Compose returns the composition of perms as functions: for perms
// [R1, R2, ..., Rk] the result maps every label to R1(R2(...Rk(label))).
//
// Composition starts from the identity and walks the list from the end,
// substituting each label's current image through the next permutation.
// All permutations must act on the same label set; otherwise Compose returns
// an ErrCodeInconsistentGenerators error. An empty list is rejected.
func Compose(perms ...*Permutation) (*Permutation, error) {
	if len(perms) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to compose")
	}
	first := perms[0]
	for _, p := range perms[1:] {
		if !first.SameDomain(p) {
			return nil, errors.New(errors.ErrCodeInconsistentGenerators,
				"label sets differ: %v vs %v", first.labels, p.labels)
		}
	}

	cur := Seq(len(first.labels))
	for i := len(perms) - 1; i >= 0; i-- {
		img := perms[i].image
		for k, v := range cur {
			cur[k] = img[v]
		}
	}
	return build(first.labels, first.index, cur)
}

// Then returns q∘p, the permutation that applies p first and q second.
func (p *Permutation) Then(q *Permutation) (*Permutation, error) {
	return Compose(q, p)
}
