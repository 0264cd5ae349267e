package perm

import (
	"github.com/alecthomas/participle/v2"

	"github.com/matzehuels/isomer/pkg/errors"
)

// cycleExpr is the grammar for cycle notation: "(A1 B1 A2 B2)(C1)".
// Labels inside a cycle may be separated by spaces or commas.
type cycleExpr struct {
	Cycles []*cycleTerm `@@*`
}

type cycleTerm struct {
	Labels []string `"(" ( @( Ident | Int ) ","? )* ")"`
}

var parseCycleExpr = participle.MustBuild[cycleExpr]()

// ParseCycles builds a permutation from cycle notation.
//
// Each parenthesised group (a b c) maps a -> b, b -> c and c -> a. When
// labels is non-empty it is the full domain: labels it names that do not
// appear in expr are fixed points, and every label in expr must belong to it.
// When labels is empty the domain is exactly the labels mentioned in expr.
//
// A label may appear in at most one cycle.
func ParseCycles(expr string, labels []string) (*Permutation, error) {
	parsed, err := parseCycleExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedPermutation, err, "parse %q", expr)
	}

	var universe map[string]bool
	if len(labels) > 0 {
		universe = make(map[string]bool, len(labels))
		for _, l := range labels {
			universe[l] = true
		}
	}

	mapping := make(map[string]string)
	for _, c := range parsed.Cycles {
		for i, l := range c.Labels {
			if _, dup := mapping[l]; dup {
				return nil, errors.New(errors.ErrCodeMalformedPermutation,
					"label %q appears in more than one cycle", l)
			}
			if universe != nil && !universe[l] {
				return nil, errors.New(errors.ErrCodeUnknownLabel, "label %q not in domain", l)
			}
			mapping[l] = c.Labels[(i+1)%len(c.Labels)]
		}
	}
	for l := range universe {
		if _, ok := mapping[l]; !ok {
			mapping[l] = l
		}
	}
	return New(mapping)
}

// MustParseCycles is like ParseCycles but panics on error.
func MustParseCycles(expr string, labels []string) *Permutation {
	p, err := ParseCycles(expr, labels)
	if err != nil {
		panic(err)
	}
	return p
}
