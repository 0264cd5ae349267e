package solid

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/matzehuels/isomer/pkg/cache"
	"github.com/matzehuels/isomer/pkg/core/geometry"
	"github.com/matzehuels/isomer/pkg/core/group"
	"github.com/matzehuels/isomer/pkg/core/perm"
	"github.com/matzehuels/isomer/pkg/errors"
)

// Solid describes a polyhedron whose vertex colorings isomer enumerates:
// its labelled vertices, the rotations generating its symmetry group, and
// the distances used to rank colorings.
type Solid struct {
	Name  string
	Title string

	// Labels is the sorted vertex label set every generator acts on.
	Labels []string

	// Ordinals gives the number a label is printed as within its class.
	Ordinals map[string]int

	// Classes maps each label to its vertex class, e.g. "2" for a vertex
	// where two squares meet. Labels are grouped by class when printed.
	Classes map[string]string

	Generators []*perm.Permutation
	Distance   geometry.Distance

	// ZeroMin and ZeroMax bound the zero counts enumerated by default.
	ZeroMin, ZeroMax int

	// ExpectedOrder is the known order of the rotation group, or 0 when
	// unknown.
	ExpectedOrder int

	// FilePrefix starts every output file name.
	FilePrefix string

	// Precision is the number of decimals printed for distances.
	Precision int

	// Source is "builtin" or the path the solid was loaded from.
	Source string
}

// Group computes the rotation group of s with the given closure mode and
// checks it against ExpectedOrder.
func (s *Solid) Group(mode group.Mode) (*group.Group, error) {
	g, err := group.Generate(mode, s.Generators)
	if err != nil {
		return nil, err
	}
	if s.ExpectedOrder > 0 && g.Order() != s.ExpectedOrder {
		return nil, errors.New(errors.ErrCodeInconsistentGenerators,
			"%s: generators give %d rotations, expected %d", s.Name, g.Order(), s.ExpectedOrder)
	}
	return g, nil
}

// Validate runs every geometry check of s against its group g.
func (s *Solid) Validate(g *group.Group) error {
	if err := geometry.ValidateMetric(s.Labels, s.Distance, geometry.SymmetryTolerance); err != nil {
		return err
	}
	if err := geometry.ValidateGroup(g, s.Distance, geometry.PreservationTolerance); err != nil {
		return err
	}
	return geometry.ValidateEdgeLabels(g)
}

// ZeroCounts returns ZeroMin..ZeroMax.
func (s *Solid) ZeroCounts() []int {
	var out []int
	for z := s.ZeroMin; z <= s.ZeroMax; z++ {
		out = append(out, z)
	}
	return out
}

// ClassOrder returns the distinct classes in print order: numerically when
// classes are numbers, lexically otherwise.
func (s *Solid) ClassOrder() []string {
	var classes []string
	for _, c := range s.Classes {
		if !slices.Contains(classes, c) {
			classes = append(classes, c)
		}
	}
	sort.Slice(classes, func(i, j int) bool {
		a, errA := strconv.Atoi(classes[i])
		b, errB := strconv.Atoi(classes[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return classes[i] < classes[j]
	})
	return classes
}

// Fingerprint identifies the generators and distances of s. Two solids with
// the same fingerprint produce the same enumeration, so it keys cached
// results.
func (s *Solid) Fingerprint() (string, error) {
	type pair struct {
		A, B string
		D    float64
	}
	var gens []string
	for _, g := range s.Generators {
		gens = append(gens, g.Key())
	}
	var dists []pair
	for i, a := range s.Labels {
		for _, b := range s.Labels[i+1:] {
			d, err := s.Distance(a, b)
			if err != nil {
				return "", err
			}
			dists = append(dists, pair{a, b, d})
		}
	}
	data, err := json.Marshal(struct {
		Labels     []string
		Generators []string
		Distances  []pair
	}{s.Labels, gens, dists})
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", s.Name, err)
	}
	return cache.Hash(data), nil
}

// check verifies that s is internally consistent: generators act on
// Labels, every label has a class and ordinal, and the zero range fits.
func (s *Solid) check() error {
	if err := errors.ValidateSolidName(s.Name); err != nil {
		return err
	}
	if len(s.Generators) == 0 {
		return errors.New(errors.ErrCodeInvalidSolid, "%s: no generators", s.Name)
	}
	for i, g := range s.Generators {
		if !slices.Equal(g.Labels(), s.Labels) {
			return errors.New(errors.ErrCodeInconsistentGenerators,
				"%s: generator %d acts on %v, not on the solid's labels", s.Name, i+1, g.Labels())
		}
	}
	for _, l := range s.Labels {
		if _, ok := s.Classes[l]; !ok {
			return errors.New(errors.ErrCodeInvalidSolid, "%s: label %q has no class", s.Name, l)
		}
		if _, ok := s.Ordinals[l]; !ok {
			return errors.New(errors.ErrCodeInvalidSolid, "%s: label %q has no ordinal", s.Name, l)
		}
	}
	if s.ZeroMin < 0 || s.ZeroMax > len(s.Labels) || s.ZeroMin > s.ZeroMax {
		return errors.New(errors.ErrCodeInvalidSolid,
			"%s: zero range [%d, %d] does not fit %d labels", s.Name, s.ZeroMin, s.ZeroMax, len(s.Labels))
	}
	if s.Precision < 0 || s.Precision > 15 {
		return errors.New(errors.ErrCodeInvalidSolid, "%s: precision %d out of range", s.Name, s.Precision)
	}
	return nil
}

func unknownDistance(a, b string) error {
	return errors.New(errors.ErrCodeGeometryInconsistent, "no distance between %s and %s", a, b)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
