package geometry

import (
	"math"
	"strings"

	"github.com/matzehuels/isomer/pkg/core/group"
	"github.com/matzehuels/isomer/pkg/core/perm"
	"github.com/matzehuels/isomer/pkg/errors"
)

// Default tolerances.
const (
	// SymmetryTolerance bounds |d(a,b) - d(b,a)|.
	SymmetryTolerance = 1e-7

	// PreservationTolerance bounds |d(a,b) - d(g(a),g(b))| for a rotation g.
	// Distances of a solid come from one table, so a rotation must map a
	// pair onto a pair with the very same entry.
	PreservationTolerance = 1e-15
)

// Distance returns the distance between the vertices labelled a and b.
type Distance func(a, b string) (float64, error)

// ValidateMetric checks that d is symmetric within tol and satisfies the
// triangle inequality for every triple of labels.
func ValidateMetric(labels []string, d Distance, tol float64) error {
	n := len(labels)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ab, err := d(labels[i], labels[j])
			if err != nil {
				return err
			}
			ba, err := d(labels[j], labels[i])
			if err != nil {
				return err
			}
			if math.Abs(ab-ba) >= tol {
				return errors.New(errors.ErrCodeGeometryInconsistent,
					"asymmetric distance %s-%s: %g vs %g", labels[i], labels[j], ab, ba)
			}
			dist[i][j], dist[j][i] = ab, ab
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				a, b, c := dist[i][j], dist[j][k], dist[i][k]
				if a+b < c-tol || a+c < b-tol || b+c < a-tol {
					return errors.New(errors.ErrCodeGeometryInconsistent,
						"triangle inequality fails for %s, %s, %s: %s-%s=%g %s-%s=%g %s-%s=%g",
						labels[i], labels[j], labels[k],
						labels[i], labels[j], a, labels[j], labels[k], b, labels[i], labels[k], c)
				}
			}
		}
	}
	return nil
}

// ValidateGroup checks that every element of g preserves d on every pair of
// labels within tol.
func ValidateGroup(g *group.Group, d Distance, tol float64) error {
	labels := g.Labels()
	for _, p := range g.Elements() {
		for i := 0; i < len(labels); i++ {
			for j := i + 1; j < len(labels); j++ {
				a, b := labels[i], labels[j]
				before, err := d(a, b)
				if err != nil {
					return err
				}
				ga, gb := p.MustApply(a), p.MustApply(b)
				after, err := d(ga, gb)
				if err != nil {
					return err
				}
				if math.Abs(before-after) >= tol {
					return errors.New(errors.ErrCodeGeometryInconsistent,
						"rotation %s moves %s-%s (%g) to %s-%s (%g)", p, a, b, before, ga, gb, after)
				}
			}
		}
	}
	return nil
}

// ValidateEdgeLabels checks edge labels against their endpoints.
//
// Two-character labels name the major vertices. When the lowercase
// concatenation of two majors, in either order, is itself a label, it names
// the edge between them, and every rotation must map it to the edge label of
// the images of its endpoints.
func ValidateEdgeLabels(g *group.Group) error {
	labels := g.Labels()
	var majors []string
	for _, l := range labels {
		if len(l) == 2 {
			majors = append(majors, l)
		}
	}

	for _, p := range g.Elements() {
		for i := 0; i < len(majors); i++ {
			for j := i + 1; j < len(majors); j++ {
				if err := checkEdge(p, majors[i], majors[j]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkEdge(p *perm.Permutation, a, b string) error {
	edge := strings.ToLower(a) + strings.ToLower(b)
	if !p.HasLabel(edge) {
		edge = strings.ToLower(b) + strings.ToLower(a)
		if !p.HasLabel(edge) {
			return nil
		}
	}

	ga, gb := strings.ToLower(p.MustApply(a)), strings.ToLower(p.MustApply(b))
	got := p.MustApply(edge)
	if got != ga+gb && got != gb+ga {
		return errors.New(errors.ErrCodeGeometryInconsistent,
			"rotation %s maps edge %s to %s, but its ends %s, %s to %s, %s",
			p, edge, got, a, b, p.MustApply(a), p.MustApply(b))
	}
	return nil
}

// AverageDistance returns the mean of d over all unordered pairs of points,
// or 0 when there are fewer than two points. The metric is validated on the
// points first.
func AverageDistance(points []string, d Distance) (float64, error) {
	if err := ValidateMetric(points, d, SymmetryTolerance); err != nil {
		return 0, err
	}
	if len(points) < 2 {
		return 0, nil
	}

	total := 0.0
	pairs := 0
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			v, err := d(points[i], points[j])
			if err != nil {
				return 0, err
			}
			total += v
			pairs++
		}
	}
	return total / float64(pairs), nil
}
