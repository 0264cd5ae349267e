package geometry

import (
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/matzehuels/isomer/pkg/core/group"
	"github.com/matzehuels/isomer/pkg/core/perm"
	"github.com/matzehuels/isomer/pkg/errors"
)

func lineDistance(a, b string) (float64, error) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, err
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, err
	}
	return math.Abs(float64(x - y)), nil
}

// squareDistance places 1..4 on the corners of a unit square in cyclic order.
func squareDistance(a, b string) (float64, error) {
	if a == b {
		return 0, nil
	}
	x, _ := strconv.Atoi(a)
	y, _ := strconv.Atoi(b)
	if (x-y)%2 == 0 {
		return math.Sqrt2, nil
	}
	return 1, nil
}

func closure(t *testing.T, cycles ...string) *group.Group {
	t.Helper()
	var gens []*perm.Permutation
	for _, c := range cycles {
		gens = append(gens, perm.MustParseCycles(c, nil))
	}
	g, err := group.Incremental(gens)
	if err != nil {
		t.Fatalf("Incremental() error: %v", err)
	}
	return g
}

func TestAverageDistance(t *testing.T) {
	tests := []struct {
		points []string
		want   float64
	}{
		{[]string{"1", "2", "3"}, 4.0 / 3},
		{[]string{"1", "2", "3", "4"}, 5.0 / 3},
		{[]string{"7"}, 0},
		{nil, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.points), func(t *testing.T) {
			got, err := AverageDistance(tt.points, lineDistance)
			if err != nil {
				t.Fatalf("AverageDistance() error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-7 {
				t.Errorf("AverageDistance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAverageDistanceRejectsBadMetric(t *testing.T) {
	asym := func(a, b string) (float64, error) {
		if a < b {
			return 1, nil
		}
		return 2, nil
	}
	_, err := AverageDistance([]string{"a", "b"}, asym)
	if !errors.Is(err, errors.ErrCodeGeometryInconsistent) {
		t.Errorf("AverageDistance(asymmetric) error = %v", err)
	}
}

func TestValidateMetric(t *testing.T) {
	labels := []string{"1", "2", "3", "4"}
	if err := ValidateMetric(labels, squareDistance, SymmetryTolerance); err != nil {
		t.Errorf("ValidateMetric(square) error: %v", err)
	}

	shortcut := func(a, b string) (float64, error) {
		if (a == "1" && b == "3") || (a == "3" && b == "1") {
			return 5, nil
		}
		return squareDistance(a, b)
	}
	err := ValidateMetric(labels, shortcut, SymmetryTolerance)
	if !errors.Is(err, errors.ErrCodeGeometryInconsistent) {
		t.Errorf("ValidateMetric(triangle violation) error = %v", err)
	}

	failing := func(a, b string) (float64, error) {
		return 0, errors.New(errors.ErrCodeUnknownLabel, "no distance for %s-%s", a, b)
	}
	if err := ValidateMetric(labels, failing, SymmetryTolerance); !errors.Is(err, errors.ErrCodeUnknownLabel) {
		t.Errorf("ValidateMetric(failing) error = %v", err)
	}
}

func TestValidateGroup(t *testing.T) {
	rotations := closure(t, "(1 2 3 4)")
	if err := ValidateGroup(rotations, squareDistance, PreservationTolerance); err != nil {
		t.Errorf("ValidateGroup(rotations) error: %v", err)
	}

	// Swapping two neighbours is not a symmetry of the square.
	bad := closure(t, "(1 2)(3)(4)")
	err := ValidateGroup(bad, squareDistance, PreservationTolerance)
	if !errors.Is(err, errors.ErrCodeGeometryInconsistent) {
		t.Errorf("ValidateGroup(swap) error = %v", err)
	}
}

func TestValidateEdgeLabels(t *testing.T) {
	good := closure(t, "(A1 B1 C1)(a1b1 b1c1 a1c1)")
	if err := ValidateEdgeLabels(good); err != nil {
		t.Errorf("ValidateEdgeLabels(good) error: %v", err)
	}

	bad := closure(t, "(A1 B1 C1)(a1b1 a1c1 b1c1)")
	if err := ValidateEdgeLabels(bad); !errors.Is(err, errors.ErrCodeGeometryInconsistent) {
		t.Errorf("ValidateEdgeLabels(bad) error = %v", err)
	}

	// Without edge labels there is nothing to check.
	if err := ValidateEdgeLabels(closure(t, "(A1 B1 C1)")); err != nil {
		t.Errorf("ValidateEdgeLabels(no edges) error: %v", err)
	}
}
