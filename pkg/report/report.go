package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/isomer/pkg/solid"
)

// Entry is one ranked orbit representative.
type Entry struct {
	Key      string   `json:"key" bson:"key"`
	Zeros    []string `json:"zeros" bson:"zeros"`
	Label    string   `json:"label" bson:"label"`
	Distance float64  `json:"distance" bson:"distance"`
	Orbit    int      `json:"orbit_size" bson:"orbit_size"`
}

// Level holds the ranked entries for one zero count.
type Level struct {
	Zeros    int     `json:"zeros" bson:"zeros"`
	Burnside int     `json:"burnside,omitempty" bson:"burnside,omitempty"`
	Cached   bool    `json:"cached" bson:"cached"`
	Entries  []Entry `json:"entries" bson:"entries"`
}

// Run is the complete result of enumerating one solid.
type Run struct {
	ID         string        `json:"id" bson:"_id"`
	Solid      string        `json:"solid" bson:"solid"`
	Closure    string        `json:"closure" bson:"closure"`
	GroupOrder int           `json:"group_order" bson:"group_order"`
	Started    time.Time     `json:"started" bson:"started"`
	Elapsed    time.Duration `json:"elapsed_ns" bson:"elapsed_ns"`
	Levels     []Level       `json:"levels" bson:"levels"`
}

// Orbits returns the number of representatives over all levels.
func (r *Run) Orbits() int {
	n := 0
	for _, l := range r.Levels {
		n += len(l.Entries)
	}
	return n
}

// Rank sorts entries by decreasing distance, then by label length, then by
// label. Lengths and ties are taken on the padded label form, in which every
// class group except one of the last class in s.ClassOrder is followed by a
// space, so "4(1)" ranks ahead of "2(5)" at equal distance.
func Rank(s *solid.Solid, entries []Entry) {
	last := ""
	if classes := s.ClassOrder(); len(classes) > 0 {
		last = classes[len(classes)-1]
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Distance != b.Distance {
			return a.Distance > b.Distance
		}
		ka, kb := rankLabel(a.Label, last), rankLabel(b.Label, last)
		if len(ka) != len(kb) {
			return len(ka) < len(kb)
		}
		return ka < kb
	})
}

func rankLabel(label, last string) string {
	var b strings.Builder
	for _, g := range strings.Fields(label) {
		b.WriteString(g)
		if !strings.HasPrefix(g, last+"(") {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// FormatLabel renders the zero-colored labels of s grouped by class, e.g.
// "2(5,7) 4(3)": each class in ClassOrder, followed by the sorted ordinals
// of its labels. Classes without zeros are left out.
func FormatLabel(s *solid.Solid, zeros []string) string {
	byClass := make(map[string][]int)
	for _, z := range zeros {
		c := s.Classes[z]
		byClass[c] = append(byClass[c], s.Ordinals[z])
	}

	var groups []string
	for _, c := range s.ClassOrder() {
		ords := byClass[c]
		if len(ords) == 0 {
			continue
		}
		sort.Ints(ords)
		parts := make([]string, len(ords))
		for i, o := range ords {
			parts[i] = strconv.Itoa(o)
		}
		groups = append(groups, c+"("+strings.Join(parts, ",")+")")
	}
	return strings.Join(groups, " ")
}

// Round rounds v to precision decimals, halves to even.
func Round(v float64, precision int) float64 {
	scale := math.Pow10(precision)
	return math.RoundToEven(v*scale) / scale
}

// FormatDistance rounds v and prints the shortest representation that
// reads back to the rounded value, always with a fractional part:
// 781.5, 552.0.
func FormatDistance(v float64, precision int) string {
	s := strconv.FormatFloat(Round(v, precision), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Line formats one output line. index starts at 1.
func Line(index int, e Entry, precision int) string {
	return fmt.Sprintf("%d. %s %s", index, e.Label, FormatDistance(e.Distance, precision))
}

// FileName returns the output file name for a zero count.
func FileName(prefix string, zeros, count int) string {
	return fmt.Sprintf("%s_%dzeros_%d.txt", prefix, zeros, count)
}
