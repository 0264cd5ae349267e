package solid

import (
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/isomer/pkg/core/perm"
	"github.com/matzehuels/isomer/pkg/errors"
)

// solidFile is the TOML layout of a solid definition.
type solidFile struct {
	Name            string            `toml:"name"`
	Title           string            `toml:"title"`
	Prefix          string            `toml:"prefix"`
	ExpectedOrder   int               `toml:"expected_order"`
	ZeroRange       []int             `toml:"zero_range"`
	Precision       *int              `toml:"precision"`
	DefaultDistance *float64          `toml:"default_distance"`
	Generators      []generatorEntry  `toml:"generator"`
	Distances       []distanceEntry   `toml:"distance"`
	Classes         map[string]string `toml:"classes"`
	Ordinals        map[string]int    `toml:"ordinals"`
}

type generatorEntry struct {
	Cycles string `toml:"cycles"`
}

type distanceEntry struct {
	A string  `toml:"a"`
	B string  `toml:"b"`
	D float64 `toml:"d"`
}

// Load reads a solid definition from a TOML file.
func Load(path string) (*Solid, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSolid, err, "read %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.Source = path
	return s, nil
}

// Parse builds a solid from TOML. The label set is every label named in a
// generator, a distance, a class or an ordinal; generators leave labels
// they do not mention fixed. Labels without a class default to class "1"
// and labels without an ordinal are numbered in sorted order.
func Parse(data []byte) (*Solid, error) {
	var f solidFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSolid, err, "decode solid")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidSolid, "unknown keys %v", undecoded)
	}
	if len(f.Generators) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSolid, "%s: no [[generator]] entries", f.Name)
	}

	labels, err := f.labels()
	if err != nil {
		return nil, err
	}

	s := &Solid{
		Name:          f.Name,
		Title:         f.Title,
		Labels:        labels,
		Ordinals:      make(map[string]int, len(labels)),
		Classes:       make(map[string]string, len(labels)),
		ExpectedOrder: f.ExpectedOrder,
		FilePrefix:    f.Prefix,
		Precision:     2,
		ZeroMin:       0,
		ZeroMax:       len(labels),
	}
	if s.Title == "" {
		s.Title = s.Name
	}
	if s.FilePrefix == "" {
		s.FilePrefix = s.Name
	}
	if f.Precision != nil {
		s.Precision = *f.Precision
	}
	switch len(f.ZeroRange) {
	case 0:
	case 2:
		s.ZeroMin, s.ZeroMax = f.ZeroRange[0], f.ZeroRange[1]
	default:
		return nil, errors.New(errors.ErrCodeInvalidSolid, "%s: zero_range needs [min, max]", f.Name)
	}

	for i, g := range f.Generators {
		p, err := perm.ParseCycles(g.Cycles, labels)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSolid, err, "%s: generator %d", f.Name, i+1)
		}
		s.Generators = append(s.Generators, p)
	}

	next := 1
	for _, l := range labels {
		s.Classes[l] = "1"
		if c, ok := f.Classes[l]; ok {
			s.Classes[l] = c
		}
		if o, ok := f.Ordinals[l]; ok {
			s.Ordinals[l] = o
		} else {
			s.Ordinals[l] = next
			next++
		}
	}

	s.Distance, err = tableDistance(f.Distances, f.DefaultDistance)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSolid, err, "%s", f.Name)
	}

	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

func (f *solidFile) labels() ([]string, error) {
	var labels []string
	add := func(l string) error {
		if err := errors.ValidateLabel(l); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSolid, err, "%s", f.Name)
		}
		labels = append(labels, l)
		return nil
	}

	for i, g := range f.Generators {
		p, err := perm.ParseCycles(g.Cycles, nil)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSolid, err, "%s: generator %d", f.Name, i+1)
		}
		labels = append(labels, p.Labels()...)
	}
	for _, d := range f.Distances {
		if err := add(d.A); err != nil {
			return nil, err
		}
		if err := add(d.B); err != nil {
			return nil, err
		}
	}
	for _, l := range sortedKeys(f.Classes) {
		if err := add(l); err != nil {
			return nil, err
		}
	}
	for _, l := range sortedKeys(f.Ordinals) {
		if err := add(l); err != nil {
			return nil, err
		}
	}

	slices.Sort(labels)
	return slices.Compact(labels), nil
}

// tableDistance returns a Distance looking pairs up in entries, in either
// order, falling back to def when set.
func tableDistance(entries []distanceEntry, def *float64) (func(a, b string) (float64, error), error) {
	table := make(map[[2]string]float64, 2*len(entries))
	for _, e := range entries {
		if e.A == e.B {
			return nil, fmt.Errorf("distance from %s to itself", e.A)
		}
		if e.D < 0 {
			return nil, fmt.Errorf("negative distance %s-%s", e.A, e.B)
		}
		if _, dup := table[[2]string{e.A, e.B}]; dup {
			return nil, fmt.Errorf("duplicate distance %s-%s", e.A, e.B)
		}
		table[[2]string{e.A, e.B}] = e.D
		table[[2]string{e.B, e.A}] = e.D
	}

	return func(a, b string) (float64, error) {
		if a == b {
			return 0, nil
		}
		if d, ok := table[[2]string{a, b}]; ok {
			return d, nil
		}
		if def != nil {
			return *def, nil
		}
		return 0, unknownDistance(a, b)
	}, nil
}
