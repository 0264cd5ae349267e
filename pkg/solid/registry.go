package solid

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/isomer/pkg/errors"
)

// Registry resolves solids by name.
type Registry struct {
	solids map[string]*Solid
}

// NewRegistry returns a registry holding the built-in solids plus every
// *.toml solid in dir. An empty dir, or one that does not exist, adds
// nothing. A file solid may not reuse a built-in or another file's name.
func NewRegistry(dir string) (*Registry, error) {
	r := &Registry{solids: make(map[string]*Solid)}
	for _, s := range Builtins() {
		r.solids[s.Name] = s
	}
	if dir == "" {
		return r, nil
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "scan %s", dir)
	}
	sort.Strings(paths)
	for _, p := range paths {
		s, err := Load(p)
		if err != nil {
			return nil, err
		}
		if prev, ok := r.solids[s.Name]; ok {
			return nil, errors.New(errors.ErrCodeInvalidSolid,
				"solid %q in %s already defined by %s", s.Name, p, prev.Source)
		}
		r.solids[s.Name] = s
	}
	return r, nil
}

// Get returns the named solid, or an ErrCodeNotFound error.
func (r *Registry) Get(name string) (*Solid, error) {
	if s, ok := r.solids[strings.ToLower(name)]; ok {
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "unknown solid %q (have %s)",
		name, strings.Join(r.Names(), ", "))
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return sortedKeys(r.solids)
}

// List returns the registered solids sorted by name.
func (r *Registry) List() []*Solid {
	out := make([]*Solid, 0, len(r.solids))
	for _, n := range r.Names() {
		out = append(out, r.solids[n])
	}
	return out
}

// DefaultDir returns the solids directory under the user config dir.
func DefaultDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "isomer", "solids")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "isomer", "solids")
	}
	return ""
}
