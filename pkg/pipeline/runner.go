package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/isomer/pkg/cache"
	"github.com/matzehuels/isomer/pkg/core/coloring"
	"github.com/matzehuels/isomer/pkg/core/geometry"
	"github.com/matzehuels/isomer/pkg/core/group"
	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/observability"
	"github.com/matzehuels/isomer/pkg/report"
	"github.com/matzehuels/isomer/pkg/solid"
	"github.com/matzehuels/isomer/pkg/store"
)

// Runner executes pipelines with caching and optional persistence.
//
// A Runner holds no per-run state; one Runner may serve concurrent
// Execute calls as long as its Cache and Store do.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Store    store.Store // may be nil
	Registry *solid.Registry
	Logger   *log.Logger
}

// NewRunner returns a Runner with the built-in solids. A nil cache disables
// caching, a nil keyer uses the DefaultKeyer and a nil logger uses
// log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	reg, _ := solid.NewRegistry("")
	return &Runner{Cache: c, Keyer: keyer, Registry: reg, Logger: logger}
}

// Execute runs the whole pipeline for one solid.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.OutDir != "" {
		if err := report.CheckDir(opts.OutDir); err != nil {
			return nil, err
		}
	}

	s, err := r.Resolve(opts)
	if err != nil {
		return nil, err
	}
	zeros := opts.Zeros
	if zeros == nil {
		zeros = s.ZeroCounts()
	}
	for _, z := range zeros {
		if z > len(s.Labels) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s has %d vertices, cannot color %d of them zero", s.Name, len(s.Labels), z)
		}
	}

	started := time.Now()
	res := &Result{Solid: s}

	t := time.Now()
	g, err := r.Group(ctx, s, opts.Closure)
	if err != nil {
		return nil, err
	}
	res.Group = g
	res.Stats.GroupTime = time.Since(t)
	opts.Logger.Info("generated rotation group", "solid", s.Name, "order", g.Order(), "closure", opts.Closure)

	if !opts.SkipValidate {
		t = time.Now()
		if err := s.Validate(g); err != nil {
			return nil, err
		}
		res.Stats.ValidateTime = time.Since(t)
		opts.Logger.Debug("geometry consistent", "solid", s.Name, "duration", res.Stats.ValidateTime)
	}

	fingerprint, err := s.Fingerprint()
	if err != nil {
		return nil, err
	}

	run := &report.Run{
		ID:         uuid.NewString(),
		Solid:      s.Name,
		Closure:    string(opts.Closure),
		GroupOrder: g.Order(),
		Started:    started.UTC(),
	}

	t = time.Now()
	for _, z := range zeros {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		level, err := r.Level(ctx, s, g, fingerprint, z, opts)
		if err != nil {
			return nil, err
		}
		if level.Cached {
			res.CacheInfo.Hits++
		} else {
			res.CacheInfo.Misses++
		}
		run.Levels = append(run.Levels, level)
		opts.Logger.Info("enumerated colorings", "zeros", z, "orbits", len(level.Entries), "cached", level.Cached)
	}
	res.Stats.EnumerateTime = time.Since(t)
	run.Elapsed = time.Since(started)
	res.Run = run

	if opts.OutDir != "" {
		files, err := writeRun(opts.OutDir, s, run)
		if err != nil {
			return nil, err
		}
		res.Files = files
	}

	if r.Store != nil {
		if err := r.Store.Save(ctx, run); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "store run")
		}
		opts.Logger.Debug("stored run", "id", run.ID)
	}
	return res, nil
}

// Resolve returns the solid opts refers to.
func (r *Runner) Resolve(opts Options) (*solid.Solid, error) {
	if opts.Def != nil {
		return opts.Def, nil
	}
	if r.Registry == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "no solid registry")
	}
	return r.Registry.Get(opts.Solid)
}

// Group computes the rotation group of s.
func (r *Runner) Group(ctx context.Context, s *solid.Solid, mode group.Mode) (*group.Group, error) {
	hooks := observability.Pipeline()
	hooks.OnGroupStart(ctx, s.Name, len(s.Generators))
	t := time.Now()
	g, err := s.Group(mode)
	order := 0
	if g != nil {
		order = g.Order()
	}
	hooks.OnGroupComplete(ctx, s.Name, order, time.Since(t), err)
	return g, err
}

// Level enumerates and ranks one zero count of s, going through the cache.
func (r *Runner) Level(ctx context.Context, s *solid.Solid, g *group.Group, fingerprint string, zeros int, opts Options) (report.Level, error) {
	hooks := observability.Pipeline()
	hooks.OnEnumerateStart(ctx, s.Name, zeros)
	t := time.Now()

	level, err := r.level(ctx, s, g, fingerprint, zeros, opts)
	hooks.OnEnumerateComplete(ctx, s.Name, zeros, len(level.Entries), time.Since(t), err)
	return level, err
}

func (r *Runner) level(ctx context.Context, s *solid.Solid, g *group.Group, fingerprint string, zeros int, opts Options) (report.Level, error) {
	reps, sizes, cached, err := r.orbits(ctx, g, fingerprint, zeros, opts)
	if err != nil {
		return report.Level{}, err
	}
	level := report.Level{Zeros: zeros, Cached: cached}

	if opts.Check {
		want, err := coloring.Burnside(g, zeros)
		if err != nil {
			return report.Level{}, err
		}
		if want != len(reps) {
			return report.Level{}, errors.New(errors.ErrCodeInternal,
				"%s: %d orbits with %d zeros, Burnside's lemma gives %d", s.Name, len(reps), zeros, want)
		}
		level.Burnside = want
	}

	for i, c := range reps {
		zs := c.Zeros()
		d, err := geometry.AverageDistance(zs, s.Distance)
		if err != nil {
			return report.Level{}, err
		}
		level.Entries = append(level.Entries, report.Entry{
			Key:      c.Key(),
			Zeros:    zs,
			Label:    report.FormatLabel(s, zs),
			Distance: d,
			Orbit:    sizes[i],
		})
	}
	report.Rank(s, level.Entries)
	return level, nil
}

// cachedOrbits is the cached form of one enumeration.
type cachedOrbits struct {
	Keys  []string `json:"keys"`
	Sizes []int    `json:"sizes"`
}

func (r *Runner) orbits(ctx context.Context, g *group.Group, fingerprint string, zeros int, opts Options) ([]coloring.Coloring, []int, bool, error) {
	key := r.Keyer.OrbitsKey(fingerprint, zeros, string(opts.Closure))
	labels := g.Labels()

	if !opts.Refresh {
		if reps, sizes, ok := r.lookup(ctx, key, labels); ok {
			observability.Cache().OnCacheHit(ctx, "orbits")
			return reps, sizes, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "orbits")
	}

	res, err := coloring.Enumerate(g, zeros, len(labels)-zeros, coloring.WithSeenSet(opts.Seen))
	if err != nil {
		return nil, nil, false, err
	}

	entry := cachedOrbits{Sizes: res.OrbitSizes}
	for _, c := range res.Unique {
		entry.Keys = append(entry.Keys, c.Key())
	}
	if data, err := json.Marshal(entry); err == nil {
		err := cache.RetryWithBackoff(ctx, func() error {
			return r.Cache.Set(ctx, key, data, cache.DefaultTTL)
		})
		if err != nil {
			opts.Logger.Warn("cache write failed", "zeros", zeros, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "orbits", len(data))
		}
	}
	return res.Unique, res.OrbitSizes, false, nil
}

// lookup reads a cached enumeration. Any failure is treated as a miss.
func (r *Runner) lookup(ctx context.Context, key string, labels []string) ([]coloring.Coloring, []int, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, nil, false
	}
	if !hit {
		return nil, nil, false
	}

	var entry cachedOrbits
	if err := json.Unmarshal(data, &entry); err != nil || len(entry.Keys) != len(entry.Sizes) {
		return nil, nil, false
	}
	reps := make([]coloring.Coloring, len(entry.Keys))
	for i, k := range entry.Keys {
		c, err := coloring.FromKey(labels, k)
		if err != nil {
			return nil, nil, false
		}
		reps[i] = c
	}
	return reps, entry.Sizes, true
}

// writeRun writes every level and run.json into a new directory.
func writeRun(dir string, s *solid.Solid, run *report.Run) ([]string, error) {
	w, err := report.NewWriter(dir, s)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, level := range run.Levels {
		path, err := w.Write(level)
		if err != nil {
			return files, err
		}
		files = append(files, path)
	}
	path, err := w.WriteRun(run)
	if err != nil {
		return files, err
	}
	return append(files, path), nil
}

// Close releases the cache and store.
func (r *Runner) Close(ctx context.Context) error {
	var first error
	if r.Cache != nil {
		first = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
