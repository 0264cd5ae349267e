package pipeline

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isomer/pkg/cache"
	"github.com/matzehuels/isomer/pkg/core/coloring"
	"github.com/matzehuels/isomer/pkg/core/group"
	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/observability"
	"github.com/matzehuels/isomer/pkg/report"
	"github.com/matzehuels/isomer/pkg/solid"
	"github.com/matzehuels/isomer/pkg/store"
)

func quietLogger() *log.Logger {
	l := log.New(os.Stderr)
	l.SetLevel(log.FatalLevel)
	return l
}

func orbitCounts(run *report.Run) []int {
	var out []int
	for _, l := range run.Levels {
		out = append(out, len(l.Entries))
	}
	return out
}

func TestExecute_Cube(t *testing.T) {
	for _, mode := range []group.Mode{group.ModeBrute, group.ModeIncremental} {
		t.Run(string(mode), func(t *testing.T) {
			r := NewRunner(nil, nil, quietLogger())
			res, err := r.Execute(context.Background(), Options{Solid: "cube", Closure: mode, Check: true})
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if res.Group.Order() != 24 {
				t.Errorf("group order = %d, want 24", res.Group.Order())
			}
			want := []int{1, 1, 2, 2, 2, 1, 1}
			if got := orbitCounts(res.Run); !slices.Equal(got, want) {
				t.Errorf("orbits per level = %v, want %v", got, want)
			}
			if res.Run.Closure != string(mode) {
				t.Errorf("Closure = %q, want %q", res.Run.Closure, mode)
			}
			if res.Run.ID == "" {
				t.Error("run has no ID")
			}
		})
	}
}

func TestExecute_RanksByDistance(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), Options{Solid: "cube", Zeros: []int{2}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	entries := res.Run.Levels[0].Entries
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Distance != 1 {
		t.Errorf("first distance = %v, want 1 (opposite faces)", entries[0].Distance)
	}
	if math.Abs(entries[1].Distance-math.Sqrt2/2) > 1e-12 {
		t.Errorf("second distance = %v, want %v", entries[1].Distance, math.Sqrt2/2)
	}
	orbits := entries[0].Orbit + entries[1].Orbit
	if orbits != 15 {
		t.Errorf("orbit sizes sum to %d, want C(6,2) = 15", orbits)
	}
}

func TestExecute_Definition(t *testing.T) {
	s, err := solid.Load(filepath.Join("..", "solid", "testdata", "square.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), Options{Def: s, Check: true})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got := orbitCounts(res.Run); !slices.Equal(got, []int{1, 2, 1}) {
		t.Errorf("orbits per level = %v, want [1 2 1]", got)
	}
	for _, l := range res.Run.Levels {
		if l.Burnside != len(l.Entries) {
			t.Errorf("level %d: Burnside = %d, entries = %d", l.Zeros, l.Burnside, len(l.Entries))
		}
	}
}

func TestExecute_CacheHit(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, quietLogger())
	ctx := context.Background()
	opts := Options{Solid: "cube", Zeros: []int{1, 2, 3}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheInfo.Misses != 3 || first.CacheInfo.Hits != 0 {
		t.Errorf("first run cache = %+v, want 3 misses", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if second.CacheInfo.Hits != 3 {
		t.Errorf("second run cache = %+v, want 3 hits", second.CacheInfo)
	}
	for i := range first.Run.Levels {
		a, b := first.Run.Levels[i], second.Run.Levels[i]
		if !b.Cached {
			t.Errorf("level %d not marked cached", b.Zeros)
		}
		if !reflect.DeepEqual(a.Entries, b.Entries) {
			t.Errorf("level %d differs after cache round trip:\n%v\n%v", a.Zeros, a.Entries, b.Entries)
		}
	}

	third, err := r.Execute(ctx, Options{Solid: "cube", Zeros: []int{1, 2, 3}, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute() error: %v", err)
	}
	if third.CacheInfo.Hits != 0 {
		t.Errorf("refresh run cache = %+v, want no hits", third.CacheInfo)
	}
}

func TestExecute_ClosureKeysCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, quietLogger())
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Solid: "cube", Zeros: []int{2}}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Solid: "cube", Zeros: []int{2}, Closure: group.ModeIncremental})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.Hits != 0 {
		t.Error("different closure modes should not share cache entries")
	}
}

func TestExecute_OutDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out_cube")
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	res, err := r.Execute(ctx, Options{Solid: "cube", Zeros: []int{2, 3}, OutDir: dir})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "cube_2zeros_2.txt"),
		filepath.Join(dir, "cube_3zeros_2.txt"),
		filepath.Join(dir, report.RunFile),
	}
	if !slices.Equal(res.Files, want) {
		t.Errorf("Files = %v, want %v", res.Files, want)
	}
	for _, f := range want {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}

	_, err = r.Execute(ctx, Options{Solid: "cube", OutDir: dir})
	if !errors.Is(err, errors.ErrCodeOutputExists) {
		t.Errorf("second Execute() error = %v, want %s", err, errors.ErrCodeOutputExists)
	}
}

func TestExecute_Store(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	r.Store = store.NewMemory()
	ctx := context.Background()

	res, err := r.Execute(ctx, Options{Solid: "cube", Zeros: []int{3}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	got, err := r.Store.Get(ctx, res.Run.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Orbits() != 2 {
		t.Errorf("stored orbits = %d, want 2", got.Orbits())
	}
	if err := r.Close(ctx); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestExecute_LSMSeenSet(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), Options{Solid: "cube", Seen: coloring.SeenLSM})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.Run.Orbits() != 10 {
		t.Errorf("Orbits() = %d, want 10", res.Run.Orbits())
	}
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no solid", Options{}, errors.ErrCodeInvalidInput},
		{"unknown solid", Options{Solid: "dodecahedron"}, errors.ErrCodeNotFound},
		{"bad closure", Options{Solid: "cube", Closure: "dfs"}, errors.ErrCodeInvalidInput},
		{"bad seen-set", Options{Solid: "cube", Seen: "disk"}, errors.ErrCodeInvalidInput},
		{"negative zeros", Options{Solid: "cube", Zeros: []int{-1}}, errors.ErrCodeInvalidInput},
		{"too many zeros", Options{Solid: "cube", Zeros: []int{7}}, errors.ErrCodeInvalidInput},
	}

	r := NewRunner(nil, nil, quietLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, quietLogger())
	if _, err := r.Execute(ctx, Options{Solid: "cube"}); err != context.Canceled {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

type enumerateEvents struct {
	observability.NoopPipelineHooks
	started, completed int
	err                error
}

func (e *enumerateEvents) OnEnumerateStart(context.Context, string, int) { e.started++ }

func (e *enumerateEvents) OnEnumerateComplete(_ context.Context, _ string, _, _ int, _ time.Duration, err error) {
	e.completed++
	e.err = err
}

func TestLevel_CompletesOnError(t *testing.T) {
	events := &enumerateEvents{}
	observability.SetPipelineHooks(events)
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	r := NewRunner(nil, nil, quietLogger())
	cube := solid.Cube()
	g, err := r.Group(ctx, cube, group.ModeBrute)
	if err != nil {
		t.Fatalf("Group() error: %v", err)
	}

	broken := *cube
	broken.Distance = func(a, b string) (float64, error) {
		return 0, errors.New(errors.ErrCodeGeometryInconsistent, "no distance for %s-%s", a, b)
	}
	opts := Options{Closure: group.ModeBrute, Seen: coloring.SeenMap, Logger: quietLogger()}

	_, err = r.Level(ctx, &broken, g, "broken", 2, opts)
	if !errors.Is(err, errors.ErrCodeGeometryInconsistent) {
		t.Fatalf("Level() error = %v, want %s", err, errors.ErrCodeGeometryInconsistent)
	}
	if events.started != 1 || events.completed != 1 {
		t.Errorf("start/complete events = %d/%d, want 1/1", events.started, events.completed)
	}
	if events.err != err {
		t.Errorf("completion error = %v, want %v", events.err, err)
	}
}

func TestParseZeros(t *testing.T) {
	tests := []struct {
		spec    string
		want    []int
		wantErr bool
	}{
		{"", []int{2, 3, 4, 5}, false},
		{"4", []int{4}, false},
		{"3:4", []int{3, 4}, false},
		{":3", []int{2, 3}, false},
		{"4:", []int{4, 5}, false},
		{" 2 : 3 ", []int{2, 3}, false},
		{"5:3", nil, true},
		{"x", nil, true},
		{"1:2:3", nil, true},
		{"-1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseZeros(tt.spec, 2, 5)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseZeros(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if !tt.wantErr && !slices.Equal(got, tt.want) {
				t.Errorf("ParseZeros(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

type cacheKinds struct {
	observability.NoopCacheHooks
	kinds []string
}

func (c *cacheKinds) OnCacheHit(_ context.Context, kind string)  { c.kinds = append(c.kinds, kind) }
func (c *cacheKinds) OnCacheMiss(_ context.Context, kind string) { c.kinds = append(c.kinds, kind) }

func TestExecute_CacheHookKinds(t *testing.T) {
	kinds := &cacheKinds{}
	observability.SetCacheHooks(kinds)
	t.Cleanup(observability.Reset)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, quietLogger())
	for range 2 {
		if _, err := r.Execute(context.Background(), Options{Solid: "cube", Zeros: []int{1, 2}}); err != nil {
			t.Fatalf("Execute() error: %v", err)
		}
	}
	want := []string{"orbits", "orbits", "orbits", "orbits"}
	if !slices.Equal(kinds.kinds, want) {
		t.Errorf("cache hook kinds = %v, want %v", kinds.kinds, want)
	}
}
