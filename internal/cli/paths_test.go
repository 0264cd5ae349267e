package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/isomer/pkg/errors"
)

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestConfigDir(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", custom)

	if got, want := configDir(), filepath.Join(custom, appName); got != want {
		t.Errorf("configDir() = %q, want %q", got, want)
	}
	if got, want := defaultConfigPath(), filepath.Join(custom, appName, "config.toml"); got != want {
		t.Errorf("defaultConfigPath() = %q, want %q", got, want)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
solids_dir = "/srv/solids"
cache = "redis"
redis_addr = "localhost:6379"
closure = "bfs"
cache_namespace = "lab"
`)
	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	want := Config{SolidsDir: "/srv/solids", Cache: "redis", RedisAddr: "localhost:6379", Closure: "bfs", Namespace: "lab"}
	if cfg != want {
		t.Errorf("loadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"), false)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Cache != cacheFile {
		t.Errorf("Cache = %q, want %q", cfg.Cache, cacheFile)
	}
	if cfg.SolidsDir == "" {
		t.Error("SolidsDir should default to the config solids dir")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"explicit missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }},
		{"unknown key", func(t *testing.T) string { return writeConfig(t, `colour = "red"`) }},
		{"bad syntax", func(t *testing.T) string { return writeConfig(t, `cache = `) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.path(t), true)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("loadConfig() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestBackendFlagsResolve(t *testing.T) {
	cfg := Config{SolidsDir: "/cfg/solids", Cache: "redis", RedisAddr: "cfg:6379", MongoURI: "mongodb://cfg"}

	got := backendFlags{redisAddr: "flag:6379"}.resolve(cfg)
	if got.solidsDir != "/cfg/solids" || got.cache != "redis" || got.redisAddr != "flag:6379" || got.mongoURI != "mongodb://cfg" {
		t.Errorf("resolve() = %+v", got)
	}

	got = backendFlags{noCache: true}.resolve(cfg)
	if got.cache != cacheNone {
		t.Errorf("--no-cache resolved cache = %q, want %q", got.cache, cacheNone)
	}
}
