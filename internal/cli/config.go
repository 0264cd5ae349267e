package cli

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/solid"
)

// Config is the optional config file. Command-line flags override it.
type Config struct {
	SolidsDir string `toml:"solids_dir"`
	OutputDir string `toml:"output_dir"`
	Cache     string `toml:"cache"`
	RedisAddr string `toml:"redis_addr"`
	MongoURI  string `toml:"mongo_uri"`
	Closure   string `toml:"closure"`

	// Namespace prefixes cache keys so that several setups can share one
	// Redis server.
	Namespace string `toml:"cache_namespace"`
}

func defaultConfigPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// loadConfig reads path. A missing file is an error only if it was named
// explicitly. Unset fields get defaults.
func loadConfig(path string, explicit bool) (Config, error) {
	var cfg Config
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				return Config{}, errors.New(errors.ErrCodeInvalidInput,
					"%s: unknown keys %s", path, strings.Join(keys, ", "))
			}
		case stderrors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
		}
	}

	if cfg.SolidsDir == "" {
		cfg.SolidsDir = solid.DefaultDir()
	}
	if cfg.Cache == "" {
		cfg.Cache = cacheFile
	}
	return cfg, nil
}
