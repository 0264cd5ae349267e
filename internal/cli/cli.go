package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isomer/pkg/buildinfo"
	"github.com/matzehuels/isomer/pkg/cache"
	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/observability"
	"github.com/matzehuels/isomer/pkg/pipeline"
	"github.com/matzehuels/isomer/pkg/solid"
	"github.com/matzehuels/isomer/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "isomer"

	// mongoDatabase holds the runs collection.
	mongoDatabase = "isomer"
)

// Cache backends selectable with --cache.
const (
	cacheFile  = "file"
	cacheRedis = "redis"
	cacheNone  = "none"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "isomer enumerates two-colorings of polyhedra up to rotation",
		Long: `isomer lists one vertex two-coloring per orbit of a polyhedron's rotation
group and ranks the representatives by the average distance between their
zero-colored vertices.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				hooks := &logHooks{logger: c.Logger}
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
			}
			path, explicit := c.configPath, c.configPath != ""
			if !explicit {
				path = defaultConfigPath()
			}
			cfg, err := loadConfig(path, explicit)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/isomer/config.toml)")

	root.AddCommand(c.enumerateCommand())
	root.AddCommand(c.groupCommand())
	root.AddCommand(c.solidsCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.countCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Backends
// =============================================================================

// backendFlags select where solids, cached results and runs live. Empty
// values fall back to the config file.
type backendFlags struct {
	solidsDir string
	cache     string
	redisAddr string
	mongoURI  string
	noCache   bool
}

func (f *backendFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.solidsDir, "solids-dir", "", "directory of *.toml solid definitions")
	cmd.Flags().StringVar(&f.cache, "cache", "", "cache backend: file, redis or none")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", "", "Redis address for --cache redis")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", "", "MongoDB URI to store runs in")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable result caching")
}

// resolve merges flags over the config file.
func (f backendFlags) resolve(cfg Config) backendFlags {
	out := f
	if out.solidsDir == "" {
		out.solidsDir = cfg.SolidsDir
	}
	if out.cache == "" {
		out.cache = cfg.Cache
	}
	if out.redisAddr == "" {
		out.redisAddr = cfg.RedisAddr
	}
	if out.mongoURI == "" {
		out.mongoURI = cfg.MongoURI
	}
	if out.noCache {
		out.cache = cacheNone
	}
	return out
}

// newRegistry loads the built-in solids plus those in dir.
func (c *CLI) newRegistry(dir string) (*solid.Registry, error) {
	if dir == "" {
		dir = c.Config.SolidsDir
	}
	return solid.NewRegistry(dir)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f backendFlags) (*pipeline.Runner, error) {
	f = f.resolve(c.Config)

	reg, err := c.newRegistry(f.solidsDir)
	if err != nil {
		return nil, err
	}
	ch, err := newCache(ctx, f.cache, f.redisAddr)
	if err != nil {
		return nil, err
	}

	var keyer cache.Keyer
	if c.Config.Namespace != "" {
		keyer = cache.NewScopedKeyer(nil, c.Config.Namespace+":")
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	r.Registry = reg
	if f.mongoURI != "" {
		st, err := store.NewMongo(ctx, f.mongoURI, mongoDatabase)
		if err != nil {
			ch.Close()
			return nil, err
		}
		r.Store = st
	}
	return r, nil
}

func newCache(ctx context.Context, kind, redisAddr string) (cache.Cache, error) {
	switch strings.ToLower(kind) {
	case "", cacheFile:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case cacheRedis:
		if redisAddr == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--cache redis needs --redis-addr")
		}
		return cache.NewRedisCache(ctx, redisAddr)
	case cacheNone:
		return cache.NewNullCache(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", kind)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/isomer/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// configDir returns the config directory (~/.config/isomer/).
func configDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}
