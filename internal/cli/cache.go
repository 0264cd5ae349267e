package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isomer/pkg/cache"
	"github.com/matzehuels/isomer/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the enumeration cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var flags backendFlags

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached enumerations",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := flags.resolve(c.Config)
			switch f.cache {
			case cacheNone:
				printInfo("Caching is disabled")
				return nil
			case cacheRedis:
				if f.redisAddr == "" {
					return errors.New(errors.ErrCodeInvalidInput, "--cache redis needs --redis-addr")
				}
				rc, err := cache.NewRedisCache(cmd.Context(), f.redisAddr)
				if err != nil {
					return err
				}
				defer rc.Close()
				if err := rc.Clear(cmd.Context()); err != nil {
					return err
				}
				printSuccess("Cleared Redis cache")
				printDetail("Address: %s", f.redisAddr)
				return nil
			}

			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return err
			}
			printSuccess("Cleared cache")
			printDetail("Directory: %s", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.cache, "cache", "", "cache backend: file, redis or none")
	cmd.Flags().StringVar(&flags.redisAddr, "redis-addr", "", "Redis address for --cache redis")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
