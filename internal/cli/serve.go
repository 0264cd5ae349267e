package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isomer/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags backendFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve solids, groups and orbits over HTTP",
		Long: `Serve runs the JSON API:

  GET /healthz
  GET /solids
  GET /solids/{name}/group?closure=brute|bfs
  GET /solids/{name}/orbits/{zeros}?closure=brute|bfs&check=true
  GET /runs?solid=NAME&limit=N   (with --mongo-uri)
  GET /runs/{id}                 (with --mongo-uri)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, flags)
			if err != nil {
				return err
			}
			defer runner.Close(context.WithoutCancel(ctx))

			err = server.New(runner, loggerFromContext(ctx)).ListenAndServe(ctx, addr)
			if errors.Is(err, context.Canceled) {
				c.Logger.Info("server stopped")
				return nil
			}
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
