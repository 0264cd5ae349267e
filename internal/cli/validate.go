package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isomer/pkg/core/geometry"
	"github.com/matzehuels/isomer/pkg/core/group"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		solidsDir string
		closure   string
	)

	cmd := &cobra.Command{
		Use:   "validate <solid>",
		Short: "Check a solid's distances against its rotation group",
		Long: `Validate checks that a solid's distances form a metric, that every group
element preserves them, and that edge-vertex labels follow the rotations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.newRegistry(solidsDir)
			if err != nil {
				return err
			}
			s, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			if closure == "" {
				closure = c.Config.Closure
			}
			mode, err := group.ParseMode(closure)
			if err != nil {
				return err
			}
			g, err := s.Group(mode)
			if err != nil {
				return err
			}

			start := time.Now()
			if err := s.Validate(g); err != nil {
				printError("%s is inconsistent", s.Title)
				return err
			}
			printSuccess("%s is consistent (%s)", s.Title, time.Since(start).Round(time.Microsecond))
			printDetail("metric on %d vertices, symmetric within %g", len(s.Labels), geometry.SymmetryTolerance)
			printDetail("preserved by all %d rotations within %g", g.Order(), geometry.PreservationTolerance)
			return nil
		},
	}

	cmd.Flags().StringVar(&solidsDir, "solids-dir", "", "directory of *.toml solid definitions")
	cmd.Flags().StringVar(&closure, "closure", "", "group closure: brute or bfs")
	cmd.ValidArgsFunction = c.completeSolids
	return cmd
}
