package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isomer/pkg/core/coloring"
	"github.com/matzehuels/isomer/pkg/core/group"
	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/pipeline"
	"github.com/matzehuels/isomer/pkg/report"
	"github.com/matzehuels/isomer/pkg/solid"
)

// enumerateFlags holds flags for the enumerate command.
type enumerateFlags struct {
	backendFlags
	out          string
	zeros        string
	closure      string
	seen         string
	skipValidate bool
	check        bool
	refresh      bool
}

// enumerateCommand creates the enumerate command.
func (c *CLI) enumerateCommand() *cobra.Command {
	var flags enumerateFlags

	cmd := &cobra.Command{
		Use:   "enumerate [solid]",
		Short: "Rank one coloring per orbit for each zero count",
		Long: `Enumerate lists one representative of every orbit of two-colorings of a
solid's vertices under its rotation group, for each zero count in range, and
ranks them by the average distance between zero-colored vertices.

One text file per zero count is written to a new output directory along with
run.json. The command refuses to start if the directory already exists.`,
		Example: `  isomer enumerate rbc
  isomer enumerate prbc --zeros 3:5 --check
  isomer enumerate cube --closure bfs --out cube-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEnumerate(cmd, args, flags)
		},
	}

	flags.backendFlags.register(cmd)
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output directory (default out_<prefix>)")
	cmd.Flags().StringVar(&flags.zeros, "zeros", "", "zero counts as N or MIN:MAX (default: the solid's range)")
	cmd.Flags().StringVar(&flags.closure, "closure", "", "group closure: brute or bfs")
	cmd.Flags().StringVar(&flags.seen, "seen", "", "seen-set: map or lsm")
	cmd.Flags().BoolVar(&flags.skipValidate, "skip-validate", false, "skip the geometry checks")
	cmd.Flags().BoolVar(&flags.check, "check", false, "compare orbit counts with Burnside's lemma")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute cached enumerations")

	cmd.ValidArgsFunction = c.completeSolids
	return cmd
}

func (c *CLI) runEnumerate(cmd *cobra.Command, args []string, flags enumerateFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, flags.backendFlags)
	if err != nil {
		return err
	}
	defer runner.Close(ctx)

	s, err := c.chooseSolid(runner.Registry, args)
	if err != nil || s == nil {
		return err
	}

	opts, err := c.enumerateOptions(s, flags)
	if err != nil {
		return err
	}
	opts.Logger = logger

	if opts.SkipValidate {
		printWarning("geometry validation skipped")
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Enumerating %s...", s.Title))
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("%s: %s", s.Name, errors.UserMessage(err)))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("%s: %d orbits over %d zero counts (%s)",
		s.Title, res.Run.Orbits(), len(res.Run.Levels), res.Run.Elapsed.Round(time.Millisecond)))

	printKeyValue("group order", fmt.Sprint(res.Run.GroupOrder))
	printKeyValue("closure", res.Run.Closure)
	printKeyValue("run", res.Run.ID)
	for _, level := range res.Run.Levels {
		printLevel(level.Zeros, len(level.Entries), level.Burnside, level.Cached)
	}
	printNewline()
	for _, f := range res.Files {
		printFile(f)
	}
	if len(res.Run.Levels) > 0 && len(res.Run.Levels[0].Entries) > 0 {
		printNewline()
		printNextStep("Inspect the group", "isomer group "+s.Name)
	}
	return nil
}

// enumerateOptions builds pipeline options from flags and config.
func (c *CLI) enumerateOptions(s *solid.Solid, flags enumerateFlags) (pipeline.Options, error) {
	closure := flags.closure
	if closure == "" {
		closure = c.Config.Closure
	}
	mode, err := group.ParseMode(closure)
	if err != nil {
		return pipeline.Options{}, err
	}
	seen, err := coloring.ParseSeenKind(flags.seen)
	if err != nil {
		return pipeline.Options{}, err
	}
	zeros, err := pipeline.ParseZeros(flags.zeros, s.ZeroMin, s.ZeroMax)
	if err != nil {
		return pipeline.Options{}, err
	}

	out := flags.out
	if out == "" {
		out = report.DefaultDir(s)
		if c.Config.OutputDir != "" {
			out = filepath.Join(c.Config.OutputDir, out)
		}
	}

	return pipeline.Options{
		Def:          s,
		Closure:      mode,
		Zeros:        zeros,
		Seen:         seen,
		SkipValidate: flags.skipValidate,
		Check:        flags.check,
		Refresh:      flags.refresh,
		OutDir:       out,
	}, nil
}

// chooseSolid resolves the solid argument, or asks interactively when there
// is none and stdin is a terminal. It returns nil, nil if the user quits the
// picker.
func (c *CLI) chooseSolid(reg *solid.Registry, args []string) (*solid.Solid, error) {
	if len(args) == 1 {
		return reg.Get(args[0])
	}
	if !isTerminal(os.Stdin) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no solid given (have %v)", reg.Names())
	}
	return pickSolid(reg.List())
}
