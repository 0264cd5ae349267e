package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isomer/pkg/core/coloring"
	"github.com/matzehuels/isomer/pkg/core/group"
	"github.com/matzehuels/isomer/pkg/core/perm"
	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/pipeline"
)

// countFlags holds flags for the count command.
type countFlags struct {
	gens    []string
	labels  []string
	zeros   string
	closure string
	list    bool
}

// countCommand creates the count command.
func (c *CLI) countCommand() *cobra.Command {
	var flags countFlags

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count orbits of a group given by generators in cycle notation",
		Long: `Count closes the generators into a group and enumerates the orbits of its
two-colorings, without distances or output files. Labels not mentioned by a
generator are fixed by it.`,
		Example: `  isomer count --gen "(1 2 3 4)" --zeros 2
  isomer count --gen "(A1 B1 A2 B2)" --gen "(A1 C1 A2 C2)" --list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCount(flags)
		},
	}

	cmd.Flags().StringArrayVar(&flags.gens, "gen", nil, "generator in cycle notation (repeatable)")
	cmd.Flags().StringSliceVar(&flags.labels, "labels", nil, "full label set (default: labels named by generators)")
	cmd.Flags().StringVar(&flags.zeros, "zeros", "", "zero counts as N or MIN:MAX (default: all)")
	cmd.Flags().StringVar(&flags.closure, "closure", "", "group closure: brute or bfs")
	cmd.Flags().BoolVar(&flags.list, "list", false, "print the representatives")
	_ = cmd.MarkFlagRequired("gen")

	return cmd
}

func (c *CLI) runCount(flags countFlags) error {
	gens, err := parseGenerators(flags.gens, flags.labels)
	if err != nil {
		return err
	}
	closure := flags.closure
	if closure == "" {
		closure = c.Config.Closure
	}
	mode, err := group.ParseMode(closure)
	if err != nil {
		return err
	}
	g, err := group.Generate(mode, gens)
	if err != nil {
		return err
	}
	n := len(g.Labels())
	zeros, err := pipeline.ParseZeros(flags.zeros, 0, n)
	if err != nil {
		return err
	}

	printKeyValue("labels", strings.Join(g.Labels(), " "))
	printKeyValue("order", StyleNumber.Render(fmt.Sprint(g.Order())))
	for _, z := range zeros {
		if z > n {
			return errors.New(errors.ErrCodeInvalidInput, "%d zeros exceed %d labels", z, n)
		}
		res, err := coloring.Enumerate(g, z, n-z)
		if err != nil {
			return err
		}
		printLevel(z, len(res.Unique), 0, false)
		if flags.list {
			for i, rep := range res.Unique {
				printDetail("%d. %s  orbit %d", i+1, strings.Join(rep.Zeros(), " "), res.OrbitSizes[i])
			}
		}
	}
	return nil
}

// parseGenerators parses cycle expressions over a shared label set: labels
// when given, otherwise every label the expressions mention.
func parseGenerators(exprs, labels []string) ([]*perm.Permutation, error) {
	if len(exprs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no generators given")
	}
	if len(labels) == 0 {
		for _, e := range exprs {
			p, err := perm.ParseCycles(e, nil)
			if err != nil {
				return nil, err
			}
			labels = append(labels, p.Labels()...)
		}
		slices.Sort(labels)
		labels = slices.Compact(labels)
	}

	gens := make([]*perm.Permutation, len(exprs))
	for i, e := range exprs {
		p, err := perm.ParseCycles(e, labels)
		if err != nil {
			return nil, err
		}
		gens[i] = p
	}
	return gens, nil
}
