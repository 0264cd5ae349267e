package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isomer/pkg/core/group"
	"github.com/matzehuels/isomer/pkg/core/perm"
)

// groupFlags holds flags for the group command.
type groupFlags struct {
	solidsDir string
	closure   string
	dot       string
	elements  bool
}

// groupCommand creates the group command.
func (c *CLI) groupCommand() *cobra.Command {
	var flags groupFlags

	cmd := &cobra.Command{
		Use:   "group <solid>",
		Short: "Print a solid's rotation group",
		Example: `  isomer group rbc
  isomer group prbc --closure bfs --dot prbc.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGroup(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.solidsDir, "solids-dir", "", "directory of *.toml solid definitions")
	cmd.Flags().StringVar(&flags.closure, "closure", "", "group closure: brute or bfs")
	cmd.Flags().StringVar(&flags.dot, "dot", "", "write the generators' cycle graph as SVG to this file")
	cmd.Flags().BoolVar(&flags.elements, "elements", true, "list every group element")

	cmd.ValidArgsFunction = c.completeSolids
	return cmd
}

func (c *CLI) runGroup(cmd *cobra.Command, name string, flags groupFlags) error {
	ctx := cmd.Context()

	reg, err := c.newRegistry(flags.solidsDir)
	if err != nil {
		return err
	}
	s, err := reg.Get(name)
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

	prog := newProgress(loggerFromContext(ctx))
	g, err := s.Group(mode)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated group of order %d", g.Order()))

	printKeyValue("solid", s.Title)
	printKeyValue("vertices", fmt.Sprint(len(s.Labels)))
	printKeyValue("order", StyleNumber.Render(fmt.Sprint(g.Order())))
	printNewline()
	for i, p := range g.Generators() {
		printKeyValue(fmt.Sprintf("g%d", i+1), StyleHighlight.Render(p.String()))
	}
	if flags.elements {
		printNewline()
		for i, p := range g.Elements() {
			fmt.Printf("%3d. %s %s\n", i+1, StyleDim.Render(fmt.Sprintf("order %d", p.Order())), moved(p))
		}
	}

	if flags.dot != "" {
		svg, err := perm.RenderSVG(ctx, g.Generators()...)
		if err != nil {
			return err
		}
		if err := os.WriteFile(flags.dot, svg, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", flags.dot, err)
		}
		printNewline()
		printFile(flags.dot)
	}
	return nil
}

// moved prints p in cycle notation without its fixed points.
func moved(p *perm.Permutation) string {
	var b strings.Builder
	for _, cyc := range p.Cycles() {
		if len(cyc) > 1 {
			b.WriteString("(" + strings.Join(cyc, " ") + ")")
		}
	}
	if b.Len() == 0 {
		return "()"
	}
	return b.String()
}
