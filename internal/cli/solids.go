package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// solidsCommand creates the solids command.
func (c *CLI) solidsCommand() *cobra.Command {
	var solidsDir string

	cmd := &cobra.Command{
		Use:   "solids",
		Short: "List registered solids",
		Long: `List the built-in solids and those defined by *.toml files in the solids
directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.newRegistry(solidsDir)
			if err != nil {
				return err
			}
			fmt.Println(solidTable(reg.List()))
			return nil
		},
	}

	cmd.Flags().StringVar(&solidsDir, "solids-dir", "", "directory of *.toml solid definitions")
	return cmd
}

// completeSolids completes the solid argument from the registry, honoring a
// --solids-dir flag already on the command line.
func (c *CLI) completeSolids(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	dir, _ := cmd.Flags().GetString("solids-dir")
	reg, err := c.newRegistry(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var names []string
	for _, n := range reg.Names() {
		if strings.HasPrefix(n, toComplete) {
			names = append(names, n)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
