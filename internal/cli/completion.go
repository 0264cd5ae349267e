package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// completionShells maps each supported shell to its cobra generator and the
// one-line setup users paste into their shell profile.
var completionShells = map[string]struct {
	setup string
	gen   func(root *cobra.Command, w io.Writer) error
}{
	"bash": {
		setup: "source <(isomer completion bash)",
		gen:   func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	},
	"zsh": {
		setup: `isomer completion zsh > "${fpath[1]}/_isomer"`,
		gen:   func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	},
	"fish": {
		setup: "isomer completion fish > ~/.config/fish/completions/isomer.fish",
		gen:   func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	},
	"powershell": {
		setup: "isomer completion powershell | Out-String | Invoke-Expression",
		gen:   func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
	},
}

// completionCommand creates the completion command. Solid names complete
// from the registry of the enumerate, group and validate commands, so the
// scripts are worth installing once per shell.
func (c *CLI) completionCommand() *cobra.Command {
	long := "Generate shell completion scripts for isomer.\n\nTo load completions:\n"
	shells := []string{"bash", "zsh", "fish", "powershell"}
	for _, sh := range shells {
		long += fmt.Sprintf("\n  %-10s %s", sh, completionShells[sh].setup)
	}

	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  long + "\n",
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]].gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
