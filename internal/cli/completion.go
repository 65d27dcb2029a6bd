package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clawplot/pkg/plotdata"
	"github.com/matzehuels/clawplot/pkg/setplot"
)

var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for clawplot.

Bash:
  $ source <(clawplot completion bash)

Zsh:
  $ clawplot completion zsh > "${fpath[1]}/_clawplot"

Fish:
  $ clawplot completion fish > ~/.config/fish/completions/clawplot.fish

PowerShell:
  PS> clawplot completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// registerPlotCompletions completes --setplot with registered names and
// setplot files, and --format with the supported image formats.
func registerPlotCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("setplot", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return setplot.Names(), cobra.ShellCompDirectiveDefault
	})
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{plotdata.FormatPNG, plotdata.FormatSVG, plotdata.FormatPDF}, cobra.ShellCompDirectiveNoFileComp))
}
