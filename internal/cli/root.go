package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/clawplot/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "clawplot plots the output of 1D finite volume solvers",
		Long: `clawplot reads the fort.t/fort.q frames a solver writes, runs a setplot
to decide which figures to draw and prints every selected frame as images,
HTML index pages and a LaTeX figure sheet.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./clawplot.toml if present)")

	root.AddCommand(c.plotCommand())
	root.AddCommand(c.framesCommand())
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
