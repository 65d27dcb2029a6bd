package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clawplot/pkg/plotdata"
	"github.com/matzehuels/clawplot/pkg/setplot"
)

// describeCommand creates the describe command.
func (c *CLI) describeCommand() *cobra.Command {
	var (
		flags  plotFlags
		list   bool
		asTOML bool
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show the figures and export settings a setplot defines",
		Example: `  clawplot describe
  clawplot describe --setplot euler --toml > setplot.toml
  clawplot describe --list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if list {
				for _, name := range setplot.Names() {
					fmt.Fprintln(w, name)
				}
				return nil
			}
			pd, err := c.plotData(&flags)
			if err != nil {
				return err
			}
			if asTOML {
				return plotdata.WriteTOML(w, pd)
			}
			if err := pd.Validate(); err != nil {
				newPrinter(w).warn("%v", err)
			}
			describe(w, pd)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&list, "list", false, "list registered setplots")
	cmd.Flags().BoolVar(&asTOML, "toml", false, "print the setplot as TOML")
	return cmd
}

// describe prints the figure, axes and item tree of pd followed by its
// export settings.
func describe(w io.Writer, pd *plotdata.PlotData) {
	for _, fig := range pd.Figures() {
		fmt.Fprintf(w, "%s %s\n", StyleTitle.Render(fmt.Sprintf("Figure %d:", fig.FigNo)), StyleValue.Render(fig.Name))
		if fig.Width > 0 || fig.Height > 0 {
			fmt.Fprintf(w, "  size %dx%d\n", fig.Width, fig.Height)
		}
		axes := fig.Axes()
		for i, ax := range axes {
			fmt.Fprintf(w, "  axes %s %q xlimits=%s ylimits=%s\n", ax.AxesCmd, ax.Title, ax.XLimits, ax.YLimits)
			if i > 0 {
				fmt.Fprintln(w, "    "+StyleWarning.Render("not rendered: only the first axes of a figure is drawn"))
			}
			for _, it := range ax.Items() {
				fmt.Fprintln(w, "    "+describeItem(it))
			}
		}
	}
	if len(pd.Figures()) == 0 {
		fmt.Fprintln(w, StyleDim.Render("no figures"))
	}
	if n := pd.Replaced(); len(n) > 0 {
		fmt.Fprintln(w, StyleWarning.Render(fmt.Sprintf("figure numbers defined more than once: %v", n)))
	}

	fmt.Fprintln(w)
	kv := func(k, v string) {
		fmt.Fprintf(w, "%-14s %s\n", k, v)
	}
	kv("outdir", pd.OutDir)
	kv("plotdir", pd.PlotDir)
	kv("printfigs", fmt.Sprint(pd.PrintFigs))
	kv("format", pd.PrintFormat)
	kv("framenos", pd.PrintFramenos.String())
	kv("fignos", pd.PrintFignos.String())
	kv("html", onOff(pd.HTML, "homelink "+quoteOrNone(pd.HTMLHomeLink)))
	kv("latex", onOff(pd.LaTeX, fmt.Sprintf("figsperline %d, framesperline %d, makepdf %v",
		pd.LaTeXFigsPerLine, pd.LaTeXFramesPerLine, pd.LaTeXMakePDF)))
}

func describeItem(it *plotdata.PlotItem) string {
	v := fmt.Sprintf("q[%d]", it.PlotVar)
	if it.PlotVarFunc != nil {
		v = "derived"
	}
	parts := []string{it.PlotType, v, "style=" + it.PlotStyle, "color=" + it.Color, fmt.Sprintf("width=%g", it.LineWidth)}
	if it.Label != "" {
		parts = append(parts, fmt.Sprintf("label=%q", it.Label))
	}
	return strings.Join(parts, " ")
}

func onOff(on bool, detail string) string {
	if !on {
		return "off"
	}
	return "on (" + detail + ")"
}

func quoteOrNone(s string) string {
	if s == "" {
		return "none"
	}
	return fmt.Sprintf("%q", s)
}
