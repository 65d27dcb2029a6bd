package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clawplot/internal/metrics"
	"github.com/matzehuels/clawplot/pkg/errors"
	"github.com/matzehuels/clawplot/pkg/observability"
	"github.com/matzehuels/clawplot/pkg/pipeline"
	"github.com/matzehuels/clawplot/pkg/plotdata"
	"github.com/matzehuels/clawplot/pkg/setplot"
)

// =============================================================================
// Shared Flags
// =============================================================================

// plotFlags are the flags shared by every command that runs a setplot.
type plotFlags struct {
	outdir  string
	plotdir string
	setplot string
	format  string
	frames  string
	figures string
	width   int
	height  int
	workers int
	noCache bool
}

func (f *plotFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.outdir, "outdir", "", "directory holding fort.t/fort.q frames")
	fl.StringVar(&f.plotdir, "plotdir", "", "directory receiving the plots")
	fl.StringVarP(&f.setplot, "setplot", "s", "", "registered setplot name or setplot TOML file ("+strings.Join(setplot.Names(), ", ")+")")
	fl.StringVarP(&f.format, "format", "f", "", "image format: png, svg or pdf (overrides the setplot)")
	fl.StringVar(&f.frames, "frames", "", `frames to print: "all", "3", "0-10" or "1,4,7"`)
	fl.StringVar(&f.figures, "figures", "", "figures to print, same syntax as --frames")
	fl.IntVar(&f.width, "width", 0, "image width in pixels")
	fl.IntVar(&f.height, "height", 0, "image height in pixels")
	fl.IntVarP(&f.workers, "workers", "j", 0, "frames rendered concurrently (default: one per CPU)")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the image cache")
	registerPlotCompletions(cmd)
}

// plotData runs the selected setplot and applies config and flag
// overrides. Precedence, lowest first: defaults, config file, setplot,
// flags.
func (c *CLI) plotData(f *plotFlags) (*plotdata.PlotData, error) {
	ref := c.Config.Setplot
	if f.setplot != "" {
		ref = f.setplot
	}
	fn, err := setplot.Resolve(ref)
	if err != nil {
		return nil, err
	}

	pd := plotdata.New()
	c.Config.Apply(pd)
	pd = fn(pd)

	if f.outdir != "" {
		pd.OutDir = f.outdir
	}
	if f.plotdir != "" {
		pd.PlotDir = f.plotdir
	}
	if f.format != "" {
		pd.PrintFormat = strings.ToLower(f.format)
	}
	if f.frames != "" {
		if pd.PrintFramenos, err = plotdata.ParseSelection(f.frames); err != nil {
			return nil, fmt.Errorf("--frames: %w", err)
		}
	}
	if f.figures != "" {
		if pd.PrintFignos, err = plotdata.ParseSelection(f.figures); err != nil {
			return nil, fmt.Errorf("--figures: %w", err)
		}
	}
	return pd, nil
}

// options returns the pipeline options from config and flags.
func (c *CLI) options(f *plotFlags) pipeline.Options {
	opts := c.Config.Options()
	if f.width > 0 {
		opts.Width = f.width
	}
	if f.height > 0 {
		opts.Height = f.height
	}
	if f.workers > 0 {
		opts.Workers = f.workers
	}
	return opts
}

// =============================================================================
// Plot Command
// =============================================================================

type plotOpts struct {
	plotFlags
	refresh    bool
	scale      float64
	metricsOut string
}

// plotCommand creates the plot command.
func (c *CLI) plotCommand() *cobra.Command {
	var opts plotOpts

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Run a setplot and print every selected frame",
		Long: `Run a setplot and print every selected frame.

Images are written as frameNNNNfigM.<format> into the plot directory,
followed by the HTML index pages and the LaTeX figure sheet the setplot
asks for.`,
		Example: `  clawplot plot
  clawplot plot --setplot setplot.toml --frames 0-10 --format svg
  clawplot plot --metrics-out /var/lib/node_exporter/clawplot.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlot(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached images")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "rasterize PNG output at this scale (needs rsvg-convert)")
	cmd.Flags().StringVar(&opts.metricsOut, "metrics-out", "", "write Prometheus metrics of the run to this textfile")

	return cmd
}

func (c *CLI) runPlot(ctx context.Context, w io.Writer, opts plotOpts) error {
	prog := newProgress(c.Logger)

	pd, err := c.plotData(&opts.plotFlags)
	if err != nil {
		return err
	}
	prog.step("setplot ready", "figures", len(pd.Figures()), "outdir", pd.OutDir)

	var m *metrics.Metrics
	if opts.metricsOut != "" {
		m = metrics.New()
		m.Register()
		defer observability.Reset()
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.options(&opts.plotFlags)
	popts.Refresh = opts.refresh
	popts.Scale = opts.scale

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Printing frames from %s...", pd.OutDir))
	spinner.Start()
	res, err := runner.PrintFrames(ctx, pd, popts)
	if err != nil {
		spinner.StopWithError("Printing failed")
		return explain(err)
	}
	spinner.Stop()

	if m != nil {
		if err := m.WriteTextfile(opts.metricsOut); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		c.Logger.Debug("wrote metrics", "file", opts.metricsOut)
	}

	if res.Skipped {
		newPrinter(w).warn("printfigs is off in the setplot; nothing was written")
		return nil
	}
	prog.done(fmt.Sprintf("Printed %d frames", len(res.Frames)))
	printPlotResult(newPrinter(w), pd, res)
	return nil
}

// printPlotResult summarizes a run and lists the index products.
func printPlotResult(p printer, pd *plotdata.PlotData, res *pipeline.Result) {
	p.success("Printed %s frames into %s", StyleNumber.Render(fmt.Sprint(len(res.Frames))), StyleHighlight.Render(pd.PlotDir))
	p.runStats(len(res.Frames), len(res.Figures), len(res.Files), res.CacheHits)
	for _, name := range res.Files {
		if strings.HasPrefix(name, "frame") {
			continue
		}
		p.file(name)
	}
	if pd.HTML {
		fmt.Fprintln(p.w)
		p.next("Browse the plots", appName+" serve")
	}
}

// explain adds install hints and friendlier wording for common failures.
func explain(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeFrameNotFound:
		return fmt.Errorf("%w\n\nRun the solver first, or write demo frames with: %s frames synth", err, appName)
	case errors.ErrCodeSetplotNotFound:
		return fmt.Errorf("%w\n\nList setplots with: %s describe --list", err, appName)
	}
	return err
}
