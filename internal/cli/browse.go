package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clawplot/pkg/pipeline"
	"github.com/matzehuels/clawplot/pkg/plotdata"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var flags plotFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a frame interactively and render it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := newPrinter(cmd.OutOrStdout())
			pd, err := c.plotData(&flags)
			if err != nil {
				return err
			}
			rows, err := c.readFrameRows(pd.OutDir)
			if err != nil {
				return explain(err)
			}
			if len(rows) == 0 {
				p.info("No frames in %s", pd.OutDir)
				return nil
			}

			model := NewFrameListModel(rows, renderedFrames(pd, rows))
			final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			picked := final.(FrameListModel).Selected
			if picked == nil {
				return nil
			}

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := c.options(&flags)
			opts.Only = []int{picked.Number}
			res, err := runner.PrintFrames(ctx, pd, opts)
			if err != nil {
				return explain(err)
			}
			p.success("Rendered frame %d at time t = %s", picked.Number, formatFloat(picked.Time))
			for _, fig := range res.Figures {
				p.file(filepath.Join(pd.PlotDir, pipeline.ImageName(picked.Number, fig, pd.PrintFormat)))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// renderedFrames reports which frames already have every selected figure
// in the plot directory.
func renderedFrames(pd *plotdata.PlotData, rows []frameRow) map[int]bool {
	figs := pd.PrintFigures()
	done := make(map[int]bool, len(rows))
	for _, r := range rows {
		all := len(figs) > 0
		for _, fig := range figs {
			if _, err := os.Stat(filepath.Join(pd.PlotDir, pipeline.ImageName(r.Number, fig.FigNo, pd.PrintFormat))); err != nil {
				all = false
				break
			}
		}
		done[r.Number] = all
	}
	return done
}
