package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clawplot/pkg/frame"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags    plotFlags
		debounce time.Duration
		skipInit bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render frames while the solver writes them",
		Long: `Watch the output directory and print every frame as soon as the solver
has written both of its files. Index pages are rewritten after each frame,
so a browser on "clawplot serve" follows the run. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			p := newPrinter(cmd.OutOrStdout())

			pd, err := c.plotData(&flags)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			opts := c.options(&flags)

			if !skipInit {
				if nums, _ := frame.List(pd.OutDir); len(nums) > 0 {
					res, err := runner.PrintFrames(ctx, pd, opts)
					if err != nil {
						return explain(err)
					}
					p.runStats(len(res.Frames), len(res.Figures), len(res.Files), res.CacheHits)
				}
			}

			w := frame.NewWatcher(pd.OutDir, debounce)
			w.OnError = func(err error) { logger.Warn("watcher", "err", err) }
			p.info("Watching %s (Ctrl-C to stop)", StyleHighlight.Render(pd.OutDir))

			return w.Watch(ctx, func(n int) {
				frameOpts := opts
				frameOpts.Only = []int{n}
				res, err := runner.PrintFrames(ctx, pd, frameOpts)
				if err != nil {
					logger.Error("print frame", "frame", n, "err", err)
					return
				}
				if len(res.Frames) == 0 {
					logger.Debug("frame not selected", "frame", n)
					return
				}
				p.success("Frame %d at time t = %s", n, formatFloat(res.Times[n]))
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", frame.DefaultDebounce, "quiet period before a written frame is printed")
	cmd.Flags().BoolVar(&skipInit, "no-initial", false, "do not print existing frames on start")
	return cmd
}
