package cli

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clawplot/internal/metrics"
	"github.com/matzehuels/clawplot/internal/server"
	"github.com/matzehuels/clawplot/pkg/observability"
	"github.com/matzehuels/clawplot/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags       plotFlags
		addr        string
		withMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plot directory and a frames API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			p := newPrinter(cmd.OutOrStdout())

			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			pd, err := c.plotData(&flags)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(pd.PlotDir, 0755); err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			// PlotData is not safe for concurrent runs.
			var mu sync.Mutex
			opts := c.options(&flags)
			render := func(ctx context.Context, n int) (*pipeline.Result, error) {
				mu.Lock()
				defer mu.Unlock()
				o := opts
				o.Only = []int{n}
				return runner.PrintFrames(ctx, pd, o)
			}

			var metricsHandler http.Handler
			if withMetrics || c.Config.Serve.Metrics {
				m := metrics.New()
				m.Register()
				defer observability.Reset()
				metricsHandler = m.Handler()
			}

			srv := server.New(server.Options{
				PlotDir: pd.PlotDir,
				OutDir:  pd.OutDir,
				Metrics: metricsHandler,
				Render:  render,
			}, logger)

			p.info("Serving %s at %s", StyleHighlight.Render(pd.PlotDir), StyleLink.Render(serveURL(addr)))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+`"localhost:8080"`+")")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "expose Prometheus metrics at /metrics")
	return cmd
}

// serveURL turns a listen address into a browsable URL.
func serveURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/"
}
