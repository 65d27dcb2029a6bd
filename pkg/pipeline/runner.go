package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/clawplot/pkg/cache"
	"github.com/matzehuels/clawplot/pkg/errors"
	"github.com/matzehuels/clawplot/pkg/frame"
	"github.com/matzehuels/clawplot/pkg/observability"
	"github.com/matzehuels/clawplot/pkg/plotdata"
	"github.com/matzehuels/clawplot/pkg/render"
)

// Runner executes PrintFrames with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can use the same Runner with different PlotData.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached images.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// PrintFrames renders the frames and figures selected by pd into
// pd.PlotDir and writes the HTML and LaTeX products it asks for.
func (r *Runner) PrintFrames(ctx context.Context, pd *plotdata.PlotData, opts Options) (res *Result, err error) {
	start := time.Now()
	res = &Result{RunID: uuid.NewString(), Times: make(map[int]float64)}
	defer func() {
		res.Stats.Duration = time.Since(start)
		observability.Pipeline().OnRunComplete(ctx, len(res.Frames), len(res.Files), res.Stats.Duration, err)
	}()

	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return res, err
	}
	if err := pd.Validate(); err != nil {
		return res, fmt.Errorf("invalid plot data: %w", err)
	}
	for _, n := range pd.Replaced() {
		r.Logger.Warn("figure number registered twice; keeping the last one", "figno", n)
	}

	if !pd.PrintFigs {
		r.Logger.Info("printfigs is off; nothing written", "run", res.RunID)
		res.Skipped = true
		return res, nil
	}
	if pd.LaTeXMakePDF && pd.PrintFormat == plotdata.FormatSVG {
		return res, errors.New(errors.ErrCodeInvalidPlotData, "pdflatex cannot include svg images; use png or pdf with makepdf")
	}

	frames, err := r.selectFrames(pd, opts.Only)
	if err != nil {
		return res, err
	}
	figs := pd.PrintFigures()
	if len(figs) == 0 {
		return res, errors.New(errors.ErrCodeFigureNotFound, "no figures selected (fignos %s, defined %v)", pd.PrintFignos, pd.FigNos())
	}
	for _, fig := range figs {
		res.Figures = append(res.Figures, fig.FigNo)
	}

	if err := os.MkdirAll(pd.PlotDir, 0755); err != nil {
		return res, errors.Wrap(errors.ErrCodeInvalidPath, err, "create plot directory %s", pd.PlotDir)
	}

	toRender := frames
	if opts.Only != nil {
		toRender = plotdata.Select(opts.Only...).Filter(frames)
	}

	r.Logger.Debug("printing frames",
		"run", res.RunID,
		"frames", len(toRender),
		"figures", len(figs),
		"format", pd.PrintFormat,
		"workers", opts.Workers)

	if err := r.renderFrames(ctx, pd, figs, toRender, opts, res); err != nil {
		return res, err
	}

	// Index pages cover every selected frame, rendered now or earlier.
	for _, n := range frames {
		if _, ok := res.Times[n]; ok {
			continue
		}
		if t, err := readTime(pd.OutDir, n); err == nil {
			res.Times[n] = t
		}
	}

	indexStart := time.Now()
	if pd.HTML {
		files, err := r.writeHTML(ctx, pd, figs, frames, res.Times)
		if err != nil {
			return res, fmt.Errorf("html: %w", err)
		}
		res.Files = append(res.Files, files...)
	}
	if pd.LaTeX {
		files, err := r.writeLaTeX(ctx, pd, figs, frames, res.Times)
		if err != nil {
			return res, fmt.Errorf("latex: %w", err)
		}
		res.Files = append(res.Files, files...)
	}
	res.Stats.IndexTime = time.Since(indexStart)

	sort.Strings(res.Files)
	r.Logger.Info("printed frames",
		"run", res.RunID,
		"frames", len(res.Frames),
		"files", len(res.Files),
		"cached", res.CacheHits,
		"duration", time.Since(start).Round(time.Millisecond))
	return res, nil
}

// selectFrames returns the frames present in OutDir that pd selects. Every
// frame in only must exist in OutDir, selected or not.
func (r *Runner) selectFrames(pd *plotdata.PlotData, only []int) ([]int, error) {
	available, err := frame.List(pd.OutDir)
	if err != nil {
		return nil, err
	}
	have := plotdata.Select(available...)
	for _, n := range only {
		if !have.Contains(n) {
			return nil, errors.New(errors.ErrCodeFrameNotFound, "frame %d not found in %s", n, pd.OutDir)
		}
	}
	frames := pd.PrintFramenos.Filter(available)
	if !pd.PrintFramenos.All {
		for _, n := range pd.PrintFramenos.Items {
			if !have.Contains(n) {
				r.Logger.Warn("selected frame not found", "frame", n, "dir", pd.OutDir)
			}
		}
	}
	if len(frames) == 0 {
		return nil, errors.New(errors.ErrCodeFrameNotFound, "no selected frames in %s (framenos %s)", pd.OutDir, pd.PrintFramenos)
	}
	return frames, nil
}

// renderFrames processes frames concurrently and records results in res.
func (r *Runner) renderFrames(ctx context.Context, pd *plotdata.PlotData, figs []*plotdata.PlotFigure, frames []int, opts Options, res *Result) error {
	figHashes := make(map[int]string, len(figs))
	for _, fig := range figs {
		figHashes[fig.FigNo] = figureHash(fig)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for _, n := range frames {
		g.Go(func() error {
			out, err := r.printFrame(gctx, pd, figs, figHashes, n, opts)
			if err != nil {
				return fmt.Errorf("frame %d: %w", n, err)
			}
			mu.Lock()
			defer mu.Unlock()
			res.Frames = append(res.Frames, n)
			res.Times[n] = out.time
			res.Files = append(res.Files, out.files...)
			res.CacheHits += out.hits
			res.Stats.ReadTime += out.readTime
			res.Stats.RenderTime += out.renderTime
			res.Stats.Cells += out.cells
			return nil
		})
	}
	err := g.Wait()
	sort.Ints(res.Frames)
	return err
}

type frameOutput struct {
	time       float64
	files      []string
	hits       int
	cells      int
	readTime   time.Duration
	renderTime time.Duration
}

// printFrame renders every figure of one frame. The frame data is only
// parsed when at least one figure misses the cache.
func (r *Runner) printFrame(ctx context.Context, pd *plotdata.PlotData, figs []*plotdata.PlotFigure, figHashes map[int]string, n int, opts Options) (*frameOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := &frameOutput{}

	readStart := time.Now()
	tdata, qdata, err := frame.ReadFiles(pd.OutDir, n)
	if err != nil {
		observability.Pipeline().OnFrameRead(ctx, n, 0, time.Since(readStart), err)
		return nil, err
	}
	hdr, err := frame.ParseHeader(bytes.NewReader(tdata))
	if err != nil {
		observability.Pipeline().OnFrameRead(ctx, n, 0, time.Since(readStart), err)
		return nil, err
	}
	out.time = hdr.Time
	frameHash := cache.Hash(tdata, qdata)

	var f *frame.Frame
	load := func() (*frame.Frame, error) {
		if f != nil {
			return f, nil
		}
		parsed, err := frame.Parse(n, bytes.NewReader(tdata), bytes.NewReader(qdata))
		out.readTime += time.Since(readStart)
		if err != nil {
			observability.Pipeline().OnFrameRead(ctx, n, 0, out.readTime, err)
			return nil, err
		}
		observability.Pipeline().OnFrameRead(ctx, n, parsed.Cells(), out.readTime, nil)
		out.cells = parsed.Cells()
		f = parsed
		return f, nil
	}

	for _, fig := range figs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		width, height := opts.Width, opts.Height
		if fig.Width > 0 {
			width = fig.Width
		}
		if fig.Height > 0 {
			height = fig.Height
		}

		var key string
		if figHashes[fig.FigNo] != "" {
			key = r.Keyer.ArtifactKey(frameHash, cache.ArtifactKeyOpts{
				FigureHash: figHashes[fig.FigNo],
				Format:     pd.PrintFormat,
				Width:      width,
				Height:     height,
				Scale:      opts.Scale,
			})
		}

		img, hit := r.cached(ctx, key, opts.Refresh)
		if hit {
			out.hits++
		} else {
			fr, err := load()
			if err != nil {
				return nil, err
			}
			renderStart := time.Now()
			img, err = render.RenderFigure(fig, fr,
				render.WithFormat(pd.PrintFormat),
				render.WithSize(width, height),
				render.WithScale(opts.Scale))
			elapsed := time.Since(renderStart)
			observability.Pipeline().OnFigureRendered(ctx, fig.FigNo, pd.PrintFormat, elapsed, err)
			if err != nil {
				return nil, fmt.Errorf("figure %d: %w", fig.FigNo, err)
			}
			out.renderTime += elapsed
			r.store(ctx, key, img)
		}

		name := ImageName(n, fig.FigNo, pd.PrintFormat)
		if err := r.writeProduct(ctx, pd.PlotDir, name, KindImage, img); err != nil {
			return nil, err
		}
		out.files = append(out.files, name)
		r.Logger.Debug("wrote figure", "frame", n, "figno", fig.FigNo, "file", name, "cached", hit)
	}
	return out, nil
}

// cached looks up key. An empty key or refresh always misses.
func (r *Runner) cached(ctx context.Context, key string, refresh bool) ([]byte, bool) {
	if key == "" || refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return data, true
}

func (r *Runner) store(ctx context.Context, key string, data []byte) {
	if key == "" {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}

// readTime returns the solution time of frame n from its header.
func readTime(dir string, n int) (float64, error) {
	hdr, err := frame.ReadHeader(dir, n)
	if err != nil {
		return 0, err
	}
	return hdr.Time, nil
}
