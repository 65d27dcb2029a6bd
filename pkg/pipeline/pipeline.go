// Package pipeline turns solver frames into hardcopy plots.
//
// This package implements printframes: it reads the frames selected by a
// [plotdata.PlotData], renders every selected figure for each of them and
// writes the products into the plot directory. The CLI, the watch loop and
// the plot server all go through the same [Runner].
//
// # Stages
//
//  1. Read: load fort.tNNNN / fort.qNNNN for each selected frame
//  2. Render: draw each selected figure (cached by content hash)
//  3. Write: store frameNNNNfigM.<format> atomically in PlotDir
//  4. Index: HTML pages and a LaTeX sheet, optionally compiled to PDF
//
// Frames are processed concurrently with a bounded number of workers.
//
// # Usage
//
//	pd := setplot.Euler(plotdata.New())
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.PrintFrames(ctx, pd, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(result.Files), "files written")
package pipeline

import (
	"fmt"
	"runtime"
	"time"

	"github.com/matzehuels/clawplot/pkg/errors"
	"github.com/matzehuels/clawplot/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default image width in pixels.
	DefaultWidth = render.DefaultWidth

	// DefaultHeight is the default image height in pixels.
	DefaultHeight = render.DefaultHeight

	// MaxWorkers bounds the number of frames processed concurrently.
	MaxWorkers = 64
)

// Product file names inside PlotDir.
const (
	IndexFile = "_PlotIndex.html"
	LaTeXFile = "plots.tex"
	PDFFile   = "plots.pdf"
)

// Product kinds reported to observability hooks.
const (
	KindImage = "image"
	KindHTML  = "html"
	KindLaTeX = "latex"
	KindPDF   = "pdf"
)

// DefaultWorkers returns the default worker count: one per CPU, at most
// MaxWorkers.
func DefaultWorkers() int {
	return min(runtime.NumCPU(), MaxWorkers)
}

// ImageName returns the file name of figure figno for frame frameno.
func ImageName(frameno, figno int, format string) string {
	return fmt.Sprintf("frame%04dfig%d.%s", frameno, figno, format)
}

// FramePage returns the HTML page showing every figure of frame frameno.
func FramePage(frameno int) string {
	return fmt.Sprintf("frame%04d.html", frameno)
}

// FigurePage returns the HTML page showing figure figno for every frame.
func FigurePage(figno int) string {
	return fmt.Sprintf("allframes_fig%d.html", figno)
}

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options configures a PrintFrames run. The zero value is usable.
type Options struct {
	// Width and Height are the image size for figures that do not set
	// their own.
	Width  int
	Height int

	// Scale above 1 rasterizes PNG output at a higher resolution.
	Scale float64

	// Workers is the number of frames processed concurrently.
	Workers int

	// Only restricts rendering to these frame numbers. Index pages still
	// list every selected frame. Nil renders all selected frames.
	Only []int

	// Refresh ignores cached images but still stores new ones.
	Refresh bool
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers()
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "image size must not be negative, got %dx%d", o.Width, o.Height)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative, got %g", o.Scale)
	}
	if o.Workers < 0 || o.Workers > MaxWorkers {
		return errors.New(errors.ErrCodeInvalidInput, "workers must be between 1 and %d, got %d", MaxWorkers, o.Workers)
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result describes a PrintFrames run.
type Result struct {
	// RunID identifies the run in logs and API responses.
	RunID string

	// Skipped is true when PrintFigs was off and nothing was written.
	Skipped bool

	// Frames are the frame numbers rendered in this run.
	Frames []int

	// Figures are the figure numbers rendered for each frame.
	Figures []int

	// Times maps every indexed frame number to its solution time.
	Times map[int]float64

	// Files are the written paths relative to PlotDir, sorted.
	Files []string

	// CacheHits counts images taken from the cache.
	CacheHits int

	Stats Stats
}

// Stats contains run timing information.
type Stats struct {
	ReadTime   time.Duration // summed over frames
	RenderTime time.Duration // summed over figures
	IndexTime  time.Duration // HTML, LaTeX and PDF
	Duration   time.Duration // wall clock
	Cells      int           // cells read over all frames
}
