package render

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/matzehuels/clawplot/pkg/errors"
	"github.com/matzehuels/clawplot/pkg/frame"
	"github.com/matzehuels/clawplot/pkg/plotdata"
)

// Default image size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Option configures RenderFigure.
type Option func(*renderer)

type renderer struct {
	width, height int
	format        string
	scale         float64
}

// WithSize sets the image size used when the figure does not set its own.
func WithSize(width, height int) Option {
	return func(r *renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// WithFormat selects png, svg or pdf output. The default is png.
func WithFormat(format string) Option { return func(r *renderer) { r.format = format } }

// WithScale renders PNG output at scale times the nominal resolution via
// rsvg-convert. Scales at or below 1 use the native PNG renderer.
func WithScale(scale float64) Option { return func(r *renderer) { r.scale = scale } }

func newRenderer(opts ...Option) renderer {
	r := renderer{
		width:  DefaultWidth,
		height: DefaultHeight,
		format: plotdata.FormatPNG,
		scale:  1,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Title returns the title drawn for axes at time t.
func Title(ax *plotdata.PlotAxes, t float64) string {
	if !ax.TitleWithT {
		return ax.Title
	}
	return ax.Title + " at time t = " + strconv.FormatFloat(t, 'g', 6, 64)
}

// RenderFigure draws the first axes of fig with the data of f.
func RenderFigure(fig *plotdata.PlotFigure, f *frame.Frame, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	if !plotdata.ValidFormats[r.format] {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", r.format)
	}
	if fig.Width > 0 {
		r.width = fig.Width
	}
	if fig.Height > 0 {
		r.height = fig.Height
	}

	ch, err := buildChart(fig, f, r)
	if err != nil {
		return nil, err
	}

	switch {
	case r.format == plotdata.FormatPNG && r.scale <= 1:
		return draw(ch, chart.PNG)
	case r.format == plotdata.FormatPNG:
		svg, err := draw(ch, chart.SVG)
		if err != nil {
			return nil, err
		}
		return ToPNG(svg, r.scale)
	case r.format == plotdata.FormatSVG:
		return draw(ch, chart.SVG)
	default:
		svg, err := draw(ch, chart.SVG)
		if err != nil {
			return nil, err
		}
		return ToPDF(svg)
	}
}

func draw(ch *chart.Chart, provider chart.RendererProvider) ([]byte, error) {
	var buf bytes.Buffer
	if err := ch.Render(provider, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "draw chart")
	}
	return buf.Bytes(), nil
}

func buildChart(fig *plotdata.PlotFigure, f *frame.Frame, r renderer) (*chart.Chart, error) {
	axes := fig.Axes()
	if len(axes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPlotData, "figure %d (%s) has no axes", fig.FigNo, fig.Name)
	}
	ax := axes[0]
	if len(ax.Items()) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPlotData, "figure %d (%s) has no plot items", fig.FigNo, fig.Name)
	}

	var (
		series     []chart.Series
		allX, allY []float64
		legend     bool
	)
	for i, it := range ax.Items() {
		xs, ys, err := itemData(it, f)
		if err != nil {
			return nil, fmt.Errorf("figure %d item %d: %w", fig.FigNo, i, err)
		}
		if len(xs) == 0 {
			continue
		}
		st, err := SeriesStyle(it)
		if err != nil {
			return nil, fmt.Errorf("figure %d item %d: %w", fig.FigNo, i, err)
		}
		if it.Label != "" {
			legend = true
		}
		series = append(series, chart.ContinuousSeries{
			Name:    it.Label,
			XValues: xs,
			YValues: ys,
			Style:   st,
		})
		allX = append(allX, xs...)
		allY = append(allY, ys...)
	}
	if len(series) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFrame, "frame %d has no finite data for figure %d", f.Number, fig.FigNo)
	}

	xlo, xhi, _ := AutoRange(allX, ax.XLimits)
	ylo, yhi, _ := AutoRange(allY, ax.YLimits)

	ch := &chart.Chart{
		Title:      Title(ax, f.Time),
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}},
		XAxis:      chart.XAxis{Name: ax.XLabel, Range: &chart.ContinuousRange{Min: xlo, Max: xhi}},
		YAxis:      chart.YAxis{Name: ax.YLabel, Range: &chart.ContinuousRange{Min: ylo, Max: yhi}},
		Series:     series,
	}
	if legend {
		ch.Elements = []chart.Renderable{chart.Legend(ch)}
	}
	return ch, nil
}

// itemData returns the finite (x, y) pairs of an item.
func itemData(it *plotdata.PlotItem, f *frame.Frame) (xs, ys []float64, err error) {
	var x, y []float64
	if it.PlotVarFunc != nil {
		x, y, err = f.SeriesFunc(it.PlotVarFunc)
	} else {
		x, y, err = f.Series(it.PlotVar)
	}
	if err != nil {
		return nil, nil, err
	}
	for i := range x {
		if math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys, nil
}
