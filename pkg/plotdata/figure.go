package plotdata

import "github.com/matzehuels/clawplot/pkg/frame"

// PlotType1D draws q against cell centers as a line or markers.
const PlotType1D = "1d_plot"

// ValidPlotTypes is the set of supported item plot types.
var ValidPlotTypes = map[string]bool{
	PlotType1D: true,
}

// plotTypeAliases maps short spellings to their canonical plot type.
var plotTypeAliases = map[string]string{
	"1d": PlotType1D,
}

// NormalizePlotType returns the canonical name of plotType. Unknown types
// are returned unchanged.
func NormalizePlotType(plotType string) string {
	if canon, ok := plotTypeAliases[plotType]; ok {
		return canon
	}
	return plotType
}

// DefaultAxesCmd places a single axes over the whole figure.
const DefaultAxesCmd = "subplot(111)"

// PlotFigure is one output image per frame.
type PlotFigure struct {
	Name  string
	FigNo int

	// Width and Height in pixels. Zero leaves the choice to the renderer.
	Width  int
	Height int

	axes []*PlotAxes
}

// NewPlotAxes appends an axes region to the figure.
func (f *PlotFigure) NewPlotAxes(name string) *PlotAxes {
	ax := &PlotAxes{
		Name:       name,
		AxesCmd:    DefaultAxesCmd,
		TitleWithT: true,
	}
	f.axes = append(f.axes, ax)
	return ax
}

// Axes returns the axes in creation order.
func (f *PlotFigure) Axes() []*PlotAxes {
	return f.axes
}

// PlotAxes is a plotting region within a figure.
type PlotAxes struct {
	Name    string
	AxesCmd string

	Title      string
	TitleWithT bool // append " at time t = ..." to the title

	XLimits Limits
	YLimits Limits
	XLabel  string
	YLabel  string

	items []*PlotItem
}

// NewPlotItem appends a data series of the given type to the axes. "1d" is
// accepted for "1d_plot".
func (a *PlotAxes) NewPlotItem(plotType string) *PlotItem {
	it := &PlotItem{
		PlotType:  NormalizePlotType(plotType),
		PlotStyle: "-",
		Color:     "b",
		LineWidth: 1.5,
	}
	a.items = append(a.items, it)
	return it
}

// Items returns the items in creation order.
func (a *PlotAxes) Items() []*PlotItem {
	return a.items
}

// PlotItem is one rendered data series.
type PlotItem struct {
	PlotType string

	// PlotVar selects component q[PlotVar]. PlotVarFunc, when set, takes
	// precedence and derives the values from each patch.
	PlotVar     int
	PlotVarFunc func(*frame.Patch) ([]float64, error)

	PlotStyle string  // matplotlib-like format: "-", "--", ":", "-.", "o", "-o", "x", "."
	Color     string  // single letter (b g r c m y k w) or #rrggbb
	LineWidth float64 // stroke width in pixels
	Label     string
}
