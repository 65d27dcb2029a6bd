package plotdata

import (
	"fmt"
	"sort"
)

// Image formats accepted for PrintFormat.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported print formats.
var ValidFormats = map[string]bool{
	FormatPNG: true,
	FormatSVG: true,
	FormatPDF: true,
}

// Default directories, relative to the working directory.
const (
	DefaultOutDir  = "_output"
	DefaultPlotDir = "_plots"
)

// PlotData is the root of a plot configuration.
type PlotData struct {
	OutDir  string // directory holding fort.t/fort.q frames
	PlotDir string // directory receiving images, HTML and LaTeX

	PrintFigs     bool      // write image files at all
	PrintFormat   string    // png, svg or pdf
	PrintFramenos Selection // frames to print
	PrintFignos   Selection // figures to print

	HTML         bool   // generate HTML index pages
	HTMLHomeLink string // link placed at the top of the index page

	LaTeX              bool // generate a LaTeX figure sheet
	LaTeXFigsPerLine   int  // figures per line in per-frame layout
	LaTeXFramesPerLine int  // frames per line in per-figure layout
	LaTeXMakePDF       bool // run pdflatex on the sheet

	figures  map[int]*PlotFigure
	replaced []int
}

// New returns a PlotData with default settings and no figures.
func New() *PlotData {
	return &PlotData{
		OutDir:             DefaultOutDir,
		PlotDir:            DefaultPlotDir,
		PrintFormat:        FormatPNG,
		PrintFramenos:      SelectAll(),
		PrintFignos:        SelectAll(),
		LaTeXFigsPerLine:   2,
		LaTeXFramesPerLine: 1,
		figures:            make(map[int]*PlotFigure),
	}
}

// ClearFigures removes all figures, axes and items.
func (pd *PlotData) ClearFigures() {
	pd.figures = make(map[int]*PlotFigure)
	pd.replaced = nil
}

// NewPlotFigure creates a figure and registers it under figno. A figure
// already registered under the same number is replaced; Replaced reports
// such numbers. An empty name becomes "FIG<figno>".
func (pd *PlotData) NewPlotFigure(name string, figno int) *PlotFigure {
	if pd.figures == nil {
		pd.figures = make(map[int]*PlotFigure)
	}
	if name == "" {
		name = fmt.Sprintf("FIG%d", figno)
	}
	if _, ok := pd.figures[figno]; ok {
		pd.replaced = append(pd.replaced, figno)
	}
	fig := &PlotFigure{Name: name, FigNo: figno}
	pd.figures[figno] = fig
	return fig
}

// Figures returns all figures ordered by figure number.
func (pd *PlotData) Figures() []*PlotFigure {
	figs := make([]*PlotFigure, 0, len(pd.figures))
	for _, f := range pd.figures {
		figs = append(figs, f)
	}
	sort.Slice(figs, func(i, j int) bool { return figs[i].FigNo < figs[j].FigNo })
	return figs
}

// Figure returns the figure registered under figno.
func (pd *PlotData) Figure(figno int) (*PlotFigure, bool) {
	f, ok := pd.figures[figno]
	return f, ok
}

// FigNos returns the sorted figure numbers.
func (pd *PlotData) FigNos() []int {
	nums := make([]int, 0, len(pd.figures))
	for n := range pd.figures {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Replaced returns the figure numbers that were registered more than once
// since the last ClearFigures.
func (pd *PlotData) Replaced() []int {
	return pd.replaced
}

// PrintFigures returns the figures selected by PrintFignos.
func (pd *PlotData) PrintFigures() []*PlotFigure {
	var out []*PlotFigure
	for _, f := range pd.Figures() {
		if pd.PrintFignos.Contains(f.FigNo) {
			out = append(out, f)
		}
	}
	return out
}
