package setplot

import "github.com/matzehuels/clawplot/pkg/plotdata"

// Euler configures a density plot (q[0]) as figure 0 and an energy plot
// (q[2]) as figure 1, then enables PNG hardcopy of every frame with HTML
// index pages and a LaTeX sheet.
func Euler(pd *plotdata.PlotData) *plotdata.PlotData {
	pd.ClearFigures()

	density := pd.NewPlotFigure("Density", 0)
	ax := density.NewPlotAxes("")
	ax.AxesCmd = "subplot(111)"
	ax.XLimits = plotdata.Auto
	ax.YLimits = plotdata.Auto
	ax.Title = "Density"
	item := ax.NewPlotItem(plotdata.PlotType1D)
	item.PlotVar = 0
	item.PlotStyle = "-"
	item.Color = "b"

	energy := pd.NewPlotFigure("Energy", 1)
	ax = energy.NewPlotAxes("")
	ax.AxesCmd = "subplot(111)"
	ax.XLimits = plotdata.Auto
	ax.YLimits = plotdata.Auto
	ax.Title = "Energy"
	item = ax.NewPlotItem(plotdata.PlotType1D)
	item.PlotVar = 2
	item.PlotStyle = "-"
	item.Color = "b"

	pd.PrintFigs = true
	pd.PrintFormat = plotdata.FormatPNG
	pd.PrintFramenos = plotdata.SelectAll()
	pd.PrintFignos = plotdata.SelectAll()
	pd.HTML = true
	pd.HTMLHomeLink = "../README.html"
	pd.LaTeX = true
	pd.LaTeXFigsPerLine = 2
	pd.LaTeXFramesPerLine = 1
	pd.LaTeXMakePDF = false

	return pd
}
