// Package plotdata holds the plot configuration that a setplot function
// fills in before frames are rendered.
//
// # Structure
//
// A [PlotData] owns figures keyed by figure number. Each [PlotFigure] owns
// one or more [PlotAxes], and each axes owns [PlotItem]s, the individual
// data series:
//
//	PlotData
//	 ├── PlotFigure "Density" (figno 0)
//	 │    └── PlotAxes "subplot(111)", title "Density"
//	 │         └── PlotItem 1d_plot, q[0], "-", "b"
//	 └── PlotFigure "Energy" (figno 1)
//	      └── ...
//
// Besides figures, PlotData carries the hardcopy flags: which frames and
// figures to print, the image format, and whether HTML pages and a LaTeX
// figure sheet are generated.
//
// # Building a Configuration
//
//	pd := plotdata.New()
//	pd.ClearFigures()
//	fig := pd.NewPlotFigure("Density", 0)
//	ax := fig.NewPlotAxes("")
//	ax.Title = "Density"
//	item := ax.NewPlotItem(plotdata.PlotType1D)
//	item.PlotVar = 0
//
// A configuration can also be described declaratively in TOML and loaded
// with [LoadTOML]; [WriteTOML] produces the same format.
package plotdata
