// Package setplot holds setplot functions: callbacks that fill a
// [plotdata.PlotData] with the figures to draw and the hardcopy products
// to write.
//
// A setplot function clears any previous figures, declares its figures,
// axes and items, sets the export flags and returns the same PlotData.
// [Euler] is the setplot of the 1D Euler shock-tube solver. Functions are
// looked up by name through a registry so the CLI can select one with
// --setplot; a path to a setplot TOML file works too (see [FromFile]).
//
// # Usage
//
//	pd := setplot.Euler(plotdata.New())
//	for _, fig := range pd.Figures() {
//	    fmt.Println(fig.FigNo, fig.Name)
//	}
package setplot
