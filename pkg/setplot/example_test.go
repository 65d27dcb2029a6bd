package setplot_test

import (
	"fmt"

	"github.com/matzehuels/clawplot/pkg/plotdata"
	"github.com/matzehuels/clawplot/pkg/setplot"
)

func ExampleEuler() {
	pd := setplot.Euler(plotdata.New())
	for _, fig := range pd.Figures() {
		item := fig.Axes()[0].Items()[0]
		fmt.Printf("%d %s q[%d] %s%s\n", fig.FigNo, fig.Name, item.PlotVar, item.Color, item.PlotStyle)
	}
	fmt.Println(pd.PrintFormat, pd.HTMLHomeLink, pd.LaTeXFigsPerLine, pd.LaTeXFramesPerLine, pd.LaTeXMakePDF)
	// Output:
	// 0 Density q[0] b-
	// 1 Energy q[2] b-
	// png ../README.html 2 1 false
}
