package plotdata_test

import (
	"fmt"

	"github.com/matzehuels/clawplot/pkg/plotdata"
)

func ExamplePlotData_NewPlotFigure() {
	pd := plotdata.New()
	fig := pd.NewPlotFigure("Pressure", 3)
	ax := fig.NewPlotAxes("")
	ax.Title = "Pressure"
	ax.YLimits = plotdata.Fixed(0, 1.2)
	item := ax.NewPlotItem(plotdata.PlotType1D)
	item.PlotVar = 2
	item.PlotStyle = "-o"

	for _, f := range pd.Figures() {
		fmt.Println(f.FigNo, f.Name, f.Axes()[0].YLimits)
	}
	// Output:
	// 3 Pressure [0, 1.2]
}

func ExampleParseSelection() {
	sel, _ := plotdata.ParseSelection("0,3-5")
	fmt.Println(sel, sel.Contains(4), sel.Contains(1))
	// Output:
	// 0,3,4,5 true false
}
