package render

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/clawplot/pkg/plotdata"
)

// Dash patterns in units of the line width.
var dashArrays = map[plotdata.Dash][]float64{
	plotdata.DashDashed:  {5, 3},
	plotdata.DashDotted:  {1, 2},
	plotdata.DashDashDot: {5, 2, 1, 2},
}

// Dot diameters in pixels per marker kind.
var dotWidths = map[plotdata.Marker]float64{
	plotdata.MarkerCircle: 4,
	plotdata.MarkerPoint:  2,
	plotdata.MarkerCross:  3,
	plotdata.MarkerPlus:   3,
	plotdata.MarkerSquare: 3.5,
}

// SeriesStyle converts the style and color of a plot item into a
// go-chart style.
func SeriesStyle(it *plotdata.PlotItem) (chart.Style, error) {
	ls, err := plotdata.ParseLineStyle(it.PlotStyle)
	if err != nil {
		return chart.Style{}, err
	}
	rgb, err := plotdata.ParseColor(it.Color)
	if err != nil {
		return chart.Style{}, err
	}
	col := drawing.Color{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}

	width := it.LineWidth
	if width <= 0 {
		width = 1
	}
	st := chart.Style{
		StrokeColor: col,
		StrokeWidth: width,
	}
	switch ls.Dash {
	case plotdata.DashNone:
		st.StrokeColor = drawing.ColorTransparent
	case plotdata.DashSolid:
	default:
		for _, d := range dashArrays[ls.Dash] {
			st.StrokeDashArray = append(st.StrokeDashArray, d*width)
		}
	}
	if ls.Marker != plotdata.MarkerNone {
		st.DotColor = col
		st.DotWidth = dotWidths[ls.Marker]
	}
	return st, nil
}
