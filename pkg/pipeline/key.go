package pipeline

import (
	"github.com/matzehuels/clawplot/pkg/cache"
	"github.com/matzehuels/clawplot/pkg/plotdata"
)

// figureKey is the part of a figure that changes its rendering.
type figureKey struct {
	Name string    `json:"name"`
	Axes []axesKey `json:"axes"`
}

type axesKey struct {
	Title      string     `json:"title"`
	TitleWithT bool       `json:"title_with_t"`
	XLimits    [3]float64 `json:"xlimits"`
	YLimits    [3]float64 `json:"ylimits"`
	XLabel     string     `json:"xlabel"`
	YLabel     string     `json:"ylabel"`
	Items      []itemKey  `json:"items"`
}

type itemKey struct {
	PlotType  string  `json:"type"`
	PlotVar   int     `json:"var"`
	PlotStyle string  `json:"style"`
	Color     string  `json:"color"`
	LineWidth float64 `json:"width"`
	Label     string  `json:"label"`
}

func limitsKey(l plotdata.Limits) [3]float64 {
	if l.IsAuto() {
		return [3]float64{}
	}
	return [3]float64{1, l.Min, l.Max}
}

// figureHash returns a content hash of fig, or "" when the figure cannot
// be cached because an item derives its values with a function.
func figureHash(fig *plotdata.PlotFigure) string {
	k := figureKey{Name: fig.Name}
	for _, ax := range fig.Axes() {
		ak := axesKey{
			Title:      ax.Title,
			TitleWithT: ax.TitleWithT,
			XLimits:    limitsKey(ax.XLimits),
			YLimits:    limitsKey(ax.YLimits),
			XLabel:     ax.XLabel,
			YLabel:     ax.YLabel,
		}
		for _, it := range ax.Items() {
			if it.PlotVarFunc != nil {
				return ""
			}
			ak.Items = append(ak.Items, itemKey{
				PlotType:  it.PlotType,
				PlotVar:   it.PlotVar,
				PlotStyle: it.PlotStyle,
				Color:     it.Color,
				LineWidth: it.LineWidth,
				Label:     it.Label,
			})
		}
		k.Axes = append(k.Axes, ak)
	}
	h, err := cache.HashJSON(k)
	if err != nil {
		return ""
	}
	return h
}
