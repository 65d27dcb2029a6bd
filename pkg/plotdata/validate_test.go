package plotdata

import (
	"testing"

	"github.com/matzehuels/clawplot/pkg/errors"
)

func validPlotData() *PlotData {
	pd := New()
	ax := pd.NewPlotFigure("Density", 0).NewPlotAxes("")
	ax.Title = "Density"
	ax.NewPlotItem(PlotType1D)
	return pd
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*PlotData)
		code   errors.Code
	}{
		{"valid", func(*PlotData) {}, ""},
		{"no figures", func(pd *PlotData) { pd.ClearFigures() }, ""},
		{"slash in figure name", func(pd *PlotData) {
			fig, _ := pd.Figure(0)
			fig.Name = "Pressure/Velocity"
		}, ""},
		{"control in figure name", func(pd *PlotData) {
			fig, _ := pd.Figure(0)
			fig.Name = "Density\x07"
		}, errors.ErrCodeInvalidInput},
		{"bad format", func(pd *PlotData) { pd.PrintFormat = "gif" }, errors.ErrCodeInvalidFormat},
		{"empty plotdir", func(pd *PlotData) { pd.PlotDir = "" }, errors.ErrCodeInvalidPath},
		{"bad homelink", func(pd *PlotData) { pd.HTMLHomeLink = "javascript:alert(1)" }, errors.ErrCodeInvalidInput},
		{"figsperline", func(pd *PlotData) { pd.LaTeXFigsPerLine = 0 }, errors.ErrCodeInvalidPlotData},
		{"framesperline", func(pd *PlotData) { pd.LaTeXFramesPerLine = -1 }, errors.ErrCodeInvalidPlotData},
		{"no axes", func(pd *PlotData) { pd.NewPlotFigure("empty", 3) }, errors.ErrCodeInvalidPlotData},
		{"two axes", func(pd *PlotData) {
			fig, _ := pd.Figure(0)
			fig.NewPlotAxes("extra").NewPlotItem(PlotType1D)
		}, errors.ErrCodeUnsupported},
		{"inverted limits", func(pd *PlotData) {
			fig, _ := pd.Figure(0)
			fig.Axes()[0].YLimits = Fixed(1, 0)
		}, errors.ErrCodeInvalidPlotData},
		{"no items", func(pd *PlotData) {
			pd.NewPlotFigure("bare", 2).NewPlotAxes("")
		}, errors.ErrCodeInvalidPlotData},
		{"unknown plot type", func(pd *PlotData) {
			fig, _ := pd.Figure(0)
			fig.Axes()[0].Items()[0].PlotType = "2d_pcolor"
		}, errors.ErrCodeUnsupported},
		{"negative plot var", func(pd *PlotData) {
			fig, _ := pd.Figure(0)
			fig.Axes()[0].Items()[0].PlotVar = -1
		}, errors.ErrCodeInvalidPlotData},
		{"bad style", func(pd *PlotData) {
			fig, _ := pd.Figure(0)
			fig.Axes()[0].Items()[0].PlotStyle = "~"
		}, errors.ErrCodeInvalidStyle},
		{"bad color", func(pd *PlotData) {
			fig, _ := pd.Figure(0)
			fig.Axes()[0].Items()[0].Color = "#nothex"
		}, errors.ErrCodeInvalidStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pd := validPlotData()
			tt.modify(pd)
			err := pd.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want %s", tt.code)
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}
