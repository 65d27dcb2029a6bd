package plotdata

import (
	"fmt"

	"github.com/matzehuels/clawplot/pkg/errors"
)

// Validate checks that the configuration can be rendered.
func (pd *PlotData) Validate() error {
	if err := errors.ValidatePath(pd.OutDir); err != nil {
		return fmt.Errorf("outdir: %w", err)
	}
	if err := errors.ValidatePath(pd.PlotDir); err != nil {
		return fmt.Errorf("plotdir: %w", err)
	}
	if !ValidFormats[pd.PrintFormat] {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported print format %q (must be png, svg or pdf)", pd.PrintFormat)
	}
	if err := errors.ValidateLink(pd.HTMLHomeLink); err != nil {
		return fmt.Errorf("html homelink: %w", err)
	}
	if pd.LaTeXFigsPerLine < 1 {
		return errors.New(errors.ErrCodeInvalidPlotData, "latex figsperline must be positive, got %d", pd.LaTeXFigsPerLine)
	}
	if pd.LaTeXFramesPerLine < 1 {
		return errors.New(errors.ErrCodeInvalidPlotData, "latex framesperline must be positive, got %d", pd.LaTeXFramesPerLine)
	}

	for _, fig := range pd.Figures() {
		if err := fig.validate(); err != nil {
			return fmt.Errorf("figure %d (%s): %w", fig.FigNo, fig.Name, err)
		}
	}
	return nil
}

func (f *PlotFigure) validate() error {
	if f.FigNo < 0 {
		return errors.New(errors.ErrCodeInvalidPlotData, "figure number must not be negative")
	}
	if err := errors.ValidateLabel(f.Name); err != nil {
		return err
	}
	if f.Width < 0 || f.Height < 0 {
		return errors.New(errors.ErrCodeInvalidPlotData, "figure size must not be negative")
	}
	switch len(f.axes) {
	case 0:
		return errors.New(errors.ErrCodeInvalidPlotData, "figure has no axes")
	case 1:
	default:
		return errors.New(errors.ErrCodeUnsupported, "figure has %d axes, only one axes per figure is supported", len(f.axes))
	}
	return f.axes[0].validate()
}

func (a *PlotAxes) validate() error {
	for _, l := range []Limits{a.XLimits, a.YLimits} {
		if l.Set && !(l.Min < l.Max) {
			return errors.New(errors.ErrCodeInvalidPlotData, "limits %s must satisfy min < max", l)
		}
	}
	if len(a.items) == 0 {
		return errors.New(errors.ErrCodeInvalidPlotData, "axes %q has no plot items", a.Title)
	}
	for i, it := range a.items {
		if err := it.validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func (it *PlotItem) validate() error {
	if !ValidPlotTypes[NormalizePlotType(it.PlotType)] {
		return errors.New(errors.ErrCodeUnsupported, "unsupported plot type %q", it.PlotType)
	}
	if it.PlotVarFunc == nil && it.PlotVar < 0 {
		return errors.New(errors.ErrCodeInvalidPlotData, "plot_var must not be negative, got %d", it.PlotVar)
	}
	if it.LineWidth < 0 {
		return errors.New(errors.ErrCodeInvalidPlotData, "line width must not be negative")
	}
	if _, err := ParseLineStyle(it.PlotStyle); err != nil {
		return err
	}
	if _, err := ParseColor(it.Color); err != nil {
		return err
	}
	return nil
}
