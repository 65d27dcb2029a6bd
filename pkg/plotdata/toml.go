package plotdata

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/clawplot/pkg/errors"
)

// document mirrors the TOML layout of a setplot file.
type document struct {
	OutDir  string          `toml:"outdir,omitempty"`
	PlotDir string          `toml:"plotdir,omitempty"`
	Print   *printSection   `toml:"print,omitempty"`
	HTML    *htmlSection    `toml:"html,omitempty"`
	LaTeX   *latexSection   `toml:"latex,omitempty"`
	Figures []figureSection `toml:"figure"`
}

type printSection struct {
	Figs     *bool  `toml:"figs,omitempty"`
	Format   string `toml:"format,omitempty"`
	Framenos any    `toml:"framenos,omitempty"`
	Fignos   any    `toml:"fignos,omitempty"`
}

type htmlSection struct {
	Enabled  *bool  `toml:"enabled,omitempty"`
	HomeLink string `toml:"homelink,omitempty"`
}

type latexSection struct {
	Enabled       *bool `toml:"enabled,omitempty"`
	FigsPerLine   int   `toml:"figsperline,omitempty"`
	FramesPerLine int   `toml:"framesperline,omitempty"`
	MakePDF       *bool `toml:"makepdf,omitempty"`
}

type figureSection struct {
	Name   string        `toml:"name"`
	FigNo  int           `toml:"figno"`
	Width  int           `toml:"width,omitempty"`
	Height int           `toml:"height,omitempty"`
	Axes   []axesSection `toml:"axes"`
}

type axesSection struct {
	Name       string        `toml:"name,omitempty"`
	AxesCmd    string        `toml:"axescmd,omitempty"`
	Title      string        `toml:"title,omitempty"`
	TitleWithT *bool         `toml:"title_with_t,omitempty"`
	XLimits    any           `toml:"xlimits,omitempty"`
	YLimits    any           `toml:"ylimits,omitempty"`
	XLabel     string        `toml:"xlabel,omitempty"`
	YLabel     string        `toml:"ylabel,omitempty"`
	Items      []itemSection `toml:"item"`
}

type itemSection struct {
	PlotType  string  `toml:"plot_type,omitempty"`
	PlotVar   int     `toml:"plot_var"`
	PlotStyle string  `toml:"plotstyle,omitempty"`
	Color     string  `toml:"color,omitempty"`
	LineWidth float64 `toml:"linewidth,omitempty"`
	Label     string  `toml:"label,omitempty"`
}

// LoadTOMLFile reads a setplot description from path.
func LoadTOMLFile(path string) (*PlotData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSetplotNotFound, err, "open setplot file %s", path)
	}
	defer f.Close()
	pd, err := LoadTOML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pd, nil
}

// LoadTOML reads a setplot description. Settings missing from the input
// keep the defaults of New.
func LoadTOML(r io.Reader) (*PlotData, error) {
	sp, err := ParseSetplot(r)
	if err != nil {
		return nil, err
	}
	pd := New()
	sp.Apply(pd)
	return pd, nil
}

// Apply replaces the figures of pd with the ones in the TOML description
// and overrides the settings it names. It is the TOML counterpart of a
// setplot function. pd is left unchanged when the description is invalid.
func Apply(pd *PlotData, r io.Reader) error {
	sp, err := ParseSetplot(r)
	if err != nil {
		return err
	}
	sp.Apply(pd)
	return nil
}

// Setplot is a parsed and checked setplot description. It can be applied
// to any number of PlotData values.
type Setplot struct {
	doc      *document
	framenos *Selection
	fignos   *Selection
	// limits holds the x and y limits per figure and axes.
	limits [][][2]Limits
}

// ParseSetplot reads a setplot description and resolves every value that
// can be invalid, so that Apply cannot fail.
func ParseSetplot(r io.Reader) (*Setplot, error) {
	doc, err := decode(r)
	if err != nil {
		return nil, err
	}
	sp := &Setplot{doc: doc}
	if p := doc.Print; p != nil {
		if p.Framenos != nil {
			sel, err := SelectionFromValue(p.Framenos)
			if err != nil {
				return nil, fmt.Errorf("print.framenos: %w", err)
			}
			sp.framenos = &sel
		}
		if p.Fignos != nil {
			sel, err := SelectionFromValue(p.Fignos)
			if err != nil {
				return nil, fmt.Errorf("print.fignos: %w", err)
			}
			sp.fignos = &sel
		}
	}
	sp.limits = make([][][2]Limits, len(doc.Figures))
	for i, fs := range doc.Figures {
		sp.limits[i] = make([][2]Limits, len(fs.Axes))
		for j, as := range fs.Axes {
			var err error
			if sp.limits[i][j][0], err = LimitsFromValue(as.XLimits); err != nil {
				return nil, fmt.Errorf("figure %d xlimits: %w", fs.FigNo, err)
			}
			if sp.limits[i][j][1], err = LimitsFromValue(as.YLimits); err != nil {
				return nil, fmt.Errorf("figure %d ylimits: %w", fs.FigNo, err)
			}
		}
	}
	return sp, nil
}

func cloneSelection(s Selection) Selection {
	return Selection{All: s.All, Items: append([]int(nil), s.Items...)}
}

// decode parses a setplot document. Unknown keys are errors so that a
// misspelled setting is not silently ignored.
func decode(r io.Reader) (*document, error) {
	var doc document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlotData, err, "parse setplot TOML")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidPlotData, "unknown setplot keys: %v", keys)
	}
	return &doc, nil
}

// Apply replaces the figures of pd and overrides the settings sp names.
func (sp *Setplot) Apply(pd *PlotData) {
	doc := sp.doc
	if doc.OutDir != "" {
		pd.OutDir = doc.OutDir
	}
	if doc.PlotDir != "" {
		pd.PlotDir = doc.PlotDir
	}

	if p := doc.Print; p != nil {
		setBool(&pd.PrintFigs, p.Figs)
		if p.Format != "" {
			pd.PrintFormat = p.Format
		}
	}
	if sp.framenos != nil {
		pd.PrintFramenos = cloneSelection(*sp.framenos)
	}
	if sp.fignos != nil {
		pd.PrintFignos = cloneSelection(*sp.fignos)
	}
	if h := doc.HTML; h != nil {
		setBool(&pd.HTML, h.Enabled)
		if h.HomeLink != "" {
			pd.HTMLHomeLink = h.HomeLink
		}
	}
	if l := doc.LaTeX; l != nil {
		setBool(&pd.LaTeX, l.Enabled)
		setBool(&pd.LaTeXMakePDF, l.MakePDF)
		if l.FigsPerLine != 0 {
			pd.LaTeXFigsPerLine = l.FigsPerLine
		}
		if l.FramesPerLine != 0 {
			pd.LaTeXFramesPerLine = l.FramesPerLine
		}
	}

	pd.ClearFigures()
	for i, fs := range doc.Figures {
		fig := pd.NewPlotFigure(fs.Name, fs.FigNo)
		fig.Width, fig.Height = fs.Width, fs.Height
		for j, as := range fs.Axes {
			ax := fig.NewPlotAxes(as.Name)
			if as.AxesCmd != "" {
				ax.AxesCmd = as.AxesCmd
			}
			ax.Title = as.Title
			setBool(&ax.TitleWithT, as.TitleWithT)
			ax.XLabel, ax.YLabel = as.XLabel, as.YLabel
			ax.XLimits, ax.YLimits = sp.limits[i][j][0], sp.limits[i][j][1]
			for _, is := range as.Items {
				plotType := is.PlotType
				if plotType == "" {
					plotType = PlotType1D
				}
				it := ax.NewPlotItem(plotType)
				it.PlotVar = is.PlotVar
				it.Label = is.Label
				if is.PlotStyle != "" {
					it.PlotStyle = is.PlotStyle
				}
				if is.Color != "" {
					it.Color = is.Color
				}
				if is.LineWidth != 0 {
					it.LineWidth = is.LineWidth
				}
			}
		}
	}
}

// WriteTOML writes pd in the format read by LoadTOML. Items that use
// PlotVarFunc cannot be represented and are written with their PlotVar.
func WriteTOML(w io.Writer, pd *PlotData) error {
	doc := document{
		OutDir:  pd.OutDir,
		PlotDir: pd.PlotDir,
		Print: &printSection{
			Figs:     boolPtr(pd.PrintFigs),
			Format:   pd.PrintFormat,
			Framenos: pd.PrintFramenos.Value(),
			Fignos:   pd.PrintFignos.Value(),
		},
		HTML: &htmlSection{
			Enabled:  boolPtr(pd.HTML),
			HomeLink: pd.HTMLHomeLink,
		},
		LaTeX: &latexSection{
			Enabled:       boolPtr(pd.LaTeX),
			FigsPerLine:   pd.LaTeXFigsPerLine,
			FramesPerLine: pd.LaTeXFramesPerLine,
			MakePDF:       boolPtr(pd.LaTeXMakePDF),
		},
	}
	for _, fig := range pd.Figures() {
		fs := figureSection{Name: fig.Name, FigNo: fig.FigNo, Width: fig.Width, Height: fig.Height}
		for _, ax := range fig.Axes() {
			as := axesSection{
				Name:       ax.Name,
				AxesCmd:    ax.AxesCmd,
				Title:      ax.Title,
				TitleWithT: boolPtr(ax.TitleWithT),
				XLimits:    ax.XLimits.Value(),
				YLimits:    ax.YLimits.Value(),
				XLabel:     ax.XLabel,
				YLabel:     ax.YLabel,
			}
			for _, it := range ax.Items() {
				as.Items = append(as.Items, itemSection{
					PlotType:  it.PlotType,
					PlotVar:   it.PlotVar,
					PlotStyle: it.PlotStyle,
					Color:     it.Color,
					LineWidth: it.LineWidth,
					Label:     it.Label,
				})
			}
			fs.Axes = append(fs.Axes, as)
		}
		doc.Figures = append(doc.Figures, fs)
	}
	return toml.NewEncoder(w).Encode(doc)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func boolPtr(b bool) *bool { return &b }
