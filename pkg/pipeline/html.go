package pipeline

import (
	"bytes"
	"context"
	"html/template"
	"strconv"

	"github.com/matzehuels/clawplot/pkg/plotdata"
)

var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "head"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
td, th { padding: 0.3em 0.8em; border-bottom: 1px solid #ddd; text-align: left; }
img { max-width: 100%; }
nav a { margin-right: 1em; }
</style>
</head>
<body>
{{end}}

{{define "index"}}{{template "head" "Plot Index"}}{{if .HomeLink}}<p><a href="{{.HomeLink}}">Home</a></p>
{{end}}<h1>Plot Index</h1>
<h2>All frames of a figure</h2>
<ul>
{{range .Figures}}<li><a href="{{.Page}}">Figure {{.FigNo}}: {{.Name}}</a></li>
{{end}}</ul>
<h2>Frames</h2>
<table>
<tr><th>Frame</th><th>Time</th>{{range .Figures}}<th>{{.Name}}</th>{{end}}</tr>
{{range .Frames}}<tr><td><a href="{{.Page}}">{{.FrameNo}}</a></td><td>{{.Time}}</td>{{range .Images}}<td><a href="{{.File}}">fig {{.FigNo}}</a></td>{{end}}</tr>
{{end}}</table>
</body>
</html>
{{end}}

{{define "frame"}}{{template "head" .Title}}<nav>{{if .Prev}}<a href="{{.Prev}}">Previous</a>{{end}}<a href="{{.Index}}">Index</a>{{if .Next}}<a href="{{.Next}}">Next</a>{{end}}</nav>
<h1>{{.Title}}</h1>
{{range .Images}}<h2>Figure {{.FigNo}}: {{.Name}}</h2>
<p><img src="{{.File}}" alt="{{.Name}}"></p>
{{end}}</body>
</html>
{{end}}

{{define "figure"}}{{template "head" .Title}}<nav><a href="{{.Index}}">Index</a></nav>
<h1>{{.Title}}</h1>
{{range .Frames}}<h2><a href="{{.Page}}">Frame {{.FrameNo}}</a> at time t = {{.Time}}</h2>
{{range .Images}}<p><img src="{{.File}}" alt="{{$.FigName}}"></p>
{{end}}{{end}}</body>
</html>
{{end}}
`))

type htmlImage struct {
	FigNo int
	Name  string
	File  string
}

type htmlFigure struct {
	FigNo int
	Name  string
	Page  string
}

type htmlFrame struct {
	FrameNo int
	Time    string
	Page    string
	Images  []htmlImage
}

type indexPage struct {
	HomeLink string
	Figures  []htmlFigure
	Frames   []htmlFrame
}

type framePage struct {
	Title      string
	Prev, Next string
	Index      string
	Images     []htmlImage
}

type figurePage struct {
	Title   string
	FigName string
	Index   string
	Frames  []htmlFrame
}

func formatTime(t float64) string {
	return strconv.FormatFloat(t, 'g', 6, 64)
}

// writeHTML writes the index page, one page per frame and one page per
// figure. It returns the written file names.
func (r *Runner) writeHTML(ctx context.Context, pd *plotdata.PlotData, figs []*plotdata.PlotFigure, frames []int, times map[int]float64) ([]string, error) {
	index := indexPage{HomeLink: pd.HTMLHomeLink}
	for _, fig := range figs {
		index.Figures = append(index.Figures, htmlFigure{FigNo: fig.FigNo, Name: fig.Name, Page: FigurePage(fig.FigNo)})
	}
	for _, n := range frames {
		hf := htmlFrame{FrameNo: n, Time: formatTime(times[n]), Page: FramePage(n)}
		for _, fig := range figs {
			hf.Images = append(hf.Images, htmlImage{FigNo: fig.FigNo, Name: fig.Name, File: ImageName(n, fig.FigNo, pd.PrintFormat)})
		}
		index.Frames = append(index.Frames, hf)
	}

	var files []string
	write := func(name, tmpl string, data any) error {
		var buf bytes.Buffer
		if err := pageTemplates.ExecuteTemplate(&buf, tmpl, data); err != nil {
			return err
		}
		if err := r.writeProduct(ctx, pd.PlotDir, name, KindHTML, buf.Bytes()); err != nil {
			return err
		}
		files = append(files, name)
		return nil
	}

	if err := write(IndexFile, "index", index); err != nil {
		return nil, err
	}
	for i, hf := range index.Frames {
		page := framePage{
			Title:  "Frame " + strconv.Itoa(hf.FrameNo) + " at time t = " + hf.Time,
			Index:  IndexFile,
			Images: hf.Images,
		}
		if i > 0 {
			page.Prev = index.Frames[i-1].Page
		}
		if i < len(index.Frames)-1 {
			page.Next = index.Frames[i+1].Page
		}
		if err := write(hf.Page, "frame", page); err != nil {
			return nil, err
		}
	}
	for j, fig := range index.Figures {
		page := figurePage{Title: "All frames of figure " + strconv.Itoa(fig.FigNo) + ": " + fig.Name, FigName: fig.Name, Index: IndexFile}
		for _, hf := range index.Frames {
			page.Frames = append(page.Frames, htmlFrame{
				FrameNo: hf.FrameNo,
				Time:    hf.Time,
				Page:    hf.Page,
				Images:  []htmlImage{hf.Images[j]},
			})
		}
		if err := write(fig.Page, "figure", page); err != nil {
			return nil, err
		}
	}
	r.Logger.Debug("wrote html", "files", len(files), "index", IndexFile)
	return files, nil
}
