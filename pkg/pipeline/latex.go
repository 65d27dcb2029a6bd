package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/matzehuels/clawplot/pkg/errors"
	"github.com/matzehuels/clawplot/pkg/plotdata"
)

const pdflatexHint = "  macOS:  brew install --cask mactex-no-gui\n  Linux:  apt install texlive-latex-base"

const latexPreamble = `\documentclass[11pt]{article}
\usepackage{graphicx}
\setlength{\textwidth}{7.5in}
\setlength{\oddsidemargin}{-0.5in}
\setlength{\evensidemargin}{-0.5in}
\setlength{\textheight}{9.0in}
\setlength{\topmargin}{-0.5in}
\setlength{\parindent}{0pt}
\begin{document}
\begin{center}{\Large\bf Plots}\end{center}
`

// LaTeX writes the figure sheet for frames and figs. With framesperline
// at most 1 every frame gets a section holding its figures, figsperline
// to a line. Otherwise every figure gets a section holding its frames,
// framesperline to a line.
func LaTeX(pd *plotdata.PlotData, figs []*plotdata.PlotFigure, frames []int, times map[int]float64) []byte {
	var b bytes.Buffer
	b.WriteString(latexPreamble)

	if pd.LaTeXFramesPerLine <= 1 {
		perLine := max(pd.LaTeXFigsPerLine, 1)
		for _, n := range frames {
			fmt.Fprintf(&b, "\n\\section*{Frame %d at time t = %s}\n", n, formatTime(times[n]))
			names := make([]string, len(figs))
			for i, fig := range figs {
				names[i] = ImageName(n, fig.FigNo, pd.PrintFormat)
			}
			writeGraphicsRows(&b, names, perLine)
			b.WriteString("\\newpage\n")
		}
	} else {
		perLine := pd.LaTeXFramesPerLine
		for _, fig := range figs {
			fmt.Fprintf(&b, "\n\\section*{Figure %d: %s}\n", fig.FigNo, latexEscape(fig.Name))
			names := make([]string, len(frames))
			for i, n := range frames {
				names[i] = ImageName(n, fig.FigNo, pd.PrintFormat)
			}
			writeGraphicsRows(&b, names, perLine)
			b.WriteString("\\newpage\n")
		}
	}

	b.WriteString("\\end{document}\n")
	return b.Bytes()
}

// writeGraphicsRows includes the images perLine to a row.
func writeGraphicsRows(b *bytes.Buffer, names []string, perLine int) {
	width := 0.95 / float64(perLine)
	for i, name := range names {
		fmt.Fprintf(b, "\\includegraphics[width=%.3f\\textwidth]{%s}\n", width, name)
		if (i+1)%perLine == 0 || i == len(names)-1 {
			b.WriteString("\\vskip 10pt\n")
		}
	}
}

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func latexEscape(s string) string {
	return latexReplacer.Replace(s)
}

// writeLaTeX writes plots.tex and, when requested, compiles it.
func (r *Runner) writeLaTeX(ctx context.Context, pd *plotdata.PlotData, figs []*plotdata.PlotFigure, frames []int, times map[int]float64) ([]string, error) {
	if err := r.writeProduct(ctx, pd.PlotDir, LaTeXFile, KindLaTeX, LaTeX(pd, figs, frames, times)); err != nil {
		return nil, err
	}
	files := []string{LaTeXFile}
	r.Logger.Debug("wrote latex", "file", LaTeXFile)

	if pd.LaTeXMakePDF {
		if err := runPDFLaTeX(ctx, pd.PlotDir); err != nil {
			return files, err
		}
		r.Logger.Info("compiled latex", "file", filepath.Join(pd.PlotDir, PDFFile))
		files = append(files, PDFFile)
	}
	return files, nil
}

// runPDFLaTeX compiles plots.tex inside dir.
func runPDFLaTeX(ctx context.Context, dir string) error {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return &errors.ToolError{Tool: "pdflatex", Hint: pdflatexHint}
	}
	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-halt-on-error", LaTeXFile)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return &errors.ToolError{Tool: "pdflatex", Stderr: lastLines(out.String(), 10), Err: err}
	}
	return nil
}

// lastLines returns the final n lines of s.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
