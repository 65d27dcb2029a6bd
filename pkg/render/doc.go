// Package render draws one figure of a setplot for one solver frame.
//
// # Overview
//
// [RenderFigure] turns a [plotdata.PlotFigure] and a [frame.Frame] into
// an image. Each item of the figure's axes becomes a line series over the
// cell centers of every patch. Axis limits are either fixed by the axes or
// computed from the data with [AutoRange].
//
//	img, err := render.RenderFigure(fig, f,
//	    render.WithFormat("png"),
//	    render.WithSize(800, 600),
//	)
//
// # Formats
//
// PNG and SVG are drawn natively with go-chart. PDF, and PNG at a scale
// above 1, go through the external rsvg-convert tool (from librsvg) via
// [ToPDF] and [ToPNG]:
//
//	svg, _ := render.RenderFigure(fig, f, render.WithFormat("svg"))
//	pdf, err := render.ToPDF(svg)
//
// A missing rsvg-convert is reported as an [errors.ToolError] with an
// install hint.
//
// # Styles
//
// Item styles use matplotlib-like format strings ("-", "--", ":", "-.",
// "o", "-o", "x", ".") and colors ("b", "r", "#1f77b4"). go-chart only
// draws round dots, so every marker is drawn as a dot whose size depends
// on the marker kind.
//
// [errors.ToolError]: github.com/matzehuels/clawplot/pkg/errors.ToolError
package render
