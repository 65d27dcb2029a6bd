// Package pkg holds the libraries behind the clawplot CLI.
//
// # Overview
//
// clawplot turns the fort.tNNNN / fort.qNNNN frames written by a 1D finite
// volume solver into hardcopy plots. The packages are layered:
//
//  1. [frame] - reading, writing and watching solver frames
//  2. [plotdata] - the plot configuration (figures, axes, items, export flags)
//  3. [setplot] - functions and TOML files that fill a PlotData
//  4. [render] - drawing one figure of one frame with go-chart
//  5. [pipeline] - printframes: render, cache and write every product
//
// Supporting packages: [cache] (file, Redis and null caches), [config]
// (clawplot.toml), [errors] (coded errors), [observability] (hooks) and
// [buildinfo].
//
// # Data Flow
//
//	fort.t/fort.q frames
//	        ↓
//	   [frame] Read
//	        ↓
//	   [setplot] Euler → [plotdata] PlotData
//	        ↓
//	   [render] RenderFigure (png, svg, pdf)
//	        ↓
//	   [pipeline] images, _PlotIndex.html, plots.tex
//
// # Quick Start
//
//	pd := setplot.Euler(plotdata.New())
//	pd.OutDir = "_output"
//	pd.PlotDir = "_plots"
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.PrintFrames(ctx, pd, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Files)
package pkg
