package frame

import (
	"fmt"
	"math"

	"github.com/matzehuels/clawplot/pkg/errors"
)

// Frame is one output time of a solver run.
type Frame struct {
	Number  int
	Time    float64
	Meqn    int
	Naux    int
	Ndim    int
	Patches []Patch

	// Header keeps every key of the fort.t file, including ones this
	// package does not interpret.
	Header map[string]string
}

// Patch is a single 1D grid of cells.
type Patch struct {
	GridNumber int
	Level      int
	Mx         int
	XLow       float64
	Dx         float64

	// Q holds the conserved quantities indexed as Q[m][i].
	Q [][]float64
}

// Centers returns the cell-center coordinates of the patch.
func (p *Patch) Centers() []float64 {
	x := make([]float64, p.Mx)
	for i := range x {
		x[i] = p.XLow + (float64(i)+0.5)*p.Dx
	}
	return x
}

// XHigh returns the right edge of the patch.
func (p *Patch) XHigh() float64 {
	return p.XLow + float64(p.Mx)*p.Dx
}

// Var returns component m of q.
func (p *Patch) Var(m int) ([]float64, error) {
	if m < 0 || m >= len(p.Q) {
		return nil, errors.New(errors.ErrCodeInvalidPlotData, "variable index %d out of range (meqn=%d)", m, len(p.Q))
	}
	return p.Q[m], nil
}

// Series returns cell centers and component m of q for every patch of
// the frame, concatenated in patch order.
func (f *Frame) Series(m int) (x, y []float64, err error) {
	return f.SeriesFunc(func(p *Patch) ([]float64, error) { return p.Var(m) })
}

// SeriesFunc is like Series but derives the plotted values from each patch
// with fn. The result of fn must have one value per cell.
func (f *Frame) SeriesFunc(fn func(*Patch) ([]float64, error)) (x, y []float64, err error) {
	for i := range f.Patches {
		p := &f.Patches[i]
		v, err := fn(p)
		if err != nil {
			return nil, nil, err
		}
		if len(v) != p.Mx {
			return nil, nil, errors.New(errors.ErrCodeInvalidPlotData,
				"derived variable has %d values, grid %d has %d cells", len(v), p.GridNumber, p.Mx)
		}
		x = append(x, p.Centers()...)
		y = append(y, v...)
	}
	return x, y, nil
}

// Range returns the minimum and maximum of component m over all patches.
// NaN values are ignored.
func (f *Frame) Range(m int) (lo, hi float64, err error) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := range f.Patches {
		v, err := f.Patches[i].Var(m)
		if err != nil {
			return 0, 0, err
		}
		for _, q := range v {
			if math.IsNaN(q) {
				continue
			}
			lo = math.Min(lo, q)
			hi = math.Max(hi, q)
		}
	}
	if lo > hi {
		return 0, 0, errors.New(errors.ErrCodeInvalidFrame, "frame %d has no data for variable %d", f.Number, m)
	}
	return lo, hi, nil
}

// Cells returns the total number of cells over all patches.
func (f *Frame) Cells() int {
	n := 0
	for _, p := range f.Patches {
		n += p.Mx
	}
	return n
}

// TFile returns the header file name of frame n.
func TFile(n int) string { return fmt.Sprintf("fort.t%04d", n) }

// QFile returns the data file name of frame n.
func QFile(n int) string { return fmt.Sprintf("fort.q%04d", n) }
