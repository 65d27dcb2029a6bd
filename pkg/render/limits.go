package render

import (
	"math"

	"github.com/matzehuels/clawplot/pkg/plotdata"
)

// Margin is the fraction of the data span added on each side of an
// automatically scaled axis.
const Margin = 0.05

// AutoRange returns the axis range for values. Fixed limits are returned
// unchanged. Auto limits span the finite values plus Margin on each side;
// a zero span is widened so constant data still gets a drawable axis.
// ok is false when values holds no finite number and limits are auto.
func AutoRange(values []float64, l plotdata.Limits) (lo, hi float64, ok bool) {
	if !l.IsAuto() {
		return l.Min, l.Max, true
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return 0, 0, false
	}
	if span := hi - lo; span > 0 {
		return lo - Margin*span, hi + Margin*span, true
	}
	pad := math.Abs(lo) * Margin
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad, true
}
