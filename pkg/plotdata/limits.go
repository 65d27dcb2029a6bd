package plotdata

import (
	"fmt"
	"strings"

	"github.com/matzehuels/clawplot/pkg/errors"
)

// Limits is an axis range. The zero value is Auto.
type Limits struct {
	Min, Max float64
	Set      bool
}

// Auto lets the renderer scale the axis to the data.
var Auto = Limits{}

// Fixed returns limits pinned to [min, max].
func Fixed(min, max float64) Limits {
	return Limits{Min: min, Max: max, Set: true}
}

// IsAuto reports whether the axis scales to the data.
func (l Limits) IsAuto() bool {
	return !l.Set
}

// String returns "auto" or "[min, max]".
func (l Limits) String() string {
	if l.IsAuto() {
		return "auto"
	}
	return fmt.Sprintf("[%g, %g]", l.Min, l.Max)
}

// Value returns the TOML representation: "auto" or a two element array.
func (l Limits) Value() any {
	if l.IsAuto() {
		return "auto"
	}
	return []float64{l.Min, l.Max}
}

// LimitsFromValue converts a decoded TOML value into Limits. Accepted
// forms are a missing value, "auto" and a two element numeric array.
func LimitsFromValue(v any) (Limits, error) {
	switch v := v.(type) {
	case nil:
		return Auto, nil
	case string:
		if strings.EqualFold(v, "auto") {
			return Auto, nil
		}
		return Auto, errors.New(errors.ErrCodeInvalidPlotData, "limits must be \"auto\" or [min, max], got %q", v)
	case []any:
		if len(v) != 2 {
			return Auto, errors.New(errors.ErrCodeInvalidPlotData, "limits need exactly two values, got %d", len(v))
		}
		lo, err := toFloat(v[0])
		if err != nil {
			return Auto, err
		}
		hi, err := toFloat(v[1])
		if err != nil {
			return Auto, err
		}
		return Fixed(lo, hi), nil
	}
	return Auto, errors.New(errors.ErrCodeInvalidPlotData, "limits must be \"auto\" or [min, max], got %T", v)
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidPlotData, "expected a number, got %T", v)
}
