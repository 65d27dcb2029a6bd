package plotdata

import (
	"testing"

	"github.com/matzehuels/clawplot/pkg/errors"
)

func TestLimits(t *testing.T) {
	if !Auto.IsAuto() || Auto.String() != "auto" {
		t.Errorf("Auto = %v", Auto)
	}
	l := Fixed(-1, 2.5)
	if l.IsAuto() || l.String() != "[-1, 2.5]" {
		t.Errorf("Fixed(-1, 2.5) = %v", l)
	}
}

func TestLimitsFromValue(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    Limits
		wantErr bool
	}{
		{"nil", nil, Auto, false},
		{"auto", "auto", Auto, false},
		{"AUTO", "AUTO", Auto, false},
		{"floats", []any{0.0, 1.5}, Fixed(0, 1.5), false},
		{"ints", []any{int64(-2), int64(3)}, Fixed(-2, 3), false},
		{"one value", []any{1.0}, Auto, true},
		{"string entry", []any{"a", 1.0}, Auto, true},
		{"bad string", "tight", Auto, true},
		{"number", 3.0, Auto, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LimitsFromValue(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidPlotData) {
					t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidPlotData)
				}
				return
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
