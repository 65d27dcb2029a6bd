package plotdata

import "testing"

func TestParseLineStyle(t *testing.T) {
	tests := []struct {
		input   string
		want    LineStyle
		wantErr bool
	}{
		{"-", LineStyle{Dash: DashSolid}, false},
		{"--", LineStyle{Dash: DashDashed}, false},
		{":", LineStyle{Dash: DashDotted}, false},
		{"-.", LineStyle{Dash: DashDashDot}, false},
		{"o", LineStyle{Marker: MarkerCircle}, false},
		{"-o", LineStyle{Dash: DashSolid, Marker: MarkerCircle}, false},
		{"x", LineStyle{Marker: MarkerCross}, false},
		{".", LineStyle{Marker: MarkerPoint}, false},
		{"--s", LineStyle{Dash: DashDashed, Marker: MarkerSquare}, false},
		{"", LineStyle{}, true},
		{"q", LineStyle{}, true},
		{"-ox", LineStyle{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLineStyle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLineStyle(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLineStyle(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    RGB
		wantErr bool
	}{
		{"b", RGB{0, 0, 255}, false},
		{"k", RGB{0, 0, 0}, false},
		{"Red", RGB{255, 0, 0}, false},
		{"#1f77b4", RGB{0x1f, 0x77, 0xb4}, false},
		{"#12345", RGB{}, true},
		{"#zzzzzz", RGB{}, true},
		{"purple", RGB{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
