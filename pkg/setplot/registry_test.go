package setplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/clawplot/pkg/errors"
	"github.com/matzehuels/clawplot/pkg/plotdata"
)

func TestRegistry(t *testing.T) {
	fn, ok := Lookup("euler")
	if !ok {
		t.Fatal("euler not registered")
	}
	if pd := fn(plotdata.New()); len(pd.Figures()) != 2 {
		t.Errorf("euler produced %d figures", len(pd.Figures()))
	}

	custom := func(pd *plotdata.PlotData) *plotdata.PlotData {
		pd.ClearFigures()
		pd.NewPlotFigure("Pressure", 0)
		return pd
	}
	if err := Register("Pressure", custom); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if _, ok := Lookup("PRESSURE"); !ok {
		t.Error("Lookup should be case-insensitive")
	}

	found := false
	for _, n := range Names() {
		if n == "pressure" {
			found = true
		}
	}
	if !found {
		t.Errorf("Names() = %v, missing pressure", Names())
	}
}

func TestRegisterInvalid(t *testing.T) {
	if err := Register("", Euler); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty name: %v", err)
	}
	if err := Register("a/b", Euler); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("separator: %v", err)
	}
	if err := Register("nilfn", nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil fn: %v", err)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "velocity.toml")
	content := "[[figure]]\nname = \"Velocity\"\nfigno = 3\n[[figure.axes]]\n[[figure.axes.item]]\nplot_var = 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("[[figure"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		ref     string
		figNos  []int
		errCode errors.Code
	}{
		{"default", "", []int{0, 1}, ""},
		{"by name", "euler", []int{0, 1}, ""},
		{"file", path, []int{3}, ""},
		{"unknown", "nosuch", nil, errors.ErrCodeSetplotNotFound},
		{"missing file", filepath.Join(dir, "missing.toml"), nil, errors.ErrCodeSetplotNotFound},
		{"broken file", broken, nil, errors.ErrCodeInvalidPlotData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := Resolve(tt.ref)
			if tt.errCode != "" {
				if !errors.Is(err, tt.errCode) {
					t.Fatalf("Resolve(%q) error = %v, want %s", tt.ref, err, tt.errCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.ref, err)
			}
			pd := fn(plotdata.New())
			got := pd.FigNos()
			if len(got) != len(tt.figNos) {
				t.Fatalf("FigNos() = %v, want %v", got, tt.figNos)
			}
			for i := range got {
				if got[i] != tt.figNos[i] {
					t.Errorf("FigNos() = %v, want %v", got, tt.figNos)
				}
			}
		})
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	badLimits := filepath.Join(dir, "limits.toml")
	content := "[[figure]]\nname = \"Density\"\nfigno = 0\n[[figure.axes]]\nylimits = \"tight\"\n"
	if err := os.WriteFile(badLimits, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(badLimits); !errors.Is(err, errors.ErrCodeInvalidPlotData) {
		t.Errorf("FromFile(bad limits) error = %v, want %s", err, errors.ErrCodeInvalidPlotData)
	}

	good := filepath.Join(dir, "pressure.toml")
	content = "[print]\nframenos = [1, 2]\n[[figure]]\nname = \"Pressure/Velocity\"\nfigno = 4\n[[figure.axes]]\nylimits = [0.0, 2.0]\n[[figure.axes.item]]\nplot_type = \"1d\"\nplot_var = 2\n"
	if err := os.WriteFile(good, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	fn, err := FromFile(good)
	if err != nil {
		t.Fatalf("FromFile() error: %v", err)
	}
	// The file is read once; later changes do not affect fn.
	if err := os.Remove(good); err != nil {
		t.Fatal(err)
	}

	first, second := fn(plotdata.New()), fn(plotdata.New())
	for _, pd := range []*plotdata.PlotData{first, second} {
		if err := pd.Validate(); err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
		if got := pd.FigNos(); len(got) != 1 || got[0] != 4 {
			t.Errorf("FigNos() = %v, want [4]", got)
		}
	}
	first.PrintFramenos.Items[0] = 9
	if second.PrintFramenos.Items[0] != 1 {
		t.Error("applications of one setplot file share selection state")
	}
}
