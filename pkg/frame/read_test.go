package frame

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/clawplot/pkg/errors"
)

const sampleHeader = `  6.25000000E-02    time
    2                 meqn
    1                 ngrids
    0                 naux
    1                 ndim

`

const sampleData = `    1                 grid_number
    1                 AMR_level
    4                 mx
 -1.00000000E+00    xlow
  5.00000000E-01    dx

  1.00000000E+00  0.00000000E+00
  1.00000000E+00  1.0D-01
  5.00000000E-01  2.5-100
  5.00000000E-01 -1.00000000E+00

`

func TestParseHeader(t *testing.T) {
	f, err := ParseHeader(strings.NewReader(sampleHeader))
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if f.Time != 0.0625 {
		t.Errorf("Time = %v, want 0.0625", f.Time)
	}
	if f.Meqn != 2 || f.Ndim != 1 || f.Naux != 0 {
		t.Errorf("got meqn=%d ndim=%d naux=%d", f.Meqn, f.Ndim, f.Naux)
	}
	if f.Header["ngrids"] != "1" {
		t.Errorf("Header[ngrids] = %q, want 1", f.Header["ngrids"])
	}
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"empty", "", errors.ErrCodeInvalidFrame},
		{"missing meqn", "0.0 time\n1 ndim\n", errors.ErrCodeInvalidFrame},
		{"bad number", "zero time\n2 meqn\n1 ndim\n", errors.ErrCodeInvalidFrame},
		{"malformed line", "0.0\n", errors.ErrCodeInvalidFrame},
		{"2d", "0.0 time\n3 meqn\n2 ndim\n", errors.ErrCodeUnsupported},
		{"no components", "0.0 time\n0 meqn\n1 ndim\n", errors.ErrCodeInvalidFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestParsePatches(t *testing.T) {
	patches, err := ParsePatches(strings.NewReader(sampleData), 2)
	if err != nil {
		t.Fatalf("ParsePatches: %v", err)
	}
	if len(patches) != 1 {
		t.Fatalf("got %d patches, want 1", len(patches))
	}
	p := patches[0]
	if p.Mx != 4 || p.XLow != -1 || p.Dx != 0.5 {
		t.Errorf("header = mx %d xlow %v dx %v", p.Mx, p.XLow, p.Dx)
	}

	wantQ := [][]float64{
		{1, 1, 0.5, 0.5},
		{0, 0.1, 2.5e-100, -1},
	}
	for m := range wantQ {
		for i := range wantQ[m] {
			if got := p.Q[m][i]; got != wantQ[m][i] {
				t.Errorf("Q[%d][%d] = %v, want %v", m, i, got, wantQ[m][i])
			}
		}
	}
}

func TestParsePatchesWrappedRows(t *testing.T) {
	// Five components wrap onto a second line after four values.
	input := `1 grid_number
1 AMR_level
2 mx
0.0 xlow
0.5 dx

1 2 3 4
5
6 7 8 9
10
`
	patches, err := ParsePatches(strings.NewReader(input), 5)
	if err != nil {
		t.Fatalf("ParsePatches: %v", err)
	}
	if got := patches[0].Q[4][1]; got != 10 {
		t.Errorf("Q[4][1] = %v, want 10", got)
	}
	if got := patches[0].Q[0][1]; got != 6 {
		t.Errorf("Q[0][1] = %v, want 6", got)
	}
}

func TestParsePatchesMultipleGrids(t *testing.T) {
	input := `1 grid_number
1 AMR_level
2 mx
0.0 xlow
0.5 dx

1
2

2 grid_number
2 AMR_level
1 mx
1.0 xlow
0.25 dx

3
`
	patches, err := ParsePatches(strings.NewReader(input), 1)
	if err != nil {
		t.Fatalf("ParsePatches: %v", err)
	}
	if len(patches) != 2 {
		t.Fatalf("got %d patches, want 2", len(patches))
	}
	if patches[1].Level != 2 || patches[1].Q[0][0] != 3 {
		t.Errorf("second grid = %+v", patches[1])
	}
}

func TestParsePatchesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		meqn  int
	}{
		{"empty", "", 1},
		{"truncated header", "1 grid_number\n1 AMR_level\n", 1},
		{"truncated data", "1 grid_number\n1 AMR_level\n3 mx\n0 xlow\n1 dx\n\n1\n2\n", 1},
		{"too many values", "1 grid_number\n1 AMR_level\n1 mx\n0 xlow\n1 dx\n\n1 2\n", 1},
		{"bad value", "1 grid_number\n1 AMR_level\n1 mx\n0 xlow\n1 dx\n\nabc\n", 1},
		{"zero dx", "1 grid_number\n1 AMR_level\n1 mx\n0 xlow\n0 dx\n\n1\n", 1},
		{"zero mx", "1 grid_number\n1 AMR_level\n0 mx\n0 xlow\n1 dx\n", 1},
		{"huge mx", "1 grid_number\n1 AMR_level\n4611686018427387904 mx\n0 xlow\n1 dx\n\n1 2 3\n", 3},
		{"mx overflows with meqn", "1 grid_number\n1 AMR_level\n3074457345618258603 mx\n0 xlow\n1 dx\n\n1 2 3\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePatches(strings.NewReader(tt.input), tt.meqn)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidFrame) {
				t.Errorf("error = %v, want INVALID_FRAME", err)
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1.5", 1.5, true},
		{"-2.5E+03", -2500, true},
		{"1.0D+02", 100, true},
		{"1.0d-02", 0.01, true},
		{"1.5-100", 1.5e-100, true},
		{"-1.5+100", -1.5e100, true},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFloat(tt.input)
			if (err == nil) != tt.ok {
				t.Fatalf("ParseFloat(%q) error = %v, ok %v", tt.input, err, tt.ok)
			}
			if tt.ok && math.Abs(got-tt.want) > 1e-12*math.Abs(tt.want) {
				t.Errorf("ParseFloat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, 3)

	f, err := Read(dir, 3)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if f.Number != 3 {
		t.Errorf("Number = %d, want 3", f.Number)
	}
	if f.Cells() != 4 {
		t.Errorf("Cells() = %d, want 4", f.Cells())
	}
}

func TestReadMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := Read(dir, 7)
	if !errors.Is(err, errors.ErrCodeFrameNotFound) {
		t.Errorf("Read missing frame: code = %v, want %v", errors.GetCode(err), errors.ErrCodeFrameNotFound)
	}

	// Header without data file.
	if err := os.WriteFile(filepath.Join(dir, TFile(7)), []byte(sampleHeader), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = Read(dir, 7)
	if !errors.Is(err, errors.ErrCodeFrameNotFound) {
		t.Errorf("Read frame without data: code = %v, want %v", errors.GetCode(err), errors.ErrCodeFrameNotFound)
	}
}

func TestReadGridCountMismatch(t *testing.T) {
	dir := t.TempDir()
	hdr := strings.Replace(sampleHeader, "1                 ngrids", "2                 ngrids", 1)
	if err := os.WriteFile(filepath.Join(dir, TFile(0)), []byte(hdr), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, QFile(0)), []byte(sampleData), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(dir, 0); !errors.Is(err, errors.ErrCodeInvalidFrame) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFrame)
	}
}

func writeSample(t *testing.T, dir string, n int) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, TFile(n)), []byte(sampleHeader), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, QFile(n)), []byte(sampleData), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParse(t *testing.T) {
	f, err := Parse(5, strings.NewReader(sampleHeader), strings.NewReader(sampleData))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Number != 5 || len(f.Patches) != 1 {
		t.Errorf("Parse = frame %d with %d patches", f.Number, len(f.Patches))
	}
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, 2)

	tb, qb, err := ReadFiles(dir, 2)
	if err != nil {
		t.Fatalf("ReadFiles: %v", err)
	}
	if string(tb) != sampleHeader || string(qb) != sampleData {
		t.Error("ReadFiles returned unexpected contents")
	}
}

func TestReadHeader(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, 4)

	f, err := ReadHeader(dir, 4)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if f.Number != 4 || f.Time != 0.0625 || f.Meqn != 2 || len(f.Patches) != 0 {
		t.Errorf("ReadHeader = %+v", f)
	}

	if _, err := ReadHeader(dir, 5); !errors.Is(err, errors.ErrCodeFrameNotFound) {
		t.Errorf("missing header: code = %v, want %v", errors.GetCode(err), errors.ErrCodeFrameNotFound)
	}
}
