package frame

import (
	"bytes"
	stderrors "errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/clawplot/pkg/errors"
)

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	want := Synthetic(2, 0.125, 50)
	if err := Write(dir, want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(dir, 2)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Time != want.Time || got.Meqn != want.Meqn || got.Cells() != want.Cells() {
		t.Fatalf("header mismatch: got t=%v meqn=%d cells=%d", got.Time, got.Meqn, got.Cells())
	}
	for m := 0; m < want.Meqn; m++ {
		for i, v := range want.Patches[0].Q[m] {
			g := got.Patches[0].Q[m][i]
			if math.Abs(g-v) > 1e-7*math.Max(1, math.Abs(v)) {
				t.Errorf("Q[%d][%d] = %v, want %v", m, i, g, v)
			}
		}
	}
}

func TestWritePatchesWrapsRows(t *testing.T) {
	f := &Frame{Meqn: 5, Ndim: 1, Patches: []Patch{
		{GridNumber: 1, Level: 1, Mx: 1, Dx: 1, Q: [][]float64{{1}, {2}, {3}, {4}, {5}}},
	}}
	var buf bytes.Buffer
	if err := WritePatches(&buf, f); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := strings.Fields(lines[len(lines)-1])
	if len(last) != 1 {
		t.Errorf("fifth component should wrap onto its own line, got %q", lines[len(lines)-1])
	}
}

func TestWriteHeaderLayout(t *testing.T) {
	var buf bytes.Buffer
	f := &Frame{Time: 1, Meqn: 3, Ndim: 1, Patches: make([]Patch, 1)}
	if err := WriteHeader(&buf, f); err != nil {
		t.Fatal(err)
	}
	want := "    1.00000000E+00    time\n    3                 meqn\n    1                 ngrids\n    0                 naux\n    1                 ndim\n\n"
	if buf.String() != want {
		t.Errorf("WriteHeader() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriteValidation(t *testing.T) {
	tests := []struct {
		name string
		f    *Frame
		code errors.Code
	}{
		{"negative number", &Frame{Number: -1, Ndim: 1}, errors.ErrCodeInvalidFrame},
		{"2d", &Frame{Ndim: 2}, errors.ErrCodeUnsupported},
		{"no grids", &Frame{Ndim: 1}, errors.ErrCodeInvalidFrame},
		{"component mismatch", &Frame{Ndim: 1, Meqn: 2, Patches: []Patch{{Mx: 1, Q: [][]float64{{1}}}}}, errors.ErrCodeInvalidFrame},
		{"cell mismatch", &Frame{Ndim: 1, Meqn: 1, Patches: []Patch{{Mx: 2, Q: [][]float64{{1}}}}}, errors.ErrCodeInvalidFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Write(t.TempDir(), tt.f)
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestWriteFileFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, QFile(3))
	failing := func(w io.Writer) error {
		io.WriteString(w, "    1                 grid_number\n")
		return stderrors.New("disk full")
	}

	if err := writeFile(path, failing); err == nil {
		t.Fatal("writeFile succeeded with a failing writer")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("partial %s left behind: %v", QFile(3), err)
	}
	if nums, _ := List(dir); len(nums) != 0 {
		t.Errorf("List() = %v, want no frames", nums)
	}

	if err := Write(dir, Synthetic(3, 0.5, 10)); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(path)
	if err := writeFile(path, failing); err == nil {
		t.Fatal("writeFile succeeded with a failing writer")
	}
	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Error("failed write modified the existing frame")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("dir holds %d entries, want the fort.t/fort.q pair only", len(entries))
	}
}
