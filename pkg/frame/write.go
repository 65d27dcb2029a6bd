package frame

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/matzehuels/clawplot/pkg/errors"
)

// valuesPerLine matches the solver's 4e16.8 row format.
const valuesPerLine = 4

// Write stores f in dir as a fort.t/fort.q pair in the solver's layout.
// The data file is written first so that a watcher never sees a header
// without data.
func Write(dir string, f *Frame) error {
	if err := validate(f); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, QFile(f.Number)), func(w io.Writer) error {
		return WritePatches(w, f)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, TFile(f.Number)), func(w io.Writer) error {
		return WriteHeader(w, f)
	})
}

// WriteHeader writes the fort.t representation of f.
func WriteHeader(w io.Writer, f *Frame) error {
	_, err := fmt.Fprintf(w,
		"%18.8E    time\n%5d                 meqn\n%5d                 ngrids\n%5d                 naux\n%5d                 ndim\n\n",
		f.Time, f.Meqn, len(f.Patches), f.Naux, f.Ndim)
	return err
}

// WritePatches writes the fort.q representation of f.
func WritePatches(w io.Writer, f *Frame) error {
	bw := bufio.NewWriter(w)
	for _, p := range f.Patches {
		fmt.Fprintf(bw, "%5d                 grid_number\n%5d                 AMR_level\n%5d                 mx\n%18.8E    xlow\n%18.8E    dx\n\n",
			p.GridNumber, p.Level, p.Mx, p.XLow, p.Dx)
		for i := 0; i < p.Mx; i++ {
			for m := 0; m < f.Meqn; m++ {
				if m > 0 && m%valuesPerLine == 0 {
					bw.WriteByte('\n')
				}
				fmt.Fprintf(bw, "%16.8E", p.Q[m][i])
			}
			bw.WriteByte('\n')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func validate(f *Frame) error {
	if f.Number < 0 {
		return errors.New(errors.ErrCodeInvalidFrame, "frame number must not be negative")
	}
	if f.Ndim != 1 {
		return errors.New(errors.ErrCodeUnsupported, "only 1D frames are supported, got ndim=%d", f.Ndim)
	}
	if len(f.Patches) == 0 {
		return errors.New(errors.ErrCodeInvalidFrame, "frame %d has no grids", f.Number)
	}
	for _, p := range f.Patches {
		if len(p.Q) != f.Meqn {
			return errors.New(errors.ErrCodeInvalidFrame, "grid %d has %d components, want %d", p.GridNumber, len(p.Q), f.Meqn)
		}
		for m := range p.Q {
			if len(p.Q[m]) != p.Mx {
				return errors.New(errors.ErrCodeInvalidFrame, "grid %d component %d has %d cells, want %d", p.GridNumber, m, len(p.Q[m]), p.Mx)
			}
		}
	}
	return nil
}

// writeFile replaces path atomically with what fn writes. If fn fails the
// previous file, if any, is left untouched.
func writeFile(path string, fn func(io.Writer) error) error {
	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return err
	}
	defer pf.Cleanup()
	if err := fn(pf); err != nil {
		return err
	}
	return pf.CloseAtomicallyReplace()
}
