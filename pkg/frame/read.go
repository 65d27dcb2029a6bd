package frame

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/clawplot/pkg/errors"
)

// Read loads frame n from dir.
func Read(dir string, n int) (*Frame, error) {
	t, q, err := ReadFiles(dir, n)
	if err != nil {
		return nil, err
	}
	f, err := Parse(n, bytes.NewReader(t), bytes.NewReader(q))
	if err != nil {
		return nil, fmt.Errorf("frame %d in %s: %w", n, dir, err)
	}
	return f, nil
}

// ReadHeader loads only the fort.t header of frame n. The returned frame
// has no patches.
func ReadHeader(dir string, n int) (*Frame, error) {
	tf, err := os.Open(filepath.Join(dir, TFile(n)))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFrameNotFound, err, "frame %d not found in %s", n, dir)
	}
	if err != nil {
		return nil, err
	}
	defer tf.Close()

	f, err := ParseHeader(tf)
	if err != nil {
		return nil, fmt.Errorf("frame %d in %s: %w", n, dir, err)
	}
	f.Number = n
	return f, nil
}

// ReadFiles returns the raw contents of the header and data files of
// frame n.
func ReadFiles(dir string, n int) (t, q []byte, err error) {
	t, err = os.ReadFile(filepath.Join(dir, TFile(n)))
	if os.IsNotExist(err) {
		return nil, nil, errors.Wrap(errors.ErrCodeFrameNotFound, err, "frame %d not found in %s", n, dir)
	}
	if err != nil {
		return nil, nil, err
	}
	q, err = os.ReadFile(filepath.Join(dir, QFile(n)))
	if os.IsNotExist(err) {
		return nil, nil, errors.Wrap(errors.ErrCodeFrameNotFound, err, "frame %d has no data file in %s", n, dir)
	}
	if err != nil {
		return nil, nil, err
	}
	return t, q, nil
}

// Parse builds frame n from the contents of its header (t) and data (q)
// files.
func Parse(n int, t, q io.Reader) (*Frame, error) {
	f, err := ParseHeader(t)
	if err != nil {
		return nil, err
	}
	f.Number = n

	if f.Patches, err = ParsePatches(q, f.Meqn); err != nil {
		return nil, err
	}
	if ngrids, ok := f.Header["ngrids"]; ok {
		if want, _ := strconv.Atoi(ngrids); want != len(f.Patches) {
			return nil, errors.New(errors.ErrCodeInvalidFrame, "header announces %d grids, found %d", want, len(f.Patches))
		}
	}
	return f, nil
}

// ParseHeader parses the contents of a fort.t file. The returned frame has
// no patches and a zero Number.
func ParseHeader(r io.Reader) (*Frame, error) {
	sc := newScanner(r)
	hdr, err := readHeader(sc, -1)
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidFrame, "empty header")
	}
	if err != nil {
		return nil, err
	}

	f := &Frame{Header: hdr}
	if f.Time, err = headerFloat(hdr, "time"); err != nil {
		return nil, err
	}
	if f.Meqn, err = headerInt(hdr, "meqn"); err != nil {
		return nil, err
	}
	if f.Ndim, err = headerInt(hdr, "ndim"); err != nil {
		return nil, err
	}
	// Older writers call the aux count maux.
	for _, key := range []string{"naux", "maux"} {
		if _, ok := hdr[key]; ok {
			if f.Naux, err = headerInt(hdr, key); err != nil {
				return nil, err
			}
			break
		}
	}

	if f.Meqn < 1 {
		return nil, errors.New(errors.ErrCodeInvalidFrame, "meqn must be positive, got %d", f.Meqn)
	}
	if f.Ndim != 1 {
		return nil, errors.New(errors.ErrCodeUnsupported, "only 1D frames are supported, got ndim=%d", f.Ndim)
	}
	return f, nil
}

// ParsePatches parses the contents of a fort.q file holding meqn
// components per cell.
func ParsePatches(r io.Reader, meqn int) ([]Patch, error) {
	sc := newScanner(r)
	var patches []Patch

	for {
		hdr, err := readHeader(sc, 5)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		p, err := patchFromHeader(hdr, meqn)
		if err != nil {
			return nil, err
		}

		want := p.Mx * meqn
		var values []float64
		for len(values) < want {
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return nil, err
				}
				return nil, errors.New(errors.ErrCodeInvalidFrame,
					"grid %d truncated: got %d of %d values", p.GridNumber, len(values), want)
			}
			for _, tok := range strings.Fields(sc.Text()) {
				v, err := ParseFloat(tok)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidFrame, err, "grid %d", p.GridNumber)
				}
				values = append(values, v)
			}
		}
		if len(values) != want {
			return nil, errors.New(errors.ErrCodeInvalidFrame,
				"grid %d: got %d values, want %d", p.GridNumber, len(values), want)
		}

		p.Q = make([][]float64, meqn)
		for m := range p.Q {
			p.Q[m] = make([]float64, p.Mx)
		}
		for i := 0; i < p.Mx; i++ {
			for m := 0; m < meqn; m++ {
				p.Q[m][i] = values[i*meqn+m]
			}
		}
		patches = append(patches, p)
	}

	if len(patches) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFrame, "no grids in data file")
	}
	return patches, nil
}

// maxPatchValues bounds mx*meqn for a single grid.
const maxPatchValues = 1 << 28

func patchFromHeader(hdr map[string]string, meqn int) (Patch, error) {
	var p Patch
	var err error
	if p.GridNumber, err = headerInt(hdr, "grid_number"); err != nil {
		return p, err
	}
	if p.Level, err = headerInt(hdr, "AMR_level"); err != nil {
		return p, err
	}
	if p.Mx, err = headerInt(hdr, "mx"); err != nil {
		return p, err
	}
	if p.XLow, err = headerFloat(hdr, "xlow"); err != nil {
		return p, err
	}
	if p.Dx, err = headerFloat(hdr, "dx"); err != nil {
		return p, err
	}
	if p.Mx < 1 {
		return p, errors.New(errors.ErrCodeInvalidFrame, "grid %d: mx must be positive, got %d", p.GridNumber, p.Mx)
	}
	if meqn < 1 || p.Mx > maxPatchValues/meqn {
		return p, errors.New(errors.ErrCodeInvalidFrame,
			"grid %d: mx=%d with meqn=%d exceeds %d values", p.GridNumber, p.Mx, meqn, maxPatchValues)
	}
	if p.Dx <= 0 {
		return p, errors.New(errors.ErrCodeInvalidFrame, "grid %d: dx must be positive, got %g", p.GridNumber, p.Dx)
	}
	return p, nil
}

// readHeader reads "<value> <name>" lines, skipping leading blank lines.
// With n < 0 it reads until EOF. It returns io.EOF when no header line
// was found at all.
func readHeader(sc *bufio.Scanner, n int) (map[string]string, error) {
	hdr := make(map[string]string)
	read := 0
	for n < 0 || read < n {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			if read == 0 {
				return nil, io.EOF
			}
			if n < 0 {
				break
			}
			return nil, errors.New(errors.ErrCodeInvalidFrame, "header truncated after %d lines", read)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			if read == 0 || n < 0 {
				continue
			}
			return nil, errors.New(errors.ErrCodeInvalidFrame, "blank line inside grid header")
		}
		if len(fields) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidFrame, "malformed header line %q", sc.Text())
		}
		hdr[fields[1]] = fields[0]
		read++
	}
	return hdr, nil
}

func headerInt(hdr map[string]string, key string) (int, error) {
	s, ok := hdr[key]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidFrame, "missing header field %q", key)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFrame, err, "header field %q", key)
	}
	return v, nil
}

func headerFloat(hdr map[string]string, key string) (float64, error) {
	s, ok := hdr[key]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidFrame, "missing header field %q", key)
	}
	v, err := ParseFloat(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFrame, err, "header field %q", key)
	}
	return v, nil
}

// ParseFloat parses a number written by a Fortran program. Besides the
// forms accepted by strconv it understands "1.5D+03" and the
// exponent-letter-less "1.5-100" that Fortran emits for three digit
// exponents.
func ParseFloat(s string) (float64, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	t := strings.NewReplacer("D", "E", "d", "E").Replace(s)
	if v, err := strconv.ParseFloat(t, 64); err == nil {
		return v, nil
	}
	// Insert the missing exponent letter before a sign that is not leading.
	if i := strings.LastIndexAny(t, "+-"); i > 0 && t[i-1] != 'E' && t[i-1] != 'e' {
		if v, err := strconv.ParseFloat(t[:i]+"E"+t[i:], 64); err == nil {
			return v, nil
		}
	}
	return 0, fmt.Errorf("invalid number %q", s)
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return sc
}
