package render

import (
	"bytes"
	"os/exec"
	"strconv"

	"github.com/matzehuels/clawplot/pkg/errors"
)

// rsvgBinary is a variable so tests can point it at a missing tool.
var rsvgBinary = "rsvg-convert"

const rsvgHint = "  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin"

// ToPDF converts an SVG image to a single page PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return rsvg(svg, "-f", "pdf")
}

// ToPNG rasterizes an SVG image. scale multiplies the SVG's pixel size.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvg(svg, "-f", "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
}

func rsvg(svg []byte, args ...string) ([]byte, error) {
	path, err := exec.LookPath(rsvgBinary)
	if err != nil {
		return nil, &errors.ToolError{Tool: rsvgBinary, Hint: rsvgHint}
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(path, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if err := cmd.Run(); err != nil {
		return nil, &errors.ToolError{Tool: rsvgBinary, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}
