package plotdata

import (
	"strconv"
	"strings"

	"github.com/matzehuels/clawplot/pkg/errors"
)

// Dash is the stroke pattern of a line.
type Dash int

const (
	DashNone Dash = iota
	DashSolid
	DashDashed
	DashDotted
	DashDashDot
)

// Marker is the symbol drawn at each data point.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerCircle
	MarkerPoint
	MarkerCross
	MarkerPlus
	MarkerSquare
)

// LineStyle is a parsed PlotStyle.
type LineStyle struct {
	Dash   Dash
	Marker Marker
}

var dashPatterns = []struct {
	token string
	dash  Dash
}{
	// Longest tokens first so "--" and "-." win over "-".
	{"--", DashDashed},
	{"-.", DashDashDot},
	{"-", DashSolid},
	{":", DashDotted},
}

var markers = map[string]Marker{
	"o": MarkerCircle,
	".": MarkerPoint,
	"x": MarkerCross,
	"+": MarkerPlus,
	"s": MarkerSquare,
}

// ParseLineStyle parses a matplotlib-like format string such as "-",
// "--", "-o" or "x".
func ParseLineStyle(s string) (LineStyle, error) {
	var ls LineStyle
	rest := s
	for _, p := range dashPatterns {
		if i := strings.Index(rest, p.token); i >= 0 {
			ls.Dash = p.dash
			rest = rest[:i] + rest[i+len(p.token):]
			break
		}
	}
	if rest != "" {
		m, ok := markers[rest]
		if !ok {
			return LineStyle{}, errors.New(errors.ErrCodeInvalidStyle, "unknown plot style %q", s)
		}
		ls.Marker = m
	}
	if ls.Dash == DashNone && ls.Marker == MarkerNone {
		return LineStyle{}, errors.New(errors.ErrCodeInvalidStyle, "empty plot style")
	}
	return ls, nil
}

// RGB is an opaque color.
type RGB struct {
	R, G, B uint8
}

// Single letter colors follow matplotlib's base colors.
var namedColors = map[string]RGB{
	"b":       {0, 0, 255},
	"g":       {0, 128, 0},
	"r":       {255, 0, 0},
	"c":       {0, 191, 191},
	"m":       {191, 0, 191},
	"y":       {191, 191, 0},
	"k":       {0, 0, 0},
	"w":       {255, 255, 255},
	"blue":    {0, 0, 255},
	"green":   {0, 128, 0},
	"red":     {255, 0, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"yellow":  {255, 255, 0},
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
}

// ParseColor parses a single letter color, a basic color name or #rrggbb.
func ParseColor(s string) (RGB, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if len(s) == 7 && s[0] == '#' {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
		}
	}
	return RGB{}, errors.New(errors.ErrCodeInvalidStyle, "unknown color %q", s)
}
