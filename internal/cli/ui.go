package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. Numbers are ANSI 256 colors.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings such as figure names and the TUI title.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleHighlight renders paths and values a message is about.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	StyleLink    = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue   = lipgloss.NewStyle().Foreground(colorValue)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorAccent)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleOK       = lipgloss.NewStyle().Foreground(colorOK)
	styleFail     = lipgloss.NewStyle().Foreground(colorFail)
	styleLabel    = lipgloss.NewStyle().Foreground(colorLabel)
	styleKey      = styleLabel.Width(12)
	styleCommand  = lipgloss.NewStyle().Foreground(colorLink)
	styleSpinning = lipgloss.NewStyle().Foreground(colorAccent)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// printer writes styled status lines for one command. Commands build it
// from cmd.OutOrStdout so tests can capture what a user would see.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) line(icon lipgloss.Style, mark, msg string) {
	fmt.Fprintln(p.w, icon.Render(mark)+" "+msg)
}

func (p printer) success(format string, args ...any) {
	p.line(styleOK, iconSuccess, fmt.Sprintf(format, args...))
}

func (p printer) failure(format string, args ...any) {
	p.line(styleFail, iconError, fmt.Sprintf(format, args...))
}

func (p printer) warn(format string, args ...any) {
	p.line(StyleWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.line(styleLabel, iconInfo, fmt.Sprintf(format, args...))
}

// detail prints an indented secondary line under the previous message.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	fmt.Fprintln(p.w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// next suggests the command to run after this one.
func (p printer) next(description, command string) {
	fmt.Fprintln(p.w, StyleDim.Render(description+":")+" "+styleCommand.Render(command))
}

// runStats prints "N frames · N figures · N files · cached|fresh".
func (p printer) runStats(frames, figures, files, cacheHits int) {
	status := styleLabel.Render("fresh")
	if cacheHits > 0 {
		status = styleOK.Render(fmt.Sprintf("%d cached", cacheHits))
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d frames", frames)),
		StyleDim.Render(fmt.Sprintf("%d figures", figures)),
		StyleDim.Render(fmt.Sprintf("%d files", files)),
		status,
	}
	fmt.Fprintln(p.w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}
