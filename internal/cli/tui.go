package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// =============================================================================
// FrameListModel - Interactive frame selection
// =============================================================================

// FrameListModel is the bubbletea model for picking a frame to render.
type FrameListModel struct {
	Frames   []frameRow
	Cursor   int
	Selected *frameRow
	Height   int
	Offset   int

	// Rendered marks frames whose images already exist.
	Rendered map[int]bool
}

// NewFrameListModel creates a new frame list model.
func NewFrameListModel(frames []frameRow, rendered map[int]bool) FrameListModel {
	return FrameListModel{
		Frames:   frames,
		Height:   15,
		Rendered: rendered,
	}
}

func (m FrameListModel) Init() tea.Cmd {
	return nil
}

func (m FrameListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Frames)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if len(m.Frames) > 0 {
				m.Cursor = len(m.Frames) - 1
				m.Offset = max(0, m.Cursor-m.Height+1)
			}
		case "enter":
			if len(m.Frames) == 0 {
				return m, nil
			}
			f := m.Frames[m.Cursor]
			m.Selected = &f
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m FrameListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Frame"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Frames))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Frames[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		status := ""
		if m.Rendered[f.Number] {
			status = iconSuccess
		}
		density := "—"
		if len(f.Ranges) > 0 {
			density = formatFloat(f.Ranges[0][0]) + " .. " + formatFloat(f.Ranges[0][1])
		}
		rows = append(rows, []string{cursor, strconv.Itoa(f.Number), formatFloat(f.Time), strconv.Itoa(f.Cells), density, status})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("", "Frame", "Time", "Cells", "q[0]", "Plotted").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			base := lipgloss.NewStyle()
			if idx == m.Cursor {
				return base.Foreground(colorAccent).Bold(true)
			}
			if idx < len(m.Frames) && m.Rendered[m.Frames[idx].Number] {
				return base.Foreground(colorOK)
			}
			return base.Foreground(colorValue)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Frames)), len(m.Frames))))

	return b.String()
}
