package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dashbuild/dashbuild/internal/render"
	"github.com/dashbuild/dashbuild/internal/util"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// columns returns how many cards fit side by side.
func (m Model) columns() int {
	switch {
	case m.width >= BreakpointThreeColumns:
		return 3
	case m.width >= BreakpointTwoColumns:
		return 2
	default:
		return 1
	}
}

// cardWidth splits the terminal width between columns.
func (m Model) cardWidth() int {
	if m.width == 0 {
		return render.DefaultCardWidth
	}
	return m.width/m.columns() - 1
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Foreground(m.palette.Accent).Render(m.title)
	stats := fmt.Sprintf(" | %d %s", len(m.widgets), util.Pluralize(len(m.widgets), "chart", "charts"))
	if !m.loadedAt.IsZero() {
		stats += " | loaded " + m.loadedAt.Format("15:04:05")
	}
	return headerStyle.Render(title + lipgloss.NewStyle().Foreground(m.palette.Muted).Render(stats))
}

func (m Model) renderFooter() string {
	var lines []string
	if m.loadErr != nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.palette.Down).Render(firstLine(m.loadErr.Error())))
	}
	lines = append(lines, m.help.View(keys))
	return footerStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderGrid() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if len(m.widgets) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(m.palette.Muted).Render("No charts configured"))
	} else {
		width := m.cardWidth()
		cards := make([]string, len(m.widgets))
		for i, w := range m.widgets {
			cards[i] = render.Card(w.Descriptor, render.CardOptions{
				Width:    width,
				Selected: i == m.selected,
				Palette:  m.palette,
			})
		}
		b.WriteString(layoutCards(cards, m.columns()))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// layoutCards arranges cards in rows of perRow.
func layoutCards(cards []string, perRow int) string {
	if perRow < 1 {
		perRow = 1
	}
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := i + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderDetail() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	if m.viewportReady {
		b.WriteString(m.detailViewport.View())
	} else {
		b.WriteString(m.detailContent())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// detailContent renders the selected chart at full size.
func (m Model) detailContent() string {
	w, ok := m.Selected()
	if !ok {
		return ""
	}
	width := m.width
	if width == 0 {
		width = 80
	}
	graphHeight := m.height / 3
	if graphHeight < 4 {
		graphHeight = 4
	}
	return render.Detail(w.Descriptor, width-2, graphHeight, m.palette)
}

func (m *Model) updateDetailViewportContent() {
	if !m.viewportReady {
		return
	}
	m.detailViewport.SetContent(m.detailContent())
}

func firstLine(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "✗ ")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
