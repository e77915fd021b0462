package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dashbuild/dashbuild/internal/chart"
)

// Card layout constants
const (
	DefaultCardWidth = 32
	minCardWidth     = 12
	cardChrome       = 4 // border + horizontal padding
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	cardSelectedStyle = cardStyle.
				BorderForeground(ColorSelected)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	cardHeadlineStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Bold(true)
)

// CardOptions controls how a card is drawn.
type CardOptions struct {
	Width    int
	Selected bool
	Palette  Palette
}

// Card renders one widget: title, headline with trend badge, and a
// sparkline. Charts without data show a placeholder instead.
func Card(desc chart.Descriptor, opts CardOptions) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultCardWidth
	}
	if width < minCardWidth {
		width = minCardWidth
	}
	inner := width - cardChrome
	p := opts.Palette.Merge()
	muted := lipgloss.NewStyle().Foreground(p.Muted)

	lines := []string{cardTitleStyle.Render(truncate(desc.Title, inner))}

	headline := muted.Render("n/a")
	if desc.HasHeadline {
		headline = cardHeadlineStyle.Render(desc.Headline)
	}
	if badge := TrendBadge(desc.Trend, p); badge != "" {
		headline += " " + badge
	}
	lines = append(lines, headline)

	if desc.Layout == chart.LayoutNoData {
		lines = append(lines, muted.Render("no data"))
	} else {
		spark := Sparkline(desc, inner)
		lines = append(lines, lipgloss.NewStyle().Foreground(p.Series(desc.Color)).Render(spark))
	}

	style := cardStyle
	if opts.Selected {
		style = cardSelectedStyle
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// truncate shortens s to maxLen display cells, ending with an ellipsis.
func truncate(s string, maxLen int) string {
	if maxLen <= 1 || lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > maxLen {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
