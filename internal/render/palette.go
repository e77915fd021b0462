// Package render draws chart descriptors: terminal cards and sparklines with
// lipgloss, and PNG/SVG images with go-chart.
//
// Colour is decided here, never in the chart or trend packages. Those emit a
// semantic category; a Palette maps it to a concrete colour.
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dashbuild/dashbuild/internal/trend"
)

// Default colours, neon-on-dark.
const (
	ColorUp       = lipgloss.Color("#39FF14") // Neon green
	ColorDown     = lipgloss.Color("#FF0055") // Hot red-pink
	ColorFlat     = lipgloss.Color("#B4B4D0") // Lavender gray
	ColorAccent   = lipgloss.Color("#00FFFF") // Neon cyan
	ColorMuted    = lipgloss.Color("#6B6B8D") // Purple-gray
	ColorBorder   = lipgloss.Color("#2A2A4A") // Glass border
	ColorSelected = lipgloss.Color("#FF2E97") // Neon pink
	ColorText     = lipgloss.Color("#FFFFFF")
)

// Palette resolves semantic trend categories and chart chrome to colours.
type Palette struct {
	Up     lipgloss.Color
	Down   lipgloss.Color
	Flat   lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

// DefaultPalette returns the built-in colours.
func DefaultPalette() Palette {
	return Palette{
		Up:     ColorUp,
		Down:   ColorDown,
		Flat:   ColorFlat,
		Accent: ColorAccent,
		Muted:  ColorMuted,
	}
}

// Merge returns p with any empty colour filled from DefaultPalette.
func (p Palette) Merge() Palette {
	def := DefaultPalette()
	if p.Up == "" {
		p.Up = def.Up
	}
	if p.Down == "" {
		p.Down = def.Down
	}
	if p.Flat == "" {
		p.Flat = def.Flat
	}
	if p.Accent == "" {
		p.Accent = def.Accent
	}
	if p.Muted == "" {
		p.Muted = def.Muted
	}
	return p
}

// Resolve maps a semantic category to its colour.
func (p Palette) Resolve(s trend.Semantic) lipgloss.Color {
	switch s {
	case trend.SemanticUp:
		return p.Up
	case trend.SemanticDown:
		return p.Down
	default:
		return p.Flat
	}
}

// Series returns the colour for a chart's marks: its own, or the accent.
func (p Palette) Series(color string) lipgloss.Color {
	if color == "" {
		return p.Accent
	}
	return lipgloss.Color(color)
}

// Trend glyphs, one per direction.
const (
	GlyphUp   = "▲"
	GlyphDown = "▼"
	GlyphFlat = "■"
)

// Glyph returns the icon for a direction; DirectionNone has none.
func Glyph(d trend.Direction) string {
	switch d {
	case trend.DirectionUp:
		return GlyphUp
	case trend.DirectionDown:
		return GlyphDown
	case trend.DirectionFlat:
		return GlyphFlat
	default:
		return ""
	}
}

// TrendBadge renders the glyph and delta text in the semantic colour.
// A "no trend" descriptor renders as the empty string.
func TrendBadge(d trend.Descriptor, p Palette) string {
	if d.IsNone() {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(p.Resolve(d.Semantic))
	return style.Render(Glyph(d.Direction) + " " + d.DisplayText)
}
