package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dashbuild/dashbuild/internal/chart"
)

// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty); dot n is bit n-1.
const brailleBase = '\u2800'

// brailleDots maps [row][col] to the bit offset inside a braille rune.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

const (
	minGraphWidth  = 4
	minGraphHeight = 2
	axisGlyph      = " ┤"
	xLabelLayout   = "Jan 2"
)

// Detail renders a full-size view of one chart: a braille area graph with Y
// tick labels, the X domain underneath, and every tooltip label.
func Detail(desc chart.Descriptor, width, height int, p Palette) string {
	p = p.Merge()
	muted := lipgloss.NewStyle().Foreground(p.Muted)
	title := lipgloss.NewStyle().Bold(true).Render(desc.Title)

	header := title
	if desc.HasHeadline {
		header += "  " + lipgloss.NewStyle().Bold(true).Foreground(ColorText).Render(desc.Headline)
	}
	if badge := TrendBadge(desc.Trend, p); badge != "" {
		header += "  " + badge
	}

	if desc.Layout == chart.LayoutNoData {
		return header + "\n\n" + muted.Render("No data")
	}

	if height < minGraphHeight {
		height = minGraphHeight
	}

	ext := desc.YExtent()
	format := desc.Y.TickFormat
	if format == nil {
		format = chart.FormatNumber
	}
	top, bottom := format(ext.Max), format(ext.Min)
	labelWidth := max(lipgloss.Width(top), lipgloss.Width(bottom))

	graphWidth := width - labelWidth - lipgloss.Width(axisGlyph)
	if graphWidth < minGraphWidth {
		graphWidth = minGraphWidth
	}

	var rows []string
	if desc.Layout == chart.LayoutSinglePoint {
		rows = ruleGraph(desc.Points[0].Value, ext, graphWidth, height)
	} else {
		rows = brailleGraph(plottedValues(desc), ext, graphWidth, height)
	}

	series := lipgloss.NewStyle().Foreground(p.Series(desc.Color))
	var lines []string
	lines = append(lines, header, "")
	for i, row := range rows {
		label := ""
		switch i {
		case 0:
			label = top
		case len(rows) - 1:
			label = bottom
		}
		lines = append(lines, muted.Render(fmt.Sprintf("%*s%s", labelWidth, label, axisGlyph))+series.Render(row))
	}

	start, end := desc.X.Start.Format(xLabelLayout), desc.X.End.Format(xLabelLayout)
	gap := graphWidth - lipgloss.Width(start) - lipgloss.Width(end)
	if gap < 1 {
		gap = 1
	}
	pad := strings.Repeat(" ", labelWidth+lipgloss.Width(axisGlyph))
	lines = append(lines, muted.Render(pad+start+strings.Repeat(" ", gap)+end), "")

	for _, label := range tipLabels(desc) {
		lines = append(lines, "  "+label)
	}
	return strings.Join(lines, "\n")
}

// tipLabels returns the tooltip text per point. A single point has no tip
// mark, so its value is labelled directly.
func tipLabels(desc chart.Descriptor) []string {
	if tip, ok := desc.Mark(chart.MarkTip); ok {
		return tip.Labels
	}
	var labels []string
	for _, pt := range desc.Points {
		labels = append(labels, desc.DisplayValue(pt.Value))
	}
	return labels
}

// brailleGraph plots values as a filled area, two samples per character
// and four vertical levels per row. Short series are stretched to the full
// width; long ones are downsampled.
func brailleGraph(values []float64, ext chart.Domain, width, height int) []string {
	totalDots := height * 4
	targetPoints := width * 2
	resampled := resampleData(values, targetPoints)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}

	for i, val := range resampled {
		normalized := normalizeValue(val, ext.Min, ext.Max)
		dotHeight := clampInt(int(normalized*float64(totalDots)+0.5), totalDots)
		if dotHeight == 0 {
			dotHeight = 1
		}

		charCol := i / 2
		subCol := i % 2
		for dot := 0; dot < dotHeight; dot++ {
			row := height - 1 - (dot / 4)
			subRow := 3 - (dot % 4)
			grid[row][charCol] |= rune(1 << brailleDots[subRow][subCol])
		}
	}

	rows := make([]string, height)
	for i, row := range grid {
		rows[i] = string(row)
	}
	return rows
}

// ruleGraph draws a horizontal reference line at v with a marker at the
// right edge.
func ruleGraph(v float64, ext chart.Domain, width, height int) []string {
	level := clampInt(int(normalizeValue(v, ext.Min, ext.Max)*float64(height-1)+0.5), height-1)
	target := height - 1 - level

	rows := make([]string, height)
	for i := range rows {
		if i == target {
			rows[i] = strings.Repeat(string(ruleRune), width-1) + string(markerRune)
		} else {
			rows[i] = strings.Repeat(" ", width)
		}
	}
	return rows
}
