package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dashbuild/dashbuild/internal/chart"
	"github.com/dashbuild/dashbuild/internal/errors"
	"github.com/dashbuild/dashbuild/internal/metric"
	"github.com/dashbuild/dashbuild/internal/trend"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func init() {
	// Force TrueColor output in tests so we can verify ANSI color codes
	lipgloss.SetColorProfile(termenv.TrueColor)
}

var f = metric.Float

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func build(opts chart.Options, values ...*float64) chart.Descriptor {
	h := make(metric.History, len(values))
	for i, v := range values {
		h[i] = metric.Snapshot{Date: day(i + 1), Metrics: map[string]*float64{"x": v}}
	}
	return chart.Build(h, metric.LatestOf(h), "x", opts)
}

func TestPalette_Resolve(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, ColorUp, p.Resolve(trend.SemanticUp))
	assert.Equal(t, ColorDown, p.Resolve(trend.SemanticDown))
	assert.Equal(t, ColorFlat, p.Resolve(trend.SemanticFlat))
}

func TestPalette_Merge(t *testing.T) {
	p := Palette{Up: lipgloss.Color("#0000FF")}.Merge()
	assert.Equal(t, lipgloss.Color("#0000FF"), p.Up)
	assert.Equal(t, ColorDown, p.Down)
	assert.Equal(t, ColorAccent, p.Accent)
}

func TestPalette_Series(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, ColorAccent, p.Series(""))
	assert.Equal(t, lipgloss.Color("#123456"), p.Series("#123456"))
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		dir  trend.Direction
		want string
	}{
		{trend.DirectionUp, "▲"},
		{trend.DirectionDown, "▼"},
		{trend.DirectionFlat, "■"},
		{trend.DirectionNone, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			assert.Equal(t, tt.want, Glyph(tt.dir))
		})
	}
}

func TestTrendBadge(t *testing.T) {
	p := DefaultPalette()

	badge := TrendBadge(trend.Descriptor{DisplayText: "+5", Direction: trend.DirectionUp, Semantic: trend.SemanticUp}, p)
	assert.Contains(t, badge, "▲ +5")
	assert.Contains(t, badge, "\x1b[", "badge should be coloured")

	assert.Empty(t, TrendBadge(trend.None(), p))
}

func TestSparkline(t *testing.T) {
	ramp := build(chart.Options{}, f(0), f(1), f(2), f(3), f(4), f(5), f(6), f(7))

	tests := []struct {
		name  string
		desc  chart.Descriptor
		width int
		want  string
	}{
		{"full width", ramp, 8, "▁▂▃▄▅▆▇█"},
		{"right aligned", ramp, 10, "  ▁▂▃▄▅▆▇█"},
		{"downsampled keeps peaks", ramp, 4, "▂▄▆█"},
		{"single point", build(chart.Options{}, f(3)), 5, "────●"},
		{"no data", build(chart.Options{}, nil, nil), 5, ""},
		{"zero width", ramp, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sparkline(tt.desc, tt.width))
		})
	}
}

func TestSparkline_Reversed(t *testing.T) {
	desc := build(chart.Options{YDomain: &chart.Domain{Min: 1, Max: 5}, Reverse: true}, f(1), f(2))
	require.True(t, desc.Reversed)
	// low raw values draw high
	assert.Equal(t, "█▆", Sparkline(desc, 2))
}

func TestResampleData(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		target int
		want   []float64
	}{
		{"empty", nil, 3, nil},
		{"same size", []float64{1, 2}, 2, []float64{1, 2}},
		{"single value fills", []float64{4}, 3, []float64{4, 4, 4}},
		{"downsample max", []float64{1, 9, 2, 3}, 2, []float64{9, 3}},
		{"upsample linear", []float64{0, 10}, 3, []float64{0, 5, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resampleData(tt.data, tt.target))
		})
	}
}

func TestNormalizeAndClamp(t *testing.T) {
	assert.Equal(t, 0.5, normalizeValue(5, 0, 10))
	assert.Equal(t, 0.5, normalizeValue(5, 5, 5))
	assert.Equal(t, 0, clampInt(-3, 7))
	assert.Equal(t, 7, clampInt(12, 7))
	assert.Equal(t, 4, clampInt(4, 7))
}

func TestCard(t *testing.T) {
	desc := build(chart.Options{Title: "Coverage", Suffix: "%"}, f(80), f(85))

	card := Card(desc, CardOptions{Width: 30})
	lines := strings.Split(card, "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.Equal(t, 30, lipgloss.Width(line))
	}
	assert.Contains(t, card, "Coverage")
	assert.Contains(t, card, "85%")
	assert.Contains(t, card, "▲ +5")
}

func TestCard_NoData(t *testing.T) {
	desc := build(chart.Options{Title: "Empty"}, nil)

	card := Card(desc, CardOptions{})
	assert.Contains(t, card, "no data")
	assert.Contains(t, card, "n/a")
	assert.Equal(t, DefaultCardWidth, lipgloss.Width(strings.Split(card, "\n")[0]))
}

func TestCard_SelectedBorder(t *testing.T) {
	desc := build(chart.Options{Title: "Sel"}, f(1), f(2))
	plain := Card(desc, CardOptions{Width: 20})
	selected := Card(desc, CardOptions{Width: 20, Selected: true})
	assert.NotEqual(t, plain, selected)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestDetail(t *testing.T) {
	desc := build(chart.Options{Title: "Build time", Suffix: "s"}, f(10), f(12), f(11))

	out := Detail(desc, 40, 4, DefaultPalette())
	assert.Contains(t, out, "Build time")
	assert.Contains(t, out, "11s")
	assert.Contains(t, out, "Jan 1, 2026 : 10s")
	assert.Contains(t, out, "Jan 3, 2026 : 11s")
	assert.Contains(t, out, "Jan 1")
	assert.Contains(t, out, "Jan 3")
}

func TestDetail_SinglePoint(t *testing.T) {
	desc := build(chart.Options{Title: "One"}, f(7))

	out := Detail(desc, 30, 3, DefaultPalette())
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "  7")
}

func TestDetail_NoData(t *testing.T) {
	desc := build(chart.Options{Title: "None"}, nil)
	assert.Contains(t, Detail(desc, 30, 3, DefaultPalette()), "No data")
}

func TestBrailleGraph(t *testing.T) {
	rows := brailleGraph([]float64{0, 10}, chart.Domain{Min: 0, Max: 10}, 1, 1)
	require.Len(t, rows, 1)
	// the zero sample still shows its bottom dot; the max fills the column
	assert.Equal(t, string(rune(brailleBase|1<<6|1<<3|1<<4|1<<5|1<<7)), rows[0])
}

func TestRuleGraph(t *testing.T) {
	rows := ruleGraph(10, chart.Domain{Min: 0, Max: 10}, 4, 3)
	assert.Equal(t, []string{"───●", "    ", "    "}, rows)
}

func TestExport_PNG(t *testing.T) {
	desc := build(chart.Options{Title: "PNG"}, f(1), f(3), f(2))

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, desc, ExportOptions{Format: FormatPNG}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestExport_SVG(t *testing.T) {
	desc := build(chart.Options{Title: "SVG"}, f(1), f(3))

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, desc, ExportOptions{Format: FormatSVG, Width: 400, Height: 200}))
	assert.Contains(t, buf.String(), "<svg")
}

func TestExport_SinglePoint(t *testing.T) {
	desc := build(chart.Options{Title: "One"}, f(4))

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, desc, ExportOptions{Format: FormatSVG}))
	assert.Contains(t, buf.String(), "<svg")
}

func TestExport_NoData(t *testing.T) {
	desc := build(chart.Options{Title: "Empty"}, nil)

	var buf bytes.Buffer
	err := Export(&buf, desc, ExportOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRender))
	assert.Contains(t, err.Error(), "Nothing to plot")
	assert.Zero(t, buf.Len())
}

func TestBuildImage_Series(t *testing.T) {
	desc := build(chart.Options{Title: "S", Color: "#FF0000"}, f(1), f(2))

	ch := buildImage(desc, ExportOptions{})
	assert.Equal(t, DefaultExportWidth, ch.Width)
	assert.Equal(t, DefaultExportHeight, ch.Height)
	// area, line, dots; the tip mark has no static rendering
	assert.Len(t, ch.Series, 3)
	assert.NotEmpty(t, ch.YAxis.Ticks)
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, drawing.Color{R: 255, G: 0, B: 0, A: 255}, hexColor("#FF0000"))
	assert.Equal(t, hexColor(ColorAccent), hexColor("212"))
}
