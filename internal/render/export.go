package render

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dashbuild/dashbuild/internal/chart"
	"github.com/dashbuild/dashbuild/internal/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ExportFormat is an image encoding supported by Export.
type ExportFormat string

const (
	FormatPNG ExportFormat = "png"
	FormatSVG ExportFormat = "svg"
)

// Default image size in pixels.
const (
	DefaultExportWidth  = 800
	DefaultExportHeight = 320
)

const (
	areaAlpha  = 64
	lineWidth  = 2
	dotWidth   = 4
	ruleWidth  = 1
	tickTarget = chart.DefaultTickCount
)

// ExportOptions controls image export.
type ExportOptions struct {
	Format     ExportFormat
	Width      int
	Height     int
	Palette    Palette
	DateLayout string
}

// Export draws the descriptor's marks as a static image.
func Export(w io.Writer, desc chart.Descriptor, opts ExportOptions) error {
	if desc.Layout == chart.LayoutNoData {
		return errors.New(errors.ErrRender,
			"Nothing to plot for "+quoteTitle(desc.Title),
			"Add at least one snapshot with a value for this metric")
	}

	ch := buildImage(desc, opts)

	provider := gochart.PNG
	if opts.Format == FormatSVG {
		provider = gochart.SVG
	}
	if err := ch.Render(provider, w); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Couldn't render chart "+quoteTitle(desc.Title),
			"Try a larger --width and --height")
	}
	return nil
}

func quoteTitle(title string) string {
	if title == "" {
		return "chart"
	}
	return "'" + title + "'"
}

// buildImage maps marks onto go-chart series.
func buildImage(desc chart.Descriptor, opts ExportOptions) gochart.Chart {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultExportWidth
	}
	if height <= 0 {
		height = DefaultExportHeight
	}
	p := opts.Palette.Merge()
	color := hexColor(p.Series(desc.Color))

	var series []gochart.Series
	for _, m := range desc.Marks {
		switch m.Kind {
		case chart.MarkArea:
			xs, ys := split(m)
			series = append(series, gochart.TimeSeries{
				Name:    "area",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					FillColor:   color.WithAlpha(areaAlpha),
				},
			})
		case chart.MarkLine:
			xs, ys := split(m)
			series = append(series, gochart.TimeSeries{
				Name:    "line",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: lineWidth,
					StrokeColor: color,
				},
			})
		case chart.MarkDot:
			xs, ys := split(m)
			if len(xs) == 1 {
				// go-chart needs two X values to establish a range
				xs = append(xs, xs[0])
				ys = append(ys, ys[0])
			}
			series = append(series, gochart.TimeSeries{
				Name:    "dots",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					DotWidth:    dotWidth,
					DotColor:    color,
				},
			})
		case chart.MarkRuleY:
			series = append(series, gochart.TimeSeries{
				Name:    "rule",
				XValues: []time.Time{desc.X.Start, desc.X.End},
				YValues: []float64{m.Y, m.Y},
				Style: gochart.Style{
					StrokeWidth: ruleWidth,
					StrokeColor: color.WithAlpha(160),
				},
			})
		}
	}

	ext := desc.YExtent()
	var ticks []gochart.Tick
	for _, t := range desc.Ticks(tickTarget) {
		ticks = append(ticks, gochart.Tick{Value: t.Value, Label: t.Label})
	}

	layout := opts.DateLayout
	if layout == "" {
		layout = chart.DefaultDateLayout
	}

	return gochart.Chart{
		Title:      desc.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{
				Min: gochart.TimeToFloat64(desc.X.Start),
				Max: gochart.TimeToFloat64(desc.X.End),
			},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return gochart.TimeFromFloat64(f).Format(layout)
				}
				return ""
			},
		},
		YAxis: gochart.YAxis{
			Name:  desc.Suffix,
			Range: &gochart.ContinuousRange{Min: ext.Min, Max: ext.Max},
			Ticks: ticks,
		},
		Series: series,
	}
}

func split(m chart.Mark) ([]time.Time, []float64) {
	xs := make([]time.Time, len(m.Points))
	ys := make([]float64, len(m.Points))
	for i, p := range m.Points {
		xs[i] = p.Date
		ys[i] = p.Value
	}
	return xs, ys
}

// hexColor converts a "#rrggbb" terminal colour to a drawing colour.
// ANSI colour numbers fall back to the default accent.
func hexColor(c lipgloss.Color) drawing.Color {
	s := string(c)
	if !strings.HasPrefix(s, "#") {
		s = string(ColorAccent)
	}
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}
