package chart

import (
	"strings"
	"testing"
	"time"

	"github.com/dashbuild/dashbuild/internal/metric"
	"github.com/dashbuild/dashbuild/internal/trend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var f = metric.Float

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func series(key string, values ...*float64) metric.History {
	h := make(metric.History, len(values))
	for i, v := range values {
		h[i] = metric.Snapshot{Date: day(i + 1), Metrics: map[string]*float64{key: v}}
	}
	return h
}

func kinds(marks []Mark) []MarkKind {
	var out []MarkKind
	for _, m := range marks {
		out = append(out, m.Kind)
	}
	return out
}

func TestBuild_TwoPointScenario(t *testing.T) {
	h := series("x", f(10), f(15))
	d := Build(h, metric.Latest{"x": f(15)}, "x", Options{Title: "X", Color: "#00FFFF"})

	assert.Equal(t, LayoutSeries, d.Layout)
	assert.Equal(t, trend.Descriptor{DisplayText: "+5", Direction: trend.DirectionUp, Semantic: trend.SemanticUp}, d.Trend)
	assert.Equal(t, "15", d.Headline)
	assert.True(t, d.HasHeadline)
	assert.Equal(t, TimeDomain{Start: day(1), End: day(2)}, d.X)
	assert.Equal(t, []MarkKind{MarkArea, MarkLine, MarkDot, MarkTip}, kinds(d.Marks))

	for _, m := range d.Marks {
		assert.Equal(t, "#00FFFF", m.Color)
	}

	inv := Build(h, metric.Latest{"x": f(15)}, "x", Options{Inverse: true})
	assert.Equal(t, trend.SemanticDown, inv.Trend.Semantic)
	assert.Equal(t, trend.DirectionUp, inv.Trend.Direction)
}

func TestBuild_NoData(t *testing.T) {
	t.Run("empty history and no latest", func(t *testing.T) {
		d := Build(nil, metric.Latest{}, "x", Options{})
		assert.Equal(t, LayoutNoData, d.Layout)
		assert.False(t, d.HasHeadline)
		assert.Empty(t, d.Headline)
		assert.Empty(t, d.Marks)
		assert.Empty(t, d.Points)
		assert.Equal(t, trend.None(), d.Trend)
	})

	t.Run("empty history still shows latest", func(t *testing.T) {
		d := Build(metric.History{}, metric.Latest{"x": f(42)}, "x", Options{Suffix: "ms"})
		assert.Equal(t, LayoutNoData, d.Layout)
		assert.True(t, d.HasHeadline)
		assert.Equal(t, "42ms", d.Headline)
		assert.True(t, d.Trend.IsNone())
	})

	t.Run("all values null", func(t *testing.T) {
		d := Build(series("x", nil, nil, nil), metric.Latest{}, "x", Options{})
		assert.Equal(t, LayoutNoData, d.Layout)
	})

	t.Run("unknown key", func(t *testing.T) {
		d := Build(series("x", f(1), f(2)), metric.Latest{"x": f(2)}, "nope", Options{})
		assert.Equal(t, LayoutNoData, d.Layout)
		assert.True(t, d.Trend.IsNone())
	})
}

func TestBuild_SinglePoint(t *testing.T) {
	h := metric.History{{Date: day(10), Metrics: map[string]*float64{"y": f(3)}}}
	d := Build(h, metric.Latest{"y": f(3)}, "y", Options{YDomain: &Domain{Min: 1, Max: 5}, Reverse: true})

	require.Equal(t, LayoutSinglePoint, d.Layout)
	require.Len(t, d.Points, 1)
	assert.Equal(t, 3.0, d.Points[0].Value, "1+5-3 = 3")
	assert.True(t, d.Reversed)
	assert.Equal(t, "3", d.DisplayValue(d.Points[0].Value))
	assert.Equal(t, "3", d.Headline)

	assert.Equal(t, day(4), d.X.Start, "padded exactly six days before the point")
	assert.Equal(t, day(10), d.X.End)

	assert.Equal(t, []MarkKind{MarkRuleY, MarkDot}, kinds(d.Marks))
	rule, ok := d.Mark(MarkRuleY)
	require.True(t, ok)
	assert.Equal(t, 3.0, rule.Y)
	dot, _ := d.Mark(MarkDot)
	assert.Len(t, dot.Points, 1)

	_, hasArea := d.Mark(MarkArea)
	_, hasLine := d.Mark(MarkLine)
	assert.False(t, hasArea)
	assert.False(t, hasLine)
}

func TestBuild_SinglePointAmongNulls(t *testing.T) {
	h := series("x", nil, f(7), nil)
	d := Build(h, metric.Latest{}, "x", Options{})

	assert.Equal(t, LayoutSinglePoint, d.Layout)
	assert.Equal(t, day(2).AddDate(0, 0, -6), d.X.Start)
	rule, _ := d.Mark(MarkRuleY)
	assert.Equal(t, 7.0, rule.Y)
	assert.False(t, d.HasHeadline)
}

func TestBuild_Reverse(t *testing.T) {
	h := series("r", f(1), f(2), f(4.5), f(5))
	dom := &Domain{Min: 1, Max: 5}
	d := Build(h, metric.Latest{"r": f(5)}, "r", Options{YDomain: dom, Reverse: true, Inverse: true})

	require.True(t, d.Reversed)
	plotted := make([]float64, len(d.Points))
	for i, p := range d.Points {
		plotted[i] = p.Value
	}
	assert.Equal(t, []float64{5, 4, 1.5, 1}, plotted)

	// the trend is computed on raw values
	assert.Equal(t, trend.DirectionUp, d.Trend.Direction)
	assert.Equal(t, "+0.5", d.Trend.DisplayText)
	assert.Equal(t, trend.SemanticDown, d.Trend.Semantic)

	assert.Equal(t, "5", d.Headline, "headline is the true value")

	tip, ok := d.Mark(MarkTip)
	require.True(t, ok)
	assert.Equal(t, "Jan 3, 2026 : 4.5", tip.Labels[2])

	// inputs are not mutated
	v, _ := h[0].Value("r")
	assert.Equal(t, 1.0, v)
	assert.Equal(t, Domain{Min: 1, Max: 5}, *dom)
	assert.NotSame(t, dom, d.Y.Domain)
}

func TestBuild_ReverseRoundTrip(t *testing.T) {
	dom := Domain{Min: 1, Max: 5}
	for _, valueFormat := range []Formatter{nil, FormatFixed(2)} {
		d := Build(series("r", f(2)), metric.Latest{}, "r", Options{
			YDomain: &dom, Reverse: true, Suffix: "★", ValueFormat: valueFormat,
		})
		format := d.DisplayValue
		plain := Build(nil, nil, "r", Options{Suffix: "★", ValueFormat: valueFormat})

		for _, v := range []float64{1, 2, 3, 4.5, 5} {
			assert.Equal(t, plain.DisplayValue(v), format(dom.Reflect(v)))
		}
	}
}

func TestBuild_ReverseWithoutDomainIsIgnored(t *testing.T) {
	d := Build(series("x", f(1), f(3)), metric.Latest{"x": f(3)}, "x", Options{Reverse: true})

	assert.False(t, d.Reversed)
	assert.Nil(t, d.Y.Domain)
	assert.Equal(t, 1.0, d.Points[0].Value)
	assert.Equal(t, "3", d.DisplayValue(3))
}

func TestBuild_AreaBaseline(t *testing.T) {
	h := series("x", f(3), f(4))

	d := Build(h, nil, "x", Options{})
	area, ok := d.Mark(MarkArea)
	require.True(t, ok)
	assert.Equal(t, 0.0, area.Baseline)

	d = Build(h, nil, "x", Options{YDomain: &Domain{Min: 2, Max: 10}})
	area, _ = d.Mark(MarkArea)
	assert.Equal(t, 2.0, area.Baseline)
}

func TestBuild_TipLabels(t *testing.T) {
	h := series("x", f(1.5), nil, f(2))

	d := Build(h, nil, "x", Options{Suffix: "%"})
	tip, ok := d.Mark(MarkTip)
	require.True(t, ok)
	assert.Equal(t, []string{"Jan 1, 2026 : 1.5%", "Jan 3, 2026 : 2%"}, tip.Labels)

	d = Build(h, nil, "x", Options{DateLayout: "2006-01-02", ValueFormat: FormatFixed(1)})
	tip, _ = d.Mark(MarkTip)
	assert.Equal(t, []string{"2026-01-01 : 1.5", "2026-01-03 : 2.0"}, tip.Labels)
}

func TestBuild_TickFormatPolicy(t *testing.T) {
	custom := func(v float64) string { return "<" + FormatNumber(v) + ">" }

	tests := []struct {
		name string
		h    metric.History
		opts Options
		in   float64
		want string
	}{
		{"explicit formatter wins", series("x", f(1.5)), Options{TickFormat: custom, Suffix: "s"}, 2, "<2>"},
		{"suffix integer", series("x", f(1.5)), Options{Suffix: "s"}, 2, "2s"},
		{"suffix decimals trimmed", series("x", f(1)), Options{Suffix: "s"}, 2.5, "2.5s"},
		{"suffix two decimals", series("x", f(1)), Options{Suffix: "s"}, 1.256, "1.26s"},
		{"integer data", series("x", f(1), f(2)), Options{}, 2.5, "3"},
		{"no data is integer", nil, Options{}, 1.4, "1"},
		{"decimal data", series("x", f(1), f(2.5)), Options{}, 2.125, "2.13"},
		{"decimal data trims zeros", series("x", f(1), f(2.5)), Options{}, 2.10, "2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Build(tt.h, nil, "x", tt.opts)
			assert.Equal(t, tt.want, d.Y.TickFormat(tt.in))
		})
	}
}

func TestBuild_ReversedTicksCarryTrueValue(t *testing.T) {
	dom := &Domain{Min: 1, Max: 5}
	stars := func(v float64) string { return strings.Repeat("*", int(v)) }

	d := Build(series("r", f(2)), nil, "r", Options{YDomain: dom, Reverse: true, TickFormat: stars})
	assert.Equal(t, "*****", d.Y.TickFormat(1), "top of a reversed axis is the raw max")
	assert.Equal(t, "*", d.Y.TickFormat(5))

	d = Build(series("r", f(2)), nil, "r", Options{YDomain: dom, Reverse: true})
	ticks := d.Ticks(5)
	require.Len(t, ticks, 5)
	assert.Equal(t, Tick{Value: 1, Label: "5"}, ticks[0])
	assert.Equal(t, Tick{Value: 5, Label: "1"}, ticks[4])
}

func TestYExtent(t *testing.T) {
	d := Build(series("x", f(4), f(8)), nil, "x", Options{})
	assert.Equal(t, Domain{Min: 0, Max: 8}, d.YExtent(), "fitted extent includes the zero baseline")

	d = Build(series("x", f(-2), f(-8)), nil, "x", Options{})
	assert.Equal(t, Domain{Min: -8, Max: 0}, d.YExtent())

	d = Build(series("x", f(4)), nil, "x", Options{})
	assert.Equal(t, Domain{Min: 3, Max: 5}, d.YExtent(), "lone point gets headroom")

	d = Build(series("x", f(4), f(8)), nil, "x", Options{YDomain: &Domain{Min: 0, Max: 100}})
	assert.Equal(t, Domain{Min: 0, Max: 100}, d.YExtent())

	d = Build(nil, nil, "x", Options{})
	assert.Equal(t, Domain{Min: 0, Max: 1}, d.YExtent())
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		n      int
		want   []float64
	}{
		{"unit steps", 1, 5, 5, []float64{1, 2, 3, 4, 5}},
		{"percent", 0, 100, 5, []float64{0, 25, 50, 75, 100}},
		{"fractional", 0, 1, 5, []float64{0, 0.25, 0.5, 0.75, 1}},
		{"offset range", 3, 17, 4, []float64{5, 10, 15}},
		{"too few ticks", 0, 1, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, niceSteps(tt.lo, tt.hi, tt.n))
		})
	}
}

func TestSummary(t *testing.T) {
	d := Build(series("x", f(10), f(15)), metric.Latest{"x": f(15)}, "x", Options{Title: "X", Suffix: "%"})
	s := d.Summary()

	assert.Equal(t, "X", s.Title)
	assert.Equal(t, LayoutSeries, s.Layout)
	assert.Equal(t, "15%", s.Headline)
	require.NotNil(t, s.XDomain)
	require.Len(t, s.Points, 2)
	assert.Equal(t, "10%", s.Points[0].Display)
	assert.Equal(t, []MarkKind{MarkArea, MarkLine, MarkDot, MarkTip}, s.Marks)
	assert.NotEmpty(t, s.Ticks)

	empty := Build(nil, nil, "x", Options{}).Summary()
	assert.Equal(t, LayoutNoData, empty.Layout)
	assert.Nil(t, empty.XDomain)
	assert.Empty(t, empty.Points)
}

func TestBuild_NonFiniteHistory(t *testing.T) {
	for _, bad := range []string{".inf", "-.inf", ".nan"} {
		t.Run(bad, func(t *testing.T) {
			ds, err := metric.Parse([]byte("history:\n" +
				"  - date: 2026-01-01\n    metrics: {x: 5}\n" +
				"  - date: 2026-01-02\n    metrics: {x: " + bad + "}\n"))
			require.NoError(t, err)

			var d Descriptor
			require.NotPanics(t, func() {
				d = Build(ds.History, ds.Latest, "x", Options{Suffix: "%"})
				d.Summary()
			})
			assert.True(t, d.Trend.IsNone())
			assert.False(t, d.HasHeadline)
			assert.Equal(t, LayoutSinglePoint, d.Layout)
			assert.Equal(t, []metric.Point{{Date: day(1), Value: 5}}, d.Points)
		})
	}
}
