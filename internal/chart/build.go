// Package chart turns a metric history into render-ready chart data: the
// plotted points, axis configuration, formatters, and a declarative mark list
// for whatever plotting layer draws it.
//
// Build never fails. Degenerate inputs produce distinct layouts
// (LayoutNoData, LayoutSinglePoint) that renderers must handle.
package chart

import (
	"fmt"

	"github.com/dashbuild/dashbuild/internal/metric"
	"github.com/dashbuild/dashbuild/internal/trend"
)

// Layout says which shape of chart a descriptor holds.
type Layout string

const (
	LayoutNoData      Layout = "no-data"
	LayoutSinglePoint Layout = "single-point"
	LayoutSeries      Layout = "series"
)

// Descriptor is everything a renderer needs to draw one metric chart.
type Descriptor struct {
	Title  string
	Color  string
	Suffix string
	Layout Layout

	// Headline is the current value, formatted. Always the true value,
	// even when the chart body is reversed.
	Headline    string
	HasHeadline bool

	Trend trend.Descriptor

	// Points are the plotted points; reflected through the Y domain when
	// Reversed is set.
	Points   []metric.Point
	Reversed bool

	X        TimeDomain
	Y        Axis
	Baseline float64
	Marks    []Mark

	display Formatter
}

// DisplayValue formats a plotted value for people: it undoes any axis
// reversal, then applies the value formatter.
func (d Descriptor) DisplayValue(v float64) string {
	if d.display == nil {
		return FormatNumber(v)
	}
	return d.display(v)
}

// Build projects key out of history and assembles the chart descriptor.
// The trend and headline always come from the original, unreflected data.
func Build(h metric.History, latest metric.Latest, key string, opts Options) Descriptor {
	d := Descriptor{
		Title:  opts.Title,
		Color:  opts.Color,
		Suffix: opts.Suffix,
		Trend:  trend.Compute(h, latest, key, trend.Options{Inverse: opts.Inverse, Neutral: opts.Neutral}),
	}

	valueFormat := opts.valueFormatter()
	if v, ok := latest.Value(key); ok {
		d.Headline = valueFormat(v)
		d.HasHeadline = true
	}

	var domain *Domain
	if opts.YDomain != nil {
		dom := *opts.YDomain
		domain = &dom
		d.Baseline = dom.Min
	}
	d.Reversed = opts.Reverse && domain != nil

	unreverse := func(v float64) float64 { return v }
	if d.Reversed {
		unreverse = domain.Reflect
	}

	raw := h.Project(key)
	d.display = func(v float64) string { return valueFormat(unreverse(v)) }
	d.Y = Axis{
		Domain:     domain,
		TickFormat: tickFormatter(opts, raw, unreverse),
	}

	if len(raw) == 0 {
		d.Layout = LayoutNoData
		return d
	}

	d.Points = make([]metric.Point, len(raw))
	for i, p := range raw {
		d.Points[i] = metric.Point{Date: p.Date, Value: unreverse(p.Value)}
	}

	if len(d.Points) == 1 {
		p := d.Points[0]
		d.Layout = LayoutSinglePoint
		d.X = TimeDomain{Start: p.Date.AddDate(0, 0, -SinglePointPadDays), End: p.Date}
		d.Marks = singlePointMarks(p, d.Color)
		return d
	}

	d.Layout = LayoutSeries
	d.X = TimeDomain{Start: d.Points[0].Date, End: d.Points[len(d.Points)-1].Date}
	d.Marks = seriesMarks(d, opts.dateLayout())
	return d
}

// tickFormatter picks the first matching rule: explicit formatter, suffix,
// all-integer data, then the general number format. Ticks sit at plotted
// positions, so reversed axes un-reverse before formatting.
func tickFormatter(opts Options, raw []metric.Point, unreverse func(float64) float64) Formatter {
	var base Formatter
	switch {
	case opts.TickFormat != nil:
		base = opts.TickFormat
	case opts.Suffix != "":
		base = WithSuffix(FormatNumber, opts.Suffix)
	case allIntegers(raw):
		base = FormatInt
	default:
		base = FormatNumber
	}
	return func(v float64) string {
		return base(unreverse(v))
	}
}

func allIntegers(points []metric.Point) bool {
	for _, p := range points {
		if !isInteger(p.Value) {
			return false
		}
	}
	return true
}

// tipLabel is the tooltip text for one plotted point.
func tipLabel(d Descriptor, p metric.Point, dateLayout string) string {
	return fmt.Sprintf("%s : %s", p.Date.Format(dateLayout), d.DisplayValue(p.Value))
}
