package chart

import "github.com/dashbuild/dashbuild/internal/metric"

// MarkKind identifies a declarative plotting primitive.
type MarkKind string

const (
	// MarkArea fills from Baseline up to the value curve.
	MarkArea MarkKind = "area"
	// MarkLine strokes through the points.
	MarkLine MarkKind = "line"
	// MarkDot draws one marker per point.
	MarkDot MarkKind = "dot"
	// MarkRuleY is a horizontal reference line at Y.
	MarkRuleY MarkKind = "rule-y"
	// MarkTip is a pointer-following tooltip; Labels parallel Points.
	MarkTip MarkKind = "tip"
)

// Mark is one layer of a chart.
type Mark struct {
	Kind     MarkKind
	Points   []metric.Point
	Y        float64
	Baseline float64
	Labels   []string
	Color    string
}

// singlePointMarks renders a lone sample as a reference line plus one marker.
func singlePointMarks(p metric.Point, color string) []Mark {
	return []Mark{
		{Kind: MarkRuleY, Y: p.Value, Color: color},
		{Kind: MarkDot, Points: []metric.Point{p}, Color: color},
	}
}

// seriesMarks is area, line, dots, and tooltip over d.Points.
func seriesMarks(d Descriptor, dateLayout string) []Mark {
	labels := make([]string, len(d.Points))
	for i, p := range d.Points {
		labels[i] = tipLabel(d, p, dateLayout)
	}

	return []Mark{
		{Kind: MarkArea, Points: d.Points, Baseline: d.Baseline, Color: d.Color},
		{Kind: MarkLine, Points: d.Points, Color: d.Color},
		{Kind: MarkDot, Points: d.Points, Color: d.Color},
		{Kind: MarkTip, Points: d.Points, Labels: labels, Color: d.Color},
	}
}

// Mark returns the first mark of the given kind.
func (d Descriptor) Mark(kind MarkKind) (Mark, bool) {
	for _, m := range d.Marks {
		if m.Kind == kind {
			return m, true
		}
	}
	return Mark{}, false
}
