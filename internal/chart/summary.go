package chart

import (
	"time"

	"github.com/dashbuild/dashbuild/internal/trend"
)

// Summary is a serialisable snapshot of a Descriptor. Formatters are applied
// rather than carried, so the result marshals to JSON or YAML.
type Summary struct {
	Title    string           `json:"title,omitempty" yaml:"title,omitempty"`
	Layout   Layout           `json:"layout" yaml:"layout"`
	Headline string           `json:"headline,omitempty" yaml:"headline,omitempty"`
	Trend    trend.Descriptor `json:"trend" yaml:"trend"`
	Reversed bool             `json:"reversed" yaml:"reversed"`
	XDomain  *TimeDomain      `json:"x_domain,omitempty" yaml:"x_domain,omitempty"`
	YDomain  Domain           `json:"y_domain" yaml:"y_domain"`
	Points   []PointSummary   `json:"points,omitempty" yaml:"points,omitempty"`
	Ticks    []Tick           `json:"ticks,omitempty" yaml:"ticks,omitempty"`
	Marks    []MarkKind       `json:"marks,omitempty" yaml:"marks,omitempty"`
}

// PointSummary is a plotted point with its human-readable value.
type PointSummary struct {
	Date    time.Time `json:"date" yaml:"date"`
	Plotted float64   `json:"plotted" yaml:"plotted"`
	Display string    `json:"display" yaml:"display"`
}

// DefaultTickCount is the tick density used by Summary.
const DefaultTickCount = 5

// Summary flattens the descriptor for machine-readable output.
func (d Descriptor) Summary() Summary {
	s := Summary{
		Title:    d.Title,
		Layout:   d.Layout,
		Headline: d.Headline,
		Trend:    d.Trend,
		Reversed: d.Reversed,
		YDomain:  d.YExtent(),
	}
	if d.Layout == LayoutNoData {
		return s
	}

	x := d.X
	s.XDomain = &x
	for _, p := range d.Points {
		s.Points = append(s.Points, PointSummary{Date: p.Date, Plotted: p.Value, Display: d.DisplayValue(p.Value)})
	}
	s.Ticks = d.Ticks(DefaultTickCount)
	for _, m := range d.Marks {
		s.Marks = append(s.Marks, m.Kind)
	}
	return s
}
