package chart

import "time"

// DefaultDateLayout is the tooltip date format when Options.DateLayout is empty.
const DefaultDateLayout = "Jan 2, 2006"

// SinglePointPadDays is how far before a lone point the time axis starts.
const SinglePointPadDays = 6

// Formatter turns a numeric value into display text.
type Formatter func(float64) string

// Domain is a closed numeric interval [Min, Max].
type Domain struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Reflect mirrors v inside the domain: Min maps to Max and vice versa.
// Reflect is its own inverse.
func (d Domain) Reflect(v float64) float64 {
	return d.Max + d.Min - v
}

// Contains reports whether v lies within the domain.
func (d Domain) Contains(v float64) bool {
	return v >= d.Min && v <= d.Max
}

// TimeDomain is the horizontal extent of a chart.
type TimeDomain struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Axis describes how plotted values map to displayed ticks.
type Axis struct {
	// Domain is nil when the renderer should fit the data.
	Domain     *Domain
	TickFormat Formatter
}

// Options configure Build. The zero value is a plain chart: increases are
// good, no suffix, fitted axis, default formatting.
type Options struct {
	Title string
	// Color is the base mark colour, passed through untouched.
	Color  string
	Suffix string
	// YDomain fixes the vertical axis. Required for Reverse to take effect.
	YDomain *Domain

	Inverse bool
	Neutral bool
	// Reverse draws low raw values high. Ignored without YDomain.
	Reverse bool

	TickFormat  Formatter
	ValueFormat Formatter

	// DateLayout formats tooltip dates (time.Format layout).
	DateLayout string
}

func (o Options) dateLayout() string {
	if o.DateLayout == "" {
		return DefaultDateLayout
	}
	return o.DateLayout
}

// valueFormatter returns ValueFormat or the default number+suffix formatter.
func (o Options) valueFormatter() Formatter {
	if o.ValueFormat != nil {
		return o.ValueFormat
	}
	return WithSuffix(FormatNumber, o.Suffix)
}
