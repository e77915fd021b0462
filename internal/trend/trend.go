// Package trend classifies the movement of a metric between its two most
// recent samples.
package trend

import (
	"math"
	"strconv"
	"strings"

	"github.com/dashbuild/dashbuild/internal/metric"
	"github.com/shopspring/decimal"
)

// Direction is the raw arithmetic direction of a change.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
	DirectionNone Direction = "none"
)

// Semantic is the meaning of a change for colouring: good, bad, or neither.
// It names a category only; the renderer picks the concrete colour.
type Semantic string

const (
	SemanticUp   Semantic = "up"
	SemanticDown Semantic = "down"
	SemanticFlat Semantic = "flat"
)

// Options control polarity. The zero value treats increases as good.
type Options struct {
	// Inverse makes a decrease the positive direction (fewer defects is good).
	Inverse bool
	// Neutral forces the flat semantic regardless of direction.
	Neutral bool
}

// Descriptor is the trend shown next to a metric.
type Descriptor struct {
	DisplayText string    `json:"display_text" yaml:"display_text"`
	Direction   Direction `json:"direction" yaml:"direction"`
	Semantic    Semantic  `json:"semantic" yaml:"semantic"`
}

// None returns the "no trend" descriptor.
func None() Descriptor {
	return Descriptor{Direction: DirectionNone, Semantic: SemanticFlat}
}

// IsNone reports whether d carries no trend.
func (d Descriptor) IsNone() bool {
	return d.Direction == DirectionNone
}

// Compute compares the second-to-last history value for key with the latest
// value. History needs at least two entries; the latest value is read from
// latest, not from the final snapshot, so the two may disagree.
func Compute(h metric.History, latest metric.Latest, key string, opts Options) Descriptor {
	if len(h) < 2 {
		return None()
	}

	previous, ok := h[len(h)-2].Value(key)
	if !ok {
		return None()
	}
	current, ok := latest.Value(key)
	if !ok {
		return None()
	}

	delta := current - previous
	if !metric.IsFinite(delta) {
		// both sides are finite, but their difference overflowed
		return None()
	}
	d := Descriptor{DisplayText: FormatDelta(delta)}

	if delta == 0 {
		d.Direction = DirectionFlat
		d.Semantic = SemanticFlat
		return d
	}

	d.Direction = DirectionDown
	if delta > 0 {
		d.Direction = DirectionUp
	}

	positive := delta > 0
	if opts.Inverse {
		positive = delta < 0
	}

	switch {
	case opts.Neutral:
		d.Semantic = SemanticFlat
	case positive:
		d.Semantic = SemanticUp
	default:
		d.Semantic = SemanticDown
	}
	return d
}

// FormatDelta renders a change with an explicit "+" for increases. Whole
// numbers have no decimals; anything else is rounded to one decimal place.
// A decrease that rounds to zero keeps its sign ("-0.0").
func FormatDelta(delta float64) string {
	if !metric.IsFinite(delta) {
		return strconv.FormatFloat(delta, 'g', -1, 64)
	}
	var text string
	if delta == math.Trunc(delta) {
		text = decimal.NewFromFloat(delta).StringFixed(0)
	} else {
		text = decimal.NewFromFloat(delta).StringFixed(1)
	}
	if delta > 0 {
		return "+" + text
	}
	if delta < 0 && !strings.HasPrefix(text, "-") {
		return "-" + text
	}
	return text
}
