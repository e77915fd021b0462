// Package metric holds the sampled-metric data model shared by the trend and
// chart packages: snapshots, histories, and the latest-values map.
//
// Values are *float64 so that an explicit null and a missing key both read as
// "not sampled", while 0 stays a real reading. NaN and infinities (YAML .nan,
// .inf) also read as "not sampled".
package metric

import (
	"math"
	"time"
)

// Snapshot is one sampled point in time.
type Snapshot struct {
	Date    time.Time
	Metrics map[string]*float64
}

// Value returns the sampled value for key and whether it was sampled.
func (s Snapshot) Value(key string) (float64, bool) {
	return sampled(s.Metrics[key])
}

// History is a chronologically ordered list of snapshots, oldest first.
// The order is trusted as given and never re-sorted.
type History []Snapshot

// Latest maps metric keys to their current values.
type Latest map[string]*float64

// Value returns the current value for key and whether it is present.
func (l Latest) Value(key string) (float64, bool) {
	return sampled(l[key])
}

// sampled unwraps v, treating nil and non-finite values as absent.
func sampled(v *float64) (float64, bool) {
	if v == nil || !IsFinite(*v) {
		return 0, false
	}
	return *v, true
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Point is a single projected (date, value) pair.
type Point struct {
	Date  time.Time
	Value float64
}

// Project returns the points of history that have a value for key, in order.
func (h History) Project(key string) []Point {
	var points []Point
	for _, snap := range h {
		if v, ok := snap.Value(key); ok {
			points = append(points, Point{Date: snap.Date, Value: v})
		}
	}
	return points
}

// Keys returns every metric key that appears in history or latest, sorted.
func (h History) Keys(latest Latest) []string {
	seen := make(map[string]bool)
	for _, snap := range h {
		for k := range snap.Metrics {
			seen[k] = true
		}
	}
	for k := range latest {
		seen[k] = true
	}
	return sortedKeys(seen)
}

// LatestOf returns the metrics of the last snapshot as a Latest map.
// An empty history yields an empty map.
func LatestOf(h History) Latest {
	if len(h) == 0 {
		return Latest{}
	}
	last := h[len(h)-1].Metrics
	out := make(Latest, len(last))
	for k, v := range last {
		out[k] = v
	}
	return out
}

// Float returns a pointer to v, for building snapshots in code.
func Float(v float64) *float64 {
	return &v
}
