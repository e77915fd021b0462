package chart

import "math"

// Tick is one labelled position on the vertical axis.
type Tick struct {
	Value float64 `json:"value" yaml:"value"`
	Label string  `json:"label" yaml:"label"`
}

// YExtent is the vertical range a renderer should draw: the fixed domain if
// set, otherwise the plotted points widened to include the area baseline.
// A flat series gets one unit of headroom on each side.
func (d Descriptor) YExtent() Domain {
	if d.Y.Domain != nil {
		return *d.Y.Domain
	}
	if len(d.Points) == 0 {
		return Domain{Min: 0, Max: 1}
	}

	ext := Domain{Min: d.Points[0].Value, Max: d.Points[0].Value}
	for _, p := range d.Points {
		ext.Min = math.Min(ext.Min, p.Value)
		ext.Max = math.Max(ext.Max, p.Value)
	}
	if d.Layout == LayoutSeries {
		ext.Min = math.Min(ext.Min, d.Baseline)
		ext.Max = math.Max(ext.Max, d.Baseline)
	}
	if ext.Max <= ext.Min {
		ext.Min--
		ext.Max++
	}
	return ext
}

// Ticks returns about n nicely spaced ticks (steps of 1, 2, 2.5, 5 times a
// power of ten) inside YExtent, labelled with the axis tick formatter.
func (d Descriptor) Ticks(n int) []Tick {
	ext := d.YExtent()
	format := d.Y.TickFormat
	if format == nil {
		format = FormatNumber
	}

	var ticks []Tick
	for _, v := range niceSteps(ext.Min, ext.Max, n) {
		ticks = append(ticks, Tick{Value: v, Label: format(v)})
	}
	return ticks
}

// niceSteps generates tick positions within [lo, hi].
func niceSteps(lo, hi float64, n int) []float64 {
	if n < 2 || !finite(lo) || !finite(hi) {
		return nil
	}
	if hi <= lo {
		hi = lo + 1
	}

	span := hi - lo
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	best := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Floor(span/step) + 1
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			best = step
		}
	}

	// round to one digit past the step's precision to drop float noise
	// such as 0.30000000000000004
	scale := math.Pow(10, math.Max(0, -math.Floor(math.Log10(best)))+1)

	var steps []float64
	for i := math.Ceil(lo/best - 1e-9); ; i++ {
		v := math.Round(i*best*scale) / scale
		if v > hi+best*1e-9 {
			break
		}
		if v == 0 {
			v = 0 // drop negative zero
		}
		steps = append(steps, v)
	}
	return steps
}
