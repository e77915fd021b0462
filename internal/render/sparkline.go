package render

import (
	"strings"

	"github.com/dashbuild/dashbuild/internal/chart"
)

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

const (
	ruleRune   = '─'
	markerRune = '●'
)

// Sparkline renders the descriptor's plotted points as a single row of block
// characters scaled to its Y extent. Fewer points than width are
// right-aligned; more are downsampled keeping peaks. The result is unstyled.
func Sparkline(desc chart.Descriptor, width int) string {
	if width <= 0 {
		return ""
	}

	switch desc.Layout {
	case chart.LayoutNoData:
		return ""
	case chart.LayoutSinglePoint:
		return strings.Repeat(string(ruleRune), width-1) + string(markerRune)
	}

	values := plottedValues(desc)
	if len(values) > width {
		values = resampleData(values, width)
	}

	ext := desc.YExtent()
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(values)))
	for _, v := range values {
		normalized := normalizeValue(v, ext.Min, ext.Max)
		idx := clampInt(int(normalized*float64(len(sparklineBlocks)-1)+0.5), len(sparklineBlocks)-1)
		b.WriteRune(sparklineBlocks[idx])
	}
	return b.String()
}

func plottedValues(desc chart.Descriptor) []float64 {
	values := make([]float64, len(desc.Points))
	for i, p := range desc.Points {
		values[i] = p.Value
	}
	return values
}

// normalizeValue converts a value to 0-1 range given min/max bounds.
func normalizeValue(val, minVal, maxVal float64) float64 {
	if maxVal > minVal {
		return (val - minVal) / (maxVal - minVal)
	}
	return 0.5
}

// clampInt clamps an integer to a range [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// resampleData resamples data to the target size.
// Downsampling takes the max of each bucket so spikes survive; upsampling
// interpolates linearly.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}
	if len(data) == targetSize {
		return data
	}

	result := make([]float64, targetSize)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	if len(data) > targetSize {
		bucketSize := float64(len(data)) / float64(targetSize)
		for i := 0; i < targetSize; i++ {
			start := int(float64(i) * bucketSize)
			end := int(float64(i+1) * bucketSize)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}

			maxVal := data[start]
			for j := start + 1; j < end; j++ {
				if data[j] > maxVal {
					maxVal = data[j]
				}
			}
			result[i] = maxVal
		}
		return result
	}

	scale := float64(len(data)-1) / float64(targetSize-1)
	for i := 0; i < targetSize; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)
		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
		} else {
			result[i] = data[idx]*(1-frac) + data[idx+1]*frac
		}
	}
	return result
}
