package genworldplanar

import (
	"github.com/Flokey82/go_gens/utils"
	"gonum.org/v1/gonum/floats"
)

var minMax = utils.MinMax[float64]

// normalizeChannel rescales values in place to [0, 1] using the given
// bounds. If min equals max, all values become 0.
func normalizeChannel(values []float64, min, max float64) {
	if max == min {
		for i := range values {
			values[i] = 0
		}
		return
	}
	for i, v := range values {
		values[i] = (v - min) / (max - min)
	}
}

// bounds returns the minimum and maximum of a non-empty channel.
func bounds(values []float64) (float64, float64) {
	return floats.Min(values), floats.Max(values)
}
