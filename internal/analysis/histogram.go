// Package analysis provides post-run statistics over captured gas states.
//
// States are the flattened {x, y, vx, vy} rows produced by the sim runner
// and stored alongside each run.
package analysis

import "math"

// Histogram bins sample values into equal-width buckets over [0, Max].
type Histogram struct {
	Counts   []float64 // per-bin sample counts, float64 for plotting
	BinWidth float64
	Max      float64
}

// NewHistogram bins samples into the given number of buckets. The top edge
// is the sample maximum; the maximal sample lands in the last bucket.
func NewHistogram(samples []float64, bins int) Histogram {
	h := Histogram{Counts: make([]float64, bins)}
	if bins <= 0 || len(samples) == 0 {
		return h
	}

	for _, s := range samples {
		h.Max = math.Max(h.Max, s)
	}
	if h.Max == 0 {
		h.Max = 1
	}
	h.BinWidth = h.Max / float64(bins)

	for _, s := range samples {
		idx := int(s / h.BinWidth)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		h.Counts[idx]++
	}
	return h
}

// Speeds extracts |v| per body from one flattened state row.
func Speeds(state []float64) []float64 {
	n := len(state) / 4
	speeds := make([]float64, n)
	for i := 0; i < n; i++ {
		vx, vy := state[i*4+2], state[i*4+3]
		speeds[i] = math.Hypot(vx, vy)
	}
	return speeds
}

// KineticEnergySeries computes the unit-mass total kinetic energy of every
// state row, for drift plots over a run.
func KineticEnergySeries(states [][]float64) []float64 {
	series := make([]float64, len(states))
	for i, state := range states {
		ke := 0.0
		for b := 0; b+3 < len(state); b += 4 {
			vx, vy := state[b+2], state[b+3]
			ke += 0.5 * (vx*vx + vy*vy)
		}
		series[i] = ke
	}
	return series
}
