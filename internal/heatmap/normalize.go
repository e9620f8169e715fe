package heatmap

import "math"

// Default normalization parameters
const (
	DefaultMinWeight     = 0.5
	DefaultCurveExponent = 0.8
)

// Normalize maps raw bin weights to render-ready values in
// [minWeight, 1.0], preserving length and order.
//
// The concave power curve (curveExponent < 1) compresses the dynamic
// range: sparse bins stay visible instead of fading to transparent,
// dense bins still stand out. A flat input (all weights equal) returns
// all 1.0 — with no relative variation to preserve, uniform density
// renders at full intensity rather than being suppressed to the floor.
func Normalize(raw []float64, minWeight, curveExponent float64) []float64 {
	if len(raw) == 0 {
		return []float64{}
	}

	maxW := raw[0]
	minW := raw[0]
	for _, w := range raw[1:] {
		if w > maxW {
			maxW = w
		}
		if w < minW {
			minW = w
		}
	}

	out := make([]float64, len(raw))

	// Degenerate set: nothing to scale against
	if maxW <= 0 {
		return out
	}

	// Flat set
	if minW == maxW {
		for i := range out {
			out[i] = 1.0
		}
		return out
	}

	for i, w := range raw {
		out[i] = minWeight + (1-minWeight)*math.Pow(w/maxW, curveExponent)
	}

	return out
}

// NormalizeDefault applies Normalize with the default parameters
func NormalizeDefault(raw []float64) []float64 {
	return Normalize(raw, DefaultMinWeight, DefaultCurveExponent)
}
