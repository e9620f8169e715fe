package models

// AggregatedPoint represents one weighted bin of the heatmap.
// X,Y is the centroid of the member points, Weight is normalized to
// [minWeight, 1.0] and ready for rendering.
type AggregatedPoint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Weight float64 `json:"weight"`
}

// HeatmapData is the full point set for one layer state. It is always
// consumed and replaced wholesale, never mutated in place.
type HeatmapData struct {
	Points []AggregatedPoint `json:"points"`
}

// StyleParams holds the rendering parameters for one zoom level
type StyleParams struct {
	Radius  float64 `json:"radius"`
	Blur    float64 `json:"blur"`
	Opacity float64 `json:"opacity"`
}

// HeatmapResponse represents the heatmap API response
type HeatmapResponse struct {
	Points []AggregatedPoint `json:"points"`
	Count  int               `json:"count"`
	Zoom   int               `json:"zoom"`
	Style  StyleParams       `json:"style"`
}
