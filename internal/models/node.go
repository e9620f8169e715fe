package models

// ResourceNode represents a single gatherable resource spawn on a map
type ResourceNode struct {
	ID        int64   `json:"id"`
	MapID     int64   `json:"mapId"`
	ItemID    int64   `json:"itemId"`
	X         float64 `json:"x"`      // World coordinate
	Y         float64 `json:"y"`      // World coordinate
	Weight    float64 `json:"weight"` // Optional spawn weight, defaults to 1
	CreatedAt string  `json:"createdAt,omitempty"`
}

// RawPoint is the minimal point shape consumed by the aggregation pipeline.
// It exists only for the duration of one aggregation call.
type RawPoint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Weight float64 `json:"weight,omitempty"` // Non-positive means 1
}

// ItemSummary lists how many nodes of one item exist on a map
type ItemSummary struct {
	ItemID    int64 `json:"itemId"`
	NodeCount int64 `json:"nodeCount"`
}
