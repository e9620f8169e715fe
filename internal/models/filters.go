package models

// HeatmapFilter represents query parameters for a heatmap request
type HeatmapFilter struct {
	ItemID int64   `form:"itemId"`
	Zoom   int     `form:"zoom"`
	MinX   float64 `form:"minX"`
	MinY   float64 `form:"minY"`
	MaxX   float64 `form:"maxX"`
	MaxY   float64 `form:"maxY"`
}

// Viewport builds the viewport described by the filter for a given map
func (f HeatmapFilter) Viewport(mapID int64) Viewport {
	return Viewport{
		MapID:  mapID,
		ItemID: f.ItemID,
		Zoom:   f.Zoom,
		BBox: BoundingBox{
			MinX: f.MinX,
			MinY: f.MinY,
			MaxX: f.MaxX,
			MaxY: f.MaxY,
		},
	}
}

// BatchHeatmapFilter represents query parameters for a multi-item
// heatmap request. ItemIDs is a comma-separated list.
type BatchHeatmapFilter struct {
	ItemIDs string  `form:"itemIds"`
	Zoom    int     `form:"zoom"`
	MinX    float64 `form:"minX"`
	MinY    float64 `form:"minY"`
	MaxX    float64 `form:"maxX"`
	MaxY    float64 `form:"maxY"`
}
