package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidViewport marks a request rejected before aggregation runs
var ErrInvalidViewport = errors.New("invalid viewport")

// ErrSourceUnavailable marks a failure of the underlying point source.
// It is retryable by the caller; the service performs no retries itself.
var ErrSourceUnavailable = errors.New("point source unavailable")

// BoundingBox is an axis-aligned world-coordinate rectangle
type BoundingBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// Viewport identifies one aggregation query: which map, which item,
// at what zoom, over what region
type Viewport struct {
	MapID  int64
	ItemID int64
	Zoom   int
	BBox   BoundingBox
}

// Validate rejects malformed viewports. Invalid input is never
// silently corrected.
func (v Viewport) Validate() error {
	if v.Zoom < 0 {
		return fmt.Errorf("%w: negative zoom %d", ErrInvalidViewport, v.Zoom)
	}
	coords := []float64{v.BBox.MinX, v.BBox.MinY, v.BBox.MaxX, v.BBox.MaxY}
	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: non-finite bbox coordinate", ErrInvalidViewport)
		}
	}
	if v.BBox.MinX > v.BBox.MaxX {
		return fmt.Errorf("%w: minX %g > maxX %g", ErrInvalidViewport, v.BBox.MinX, v.BBox.MaxX)
	}
	if v.BBox.MinY > v.BBox.MaxY {
		return fmt.Errorf("%w: minY %g > maxY %g", ErrInvalidViewport, v.BBox.MinY, v.BBox.MaxY)
	}
	return nil
}
