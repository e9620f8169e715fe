package heatmap

import (
	"sync"

	"github.com/torvik/mapwiki-backend-go/internal/models"
)

// Layer is the live heatmap layer of one rendering session. Its data
// set is only ever replaced wholesale: a new set is staged off to the
// side first, then swapped in inside one critical section, so no
// observer can see a mixed or empty intermediate frame. Clearing the
// old data before staging the new is exactly the flicker bug this type
// exists to prevent.
type Layer struct {
	mu      sync.RWMutex
	data    models.HeatmapData
	style   models.StyleParams
	visible bool
	version uint64
}

// NewLayer creates an empty, hidden layer
func NewLayer() *Layer {
	return &Layer{
		data: models.HeatmapData{Points: []models.AggregatedPoint{}},
	}
}

// Apply commits a new data set and style as one atomic swap and marks
// the layer visible
func (l *Layer) Apply(data models.HeatmapData, style models.StyleParams) {
	// Stage outside the lock; the live set stays untouched until the swap
	staged := make([]models.AggregatedPoint, len(data.Points))
	copy(staged, data.Points)

	l.mu.Lock()
	l.data = models.HeatmapData{Points: staged}
	l.style = style
	l.visible = true
	l.version++
	l.mu.Unlock()
}

// Clear swaps in the empty set and hides the layer. Deselection goes
// through the same single-step swap as Apply so the layer disappears
// cleanly.
func (l *Layer) Clear() {
	l.mu.Lock()
	l.data = models.HeatmapData{Points: []models.AggregatedPoint{}}
	l.style = models.StyleParams{}
	l.visible = false
	l.version++
	l.mu.Unlock()
}

// Snapshot returns the current data, style and visibility as one
// consistent view
func (l *Layer) Snapshot() (models.HeatmapData, models.StyleParams, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.data, l.style, l.visible
}

// Version returns the swap counter, incremented on every Apply or Clear
func (l *Layer) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}
