package heatmap

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/torvik/mapwiki-backend-go/internal/models"
)

// FetchFunc fetches and aggregates heatmap data for a viewport.
// Implementations may block on network or database I/O.
type FetchFunc func(ctx context.Context, vp models.Viewport) (models.HeatmapData, models.StyleParams, error)

// Session serializes all updates of one live layer. Rapid viewport
// changes are debounced into a single outstanding fetch for the latest
// viewport; a monotonically increasing sequence number discards fetch
// results that were superseded before they arrived. Fetches themselves
// run concurrently, only the moment of applying a result is serialized.
type Session struct {
	layer    *Layer
	fetch    FetchFunc
	debounce time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	latest models.Viewport
	armed  bool
	seq    uint64
}

// NewSession creates a session driving the given layer. A debounce of
// zero issues fetches immediately on every viewport change.
func NewSession(layer *Layer, fetch FetchFunc, debounce time.Duration) *Session {
	return &Session{
		layer:    layer,
		fetch:    fetch,
		debounce: debounce,
	}
}

// SetViewport records a pan/zoom or selection change. Triggers
// arriving within the debounce window collapse into one fetch for the
// newest viewport.
func (s *Session) SetViewport(vp models.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = vp
	s.armed = true

	if s.timer != nil {
		s.timer.Stop()
	}

	if s.debounce <= 0 {
		s.launchLocked()
		return
	}

	s.timer = time.AfterFunc(s.debounce, s.debounceFired)
}

// ClearSelection deselects the current item: any pending or in-flight
// fetch is superseded and the layer swaps to the empty set.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.armed = false
	s.seq++ // supersede in-flight fetches

	s.layer.Clear()
}

func (s *Session) debounceFired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.armed {
		return
	}
	s.launchLocked()
}

func (s *Session) launchLocked() {
	s.armed = false
	s.seq++
	go s.run(s.seq, s.latest)
}

func (s *Session) run(seq uint64, vp models.Viewport) {
	data, style, err := s.fetch(context.Background(), vp)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		// Superseded while in flight; drop the result
		return
	}
	if err != nil {
		// Keep the previous data on screen, a transient failure must
		// not blank the visualization
		log.Printf("[HeatmapSession] fetch failed for map=%d item=%d zoom=%d: %v",
			vp.MapID, vp.ItemID, vp.Zoom, err)
		return
	}

	s.layer.Apply(data, style)
}
