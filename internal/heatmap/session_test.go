package heatmap

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torvik/mapwiki-backend-go/internal/models"
)

func testViewport(itemID int64) models.Viewport {
	return models.Viewport{
		MapID:  1,
		ItemID: itemID,
		Zoom:   4,
		BBox:   models.BoundingBox{MinX: 0, MinY: 0, MaxX: 1024, MaxY: 1024},
	}
}

func TestSessionAppliesFetchResult(t *testing.T) {
	layer := NewLayer()
	fetch := func(ctx context.Context, vp models.Viewport) (models.HeatmapData, models.StyleParams, error) {
		return uniformData(5, 0.6), models.StyleParams{Radius: 24}, nil
	}
	sess := NewSession(layer, fetch, 0)

	sess.SetViewport(testViewport(1))

	require.Eventually(t, func() bool {
		data, _, visible := layer.Snapshot()
		return visible && len(data.Points) == 5
	}, time.Second, time.Millisecond)
}

func TestSessionDiscardsStaleResult(t *testing.T) {
	layer := NewLayer()

	releaseA := make(chan struct{})
	fetch := func(ctx context.Context, vp models.Viewport) (models.HeatmapData, models.StyleParams, error) {
		if vp.ItemID == 1 {
			<-releaseA
			return uniformData(100, 0.25), models.StyleParams{}, nil
		}
		return uniformData(40, 0.75), models.StyleParams{}, nil
	}
	sess := NewSession(layer, fetch, 0)

	// Fetch A stalls in flight; B supersedes it and applies first
	sess.SetViewport(testViewport(1))
	sess.SetViewport(testViewport(2))

	require.Eventually(t, func() bool {
		data, _, _ := layer.Snapshot()
		return len(data.Points) == 40
	}, time.Second, time.Millisecond)

	// A finally resolves; its result must be dropped
	close(releaseA)
	time.Sleep(50 * time.Millisecond)

	data, _, _ := layer.Snapshot()
	assert.Len(t, data.Points, 40, "stale result overwrote the newer viewport's data")
}

func TestSessionDebounceCollapsesTriggers(t *testing.T) {
	layer := NewLayer()

	var fetches atomic.Int64
	var lastItem atomic.Int64
	fetch := func(ctx context.Context, vp models.Viewport) (models.HeatmapData, models.StyleParams, error) {
		lastItem.Store(vp.ItemID)
		fetches.Add(1)
		return uniformData(1, 1), models.StyleParams{}, nil
	}
	sess := NewSession(layer, fetch, 30*time.Millisecond)

	// Rapid pan: five triggers inside one debounce window
	for i := int64(1); i <= 5; i++ {
		sess.SetViewport(testViewport(i))
	}

	require.Eventually(t, func() bool {
		return fetches.Load() == 1
	}, time.Second, time.Millisecond)

	// Only the latest viewport is fetched
	assert.Equal(t, int64(5), lastItem.Load())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int64(1), fetches.Load(), "debounced triggers issued extra fetches")
}

func TestSessionKeepsDataOnFetchError(t *testing.T) {
	layer := NewLayer()
	fetch := func(ctx context.Context, vp models.Viewport) (models.HeatmapData, models.StyleParams, error) {
		if vp.ItemID == 2 {
			return models.HeatmapData{}, models.StyleParams{}, errors.New("source unavailable")
		}
		return uniformData(7, 0.5), models.StyleParams{}, nil
	}
	sess := NewSession(layer, fetch, 0)

	sess.SetViewport(testViewport(1))
	require.Eventually(t, func() bool {
		data, _, _ := layer.Snapshot()
		return len(data.Points) == 7
	}, time.Second, time.Millisecond)

	sess.SetViewport(testViewport(2))
	time.Sleep(50 * time.Millisecond)

	// The failed fetch leaves the previous heatmap in place
	data, _, visible := layer.Snapshot()
	assert.True(t, visible)
	assert.Len(t, data.Points, 7)
}

func TestSessionClearSelection(t *testing.T) {
	layer := NewLayer()

	release := make(chan struct{})
	fetch := func(ctx context.Context, vp models.Viewport) (models.HeatmapData, models.StyleParams, error) {
		<-release
		return uniformData(9, 0.5), models.StyleParams{}, nil
	}
	sess := NewSession(layer, fetch, 0)

	sess.SetViewport(testViewport(1))
	sess.ClearSelection()

	data, _, visible := layer.Snapshot()
	assert.False(t, visible)
	assert.Empty(t, data.Points)

	// The in-flight fetch was superseded by the deselection
	close(release)
	time.Sleep(50 * time.Millisecond)

	data, _, visible = layer.Snapshot()
	assert.False(t, visible)
	assert.Empty(t, data.Points)
}
