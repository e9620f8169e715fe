package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/torvik/mapwiki-backend-go/internal/heatmap"
	"github.com/torvik/mapwiki-backend-go/internal/models"
)

// PointSource supplies the raw points for one map + item + bounding
// box. The production implementation is repository.NodeRepository.
type PointSource interface {
	FetchPoints(mapID, itemID int64, bbox models.BoundingBox) ([]models.RawPoint, error)
}

// HeatmapService runs the aggregation pipeline: fetch raw points, bin
// them by zoom, normalize bin weights, resolve the zoom style. The
// pipeline is pure and stateless past the point source, so requests
// may run concurrently without locking.
type HeatmapService struct {
	source        PointSource
	styles        *heatmap.StyleResolver
	minWeight     float64
	curveExponent float64
}

// NewHeatmapService creates a heatmap service with default
// normalization parameters
func NewHeatmapService(source PointSource, styles *heatmap.StyleResolver) *HeatmapService {
	return &HeatmapService{
		source:        source,
		styles:        styles,
		minWeight:     heatmap.DefaultMinWeight,
		curveExponent: heatmap.DefaultCurveExponent,
	}
}

// BuildHeatmap computes the aggregated heatmap for one viewport.
// Each call computes fresh from the current node set; results are not
// cached across requests.
func (s *HeatmapService) BuildHeatmap(vp models.Viewport) (*models.HeatmapResponse, error) {
	if err := vp.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.source.FetchPoints(vp.MapID, vp.ItemID, vp.BBox)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSourceUnavailable, err)
	}

	points := heatmap.Aggregate(raw, vp.Zoom)

	weights := make([]float64, len(points))
	for i, p := range points {
		weights[i] = p.Weight
	}
	normalized := heatmap.Normalize(weights, s.minWeight, s.curveExponent)
	for i := range points {
		points[i].Weight = normalized[i]
	}

	return &models.HeatmapResponse{
		Points: points,
		Count:  len(points),
		Zoom:   vp.Zoom,
		Style:  s.styles.Resolve(vp.Zoom),
	}, nil
}

// BuildHeatmapBatch computes heatmaps for several items over the same
// region concurrently. The aggregation pipeline has no shared mutable
// state, so one goroutine per item is safe; the first error cancels
// the rest.
func (s *HeatmapService) BuildHeatmapBatch(ctx context.Context, mapID int64, itemIDs []int64, zoom int, bbox models.BoundingBox) (map[int64]*models.HeatmapResponse, error) {
	results := make([]*models.HeatmapResponse, len(itemIDs))

	g, _ := errgroup.WithContext(ctx)
	for i, itemID := range itemIDs {
		i, itemID := i, itemID
		g.Go(func() error {
			resp, err := s.BuildHeatmap(models.Viewport{
				MapID:  mapID,
				ItemID: itemID,
				Zoom:   zoom,
				BBox:   bbox,
			})
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byItem := make(map[int64]*models.HeatmapResponse, len(itemIDs))
	for i, itemID := range itemIDs {
		byItem[itemID] = results[i]
	}
	return byItem, nil
}

// Style resolves the rendering parameters for a zoom level
func (s *HeatmapService) Style(zoom int) models.StyleParams {
	return s.styles.Resolve(zoom)
}

// FetchFunc adapts the service for a heatmap.Session, which drives an
// in-process live layer
func (s *HeatmapService) FetchFunc() heatmap.FetchFunc {
	return func(ctx context.Context, vp models.Viewport) (models.HeatmapData, models.StyleParams, error) {
		resp, err := s.BuildHeatmap(vp)
		if err != nil {
			return models.HeatmapData{}, models.StyleParams{}, err
		}
		return models.HeatmapData{Points: resp.Points}, resp.Style, nil
	}
}

// ParseItemIDs parses a comma-separated item id list
func ParseItemIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid item id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
