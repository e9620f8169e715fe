package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/torvik/mapwiki-backend-go/internal/models"
	"github.com/torvik/mapwiki-backend-go/internal/service"
	"github.com/torvik/mapwiki-backend-go/pkg/response"
)

// HeatmapHandler handles HTTP requests for heatmap aggregation
type HeatmapHandler struct {
	service *service.HeatmapService
}

// NewHeatmapHandler creates a new heatmap handler
func NewHeatmapHandler(service *service.HeatmapService) *HeatmapHandler {
	return &HeatmapHandler{service: service}
}

// GetHeatmap handles GET /api/v1/maps/:mapId/heatmap
func (h *HeatmapHandler) GetHeatmap(c *gin.Context) {
	mapID, err := strconv.ParseInt(c.Param("mapId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid map id", err)
		return
	}

	var filter models.HeatmapFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	resp, err := h.service.BuildHeatmap(filter.Viewport(mapID))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetHeatmapBatch handles GET /api/v1/maps/:mapId/heatmap/batch
func (h *HeatmapHandler) GetHeatmapBatch(c *gin.Context) {
	mapID, err := strconv.ParseInt(c.Param("mapId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid map id", err)
		return
	}

	var filter models.BatchHeatmapFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	itemIDs, err := service.ParseItemIDs(filter.ItemIDs)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid itemIds parameter", err)
		return
	}
	if len(itemIDs) == 0 {
		response.Error(c, http.StatusBadRequest, "itemIds parameter is required", nil)
		return
	}

	bbox := models.BoundingBox{MinX: filter.MinX, MinY: filter.MinY, MaxX: filter.MaxX, MaxY: filter.MaxY}
	results, err := h.service.BuildHeatmapBatch(c.Request.Context(), mapID, itemIDs, filter.Zoom, bbox)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"heatmaps": results,
		"count":    len(results),
	})
}

// GetStyle handles GET /api/v1/heatmap/style
func (h *HeatmapHandler) GetStyle(c *gin.Context) {
	zoom, err := strconv.Atoi(c.DefaultQuery("zoom", "0"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid zoom parameter", err)
		return
	}
	if zoom < 0 {
		response.Error(c, http.StatusBadRequest, "Zoom must be non-negative", nil)
		return
	}

	response.Success(c, h.service.Style(zoom))
}

// writeError maps pipeline errors to status codes: invalid viewports
// are the caller's fault, an unavailable point source is retryable
func (h *HeatmapHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidViewport):
		response.Error(c, http.StatusBadRequest, "Invalid viewport", err)
	case errors.Is(err, models.ErrSourceUnavailable):
		response.Error(c, http.StatusBadGateway, "Point source unavailable", err)
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to build heatmap", err)
	}
}
