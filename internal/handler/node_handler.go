package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/torvik/mapwiki-backend-go/internal/models"
	"github.com/torvik/mapwiki-backend-go/internal/service"
	"github.com/torvik/mapwiki-backend-go/pkg/response"
)

// NodeHandler handles HTTP requests for resource node management
type NodeHandler struct {
	service *service.NodeService
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(service *service.NodeService) *NodeHandler {
	return &NodeHandler{service: service}
}

// ImportNodes handles POST /api/v1/maps/:mapId/nodes
func (h *NodeHandler) ImportNodes(c *gin.Context) {
	mapID, err := strconv.ParseInt(c.Param("mapId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid map id", err)
		return
	}

	var body struct {
		Nodes []models.ResourceNode `json:"nodes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(body.Nodes) == 0 {
		response.Error(c, http.StatusBadRequest, "No nodes given", nil)
		return
	}

	imported, err := h.service.ImportNodes(mapID, body.Nodes)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to import nodes", err)
		return
	}

	response.Success(c, gin.H{"imported": imported})
}

// DeleteNodes handles DELETE /api/v1/maps/:mapId/nodes
func (h *NodeHandler) DeleteNodes(c *gin.Context) {
	mapID, err := strconv.ParseInt(c.Param("mapId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid map id", err)
		return
	}

	var itemID int64
	if raw := c.Query("itemId"); raw != "" {
		itemID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid itemId parameter", err)
			return
		}
	}

	deleted, err := h.service.DeleteNodes(mapID, itemID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to delete nodes", err)
		return
	}

	response.Success(c, gin.H{"deleted": deleted})
}

// ListItems handles GET /api/v1/maps/:mapId/items
func (h *NodeHandler) ListItems(c *gin.Context) {
	mapID, err := strconv.ParseInt(c.Param("mapId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid map id", err)
		return
	}

	items, err := h.service.ListItems(mapID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list items", err)
		return
	}

	response.Success(c, gin.H{
		"items": items,
		"count": len(items),
	})
}
