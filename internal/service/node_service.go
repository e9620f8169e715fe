package service

import (
	"fmt"
	"math"

	"github.com/torvik/mapwiki-backend-go/internal/models"
	"github.com/torvik/mapwiki-backend-go/internal/repository"
)

// NodeService handles business logic for resource nodes
type NodeService struct {
	repo *repository.NodeRepository
}

// NewNodeService creates a new node service
func NewNodeService(repo *repository.NodeRepository) *NodeService {
	return &NodeService{repo: repo}
}

// ImportNodes validates and bulk-inserts nodes for one map. The whole
// batch is rejected on the first invalid node so a partial import
// never reaches the database.
func (s *NodeService) ImportNodes(mapID int64, nodes []models.ResourceNode) (int, error) {
	for i, n := range nodes {
		if n.ItemID <= 0 {
			return 0, fmt.Errorf("node %d: missing item id", i)
		}
		if math.IsNaN(n.X) || math.IsInf(n.X, 0) || math.IsNaN(n.Y) || math.IsInf(n.Y, 0) {
			return 0, fmt.Errorf("node %d: non-finite coordinates", i)
		}
	}

	if err := s.repo.InsertNodes(mapID, nodes); err != nil {
		return 0, err
	}
	return len(nodes), nil
}

// DeleteNodes removes nodes of one item (or all items) on a map
func (s *NodeService) DeleteNodes(mapID, itemID int64) (int64, error) {
	return s.repo.DeleteNodes(mapID, itemID)
}

// ListItems returns the items present on a map with node counts
func (s *NodeService) ListItems(mapID int64) ([]models.ItemSummary, error) {
	return s.repo.ListItems(mapID)
}
