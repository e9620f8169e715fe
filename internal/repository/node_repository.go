package repository

import (
	"database/sql"
	"fmt"

	"github.com/torvik/mapwiki-backend-go/internal/models"
)

// NodeRepository handles database operations for resource nodes
type NodeRepository struct {
	db *sql.DB
}

// NewNodeRepository creates a new node repository
func NewNodeRepository(db *sql.DB) *NodeRepository {
	return &NodeRepository{db: db}
}

// FetchPoints returns the raw points of one item within a bounding
// box. Only points inside the box are returned; callers do not
// re-filter.
func (r *NodeRepository) FetchPoints(mapID, itemID int64, bbox models.BoundingBox) ([]models.RawPoint, error) {
	query := `SELECT x, y, weight FROM resource_nodes
		WHERE map_id = ? AND item_id = ?
		AND x BETWEEN ? AND ? AND y BETWEEN ? AND ?`

	rows, err := r.db.Query(query, mapID, itemID, bbox.MinX, bbox.MaxX, bbox.MinY, bbox.MaxY)
	if err != nil {
		return nil, fmt.Errorf("failed to query resource nodes: %w", err)
	}
	defer rows.Close()

	var points []models.RawPoint
	for rows.Next() {
		var p models.RawPoint
		if err := rows.Scan(&p.X, &p.Y, &p.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan resource node: %w", err)
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// InsertNodes bulk-inserts nodes for one map inside a transaction
func (r *NodeRepository) InsertNodes(mapID int64, nodes []models.ResourceNode) error {
	if len(nodes) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO resource_nodes (map_id, item_id, x, y, weight)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, n := range nodes {
		weight := n.Weight
		if weight <= 0 {
			weight = 1
		}
		if _, err := stmt.Exec(mapID, n.ItemID, n.X, n.Y, weight); err != nil {
			return fmt.Errorf("failed to insert resource node: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteNodes removes all nodes of one item on a map and reports how
// many rows went away. itemID 0 removes every node on the map.
func (r *NodeRepository) DeleteNodes(mapID, itemID int64) (int64, error) {
	query := "DELETE FROM resource_nodes WHERE map_id = ?"
	args := []interface{}{mapID}

	if itemID != 0 {
		query += " AND item_id = ?"
		args = append(args, itemID)
	}

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete resource nodes: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted nodes: %w", err)
	}

	return deleted, nil
}

// ListItems returns the items present on a map with their node counts
func (r *NodeRepository) ListItems(mapID int64) ([]models.ItemSummary, error) {
	query := `SELECT item_id, COUNT(*) FROM resource_nodes
		WHERE map_id = ?
		GROUP BY item_id
		ORDER BY item_id`

	rows, err := r.db.Query(query, mapID)
	if err != nil {
		return nil, fmt.Errorf("failed to query item summaries: %w", err)
	}
	defer rows.Close()

	var items []models.ItemSummary
	for rows.Next() {
		var s models.ItemSummary
		if err := rows.Scan(&s.ItemID, &s.NodeCount); err != nil {
			return nil, fmt.Errorf("failed to scan item summary: %w", err)
		}
		items = append(items, s)
	}

	return items, rows.Err()
}
