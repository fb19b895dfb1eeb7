package database

import (
	"github.com/example/narrvoca/pkg/models"
)

// BranchingRepository handles database operations for branching rules
type BranchingRepository struct{}

// NewBranchingRepository creates a new repository instance
func NewBranchingRepository() *BranchingRepository {
	return &BranchingRepository{}
}

// GetByNode returns all branching rules attached to a node.
// Rules are ordered by branch_id so first-match-wins evaluation is
// deterministic regardless of the store's natural row order.
func (r *BranchingRepository) GetByNode(nodeID int64) ([]models.BranchRule, error) {
	var rules []models.BranchRule
	err := DB.Select(&rules,
		"SELECT * FROM branching_logic WHERE node_id = $1 ORDER BY branch_id ASC",
		nodeID)
	if err != nil {
		return nil, dataErr("failed to get branching rules", err)
	}
	return rules, nil
}
