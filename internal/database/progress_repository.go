package database

import (
	"time"

	"github.com/example/narrvoca/pkg/models"
)

// ProgressRepository handles database operations for per-node user progress
type ProgressRepository struct{}

// NewProgressRepository creates a new repository instance
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

// Upsert writes a progress row keyed by (uid, node_id). An existing row is
// overwritten in place; best_score takes the supplied value as-is (latest
// attempt wins). Passing a nil score leaves best_score untouched on conflict.
func (r *ProgressRepository) Upsert(progress *models.NodeProgress) error {
	progress.UpdatedAt = time.Now().UTC()
	if progress.Status == models.StatusCompleted && progress.CompletedAt == nil {
		now := progress.UpdatedAt
		progress.CompletedAt = &now
	}

	_, err := DB.Exec(`
		INSERT INTO user_node_progress (uid, node_id, status, best_score, completed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (uid, node_id) DO UPDATE SET
			status = excluded.status,
			best_score = COALESCE(excluded.best_score, user_node_progress.best_score),
			completed_at = COALESCE(excluded.completed_at, user_node_progress.completed_at),
			updated_at = excluded.updated_at
	`, progress.UserID, progress.NodeID, progress.Status, progress.BestScore,
		progress.CompletedAt, progress.UpdatedAt)
	if err != nil {
		return dataErr("failed to upsert node progress", err)
	}
	return nil
}

// GetByUserAndNode returns progress for a specific user and node
func (r *ProgressRepository) GetByUserAndNode(userID string, nodeID int64) (*models.NodeProgress, error) {
	var progress models.NodeProgress
	err := DB.Get(&progress,
		"SELECT * FROM user_node_progress WHERE uid = $1 AND node_id = $2",
		userID, nodeID)
	if err != nil {
		return nil, dataErr("failed to get node progress", err)
	}
	return &progress, nil
}

// CountByUser returns how many progress rows a user has per status
func (r *ProgressRepository) CountByUser(userID string) (map[string]int, error) {
	rows, err := DB.Queryx(
		"SELECT status, COUNT(*) AS n FROM user_node_progress WHERE uid = $1 GROUP BY status",
		userID)
	if err != nil {
		return nil, dataErr("failed to count node progress", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, dataErr("failed to scan progress counts", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
