package database

import (
	"time"

	"github.com/example/narrvoca/pkg/models"
)

// InteractionRepository handles the append-only interaction log
type InteractionRepository struct{}

// NewInteractionRepository creates a new repository instance
func NewInteractionRepository() *InteractionRepository {
	return &InteractionRepository{}
}

// Insert appends one interaction record. Rows are never updated or deleted.
func (r *InteractionRepository) Insert(interaction *models.Interaction) error {
	interaction.CreatedAt = time.Now().UTC()

	result, err := DB.Exec(`
		INSERT INTO interaction_log (uid, node_id, user_input, llm_feedback, accuracy_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, interaction.UserID, interaction.NodeID, interaction.UserInput,
		interaction.LLMFeedback, interaction.AccuracyScore, interaction.CreatedAt)
	if err != nil {
		return dataErr("failed to insert interaction", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		interaction.ID = id
	}
	return nil
}
