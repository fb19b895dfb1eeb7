package database

import (
	"time"

	"github.com/example/narrvoca/pkg/models"
)

// MasteryRepository handles database operations for per-term vocabulary mastery
type MasteryRepository struct{}

// NewMasteryRepository creates a new repository instance
func NewMasteryRepository() *MasteryRepository {
	return &MasteryRepository{}
}

// Upsert writes a mastery row keyed by (uid, vocab_id), overwriting any
// existing score and review schedule with the supplied values.
func (r *MasteryRepository) Upsert(mastery *models.VocabMastery) error {
	mastery.UpdatedAt = time.Now().UTC()

	_, err := DB.Exec(`
		INSERT INTO user_vocab_mastery (uid, vocab_id, mastery_score, next_review_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (uid, vocab_id) DO UPDATE SET
			mastery_score = excluded.mastery_score,
			next_review_at = excluded.next_review_at,
			updated_at = excluded.updated_at
	`, mastery.UserID, mastery.VocabID, mastery.MasteryScore, mastery.NextReviewAt, mastery.UpdatedAt)
	if err != nil {
		return dataErr("failed to upsert vocab mastery", err)
	}
	return nil
}

// GetByUserAndVocab returns mastery for a specific user and vocabulary term
func (r *MasteryRepository) GetByUserAndVocab(userID string, vocabID int64) (*models.VocabMastery, error) {
	var mastery models.VocabMastery
	err := DB.Get(&mastery,
		"SELECT * FROM user_vocab_mastery WHERE uid = $1 AND vocab_id = $2",
		userID, vocabID)
	if err != nil {
		return nil, dataErr("failed to get vocab mastery", err)
	}
	return &mastery, nil
}

// GetDueReviews returns a user's mastery rows due for review, soonest first
func (r *MasteryRepository) GetDueReviews(userID string) ([]models.VocabMastery, error) {
	var due []models.VocabMastery
	err := DB.Select(&due, `
		SELECT * FROM user_vocab_mastery
		WHERE uid = $1 AND next_review_at <= $2
		ORDER BY next_review_at ASC
	`, userID, time.Now().UTC())
	if err != nil {
		return nil, dataErr("failed to get due reviews", err)
	}
	return due, nil
}

// DueCountByUser is one user's count of vocabulary terms due for review
type DueCountByUser struct {
	UserID string `db:"uid"`
	Count  int    `db:"n"`
}

// GetUsersWithDueReviews returns every user with at least one term due,
// with the number of due terms
func (r *MasteryRepository) GetUsersWithDueReviews() ([]DueCountByUser, error) {
	var counts []DueCountByUser
	err := DB.Select(&counts, `
		SELECT uid, COUNT(*) AS n FROM user_vocab_mastery
		WHERE next_review_at <= $1
		GROUP BY uid
	`, time.Now().UTC())
	if err != nil {
		return nil, dataErr("failed to get users with due reviews", err)
	}
	return counts, nil
}
