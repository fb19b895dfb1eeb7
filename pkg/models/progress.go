package models

import "time"

// Progress statuses.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// NodeProgress tracks a user's progress on a single story node.
// One row per (uid, node_id); mutated only via upsert. BestScore holds the
// score of the most recent graded attempt (latest attempt wins, no max-merge).
type NodeProgress struct {
	UserID      string     `json:"uid" db:"uid"`
	NodeID      int64      `json:"node_id" db:"node_id"`
	Status      string     `json:"status" db:"status"`
	BestScore   *float64   `json:"best_score" db:"best_score"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// VocabMastery tracks a user's command of a vocabulary term and when it is
// next due for spaced review. One row per (uid, vocab_id), continually
// overwritten by the latest score.
type VocabMastery struct {
	UserID       string    `json:"uid" db:"uid"`
	VocabID      int64     `json:"vocab_id" db:"vocab_id"`
	MasteryScore float64   `json:"mastery_score" db:"mastery_score"`
	NextReviewAt time.Time `json:"next_review_at" db:"next_review_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Interaction is one append-only record of a graded checkpoint submission
type Interaction struct {
	ID            int64     `json:"interaction_id" db:"interaction_id"`
	UserID        string    `json:"uid" db:"uid"`
	NodeID        int64     `json:"node_id" db:"node_id"`
	UserInput     string    `json:"user_input" db:"user_input"`
	LLMFeedback   *string   `json:"llm_feedback" db:"llm_feedback"`
	AccuracyScore float64   `json:"accuracy_score" db:"accuracy_score"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
