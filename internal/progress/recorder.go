// Package progress persists per-node progress and per-term mastery,
// relying on the store's upsert-by-key semantics for idempotency.
package progress

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/narrvoca/pkg/models"
)

// ProgressStore upserts rows keyed by (uid, node_id)
type ProgressStore interface {
	Upsert(progress *models.NodeProgress) error
}

// MasteryStore upserts rows keyed by (uid, vocab_id)
type MasteryStore interface {
	Upsert(mastery *models.VocabMastery) error
}

// ReviewScheduler maps a mastery score to the next review time
type ReviewScheduler interface {
	NextReviewAt(score float64) time.Time
}

// Recorder writes progress and mastery rows through the persistence layer
type Recorder struct {
	progress  ProgressStore
	mastery   MasteryStore
	scheduler ReviewScheduler
}

// NewRecorder creates a recorder over the given stores
func NewRecorder(progressStore ProgressStore, masteryStore MasteryStore, scheduler ReviewScheduler) *Recorder {
	return &Recorder{progress: progressStore, mastery: masteryStore, scheduler: scheduler}
}

// RecordCompletion marks a node completed for a user. score is nil for
// non-checkpoint nodes; for graded nodes the stored score is overwritten
// with the new value (latest attempt wins).
func (r *Recorder) RecordCompletion(userID string, nodeID int64, score *float64) error {
	err := r.progress.Upsert(&models.NodeProgress{
		UserID:    userID,
		NodeID:    nodeID,
		Status:    models.StatusCompleted,
		BestScore: score,
	})
	if err != nil {
		return fmt.Errorf("record completion for node %d: %w", nodeID, err)
	}
	return nil
}

// RecordMastery upserts one mastery row, scheduling the next review from
// the new score.
func (r *Recorder) RecordMastery(userID string, vocabID int64, score float64) error {
	err := r.mastery.Upsert(&models.VocabMastery{
		UserID:       userID,
		VocabID:      vocabID,
		MasteryScore: score,
		NextReviewAt: r.scheduler.NextReviewAt(score),
	})
	if err != nil {
		return fmt.Errorf("record mastery for vocab %d: %w", vocabID, err)
	}
	return nil
}

// RecordMasteryBatch updates mastery for every given vocabulary id with the
// same score, one concurrent write per term. All writes run to completion;
// individual failures are logged and returned for diagnostics but never
// abort the batch.
func (r *Recorder) RecordMasteryBatch(userID string, vocabIDs []int64, score float64) []error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []error

	for _, vocabID := range vocabIDs {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := r.RecordMastery(userID, id, score); err != nil {
				log.Printf("Error updating mastery for user %s vocab %d: %v", userID, id, err)
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
			}
		}(vocabID)
	}
	wg.Wait()

	return failures
}
