// Package vocabsync copies a node's target vocabulary into the user's
// personal word list when a checkpoint is completed.
package vocabsync

import (
	"fmt"
)

// Store is the slice of the persistence layer the syncer needs
type Store interface {
	GetTargetVocabIDs(nodeID int64) ([]int64, error)
	GetTermsByIDs(ids []int64, language string) ([]string, error)
	GetUserWords(userID, language string) ([]string, error)
	InsertUserWords(userID, language string, words []string) error
}

// Result partitions a node's target terms into those newly added to the
// user's list and those already present
type Result struct {
	Added   []string `json:"added"`
	Skipped []string `json:"skipped"`
}

// Syncer derives and applies the vocabulary list delta for a completed node
type Syncer struct {
	store Store
}

// New creates a syncer backed by the given store
func New(store Store) *Syncer {
	return &Syncer{store: store}
}

// Sync adds the node's target terms in the target language to the user's
// word list, skipping terms already present. Calling it again after a
// successful sync adds nothing. Any store failure aborts the sync; writes
// already applied are not rolled back.
func (s *Syncer) Sync(userID string, nodeID int64, targetLanguage string) (*Result, error) {
	ids, err := s.store.GetTargetVocabIDs(nodeID)
	if err != nil {
		return nil, fmt.Errorf("sync vocab for node %d: %w", nodeID, err)
	}
	if len(ids) == 0 {
		return &Result{Added: []string{}, Skipped: []string{}}, nil
	}

	terms, err := s.store.GetTermsByIDs(ids, targetLanguage)
	if err != nil {
		return nil, fmt.Errorf("sync vocab for node %d: %w", nodeID, err)
	}
	if len(terms) == 0 {
		return &Result{Added: []string{}, Skipped: []string{}}, nil
	}

	existing, err := s.store.GetUserWords(userID, targetLanguage)
	if err != nil {
		return nil, fmt.Errorf("sync vocab for node %d: %w", nodeID, err)
	}
	known := make(map[string]bool, len(existing))
	for _, w := range existing {
		known[w] = true
	}

	result := &Result{Added: []string{}, Skipped: []string{}}
	for _, term := range terms {
		if known[term] {
			result.Skipped = append(result.Skipped, term)
		} else {
			result.Added = append(result.Added, term)
		}
	}

	if len(result.Added) > 0 {
		if err := s.store.InsertUserWords(userID, targetLanguage, result.Added); err != nil {
			return nil, fmt.Errorf("sync vocab for node %d: %w", nodeID, err)
		}
	}

	return result, nil
}
