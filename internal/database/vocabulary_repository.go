package database

import (
	"github.com/jmoiron/sqlx"

	"github.com/example/narrvoca/pkg/models"
)

// VocabularyRepository handles database operations for reference vocabulary
// and the user's personal word list
type VocabularyRepository struct{}

// NewVocabularyRepository creates a new repository instance
func NewVocabularyRepository() *VocabularyRepository {
	return &VocabularyRepository{}
}

// GetTargetVocabIDs returns the ids of vocabulary terms a node is teaching
func (r *VocabularyRepository) GetTargetVocabIDs(nodeID int64) ([]int64, error) {
	var ids []int64
	err := DB.Select(&ids,
		"SELECT vocab_id FROM node_vocabulary WHERE node_id = $1 AND is_target = $2",
		nodeID, true)
	if err != nil {
		return nil, dataErr("failed to get target vocab ids", err)
	}
	return ids, nil
}

// GetNodeVocabIDs returns every vocabulary id linked to a node, target or not
func (r *VocabularyRepository) GetNodeVocabIDs(nodeID int64) ([]int64, error) {
	var ids []int64
	err := DB.Select(&ids,
		"SELECT vocab_id FROM node_vocabulary WHERE node_id = $1",
		nodeID)
	if err != nil {
		return nil, dataErr("failed to get node vocab ids", err)
	}
	return ids, nil
}

// GetTermsByIDs returns the term strings for the given vocabulary ids,
// restricted to a single language
func (r *VocabularyRepository) GetTermsByIDs(ids []int64, language string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		"SELECT term FROM vocabulary WHERE vocab_id IN (?) AND language_code = ?",
		ids, language)
	if err != nil {
		return nil, dataErr("failed to build vocab terms query", err)
	}
	query = DB.Rebind(query)

	var terms []string
	if err := DB.Select(&terms, query, args...); err != nil {
		return nil, dataErr("failed to get vocab terms", err)
	}
	return terms, nil
}

// GetUserWords returns the words already in a user's personal list for a language
func (r *VocabularyRepository) GetUserWords(userID, language string) ([]string, error) {
	var words []string
	err := DB.Select(&words,
		"SELECT word FROM vocab_words WHERE uid = $1 AND language = $2",
		userID, language)
	if err != nil {
		return nil, dataErr("failed to get user words", err)
	}
	return words, nil
}

// InsertUserWords adds new words to a user's personal list
func (r *VocabularyRepository) InsertUserWords(userID, language string, words []string) error {
	if len(words) == 0 {
		return nil
	}
	for _, word := range words {
		_, err := DB.Exec(
			"INSERT INTO vocab_words (uid, word, language) VALUES ($1, $2, $3)",
			userID, word, language)
		if err != nil {
			return dataErr("failed to insert user word", err)
		}
	}
	return nil
}

// GetByID returns a vocabulary entry by ID
func (r *VocabularyRepository) GetByID(vocabID int64) (*models.Vocabulary, error) {
	var vocab models.Vocabulary
	err := DB.Get(&vocab, "SELECT * FROM vocabulary WHERE vocab_id = $1", vocabID)
	if err != nil {
		return nil, dataErr("failed to get vocabulary by ID", err)
	}
	return &vocab, nil
}

// Create inserts a new vocabulary entry. Duplicate (language, term) pairs are
// rejected by the store's unique constraint.
func (r *VocabularyRepository) Create(vocab *models.Vocabulary) error {
	result, err := DB.Exec(`
		INSERT INTO vocabulary (language_code, term, translation_en, example_sentence, difficulty_score)
		VALUES ($1, $2, $3, $4, $5)
	`, vocab.LanguageCode, vocab.Term, vocab.TranslationEN, vocab.ExampleSentence, vocab.DifficultyScore)
	if err != nil {
		return dataErr("failed to create vocabulary", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		vocab.ID = id
	}
	return nil
}

// Exists reports whether a (language, term) pair is already in the vocabulary table
func (r *VocabularyRepository) Exists(language, term string) (bool, error) {
	var count int
	err := DB.Get(&count,
		"SELECT COUNT(*) FROM vocabulary WHERE language_code = $1 AND term = $2",
		language, term)
	if err != nil {
		return false, dataErr("failed to check vocabulary existence", err)
	}
	return count > 0, nil
}
