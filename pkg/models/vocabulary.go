package models

// Vocabulary is a reference term in a target language
type Vocabulary struct {
	ID              int64    `json:"vocab_id" db:"vocab_id"`
	LanguageCode    string   `json:"language_code" db:"language_code"`
	Term            string   `json:"term" db:"term"`
	TranslationEN   string   `json:"translation_en" db:"translation_en"`
	ExampleSentence *string  `json:"example_sentence" db:"example_sentence"`
	DifficultyScore *float64 `json:"difficulty_score" db:"difficulty_score"`
}

// NodeVocabulary links a node to a vocabulary term. IsTarget marks words the
// node is specifically teaching; only target words are synced into the user's
// personal list at checkpoint completion.
type NodeVocabulary struct {
	NodeID   int64 `json:"node_id" db:"node_id"`
	VocabID  int64 `json:"vocab_id" db:"vocab_id"`
	IsTarget bool  `json:"is_target" db:"is_target"`
}

// VocabWord is an entry in a user's personal vocabulary list
type VocabWord struct {
	ID       int64  `json:"id" db:"id"`
	UserID   string `json:"uid" db:"uid"`
	Word     string `json:"word" db:"word"`
	Language string `json:"language" db:"language"`
}

// GrammarPoint is a reference grammar rule attached to nodes for display
type GrammarPoint struct {
	ID              int64   `json:"grammar_id" db:"grammar_id"`
	LanguageCode    string  `json:"language_code" db:"language_code"`
	RuleName        string  `json:"rule_name" db:"rule_name"`
	ExplanationEN   string  `json:"explanation_en" db:"explanation_en"`
	ExampleSentence *string `json:"example_sentence" db:"example_sentence"`
}
