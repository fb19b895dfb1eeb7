package models

import "time"

// Difficulty tiers for stories.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Story is a branching narrative in a single target language
type Story struct {
	ID              int64     `json:"story_id" db:"story_id"`
	Title           string    `json:"title" db:"title"`
	TargetLanguage  string    `json:"target_language" db:"target_language"`
	DifficultyLevel *string   `json:"difficulty_level" db:"difficulty_level"`
	Genre           *string   `json:"genre" db:"genre"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// StoryNode is one scene within a story. SequenceOrder defines the reading
// order and is unique per story; IsCheckpoint marks nodes that require a
// graded free-text response before the reader may proceed.
type StoryNode struct {
	ID                 int64   `json:"node_id" db:"node_id"`
	StoryID            int64   `json:"story_id" db:"story_id"`
	SequenceOrder      int     `json:"sequence_order" db:"sequence_order"`
	IsCheckpoint       bool    `json:"is_checkpoint" db:"is_checkpoint"`
	ContextDescription *string `json:"context_description" db:"context_description"`
}

// Text kinds for node text lines.
const (
	TextNarration = "narration"
	TextDialogue  = "dialogue"
	TextPrompt    = "prompt"
)

// NodeText is one rendered line of a node, in a single language.
// Lines are displayed in DisplayOrder; LanguageCode separates target-language
// lines from translations.
type NodeText struct {
	ID           int64   `json:"node_text_id" db:"node_text_id"`
	NodeID       int64   `json:"node_id" db:"node_id"`
	LanguageCode string  `json:"language_code" db:"language_code"`
	Speaker      *string `json:"speaker" db:"speaker"`
	TextType     string  `json:"text_type" db:"text_type"`
	TextContent  string  `json:"text_content" db:"text_content"`
	DisplayOrder int     `json:"display_order" db:"display_order"`
}

// NarrativeNode bundles a node with its text lines, already in display order.
type NarrativeNode struct {
	StoryNode
	Texts []NodeText `json:"texts"`
}

// FullStory is a story with all of its nodes and text lines loaded,
// nodes ordered by sequence.
type FullStory struct {
	Story Story           `json:"story"`
	Nodes []NarrativeNode `json:"nodes"`
}

// NodeIndex returns the position of the given node id within the story's
// node sequence, or -1 when the id is not part of the loaded story.
func (s *FullStory) NodeIndex(nodeID int64) int {
	for i, n := range s.Nodes {
		if n.ID == nodeID {
			return i
		}
	}
	return -1
}
