package database

import (
	"database/sql"

	"github.com/example/narrvoca/pkg/models"
)

// StoryRepository handles database operations for stories, nodes and node text
type StoryRepository struct{}

// NewStoryRepository creates a new repository instance
func NewStoryRepository() *StoryRepository {
	return &StoryRepository{}
}

// GetAll returns all stories
func (r *StoryRepository) GetAll() ([]models.Story, error) {
	var stories []models.Story
	err := DB.Select(&stories, "SELECT * FROM stories ORDER BY story_id")
	if err != nil {
		return nil, dataErr("failed to get stories", err)
	}
	return stories, nil
}

// GetByID returns a story by ID
func (r *StoryRepository) GetByID(storyID int64) (*models.Story, error) {
	var story models.Story
	err := DB.Get(&story, "SELECT * FROM stories WHERE story_id = $1", storyID)
	if err != nil {
		return nil, dataErr("failed to get story by ID", err)
	}
	return &story, nil
}

// GetNodesByStory returns a story's nodes in reading order
func (r *StoryRepository) GetNodesByStory(storyID int64) ([]models.StoryNode, error) {
	var nodes []models.StoryNode
	err := DB.Select(&nodes,
		"SELECT * FROM story_nodes WHERE story_id = $1 ORDER BY sequence_order ASC",
		storyID)
	if err != nil {
		return nil, dataErr("failed to get story nodes", err)
	}
	return nodes, nil
}

// GetNodeTexts returns a node's text lines in display order
func (r *StoryRepository) GetNodeTexts(nodeID int64) ([]models.NodeText, error) {
	var texts []models.NodeText
	err := DB.Select(&texts,
		"SELECT * FROM node_text WHERE node_id = $1 ORDER BY display_order ASC",
		nodeID)
	if err != nil {
		return nil, dataErr("failed to get node texts", err)
	}
	return texts, nil
}

// GetFullStory loads a story with all nodes and their text lines.
// Nodes come back in sequence order, texts in display order.
func (r *StoryRepository) GetFullStory(storyID int64) (*models.FullStory, error) {
	story, err := r.GetByID(storyID)
	if err != nil {
		return nil, err
	}

	nodes, err := r.GetNodesByStory(storyID)
	if err != nil {
		return nil, err
	}

	full := &models.FullStory{Story: *story, Nodes: make([]models.NarrativeNode, 0, len(nodes))}
	for _, node := range nodes {
		texts, err := r.GetNodeTexts(node.ID)
		if err != nil {
			return nil, err
		}
		full.Nodes = append(full.Nodes, models.NarrativeNode{StoryNode: node, Texts: texts})
	}
	return full, nil
}

// GetPromptText returns the first prompt-type text line for a node, used as
// grading context. Returns empty string when the node has no prompt line.
func (r *StoryRepository) GetPromptText(nodeID int64) (string, error) {
	var content string
	err := DB.Get(&content, `
		SELECT text_content FROM node_text
		WHERE node_id = $1 AND text_type = $2
		ORDER BY display_order ASC LIMIT 1
	`, nodeID, models.TextPrompt)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", dataErr("failed to get prompt text", err)
	}
	return content, nil
}

// GetGrammarForNode returns the grammar points linked to a node
func (r *StoryRepository) GetGrammarForNode(nodeID int64) ([]models.GrammarPoint, error) {
	var points []models.GrammarPoint
	err := DB.Select(&points, `
		SELECT g.* FROM grammar_points g
		JOIN node_grammar ng ON ng.grammar_id = g.grammar_id
		WHERE ng.node_id = $1
		ORDER BY g.grammar_id
	`, nodeID)
	if err != nil {
		return nil, dataErr("failed to get grammar for node", err)
	}
	return points, nil
}
