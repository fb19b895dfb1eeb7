// Package reader drives a user's progression through a branching story:
// checkpoint gating, grading, progress and mastery persistence, vocabulary
// sync, and branch resolution, in a fixed side-effect order.
package reader

import (
	"context"
	"log"
	"strings"

	"github.com/example/narrvoca/internal/ai"
	"github.com/example/narrvoca/internal/auth"
	"github.com/example/narrvoca/internal/vocabsync"
	"github.com/example/narrvoca/pkg/models"
)

// State is the reader's position in its lifecycle
type State int

const (
	// Loading — session and story list not yet available
	Loading State = iota
	// Browsing — story list shown, no story selected
	Browsing
	// Reading — a story is loaded and a node is current
	Reading
	// Submitting — a checkpoint submission is in flight
	Submitting
	// Complete — the story has ended; only Reset leaves this state
	Complete
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Browsing:
		return "browsing"
	case Reading:
		return "reading"
	case Submitting:
		return "submitting"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// StoryStore loads stories and node prompt context
type StoryStore interface {
	GetAll() ([]models.Story, error)
	GetFullStory(storyID int64) (*models.FullStory, error)
	GetPromptText(nodeID int64) (string, error)
}

// Grader is the checkpoint grading oracle. Implementations never fail;
// they substitute a fallback verdict instead.
type Grader interface {
	GradeWithFallback(ctx context.Context, req ai.GradeRequest) *ai.GradeResult
}

// BranchResolver decides the next node, or nil for story completion
type BranchResolver interface {
	Resolve(nodeID int64, score *float64) (*int64, error)
}

// Recorder persists progress and mastery rows
type Recorder interface {
	RecordCompletion(userID string, nodeID int64, score *float64) error
	RecordMasteryBatch(userID string, vocabIDs []int64, score float64) []error
}

// VocabSyncer copies a node's target terms into the user's word list
type VocabSyncer interface {
	Sync(userID string, nodeID int64, targetLanguage string) (*vocabsync.Result, error)
}

// VocabSource lists the vocabulary ids linked to a node
type VocabSource interface {
	GetNodeVocabIDs(nodeID int64) ([]int64, error)
}

// InteractionLog appends graded-submission records
type InteractionLog interface {
	Insert(interaction *models.Interaction) error
}

// Session is one user's reader. It is not safe for concurrent use; each
// reader session belongs to a single logical flow.
type Session struct {
	sessions     auth.Provider
	stories      StoryStore
	grader       Grader
	resolver     BranchResolver
	recorder     Recorder
	syncer       VocabSyncer
	vocab        VocabSource
	interactions InteractionLog

	state     State
	userID    string
	storyList []models.Story
	story     *models.FullStory
	nodeIndex int
	input     string
	feedback  string
}

// NewSession creates a reader session in the Loading state
func NewSession(
	sessions auth.Provider,
	stories StoryStore,
	grader Grader,
	resolver BranchResolver,
	recorder Recorder,
	syncer VocabSyncer,
	vocab VocabSource,
	interactions InteractionLog,
) *Session {
	return &Session{
		sessions:     sessions,
		stories:      stories,
		grader:       grader,
		resolver:     resolver,
		recorder:     recorder,
		syncer:       syncer,
		vocab:        vocab,
		interactions: interactions,
		state:        Loading,
	}
}

// Init resolves the user session and loads the story list, moving the
// reader to Browsing. Returns auth.ErrNoSession when no user is signed in.
// A failed story-list load still reaches Browsing with an empty list; the
// list can be reloaded by calling Init again.
func (s *Session) Init() error {
	session, err := s.sessions.Current()
	if err != nil {
		return err
	}
	s.userID = session.UserID

	list, err := s.stories.GetAll()
	if err != nil {
		log.Printf("reader: failed to load stories: %v", err)
		list = nil
	}
	s.storyList = list
	s.state = Browsing
	return nil
}

// SelectStory loads the full story and starts reading at its first node.
// The input buffer, held feedback and completion flag are reset. A failed
// load leaves the reader where it was; the caller retries by selecting again.
func (s *Session) SelectStory(storyID int64) error {
	full, err := s.stories.GetFullStory(storyID)
	if err != nil {
		log.Printf("reader: failed to load story %d: %v", storyID, err)
		return err
	}

	s.story = full
	s.nodeIndex = 0
	s.input = ""
	s.feedback = ""
	s.state = Reading
	return nil
}

// Continue completes the current non-checkpoint node and advances along the
// default branch. The progress write is fire-and-forget; a failed branch
// resolution leaves the reader on the current node for retry.
func (s *Session) Continue() error {
	node := s.CurrentNode()
	if s.state != Reading || node == nil {
		return nil
	}
	s.feedback = ""

	if err := s.recorder.RecordCompletion(s.userID, node.ID, nil); err != nil {
		log.Printf("reader: failed to record progress for node %d: %v", node.ID, err)
	}

	next, err := s.resolver.Resolve(node.ID, nil)
	if err != nil {
		log.Printf("reader: failed to resolve branch for node %d: %v", node.ID, err)
		return err
	}

	s.advance(next)
	return nil
}

// Submit grades the pending input at a checkpoint node and advances along
// the branch selected by the resulting score. With no pending input it is a
// no-op. Side effects run in a fixed order: grade, log the interaction,
// record progress, mastery fan-out and vocabulary sync, resolve the branch,
// advance. Grading failures fall back to a neutral verdict; only a failed
// branch resolution aborts, leaving state and input untouched.
func (s *Session) Submit(ctx context.Context) error {
	node := s.CurrentNode()
	if s.state != Reading || node == nil || !node.IsCheckpoint {
		return nil
	}
	input := strings.TrimSpace(s.input)
	if input == "" {
		return nil
	}

	s.feedback = ""
	s.state = Submitting

	promptContext, err := s.stories.GetPromptText(node.ID)
	if err != nil {
		log.Printf("reader: failed to load prompt for node %d: %v", node.ID, err)
		promptContext = ""
	}

	verdict := s.grader.GradeWithFallback(ctx, ai.GradeRequest{
		NodeID:         node.ID,
		UserInput:      input,
		TargetLanguage: s.story.Story.TargetLanguage,
		PromptContext:  promptContext,
	})
	score := verdict.AccuracyScore

	interaction := &models.Interaction{
		UserID:        s.userID,
		NodeID:        node.ID,
		UserInput:     input,
		AccuracyScore: score,
	}
	if verdict.Feedback != "" {
		feedback := verdict.Feedback
		interaction.LLMFeedback = &feedback
	}
	if err := s.interactions.Insert(interaction); err != nil {
		log.Printf("reader: failed to log interaction for node %d: %v", node.ID, err)
	}

	if err := s.recorder.RecordCompletion(s.userID, node.ID, &score); err != nil {
		log.Printf("reader: failed to record progress for node %d: %v", node.ID, err)
	}

	s.syncNodeVocabulary(node.ID, score)

	next, err := s.resolver.Resolve(node.ID, &score)
	if err != nil {
		log.Printf("reader: failed to resolve branch for node %d: %v", node.ID, err)
		s.state = Reading
		return err
	}

	s.advance(next)
	s.input = ""
	s.feedback = verdict.Feedback
	return nil
}

// syncNodeVocabulary runs the mastery fan-out and word-list sync for a
// completed checkpoint. Both are best-effort: failures are logged and never
// block advancement.
func (s *Session) syncNodeVocabulary(nodeID int64, score float64) {
	vocabIDs, err := s.vocab.GetNodeVocabIDs(nodeID)
	if err != nil {
		log.Printf("reader: failed to load linked vocab for node %d: %v", nodeID, err)
		return
	}
	if len(vocabIDs) > 0 {
		if failures := s.recorder.RecordMasteryBatch(s.userID, vocabIDs, score); len(failures) > 0 {
			log.Printf("reader: %d of %d mastery updates failed for node %d",
				len(failures), len(vocabIDs), nodeID)
		}
	}

	if _, err := s.syncer.Sync(s.userID, nodeID, s.story.Story.TargetLanguage); err != nil {
		log.Printf("reader: failed to sync vocabulary for node %d: %v", nodeID, err)
	}
}

// advance applies a branch resolution result: no next node, or a node id
// outside the loaded story, ends the story.
func (s *Session) advance(next *int64) {
	if next == nil {
		s.state = Complete
		return
	}
	idx := s.story.NodeIndex(*next)
	if idx == -1 {
		s.state = Complete
		return
	}
	s.nodeIndex = idx
	s.state = Reading
}

// Reset clears the loaded story and returns to Browsing. It is the only way
// out of Complete.
func (s *Session) Reset() {
	s.story = nil
	s.nodeIndex = 0
	s.input = ""
	s.feedback = ""
	s.state = Browsing
}

// State returns the reader's current state
func (s *Session) State() State {
	return s.state
}

// UserID returns the signed-in user's identifier
func (s *Session) UserID() string {
	return s.userID
}

// Stories returns the loaded story list
func (s *Session) Stories() []models.Story {
	return s.storyList
}

// Story returns the loaded story, or nil outside of Reading/Submitting/Complete
func (s *Session) Story() *models.FullStory {
	return s.story
}

// CurrentNode returns the node the reader is on, or nil when no story is loaded
func (s *Session) CurrentNode() *models.NarrativeNode {
	if s.story == nil || s.nodeIndex < 0 || s.nodeIndex >= len(s.story.Nodes) {
		return nil
	}
	return &s.story.Nodes[s.nodeIndex]
}

// NodeIndex returns the index of the current node in the story sequence
func (s *Session) NodeIndex() int {
	return s.nodeIndex
}

// IsCheckpoint reports whether the current node requires a graded response
func (s *Session) IsCheckpoint() bool {
	node := s.CurrentNode()
	return node != nil && node.IsCheckpoint
}

// SetInput replaces the pending input buffer
func (s *Session) SetInput(input string) {
	s.input = input
}

// Input returns the pending input buffer
func (s *Session) Input() string {
	return s.input
}

// Feedback returns grading feedback held since the last submission.
// It persists until the next Continue or Submit call.
func (s *Session) Feedback() string {
	return s.feedback
}
