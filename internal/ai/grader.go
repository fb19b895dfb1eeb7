package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// FallbackScore is recorded when grading fails or times out. Grading is
// best-effort: a lost grade must not cost the reader their progress.
const FallbackScore = 0.5

// Grader is a client for the OpenAI chat completions API used as the
// checkpoint grading oracle
type Grader struct {
	apiKey      string
	apiURL      string
	model       string
	temperature float64
	client      *http.Client
}

// New creates a new grader client. The HTTP client carries a bounded timeout
// so a hung grading call cannot stall a submission indefinitely.
func New() (*Grader, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	return &Grader{
		apiKey:      apiKey,
		apiURL:      "https://api.openai.com/v1/chat/completions",
		model:       "gpt-4o-mini",
		temperature: 0.2,
		client:      &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// GradeRequest describes one checkpoint submission to grade
type GradeRequest struct {
	NodeID         int64
	UserInput      string
	TargetLanguage string
	// PromptContext is the node's prompt line, when it has one
	PromptContext string
}

// GradeResult is the oracle's verdict on a submission
type GradeResult struct {
	AccuracyScore float64
	Feedback      string
}

// Message represents a message in the chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completions API
type ChatRequest struct {
	Model          string         `json:"model"`
	Messages       []Message      `json:"messages"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
	Temperature    float64        `json:"temperature"`
}

// ChatResponse represents a response from the chat completions API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Grade evaluates a student response and returns an accuracy score in [0,1]
// with brief feedback. Out-of-range scores from the model are clamped.
func (g *Grader) Grade(ctx context.Context, req GradeRequest) (*GradeResult, error) {
	systemMessage := fmt.Sprintf(
		"You are a language learning evaluator grading a student response in %s.\n"+
			"Evaluate the student's response for grammatical accuracy, vocabulary use, and relevance to the prompt.\n"+
			"Return a JSON object with exactly two fields:\n"+
			"- \"accuracy_score\": a number from 0.0 to 1.0 (1.0 = perfect, 0.0 = completely wrong or off-topic)\n"+
			"- \"feedback\": a brief, encouraging sentence (1-2 sentences) telling the student what they did well and what to improve\n\n"+
			"Respond with ONLY the JSON object, no other text.",
		req.TargetLanguage,
	)

	var userMessage string
	if req.PromptContext != "" {
		userMessage = fmt.Sprintf("Prompt given to the student: %q\n\nStudent's response: %q",
			req.PromptContext, req.UserInput)
	} else {
		userMessage = fmt.Sprintf("Student's response in %s: %q", req.TargetLanguage, req.UserInput)
	}

	request := ChatRequest{
		Model: g.model,
		Messages: []Message{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: userMessage},
		},
		ResponseFormat: map[string]any{"type": "json_object"},
		Temperature:    g.temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %v", err)
	}

	if response.Error != nil {
		return nil, fmt.Errorf("API error: %s", response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned")
	}

	raw := strings.TrimSpace(response.Choices[0].Message.Content)

	var parsed struct {
		AccuracyScore *float64 `json:"accuracy_score"`
		Feedback      string   `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse grading verdict: %v", err)
	}

	result := &GradeResult{AccuracyScore: FallbackScore, Feedback: parsed.Feedback}
	if parsed.AccuracyScore != nil {
		result.AccuracyScore = clamp(*parsed.AccuracyScore)
	}
	return result, nil
}

// GradeWithFallback grades a submission, substituting the fallback verdict
// when the oracle fails. The flow continues on a failed grade rather than
// aborting the submission.
func (g *Grader) GradeWithFallback(ctx context.Context, req GradeRequest) *GradeResult {
	result, err := g.Grade(ctx, req)
	if err != nil {
		log.Printf("Error grading response for node %d: %v", req.NodeID, err)
		return &GradeResult{AccuracyScore: FallbackScore, Feedback: ""}
	}
	return result
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
