package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestGrader(serverURL string) *Grader {
	return &Grader{
		apiKey:      "test-key",
		apiURL:      serverURL,
		model:       "gpt-4o-mini",
		temperature: 0.2,
		client:      &http.Client{Timeout: 5 * time.Second},
	}
}

func verdictServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, content)
	}))
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name         string
		verdict      string
		wantScore    float64
		wantFeedback string
	}{
		{
			name:         "well-formed verdict",
			verdict:      `{"accuracy_score": 0.85, "feedback": "Nice work"}`,
			wantScore:    0.85,
			wantFeedback: "Nice work",
		},
		{
			name:      "score above range is clamped",
			verdict:   `{"accuracy_score": 1.7, "feedback": ""}`,
			wantScore: 1,
		},
		{
			name:      "score below range is clamped",
			verdict:   `{"accuracy_score": -0.2, "feedback": ""}`,
			wantScore: 0,
		},
		{
			name:         "missing score falls back to neutral",
			verdict:      `{"feedback": "ok"}`,
			wantScore:    FallbackScore,
			wantFeedback: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := verdictServer(t, tt.verdict)
			defer server.Close()

			g := newTestGrader(server.URL)
			result, err := g.Grade(context.Background(), GradeRequest{
				NodeID: 11, UserInput: "hola", TargetLanguage: "es",
			})
			if err != nil {
				t.Fatalf("Grade() error = %v", err)
			}
			if result.AccuracyScore != tt.wantScore {
				t.Errorf("score = %v, want %v", result.AccuracyScore, tt.wantScore)
			}
			if result.Feedback != tt.wantFeedback {
				t.Errorf("feedback = %q, want %q", result.Feedback, tt.wantFeedback)
			}
		})
	}
}

func TestGradeErrors(t *testing.T) {
	t.Run("API error surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"error":{"message":"rate limited"}}`)
		}))
		defer server.Close()

		g := newTestGrader(server.URL)
		if _, err := g.Grade(context.Background(), GradeRequest{UserInput: "hola"}); err == nil {
			t.Error("Grade() expected error")
		}
	})

	t.Run("malformed verdict surfaces", func(t *testing.T) {
		server := verdictServer(t, "not json at all")
		defer server.Close()

		g := newTestGrader(server.URL)
		if _, err := g.Grade(context.Background(), GradeRequest{UserInput: "hola"}); err == nil {
			t.Error("Grade() expected error")
		}
	})
}

func TestGradeWithFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	g := newTestGrader(server.URL)
	result := g.GradeWithFallback(context.Background(), GradeRequest{UserInput: "hola"})
	if result.AccuracyScore != FallbackScore {
		t.Errorf("score = %v, want fallback %v", result.AccuracyScore, FallbackScore)
	}
	if result.Feedback != "" {
		t.Errorf("feedback = %q, want empty", result.Feedback)
	}
}
