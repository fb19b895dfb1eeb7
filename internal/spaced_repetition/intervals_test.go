package spaced_repetition

import (
	"testing"
	"time"
)

func TestIntervalDays(t *testing.T) {
	s := New()

	tests := []struct {
		name  string
		score float64
		want  int
	}{
		{"struggling", 0.2, 1},
		{"weak", 0.5, 3},
		{"solid", 0.7, 7},
		{"strong", 0.9, 14},
		{"zero", 0.0, 1},
		{"perfect", 1.0, 14},
		{"lower band boundary rounds up", 0.3, 3},
		{"middle band boundary rounds up", 0.6, 7},
		{"upper band boundary rounds up", 0.8, 14},
		{"just below first boundary", 0.29999, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IntervalDays(tt.score); got != tt.want {
				t.Errorf("IntervalDays(%v) = %d, want %d", tt.score, got, tt.want)
			}
		})
	}
}

func TestNextReviewAt(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	s := &Scheduler{Now: func() time.Time { return now }}

	tests := []struct {
		score float64
		want  time.Time
	}{
		{0.2, now.AddDate(0, 0, 1)},
		{0.5, now.AddDate(0, 0, 3)},
		{0.7, now.AddDate(0, 0, 7)},
		{0.9, now.AddDate(0, 0, 14)},
	}

	for _, tt := range tests {
		if got := s.NextReviewAt(tt.score); !got.Equal(tt.want) {
			t.Errorf("NextReviewAt(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
