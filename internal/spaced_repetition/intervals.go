// Package spaced_repetition schedules vocabulary reviews from mastery scores.
//
// Scheduling is banded rather than adaptive: each new score maps directly to
// a review interval and overwrites any prior schedule. There is no history
// or smoothing.
package spaced_repetition

import "time"

// Review interval bands in days. Band lower bounds are inclusive,
// upper bounds exclusive.
const (
	IntervalStruggling = 1  // score < 0.3
	IntervalWeak       = 3  // 0.3 <= score < 0.6
	IntervalSolid      = 7  // 0.6 <= score < 0.8
	IntervalStrong     = 14 // score >= 0.8
)

// Scheduler maps mastery scores to future review timestamps
type Scheduler struct {
	// Now returns the current time; overridable in tests
	Now func() time.Time
}

// New creates a scheduler using the wall clock
func New() *Scheduler {
	return &Scheduler{Now: time.Now}
}

// IntervalDays returns the review interval in days for a mastery score
func (s *Scheduler) IntervalDays(score float64) int {
	switch {
	case score < 0.3:
		return IntervalStruggling
	case score < 0.6:
		return IntervalWeak
	case score < 0.8:
		return IntervalSolid
	default:
		return IntervalStrong
	}
}

// NextReviewAt returns the timestamp at which a term with the given mastery
// score is next due for review.
func (s *Scheduler) NextReviewAt(score float64) time.Time {
	return s.Now().UTC().AddDate(0, 0, s.IntervalDays(score))
}
