// Package branching resolves which story node a reader moves to next.
//
// Rule evaluation is a pure function over a node's rule set: score_threshold
// rules are consulted first when a score is available, classifying the score
// as pass or fail against a fixed threshold; a default rule is the fallback.
// The first rule matching in input order wins.
package branching

import (
	"github.com/example/narrvoca/pkg/models"
)

// PassThreshold is the score at or above which a response counts as passing
// for branching purposes.
const PassThreshold = 0.7

// Evaluate resolves the next node id from a set of branching rules.
// score is optional; pass nil for non-graded advancement. The second return
// value is false when no rule matches (story complete from the caller's view).
//
// No database calls; safe to unit-test without mocking.
func Evaluate(rules []models.BranchRule, score *float64) (int64, bool) {
	if len(rules) == 0 {
		return 0, false
	}

	// Threshold rules are only consulted when a score is supplied
	if score != nil {
		outcome := models.OutcomeFail
		if *score >= PassThreshold {
			outcome = models.OutcomePass
		}
		for _, rule := range rules {
			if rule.ConditionType == models.ConditionScoreThreshold &&
				rule.ConditionValue != nil && *rule.ConditionValue == outcome {
				return rule.NextNodeID, true
			}
		}
	}

	// Fall back to the first default rule
	for _, rule := range rules {
		if rule.ConditionType == models.ConditionDefault {
			return rule.NextNodeID, true
		}
	}

	return 0, false
}
