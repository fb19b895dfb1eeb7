package models

// Rule condition kinds.
const (
	ConditionDefault        = "default"
	ConditionScoreThreshold = "score_threshold"
)

// Values carried by score_threshold rules.
const (
	OutcomePass = "pass"
	OutcomeFail = "fail"
)

// BranchRule maps a node and an optional pass/fail outcome to the next node.
// ConditionValue is only meaningful for score_threshold rules, where it holds
// "pass" or "fail". A NextNodeID that is not part of the story signals
// story completion.
type BranchRule struct {
	ID             int64   `json:"branch_id" db:"branch_id"`
	NodeID         int64   `json:"node_id" db:"node_id"`
	ConditionType  string  `json:"condition_type" db:"condition_type"`
	ConditionValue *string `json:"condition_value" db:"condition_value"`
	NextNodeID     int64   `json:"next_node_id" db:"next_node_id"`
}
