package branching

import (
	"fmt"

	"github.com/example/narrvoca/pkg/models"
)

// RuleSource loads the branching rules attached to a node. Implementations
// must return rules in a stable order; evaluation is first-match-wins over
// the order they supply.
type RuleSource interface {
	GetByNode(nodeID int64) ([]models.BranchRule, error)
}

// Resolver fetches a node's rules and evaluates them
type Resolver struct {
	rules RuleSource
}

// NewResolver creates a resolver backed by the given rule source
func NewResolver(rules RuleSource) *Resolver {
	return &Resolver{rules: rules}
}

// Resolve returns the next node id for the given node, or (nil, nil) when no
// rule matches and the story is complete. score may be nil for non-graded
// advancement. A store failure aborts with the wrapped error.
func (r *Resolver) Resolve(nodeID int64, score *float64) (*int64, error) {
	rules, err := r.rules.GetByNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("resolve branch for node %d: %w", nodeID, err)
	}

	next, ok := Evaluate(rules, score)
	if !ok {
		return nil, nil
	}
	return &next, nil
}
