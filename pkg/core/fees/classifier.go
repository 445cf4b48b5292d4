// Package fees implements the dynamic-fee classifier: a pure function
// deciding whether a transaction's fee earns it pool entry,
// broadcast, both, or neither.
package fees

import "github.com/dusk-network/tx-admission/pkg/core/transactions"

// Outcome is the {enterPool, broadcast} pair the classifier produces.
type Outcome struct {
	EnterPool bool
	Broadcast bool
}

// Matcher is the policy a Classifier delegates to. It is a pure
// function of the decoded transaction; this module implements only
// classification against a Matcher, never fee-market pricing itself.
type Matcher interface {
	Match(tx transactions.Transaction) Outcome
}

// Classifier wraps a Matcher, giving the orchestrator a single call
// site for §4.5.
type Classifier struct {
	matcher Matcher
}

// NewClassifier builds a Classifier bound to matcher.
func NewClassifier(matcher Matcher) *Classifier {
	return &Classifier{matcher: matcher}
}

// Classify runs the bound Matcher against tx.
func (c *Classifier) Classify(tx transactions.Transaction) Outcome {
	return c.matcher.Match(tx)
}
