package fees

import "github.com/dusk-network/tx-admission/pkg/core/transactions"

// StaticMatcher classifies by fixed per-(type,typeGroup) minimum
// fees, grounded on the teacher's milestone-table idiom (fee rules
// looked up per-height via ConfigManager). Types with no configured
// entry fall back to DefaultMinEnterPool and DefaultMinBroadcast.
type StaticMatcher struct {
	// MinEnterPool maps a handler ref to the minimum fee that earns
	// pool entry.
	MinEnterPool map[transactions.HandlerRef]uint64
	// MinBroadcast maps a handler ref to the minimum fee that earns
	// broadcast. Always expected to be <= the matching MinEnterPool
	// entry, since broadcast is the more permissive of the two.
	MinBroadcast map[transactions.HandlerRef]uint64
	// Default is not consulted by Match; refs absent from the maps are
	// classified against the default floors below.
	Default Outcome
	// DefaultMinEnterPool and DefaultMinBroadcast are the fee floors
	// used when no per-ref entry exists.
	DefaultMinEnterPool uint64
	DefaultMinBroadcast uint64
}

// NewStaticMatcher builds a StaticMatcher with the given fallback
// floors and no per-type overrides.
func NewStaticMatcher(defaultMinEnterPool, defaultMinBroadcast uint64) *StaticMatcher {
	return &StaticMatcher{
		MinEnterPool:        make(map[transactions.HandlerRef]uint64),
		MinBroadcast:        make(map[transactions.HandlerRef]uint64),
		DefaultMinEnterPool: defaultMinEnterPool,
		DefaultMinBroadcast: defaultMinBroadcast,
	}
}

// SetMinimums configures the fee floors for a specific handler ref.
func (m *StaticMatcher) SetMinimums(ref transactions.HandlerRef, minEnterPool, minBroadcast uint64) {
	m.MinEnterPool[ref] = minEnterPool
	m.MinBroadcast[ref] = minBroadcast
}

// Match implements Matcher.
func (m *StaticMatcher) Match(tx transactions.Transaction) Outcome {
	ref := tx.Ref()

	minEnter, ok := m.MinEnterPool[ref]
	if !ok {
		minEnter = m.DefaultMinEnterPool
	}
	minBroadcast, ok := m.MinBroadcast[ref]
	if !ok {
		minBroadcast = m.DefaultMinBroadcast
	}

	return Outcome{
		EnterPool: tx.Fee >= minEnter,
		Broadcast: tx.Fee >= minBroadcast,
	}
}
