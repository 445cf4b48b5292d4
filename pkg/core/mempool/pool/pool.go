// Package pool defines the Pool abstraction the admission processor
// reconciles insertions against, plus two concrete implementations:
// an in-memory MemPool for tests and embedding, and a goleveldb-backed
// LevelPool for persistent nodes (teacher idiom: pkg/core/chain/database.go's
// ldb wrapper).
package pool

import "github.com/dusk-network/tx-admission/pkg/core/transactions"

// Failure describes one transaction's rejection from AddTransactions.
type Failure struct {
	Transaction transactions.Transaction
	Type        string
	Message     string
}

// AddResult is the outcome of a bulk insert.
type AddResult struct {
	NotAdded []Failure
}

// Pool is the local mempool's external contract, as consumed by the
// admission processor (§6): membership, per-sender quota, bulk
// insert. The pool owns its own synchronisation; the processor treats
// every call as atomic.
type Pool interface {
	Has(id string) bool
	HasExceededMaxTransactions(senderPublicKey string) bool
	AddTransactions(txs []transactions.Transaction) (AddResult, error)

	// CountBySenderAndType supports handler-level pool-admission
	// rules (e.g. one outstanding vote per sender); see pkg/core/transactions/handlers.
	CountBySenderAndType(senderPublicKey string, ref transactions.HandlerRef) int
}
