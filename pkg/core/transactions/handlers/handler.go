// Package handlers implements the pluggable, per-type business-rule
// validators the design calls "handlers": pool-entry eligibility and
// semantic verification, looked up by a transaction's (type,
// typeGroup) pair.
package handlers

import (
	"fmt"

	"github.com/dusk-network/tx-admission/pkg/core/transactions"
)

// ErrorSink is the narrow capability a Handler needs to push its own
// errors onto the processor, instead of depending on the processor's
// full interface (the design note's "cleaner design" alternative to
// passing the whole processor).
type ErrorSink interface {
	PushError(id string, kind string, message string)
}

// Wallets is the read-only wallet/state-store view handlers verify
// against. It is intentionally narrow: balances and nonces only, the
// two facts business-rule handlers in this pack need.
type Wallets interface {
	Balance(publicKey string) (uint64, bool)
	Nonce(publicKey string) (uint64, bool)
}

// PoolView is the subset of the Pool a handler may consult while
// deciding pool-entry eligibility (e.g. counting a sender's
// outstanding transactions of a given type).
type PoolView interface {
	CountBySenderAndType(publicKey string, ref transactions.HandlerRef) int
}

// Handler is a per-transaction-type business-logic module.
type Handler interface {
	// CanEnterTransactionPool decides whether tx may proceed past the
	// semantic gate. It may call sink.PushError itself and return
	// false, in which case the orchestrator records no further error.
	CanEnterTransactionPool(tx transactions.Transaction, pool PoolView, sink ErrorSink) bool

	// Verify runs semantic/business verification once the transaction
	// has decoded successfully. The orchestrator makes no signature
	// check of its own before this call; concrete handlers check the
	// signature here.
	Verify(decoded transactions.Decoded, wallets Wallets) bool
}

// InvalidTransactionType is raised by Registry.Get when no handler is
// registered for a (type, typeGroup) pair; it maps to ERR_UNSUPPORTED.
type InvalidTransactionType struct {
	Ref transactions.HandlerRef
}

func (e *InvalidTransactionType) Error() string {
	return fmt.Sprintf("unsupported transaction type %d (group %d)", e.Ref.Type, e.Ref.TypeGroup)
}

// Registry resolves a transaction to its Handler.
type Registry struct {
	handlers map[transactions.HandlerRef]Handler
}

// NewRegistry builds an empty registry; use Register to populate it.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[transactions.HandlerRef]Handler)}
}

// Register associates a Handler with a (type, typeGroup) pair.
func (r *Registry) Register(ref transactions.HandlerRef, h Handler) {
	r.handlers[ref] = h
}

// Get resolves tx's handler, or returns InvalidTransactionType.
func (r *Registry) Get(tx transactions.Transaction) (Handler, error) {
	h, ok := r.handlers[tx.Ref()]
	if !ok {
		return nil, &InvalidTransactionType{Ref: tx.Ref()}
	}
	return h, nil
}
