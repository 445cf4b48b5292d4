package handlers

import (
	"fmt"

	"github.com/dusk-network/tx-admission/pkg/core/transactions"
	"github.com/dusk-network/tx-admission/pkg/crypto"
)

// Vote handles delegation/vote transactions. Generalises the
// teacher's coinbase-type special-casing in mempool.go (a handler
// rejecting a transaction kind outright for pool-admission reasons,
// not decode reasons) to an arbitrary per-sender quota on a type.
type Vote struct {
	Verifier crypto.Verifier
}

// NewVote builds a Vote handler bound to a signature bridge.
func NewVote(v crypto.Verifier) *Vote {
	return &Vote{Verifier: v}
}

// CanEnterTransactionPool enforces at most one outstanding vote
// transaction per sender in the pool. It demonstrates the design's
// "the handler may itself call pushError on self and return false"
// clause: the rejection is reported here, not by the orchestrator.
func (v *Vote) CanEnterTransactionPool(tx transactions.Transaction, pool PoolView, sink ErrorSink) bool {
	if pool.CountBySenderAndType(tx.SenderPublicKey, tx.Ref()) > 0 {
		sink.PushError(tx.ID, "ERR_BAD_DATA", fmt.Sprintf(
			"sender %s already has a pending vote transaction", tx.SenderPublicKey))
		return false
	}
	return true
}

// Verify checks the transaction's Schnorr signature; votes in this
// module always sign with Schnorr, never ECDSA.
func (v *Vote) Verify(decoded transactions.Decoded, wallets Wallets) bool {
	hash := v.Verifier.Hash(decoded.Data)
	ok, err := v.Verifier.VerifySchnorr(hash, decoded.Data.Signature, decoded.Data.SenderPublicKey)
	return err == nil && ok
}
