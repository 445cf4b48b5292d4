package handlers

import (
	"github.com/dusk-network/tx-admission/pkg/core/transactions"
	"github.com/dusk-network/tx-admission/pkg/crypto"
)

// Transfer handles plain value-transfer transactions: the most common
// transaction family, generalising the teacher's transfer/standard-tx
// notion to the spec's opaque type/typeGroup scheme.
type Transfer struct {
	Verifier crypto.Verifier
}

// NewTransfer builds a Transfer handler bound to a signature bridge.
func NewTransfer(v crypto.Verifier) *Transfer {
	return &Transfer{Verifier: v}
}

// CanEnterTransactionPool rejects transfers with an empty sender public
// key (ERR_BAD_DATA); all other transfers may proceed to signature and
// fee checks. No amount or balance check is made here.
func (t *Transfer) CanEnterTransactionPool(tx transactions.Transaction, pool PoolView, sink ErrorSink) bool {
	if tx.SenderPublicKey == "" {
		sink.PushError(tx.ID, "ERR_BAD_DATA", "transfer has no sender")
		return false
	}
	return true
}

// Verify checks the transaction's signature against its sender's
// public key, trying Schnorr first and falling back to ECDSA — both
// are valid signing schemes under this module's crypto bridge.
func (t *Transfer) Verify(decoded transactions.Decoded, wallets Wallets) bool {
	hash := t.Verifier.Hash(decoded.Data)

	if ok, err := t.Verifier.VerifySchnorr(hash, decoded.Data.Signature, decoded.Data.SenderPublicKey); err == nil && ok {
		return true
	}
	ok, err := t.Verifier.VerifyECDSA(hash, decoded.Data.Signature, decoded.Data.SenderPublicKey)
	return err == nil && ok
}
