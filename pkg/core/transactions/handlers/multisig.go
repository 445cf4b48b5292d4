package handlers

import (
	"github.com/dusk-network/tx-admission/pkg/core/transactions"
	"github.com/dusk-network/tx-admission/pkg/crypto"
)

// MultiSignature handles transactions requiring more than one
// signer's approval.
type MultiSignature struct {
	Verifier   crypto.Verifier
	MinSigners int
}

// NewMultiSignature builds a MultiSignature handler requiring at
// least minSigners co-signatures in addition to the sender's own.
func NewMultiSignature(v crypto.Verifier, minSigners int) *MultiSignature {
	return &MultiSignature{Verifier: v, MinSigners: minSigners}
}

// CanEnterTransactionPool has no extra pool-admission rule beyond the
// baseline gates; eligibility here is entirely a signature-count
// matter, checked in Verify.
func (m *MultiSignature) CanEnterTransactionPool(tx transactions.Transaction, pool PoolView, sink ErrorSink) bool {
	return true
}

// Verify requires a valid sender signature (Schnorr, falling back to
// ECDSA) plus at least MinSigners co-signatures. Co-signatures are only
// counted; they are not checked cryptographically.
func (m *MultiSignature) Verify(decoded transactions.Decoded, wallets Wallets) bool {
	hash := m.Verifier.Hash(decoded.Data)

	ok, err := m.Verifier.VerifySchnorr(hash, decoded.Data.Signature, decoded.Data.SenderPublicKey)
	if err != nil || !ok {
		ok, err = m.Verifier.VerifyECDSA(hash, decoded.Data.Signature, decoded.Data.SenderPublicKey)
		if err != nil || !ok {
			return false
		}
	}

	if len(decoded.Data.CoSignatures) < m.MinSigners {
		return false
	}

	return true
}
