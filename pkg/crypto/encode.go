package crypto

import (
	"encoding/json"

	"github.com/dusk-network/tx-admission/pkg/core/transactions"
)

// signableBytes canonically encodes a transaction's signable fields.
// Reuses the same JSON canonicalisation as Transaction.CanonicalSize
// so the hash and the size check always see the same byte layout.
func signableBytes(tx transactions.Transaction) ([]byte, error) {
	return json.Marshal(tx)
}
