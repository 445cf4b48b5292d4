package mempool

import (
	"fmt"

	"github.com/dusk-network/tx-admission/pkg/core/transactions"
)

// perTransactionFilter runs §4.2 against one survivor of the cache
// phase. Every numbered step is a terminal gate: on rejection the
// transaction is not processed further.
func (p *Processor) perTransactionFilter(t transactions.Transaction) {
	// 1. Existence.
	if p.deps.Pool.Has(t.ID) {
		p.reject(t.ID, ErrDuplicate, fmt.Sprintf("Duplicate transaction %s", t.ID))
		return
	}

	// 2. Size.
	if max := p.deps.Config.Mempool.MaxTransactionBytes; max > 0 && uint32(t.CanonicalSize()) > max {
		p.reject(t.ID, ErrTooLarge, fmt.Sprintf(
			"Transaction %s exceeds the maximum allowed size of %d bytes", t.ID, max))
		return
	}

	// 3. Sender quota: excess, not an error.
	if p.deps.Pool.HasExceededMaxTransactions(t.SenderPublicKey) {
		p.markExcess(t.ID)
		return
	}

	// 4. Semantic gate.
	if !p.semanticGate(t) {
		// A handler may have already pushed its own error (§4.3); if
		// not, this is a silent stop with no recorded reason, which
		// the design does not call for, so every semanticGate branch
		// above pushes its own error before returning false.
		return
	}

	// 5. Decode.
	decoded, err := transactions.Decode(t)
	if err != nil {
		if schemaErr, ok := err.(*transactions.SchemaError); ok {
			p.reject(t.ID, ErrTransactionSchema, schemaErr.Error())
		} else {
			p.reject(t.ID, ErrUnknown, err.Error())
		}
		return
	}

	// 6. Handler verify.
	handler, err := p.deps.Registry.Get(t)
	if err != nil {
		// semanticGate already resolved the handler successfully for
		// this id; a failure here would be a registry consistency
		// bug, not a per-transaction condition.
		p.reject(t.ID, ErrUnknown, err.Error())
		return
	}
	if !handler.Verify(decoded, p.deps.Wallets) {
		p.reject(t.ID, ErrBadData, "Transaction didn't pass the verification process.")
		return
	}

	// 7. Fee classify.
	outcome := p.deps.Classifier.Classify(t)
	if !outcome.EnterPool && !outcome.Broadcast {
		p.reject(t.ID, ErrLowFee, "The fee is too low to broadcast and accept the transaction")
		return
	}

	// 8. Insert into accept and/or broadcast per fee result.
	if outcome.EnterPool {
		p.accept[t.ID] = t
	}
	if outcome.Broadcast {
		p.broadcast[t.ID] = t
	}
}
