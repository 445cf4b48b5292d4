package pool

import (
	"sync"

	"github.com/dusk-network/tx-admission/pkg/core/transactions"
)

// MemPool is a map-backed Pool: the teacher's mempool.go references a
// HashMap-shaped pool type that was not itself retrieved in the
// example pack, so the shape is rebuilt here from its usage
// (Contains/Put/Range against a key-keyed store).
type MemPool struct {
	mu                       sync.RWMutex
	txs                      map[string]transactions.Transaction
	bySender                 map[string]int
	maxTransactionsPerSender uint32
	maxPoolSize              uint32
}

// NewMemPool builds an empty MemPool with the given per-sender and
// overall size ceilings (0 means unlimited).
func NewMemPool(maxTransactionsPerSender, maxPoolSize uint32) *MemPool {
	return &MemPool{
		txs:                      make(map[string]transactions.Transaction),
		bySender:                 make(map[string]int),
		maxTransactionsPerSender: maxTransactionsPerSender,
		maxPoolSize:              maxPoolSize,
	}
}

// Has implements Pool.
func (p *MemPool) Has(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.txs[id]
	return ok
}

// HasExceededMaxTransactions implements Pool.
func (p *MemPool) HasExceededMaxTransactions(senderPublicKey string) bool {
	if p.maxTransactionsPerSender == 0 {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return uint32(p.bySender[senderPublicKey]) >= p.maxTransactionsPerSender
}

// AddTransactions implements Pool: it inserts what it can and reports
// the rest as failures, so the processor's reconciler (§4.7) always
// reflects what the pool actually stores.
func (p *MemPool) AddTransactions(txs []transactions.Transaction) (AddResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var result AddResult
	for _, tx := range txs {
		if _, exists := p.txs[tx.ID]; exists {
			result.NotAdded = append(result.NotAdded, Failure{
				Transaction: tx,
				Type:        "ERR_UNKNOWN",
				Message:     "transaction already present in pool",
			})
			continue
		}

		if p.maxPoolSize > 0 && uint32(len(p.txs)) >= p.maxPoolSize {
			result.NotAdded = append(result.NotAdded, Failure{
				Transaction: tx,
				Type:        "ERR_POOL_FULL",
				Message:     "pool is at capacity",
			})
			continue
		}

		p.txs[tx.ID] = tx
		p.bySender[tx.SenderPublicKey]++
	}

	return result, nil
}

// CountBySenderAndType implements Pool.
func (p *MemPool) CountBySenderAndType(senderPublicKey string, ref transactions.HandlerRef) int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	count := 0
	for _, tx := range p.txs {
		if tx.SenderPublicKey == senderPublicKey && tx.Ref() == ref {
			count++
		}
	}
	return count
}

// Remove drops a transaction from the pool, used by test harnesses
// and by forged-block cleanup (out of scope here, exposed for
// completeness).
func (p *MemPool) Remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if tx, ok := p.txs[id]; ok {
		p.bySender[tx.SenderPublicKey]--
		delete(p.txs, id)
	}
}

// Len reports the number of stored transactions.
func (p *MemPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.txs)
}
