// Package cache implements the fingerprint-cache StateStore
// collaborator: dedup against ids already seen this epoch, grounded
// on the teacher's m.verified.Contains(txid) dedup check in
// mempool.go's onPendingTx.
package cache

import (
	"sync"

	"github.com/dusk-network/tx-admission/pkg/core/transactions"
)

// EpochCache is an in-memory fingerprint set scoped to the current
// epoch. Resetting it between epochs is the caller's responsibility
// (out of scope for the admission processor per §1).
type EpochCache struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewEpochCache builds an empty cache.
func NewEpochCache() *EpochCache {
	return &EpochCache{seen: make(map[string]struct{})}
}

// CacheTransactions records every not-yet-seen id in batch and
// returns the transactions newly added versus those already present,
// implementing StateStore.cacheTransactions (§6). Input order is
// preserved in both returned slices.
func (c *EpochCache) CacheTransactions(batch []transactions.Transaction) (added, notAdded []transactions.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, tx := range batch {
		if _, ok := c.seen[tx.ID]; ok {
			notAdded = append(notAdded, tx)
			continue
		}
		c.seen[tx.ID] = struct{}{}
		added = append(added, tx)
	}
	return added, notAdded
}

// Reset clears the cache, starting a new epoch.
func (c *EpochCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = make(map[string]struct{})
}
