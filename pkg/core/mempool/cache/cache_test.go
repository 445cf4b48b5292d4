package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dusk-network/tx-admission/pkg/core/mempool/cache"
	"github.com/dusk-network/tx-admission/pkg/core/transactions"
)

func tx(id string) transactions.Transaction {
	return transactions.Transaction{ID: id}
}

func TestEpochCacheDedupesWithinBatch(t *testing.T) {
	c := cache.NewEpochCache()

	added, notAdded := c.CacheTransactions([]transactions.Transaction{tx("a"), tx("b"), tx("a")})

	require := assert.New(t)
	require.Equal([]transactions.Transaction{tx("a"), tx("b")}, added)
	require.Equal([]transactions.Transaction{tx("a")}, notAdded)
}

func TestEpochCacheDedupesAcrossCalls(t *testing.T) {
	c := cache.NewEpochCache()

	_, _ = c.CacheTransactions([]transactions.Transaction{tx("a")})
	added, notAdded := c.CacheTransactions([]transactions.Transaction{tx("a"), tx("b")})

	assert.Equal(t, []transactions.Transaction{tx("b")}, added)
	assert.Equal(t, []transactions.Transaction{tx("a")}, notAdded)
}

func TestEpochCacheReset(t *testing.T) {
	c := cache.NewEpochCache()
	_, _ = c.CacheTransactions([]transactions.Transaction{tx("a")})

	c.Reset()

	added, notAdded := c.CacheTransactions([]transactions.Transaction{tx("a")})
	assert.Equal(t, []transactions.Transaction{tx("a")}, added)
	assert.Empty(t, notAdded)
}
