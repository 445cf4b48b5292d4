package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-network/tx-admission/pkg/core/mempool/pool"
	"github.com/dusk-network/tx-admission/pkg/core/transactions"
)

func tx(id, sender string) transactions.Transaction {
	return transactions.Transaction{ID: id, SenderPublicKey: sender, Type: 0, TypeGroup: 1}
}

func TestMemPoolAddAndHas(t *testing.T) {
	p := pool.NewMemPool(0, 0)
	assert.False(t, p.Has("tx_1"))

	result, err := p.AddTransactions([]transactions.Transaction{tx("tx_1", "alice")})
	require.NoError(t, err)
	assert.Empty(t, result.NotAdded)
	assert.True(t, p.Has("tx_1"))
	assert.Equal(t, 1, p.Len())
}

func TestMemPoolRejectsDuplicateInsert(t *testing.T) {
	p := pool.NewMemPool(0, 0)
	_, err := p.AddTransactions([]transactions.Transaction{tx("tx_1", "alice")})
	require.NoError(t, err)

	result, err := p.AddTransactions([]transactions.Transaction{tx("tx_1", "alice")})
	require.NoError(t, err)
	require.Len(t, result.NotAdded, 1)
	assert.Equal(t, "ERR_UNKNOWN", result.NotAdded[0].Type)
}

func TestMemPoolEnforcesPerSenderQuota(t *testing.T) {
	p := pool.NewMemPool(1, 0)
	_, err := p.AddTransactions([]transactions.Transaction{tx("tx_1", "alice")})
	require.NoError(t, err)

	assert.True(t, p.HasExceededMaxTransactions("alice"))
	assert.False(t, p.HasExceededMaxTransactions("bob"))
}

func TestMemPoolEnforcesPoolSizeCeiling(t *testing.T) {
	p := pool.NewMemPool(0, 1)
	_, err := p.AddTransactions([]transactions.Transaction{tx("tx_1", "alice")})
	require.NoError(t, err)

	result, err := p.AddTransactions([]transactions.Transaction{tx("tx_2", "bob")})
	require.NoError(t, err)
	require.Len(t, result.NotAdded, 1)
	assert.Equal(t, "ERR_POOL_FULL", result.NotAdded[0].Type)
}

func TestMemPoolCountBySenderAndType(t *testing.T) {
	p := pool.NewMemPool(0, 0)
	ref := transactions.HandlerRef{Type: 0, TypeGroup: 1}

	_, err := p.AddTransactions([]transactions.Transaction{tx("tx_1", "alice"), tx("tx_2", "alice")})
	require.NoError(t, err)

	assert.Equal(t, 2, p.CountBySenderAndType("alice", ref))
	assert.Equal(t, 0, p.CountBySenderAndType("bob", ref))
}

func TestMemPoolRemove(t *testing.T) {
	p := pool.NewMemPool(0, 0)
	_, err := p.AddTransactions([]transactions.Transaction{tx("tx_1", "alice")})
	require.NoError(t, err)

	p.Remove("tx_1")
	assert.False(t, p.Has("tx_1"))
	assert.Equal(t, 0, p.Len())
}
