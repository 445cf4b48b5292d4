package pool

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	lderrors "github.com/syndtr/goleveldb/leveldb/errors"

	"github.com/dusk-network/tx-admission/pkg/core/transactions"
)

// txPrefix namespaces pool entries in the shared leveldb keyspace,
// mirroring the teacher's database.go prefixed-key convention
// ("HEADER", "Input").
var txPrefix = []byte("PoolTx")

// LevelPool is a goleveldb-backed Pool, grounded on the teacher's
// ldb wrapper in pkg/core/chain/database.go: same corruption-recovery
// open sequence, same prefixed-key scheme.
type LevelPool struct {
	mu                       sync.RWMutex
	storage                  *leveldb.DB
	senderCounts             map[string]int
	size                     int
	maxTransactionsPerSender uint32
	maxPoolSize              uint32
}

// NewLevelPool opens (or creates) a leveldb pool at path, recovering
// from corruption exactly as the teacher's NewDatabase does.
func NewLevelPool(path string, maxTransactionsPerSender, maxPoolSize uint32) (*LevelPool, error) {
	storage, err := leveldb.OpenFile(path, nil)
	if _, corrupted := err.(*lderrors.ErrCorrupted); corrupted {
		storage, err = leveldb.RecoverFile(path, nil)
	}
	if _, accessDenied := err.(*os.PathError); accessDenied {
		return nil, errors.Wrap(err, "pool: could not open or create db")
	}
	if err != nil {
		return nil, errors.Wrap(err, "pool: open")
	}

	p := &LevelPool{storage: storage, senderCounts: make(map[string]int),
		maxTransactionsPerSender: maxTransactionsPerSender, maxPoolSize: maxPoolSize}

	iter := storage.NewIterator(nil, nil)
	defer iter.Release()
	for iter.Next() {
		var tx transactions.Transaction
		if err := json.Unmarshal(iter.Value(), &tx); err == nil {
			p.senderCounts[tx.SenderPublicKey]++
			p.size++
		}
	}

	return p, nil
}

func key(id string) []byte {
	return append(append([]byte{}, txPrefix...), []byte(id)...)
}

// Has implements Pool.
func (p *LevelPool) Has(id string) bool {
	ok, _ := p.storage.Has(key(id), nil)
	return ok
}

// HasExceededMaxTransactions implements Pool.
func (p *LevelPool) HasExceededMaxTransactions(senderPublicKey string) bool {
	if p.maxTransactionsPerSender == 0 {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return uint32(p.senderCounts[senderPublicKey]) >= p.maxTransactionsPerSender
}

// AddTransactions implements Pool.
func (p *LevelPool) AddTransactions(txs []transactions.Transaction) (AddResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var result AddResult
	batch := new(leveldb.Batch)
	staged := 0

	for _, tx := range txs {
		if ok, _ := p.storage.Has(key(tx.ID), nil); ok {
			result.NotAdded = append(result.NotAdded, Failure{
				Transaction: tx, Type: "ERR_UNKNOWN", Message: "transaction already present in pool",
			})
			continue
		}

		if p.maxPoolSize > 0 && uint32(p.size+staged) >= p.maxPoolSize {
			result.NotAdded = append(result.NotAdded, Failure{
				Transaction: tx, Type: "ERR_POOL_FULL", Message: "pool is at capacity",
			})
			continue
		}

		encoded, err := json.Marshal(tx)
		if err != nil {
			result.NotAdded = append(result.NotAdded, Failure{
				Transaction: tx, Type: "ERR_UNKNOWN", Message: err.Error(),
			})
			continue
		}

		batch.Put(key(tx.ID), encoded)
		staged++
	}

	if batch.Len() > 0 {
		if err := p.storage.Write(batch, nil); err != nil {
			return AddResult{}, errors.Wrap(err, "pool: write batch")
		}
	}

	for _, tx := range txs {
		failed := false
		for _, f := range result.NotAdded {
			if f.Transaction.ID == tx.ID {
				failed = true
				break
			}
		}
		if !failed {
			p.senderCounts[tx.SenderPublicKey]++
			p.size++
		}
	}

	return result, nil
}

// CountBySenderAndType implements Pool. LevelPool keeps no secondary
// index by type, so this scans; acceptable given the pool's bulk
// operations are already O(batch size) and this is only consulted by
// handlers during the per-transaction filter, not hot-looped.
func (p *LevelPool) CountBySenderAndType(senderPublicKey string, ref transactions.HandlerRef) int {
	iter := p.storage.NewIterator(nil, nil)
	defer iter.Release()

	count := 0
	for iter.Next() {
		var tx transactions.Transaction
		if err := json.Unmarshal(iter.Value(), &tx); err != nil {
			continue
		}
		if tx.SenderPublicKey == senderPublicKey && tx.Ref() == ref {
			count++
		}
	}
	return count
}

// Close releases the underlying leveldb handle.
func (p *LevelPool) Close() error {
	return p.storage.Close()
}
