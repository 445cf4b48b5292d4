// Package forged implements the forged-transaction index the
// processor cross-checks accepted/broadcast transactions against
// before they touch the pool (§4.6), goleveldb-backed in the same
// idiom as the teacher's chain database.
package forged

import (
	"os"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	lderrors "github.com/syndtr/goleveldb/leveldb/errors"
)

var forgedPrefix = []byte("Forged")

// Index is the TransactionRepository collaborator contract (§6):
// lookup of already-forged (on-chain) transaction ids.
type Index interface {
	GetForgedTransactionsIds(ids []string) ([]string, error)
}

// LevelIndex is a goleveldb-backed Index. MarkForged is the write
// side: out of scope for the admission processor itself (block
// acceptance populates it), but exposed so a caller or test harness
// can seed the index.
type LevelIndex struct {
	storage *leveldb.DB
}

// NewLevelIndex opens (or creates) a forged-index store at path.
func NewLevelIndex(path string) (*LevelIndex, error) {
	storage, err := leveldb.OpenFile(path, nil)
	if _, corrupted := err.(*lderrors.ErrCorrupted); corrupted {
		storage, err = leveldb.RecoverFile(path, nil)
	}
	if _, accessDenied := err.(*os.PathError); accessDenied {
		return nil, errors.Wrap(err, "forged: could not open or create db")
	}
	if err != nil {
		return nil, errors.Wrap(err, "forged: open")
	}
	return &LevelIndex{storage: storage}, nil
}

func forgedKey(id string) []byte {
	return append(append([]byte{}, forgedPrefix...), []byte(id)...)
}

// MarkForged records ids as now present on the canonical chain.
func (l *LevelIndex) MarkForged(ids []string) error {
	batch := new(leveldb.Batch)
	for _, id := range ids {
		batch.Put(forgedKey(id), []byte{1})
	}
	if err := l.storage.Write(batch, nil); err != nil {
		return errors.Wrap(err, "forged: mark forged")
	}
	return nil
}

// GetForgedTransactionsIds implements Index: returns the subset of
// ids already present on the canonical chain.
func (l *LevelIndex) GetForgedTransactionsIds(ids []string) ([]string, error) {
	var forged []string
	for _, id := range ids {
		ok, err := l.storage.Has(forgedKey(id), nil)
		if err != nil {
			return nil, errors.Wrap(err, "forged: has")
		}
		if ok {
			forged = append(forged, id)
		}
	}
	return forged, nil
}

// Close releases the underlying leveldb handle.
func (l *LevelIndex) Close() error {
	return l.storage.Close()
}

// MemIndex is an in-memory Index for tests.
type MemIndex struct {
	forged map[string]struct{}
}

// NewMemIndex builds an empty in-memory index.
func NewMemIndex() *MemIndex {
	return &MemIndex{forged: make(map[string]struct{})}
}

// MarkForged records ids as forged.
func (m *MemIndex) MarkForged(ids []string) {
	for _, id := range ids {
		m.forged[id] = struct{}{}
	}
}

// GetForgedTransactionsIds implements Index.
func (m *MemIndex) GetForgedTransactionsIds(ids []string) ([]string, error) {
	var forged []string
	for _, id := range ids {
		if _, ok := m.forged[id]; ok {
			forged = append(forged, id)
		}
	}
	return forged, nil
}
