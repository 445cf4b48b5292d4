package mempool

import (
	logger "github.com/sirupsen/logrus"

	"github.com/dusk-network/tx-admission/pkg/core/config"
	"github.com/dusk-network/tx-admission/pkg/core/fees"
	"github.com/dusk-network/tx-admission/pkg/core/mempool/forged"
	"github.com/dusk-network/tx-admission/pkg/core/mempool/pool"
	"github.com/dusk-network/tx-admission/pkg/core/transactions"
	"github.com/dusk-network/tx-admission/pkg/core/transactions/handlers"
)

// StateStore is the cache collaborator (§6): batch deduplication
// against ids already seen this epoch. The current-height half of
// the design's StateStore contract (StateStore.getLastHeight) is
// threaded through ProcessorDeps.CurrentHeight instead, since the
// design note on a single consistent currentHeight snapshot per
// transaction (§5) makes it a property of the batch run, not of the
// cache collaborator itself.
type StateStore interface {
	CacheTransactions(batch []transactions.Transaction) (added, notAdded []transactions.Transaction)
}

// ProcessorDeps is every collaborator the processor borrows for one
// batch, replacing the teacher's container-injected fields with
// explicit construction (§9's design-note decision).
type ProcessorDeps struct {
	Pool                 pool.Pool
	State                StateStore
	Forged               forged.Index
	Registry             *handlers.Registry
	Wallets              handlers.Wallets
	Config               *config.Manager
	Clock                ClockLike
	Classifier           *fees.Classifier
	CurrentHeight        func() uint32
	ExpirationCalculator ExpirationCalculator
	Logger               *logger.Entry
}

// ClockLike is the narrow Slots.getTime() contract, declared here so
// this package does not depend on pkg/core/slots; slots.SystemClock
// and slots.Fixed both satisfy it.
type ClockLike interface {
	GetTime() uint32
}

func (d *ProcessorDeps) log() *logger.Entry {
	if d.Logger != nil {
		return d.Logger
	}
	return logger.WithFields(logger.Fields{"prefix": "mempool"})
}
