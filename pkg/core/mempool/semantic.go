package mempool

import (
	"errors"
	"fmt"

	"github.com/dusk-network/tx-admission/pkg/core/transactions"
	"github.com/dusk-network/tx-admission/pkg/core/transactions/handlers"
)

// futureToleranceSeconds is the §4.3 "now + 3600" tolerance window.
const futureToleranceSeconds = 3600

// ExpirationContext is the expirationCalculator contract's input (§4.3).
type ExpirationContext struct {
	BlockTime         uint64
	CurrentHeight     uint32
	Now               uint32
	MaxTransactionAge uint32
}

// ExpirationCalculator computes the block height after which tx
// expires, or reports non-expiring via ok=false.
type ExpirationCalculator func(tx transactions.Transaction, ctx ExpirationContext) (expiration uint32, ok bool)

// DefaultExpirationCalculator derives an expiration height from a
// transaction's wall-clock age: it estimates the height the
// transaction was created at from how many blocks have elapsed since
// its timestamp, then projects that forward by maxTransactionAge
// blocks. Non-expiring (ok=false) whenever a milestone's blockTime or
// the configured maxTransactionAge is zero, since block-age cannot be
// derived from a wall-clock delta without a block rate.
func DefaultExpirationCalculator(tx transactions.Transaction, ctx ExpirationContext) (uint32, bool) {
	if ctx.BlockTime == 0 || ctx.MaxTransactionAge == 0 {
		return 0, false
	}

	var blocksElapsed uint32
	if ctx.Now > tx.Timestamp {
		elapsedSeconds := uint64(ctx.Now - tx.Timestamp)
		blocksElapsed = uint32(elapsedSeconds / ctx.BlockTime)
	}
	if blocksElapsed > ctx.CurrentHeight {
		blocksElapsed = ctx.CurrentHeight
	}

	createdAt := ctx.CurrentHeight - blocksElapsed
	return createdAt + ctx.MaxTransactionAge, true
}

// semanticGate runs the four ordered checks of §4.3, stopping at the
// first failure. It returns false once it has recorded a rejection
// (via p.PushError, including those a handler pushes itself).
func (p *Processor) semanticGate(tx transactions.Transaction) bool {
	now := p.deps.Clock.GetTime()

	if tx.Timestamp > now+futureToleranceSeconds {
		delta := tx.Timestamp - now
		p.reject(tx.ID, ErrFromFuture, fmt.Sprintf(
			"Transaction %s is %d seconds in the future", tx.ID, delta))
		return false
	}

	if p.deps.ExpirationCalculator != nil {
		height := p.deps.CurrentHeight()
		milestone := p.deps.Config.GetMilestone(height)
		ctx := ExpirationContext{
			BlockTime:         milestone.BlockTime,
			CurrentHeight:     height,
			Now:               now,
			MaxTransactionAge: p.deps.Config.Mempool.MaxTransactionAge,
		}
		if expiration, ok := p.deps.ExpirationCalculator(tx, ctx); ok && expiration <= height+1 {
			p.reject(tx.ID, ErrExpired, fmt.Sprintf(
				"Transaction %s is expired since %d blocks.", tx.ID, int64(height)-int64(expiration)))
			return false
		}
	}

	if tx.Network != nil && *tx.Network != p.deps.Config.NetworkPubKeyHash() {
		p.reject(tx.ID, ErrWrongNetwork, fmt.Sprintf(
			"Transaction %s targets an unexpected network", tx.ID))
		return false
	}

	handler, err := p.deps.Registry.Get(tx)
	if err != nil {
		var invalidType *handlers.InvalidTransactionType
		if errors.As(err, &invalidType) {
			p.reject(tx.ID, ErrUnsupported, fmt.Sprintf(
				"Invalidating transaction of unsupported type '%d'", tx.Type))
		} else {
			p.reject(tx.ID, ErrUnknown, err.Error())
		}
		return false
	}

	return handler.CanEnterTransactionPool(tx, p.deps.Pool, p)
}
