// Package mempool implements the transaction admission processor: a
// short-lived, single-use pipeline that decides, for each transaction
// in a batch, whether it enters the pool, is broadcast, is excess, or
// is invalid (§1–§4 of the design).
package mempool

import (
	"fmt"

	"github.com/dusk-network/tx-admission/pkg/core/transactions"
)

// Processor runs one batch through the admission pipeline. It is
// single-use: Validate must not be invoked twice on the same
// instance (§3, §5 reentrancy).
type Processor struct {
	deps ProcessorDeps

	used bool

	order []string
	seen  map[string]struct{}

	accept    map[string]transactions.Transaction
	broadcast map[string]transactions.Transaction
	excess    map[string]bool
	invalid   map[string]bool
	errorsMap map[string][]ReportError
}

// NewProcessor binds a Processor to its collaborators for one batch.
// All four classification maps are empty at construction (§3
// lifecycle).
func NewProcessor(deps ProcessorDeps) *Processor {
	return &Processor{
		deps:      deps,
		seen:      make(map[string]struct{}),
		accept:    make(map[string]transactions.Transaction),
		broadcast: make(map[string]transactions.Transaction),
		excess:    make(map[string]bool),
		invalid:   make(map[string]bool),
		errorsMap: make(map[string][]ReportError),
	}
}

// Validate runs the fixed pipeline (§4.1) and returns a Report. A
// second call on the same Processor returns a FatalError, per the
// single-use contract.
func (p *Processor) Validate(batch []transactions.Transaction) (Report, error) {
	if p.used {
		return Report{}, &FatalError{Reason: "processor reused across validate invocations"}
	}
	p.used = true

	for _, t := range batch {
		p.recordOrder(t.ID)
	}

	// 1. Cache.
	added, notAdded := p.deps.State.CacheTransactions(batch)
	for _, t := range notAdded {
		// Open question (§9), mirrored as specified: a duplicate at
		// the cache step is suppressed if the id already carries an
		// error; later gates do not apply this suppression.
		if len(p.errorsMap[t.ID]) == 0 {
			p.reject(t.ID, ErrDuplicate, "Already in cache.")
		}
	}

	// 2. Empty working set short-circuits straight to the report.
	if len(added) == 0 {
		return p.buildReport(), nil
	}

	// 3. Filter & transform each survivor independently.
	for _, t := range added {
		p.perTransactionFilter(t)
	}

	// 4. Forged reconciliation against the union of accept/broadcast.
	if err := p.reconcileForged(); err != nil {
		return Report{}, err
	}

	// 5. Pool insertion of accept.
	if err := p.reconcilePoolInsertion(); err != nil {
		return Report{}, err
	}

	// 6. Stats emission: informational only, no behaviour change.
	p.emitStats()

	return p.buildReport(), nil
}

// recordOrder tracks the first appearance of id in the input batch, so
// the final Report preserves input order despite duplicates (§5
// ordering guarantees, §9 open question on accept/broadcast order).
func (p *Processor) recordOrder(id string) {
	if _, ok := p.seen[id]; ok {
		return
	}
	p.seen[id] = struct{}{}
	p.order = append(p.order, id)
}

// reject records a gate's rejection of id and marks it invalid,
// clearing any stray accept/broadcast/excess membership.
func (p *Processor) reject(id string, kind ErrorKind, message string) {
	p.PushError(id, string(kind), message)
}

// PushError implements handlers.ErrorSink: the narrow capability a
// Handler needs to record its own rejection reason (§9's design
// note), expressed with a plain string kind so the handlers package
// does not need to depend on this package's ErrorKind type.
func (p *Processor) PushError(id string, kind string, message string) {
	p.errorsMap[id] = append(p.errorsMap[id], ReportError{Type: ErrorKind(kind), Message: message})
	p.invalid[id] = true
	delete(p.accept, id)
	delete(p.broadcast, id)
	delete(p.excess, id)
}

// markExcess classifies id as excess: rejected for sender quota, not
// an error (§4.2 step 3, §3 data model).
func (p *Processor) markExcess(id string) {
	p.excess[id] = true
}

// reconcileForged implements §4.6: drop transactions already on
// chain from both accept and broadcast before they reach the pool.
func (p *Processor) reconcileForged() error {
	candidates := make([]string, 0, len(p.accept)+len(p.broadcast))
	added := make(map[string]struct{})
	for id := range p.accept {
		candidates = append(candidates, id)
		added[id] = struct{}{}
	}
	for id := range p.broadcast {
		if _, ok := added[id]; !ok {
			candidates = append(candidates, id)
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	forgedIDs, err := p.deps.Forged.GetForgedTransactionsIds(candidates)
	if err != nil {
		return &FatalError{Reason: fmt.Sprintf("forged index lookup: %v", err)}
	}

	for _, id := range forgedIDs {
		p.reject(id, ErrForged, "Already forged.")
	}

	return nil
}

// reconcilePoolInsertion implements §4.7: submit accept in one call
// and reconcile whatever the pool reports it could not store.
func (p *Processor) reconcilePoolInsertion() error {
	if len(p.accept) == 0 {
		return nil
	}

	toInsert := make([]transactions.Transaction, 0, len(p.accept))
	// Preserve input order for the bulk call, even though Pool does
	// not itself depend on ordering; keeps behaviour deterministic
	// for test doubles that record call order.
	for _, id := range p.order {
		if tx, ok := p.accept[id]; ok {
			toInsert = append(toInsert, tx)
		}
	}

	result, err := p.deps.Pool.AddTransactions(toInsert)
	if err != nil {
		return &FatalError{Reason: fmt.Sprintf("pool insertion: %v", err)}
	}

	for _, failure := range result.NotAdded {
		id := failure.Transaction.ID
		delete(p.accept, id)
		if ErrorKind(failure.Type) != ErrPoolFull {
			delete(p.broadcast, id)
		}
		p.errorsMap[id] = append(p.errorsMap[id], ReportError{
			Type:    ErrorKind(failure.Type),
			Message: failure.Message,
		})
		p.invalid[id] = true
	}

	return nil
}

// emitStats logs batch-level counters; informational only, per §4.1
// step 6 and the teacher's onIdle-style periodic logging.
func (p *Processor) emitStats() {
	p.deps.log().WithFields(map[string]interface{}{
		"accept":    len(p.accept),
		"broadcast": len(p.broadcast),
		"excess":    len(p.excess),
		"invalid":   len(p.invalid),
	}).Info("validated batch")
}

// buildReport assembles the final Report from the current
// classification state, preserving the batch's input order.
func (p *Processor) buildReport() Report {
	report := Report{}

	for _, id := range p.order {
		switch {
		case p.invalid[id]:
			report.Invalid = append(report.Invalid, id)
			// A pool-full insertion failure leaves the id in broadcast
			// (see reconcilePoolInsertion): it is still gossiped.
			if errs := p.errorsMap[id]; len(errs) > 0 && errs[len(errs)-1].Type == ErrPoolFull {
				if _, ok := p.broadcast[id]; ok {
					report.Broadcast = append(report.Broadcast, id)
				}
			}
		case p.excess[id]:
			report.Excess = append(report.Excess, id)
		default:
			if _, ok := p.accept[id]; ok {
				report.Accept = append(report.Accept, id)
			}
			if _, ok := p.broadcast[id]; ok {
				report.Broadcast = append(report.Broadcast, id)
			}
		}
	}

	if len(p.errorsMap) > 0 {
		report.Errors = make(map[string][]ReportError, len(p.errorsMap))
		for _, id := range p.order {
			if errs, ok := p.errorsMap[id]; ok {
				report.Errors[id] = errs
			}
		}
	}

	return report
}
