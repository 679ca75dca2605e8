// Package runtime is an in-process stand-in for the host ledger runtime:
// it executes contract invocations one at a time, commits their writes
// atomically and delivers their events only after commit.
package runtime

import (
	"context"
	"sync"

	"github.com/foliomarket/folio-go/contract"
	"github.com/foliomarket/folio-go/errdefs"
	"github.com/foliomarket/folio-go/event"
	"github.com/foliomarket/folio-go/logctx"
	"github.com/foliomarket/folio-go/state"
)

// Runtime hosts the contract table over a backing state store.
type Runtime struct {
	mtx   sync.Mutex
	base  state.Store
	table *contract.Table
	bus   *event.Bus
}

// NewRuntime builds a runtime over the given backing store.
func NewRuntime(base state.Store, table *contract.Table) *Runtime {
	return &Runtime{
		base:  base,
		table: table,
		bus:   event.NewBus(),
	}
}

// Bus returns the committed-event bus for subscribers.
func (r *Runtime) Bus() *event.Bus {
	return r.bus
}

// Submit executes one operation as an atomic invocation. On success all
// buffered writes commit and buffered events publish; on failure nothing
// persists.
func (r *Runtime) Submit(
	ctx context.Context,
	caller string,
	op string,
	args []string,
	transient map[string][]byte,
) ([]byte, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	inv := newInvocation(r.base, caller, transient)
	result, err := r.table.Invoke(ctx, inv, op, args)
	if err != nil {
		// An integrity mismatch delists the tampered document. That
		// compensating delete must survive the failed attempt, so its
		// buffered writes commit; every other failure discards everything.
		if errdefs.IsIntegrityMismatch(err) {
			if commitErr := inv.commit(ctx); commitErr != nil {
				return nil, commitErr
			}
		}
		logctx.GetLogEntry(ctx).
			WithField("operation", op).
			WithField("caller", caller).
			WithError(err).
			Warn("invocation aborted")
		return nil, err
	}

	if err := inv.commit(ctx); err != nil {
		return nil, err
	}
	for _, ev := range inv.events {
		r.bus.Publish(ev)
	}
	return result, nil
}

// Evaluate executes a read-only operation without committing anything.
// Mutating operations are rejected.
func (r *Runtime) Evaluate(
	ctx context.Context,
	caller string,
	op string,
	args []string,
) ([]byte, error) {
	opEntry, err := r.table.Lookup(op)
	if err != nil {
		return nil, err
	}
	if opEntry.Mutating {
		return nil, &errdefs.ValidationError{
			Field:  "operation",
			Reason: op + " mutates state and must be submitted",
		}
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	inv := newInvocation(r.base, caller, nil)
	result, err := r.table.Invoke(ctx, inv, op, args)
	if err != nil {
		return nil, err
	}
	if inv.dirty() {
		return nil, &errdefs.ValidationError{
			Field:  "operation",
			Reason: op + " wrote state during evaluation",
		}
	}
	return result, nil
}
