package runtime

import (
	"context"

	"github.com/foliomarket/folio-go/event"
	"github.com/foliomarket/folio-go/state"
)

// State key namespaces inside the backing store.
var (
	publicPrefix  = []byte("/public/")
	privatePrefix = []byte("/private/")
)

func partitionPrefix(partition string) []byte {
	p := make([]byte, 0, len(privatePrefix)+len(partition)+1)
	p = append(p, privatePrefix...)
	p = append(p, partition...)
	return append(p, '/')
}

// invocation is one atomic attempt against the ledger. All writes buffer in
// overlays and all events buffer in memory until commit.
type invocation struct {
	base      state.Store
	caller    string
	transient map[string][]byte

	public   *overlayStore
	privates map[string]*overlayStore
	events   []event.Event
}

func newInvocation(base state.Store, caller string, transient map[string][]byte) *invocation {
	if transient == nil {
		transient = make(map[string][]byte)
	}
	return &invocation{
		base:      base,
		caller:    caller,
		transient: transient,
		public:    newOverlay(state.WithPrefix(base, publicPrefix)),
		privates:  make(map[string]*overlayStore),
	}
}

// Public returns the shared public state space.
func (i *invocation) Public() state.Store {
	return i.public
}

// Private returns the named access-restricted partition.
func (i *invocation) Private(partition string) state.Store {
	ov, ok := i.privates[partition]
	if !ok {
		ov = newOverlay(state.WithPrefix(i.base, partitionPrefix(partition)))
		i.privates[partition] = ov
	}
	return ov
}

// Caller returns the invoking party identifier.
func (i *invocation) Caller() string {
	return i.caller
}

// Transient returns the caller-supplied transient input.
func (i *invocation) Transient() map[string][]byte {
	return i.transient
}

// EmitEvent buffers a notification for delivery after commit.
func (i *invocation) EmitEvent(name string, payload []byte) {
	i.events = append(i.events, event.New(name, payload))
}

// dirty reports whether the invocation buffered any writes.
func (i *invocation) dirty() bool {
	if i.public.dirty() {
		return true
	}
	for _, ov := range i.privates {
		if ov.dirty() {
			return true
		}
	}
	return false
}

// commit flushes all buffered writes to the backing store.
func (i *invocation) commit(ctx context.Context) error {
	if err := i.public.apply(ctx); err != nil {
		return err
	}
	for _, ov := range i.privates {
		if err := ov.apply(ctx); err != nil {
			return err
		}
	}
	return nil
}
