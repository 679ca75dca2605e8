// Package event carries committed ledger notifications to asynchronous
// observers.
package event

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Event is a committed state-transition notification.
type Event struct {
	// ID uniquely identifies the delivery.
	ID string
	// Name is the event name, e.g. DocumentAdded.
	Name string
	// Payload is the serialized record the event describes.
	Payload []byte
}

// New builds an event with a fresh delivery ID.
func New(name string, payload []byte) Event {
	return Event{
		ID:      uuid.NewString(),
		Name:    name,
		Payload: payload,
	}
}

// subBufferSize is the per-subscriber delivery buffer.
const subBufferSize = 16

// Bus is a best-effort fan-out of events to subscribers.
//
// Delivery never blocks a publisher: a subscriber that falls behind its
// buffer misses events. This matches the host contract where events are a
// notification, not part of transaction correctness.
type Bus struct {
	mtx  sync.Mutex
	subs map[chan Event]struct{}
}

// NewBus builds a new event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a subscriber. The channel closes when ctx is done.
func (b *Bus) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, subBufferSize)

	b.mtx.Lock()
	b.subs[ch] = struct{}{}
	b.mtx.Unlock()

	go func() {
		<-ctx.Done()
		b.mtx.Lock()
		delete(b.subs, ch)
		b.mtx.Unlock()
		close(ch)
	}()

	return ch
}

// Publish fans the event out to all current subscribers.
func (b *Bus) Publish(ev Event) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
