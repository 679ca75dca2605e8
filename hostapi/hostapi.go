// Package hostapi declares the surface the host ledger runtime supplies to
// one contract invocation.
//
// The host owns durability and atomic commit: every write issued through an
// Invocation either commits as a unit with all the others or is discarded,
// and emitted events are only observable after commit.
package hostapi

import (
	"github.com/foliomarket/folio-go/state"
)

// Invocation is the per-call capability set handed to an operation handler.
type Invocation interface {
	// Public returns the shared public state space.
	Public() state.Store
	// Private returns the named access-restricted partition.
	Private(partition string) state.Store
	// Caller returns the invoking party identifier.
	Caller() string
	// Transient returns caller-supplied input that is not persisted to the
	// public transaction log.
	Transient() map[string][]byte
	// EmitEvent attaches a notification to the invocation. The host delivers
	// it only if the invocation commits.
	EmitEvent(name string, payload []byte)
}
