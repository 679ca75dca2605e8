package state

import (
	"context"
)

// KV is a single key/value pair returned by a range scan.
type KV struct {
	Key   []byte
	Value []byte
}

// Store is a key-value state space supplied by the host runtime.
type Store interface {
	// Get retrieves a value from the store.
	// Not found should return nil, nil
	Get(ctx context.Context, key []byte) ([]byte, error)
	// Put sets a value in the store.
	Put(ctx context.Context, key []byte, value []byte) error
	// Delete removes a key from the store.
	// Deleting an absent key is not an error.
	Delete(ctx context.Context, key []byte) error
	// RangeScan returns all pairs with start <= key < end, ordered by key.
	// A nil start scans from the beginning, a nil end scans to the end.
	RangeScan(ctx context.Context, start []byte, end []byte) ([]KV, error)
}
