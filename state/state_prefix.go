package state

import (
	"context"
)

// prefixStore prefixes everything going in and out of a store.
type prefixStore struct {
	store  Store
	prefix []byte
}

// applyPrefix applies the prefix to a key.
func (d *prefixStore) applyPrefix(key []byte) []byte {
	r := make([]byte, len(key)+len(d.prefix))
	copy(r, d.prefix)
	copy(r[len(d.prefix):], key)
	return r
}

// prefixEnd returns the first key after all keys carrying the prefix.
func (d *prefixStore) prefixEnd() []byte {
	end := make([]byte, len(d.prefix))
	copy(end, d.prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// Get retrieves a value from the store.
// Not found should return nil, nil
func (d *prefixStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	return d.store.Get(ctx, d.applyPrefix(key))
}

// Put sets a value in the store.
func (d *prefixStore) Put(ctx context.Context, key []byte, value []byte) error {
	return d.store.Put(ctx, d.applyPrefix(key), value)
}

// Delete removes a key from the store.
func (d *prefixStore) Delete(ctx context.Context, key []byte) error {
	return d.store.Delete(ctx, d.applyPrefix(key))
}

// RangeScan returns all pairs with start <= key < end, ordered by key.
// Keys are returned without the prefix.
func (d *prefixStore) RangeScan(ctx context.Context, start []byte, end []byte) ([]KV, error) {
	pstart := d.applyPrefix(start)
	pend := d.prefixEnd()
	if end != nil {
		pend = d.applyPrefix(end)
	}

	kvs, err := d.store.RangeScan(ctx, pstart, pend)
	if err != nil {
		return nil, err
	}

	for i := range kvs {
		kvs[i].Key = kvs[i].Key[len(d.prefix):]
	}
	return kvs, nil
}

// WithPrefix adds a prefix to a store.
// Note: calling WithPrefix repeatedly means that they will be applied in reverse order.
// Example:
//
//	st = state.WithPrefix(st, []byte("/prefix1"))
//	st = state.WithPrefix(st, []byte("/prefix2"))
//
// Key: /prefix1/prefix2/key
func WithPrefix(s Store, prefix []byte) Store {
	return &prefixStore{store: s, prefix: prefix}
}
