package runtime

import (
	"bytes"
	"context"
	"sort"

	"github.com/foliomarket/folio-go/state"
)

// overlayStore buffers writes over a base store until apply is called.
// Reads observe the buffered writes; the base store is untouched until then.
type overlayStore struct {
	base state.Store
	puts map[string][]byte
	dels map[string]struct{}
}

func newOverlay(base state.Store) *overlayStore {
	return &overlayStore{
		base: base,
		puts: make(map[string][]byte),
		dels: make(map[string]struct{}),
	}
}

// Get retrieves a value from the store.
// Not found should return nil, nil
func (o *overlayStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	k := string(key)
	if _, ok := o.dels[k]; ok {
		return nil, nil
	}
	if val, ok := o.puts[k]; ok {
		r := make([]byte, len(val))
		copy(r, val)
		return r, nil
	}
	return o.base.Get(ctx, key)
}

// Put sets a value in the store.
func (o *overlayStore) Put(ctx context.Context, key []byte, value []byte) error {
	k := string(key)
	v := make([]byte, len(value))
	copy(v, value)
	o.puts[k] = v
	delete(o.dels, k)
	return nil
}

// Delete removes a key from the store.
func (o *overlayStore) Delete(ctx context.Context, key []byte) error {
	k := string(key)
	delete(o.puts, k)
	o.dels[k] = struct{}{}
	return nil
}

// RangeScan returns all pairs with start <= key < end, ordered by key,
// merging buffered writes over the base store.
func (o *overlayStore) RangeScan(ctx context.Context, start []byte, end []byte) ([]state.KV, error) {
	kvs, err := o.base.RangeScan(ctx, start, end)
	if err != nil {
		return nil, err
	}

	merged := make(map[string][]byte, len(kvs))
	for _, kv := range kvs {
		merged[string(kv.Key)] = kv.Value
	}
	for k := range o.dels {
		delete(merged, k)
	}
	for k, v := range o.puts {
		kb := []byte(k)
		if start != nil && bytes.Compare(kb, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(kb, end) >= 0 {
			continue
		}
		merged[k] = v
	}

	out := make([]state.KV, 0, len(merged))
	for k, v := range merged {
		out = append(out, state.KV{Key: []byte(k), Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Key, out[j].Key) < 0
	})
	return out, nil
}

// dirty reports whether the overlay holds any buffered writes.
func (o *overlayStore) dirty() bool {
	return len(o.puts) != 0 || len(o.dels) != 0
}

// apply flushes the buffered writes to the base store.
func (o *overlayStore) apply(ctx context.Context) error {
	for k, v := range o.puts {
		if err := o.base.Put(ctx, []byte(k), v); err != nil {
			return err
		}
	}
	for k := range o.dels {
		if err := o.base.Delete(ctx, []byte(k)); err != nil {
			return err
		}
	}
	return nil
}
