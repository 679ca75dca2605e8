package state

import (
	"bytes"
	"context"
	"sort"
	"sync"
)

// inMemStore is an in-memory store.
type inMemStore struct {
	mtx sync.RWMutex
	m   map[string][]byte
}

// NewInmemStore returns an in-memory store.
func NewInmemStore() Store {
	return &inMemStore{m: make(map[string][]byte)}
}

// Get retrieves a value from the store.
// Not found should return nil, nil
func (m *inMemStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	val, ok := m.m[string(key)]
	if !ok {
		return nil, nil
	}

	r := make([]byte, len(val))
	copy(r, val)
	return r, nil
}

// Put sets a value in the store.
func (m *inMemStore) Put(ctx context.Context, key []byte, value []byte) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.m[string(key)] = v
	return nil
}

// Delete removes a key from the store.
func (m *inMemStore) Delete(ctx context.Context, key []byte) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	delete(m.m, string(key))
	return nil
}

// RangeScan returns all pairs with start <= key < end, ordered by key.
func (m *inMemStore) RangeScan(ctx context.Context, start []byte, end []byte) ([]KV, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	var kvs []KV
	for k, v := range m.m {
		kb := []byte(k)
		if start != nil && bytes.Compare(kb, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(kb, end) >= 0 {
			continue
		}

		vc := make([]byte, len(v))
		copy(vc, v)
		kvs = append(kvs, KV{Key: kb, Value: vc})
	}

	sort.Slice(kvs, func(i, j int) bool {
		return bytes.Compare(kvs[i].Key, kvs[j].Key) < 0
	})
	return kvs, nil
}
