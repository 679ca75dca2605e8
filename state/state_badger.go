package state

import (
	"bytes"
	"context"

	"github.com/dgraph-io/badger"
)

// badgerStore implements Store with badger.
type badgerStore struct {
	db *badger.DB
}

// NewBadgerStore builds a new badger-backed store.
func NewBadgerStore(db *badger.DB) Store {
	return &badgerStore{db: db}
}

// Get retrieves a value from the store.
// Not found should return nil, nil
func (d *badgerStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	var val []byte
	getErr := d.db.View(func(txn *badger.Txn) error {
		item, rerr := txn.Get(key)
		if rerr != nil {
			if rerr == badger.ErrKeyNotFound {
				return nil
			}
			return rerr
		}

		v, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		val = v
		return nil
	})
	if getErr != nil {
		return nil, getErr
	}

	return val, nil
}

// Put sets a value in the store.
func (d *badgerStore) Put(ctx context.Context, key []byte, value []byte) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Delete removes a key from the store.
func (d *badgerStore) Delete(ctx context.Context, key []byte) error {
	return d.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

// RangeScan returns all pairs with start <= key < end, ordered by key.
func (d *badgerStore) RangeScan(ctx context.Context, start []byte, end []byte) ([]KV, error) {
	var kvs []KV
	scanErr := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(start); it.Valid(); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			if end != nil && bytes.Compare(key, end) >= 0 {
				break
			}

			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			kvs = append(kvs, KV{Key: key, Value: val})
		}
		return nil
	})
	if scanErr != nil {
		return nil, scanErr
	}

	return kvs, nil
}
