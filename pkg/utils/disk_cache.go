// Package utils provides fetch and cache plumbing for the lake datasets.
package utils

import (
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// DatasetCache is a small badger-backed payload store keyed by dataset URL.
// Fetched GeoJSON and readings payloads land here so restarts do not re-hit
// the upstream API. A sync.Map front-cache absorbs repeated lookups within a
// session.
type DatasetCache struct {
	db    *badger.DB
	cache sync.Map
}

// OpenDatasetCache opens (or creates) the cache at path.
func OpenDatasetCache(path string) (*DatasetCache, error) {
	opts := badger.DefaultOptions(path)
	// Decrease logging verbosity
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &DatasetCache{db: db}, nil
}

func (c *DatasetCache) Close() error {
	return c.db.Close()
}

// Put stores a payload under key.
func (c *DatasetCache) Put(key string, payload []byte) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), payload)
	})
	if err == nil {
		c.cache.Store(key, payload)
	}
	return err
}

// Get returns the payload stored under key, or nil when the key is absent.
func (c *DatasetCache) Get(key string) ([]byte, error) {
	if v, ok := c.cache.Load(key); ok {
		return v.([]byte), nil
	}
	var val []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err == nil && val != nil {
		c.cache.Store(key, val)
	}
	return val, err
}

// Delete removes a payload, forcing the next CachedGet to refetch.
func (c *DatasetCache) Delete(key string) error {
	c.cache.Delete(key)
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}
