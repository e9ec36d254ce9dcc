package badger

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheLimit = 100

type retrieveFunc[K comparable, V any] func(key K) func(*badger.Txn) (V, error)

// cache is a read-through LRU in front of a badger retrieval. Writers must call
// Insert or Remove after their transaction commits. Values go through clone on the
// way in and out, so callers never share memory with a cached entry.
type cache[K comparable, V any] struct {
	retrieve retrieveFunc[K, V]
	clone    func(V) V
	cache    *lru.Cache[K, V]
}

func newCache[K comparable, V any](limit int, retrieve retrieveFunc[K, V], clone func(V) V) *cache[K, V] {
	c, err := lru.New[K, V](limit)
	if err != nil {
		// only fails for a non-positive size
		panic(fmt.Sprintf("invalid cache limit %d: %v", limit, err))
	}
	return &cache[K, V]{
		retrieve: retrieve,
		clone:    clone,
		cache:    c,
	}
}

// Get returns the cached value for key or reads it through tx.
func (c *cache[K, V]) Get(key K) func(*badger.Txn) (V, error) {
	return func(tx *badger.Txn) (V, error) {
		val, ok := c.cache.Get(key)
		if ok {
			return c.clone(val), nil
		}
		val, err := c.retrieve(key)(tx)
		if err != nil {
			var null V
			return null, err
		}
		c.cache.Add(key, c.clone(val))
		return val, nil
	}
}

func (c *cache[K, V]) Insert(key K, val V) {
	c.cache.Add(key, c.clone(val))
}

func (c *cache[K, V]) Remove(key K) {
	c.cache.Remove(key)
}

func (c *cache[K, V]) IsCached(key K) bool {
	return c.cache.Contains(key)
}
