// Package cache contains in-memory caches
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of entries kept by default in a LRU
const DefaultSize = 256

// LRU represents a LRU cache
type LRU[K comparable, V any] struct {
	cache *lru.Cache[K, V]
}

// NewLRU creates a new LRU Cache.
// DefaultSize is used if maxEntries isn't a positive number
func NewLRU[K comparable, V any](maxEntries int) (*LRU[K, V], error) {
	if maxEntries <= 0 {
		maxEntries = DefaultSize
	}
	c, err := lru.New[K, V](maxEntries)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{
		cache: c,
	}, nil
}

// Get looks up a key's value from the cache.
// This method can be called concurrently
func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	return c.cache.Get(key)
}

// Add adds a value to the cache.
// This method can be called concurrently
func (c *LRU[K, V]) Add(key K, value V) {
	c.cache.Add(key, value)
}

// Clear purges all stored items from the cache.
func (c *LRU[K, V]) Clear() {
	c.cache.Purge()
}

// Len returns the number of items in the cache.
func (c *LRU[K, V]) Len() int {
	return c.cache.Len()
}
