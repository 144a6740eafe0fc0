// Package cache provides a small expiring cache used to avoid re-fetching
// detail pages inside one TTL window.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// TTL is an expiring LRU keyed cache.
type TTL[K comparable, V any] struct {
	lru *expirable.LRU[K, V]
}

// NewTTL builds a cache holding at most size entries, each living for ttl.
func NewTTL[K comparable, V any](size int, ttl time.Duration) *TTL[K, V] {
	if size <= 0 {
		size = 128
	}
	return &TTL[K, V]{lru: expirable.NewLRU[K, V](size, nil, ttl)}
}

// Get returns the cached value for key, if present and unexpired.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

// Add stores value under key.
func (c *TTL[K, V]) Add(key K, value V) {
	c.lru.Add(key, value)
}

// Len returns the number of live entries.
func (c *TTL[K, V]) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *TTL[K, V]) Purge() {
	c.lru.Purge()
}
