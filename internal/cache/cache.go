// Package cache provides a small expiring LRU used in front of the
// recommendation and trending endpoints. Entries fall out on TTL or
// capacity; both computations are safe to redo on a miss.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultSize = 512

type Cache[V any] struct {
	lru *expirable.LRU[string, V]
}

// New builds a cache holding up to defaultSize entries for at most ttl.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{lru: expirable.NewLRU[string, V](defaultSize, nil, ttl)}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

func (c *Cache[V]) Set(key string, value V) {
	c.lru.Add(key, value)
}

func (c *Cache[V]) Remove(key string) {
	c.lru.Remove(key)
}
