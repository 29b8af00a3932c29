// Package cache holds rendered pages in a bounded LRU with per-item TTL.
package cache

import (
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// IndexKey prefixes every cached index page.
const IndexKey = "index_page"

// item wraps cached data with its expiry.
type item struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	lruCache *lru.Cache[string, item]
	now      func() time.Time
}

// New creates a cache holding at most size entries.
func New(size int) (*Cache, error) {
	l, err := lru.New[string, item](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &Cache{lruCache: l, now: time.Now}, nil
}

// Set stores data for ttl.
func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, item{
		Data:      data,
		ExpiresAt: c.now().Add(ttl),
	})
}

// Get returns nil when key is missing or expired.
func (c *Cache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	if c.now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}

	return val.Data
}

func (c *Cache) Delete(key string) {
	c.lruCache.Remove(key)
}

// DeletePrefix drops every key starting with prefix.
func (c *Cache) DeletePrefix(prefix string) {
	for _, k := range c.lruCache.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.lruCache.Remove(k)
		}
	}
}

// InvalidateIndex drops every cached index page. Call it after any post mutation.
func (c *Cache) InvalidateIndex() {
	c.DeletePrefix(IndexKey)
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.lruCache.Purge()
}

func (c *Cache) Len() int {
	return c.lruCache.Len()
}
