package registry

import (
	"sync"
	"time"

	"github.com/taipm/siumai"
)

// ClientCache is the LRU+TTL cache of already-built siumai.Client
// values that ProviderRegistryHandle consults before calling a
// ProviderFactory.
type ClientCache struct {
	mu      sync.RWMutex
	entries map[string]*clientEntry
	maxSize int
	ttl     time.Duration
	stats   CacheStats
}

type clientEntry struct {
	client     siumai.Client
	createdAt  time.Time
	accessedAt time.Time
}

// CacheStats reports cache observability counters (hit rate, eviction
// count).
type CacheStats struct {
	Hits      int64
	Misses    int64
	Size      int
	Evictions int64
}

// NewClientCache builds a cache allowing at most maxSize live clients,
// each valid for ttl since construction. maxSize<=0 defaults to 100;
// ttl<=0 means clients never expire by age (only by LRU eviction).
func NewClientCache(maxSize int, ttl time.Duration) *ClientCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &ClientCache{entries: map[string]*clientEntry{}, maxSize: maxSize, ttl: ttl}
}

// Get returns the cached client for key if present and not expired.
func (c *ClientCache) Get(key string) (siumai.Client, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	if c.ttl > 0 && time.Since(entry.createdAt) > c.ttl {
		delete(c.entries, key)
		c.stats.Misses++
		return nil, false
	}
	entry.accessedAt = time.Now()
	c.stats.Hits++
	return entry.client, true
}

// Put stores client under key, evicting the least-recently-used entry
// first if the cache is already at capacity.
func (c *ClientCache) Put(key string, client siumai.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictLRU()
	}
	now := time.Now()
	c.entries[key] = &clientEntry{client: client, createdAt: now, accessedAt: now}
}

func (c *ClientCache) evictLRU() {
	var oldestKey string
	var oldestTime time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.accessedAt.Before(oldestTime) {
			oldestKey, oldestTime = key, entry.accessedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
		c.stats.Evictions++
	}
}

// Stats returns a snapshot of cache counters.
func (c *ClientCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Size = len(c.entries)
	return s
}

// Clear removes every cached client.
func (c *ClientCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]*clientEntry{}
}
