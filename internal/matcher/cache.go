package matcher

import (
	"sync"
	"time"
)

// cacheKey is the composite cache identity. A struct key keeps distinct
// (name, id) pairs distinct regardless of what characters they contain.
type cacheKey struct {
	name string
	id   string
}

// scoreCache memoizes ensemble scores keyed by (query name, candidate id).
// Entries expire lazily on read; there is no background sweeper. When the map
// grows past maxEntries, expired entries are purged on the next write.
type scoreCache struct {
	mu         sync.RWMutex
	entries    map[cacheKey]cacheEntry
	ttl        time.Duration
	maxEntries int
}

type cacheEntry struct {
	score float64
	at    time.Time
}

func newScoreCache(ttl time.Duration, maxEntries int) *scoreCache {
	return &scoreCache{
		entries:    make(map[cacheKey]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

func (c *scoreCache) get(key cacheKey) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || time.Since(e.at) > c.ttl {
		return 0, false
	}
	return e.score, true
}

func (c *scoreCache) put(key cacheKey, score float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.maxEntries {
		now := time.Now()
		for k, e := range c.entries {
			if now.Sub(e.at) > c.ttl {
				delete(c.entries, k)
			}
		}
	}
	c.entries[key] = cacheEntry{score: score, at: time.Now()}
}

func (c *scoreCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// backdate shifts an entry's timestamp, letting tests force expiry.
func (c *scoreCache) backdate(key cacheKey, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.at = e.at.Add(-d)
		c.entries[key] = e
	}
}
