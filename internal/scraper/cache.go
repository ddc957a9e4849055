package scraper

import (
	"sync"
	"time"
)

type cacheEntry struct {
	text      string
	expiresAt time.Time
}

// textCache memoizes fetched body text per URL for the lifetime of a run.
// Entries expire lazily on read; there is no background sweep because the
// process is a short-lived batch.
type textCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]cacheEntry
}

func newTextCache(ttl time.Duration) *textCache {
	return &textCache{
		ttl:   ttl,
		items: make(map[string]cacheEntry),
	}
}

func (c *textCache) get(key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.text, true
}

func (c *textCache) set(key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{text: text, expiresAt: time.Now().Add(c.ttl)}
}
