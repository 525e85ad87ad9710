package menu

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/grubworks/grubbot/internal/domain"
)

// CacheSchemaVersion is the current version of the cached menu structure.
// Increment when the cached data shape changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

// cachedMenuEntry wraps a place's items with version metadata for cache
// invalidation.
type cachedMenuEntry struct {
	Version  string            `json:"version"`
	Items    []domain.MenuItem `json:"items"`
	CachedAt time.Time         `json:"cached_at"`
}

// menuCache provides an in-memory LRU cache for menu lookups with time-based
// expiration. Menus change rarely, so a short TTL keeps admin edits visible
// without hitting the database on every mention.
type menuCache struct {
	lru *expirable.LRU[string, *cachedMenuEntry]
}

func newMenuCache(size int, ttl time.Duration) *menuCache {
	return &menuCache{
		lru: expirable.NewLRU[string, *cachedMenuEntry](size, nil, ttl),
	}
}

// Get retrieves a place's items from the cache.
// Returns (items, true) if found and the schema version matches.
func (c *menuCache) Get(placeID int) ([]domain.MenuItem, bool) {
	key := strconv.Itoa(placeID)
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}

	return entry.Items, true
}

// Set stores a place's items in the cache with the current schema version.
func (c *menuCache) Set(placeID int, items []domain.MenuItem) {
	c.lru.Add(strconv.Itoa(placeID), &cachedMenuEntry{
		Version:  CacheSchemaVersion,
		Items:    items,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a place's items from the cache after a menu edit.
func (c *menuCache) Invalidate(placeID int) {
	c.lru.Remove(strconv.Itoa(placeID))
}

// Clear removes all entries from the cache.
func (c *menuCache) Clear() {
	c.lru.Purge()
}
