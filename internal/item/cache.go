package item

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheSchemaVersion is the current version of the cached definition shape.
// Increment when Definition changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

const (
	// DefaultCacheSize bounds the number of cached definitions across guilds.
	DefaultCacheSize = 512
	// DefaultCacheTTL bounds how stale a definition can get before a reload.
	DefaultCacheTTL = 5 * time.Minute
)

// cachedDefinition wraps a definition with version metadata for invalidation.
type cachedDefinition struct {
	Version    string
	Definition *Definition
	CachedAt   time.Time
}

// definitionCache provides an in-memory LRU cache for resolved definitions
// with time-based expiration and version-based invalidation.
type definitionCache struct {
	lru *expirable.LRU[string, *cachedDefinition]
}

func newDefinitionCache(size int, ttl time.Duration) *definitionCache {
	return &definitionCache{
		lru: expirable.NewLRU[string, *cachedDefinition](size, nil, ttl),
	}
}

// Get retrieves a definition from the cache.
// Returns (nil, false) if not cached, expired, or the version mismatches.
func (c *definitionCache) Get(guildID, nameKey string) (*Definition, bool) {
	key := guildID + ":" + nameKey
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}

	return entry.Definition, true
}

// Set stores a definition with the current schema version.
func (c *definitionCache) Set(guildID, nameKey string, def *Definition) {
	entry := &cachedDefinition{
		Version:    CacheSchemaVersion,
		Definition: def,
		CachedAt:   time.Now(),
	}
	c.lru.Add(guildID+":"+nameKey, entry)
}

// Invalidate removes one definition from the cache.
func (c *definitionCache) Invalidate(guildID, nameKey string) {
	c.lru.Remove(guildID + ":" + nameKey)
}

// Clear removes all entries from the cache.
func (c *definitionCache) Clear() {
	c.lru.Purge()
}
