package user

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cached user shape.
// Increment when domain.User changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

const (
	defaultCacheSize = 1024
	defaultCacheTTL  = 10 * time.Minute
)

// cachedUserEntry wraps a user with version metadata for cache invalidation.
type cachedUserEntry struct {
	Version  string
	User     *domain.User
	CachedAt time.Time
}

// userCache provides an in-memory LRU cache for Discord ID lookups with
// time-based expiration and version-based invalidation.
type userCache struct {
	lru *expirable.LRU[string, *cachedUserEntry]
}

func newUserCache(size int, ttl time.Duration) *userCache {
	return &userCache{
		lru: expirable.NewLRU[string, *cachedUserEntry](size, nil, ttl),
	}
}

// Get retrieves a user from the cache.
// Returns (nil, false) if not cached, expired, or the version mismatches.
func (c *userCache) Get(discordID string) (*domain.User, bool) {
	entry, found := c.lru.Get(discordID)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(discordID)
		return nil, false
	}

	return entry.User, true
}

// Set stores a user with the current schema version.
func (c *userCache) Set(discordID string, user *domain.User) {
	c.lru.Add(discordID, &cachedUserEntry{
		Version:  CacheSchemaVersion,
		User:     user,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a user from the cache.
func (c *userCache) Invalidate(discordID string) {
	c.lru.Remove(discordID)
}
