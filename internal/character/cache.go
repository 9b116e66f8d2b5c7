package character

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FitQuest_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

type cachedCharacterEntry struct {
	Version   string
	Character domain.Character
	CachedAt  time.Time
}

// characterCache is a read-through LRU for character lookups.
// Entries are stored and returned by value so callers can't mutate the cache.
type characterCache struct {
	lru *expirable.LRU[string, *cachedCharacterEntry]
}

func newCharacterCache(size int, ttl time.Duration) *characterCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &characterCache{
		lru: expirable.NewLRU[string, *cachedCharacterEntry](size, nil, ttl),
	}
}

// Get returns a copy of the cached character, dropping entries from an older schema
func (c *characterCache) Get(id string) (*domain.Character, bool) {
	entry, found := c.lru.Get(id)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(id)
		return nil, false
	}
	char := entry.Character
	return &char, true
}

// Set stores a copy of char
func (c *characterCache) Set(char *domain.Character) {
	c.lru.Add(char.ID, &cachedCharacterEntry{
		Version:   CacheSchemaVersion,
		Character: *char,
		CachedAt:  time.Now(),
	})
}

// Invalidate removes a character from the cache
func (c *characterCache) Invalidate(id string) {
	c.lru.Remove(id)
}

// Len reports the number of cached characters
func (c *characterCache) Len() int {
	return c.lru.Len()
}
