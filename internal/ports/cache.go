package ports

import (
	"context"
	"time"

	"github.com/devbush/vidrange/internal/domain"
)

// CachedItem represents a cached playlist extraction.
type CachedItem struct {
	Playlist  *domain.Playlist
	CreatedAt time.Time // when this item was cached
	ExpiresAt time.Time // when this item should be considered stale
}

// CacheEntry describes one cached extraction without its playlist entries.
type CacheEntry struct {
	SourceURL string
	Title     string
	Platform  domain.Platform
	Videos    int
	Size      int64 // bytes on disk
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the entry is stale at now.
func (e CacheEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// CacheStore handles persistent caching of extracted playlists.
type CacheStore interface {
	// Get retrieves a cached item by source URL, returning domain.ErrCacheMiss if not found.
	Get(ctx context.Context, sourceURL string) (*CachedItem, error)

	// Set stores an item in the cache.
	Set(ctx context.Context, sourceURL string, item *CachedItem) error

	// Delete removes a specific item from the cache.
	Delete(ctx context.Context, sourceURL string) error

	// CleanExpired removes all expired items and returns the count removed.
	CleanExpired(ctx context.Context) (int, error)

	// Clear removes all cached items.
	Clear(ctx context.Context) error

	// Entries lists every readable cached extraction, expired ones included.
	Entries(ctx context.Context) ([]CacheEntry, error)
}
