package application

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/ports"
)

// CacheReport summarizes the cached extractions, newest first
type CacheReport struct {
	Playlists []ports.CacheEntry
	Videos    int
	Expired   int
	TotalSize int64
}

// CacheService inspects and prunes the extraction cache
type CacheService struct {
	cache ports.CacheStore
	now   func() time.Time
}

// NewCacheService creates a new cache service
func NewCacheService(cache ports.CacheStore) *CacheService {
	return &CacheService{cache: cache, now: time.Now}
}

// Report lists every cached playlist with totals
func (s *CacheService) Report(ctx context.Context) (*CacheReport, error) {
	entries, err := s.cache.Entries(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	report := &CacheReport{Playlists: entries}
	now := s.now()
	for _, e := range entries {
		report.Videos += e.Videos
		report.TotalSize += e.Size
		if e.Expired(now) {
			report.Expired++
		}
	}
	return report, nil
}

// CleanExpired removes expired cache entries
func (s *CacheService) CleanExpired(ctx context.Context) (int, error) {
	return s.cache.CleanExpired(ctx)
}

// Clear removes all cache entries
func (s *CacheService) Clear(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// Forget resolves input the way an extraction would and drops its cached
// playlist. It returns domain.ErrCacheMiss when nothing was cached.
func (s *CacheService) Forget(ctx context.Context, input string) (*domain.Target, error) {
	target, err := domain.ResolveTarget(input)
	if err != nil {
		return nil, err
	}

	if _, err := s.cache.Get(ctx, target.URL); errors.Is(err, domain.ErrCacheMiss) {
		return target, err
	}
	return target, s.cache.Delete(ctx, target.URL)
}
