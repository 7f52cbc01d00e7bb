package application

import (
	"context"
	"errors"
	"time"

	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/logging"
	"github.com/devbush/vidrange/internal/ports"
)

// ExtractOptions configures a playlist extraction
type ExtractOptions struct {
	NoCache bool
	OnStage func(domain.Stage) // optional, called as each stage starts
}

// ExtractResult describes a saved list file
type ExtractResult struct {
	Target    *domain.Target
	Playlist  *domain.Playlist
	ListName  string
	URLs      []string
	FromCache bool
}

// ExtractService turns a URL or username into a saved list file
type ExtractService struct {
	settings  *SettingsService
	extractor ports.PlaylistExtractor
	cache     ports.CacheStore
	lists     ports.ListStore
	cacheTTL  time.Duration
}

// NewExtractService creates a new extract service
func NewExtractService(
	settings *SettingsService,
	extractor ports.PlaylistExtractor,
	cache ports.CacheStore,
	lists ports.ListStore,
	cacheTTL time.Duration,
) *ExtractService {
	return &ExtractService{
		settings:  settings,
		extractor: extractor,
		cache:     cache,
		lists:     lists,
		cacheTTL:  cacheTTL,
	}
}

// Extract runs Classify, CheckConfig and Extract, then writes the list file
func (s *ExtractService) Extract(ctx context.Context, input string, opts ExtractOptions) (*ExtractResult, error) {
	// enter reports the current stage and advances past it
	current := domain.StageClassify
	enter := func() {
		if opts.OnStage != nil {
			opts.OnStage(current)
		}
		current = current.Next()
	}

	enter() // Classify
	target, err := domain.ResolveTarget(input)
	if err != nil {
		return nil, err
	}

	enter() // CheckConfig
	if err := s.settings.CheckEnabled(target.Platform); err != nil {
		return nil, err
	}

	enter() // Extract
	playlist, fromCache, err := s.playlist(ctx, target, opts.NoCache)
	if err != nil {
		return nil, err
	}

	urls := playlist.VideoURLs()
	if len(urls) == 0 {
		return nil, domain.ErrNoEntries
	}

	name := domain.ListFileName(playlist.Title)
	if err := s.lists.Write(name, urls); err != nil {
		return nil, err
	}
	logging.Info("saved list", "file", name, "count", len(urls), "cached", fromCache)

	return &ExtractResult{
		Target:    target,
		Playlist:  playlist,
		ListName:  name,
		URLs:      urls,
		FromCache: fromCache,
	}, nil
}

func (s *ExtractService) playlist(ctx context.Context, target *domain.Target, noCache bool) (*domain.Playlist, bool, error) {
	if !noCache && s.cache != nil {
		cached, err := s.cache.Get(ctx, target.URL)
		if err == nil && cached.Playlist != nil {
			logging.Debug("cache hit", "url", target.URL)
			return cached.Playlist, true, nil
		}
		if err != nil && !errors.Is(err, domain.ErrCacheMiss) && !errors.Is(err, domain.ErrCacheExpired) {
			logging.Warn("cache read failed", "url", target.URL, "err", err)
		}
	}

	playlist, err := s.extractor.ExtractPlaylist(ctx, target)
	if err != nil {
		return nil, false, err
	}

	// Cache result (failures are non-fatal)
	if s.cache != nil && len(playlist.Entries) > 0 {
		now := time.Now()
		_ = s.cache.Set(ctx, target.URL, &ports.CachedItem{
			Playlist:  playlist,
			CreatedAt: now,
			ExpiresAt: now.Add(s.cacheTTL),
		})
	}
	return playlist, false, nil
}
