package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/ports"
)

// Mock implementations for testing
type mockCache struct {
	items   map[string]*ports.CachedItem
	entries []ports.CacheEntry
	err     error
}

func newMockCache() *mockCache {
	return &mockCache{items: make(map[string]*ports.CachedItem)}
}

func (m *mockCache) Get(ctx context.Context, sourceURL string) (*ports.CachedItem, error) {
	if item, ok := m.items[sourceURL]; ok {
		return item, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, sourceURL string, item *ports.CachedItem) error {
	m.items[sourceURL] = item
	return nil
}

func (m *mockCache) Delete(ctx context.Context, sourceURL string) error {
	delete(m.items, sourceURL)
	return nil
}

func (m *mockCache) CleanExpired(ctx context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	cleaned := 0
	for url, item := range m.items {
		if time.Now().After(item.ExpiresAt) {
			delete(m.items, url)
			cleaned++
		}
	}
	return cleaned, nil
}

func (m *mockCache) Clear(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.items = make(map[string]*ports.CachedItem)
	return nil
}

func (m *mockCache) Entries(ctx context.Context) ([]ports.CacheEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]ports.CacheEntry(nil), m.entries...), nil
}

type mockSettingsStore struct {
	settings *domain.Settings
	saves    int
}

func (m *mockSettingsStore) Load() (domain.Settings, error) {
	if m.settings == nil {
		return domain.Settings{}, domain.ErrSettingsMissing
	}
	return *m.settings, nil
}

func (m *mockSettingsStore) Save(s domain.Settings) error {
	m.settings = &s
	m.saves++
	return nil
}

func (m *mockSettingsStore) Path() string { return "/home/u/.vidrange/settings.conf" }

func storeWith(platforms ...domain.Platform) *mockSettingsStore {
	s := domain.NewSettings(platforms...)
	return &mockSettingsStore{settings: &s}
}

type mockExtractor struct {
	playlist *domain.Playlist
	err      error
	calls    int
	lastURL  string
}

func (m *mockExtractor) ExtractPlaylist(ctx context.Context, target *domain.Target) (*domain.Playlist, error) {
	m.calls++
	m.lastURL = target.URL
	if m.err != nil {
		return nil, m.err
	}
	p := *m.playlist
	p.SourceURL = target.URL
	p.Platform = target.Platform
	return &p, nil
}

type mockListStore struct {
	files map[string][]string
}

func newMockListStore() *mockListStore {
	return &mockListStore{files: make(map[string][]string)}
}

func (m *mockListStore) List() ([]ports.ListInfo, error) {
	if len(m.files) == 0 {
		return nil, domain.ErrNoListFiles
	}
	var infos []ports.ListInfo
	for name, lines := range m.files {
		infos = append(infos, ports.ListInfo{Name: name, Lines: len(lines)})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func (m *mockListStore) ModTime(name string) (time.Time, error) {
	if _, ok := m.files[name]; !ok {
		return time.Time{}, domain.ErrInvalidListFile
	}
	return time.Time{}, nil
}

func (m *mockListStore) Read(name string) (*domain.ListFile, error) {
	lines, ok := m.files[name]
	if !ok {
		return nil, domain.ErrInvalidListFile
	}
	return &domain.ListFile{Name: name, Lines: lines}, nil
}

func (m *mockListStore) Write(name string, urls []string) error {
	m.files[name] = append([]string(nil), urls...)
	return nil
}

func (m *mockListStore) Dir() string { return "/lists" }

type mockDownloader struct {
	available bool
	failURLs  map[string]error
	onRun     func(url string)

	mu   sync.Mutex
	urls []string
	opts []ports.DownloadOptions
}

func (m *mockDownloader) DownloadVideo(ctx context.Context, url string, opts ports.DownloadOptions, progress ports.ProgressFunc) error {
	m.mu.Lock()
	m.urls = append(m.urls, url)
	m.opts = append(m.opts, opts)
	m.mu.Unlock()

	if m.onRun != nil {
		m.onRun(url)
	}
	if progress != nil {
		progress(50, 100)
		progress(100, 100)
	}
	if err, ok := m.failURLs[url]; ok {
		return err
	}
	return nil
}

func (m *mockDownloader) IsAvailable() bool     { return m.available }
func (m *mockDownloader) GetBinaryPath() string { return "/usr/bin/yt-dlp" }
func (m *mockDownloader) Install(ctx context.Context, progress ports.ProgressFunc) error {
	return nil
}
func (m *mockDownloader) Update(ctx context.Context) error { return nil }

type recordingObserver struct {
	started  []int
	progress int
	results  []domain.ItemResult
}

func (r *recordingObserver) ItemStarted(index, total int, url string) {
	r.started = append(r.started, index)
}

func (r *recordingObserver) ItemProgress(index int, downloaded, total int64) {
	r.progress++
}

func (r *recordingObserver) ItemFinished(result domain.ItemResult) {
	r.results = append(r.results, result)
}
