package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/ports"
)

// FileCache keeps one directory per extracted source URL
type FileCache struct {
	fs      afero.Fs
	baseDir string
	ttl     time.Duration
}

func NewFileCache(baseDir string, ttl time.Duration) *FileCache {
	return NewFileCacheFs(afero.NewOsFs(), baseDir, ttl)
}

// NewFileCacheFs builds a cache on an arbitrary filesystem, mostly for tests
func NewFileCacheFs(fs afero.Fs, baseDir string, ttl time.Duration) *FileCache {
	return &FileCache{
		fs:      fs,
		baseDir: baseDir,
		ttl:     ttl,
	}
}

type metaFile struct {
	SourceURL string           `json:"source_url"`
	Playlist  *domain.Playlist `json:"playlist"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// Key maps a source URL to its directory name
func Key(sourceURL string) string {
	sum := sha1.Sum([]byte(sourceURL))
	return hex.EncodeToString(sum[:])[:16]
}

func (c *FileCache) GetCacheDir(sourceURL string) string {
	return filepath.Join(c.baseDir, Key(sourceURL))
}

func (c *FileCache) metaPath(dir string) string {
	return filepath.Join(dir, "meta.json")
}

func (c *FileCache) readMeta(dir string) (*metaFile, error) {
	data, err := afero.ReadFile(c.fs, c.metaPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}

	var meta metaFile
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (c *FileCache) Get(ctx context.Context, sourceURL string) (*ports.CachedItem, error) {
	meta, err := c.readMeta(c.GetCacheDir(sourceURL))
	if err != nil {
		return nil, err
	}

	if time.Now().After(meta.ExpiresAt) {
		return nil, domain.ErrCacheExpired
	}

	return &ports.CachedItem{
		Playlist:  meta.Playlist,
		CreatedAt: meta.CreatedAt,
		ExpiresAt: meta.ExpiresAt,
	}, nil
}

func (c *FileCache) Set(ctx context.Context, sourceURL string, item *ports.CachedItem) error {
	cacheDir := c.GetCacheDir(sourceURL)
	if err := c.fs.MkdirAll(cacheDir, 0755); err != nil {
		return err
	}

	meta := metaFile{
		SourceURL: sourceURL,
		Playlist:  item.Playlist,
		CreatedAt: item.CreatedAt,
		ExpiresAt: item.ExpiresAt,
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now()
	}
	if meta.ExpiresAt.IsZero() {
		meta.ExpiresAt = meta.CreatedAt.Add(c.ttl)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}

	return afero.WriteFile(c.fs, c.metaPath(cacheDir), data, 0644)
}

func (c *FileCache) Delete(ctx context.Context, sourceURL string) error {
	return c.fs.RemoveAll(c.GetCacheDir(sourceURL))
}

func (c *FileCache) CleanExpired(ctx context.Context) (int, error) {
	entries, err := afero.ReadDir(c.fs, c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	now := time.Now()
	cleaned := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(c.baseDir, entry.Name())
		meta, err := c.readMeta(dir)
		if errors.Is(err, domain.ErrCacheMiss) {
			continue
		}
		// unreadable entries are treated as expired
		if err == nil && !now.After(meta.ExpiresAt) {
			continue
		}
		if err := c.fs.RemoveAll(dir); err == nil {
			cleaned++
		}
	}

	return cleaned, nil
}

func (c *FileCache) Clear(ctx context.Context) error {
	entries, err := afero.ReadDir(c.fs, c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			_ = c.fs.RemoveAll(filepath.Join(c.baseDir, entry.Name()))
		}
	}

	return nil
}

// Entries reads the metadata of every cache directory. Directories without
// readable metadata are skipped; CleanExpired removes them.
func (c *FileCache) Entries(ctx context.Context) ([]ports.CacheEntry, error) {
	dirs, err := afero.ReadDir(c.fs, c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []ports.CacheEntry
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}

		dir := filepath.Join(c.baseDir, d.Name())
		meta, err := c.readMeta(dir)
		if err != nil || meta.Playlist == nil {
			continue
		}

		entries = append(entries, ports.CacheEntry{
			SourceURL: meta.SourceURL,
			Title:     meta.Playlist.Title,
			Platform:  meta.Playlist.Platform,
			Videos:    len(meta.Playlist.Entries),
			Size:      c.dirSize(dir),
			CreatedAt: meta.CreatedAt,
			ExpiresAt: meta.ExpiresAt,
		})
	}

	return entries, nil
}

func (c *FileCache) dirSize(dir string) int64 {
	var size int64
	_ = afero.Walk(c.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size
}

var _ ports.CacheStore = (*FileCache)(nil)
