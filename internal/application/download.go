package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/logging"
	"github.com/devbush/vidrange/internal/ports"
)

// DownloadConfig holds the yt-dlp settings shared by every item of a batch
type DownloadConfig struct {
	Root        string // parent of per-list output directories
	Format      string
	TitleLength int
}

// BatchObserver receives progress of a batch download. Methods are called
// from the goroutine running the batch.
type BatchObserver interface {
	ItemStarted(index, total int, url string)
	ItemProgress(index int, downloaded, total int64)
	ItemFinished(result domain.ItemResult)
}

// DownloadService downloads a selection one URL at a time
type DownloadService struct {
	downloader ports.VideoDownloader
	fs         afero.Fs
	cfg        DownloadConfig
}

// NewDownloadService creates a new download service
func NewDownloadService(downloader ports.VideoDownloader, fs afero.Fs, cfg DownloadConfig) *DownloadService {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &DownloadService{downloader: downloader, fs: fs, cfg: cfg}
}

// OutputDir returns <root>/<list-stem>_videos
func (s *DownloadService) OutputDir(list *domain.ListFile) string {
	return filepath.Join(s.cfg.Root, list.Stem()+"_videos")
}

// OutputTemplate returns the yt-dlp output template for a directory
func (s *DownloadService) OutputTemplate(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("%%(title).%ds.%%(ext)s", s.cfg.TitleLength))
}

// Run downloads every URL of the selection in order. Item failures are
// recorded in the summary; only setup errors and cancellation are returned.
func (s *DownloadService) Run(ctx context.Context, sel *Selection, obs BatchObserver) (*domain.BatchSummary, error) {
	dir := s.OutputDir(sel.List)
	summary := &domain.BatchSummary{
		ListName:  sel.List.Name,
		Range:     sel.Range,
		OutputDir: dir,
	}

	if !s.downloader.IsAvailable() {
		return summary, domain.ErrYtDlpNotFound
	}
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}

	opts := ports.DownloadOptions{
		Format:         s.cfg.Format,
		OutputTemplate: s.OutputTemplate(dir),
	}

	total := len(sel.URLs)
	for i, url := range sel.URLs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		index := i + 1
		if obs != nil {
			obs.ItemStarted(index, total, url)
		}

		var progress ports.ProgressFunc
		if obs != nil {
			progress = func(downloaded, size int64) {
				obs.ItemProgress(index, downloaded, size)
			}
		}

		start := time.Now()
		err := s.downloader.DownloadVideo(ctx, url, opts, progress)
		if err != nil && ctx.Err() != nil {
			return summary, ctx.Err()
		}

		result := domain.ItemResult{
			Index:    index,
			URL:      url,
			Success:  err == nil,
			Duration: time.Since(start),
		}
		if err != nil {
			result.Error = err.Error()
			result.ExitCode = 1
			var toolErr *domain.ToolError
			if errors.As(err, &toolErr) {
				result.ExitCode = toolErr.ExitCode
			}
			logging.Warn("download failed", "index", index, "url", url, "exit", result.ExitCode)
		}

		summary.Results = append(summary.Results, result)
		if obs != nil {
			obs.ItemFinished(result)
		}
	}

	logging.Info("batch finished", "list", sel.List.Name, "ok", summary.Succeeded(), "total", summary.Total())
	return summary, nil
}
