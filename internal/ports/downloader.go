package ports

import (
	"context"
)

// DownloadOptions controls format selection and output naming for one video
type DownloadOptions struct {
	Format         string // yt-dlp format preference
	OutputTemplate string // yt-dlp output template, including the directory
}

// ProgressFunc receives byte progress for the video currently downloading.
// total is 0 when unknown.
type ProgressFunc func(downloaded, total int64)

// VideoDownloader handles downloading single videos with yt-dlp.
type VideoDownloader interface {
	// DownloadVideo fetches one URL. A nonzero exit is reported as *domain.ToolError.
	DownloadVideo(ctx context.Context, url string, opts DownloadOptions, progress ProgressFunc) error

	// yt-dlp management

	// IsAvailable checks if yt-dlp is installed and ready.
	IsAvailable() bool

	// GetBinaryPath returns the path to the yt-dlp binary.
	GetBinaryPath() string

	// Install downloads yt-dlp into the application bin directory.
	Install(ctx context.Context, progress ProgressFunc) error

	// Update updates yt-dlp to the latest version.
	Update(ctx context.Context) error
}
