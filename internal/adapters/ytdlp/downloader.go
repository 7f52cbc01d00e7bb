package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	goytdlp "github.com/lrstanley/go-ytdlp"
	"github.com/spf13/afero"

	"github.com/devbush/vidrange/internal/config"
	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/logging"
	"github.com/devbush/vidrange/internal/ports"
)

// progressInterval throttles byte progress callbacks during downloads
const progressInterval = 200 * time.Millisecond

// Downloader implements VideoDownloader and PlaylistExtractor using yt-dlp
type Downloader struct {
	fs         afero.Fs
	configured string
	binDir     string
	dumpPath   string

	// mu guards binPath, which is resolved lazily and replaced by Install
	mu      sync.Mutex
	binPath string
}

// NewDownloader creates a yt-dlp wrapper. configured overrides binary
// discovery when set; dumpPath receives the raw JSON of each extraction.
func NewDownloader(configured, dumpPath string) *Downloader {
	return &Downloader{
		fs:         afero.NewOsFs(),
		configured: configured,
		binDir:     config.BinDir(),
		dumpPath:   dumpPath,
	}
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "yt-dlp.exe"
	}
	return "yt-dlp"
}

func (d *Downloader) findBinary() string {
	if d.configured != "" {
		if _, err := os.Stat(d.configured); err == nil {
			return d.configured
		}
		if path, err := exec.LookPath(d.configured); err == nil {
			return path
		}
		logging.Warn("configured yt-dlp not found, falling back to discovery", "path", d.configured)
	}

	// Check bundled location first
	bundled := filepath.Join(d.binDir, binaryName())
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}

	// Check system PATH
	if path, err := exec.LookPath(binaryName()); err == nil {
		return path
	}

	return ""
}

func (d *Downloader) GetBinaryPath() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.binPath == "" {
		d.binPath = d.findBinary()
	}
	return d.binPath
}

func (d *Downloader) setBinaryPath(path string) {
	d.mu.Lock()
	d.binPath = path
	d.mu.Unlock()
}

func (d *Downloader) IsAvailable() bool {
	return d.GetBinaryPath() != ""
}

// DownloadVideo runs one quiet yt-dlp download, reporting byte progress
func (d *Downloader) DownloadVideo(ctx context.Context, url string, opts ports.DownloadOptions, progress ports.ProgressFunc) error {
	binPath := d.GetBinaryPath()
	if binPath == "" {
		return domain.ErrYtDlpNotFound
	}

	dl := goytdlp.New().
		SetExecutable(binPath).
		Quiet().
		Progress().
		Format(opts.Format).
		Output(opts.OutputTemplate)

	if progress != nil {
		// video and audio streams are reported as separate files
		dl.ProgressFunc(progressInterval, func(update goytdlp.ProgressUpdate) {
			if update.Status == goytdlp.ProgressStatusPostProcessing ||
				update.Status == goytdlp.ProgressStatusFinished {
				return
			}
			progress(int64(update.DownloadedBytes), int64(update.TotalBytes))
		})
	}

	logging.Debug("yt-dlp download", "url", url, "output", opts.OutputTemplate)

	res, err := dl.Run(ctx, url)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if res == nil {
		return fmt.Errorf("failed to run yt-dlp: %w", err)
	}
	return &domain.ToolError{
		Op:       "download",
		ExitCode: exitCodeOf(res.ExitCode),
		Stderr:   res.Stderr,
	}
}

// exitCodeOf keeps a failed run from reporting success
func exitCodeOf(code int) int {
	if code == 0 {
		return 1
	}
	return code
}

func (d *Downloader) Install(ctx context.Context, progress ports.ProgressFunc) error {
	if err := os.MkdirAll(d.binDir, 0755); err != nil {
		return err
	}

	downloadURL := getDownloadURL()
	destPath := filepath.Join(d.binDir, binaryName())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download yt-dlp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download yt-dlp: HTTP %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	// Remove partial downloads on failure
	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(destPath)
		}
	}()

	total := resp.ContentLength
	var downloaded int64

	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
			downloaded += int64(n)
			if progress != nil {
				progress(downloaded, total)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(destPath, 0755); err != nil {
			return err
		}
	}

	success = true
	d.setBinaryPath(destPath)
	return nil
}

func getDownloadURL() string {
	base := "https://github.com/yt-dlp/yt-dlp/releases/latest/download/"

	switch runtime.GOOS {
	case "windows":
		return base + "yt-dlp.exe"
	case "darwin":
		return base + "yt-dlp_macos"
	default:
		return base + "yt-dlp"
	}
}

func (d *Downloader) Update(ctx context.Context) error {
	binPath := d.GetBinaryPath()
	if binPath == "" {
		return domain.ErrYtDlpNotFound
	}

	cmd := exec.CommandContext(ctx, binPath, "-U")
	if out, err := cmd.CombinedOutput(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &domain.ToolError{Op: "update", ExitCode: exitErr.ExitCode(), Stderr: string(out)}
		}
		return fmt.Errorf("failed to run yt-dlp: %w", err)
	}
	return nil
}

// Version returns the output of yt-dlp --version
func (d *Downloader) Version(ctx context.Context) (string, error) {
	binPath := d.GetBinaryPath()
	if binPath == "" {
		return "", domain.ErrYtDlpNotFound
	}
	out, err := exec.CommandContext(ctx, binPath, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to read yt-dlp version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Ensure Downloader implements interfaces
var _ ports.VideoDownloader = (*Downloader)(nil)
var _ ports.PlaylistExtractor = (*Downloader)(nil)
