package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/logging"
)

// flatPlaylist is the subset of --dump-single-json output we read
type flatPlaylist struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	WebpageURL string `json:"webpage_url"`
	Entries    []struct {
		ID    string `json:"id"`
		URL   string `json:"url"`
		Title string `json:"title"`
	} `json:"entries"`
}

func extractArgs(url string) []string {
	return []string{"--flat-playlist", "--dump-single-json", url}
}

// ExtractPlaylist dumps the flat playlist for a channel or profile URL
func (d *Downloader) ExtractPlaylist(ctx context.Context, target *domain.Target) (*domain.Playlist, error) {
	binPath := d.GetBinaryPath()
	if binPath == "" {
		return nil, domain.ErrYtDlpNotFound
	}

	logging.Debug("yt-dlp extract", "url", target.URL, "platform", target.Platform)

	cmd := exec.CommandContext(ctx, binPath, extractArgs(target.URL)...)
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &domain.ToolError{
				Op:       "extract",
				ExitCode: exitErr.ExitCode(),
				Stderr:   string(exitErr.Stderr),
			}
		}
		return nil, fmt.Errorf("failed to run yt-dlp: %w", err)
	}

	d.saveDump(output)

	return parsePlaylist(output, target, time.Now())
}

func (d *Downloader) saveDump(data []byte) {
	if d.dumpPath == "" {
		return
	}
	if err := d.fs.MkdirAll(filepath.Dir(d.dumpPath), 0755); err == nil {
		err = afero.WriteFile(d.fs, d.dumpPath, data, 0644)
		if err == nil {
			return
		}
	}
	logging.Warn("could not save raw extraction output", "path", d.dumpPath)
}

func parsePlaylist(output []byte, target *domain.Target, fetchedAt time.Time) (*domain.Playlist, error) {
	if strings.TrimSpace(string(output)) == "" {
		return nil, fmt.Errorf("yt-dlp returned no output for %s", target.URL)
	}

	var raw flatPlaylist
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	playlist := &domain.Playlist{
		Title:     raw.Title,
		SourceURL: target.URL,
		Platform:  target.Platform,
		FetchedAt: fetchedAt,
	}
	for _, e := range raw.Entries {
		playlist.Entries = append(playlist.Entries, domain.PlaylistEntry{
			ID:    e.ID,
			URL:   e.URL,
			Title: e.Title,
		})
	}
	return playlist, nil
}
