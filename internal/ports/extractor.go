package ports

import (
	"context"

	"github.com/devbush/vidrange/internal/domain"
)

// PlaylistExtractor reads flat playlist metadata for a channel or profile
type PlaylistExtractor interface {
	// ExtractPlaylist dumps the flat playlist of the target's URL.
	// A nonzero exit of the external tool is reported as *domain.ToolError.
	ExtractPlaylist(ctx context.Context, target *domain.Target) (*domain.Playlist, error)
}
