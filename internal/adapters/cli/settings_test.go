package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbush/vidrange/internal/domain"
)

func TestParsePlatformFlags(t *testing.T) {
	got, err := parsePlatformFlags([]string{"youtube", " TikTok ", "\"Vimeo\""})
	require.NoError(t, err)
	assert.Equal(t, []domain.Platform{domain.PlatformYouTube, domain.PlatformTikTok, domain.PlatformVimeo}, got)

	_, err = parsePlatformFlags([]string{"MySpace"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownPlatform))
	assert.Contains(t, err.Error(), "Dailymotion")

	none, err := parsePlatformFlags(nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
