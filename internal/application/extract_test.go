package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbush/vidrange/internal/domain"
)

func tiktokPlaylist() *domain.Playlist {
	return &domain.Playlist{
		Title: "foo bar!",
		Entries: []domain.PlaylistEntry{
			{ID: "1", URL: "1"},
			{ID: "2", URL: "https://www.tiktok.com/@foo/video/2"},
		},
	}
}

func newExtractFixture(enabled ...domain.Platform) (*ExtractService, *mockExtractor, *mockCache, *mockListStore) {
	extractor := &mockExtractor{playlist: tiktokPlaylist()}
	cache := newMockCache()
	lists := newMockListStore()
	svc := NewExtractService(NewSettingsService(storeWith(enabled...)), extractor, cache, lists, time.Hour)
	return svc, extractor, cache, lists
}

func TestExtractService_SavesList(t *testing.T) {
	svc, extractor, _, lists := newExtractFixture(domain.PlatformTikTok)

	var stages []domain.Stage
	res, err := svc.Extract(context.Background(), "foo", ExtractOptions{
		OnStage: func(s domain.Stage) { stages = append(stages, s) },
	})
	require.NoError(t, err)

	assert.Equal(t, "https://www.tiktok.com/@foo", extractor.lastURL)
	assert.Equal(t, "@foo_bar__videos.txt", res.ListName)
	assert.Equal(t, []string{
		"https://www.tiktok.com/@foo/video/1",
		"https://www.tiktok.com/@foo/video/2",
	}, lists.files[res.ListName])
	assert.Equal(t, []domain.Stage{domain.StageClassify, domain.StageCheckConfig, domain.StageExtract}, stages)
	assert.False(t, res.FromCache)
}

func TestExtractService_UsesCache(t *testing.T) {
	svc, extractor, _, _ := newExtractFixture(domain.PlatformTikTok)
	ctx := context.Background()

	_, err := svc.Extract(ctx, "https://www.tiktok.com/@foo", ExtractOptions{})
	require.NoError(t, err)
	res, err := svc.Extract(ctx, "https://www.tiktok.com/@foo", ExtractOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, extractor.calls)
	assert.True(t, res.FromCache)

	_, err = svc.Extract(ctx, "https://www.tiktok.com/@foo", ExtractOptions{NoCache: true})
	require.NoError(t, err)
	assert.Equal(t, 2, extractor.calls)
}

func TestExtractService_PlatformDisabled(t *testing.T) {
	svc, extractor, _, _ := newExtractFixture(domain.PlatformYouTube)

	var stages []domain.Stage
	_, err := svc.Extract(context.Background(), "https://vimeo.com/123", ExtractOptions{
		OnStage: func(s domain.Stage) { stages = append(stages, s) },
	})
	assert.ErrorIs(t, err, domain.ErrPlatformDisabled)
	assert.Equal(t, 0, extractor.calls)
	assert.Equal(t, []domain.Stage{domain.StageClassify, domain.StageCheckConfig}, stages)
}

func TestExtractService_UnknownPlatform(t *testing.T) {
	svc, extractor, _, _ := newExtractFixture(domain.PlatformYouTube)

	_, err := svc.Extract(context.Background(), "example.com/videos", ExtractOptions{})
	assert.ErrorIs(t, err, domain.ErrUnknownPlatform)
	assert.Equal(t, 0, extractor.calls)

	_, err = svc.Extract(context.Background(), "   ", ExtractOptions{})
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestExtractService_NoEntries(t *testing.T) {
	svc, extractor, cache, lists := newExtractFixture(domain.PlatformYouTube)
	extractor.playlist = &domain.Playlist{Title: "empty"}

	_, err := svc.Extract(context.Background(), "https://www.youtube.com/@empty", ExtractOptions{})
	assert.ErrorIs(t, err, domain.ErrNoEntries)
	assert.Empty(t, lists.files)
	assert.Empty(t, cache.items)
}

func TestExtractService_ToolErrorPassesThrough(t *testing.T) {
	svc, extractor, _, lists := newExtractFixture(domain.PlatformYouTube)
	extractor.err = &domain.ToolError{Op: "extract", ExitCode: 1, Stderr: "ERROR: [youtube] channel does not exist\n"}

	_, err := svc.Extract(context.Background(), "https://www.youtube.com/@gone", ExtractOptions{})
	require.Error(t, err)
	assert.Equal(t, "ERROR: [youtube] channel does not exist\n", err.Error())
	assert.Empty(t, lists.files)
}
