package domain

import (
	"reflect"
	"testing"
)

func TestVideoURL(t *testing.T) {
	tests := []struct {
		name      string
		platform  Platform
		sourceURL string
		entry     PlaylistEntry
		want      string
	}{
		{
			name:     "absolute URL kept",
			platform: PlatformYouTube,
			entry:    PlaylistEntry{ID: "abc", URL: "https://www.youtube.com/shorts/abc"},
			want:     "https://www.youtube.com/shorts/abc",
		},
		{
			name:     "youtube id",
			platform: PlatformYouTube,
			entry:    PlaylistEntry{ID: "dQw4w9WgXcQ"},
			want:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:      "tiktok id uses profile user",
			platform:  PlatformTikTok,
			sourceURL: "https://www.tiktok.com/@foo",
			entry:     PlaylistEntry{URL: "7300000000000000001"},
			want:      "https://www.tiktok.com/@foo/video/7300000000000000001",
		},
		{
			name:     "instagram shortcode",
			platform: PlatformInstagram,
			entry:    PlaylistEntry{ID: "DToLsd-EvGJ"},
			want:     "https://www.instagram.com/p/DToLsd-EvGJ/",
		},
		{
			name:     "vimeo id",
			platform: PlatformVimeo,
			entry:    PlaylistEntry{ID: "123"},
			want:     "https://vimeo.com/123",
		},
		{
			name:     "dailymotion id",
			platform: PlatformDailymotion,
			entry:    PlaylistEntry{ID: "x8abc"},
			want:     "https://www.dailymotion.com/video/x8abc",
		},
		{
			name:     "twitter raw value kept",
			platform: PlatformTwitter,
			entry:    PlaylistEntry{URL: "status/1"},
			want:     "status/1",
		},
		{
			name:     "empty entry skipped",
			platform: PlatformYouTube,
			entry:    PlaylistEntry{},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VideoURL(tt.platform, tt.sourceURL, tt.entry); got != tt.want {
				t.Errorf("VideoURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlaylist_VideoURLs(t *testing.T) {
	p := &Playlist{
		Platform:  PlatformYouTube,
		SourceURL: "https://www.youtube.com/@chan",
		Entries: []PlaylistEntry{
			{ID: "a"},
			{},
			{ID: "b", URL: "https://www.youtube.com/watch?v=b"},
		},
	}

	want := []string{"https://www.youtube.com/watch?v=a", "https://www.youtube.com/watch?v=b"}
	if got := p.VideoURLs(); !reflect.DeepEqual(got, want) {
		t.Errorf("VideoURLs() = %v, want %v", got, want)
	}

	empty := &Playlist{Platform: PlatformYouTube}
	if got := empty.VideoURLs(); len(got) != 0 {
		t.Errorf("VideoURLs() on empty playlist = %v", got)
	}
}
