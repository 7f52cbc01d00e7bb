package domain

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

// PlaylistEntry is a single item of a flat playlist dump
type PlaylistEntry struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Playlist is the flat metadata of a channel or profile
type Playlist struct {
	Title     string          `json:"title"`
	SourceURL string          `json:"source_url"`
	Platform  Platform        `json:"platform"`
	Entries   []PlaylistEntry `json:"entries"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// VideoURLs builds one full video URL per entry, skipping entries without an identifier
func (p *Playlist) VideoURLs() []string {
	var urls []string
	for _, entry := range p.Entries {
		if u := VideoURL(p.Platform, p.SourceURL, entry); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// VideoURL expands a playlist entry into a full video URL following the platform convention.
// Absolute entry URLs are returned unchanged.
func VideoURL(platform Platform, sourceURL string, entry PlaylistEntry) string {
	raw := strings.TrimSpace(entry.URL)
	if hasScheme(raw) {
		return raw
	}

	id := strings.TrimSpace(entry.ID)
	if id == "" && raw != "" {
		id = path.Base(raw)
	}
	if id == "" {
		return ""
	}

	switch platform {
	case PlatformYouTube:
		return fmt.Sprintf("https://www.youtube.com/watch?v=%s", id)
	case PlatformTikTok:
		if user := tiktokUser(sourceURL); user != "" {
			return fmt.Sprintf("https://www.tiktok.com/%s/video/%s", user, id)
		}
	case PlatformInstagram:
		return fmt.Sprintf("https://www.instagram.com/p/%s/", id)
	case PlatformVimeo:
		return fmt.Sprintf("https://vimeo.com/%s", id)
	case PlatformDailymotion:
		return fmt.Sprintf("https://www.dailymotion.com/video/%s", id)
	}

	if raw != "" {
		return raw
	}
	return id
}

// tiktokUser extracts the "@user" path segment from a profile URL
func tiktokUser(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	for _, segment := range strings.Split(u.Path, "/") {
		if strings.HasPrefix(segment, "@") && len(segment) > 1 {
			return segment
		}
	}
	return ""
}
