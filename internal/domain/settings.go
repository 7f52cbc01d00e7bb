package domain

import (
	"strings"
)

// Settings records which platforms the user has enabled
type Settings struct {
	enabled []Platform
}

// NewSettings builds settings from a platform list, dropping duplicates and Unknown
func NewSettings(platforms ...Platform) Settings {
	var s Settings
	for _, p := range platforms {
		s.Enable(p)
	}
	return s
}

// DefaultSettings is what a first run starts with
func DefaultSettings() Settings {
	return NewSettings(PlatformYouTube)
}

// ParseSettings reads the flat settings format. Names may be separated by
// newlines, spaces or commas and may be quoted; unknown names are ignored.
func ParseSettings(text string) Settings {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ' ' || r == '\t' || r == ','
	})

	var s Settings
	for _, field := range fields {
		if p, ok := ParsePlatform(field); ok {
			s.Enable(p)
		}
	}
	return s
}

// Enabled reports whether a platform is enabled
func (s Settings) Enabled(p Platform) bool {
	for _, e := range s.enabled {
		if e == p {
			return true
		}
	}
	return false
}

// Enable adds a platform
func (s *Settings) Enable(p Platform) {
	if p == PlatformUnknown || p == "" || s.Enabled(p) {
		return
	}
	s.enabled = append(s.enabled, p)
}

// Disable removes a platform
func (s *Settings) Disable(p Platform) {
	kept := make([]Platform, 0, len(s.enabled))
	for _, e := range s.enabled {
		if e != p {
			kept = append(kept, e)
		}
	}
	s.enabled = kept
}

// Platforms returns enabled platforms in the order they were enabled
func (s Settings) Platforms() []Platform {
	out := make([]Platform, len(s.enabled))
	copy(out, s.enabled)
	return out
}

// Empty reports whether no platform is enabled
func (s Settings) Empty() bool {
	return len(s.enabled) == 0
}

// String renders one platform name per line
func (s Settings) String() string {
	names := make([]string, len(s.enabled))
	for i, p := range s.enabled {
		names[i] = string(p)
	}
	if len(names) == 0 {
		return ""
	}
	return strings.Join(names, "\n") + "\n"
}
