package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Platform identifies a supported video hosting service
type Platform string

const (
	PlatformYouTube     Platform = "YouTube"
	PlatformTikTok      Platform = "TikTok"
	PlatformInstagram   Platform = "Instagram"
	PlatformFacebook    Platform = "Facebook"
	PlatformTwitter     Platform = "Twitter"
	PlatformVimeo       Platform = "Vimeo"
	PlatformDailymotion Platform = "Dailymotion"
	PlatformUnknown     Platform = "Unknown"
)

// FallbackPlatform is assumed for bare usernames (inputs without a dot)
const FallbackPlatform = PlatformTikTok

type platformRule struct {
	platform Platform
	pattern  *regexp.Regexp
}

// Order matters: the first matching rule wins.
var platformRules = []platformRule{
	{PlatformYouTube, regexp.MustCompile(`(youtube\.com|youtu\.be)`)},
	{PlatformTikTok, regexp.MustCompile(`tiktok\.com`)},
	{PlatformInstagram, regexp.MustCompile(`instagram\.com`)},
	{PlatformFacebook, regexp.MustCompile(`(facebook\.com|fb\.com)`)},
	{PlatformTwitter, regexp.MustCompile(`(twitter\.com|x\.com)`)},
	{PlatformVimeo, regexp.MustCompile(`vimeo\.com`)},
	{PlatformDailymotion, regexp.MustCompile(`dailymotion\.com`)},
}

// KnownPlatforms returns every classifiable platform in rule order
func KnownPlatforms() []Platform {
	platforms := make([]Platform, len(platformRules))
	for i, rule := range platformRules {
		platforms[i] = rule.platform
	}
	return platforms
}

// ParsePlatform matches a platform name case-insensitively
func ParsePlatform(name string) (Platform, bool) {
	name = strings.Trim(strings.TrimSpace(name), `"'`)
	for _, p := range KnownPlatforms() {
		if strings.EqualFold(string(p), name) {
			return p, true
		}
	}
	return PlatformUnknown, false
}

// Classify maps a free-form input to a platform
func Classify(input string) Platform {
	input = strings.TrimSpace(input)

	for _, rule := range platformRules {
		if rule.pattern.MatchString(input) {
			return rule.platform
		}
	}

	if input != "" && !strings.Contains(input, ".") {
		return FallbackPlatform
	}

	return PlatformUnknown
}

// Target is a classified input ready to be handed to the extractor
type Target struct {
	Input    string
	Platform Platform
	URL      string
}

// ResolveTarget classifies the input and builds the URL to extract from
func ResolveTarget(input string) (*Target, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	platform := Classify(input)
	if platform == PlatformUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, input)
	}

	return &Target{
		Input:    input,
		Platform: platform,
		URL:      targetURL(input, platform),
	}, nil
}

func hasScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}

func targetURL(input string, platform Platform) string {
	if hasScheme(input) {
		return input
	}
	// Bare username, only reachable through the fallback rule
	if !strings.Contains(input, ".") && platform == FallbackPlatform {
		return "https://www.tiktok.com/@" + strings.TrimPrefix(input, "@")
	}
	return "https://" + input
}
