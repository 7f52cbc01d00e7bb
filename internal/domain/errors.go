package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Input errors
	ErrEmptyInput      = errors.New("no input provided")
	ErrUnknownPlatform = errors.New("could not determine platform from input")

	// Settings errors
	ErrPlatformDisabled    = errors.New("platform is disabled in settings")
	ErrSettingsMissing     = errors.New("settings file not found")
	ErrNoPlatformsSelected = errors.New("no platforms selected")

	// Extraction errors
	ErrNoEntries = errors.New("no URLs found")

	// List file errors
	ErrNoListFiles     = errors.New("no .txt list files found")
	ErrInvalidListFile = errors.New("invalid list file")

	// Cache errors
	ErrCacheExpired = errors.New("cache expired")
	ErrCacheMiss    = errors.New("cache miss")

	// Dependency errors
	ErrYtDlpNotFound = errors.New("yt-dlp not found")
)

// ToolError is returned when the external downloader exits with a nonzero status.
// Its message is the captured standard error, unmodified.
type ToolError struct {
	Op       string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	if strings.TrimSpace(e.Stderr) != "" {
		return e.Stderr
	}
	return fmt.Sprintf("yt-dlp %s failed (exit %d)", e.Op, e.ExitCode)
}

// RangeError reports a range that failed to parse or falls outside the list
type RangeError struct {
	Input string
}

func (e *RangeError) Error() string {
	return "invalid range: " + e.Input
}
