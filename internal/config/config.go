package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default yt-dlp settings for batch downloads
const (
	DefaultFormat      = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]"
	DefaultTitleLength = 80
	DefaultCacheTTL    = "1d"
	DefaultWebAddr     = ":8080"
)

// Config represents the application configuration
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Paths    PathsConfig    `yaml:"paths"`
	Web      WebConfig      `yaml:"web"`
}

// DefaultsConfig holds default values
type DefaultsConfig struct {
	Format      string `yaml:"format"`
	TitleLength int    `yaml:"title_length"`
	CacheTTL    string `yaml:"cache_ttl"`
}

// PathsConfig holds custom path overrides
type PathsConfig struct {
	YtDlp       string `yaml:"yt_dlp"`
	ListsDir    string `yaml:"lists_dir"`
	DownloadDir string `yaml:"download_dir"`
}

// WebConfig holds settings for the web front-end
type WebConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Format:      DefaultFormat,
			TitleLength: DefaultTitleLength,
			CacheTTL:    DefaultCacheTTL,
		},
		Web: WebConfig{
			Addr: DefaultWebAddr,
		},
	}
}

// AppDir returns the application directory (~/.vidrange)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vidrange"
	}
	return filepath.Join(home, ".vidrange")
}

// CacheDir returns the cache directory
func CacheDir() string {
	return filepath.Join(AppDir(), "cache")
}

// BinDir returns the bin directory
func BinDir() string {
	return filepath.Join(AppDir(), "bin")
}

// DefaultListsDir returns the directory list files are saved to by default
func DefaultListsDir() string {
	return filepath.Join(AppDir(), "lists")
}

// DefaultDownloadDir returns ~/Videos
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Videos"
	}
	return filepath.Join(home, "Videos")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// SettingsPath returns the flat file listing enabled platforms
func SettingsPath() string {
	return filepath.Join(AppDir(), "settings.conf")
}

// LastDumpPath returns where the raw JSON of the latest extraction is kept
func LastDumpPath() string {
	return filepath.Join(AppDir(), "last_channel.json")
}

// ListsDir returns the configured lists directory
func (c *Config) ListsDir() string {
	if c.Paths.ListsDir != "" {
		return c.Paths.ListsDir
	}
	return DefaultListsDir()
}

// DownloadDir returns the configured download root
func (c *Config) DownloadDir() string {
	if c.Paths.DownloadDir != "" {
		return c.Paths.DownloadDir
	}
	return DefaultDownloadDir()
}

// EnsureDirs creates all required directories
func (c *Config) EnsureDirs() error {
	dirs := []string{AppDir(), CacheDir(), BinDir(), c.ListsDir(), c.DownloadDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Defaults.Format == "" {
		cfg.Defaults.Format = DefaultFormat
	}
	if cfg.Defaults.TitleLength <= 0 {
		cfg.Defaults.TitleLength = DefaultTitleLength
	}

	return cfg, nil
}

// GetCacheTTL returns the cache TTL as a duration
func (c *Config) GetCacheTTL() (time.Duration, error) {
	return ParseDuration(c.Defaults.CacheTTL)
}

var durationPattern = regexp.MustCompile(`^(\d+)(h|d)$`)

// ParseDuration parses duration strings like "24h", "7d", "30d"
func ParseDuration(s string) (time.Duration, error) {
	matches := durationPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid duration format: %s (use format like 24h, 7d)", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}
