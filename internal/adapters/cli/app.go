package cli

import (
	"time"

	"github.com/spf13/afero"

	"github.com/devbush/vidrange/internal/adapters/cache"
	"github.com/devbush/vidrange/internal/adapters/filestore"
	"github.com/devbush/vidrange/internal/adapters/sysinfo"
	"github.com/devbush/vidrange/internal/adapters/ytdlp"
	"github.com/devbush/vidrange/internal/application"
	"github.com/devbush/vidrange/internal/config"
	"github.com/devbush/vidrange/internal/logging"
	"github.com/devbush/vidrange/internal/ports"
)

// App holds all application dependencies
type App struct {
	Config     *config.Config
	Cache      ports.CacheStore
	Downloader *ytdlp.Downloader
	Memory     ports.MemoryMeter

	SettingsSvc *application.SettingsService
	ExtractSvc  *application.ExtractService
	ListSvc     *application.ListService
	DownloadSvc *application.DownloadService
	CacheSvc    *application.CacheService
}

// NewApp loads the config at configPath and wires up all dependencies
func NewApp(configPath string) (*App, error) {
	if configPath == "" {
		configPath = config.ConfigPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// Ensure directories exist
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	ttl, err := cfg.GetCacheTTL()
	if err != nil {
		logging.Warn("invalid cache_ttl, using default", "value", cfg.Defaults.CacheTTL)
		ttl, _ = config.ParseDuration(config.DefaultCacheTTL)
	}

	// Create adapters
	cacheStore := cache.NewFileCache(config.CacheDir(), ttl)
	downloader := ytdlp.NewDownloader(cfg.Paths.YtDlp, config.LastDumpPath())
	settingsStore := filestore.NewSettingsFile(config.SettingsPath())
	listStore := filestore.NewListDir(cfg.ListsDir())

	// Create services
	settingsSvc := application.NewSettingsService(settingsStore)
	extractSvc := application.NewExtractService(settingsSvc, downloader, cacheStore, listStore, ttl)
	listSvc := application.NewListService(listStore)
	downloadSvc := application.NewDownloadService(downloader, afero.NewOsFs(), application.DownloadConfig{
		Root:        cfg.DownloadDir(),
		Format:      cfg.Defaults.Format,
		TitleLength: cfg.Defaults.TitleLength,
	})
	cacheSvc := application.NewCacheService(cacheStore)

	logging.Debug("app initialized",
		"config", configPath,
		"lists", cfg.ListsDir(),
		"downloads", cfg.DownloadDir(),
		"ttl", ttl.Round(time.Minute))

	return &App{
		Config:      cfg,
		Cache:       cacheStore,
		Downloader:  downloader,
		Memory:      sysinfo.NewHostMemory(),
		SettingsSvc: settingsSvc,
		ExtractSvc:  extractSvc,
		ListSvc:     listSvc,
		DownloadSvc: downloadSvc,
		CacheSvc:    cacheSvc,
	}, nil
}

var globalApp *App

// GetApp returns the global app instance, creating it if needed
func GetApp() (*App, error) {
	if globalApp == nil {
		app, err := NewApp(configFlag)
		if err != nil {
			return nil, err
		}
		globalApp = app
	}
	return globalApp, nil
}
