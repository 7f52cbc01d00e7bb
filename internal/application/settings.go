package application

import (
	"errors"
	"fmt"

	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/logging"
	"github.com/devbush/vidrange/internal/ports"
)

// SettingsService manages which platforms are enabled
type SettingsService struct {
	store ports.SettingsStore
}

// NewSettingsService creates a new settings service
func NewSettingsService(store ports.SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// Path returns where settings are stored
func (s *SettingsService) Path() string {
	return s.store.Path()
}

// IsFirstRun reports whether no settings have been saved yet
func (s *SettingsService) IsFirstRun() (bool, error) {
	_, err := s.store.Load()
	if errors.Is(err, domain.ErrSettingsMissing) {
		return true, nil
	}
	return false, err
}

// Current returns the saved settings, or the defaults when none exist
func (s *SettingsService) Current() (domain.Settings, error) {
	settings, err := s.store.Load()
	if errors.Is(err, domain.ErrSettingsMissing) {
		return domain.DefaultSettings(), nil
	}
	return settings, err
}

// EnsureInitialized writes settings on first run. choose receives the
// defaults and may return the user's selection; nil keeps the defaults.
func (s *SettingsService) EnsureInitialized(choose func(defaults domain.Settings) ([]domain.Platform, error)) (domain.Settings, error) {
	settings, err := s.store.Load()
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domain.ErrSettingsMissing) {
		return domain.Settings{}, err
	}

	settings = domain.DefaultSettings()
	if choose != nil {
		selected, err := choose(settings)
		if err != nil {
			return domain.Settings{}, err
		}
		if len(selected) > 0 {
			settings = domain.NewSettings(selected...)
		}
	}

	if err := s.store.Save(settings); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	logging.Info("created settings", "path", s.store.Path(), "enabled", settings.Platforms())
	return settings, nil
}

// CheckEnabled fails with ErrPlatformDisabled unless the platform is enabled
func (s *SettingsService) CheckEnabled(p domain.Platform) error {
	if p == domain.PlatformUnknown {
		return domain.ErrUnknownPlatform
	}

	settings, err := s.Current()
	if err != nil {
		return err
	}
	if !settings.Enabled(p) {
		return fmt.Errorf("%w: %s is currently disabled; enable it with 'vidrange settings' or delete %s",
			domain.ErrPlatformDisabled, p, s.store.Path())
	}
	return nil
}

// Update replaces the enabled platforms. An empty selection keeps the
// existing settings and returns ErrNoPlatformsSelected.
func (s *SettingsService) Update(platforms []domain.Platform) (domain.Settings, error) {
	settings := domain.NewSettings(platforms...)
	if settings.Empty() {
		return domain.Settings{}, domain.ErrNoPlatformsSelected
	}
	if err := s.store.Save(settings); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	logging.Info("settings updated", "enabled", settings.Platforms())
	return settings, nil
}

// Toggle enables and disables individual platforms on top of the current settings
func (s *SettingsService) Toggle(enable, disable []domain.Platform) (domain.Settings, error) {
	settings, err := s.Current()
	if err != nil {
		return domain.Settings{}, err
	}
	for _, p := range enable {
		settings.Enable(p)
	}
	for _, p := range disable {
		settings.Disable(p)
	}
	return s.Update(settings.Platforms())
}
