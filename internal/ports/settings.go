package ports

import "github.com/devbush/vidrange/internal/domain"

// SettingsStore persists the enabled platform list
type SettingsStore interface {
	// Load returns domain.ErrSettingsMissing when no settings were saved yet
	Load() (domain.Settings, error)
	Save(settings domain.Settings) error
	Path() string
}
