package filestore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/ports"
)

// SettingsFile keeps enabled platforms as a flat text file
type SettingsFile struct {
	fs   afero.Fs
	path string
}

func NewSettingsFile(path string) *SettingsFile {
	return NewSettingsFileFs(afero.NewOsFs(), path)
}

func NewSettingsFileFs(fs afero.Fs, path string) *SettingsFile {
	return &SettingsFile{fs: fs, path: path}
}

func (s *SettingsFile) Path() string {
	return s.path
}

func (s *SettingsFile) Load() (domain.Settings, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Settings{}, domain.ErrSettingsMissing
		}
		return domain.Settings{}, err
	}
	return domain.ParseSettings(string(data)), nil
}

func (s *SettingsFile) Save(settings domain.Settings) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	return afero.WriteFile(s.fs, s.path, []byte(settings.String()), 0644)
}

var _ ports.SettingsStore = (*SettingsFile)(nil)
