package tui

import "github.com/devbush/vidrange/internal/domain"

// PlatformOptions builds one checkbox per known platform, checked when enabled
func PlatformOptions(current domain.Settings) []CheckboxOption {
	platforms := domain.KnownPlatforms()
	options := make([]CheckboxOption, 0, len(platforms))
	for _, p := range platforms {
		options = append(options, CheckboxOption{
			Label:   string(p),
			Value:   string(p),
			Checked: current.Enabled(p),
		})
	}
	return options
}

// RunPlatformSelector shows the platform checklist. A nil result means cancelled.
func RunPlatformSelector(title string, current domain.Settings) ([]domain.Platform, error) {
	selected, err := RunCheckbox(title, PlatformOptions(current))
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return nil, nil
	}

	platforms := make([]domain.Platform, 0, len(selected))
	for _, s := range selected {
		if p, ok := domain.ParsePlatform(s); ok {
			platforms = append(platforms, p)
		}
	}
	return platforms, nil
}
