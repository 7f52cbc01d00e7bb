package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devbush/vidrange/internal/adapters/cli/tui"
	"github.com/devbush/vidrange/internal/domain"
)

var (
	enableFlag  []string
	disableFlag []string
)

// NewSettingsCmd creates the settings subcommand
func NewSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Choose which platforms are enabled",
		Long: `Choose which platforms vidrange may extract from.

Without flags an interactive checklist is shown.

Example:
  vidrange settings --enable TikTok --disable Vimeo`,
		Args: cobra.NoArgs,
		RunE: runSettings,
	}

	cmd.Flags().StringSliceVar(&enableFlag, "enable", nil, "Platform to enable (repeatable)")
	cmd.Flags().StringSliceVar(&disableFlag, "disable", nil, "Platform to disable (repeatable)")

	return cmd
}

// parsePlatformFlags maps flag values to platforms, rejecting unknown names
func parsePlatformFlags(values []string) ([]domain.Platform, error) {
	var platforms []domain.Platform
	for _, v := range values {
		p, ok := domain.ParsePlatform(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s (known: %s)", domain.ErrUnknownPlatform, v, knownPlatformNames())
		}
		platforms = append(platforms, p)
	}
	return platforms, nil
}

func knownPlatformNames() string {
	names := make([]string, 0, len(domain.KnownPlatforms()))
	for _, p := range domain.KnownPlatforms() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

func runSettings(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	enable, err := parsePlatformFlags(enableFlag)
	if err != nil {
		return err
	}
	disable, err := parsePlatformFlags(disableFlag)
	if err != nil {
		return err
	}

	var settings domain.Settings
	if len(enable) > 0 || len(disable) > 0 {
		settings, err = app.SettingsSvc.Toggle(enable, disable)
		if err != nil {
			return err
		}
	} else {
		current, err := app.SettingsSvc.Current()
		if err != nil {
			return err
		}
		selected, err := tui.RunPlatformSelector("Select the platforms to enable", current)
		if err != nil {
			return err
		}
		if selected == nil {
			fmt.Fprintln(out, "Cancelled")
			return nil
		}
		settings, err = app.SettingsSvc.Update(selected)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Enabled platforms: %s\n", strings.TrimSpace(strings.ReplaceAll(settings.String(), "\n", " ")))
	fmt.Fprintf(out, "Saved to %s\n", app.SettingsSvc.Path())
	return nil
}
