package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devbush/vidrange/internal/adapters/cli/tui"
	"github.com/devbush/vidrange/internal/domain"
)

// NewDepsCmd creates the deps subcommand
func NewDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Manage dependencies (yt-dlp)",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show dependency status",
		RunE:  runDepsStatus,
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update yt-dlp to latest version",
		RunE:  runDepsUpdate,
	}

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install yt-dlp",
		RunE:  runDepsInstall,
	}

	cmd.AddCommand(statusCmd, updateCmd, installCmd)
	return cmd
}

func runDepsStatus(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Dependency Status:")
	fmt.Fprintln(out)

	if !app.Downloader.IsAvailable() {
		fmt.Fprintln(out, "  yt-dlp:   not found (run 'vidrange deps install')")
		fmt.Fprintln(out)
		return nil
	}

	path := app.Downloader.GetBinaryPath()
	version, err := app.Downloader.Version(cmd.Context())
	if err != nil {
		version = "unknown version"
	}
	fmt.Fprintf(out, "  yt-dlp:   %s (%s)\n", version, path)
	fmt.Fprintln(out)

	return nil
}

func runDepsUpdate(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	if !app.Downloader.IsAvailable() {
		return fmt.Errorf("%w. Run 'vidrange deps install' first", domain.ErrYtDlpNotFound)
	}

	var updateErr error
	update := func() {
		updateErr = app.Downloader.Update(cmd.Context())
	}
	if quietFlag {
		update()
	} else if err := tui.WithSpinner("Updating yt-dlp...", update); err != nil {
		return err
	}
	if updateErr != nil {
		return updateErr
	}

	fmt.Fprintln(cmd.OutOrStdout(), "yt-dlp updated")
	return nil
}

func runDepsInstall(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if app.Downloader.IsAvailable() {
		fmt.Fprintf(out, "yt-dlp is already installed (%s)\n", app.Downloader.GetBinaryPath())
		return nil
	}

	if err := ensureYtDlp(cmd.Context(), app, out); err != nil {
		return err
	}

	fmt.Fprintf(out, "yt-dlp installed to %s\n", app.Downloader.GetBinaryPath())
	return nil
}
