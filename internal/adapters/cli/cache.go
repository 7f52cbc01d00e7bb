package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/devbush/vidrange/internal/adapters/cli/tui"
	"github.com/devbush/vidrange/internal/application"
	"github.com/devbush/vidrange/internal/domain"
)

var clearAllFlag bool

// NewCacheCmd creates the cache subcommand
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached playlist extractions",
		RunE:  runCacheStatus,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cache entries",
		RunE:  runCacheClear,
	}
	clearCmd.Flags().BoolVar(&clearAllFlag, "all", false, "Clear all cache entries")

	forgetCmd := &cobra.Command{
		Use:   "forget <channel-url|username>",
		Short: "Drop the cached playlist of one channel",
		Args:  cobra.ExactArgs(1),
		RunE:  runCacheForget,
	}

	cmd.AddCommand(clearCmd, forgetCmd)

	return cmd
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	report, err := app.CacheSvc.Report(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	writeCacheReport(out, report, app.Config.Defaults.CacheTTL, time.Now())
	return nil
}

func writeCacheReport(out io.Writer, report *application.CacheReport, ttl string, now time.Time) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Cached playlists: %d (%d videos, %s, TTL %s)\n",
		len(report.Playlists), report.Videos, tui.FormatSize(report.TotalSize), ttl)
	if report.Expired > 0 {
		fmt.Fprintf(out, "  %d expired, run 'vidrange cache clear' to remove them\n", report.Expired)
	}

	for _, p := range report.Playlists {
		title := p.Title
		if title == "" {
			title = p.SourceURL
		}
		state := "expires " + humanize.RelTime(p.ExpiresAt, now, "ago", "from now")
		if p.Expired(now) {
			state = "expired " + humanize.RelTime(p.ExpiresAt, now, "ago", "from now")
		}
		fmt.Fprintf(out, "\n  %s [%s]\n", title, p.Platform)
		fmt.Fprintf(out, "    %s\n", p.SourceURL)
		fmt.Fprintf(out, "    %s videos, cached %s, %s\n",
			tui.FormatCount(int64(p.Videos)), humanize.RelTime(p.CreatedAt, now, "ago", "from now"), state)
	}
	fmt.Fprintln(out)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if clearAllFlag {
		if err := app.CacheSvc.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "All cache entries cleared")
	} else {
		cleaned, err := app.CacheSvc.CleanExpired(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d expired entries\n", cleaned)
	}

	return nil
}

func runCacheForget(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	target, err := app.CacheSvc.Forget(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrCacheMiss) {
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing cached for %s\n", target.URL)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Forgot cached playlist for %s\n", target.URL)
	return nil
}
