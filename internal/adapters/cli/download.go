package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDownloadCmd creates the download subcommand
func NewDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download <list-file> <start-end>",
		Short: "Download a range of a saved list",
		Long: `Download lines start..end (1-based, inclusive) of a saved list file.

Videos are fetched one at a time into <download-dir>/<list>_videos.
A failed video is reported and the batch moves on.

Example:
  vidrange download @somechannel_videos.txt 3-5`,
		Args: cobra.ExactArgs(2),
		RunE: runDownload,
	}
}

func runDownload(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	sel, err := app.ListSvc.Select(args[0], args[1])
	if err != nil {
		return err
	}

	summary, err := runBatch(cmd.Context(), app, cmd.OutOrStdout(), sel)
	if err != nil {
		return err
	}

	if failed := len(summary.FailedResults()); failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, summary.Total())
	}
	return nil
}
