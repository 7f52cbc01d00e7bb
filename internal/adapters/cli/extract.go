package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	noCacheFlag   bool
	inputFileFlag string
)

// NewExtractCmd creates the extract subcommand
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [channel-url|username...]",
		Short: "Save the video URLs of channels or profiles to list files",
		Long: `Save the video URLs of a channel or profile to a list file.

Each input is classified to a platform, checked against the enabled
platforms and dumped as a flat playlist with yt-dlp. Inputs are
processed one at a time.

Example:
  vidrange extract https://www.youtube.com/@somechannel
  vidrange extract some_tiktok_user
  vidrange extract --file channels.txt --no-cache`,
		RunE: runExtract,
	}

	cmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Skip the extraction cache")
	cmd.Flags().StringVarP(&inputFileFlag, "file", "f", "", "File with channel URLs or usernames (one per line)")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputs, err := CollectInputs(args, inputFileFlag)
	if err != nil {
		return fmt.Errorf("failed to collect inputs: %w", err)
	}
	if len(inputs) == 0 {
		return errors.New("no channel URL or username provided")
	}

	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	failed := 0
	for _, input := range inputs {
		result, err := extractWithProgress(ctx, app, out, input)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s\n%s\n", input, err)
			continue
		}

		source := ""
		if result.FromCache {
			source = " (cached)"
		}
		fmt.Fprintf(out, "✓ Saved %d URLs to %s%s\n",
			len(result.URLs), filepath.Join(app.ListSvc.Dir(), result.ListName), source)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d extractions failed", failed, len(inputs))
	}
	return nil
}
