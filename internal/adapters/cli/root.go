package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/devbush/vidrange/internal/logging"
)

var (
	// Global flags
	configFlag string
	debugFlag  bool
	quietFlag  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vidrange [channel-url|username]",
		Short: "Save channel video lists and download ranges with yt-dlp",
		Long: `vidrange saves the videos of a channel or profile into a list file
and downloads a chosen range of that list with yt-dlp.

Provide a channel URL or username to start right away, or run without
arguments for an interactive menu.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(os.Stderr, debugFlag, quietFlag)
		},
		RunE: runRoot,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: ~/.vidrange/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")
	rootCmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Skip the extraction cache")

	// Add subcommands
	rootCmd.AddCommand(NewExtractCmd())
	rootCmd.AddCommand(NewListsCmd())
	rootCmd.AddCommand(NewDownloadCmd())
	rootCmd.AddCommand(NewSettingsCmd())
	rootCmd.AddCommand(NewCacheCmd())
	rootCmd.AddCommand(NewDepsCmd())
	rootCmd.AddCommand(NewServeCmd())

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	initial := ""
	if len(args) == 1 {
		initial = args[0]
	}
	return newSession(app, cmd.OutOrStdout()).run(cmd.Context(), initial)
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
