package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/devbush/vidrange/internal/adapters/web"
)

var addrFlag string

// NewServeCmd creates the serve subcommand
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the extract and download forms over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (default: web.addr from config, :8080)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	addr := addrFlag
	if addr == "" {
		addr = app.Config.Web.Addr
	}

	server, err := web.NewServer(web.Services{
		Extract:   app.ExtractSvc,
		Lists:     app.ListSvc,
		Downloads: app.DownloadSvc,
		EnsureTool: func(ctx context.Context) error {
			return ensureYtDlp(ctx, app, io.Discard)
		},
	})
	if err != nil {
		return err
	}

	return server.Run(cmd.Context(), addr)
}
