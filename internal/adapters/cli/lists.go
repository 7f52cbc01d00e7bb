package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devbush/vidrange/internal/adapters/cli/tui"
)

// NewListsCmd creates the lists subcommand
func NewListsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lists [list-file]",
		Short: "Show saved list files, or the numbered lines of one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLists,
	}
}

func runLists(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		list, err := app.ListSvc.Open(args[0])
		if err != nil {
			return err
		}
		width := len(fmt.Sprint(list.Count()))
		for i, line := range list.Lines {
			fmt.Fprintf(out, "%*d  %s\n", width, i+1, line)
		}
		return nil
	}

	lists, err := app.ListSvc.Lists()
	if err != nil {
		return fmt.Errorf("%w in %s", err, app.ListSvc.Dir())
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Lists in %s:\n", app.ListSvc.Dir())
	for _, info := range lists {
		fmt.Fprintf(out, "  %s\n", tui.FormatListLine(info, 48))
	}
	fmt.Fprintln(out)
	return nil
}
