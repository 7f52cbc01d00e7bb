package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/devbush/vidrange/internal/adapters/cli/tui"
	"github.com/devbush/vidrange/internal/application"
	"github.com/devbush/vidrange/internal/domain"
)

const (
	menuExtract  = "extract"
	menuDownload = "download"
	menuSettings = "settings"
	menuQuit     = "quit"
)

var mainMenu = []tui.MenuOption{
	{Label: "Enter URL or Username", Value: menuExtract},
	{Label: "Download from a saved list", Value: menuDownload},
	{Label: "Edit settings", Value: menuSettings},
	{Label: "Quit", Value: menuQuit},
}

// extractSteps are the stages shown while a list is being extracted,
// Classify through Extract. Step indexes equal stage values.
func extractSteps() []string {
	var steps []string
	for st := domain.StageClassify; st <= domain.StageExtract; st = st.Next() {
		steps = append(steps, st.String())
	}
	return steps
}

// session runs the interactive Classify → CheckConfig → Extract → Pick →
// Download sequence. Step errors are shown and the menu comes back.
type session struct {
	app *App
	out io.Writer
}

func newSession(app *App, out io.Writer) *session {
	return &session{app: app, out: out}
}

func (s *session) run(ctx context.Context, initial string) error {
	if _, err := s.app.SettingsSvc.EnsureInitialized(choosePlatforms); err != nil {
		return err
	}

	if initial != "" {
		again, err := s.extractAndDownload(ctx, initial)
		if done, err := s.settle(ctx, again, err); done {
			return err
		}
	}

	for {
		selected, err := tui.RunMenu("What would you like to do?", mainMenu)
		if err != nil {
			return err
		}

		var again bool
		switch selected {
		case menuExtract:
			input, perr := tui.PromptInput("Enter a channel URL or username", "https://www.youtube.com/@channel")
			if errors.Is(perr, tui.ErrCancelled) || (perr == nil && input == "") {
				continue
			}
			if perr != nil {
				return perr
			}
			again, err = s.extractAndDownload(ctx, input)
		case menuDownload:
			again, err = s.pickAndDownload(ctx, "")
		case menuSettings:
			again, err = true, s.editSettings()
		default:
			return nil
		}

		if done, err := s.settle(ctx, again, err); done {
			return err
		}
	}
}

// settle reports a step error and decides whether the session ends
func (s *session) settle(ctx context.Context, again bool, err error) (bool, error) {
	if ctx.Err() != nil {
		return true, ctx.Err()
	}
	if err != nil {
		tui.Notice(s.out, "Error", err.Error(), true)
		return false, nil
	}
	return !again, nil
}

// choosePlatforms shows the first-run checklist
func choosePlatforms(defaults domain.Settings) ([]domain.Platform, error) {
	return tui.RunPlatformSelector("Select the platforms to enable", defaults)
}

func (s *session) editSettings() error {
	current, err := s.app.SettingsSvc.Current()
	if err != nil {
		return err
	}
	selected, err := tui.RunPlatformSelector("Select the platforms to enable", current)
	if err != nil {
		return err
	}
	if selected == nil {
		fmt.Fprintln(s.out, "Cancelled")
		return nil
	}
	updated, err := s.app.SettingsSvc.Update(selected)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Enabled: %v\n", updated.Platforms())
	return nil
}

// extractAndDownload runs every stage for one input
func (s *session) extractAndDownload(ctx context.Context, input string) (bool, error) {
	result, err := extractWithProgress(ctx, s.app, s.out, input)
	if err != nil {
		return false, err
	}

	tui.Notice(s.out, "List saved", fmt.Sprintf("Saved %d URLs to %s",
		len(result.URLs), filepath.Join(s.app.ListSvc.Dir(), result.ListName)), false)

	return s.pickAndDownload(ctx, result.ListName)
}

// pickAndDownload runs the Pick and Download stages. The returned bool is
// the answer to "start over?".
func (s *session) pickAndDownload(ctx context.Context, current string) (bool, error) {
	lists, err := s.app.ListSvc.Lists()
	if err != nil {
		return false, err
	}

	name, err := tui.RunListPicker(lists, current)
	if err != nil {
		return false, err
	}
	if name == "" {
		fmt.Fprintln(s.out, "Cancelled")
		return true, nil
	}

	list, err := s.app.ListSvc.Open(name)
	if err != nil {
		return false, err
	}

	fmt.Fprintf(s.out, "%s has %d URLs\n", list.Name, list.Count())
	rangeInput, err := tui.PromptInput(
		fmt.Sprintf("Enter the range to download (1-%d)", list.Count()),
		fmt.Sprintf("1-%d", list.Count()))
	if errors.Is(err, tui.ErrCancelled) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	sel, err := s.app.ListSvc.Select(name, rangeInput)
	if err != nil {
		return false, err
	}

	if _, err := runBatch(ctx, s.app, s.out, sel); err != nil {
		return false, err
	}

	return tui.Confirm("Start over with another channel or list?")
}

// extractWithProgress runs the extraction stages behind a step display
func extractWithProgress(ctx context.Context, app *App, out io.Writer, input string) (*application.ExtractResult, error) {
	if err := ensureYtDlp(ctx, app, out); err != nil {
		return nil, err
	}

	progress := tui.NewProgressDisplayTo(out, extractSteps(), quietFlag)
	done := progress.StartSpinner()

	result, err := app.ExtractSvc.Extract(ctx, input, application.ExtractOptions{
		NoCache: noCacheFlag,
		OnStage: func(st domain.Stage) {
			progress.StartStep(int(st))
		},
	})
	close(done)

	if err != nil {
		progress.FailCurrent(err.Error())
		return nil, err
	}
	progress.CompleteStep(int(domain.StageExtract))
	return result, nil
}

// runBatch downloads a selection with the batch gauge
func runBatch(ctx context.Context, app *App, out io.Writer, sel *application.Selection) (*domain.BatchSummary, error) {
	if err := ensureYtDlp(ctx, app, out); err != nil {
		return nil, err
	}

	if !quietFlag {
		fmt.Fprintf(out, "Downloading %d videos (%s lines %s)\n", len(sel.URLs), sel.List.Name, sel.Range)
	}

	progress := tui.NewBatchProgressTo(out, len(sel.URLs), app.Memory, quietFlag)
	summary, err := app.DownloadSvc.Run(ctx, sel, progress)
	if err != nil {
		if errors.Is(err, context.Canceled) && summary != nil {
			progress.Complete(summary)
		}
		return summary, err
	}

	progress.Complete(summary)
	return summary, nil
}

// ensureYtDlp installs yt-dlp into the app bin directory when it is missing
func ensureYtDlp(ctx context.Context, app *App, out io.Writer) error {
	if app.Downloader.IsAvailable() {
		return nil
	}

	progress := tui.NewProgressDisplayTo(out, []string{"Installing yt-dlp"}, quietFlag)
	progress.StartStep(0)
	if err := app.Downloader.Install(ctx, func(downloaded, total int64) {
		progress.UpdateProgress(0, downloaded, total)
	}); err != nil {
		progress.FailStep(0, err.Error())
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	progress.CompleteStep(0)
	return nil
}
