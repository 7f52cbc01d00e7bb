package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user aborts a prompt
var ErrCancelled = errors.New("cancelled")

func mapAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

// PromptInput asks for a single line of text
func PromptInput(title, placeholder string) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value)

	if err := input.Run(); err != nil {
		return "", mapAbort(err)
	}
	return strings.TrimSpace(value), nil
}

// Confirm asks a yes/no question. Aborting counts as no.
func Confirm(title string) (bool, error) {
	var yes bool
	confirm := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&yes)

	if err := confirm.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return yes, nil
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	errorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	okTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// Notice prints a boxed message, styled as an error when failed is set
func Notice(w io.Writer, title, body string, failed bool) {
	heading := okTitleStyle.Render(title)
	if failed {
		heading = errorTitleStyle.Render(title)
	}
	fmt.Fprintln(w, boxStyle.Render(heading+"\n\n"+strings.TrimRight(body, "\n")))
}

// WithSpinner runs action while showing a spinner
func WithSpinner(title string, action func()) error {
	return spinner.New().
		Title(title).
		Type(spinner.Dots).
		Action(action).
		Run()
}
