package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Logger is the process-wide logger. It discards output until Init is called.
var Logger = log.New(io.Discard)

func prefix() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF6B6B")).
		Bold(true).
		Padding(0, 1).
		MarginRight(1)
	return style.Render("vidrange")
}

// Init configures the logger. quiet drops everything below warnings.
func Init(w io.Writer, debug, quiet bool) {
	if w == nil {
		w = os.Stderr
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    debug,
		ReportTimestamp: debug,
		TimeFormat:      "15:04:05",
		Prefix:          prefix(),
	})

	switch {
	case debug:
		Logger.SetLevel(log.DebugLevel)
		Logger.Debug("debug logging enabled")
	case quiet:
		Logger.SetLevel(log.WarnLevel)
	default:
		Logger.SetLevel(log.InfoLevel)
	}
	if f, ok := w.(*os.File); ok && f == os.Stderr {
		Logger.SetColorProfile(termenv.NewOutput(os.Stderr).ColorProfile())
	} else {
		Logger.SetColorProfile(termenv.Ascii)
	}
}

func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

func Info(msg string, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}
