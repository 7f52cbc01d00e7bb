package tui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/devbush/vidrange/internal/ports"
)

// FormatCount formats a number with K/M suffix
// Examples: 892 -> "892", 1234 -> "1.2K", 1500000 -> "1.5M"
func FormatCount(count int64) string {
	if count >= 1000000 {
		return fmt.Sprintf("%.1fM", float64(count)/1000000)
	}
	if count >= 1000 {
		return fmt.Sprintf("%.1fK", float64(count)/1000)
	}
	return fmt.Sprintf("%d", count)
}

// FormatDate formats a date as "Jan 15" style
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "---"
	}
	return t.Format("Jan 2")
}

// FormatSize renders a byte count, e.g. "1.5 MiB"
func FormatSize(b int64) string {
	if b < 0 {
		b = 0
	}
	return humanize.IBytes(uint64(b))
}

// FormatListLine formats a list file as a single line for display
// Example: "@chan_videos.txt                 Jan 15    1.2K URLs"
func FormatListLine(info ports.ListInfo, maxNameLen int) string {
	name := info.Name
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	nameFmt := fmt.Sprintf("%%-%ds", maxNameLen)
	return fmt.Sprintf("%s  %-6s  %6s URLs",
		fmt.Sprintf(nameFmt, name), FormatDate(info.ModTime), FormatCount(int64(info.Lines)))
}
