package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/ports"
)

// renderProgressBar creates a text progress bar like [=====>    ]
// current=0, total=10, width=10 → [          ]
// current=5, total=10, width=10 → [=====>    ]
// current=10, total=10, width=10 → [==========]
// current=3, total=10, width=10 → [==>       ]
func renderProgressBar(current, total, width int) string {
	if total <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}

	var bar strings.Builder
	bar.WriteString("[")

	if current >= total {
		bar.WriteString(strings.Repeat("=", width))
	} else if current == 0 {
		bar.WriteString(strings.Repeat(" ", width))
	} else {
		ratio := float64(current) / float64(total)
		arrowPos := int(ratio*float64(width) + 0.5)

		if arrowPos < 1 {
			arrowPos = 1
		}
		if arrowPos > width {
			arrowPos = width
		}

		// past the midpoint the arrow sits after the filled cells
		equals := arrowPos - 1
		if ratio >= 0.5 {
			equals = arrowPos
		}

		if equals < 0 {
			equals = 0
		}
		if equals > width-1 {
			equals = width - 1
		}

		spaces := width - equals - 1
		if spaces < 0 {
			spaces = 0
		}

		bar.WriteString(strings.Repeat("=", equals))
		bar.WriteString(">")
		bar.WriteString(strings.Repeat(" ", spaces))
	}

	bar.WriteString("]")
	return bar.String()
}

// recentResults is how many finished items stay on screen
const recentResults = 10

// BatchProgress renders the download gauge for a batch
type BatchProgress struct {
	out        io.Writer
	mem        ports.MemoryMeter
	total      int
	index      int
	url        string
	downloaded int64
	size       int64
	results    []domain.ItemResult
	quiet      bool
	mu         sync.Mutex
	lines      int
	lastRender time.Time
}

// NewBatchProgressTo creates a batch progress display writing to out
func NewBatchProgressTo(out io.Writer, total int, mem ports.MemoryMeter, quiet bool) *BatchProgress {
	if total < 0 {
		total = 0
	}
	return &BatchProgress{
		out:   out,
		mem:   mem,
		total: total,
		quiet: quiet,
	}
}

func (bp *BatchProgress) ItemStarted(index, total int, url string) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.index = index
	bp.total = total
	bp.url = url
	bp.downloaded = 0
	bp.size = 0
	bp.render()
}

func (bp *BatchProgress) ItemProgress(index int, downloaded, total int64) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.downloaded = downloaded
	bp.size = total
	if time.Since(bp.lastRender) > 100*time.Millisecond {
		bp.render()
	}
}

func (bp *BatchProgress) ItemFinished(result domain.ItemResult) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.results = append(bp.results, result)
	bp.url = ""
	bp.render()
}

// memLabel reads host memory usage as "Mem: NN%"
func (bp *BatchProgress) memLabel() string {
	if bp.mem == nil {
		return "Mem: N/A"
	}
	pct, err := bp.mem.UsedPercent()
	if err != nil {
		return "Mem: N/A"
	}
	return fmt.Sprintf("Mem: %.0f%%", pct)
}

// statusLine is the gauge headline for the current state
func (bp *BatchProgress) statusLine() string {
	completed := len(bp.results)
	percent := 0
	if bp.total > 0 {
		percent = (completed * 100) / bp.total
	}
	bar := renderProgressBar(completed, bp.total, 20)
	if bp.url == "" {
		return fmt.Sprintf("Downloaded %d of %d %s %d%% [%s]", completed, bp.total, bar, percent, bp.memLabel())
	}
	return fmt.Sprintf("Downloading video %d of %d... %s %d%% [%s]", bp.index, bp.total, bar, percent, bp.memLabel())
}

func (bp *BatchProgress) render() {
	if bp.quiet {
		return
	}
	bp.lastRender = time.Now()

	if bp.lines > 0 {
		fmt.Fprintf(bp.out, "\033[%dA", bp.lines)
		fmt.Fprint(bp.out, "\033[J")
	}

	lines := []string{bp.statusLine()}
	if bp.url != "" {
		lines = append(lines, "  "+bp.url)
		if bp.size > 0 {
			lines = append(lines, fmt.Sprintf("  %s / %s", FormatSize(bp.downloaded), FormatSize(bp.size)))
		}
	}

	start := 0
	if len(bp.results) > recentResults {
		start = len(bp.results) - recentResults
	}
	for _, r := range bp.results[start:] {
		if r.Success {
			lines = append(lines, fmt.Sprintf("✓ [%d] %s (%.1fs)", r.Index, r.URL, r.Duration.Seconds()))
		} else {
			lines = append(lines, fmt.Sprintf("✗ [%d] %s: failed (exit %d)", r.Index, r.URL, r.ExitCode))
		}
	}

	for _, l := range lines {
		fmt.Fprintln(bp.out, l)
	}
	bp.lines = len(lines)
}

// Complete prints the final summary
func (bp *BatchProgress) Complete(summary *domain.BatchSummary) {
	if bp.quiet {
		return
	}

	fmt.Fprintln(bp.out)
	fmt.Fprintln(bp.out, "All tasks finished.")
	fmt.Fprintf(bp.out, "Download complete: %d/%d succeeded\n", summary.Succeeded(), summary.Total())
	fmt.Fprintf(bp.out, "All videos have been saved to:\n  %s\n", summary.OutputDir)

	failures := summary.FailedResults()
	if len(failures) > 0 {
		fmt.Fprintln(bp.out, "\nFailures:")
		for _, f := range failures {
			fmt.Fprintf(bp.out, "  ✗ [%d] %s (exit %d)\n", f.Index, f.URL, f.ExitCode)
			if msg := strings.TrimSpace(f.Error); msg != "" {
				fmt.Fprintf(bp.out, "    %s\n", strings.ReplaceAll(msg, "\n", "\n    "))
			}
		}
	}
}
