package domain

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ListFile is a saved list of video URLs, one per line
type ListFile struct {
	Name  string
	Lines []string
}

// Stem returns the file name without its .txt extension
func (f *ListFile) Stem() string {
	return strings.TrimSuffix(f.Name, ListFileExt)
}

// Count returns the number of URLs in the list
func (f *ListFile) Count() int {
	return len(f.Lines)
}

// ListFileExt is the extension of every list file
const ListFileExt = ".txt"

const unknownTitle = "unknown_channel"

var unsafeTitleChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeTitle turns a channel title into a filesystem-safe token
func SanitizeTitle(title string) string {
	if title == "" {
		title = unknownTitle
	}
	return unsafeTitleChars.ReplaceAllString(title, "_")
}

// ListFileName builds the list file name for a channel title
func ListFileName(title string) string {
	return fmt.Sprintf("@%s_videos%s", SanitizeTitle(title), ListFileExt)
}

// ParseListLines splits list file content into URLs, skipping blank lines
func ParseListLines(content string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// FormatListLines renders URLs the way they are written to disk
func FormatListLines(urls []string) string {
	return strings.Join(urls, "\n")
}

// Range is a 1-based inclusive interval of list lines
type Range struct {
	Start int
	End   int
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Len returns the number of lines covered by the range
func (r Range) Len() int {
	return r.End - r.Start + 1
}

var rangePattern = regexp.MustCompile(`^(\d+)-(\d+)$`)

// ParseRange parses "start-end" and validates it against total lines
func ParseRange(input string, total int) (Range, error) {
	matches := rangePattern.FindStringSubmatch(strings.TrimSpace(input))
	if len(matches) != 3 {
		return Range{}, &RangeError{Input: input}
	}

	start, err := strconv.Atoi(matches[1])
	if err != nil {
		return Range{}, &RangeError{Input: input}
	}
	end, err := strconv.Atoi(matches[2])
	if err != nil {
		return Range{}, &RangeError{Input: input}
	}

	r := Range{Start: start, End: end}
	if !r.Within(total) {
		return Range{}, &RangeError{Input: input}
	}
	return r, nil
}

// Within reports whether 1 <= start <= end <= total
func (r Range) Within(total int) bool {
	return r.Start >= 1 && r.Start <= r.End && r.End <= total
}

// Select returns lines start..end inclusive, preserving order
func (r Range) Select(lines []string) []string {
	if !r.Within(len(lines)) {
		return nil
	}
	selected := make([]string, r.Len())
	copy(selected, lines[r.Start-1:r.End])
	return selected
}
