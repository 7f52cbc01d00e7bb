package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/devbush/vidrange/internal/domain"
)

// ParseInputFile reads a file containing channel URLs or usernames, one per line.
// Blank lines and lines starting with # are ignored.
func ParseInputFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var inputs []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		inputs = append(inputs, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return inputs, nil
}

// inputKey identifies inputs that resolve to the same channel
func inputKey(input string) string {
	target, err := domain.ResolveTarget(input)
	if err != nil {
		return strings.TrimSpace(input)
	}
	return strings.TrimSuffix(strings.ToLower(target.URL), "/")
}

// CollectInputs combines CLI arguments and file input, deduplicating.
// Args are processed first, then file entries. Inputs that cannot be
// classified are kept so the extraction reports them.
func CollectInputs(args []string, filePath string) ([]string, error) {
	seen := make(map[string]bool)
	var inputs []string

	add := func(input string) {
		input = strings.TrimSpace(input)
		if input == "" {
			return
		}
		key := inputKey(input)
		if !seen[key] {
			seen[key] = true
			inputs = append(inputs, input)
		}
	}

	// Process CLI args first
	for _, arg := range args {
		add(arg)
	}

	// Process file if provided
	if filePath != "" {
		fileInputs, err := ParseInputFile(filePath)
		if err != nil {
			return nil, err
		}
		for _, input := range fileInputs {
			add(input)
		}
	}

	return inputs, nil
}
