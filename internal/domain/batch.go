package domain

import "time"

// ItemResult is the outcome of downloading one URL of a batch
type ItemResult struct {
	Index    int // 1-based position within the batch
	URL      string
	Success  bool
	ExitCode int
	Error    string
	Duration time.Duration
}

// BatchSummary aggregates results from a batch run
type BatchSummary struct {
	ListName  string
	Range     Range
	OutputDir string
	Results   []ItemResult
}

// Total returns the number of processed items
func (s *BatchSummary) Total() int {
	return len(s.Results)
}

// Succeeded returns the number of successful items
func (s *BatchSummary) Succeeded() int {
	count := 0
	for _, r := range s.Results {
		if r.Success {
			count++
		}
	}
	return count
}

// FailedResults returns only the failed results
func (s *BatchSummary) FailedResults() []ItemResult {
	var failed []ItemResult
	for _, r := range s.Results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}
