package application

import (
	"fmt"
	"time"

	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/ports"
)

// Selection is a validated range of a list file
type Selection struct {
	List  *domain.ListFile
	Range domain.Range
	URLs  []string
}

// ListService handles picking list files and ranges
type ListService struct {
	store ports.ListStore
}

// NewListService creates a new list service
func NewListService(store ports.ListStore) *ListService {
	return &ListService{store: store}
}

// Dir returns the directory holding the list files
func (s *ListService) Dir() string {
	return s.store.Dir()
}

// Lists returns all list files in name order
func (s *ListService) Lists() ([]ports.ListInfo, error) {
	return s.store.List()
}

// Open reads a list file by name
func (s *ListService) Open(name string) (*domain.ListFile, error) {
	return s.store.Read(name)
}

// ModTime reports when a list file last changed, for cache keys
func (s *ListService) ModTime(name string) (time.Time, error) {
	return s.store.ModTime(name)
}

// Select parses "start-end" against the list and returns those lines
func (s *ListService) Select(name, rangeInput string) (*Selection, error) {
	list, err := s.store.Read(name)
	if err != nil {
		return nil, err
	}
	r, err := domain.ParseRange(rangeInput, list.Count())
	if err != nil {
		return nil, err
	}
	return newSelection(list, r), nil
}

// SelectBounds validates numeric bounds against an already loaded list,
// as submitted by the web form
func (s *ListService) SelectBounds(list *domain.ListFile, start, end int) (*Selection, error) {
	r := domain.Range{Start: start, End: end}
	if !r.Within(list.Count()) {
		return nil, &domain.RangeError{Input: fmt.Sprintf("%d-%d", start, end)}
	}
	return newSelection(list, r), nil
}

func newSelection(list *domain.ListFile, r domain.Range) *Selection {
	return &Selection{List: list, Range: r, URLs: r.Select(list.Lines)}
}

// DefaultBounds clamps a preview's suggested range to the list size
func DefaultBounds(start, end, total int) (int, int) {
	if start < 1 {
		start = 1
	}
	if end < start {
		end = start
	}
	if end > total {
		end = total
	}
	return start, end
}
