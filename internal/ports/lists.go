package ports

import (
	"time"

	"github.com/devbush/vidrange/internal/domain"
)

// ListInfo describes a saved list file without its content
type ListInfo struct {
	Name    string
	Lines   int
	ModTime time.Time
}

// ListStore persists list files in a single directory
type ListStore interface {
	// List returns the names of all list files, sorted
	List() ([]ListInfo, error)

	// ModTime reports when a list file last changed without reading it
	ModTime(name string) (time.Time, error)

	// Read loads a list file by base name
	Read(name string) (*domain.ListFile, error)

	// Write creates or replaces a list file
	Write(name string, urls []string) error

	// Dir returns the directory holding the list files
	Dir() string
}
