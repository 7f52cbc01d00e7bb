package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/ports"
)

// ListDir stores list files as plain .txt files in one directory
type ListDir struct {
	fs  afero.Fs
	dir string
}

func NewListDir(dir string) *ListDir {
	return NewListDirFs(afero.NewOsFs(), dir)
}

func NewListDirFs(fs afero.Fs, dir string) *ListDir {
	return &ListDir{fs: fs, dir: dir}
}

func (d *ListDir) Dir() string {
	return d.dir
}

// List returns every *.txt file in the directory, sorted by name
func (d *ListDir) List() ([]ports.ListInfo, error) {
	matches, err := afero.Glob(d.fs, filepath.Join(d.dir, "*"+domain.ListFileExt))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	infos := make([]ports.ListInfo, 0, len(matches))
	for _, match := range matches {
		stat, err := d.fs.Stat(match)
		if err != nil || stat.IsDir() {
			continue
		}
		data, err := afero.ReadFile(d.fs, match)
		if err != nil {
			continue
		}
		infos = append(infos, ports.ListInfo{
			Name:    filepath.Base(match),
			Lines:   len(domain.ParseListLines(string(data))),
			ModTime: stat.ModTime(),
		})
	}

	if len(infos) == 0 {
		return nil, domain.ErrNoListFiles
	}
	return infos, nil
}

// ModTime stats a list file, rejecting the same names Read does
func (d *ListDir) ModTime(name string) (time.Time, error) {
	path, err := d.path(name)
	if err != nil {
		return time.Time{}, err
	}
	stat, err := d.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, fmt.Errorf("%w: %s does not exist", domain.ErrInvalidListFile, name)
		}
		return time.Time{}, err
	}
	if stat.IsDir() {
		return time.Time{}, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidListFile, name)
	}
	return stat.ModTime(), nil
}

// Read loads a list file. Names must be bare .txt file names inside the directory.
func (d *ListDir) Read(name string) (*domain.ListFile, error) {
	path, err := d.path(name)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(d.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist", domain.ErrInvalidListFile, name)
		}
		return nil, err
	}

	return &domain.ListFile{
		Name:  name,
		Lines: domain.ParseListLines(string(data)),
	}, nil
}

// Write replaces the list file with the given URLs
func (d *ListDir) Write(name string, urls []string) error {
	path, err := d.path(name)
	if err != nil {
		return err
	}
	if err := d.fs.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("failed to create lists directory: %w", err)
	}
	return afero.WriteFile(d.fs, path, []byte(domain.FormatListLines(urls)), 0644)
}

func (d *ListDir) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidListFile, name)
	}
	if !strings.HasSuffix(name, domain.ListFileExt) {
		return "", fmt.Errorf("%w: %q is not a %s file", domain.ErrInvalidListFile, name, domain.ListFileExt)
	}
	return filepath.Join(d.dir, name), nil
}

var _ ports.ListStore = (*ListDir)(nil)
