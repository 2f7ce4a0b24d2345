// Package adapter contains infrastructure adapters for the winnow CLI.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "winnow.dev/pkg/winnow/internal/model"
)

// ImplFSAdapter abstracts filesystem access for locating implementations
// under test. It hides direct os access so workflow logic can be tested
// without touching the disk.
type ImplFSAdapter interface {
	// ListCandidates enumerates the candidate implementations in dir:
	// every regular .py file, sorted by name, identified by base name.
	ListCandidates(dir m.Path) ([]m.Candidate, error)

	// Exists reports whether a regular file exists at path.
	Exists(path m.Path) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)
}

// LocalImplFSAdapter is the os-backed ImplFSAdapter.
type LocalImplFSAdapter struct{}

// NewLocalImplFSAdapter constructs a LocalImplFSAdapter.
func NewLocalImplFSAdapter() *LocalImplFSAdapter {
	return &LocalImplFSAdapter{}
}

// ListCandidates implements ImplFSAdapter.
func (a *LocalImplFSAdapter) ListCandidates(dir m.Path) ([]m.Candidate, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, fmt.Errorf("read candidate dir: %w", err)
	}

	candidates := make([]m.Candidate, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".py") {
			continue
		}

		candidates = append(candidates, m.Candidate{
			ID:       entry.Name(),
			FullPath: m.Path(filepath.Join(string(dir), entry.Name())),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})

	return candidates, nil
}

// Exists implements ImplFSAdapter.
func (a *LocalImplFSAdapter) Exists(path m.Path) error {
	info, err := os.Stat(string(path))
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file", path)
	}

	return nil
}

// ReadFile implements ImplFSAdapter.
func (a *LocalImplFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	content, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return content, nil
}
