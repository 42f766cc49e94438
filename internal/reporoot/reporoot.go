// Package reporoot locates the repository a maintenance command operates on.
package reporoot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no ancestor of the start path carries a marker.
var ErrNotFound = errors.New("repository root not found")

// Marker reports whether dir is a repository root.
type Marker interface {
	Match(dir string) bool
	String() string
}

type fileMarker string

func (m fileMarker) Match(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, string(m)))
	return err == nil && !info.IsDir()
}

func (m fileMarker) String() string { return string(m) }

type entryMarker string

func (m entryMarker) Match(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, string(m)))
	return err == nil
}

func (m entryMarker) String() string { return string(m) }

// File matches a directory containing a regular file with the given name.
func File(name string) Marker { return fileMarker(name) }

// Entry matches a directory containing a file or directory with the given
// name. Use it for .git, which is a file inside worktrees and submodules.
func Entry(name string) Marker { return entryMarker(name) }

// DefaultMarkers identify the GameWatcher repository.
func DefaultMarkers() []Marker {
	return []Marker{File("GameWatcher.sln"), Entry(".git")}
}

// Find walks upward from start, returning the first directory matched by any
// marker. The filesystem root itself is checked before giving up.
func Find(start string, markers ...Marker) (string, error) {
	if len(markers) == 0 {
		markers = DefaultMarkers()
	}
	current, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start path %q: %w", start, err)
	}
	if info, err := os.Stat(current); err == nil && !info.IsDir() {
		current = filepath.Dir(current)
	}

	for {
		for _, marker := range markers {
			if marker.Match(current) {
				return current, nil
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w: no %v above %s", ErrNotFound, markers, start)
		}
		current = parent
	}
}
