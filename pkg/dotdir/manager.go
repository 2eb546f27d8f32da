// Package dotdir manages the .loom/ and ~/.loom directories.
//
// The dot directory holds the persistent configuration and the cursor
// state. Resolution prefers an explicit override, then a project-local
// .loom/ directory, then the home directory.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirName is the name of the loom directory.
	dirName = ".loom"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .loom/ directory.
// Order of precedence is as follows:
//  1. Provided override (created if missing)
//  2. Local ./.loom/ dir
//  3. Home ~/.loom/ dir
//
// Returns an empty string when no override is given and neither the local
// nor the home directory exists; callers fall back to defaults in that
// case.
func (m *Manager) Target(overrideDir string) (string, error) {
	if overrideDir != "" {
		if err := os.MkdirAll(overrideDir, 0o755); err != nil {
			return "", fmt.Errorf("creating loom directory %s: %w", overrideDir, err)
		}
		return filepath.Abs(overrideDir)
	}

	if m.localDirExists() {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return filepath.Abs(filepath.Join(cwd, dirName))
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	dir := filepath.Join(home, dirName)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", nil
	}

	return filepath.Abs(dir)
}

// localDirExists checks whether a .loom/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, dirName))
	return err == nil && info.IsDir()
}
