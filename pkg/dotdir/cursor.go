package dotdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	cursorFile = "cursor.json"
)

// CursorState represents the persisted cursor: the node the user last
// selected as the anchor for graph operations. The state is stored as a
// JSON file in the .loom/ directory.
type CursorState struct {
	// ID is the identifier of the selected node.
	ID string `json:"id"`
}

// LoadCursorState loads the cursor state from a target .loom/cursor.json.
// Returns nil, nil if no cursor state exists.
// If overrideDir is non-empty, it is used instead of the default .loom/ location.
func (m *Manager) LoadCursorState(overrideDir string) (*CursorState, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, nil
	}

	path := filepath.Join(dir, cursorFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cursor state: %w", err)
	}

	state := &CursorState{}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing cursor state: %w", err)
	}

	return state, nil
}

// SaveCursor persists the cursor state to a target .loom/cursor.json.
func (m *Manager) SaveCursor(state *CursorState, overrideDir string) error {
	if state == nil {
		return errors.New("cannot save nil cursor state")
	}

	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}
	if dir == "" {
		return errors.New("no .loom directory resolved")
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cursor state: %w", err)
	}

	path := filepath.Join(dir, cursorFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing cursor state: %w", err)
	}

	return nil
}

// ClearCursor removes the cursor state file.
// Returns nil if the file doesn't exist (already cleared).
func (m *Manager) ClearCursor(overrideDir string) error {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}
	if dir == "" {
		return nil
	}

	path := filepath.Join(dir, cursorFile)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing cursor state: %w", err)
	}

	return nil
}
