// Package jsonfile implements pkg/snapshot's Store as a single JSON
// document on disk, in exactly the canonical serialization shape.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/papercomputeco/loom/pkg/hypergraph"
	"github.com/papercomputeco/loom/pkg/snapshot"
)

func init() {
	snapshot.Register("json", func(ctx context.Context, opts snapshot.Options) (snapshot.Store, error) {
		return New(opts.JSONPath)
	})
}

// Store reads and writes one snapshot file.
type Store struct {
	path string
}

// New creates a JSON-file snapshot store at the given path. The file is not
// created until the first Save.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("jsonfile store needs a path")
	}

	return &Store{path: path}, nil
}

// Save writes the state to the file, creating parent directories as needed.
// The write goes through a temp file and rename so a crash mid-write never
// leaves a torn snapshot behind.
func (s *Store) Save(ctx context.Context, state *hypergraph.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	return nil
}

// Load reads the snapshot file back into the canonical shape.
func (s *Store) Load(ctx context.Context) (*hypergraph.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, snapshot.ErrEmpty
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var state hypergraph.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	return &state, nil
}

// Close releases store resources.
func (s *Store) Close() error {
	return nil
}

// Ensure Store implements snapshot.Store
var _ snapshot.Store = (*Store)(nil)
