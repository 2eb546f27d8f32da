// Package sqlite implements pkg/snapshot's Store using SQLite as the
// storage backend.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/papercomputeco/loom/pkg/hypergraph"
	"github.com/papercomputeco/loom/pkg/snapshot"
)

func init() {
	snapshot.Register("sqlite", func(ctx context.Context, opts snapshot.Options) (snapshot.Store, error) {
		return New(opts.SQLitePath)
	})
}

// Store persists one snapshot in a SQLite database.
type Store struct {
	db *sql.DB
}

// New creates a SQLite-backed snapshot store.
// The dbPath can be a file path or ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate creates the necessary tables if they don't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS nodes (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		metadata TEXT NOT NULL,
		ancestry TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS edges (
		position INTEGER PRIMARY KEY,
		members TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the stored snapshot with the given state inside one
// transaction.
func (s *Store) Save(ctx context.Context, state *hypergraph.State) error {
	if state == nil {
		return fmt.Errorf("cannot save nil state")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return fmt.Errorf("failed to clear nodes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM edges`); err != nil {
		return fmt.Errorf("failed to clear edges: %w", err)
	}

	for id, node := range state.Nodes {
		content, err := json.Marshal(node.Content)
		if err != nil {
			return fmt.Errorf("failed to marshal content for node %s: %w", id, err)
		}
		metadata, err := json.Marshal(node.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata for node %s: %w", id, err)
		}
		ancestry, err := json.Marshal(node.Ancestry)
		if err != nil {
			return fmt.Errorf("failed to marshal ancestry for node %s: %w", id, err)
		}

		query := `INSERT INTO nodes (id, content, metadata, ancestry) VALUES (?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, query, id, string(content), string(metadata), string(ancestry)); err != nil {
			return fmt.Errorf("failed to insert node %s: %w", id, err)
		}
	}

	// The position column pins the hyperedge sequence order.
	for i, edge := range state.Edges {
		members, err := json.Marshal(edge)
		if err != nil {
			return fmt.Errorf("failed to marshal edge %d: %w", i, err)
		}

		query := `INSERT INTO edges (position, members) VALUES (?, ?)`
		if _, err := tx.ExecContext(ctx, query, i, string(members)); err != nil {
			return fmt.Errorf("failed to insert edge %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Load returns the stored snapshot, or snapshot.ErrEmpty when no nodes have
// been saved.
func (s *Store) Load(ctx context.Context) (*hypergraph.State, error) {
	state := &hypergraph.State{
		Nodes: make(map[string]hypergraph.NodeState),
		Edges: []hypergraph.Edge{},
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, content, metadata, ancestry FROM nodes`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, content, metadata, ancestry string
		if err := rows.Scan(&id, &content, &metadata, &ancestry); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}

		var node hypergraph.NodeState
		if err := json.Unmarshal([]byte(content), &node.Content); err != nil {
			return nil, fmt.Errorf("failed to unmarshal content for node %s: %w", id, err)
		}
		if err := json.Unmarshal([]byte(metadata), &node.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata for node %s: %w", id, err)
		}
		if err := json.Unmarshal([]byte(ancestry), &node.Ancestry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ancestry for node %s: %w", id, err)
		}

		state.Nodes[id] = node
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate nodes: %w", err)
	}

	if len(state.Nodes) == 0 {
		return nil, snapshot.ErrEmpty
	}

	edgeRows, err := s.db.QueryContext(ctx, `SELECT members FROM edges ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var members string
		if err := edgeRows.Scan(&members); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}

		var edge hypergraph.Edge
		if err := json.Unmarshal([]byte(members), &edge); err != nil {
			return nil, fmt.Errorf("failed to unmarshal edge: %w", err)
		}
		state.Edges = append(state.Edges, edge)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate edges: %w", err)
	}

	return state, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure Store implements snapshot.Store
var _ snapshot.Store = (*Store)(nil)
