// Package snapshot provides pluggable persistence for the hypergraph's
// serialized state.
//
// A snapshot is the canonical serialization shape written and read whole:
// there is no incremental update, no durability guarantee beyond a faithful
// round-trip, and no concurrent-access support. Drivers are pluggable via
// configuration:
//
//	[storage]
//	driver = "sqlite"   # or "json", "postgres"
package snapshot

import (
	"context"
	"errors"

	"github.com/papercomputeco/loom/pkg/hypergraph"
)

// ErrEmpty indicates the store holds no snapshot yet.
var ErrEmpty = errors.New("snapshot store is empty")

// Store persists and recalls one graph state.
type Store interface {
	// Save replaces the stored snapshot with the given state.
	Save(ctx context.Context, state *hypergraph.State) error

	// Load returns the stored snapshot, or ErrEmpty when nothing has been
	// saved yet.
	Load(ctx context.Context) (*hypergraph.State, error)

	// Close releases driver resources.
	Close() error
}
