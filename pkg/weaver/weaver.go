// Package weaver defines the modality extension surface over the
// hypergraph.
//
// An Operator is the six-operation capability interface that higher-level,
// modality-specific implementations supply: each operation takes an opaque
// payload, reads or mutates the owned graph, and usually consults a
// simulator for new content. The base [Weaver] owns the graph and the
// simulator but implements none of the six operations itself; every method
// signals hypergraph.ErrNotImplemented until a specialization overrides it.
package weaver

import (
	"context"
	"fmt"

	"github.com/papercomputeco/loom/pkg/hypergraph"
	"github.com/papercomputeco/loom/pkg/simulator"
)

// Operator is the six-operation modality interface. Payloads and results
// are opaque to the graph core; their shape is a contract between a
// specialization and its callers.
type Operator interface {
	// Noise perturbs existing content.
	Noise(ctx context.Context, payload any) (any, error)

	// Denoise refines content toward a cleaner form.
	Denoise(ctx context.Context, payload any) (any, error)

	// Expand grows content outward from an existing node.
	Expand(ctx context.Context, payload any) (any, error)

	// Contract condenses a region of the graph.
	Contract(ctx context.Context, payload any) (any, error)

	// Insert introduces new content at a position.
	Insert(ctx context.Context, payload any) (any, error)

	// Delete removes content at a position.
	Delete(ctx context.Context, payload any) (any, error)
}

// Weaver is the base operator: it carries the graph and the simulator a
// specialization works against, and nothing else. All six operations are
// contract placeholders.
type Weaver struct {
	graph     *hypergraph.TextGraph
	simulator simulator.Driver
}

// Option configures a Weaver created with New.
type Option func(*Weaver)

// WithGraph sets the graph the weaver operates on. Without it the weaver
// starts from a fresh rooted graph.
func WithGraph(g *hypergraph.TextGraph) Option {
	return func(w *Weaver) {
		w.graph = g
	}
}

// WithSimulator sets the content source consulted by simulator-driven
// operations.
func WithSimulator(d simulator.Driver) Option {
	return func(w *Weaver) {
		w.simulator = d
	}
}

// New creates a base weaver. By default it owns a fresh graph seeded with a
// nil-content root and no simulator.
func New(opts ...Option) *Weaver {
	w := &Weaver{
		graph: hypergraph.NewTextGraph(hypergraph.WithRoot()),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Graph returns the graph the weaver operates on.
func (w *Weaver) Graph() *hypergraph.TextGraph {
	return w.graph
}

// Simulator returns the configured content source, or nil.
func (w *Weaver) Simulator() simulator.Driver {
	return w.simulator
}

// Noise signals hypergraph.ErrNotImplemented.
func (w *Weaver) Noise(ctx context.Context, payload any) (any, error) {
	return nil, fmt.Errorf("noise: %w", hypergraph.ErrNotImplemented)
}

// Denoise signals hypergraph.ErrNotImplemented.
func (w *Weaver) Denoise(ctx context.Context, payload any) (any, error) {
	return nil, fmt.Errorf("denoise: %w", hypergraph.ErrNotImplemented)
}

// Expand signals hypergraph.ErrNotImplemented.
func (w *Weaver) Expand(ctx context.Context, payload any) (any, error) {
	return nil, fmt.Errorf("expand: %w", hypergraph.ErrNotImplemented)
}

// Contract signals hypergraph.ErrNotImplemented.
func (w *Weaver) Contract(ctx context.Context, payload any) (any, error) {
	return nil, fmt.Errorf("contract: %w", hypergraph.ErrNotImplemented)
}

// Insert signals hypergraph.ErrNotImplemented.
func (w *Weaver) Insert(ctx context.Context, payload any) (any, error) {
	return nil, fmt.Errorf("insert: %w", hypergraph.ErrNotImplemented)
}

// Delete signals hypergraph.ErrNotImplemented.
func (w *Weaver) Delete(ctx context.Context, payload any) (any, error) {
	return nil, fmt.Errorf("delete: %w", hypergraph.ErrNotImplemented)
}

// Ensure Weaver satisfies the capability interface it anchors.
var _ Operator = (*Weaver)(nil)
