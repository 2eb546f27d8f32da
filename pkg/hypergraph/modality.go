package hypergraph

import "fmt"

// Span is a half-open [Start, End) byte range within a node's content.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Modality is the capability surface a content specialization supplies on
// top of the structural graph: merge, split, content lineage, joint
// boundary detection, and serialization. One concrete implementing type
// exists per modality; the base Graph supplies only the graph-structural
// algorithms common to all of them.
type Modality interface {
	Merger

	// Split cuts a node's content at the given boundaries, producing
	// len(boundaries)+1 nodes and re-wiring lineage around them.
	Split(id string, boundaries ...int) ([]string, error)

	// ContentLineage reconstructs the minimal chain of nodes whose
	// concatenated contents regenerate the given content, root first.
	ContentLineage(content any) ([]string, error)

	// JointBoundaries identifies maximal shared contiguous spans across
	// the contents of the given nodes, reported per node.
	JointBoundaries(ids []string) (map[string][]Span, error)

	// State exports the node mapping and hyperedge sequence; Restore is
	// its inverse.
	State() (*State, error)
	Restore(state *State) error
}

// The content-aware operations below are contract placeholders on the base
// graph. They exist so a Graph used without a specialization fails with a
// recognizable sentinel instead of silently lacking behavior.

func (g *Graph) Merge(ids []string) (string, error) {
	return "", fmt.Errorf("merge: %w", ErrNotImplemented)
}

func (g *Graph) Split(id string, boundaries ...int) ([]string, error) {
	return nil, fmt.Errorf("split: %w", ErrNotImplemented)
}

func (g *Graph) ContentLineage(content any) ([]string, error) {
	return nil, fmt.Errorf("content lineage: %w", ErrNotImplemented)
}

func (g *Graph) JointBoundaries(ids []string) (map[string][]Span, error) {
	return nil, fmt.Errorf("joint boundaries: %w", ErrNotImplemented)
}

func (g *Graph) State() (*State, error) {
	return nil, fmt.Errorf("state export: %w", ErrNotImplemented)
}

func (g *Graph) Restore(state *State) error {
	return fmt.Errorf("state restore: %w", ErrNotImplemented)
}
