package hypergraph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Edge is an ordered hyperedge: a sequence of at least two node identifiers
// recording one lineage segment from an originating node to a descendant,
// possibly skipping intermediate materialized nodes. Edges are stored and
// removed by value, not identity.
type Edge []string

// Equal reports value equality of two hyperedges.
func (e Edge) Equal(other Edge) bool {
	return slices.Equal(e, other)
}

// Graph is the base directed hypergraph. It owns the node mapping
// (identifier to Node) and the ordered hyperedge sequence, and provides the
// structural algorithms common to all modalities: mutation, traversal,
// cycle detection, and the refactor pass.
//
// Content-aware operations (Merge, Split, ContentLineage, JointBoundaries,
// State, Restore) are contract placeholders here and return
// ErrNotImplemented; a content specialization supplies them.
//
// Graph is not safe for concurrent use; callers serialize access.
type Graph struct {
	nodes map[string]*Node
	edges []Edge

	// order preserves identifier insertion order so traversal results and
	// tie-breaks are deterministic.
	order []string

	// byContent indexes identifiers by content key. It is the equality key
	// of the dual-key model: merge/dedup logic reads it, ownership never
	// does.
	byContent map[string][]string
}

// Option configures a Graph created with New.
type Option func(*Graph)

// WithRoot seeds the graph with a single nil-content root node.
func WithRoot() Option {
	return func(g *Graph) {
		g.AddNode(NewNode(nil))
	}
}

// New creates an empty directed hypergraph.
func New(opts ...Option) *Graph {
	g := &Graph{
		nodes:     make(map[string]*Node),
		edges:     []Edge{},
		byContent: make(map[string][]string),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Edges returns a copy of the stored hyperedge sequence in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = slices.Clone(e)
	}
	return out
}

// IDs returns all node identifiers in insertion order.
func (g *Graph) IDs() []string {
	return slices.Clone(g.order)
}

// AddNode stores the node unchanged under a fresh identifier and returns
// the identifier. Identifiers are unique and never reused. No deduplication
// happens at this layer.
func (g *Graph) AddNode(node *Node) string {
	id := uuid.NewString()
	g.nodes[id] = node
	g.order = append(g.order, id)

	key := node.ContentKey()
	g.byContent[key] = append(g.byContent[key], id)

	return id
}

// Node returns the node stored under id.
func (g *Graph) Node(id string) (*Node, error) {
	node, ok := g.nodes[id]
	if !ok {
		return nil, NotFoundError{ID: id}
	}

	return node, nil
}

// Nodes resolves a sequence of identifiers to their nodes.
func (g *Graph) Nodes(ids []string) ([]*Node, error) {
	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		node, err := g.Node(id)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

// Contents resolves a sequence of identifiers to their node contents.
func (g *Graph) Contents(ids []string) ([]any, error) {
	nodes, err := g.Nodes(ids)
	if err != nil {
		return nil, err
	}

	contents := make([]any, len(nodes))
	for i, node := range nodes {
		contents[i] = node.Content
	}

	return contents, nil
}

// NodeID finds the identifier of a stored node that is value-equal to the
// given node (same content, same ancestry). Returns false if no stored node
// matches.
func (g *Graph) NodeID(node *Node) (string, bool) {
	for _, id := range g.byContent[node.ContentKey()] {
		if g.nodes[id].Equal(node) {
			return id, true
		}
	}

	return "", false
}

// AddEdge appends the hyperedge to the edge sequence and populates the
// ancestry caches it implies: for every position i in 1..len(edge)-1, the
// node at edge[i] gains the entry reverse(edge[0..i]). This is the single
// mechanism by which ancestry caches are populated, applied uniformly to
// interior and tail positions, so interior nodes of a long hyperedge gain
// "jump" ancestries without gaining materialized parent/child pairs.
func (g *Graph) AddEdge(edge Edge) error {
	if len(edge) < 2 {
		return errors.New("hyperedge needs at least two node identifiers")
	}

	// The edge is stored before the ancestry caches are touched. A missing
	// identifier fails partway with the edge already appended; there is no
	// rollback, the caller owns consistency after a failure.
	g.edges = append(g.edges, slices.Clone(edge))

	for i := 1; i < len(edge); i++ {
		node, err := g.Node(edge[i])
		if err != nil {
			return fmt.Errorf("adding hyperedge: %w", err)
		}

		entry := make([]string, i)
		for j := 0; j < i; j++ {
			entry[j] = edge[i-1-j]
		}
		node.Ancestry = append(node.Ancestry, entry)
	}

	return nil
}

// RemoveEdge removes one value-equal occurrence of the hyperedge from the
// edge sequence (no-op if absent), then clears the entire ancestry cache of
// every node at a non-head position of the edge.
//
// The full clear is deliberate: if a node's ancestry was populated by more
// than one hyperedge, removing any one of them discards all of them, and it
// is the caller's job to re-add the hyperedges that should survive.
func (g *Graph) RemoveEdge(edge Edge) {
	for i, stored := range g.edges {
		if stored.Equal(edge) {
			g.edges = slices.Delete(g.edges, i, i+1)
			break
		}
	}

	for _, id := range edge[1:] {
		if node, ok := g.nodes[id]; ok {
			node.Ancestry = [][]string{}
		}
	}
}

// RemoveNode deletes the node and cascades: every hyperedge referencing the
// identifier at any position is removed via RemoveEdge, inheriting its
// ancestry-clearing behavior. No-op if the identifier is unknown.
func (g *Graph) RemoveNode(id string) {
	node, ok := g.nodes[id]
	if !ok {
		return
	}

	delete(g.nodes, id)
	if i := slices.Index(g.order, id); i >= 0 {
		g.order = slices.Delete(g.order, i, i+1)
	}
	g.dropContentKey(node.ContentKey(), id)

	var doomed []Edge
	for _, edge := range g.edges {
		if slices.Contains(edge, id) {
			doomed = append(doomed, edge)
		}
	}
	for _, edge := range doomed {
		g.RemoveEdge(edge)
	}
}

// Roots returns every identifier whose ancestry cache is empty, in
// insertion order.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.order {
		if len(g.nodes[id].Ancestry) == 0 {
			roots = append(roots, id)
		}
	}

	return roots
}

// Children returns the materialized children of id: every edge[1] across
// stored hyperedges with edge[0] == id. Interior nodes of longer hyperedges
// are deliberately not exposed here; a hyperedge of length >2 encodes a
// virtual skip lineage for its interior and tail nodes unless separate
// length-2 hyperedges are also registered.
func (g *Graph) Children(id string) []string {
	var children []string
	for _, edge := range g.edges {
		if edge[0] == id {
			children = append(children, edge[1])
		}
	}

	return children
}

// CheckForCycles walks depth-first from every root following the
// materialized children relation, flagging a cycle when a node repeats on
// the current path. A graph with nodes but zero roots is reported as cyclic:
// every node carrying ancestry means no entry point exists, so the graph is
// cyclic or malformed. The empty graph also reports true.
func (g *Graph) CheckForCycles() bool {
	roots := g.Roots()
	for _, root := range roots {
		if g.cycleFrom(root, make(map[string]bool)) {
			return true
		}
	}

	return len(roots) == 0
}

func (g *Graph) cycleFrom(id string, onPath map[string]bool) bool {
	if onPath[id] {
		return true
	}

	onPath[id] = true
	for _, child := range g.Children(id) {
		if g.cycleFrom(child, onPath) {
			return true
		}
	}
	delete(onPath, id)

	return false
}

func (g *Graph) dropContentKey(key, id string) {
	ids := g.byContent[key]
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	}

	if len(ids) == 0 {
		delete(g.byContent, key)
		return
	}
	g.byContent[key] = ids
}
