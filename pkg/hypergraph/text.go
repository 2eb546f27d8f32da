package hypergraph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
)

// TextGraph is the ordered-sequence content specialization: node contents
// are strings, merge is concatenation, split is slicing at byte offsets,
// and content lineage is substring matching over concatenated ancestries.
type TextGraph struct {
	*Graph
}

var _ Modality = (*TextGraph)(nil)

// NewTextGraph creates an empty text-content hypergraph.
func NewTextGraph(opts ...Option) *TextGraph {
	return &TextGraph{Graph: New(opts...)}
}

// Refactor runs the structural rewrite pass using this specialization's
// merge as the collapse operation.
func (g *TextGraph) Refactor() error {
	return g.Graph.Refactor(g)
}

// text resolves a node's content to a string. Nil content (the seeded
// root) reads as the empty string, the concatenation identity; any other
// non-string content is an error.
func (g *TextGraph) text(id string) (string, error) {
	node, err := g.Node(id)
	if err != nil {
		return "", err
	}

	switch content := node.Content.(type) {
	case nil:
		return "", nil
	case string:
		return content, nil
	default:
		return "", fmt.Errorf("node %s does not hold text content (%T)", id, node.Content)
	}
}

// Merge concatenates the contents of the given nodes, in the given order,
// into one new node with empty metadata and empty ancestry, then removes
// every input node along with its incident hyperedges. The merged node's
// lineage is not reconstructed from the removed nodes; callers needing
// lineage continuity re-add hyperedges explicitly.
func (g *TextGraph) Merge(ids []string) (string, error) {
	var sb strings.Builder
	for _, id := range ids {
		content, err := g.text(id)
		if err != nil {
			return "", err
		}
		sb.WriteString(content)
	}

	mergedID := g.AddNode(NewNode(sb.String()))
	for _, id := range ids {
		g.RemoveNode(id)
	}

	return mergedID, nil
}

// Split cuts the node's content at the given byte offsets, producing
// len(boundaries)+1 new nodes holding the contiguous slices in order.
//
// Lineage re-wiring: every recorded ancestry entry of the original node is
// re-added as a hyperedge from that entry's originating path to the first
// piece; consecutive pieces are linked pairwise; former children are
// re-parented under the last piece. The original node is removed last. The
// new identifiers are returned in content order.
func (g *TextGraph) Split(id string, boundaries ...int) ([]string, error) {
	node, err := g.Node(id)
	if err != nil {
		return nil, err
	}

	content, err := g.text(id)
	if err != nil {
		return nil, err
	}

	if len(boundaries) == 0 {
		return nil, errors.New("split needs at least one boundary offset")
	}

	cuts := slices.Clone(boundaries)
	slices.Sort(cuts)
	if cuts[0] < 0 || cuts[len(cuts)-1] > len(content) {
		return nil, fmt.Errorf("split boundary out of range for content of length %d", len(content))
	}

	pieces := make([]string, 0, len(cuts)+1)
	start := 0
	for _, end := range cuts {
		pieces = append(pieces, content[start:end])
		start = end
	}
	pieces = append(pieces, content[start:])

	ids := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		ids = append(ids, g.AddNode(NewNode(piece)))
	}

	// Each ancestry entry reads nearest-ancestor-first; reversing it
	// yields the originating path, which now terminates at the first
	// piece.
	for _, entry := range node.Ancestry {
		edge := make(Edge, 0, len(entry)+1)
		for i := len(entry) - 1; i >= 0; i-- {
			edge = append(edge, entry[i])
		}
		edge = append(edge, ids[0])
		if err := g.AddEdge(edge); err != nil {
			return nil, err
		}
	}

	for i := 0; i < len(ids)-1; i++ {
		if err := g.AddEdge(Edge{ids[i], ids[i+1]}); err != nil {
			return nil, err
		}
	}

	for _, child := range g.Children(id) {
		if err := g.AddEdge(Edge{ids[len(ids)-1], child}); err != nil {
			return nil, err
		}
	}

	g.RemoveNode(id)

	return ids, nil
}

// ContentLineage reconstructs the minimal chain of nodes whose concatenated
// contents regenerate the given content: it finds a node whose content is a
// suffix of the target, then searches that node's lineages for one whose
// contents, concatenated root-to-node, form a contiguous run inside the
// target. The first matching lineage is returned in root-to-node order; an
// empty sequence means no lineage matches.
func (g *TextGraph) ContentLineage(content any) ([]string, error) {
	target, ok := content.(string)
	if !ok {
		return nil, fmt.Errorf("content lineage needs text content (%T)", content)
	}

	for _, id := range g.order {
		// The seeded nil-content root matches any suffix vacuously and is
		// skipped as an anchor.
		if g.nodes[id].Content == nil {
			continue
		}

		text, err := g.text(id)
		if err != nil {
			return nil, err
		}
		if !strings.HasSuffix(target, text) {
			continue
		}

		lineages, err := g.Ancestry(id)
		if err != nil {
			return nil, err
		}

		for _, lineage := range lineages {
			rooted := slices.Clone(lineage)
			slices.Reverse(rooted)

			var sb strings.Builder
			for _, ancestor := range rooted {
				part, err := g.text(ancestor)
				if err != nil {
					return nil, err
				}
				sb.WriteString(part)
			}

			if strings.Contains(target, sb.String()) {
				return rooted, nil
			}
		}
	}

	return []string{}, nil
}

// JointBoundaries identifies the maximal shared contiguous spans across the
// contents of the given nodes, reported per node as half-open byte ranges.
// The shared runs may sit at different offsets in each node, e.g.:
//
//	"The quick brown fox jumps over the lazy dog."  -> [(0, 10), (24, 35)]
//	"The quick red car drives over the speedbump."  -> [(0, 10), (23, 34)]
//
// Only this contract is pinned down. The detection itself is a
// multi-sequence common-substring problem with no implemented algorithm
// yet; callers currently receive an empty span map.
//
// TODO: implement shared-span detection (suffix-automaton intersection is
// the leading candidate).
func (g *TextGraph) JointBoundaries(ids []string) (map[string][]Span, error) {
	for _, id := range ids {
		if _, err := g.text(id); err != nil {
			return nil, err
		}
	}

	return make(map[string][]Span), nil
}

// State exports the node mapping and hyperedge sequence in the canonical
// serialization shape.
func (g *TextGraph) State() (*State, error) {
	state := &State{
		Nodes: make(map[string]NodeState, len(g.nodes)),
		Edges: make([]Edge, 0, len(g.edges)),
	}

	for _, id := range g.order {
		node := g.nodes[id]
		state.Nodes[id] = NodeState{
			Content:  node.Content,
			Metadata: maps.Clone(node.Metadata),
			Ancestry: cloneAncestry(node.Ancestry),
		}
	}

	for _, edge := range g.edges {
		state.Edges = append(state.Edges, slices.Clone(edge))
	}

	return state, nil
}

// Restore replaces the graph's nodes and hyperedges with the given state.
// Node identifiers are adopted as-is; iteration order over restored nodes
// is their sorted identifier order, since the serialized mapping carries no
// insertion order of its own.
func (g *TextGraph) Restore(state *State) error {
	if state == nil {
		return errors.New("cannot restore nil state")
	}

	g.nodes = make(map[string]*Node, len(state.Nodes))
	g.order = make([]string, 0, len(state.Nodes))
	g.byContent = make(map[string][]string)
	g.edges = make([]Edge, 0, len(state.Edges))

	ids := make([]string, 0, len(state.Nodes))
	for id := range state.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ns := state.Nodes[id]

		node := &Node{
			Content:  ns.Content,
			Metadata: maps.Clone(ns.Metadata),
			Ancestry: cloneAncestry(ns.Ancestry),
		}
		if node.Metadata == nil {
			node.Metadata = make(map[string]any)
		}
		if node.Ancestry == nil {
			node.Ancestry = [][]string{}
		}

		g.nodes[id] = node
		g.order = append(g.order, id)

		key := node.ContentKey()
		g.byContent[key] = append(g.byContent[key], id)
	}

	for _, edge := range state.Edges {
		g.edges = append(g.edges, slices.Clone(edge))
	}

	return nil
}
