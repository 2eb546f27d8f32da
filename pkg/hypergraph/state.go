package hypergraph

// State is the serialization contract for a hypergraph: the node mapping
// keyed by identifier plus the ordered hyperedge sequence. Round-tripping
// through State reproduces identical node content, metadata, ancestry
// shape, and hyperedge order.
//
// The canonical ancestry shape is a sequence of sequences of identifiers,
// one inner sequence per recorded lineage entry. A flat sequence of
// identifiers is not a valid ancestry encoding.
type State struct {
	Nodes map[string]NodeState `json:"nodes"`
	Edges []Edge               `json:"edges"`
}

// NodeState is the serialized form of a single node.
type NodeState struct {
	Content  any            `json:"content"`
	Metadata map[string]any `json:"metadata"`
	Ancestry [][]string     `json:"ancestry"`
}
