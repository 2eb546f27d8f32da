// Package hypergraph implements a directed hypergraph that records the
// branching and merging history of a probabilistic computation.
//
// Unlike a plain DAG, relationships are stored as ordered k-ary hyperedges
// (sequences of node identifiers), and every node caches, per hyperedge that
// touches it, the reversed prefix path back toward that hyperedge's
// originating node. A node can therefore carry several alternative lineages
// to its ancestors, because multiple generative paths may arrive at
// identical content.
package hypergraph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"slices"
)

// Node is a content-bearing vertex.
//
// Content is opaque at this layer; its semantics belong to the content
// specialization (see TextGraph). Ancestry is a derived cache populated by
// Graph.AddEdge: each entry is one recorded lineage from this node's
// immediate parent back toward a hyperedge's originating node, nearest
// ancestor first. A node with no ancestry entries is a root.
type Node struct {
	Content  any            `json:"content"`
	Metadata map[string]any `json:"metadata"`
	Ancestry [][]string     `json:"ancestry"`
}

// NewNode creates a node with the given content, empty metadata, and an
// empty ancestry cache.
func NewNode(content any) *Node {
	return &Node{
		Content:  content,
		Metadata: make(map[string]any),
		Ancestry: [][]string{},
	}
}

// Equal reports value equality: identical content and identical recorded
// ancestry. Two distinct identifiers can reference value-equal nodes; the
// identifier is the only stable handle for ownership and lookup.
func (n *Node) Equal(other *Node) bool {
	if other == nil {
		return false
	}
	return n.ContentKey() == other.ContentKey() && ancestryEqual(n.Ancestry, other.Ancestry)
}

// ContentKey returns the content-address for the node's content: SHA-256
// over the RFC 8785 canonical JSON encoding. The key participates only in
// content-equality checks (NodeID, Refactor); it is never a storage key.
func (n *Node) ContentKey() string {
	return contentKey(n.Content)
}

// contentKey canonicalizes the JSON encoding of content so that equal values
// hash identically regardless of map ordering. As of Go 1.25.x the jsontext
// package requires "GOEXPERIMENT=jsonv2".
func contentKey(content any) string {
	data, err := json.Marshal(content)
	if err != nil {
		panic("failed to marshal content for hashing: " + err.Error())
	}

	j := jsontext.Value(data)
	if err := j.Canonicalize(); err != nil {
		panic("failed to canonicalize content JSON: " + err.Error())
	}

	h := sha256.Sum256(j)
	return hex.EncodeToString(h[:])
}

func ancestryEqual(a, b [][]string) bool {
	return slices.EqualFunc(a, b, slices.Equal)
}

func cloneAncestry(a [][]string) [][]string {
	out := make([][]string, len(a))
	for i, entry := range a {
		out[i] = slices.Clone(entry)
	}
	return out
}
