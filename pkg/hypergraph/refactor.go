package hypergraph

// Merger merges an ordered sequence of nodes into a single replacement
// node, returning the replacement's identifier. The refactor pass depends
// on it; the content specialization supplies the concrete implementation.
type Merger interface {
	Merge(ids []string) (string, error)
}

// Refactor rewrites the graph structurally, starting from every root and
// walking depth-first: a node with a child of identical content is merged
// with that child, and a node left with exactly one child is merged with it
// regardless of content. Passes repeat until no root-reachable node has a
// mergeable child.
//
// Factoring common content out into shared parent/child nodes (full
// radix-trie style) is not part of this pass.
func (g *Graph) Refactor(m Merger) error {
	for {
		changed := false
		for _, root := range g.Roots() {
			c, err := g.refactorFrom(root, m)
			if err != nil {
				return err
			}
			changed = changed || c
		}

		if !changed {
			return nil
		}
	}
}

// refactorFrom collapses mergeable children below id, following the merged
// replacement node as merges rewrite the neighborhood, then recurses into
// the remaining children.
func (g *Graph) refactorFrom(id string, m Merger) (bool, error) {
	changed := false
	current := id

	for {
		node, err := g.Node(current)
		if err != nil {
			return changed, err
		}

		children := g.Children(current)

		merged := false
		for _, child := range children {
			childNode, err := g.Node(child)
			if err != nil {
				return changed, err
			}

			if node.ContentKey() == childNode.ContentKey() {
				next, err := m.Merge([]string{current, child})
				if err != nil {
					return changed, err
				}
				current = next
				changed, merged = true, true
				break
			}
		}
		if merged {
			continue
		}

		if len(children) == 1 {
			next, err := m.Merge([]string{current, children[0]})
			if err != nil {
				return changed, err
			}
			current = next
			changed = true
			continue
		}

		for _, child := range children {
			c, err := g.refactorFrom(child, m)
			if err != nil {
				return changed, err
			}
			changed = changed || c
		}

		return changed, nil
	}
}
