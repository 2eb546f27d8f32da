package hypergraph

// Ancestry enumerates every full lineage from the node back to a root,
// node-first and root-last, reachable through any recorded ancestry entry.
// A root enumerates as a single one-element lineage. Multiple ancestry
// entries on one node (a merge point) multiply the number of returned
// lineages, so the recursion is memoized per identifier: each node's
// tail set is computed once no matter how many lineages fan out through it.
func (g *Graph) Ancestry(id string) ([][]string, error) {
	node, err := g.Node(id)
	if err != nil {
		return nil, err
	}

	if len(node.Ancestry) == 0 {
		return [][]string{{id}}, nil
	}

	tails, err := g.ancestryTails(id, make(map[string][][]string))
	if err != nil {
		return nil, err
	}

	lineages := make([][]string, 0, len(tails))
	for _, tail := range tails {
		lineage := make([]string, 0, len(tail)+1)
		lineage = append(lineage, id)
		lineage = append(lineage, tail...)
		lineages = append(lineages, lineage)
	}

	return lineages, nil
}

// ancestryTails returns every path from id's immediate parents back to a
// root, excluding id itself. For each recorded ancestry entry the entry's
// farthest node is expanded recursively and the entry is prefixed onto each
// of its tails.
func (g *Graph) ancestryTails(id string, memo map[string][][]string) ([][]string, error) {
	if tails, ok := memo[id]; ok {
		return tails, nil
	}

	node, err := g.Node(id)
	if err != nil {
		return nil, err
	}

	if len(node.Ancestry) == 0 {
		memo[id] = [][]string{{}}
		return memo[id], nil
	}

	var tails [][]string
	for _, entry := range node.Ancestry {
		farthest := entry[len(entry)-1]
		sub, err := g.ancestryTails(farthest, memo)
		if err != nil {
			return nil, err
		}

		for _, tail := range sub {
			joined := make([]string, 0, len(entry)+len(tail))
			joined = append(joined, entry...)
			joined = append(joined, tail...)
			tails = append(tails, joined)
		}
	}

	memo[id] = tails
	return tails, nil
}

// CommonAncestor finds the last common ancestor of a set of nodes,
// excluding the queried nodes themselves.
//
// For each queried node the identifiers appearing across all of its
// lineages are unioned; the unions are intersected across the queried
// nodes. Among the surviving candidates the one with the most ancestry
// cache entries wins, a depth heuristic rather than a true graph distance,
// with ties broken by insertion order. Returns false when the intersection
// is empty.
func (g *Graph) CommonAncestor(ids []string) (string, bool, error) {
	var common map[string]bool
	for _, id := range ids {
		lineages, err := g.Ancestry(id)
		if err != nil {
			return "", false, err
		}

		seen := make(map[string]bool)
		for _, lineage := range lineages {
			for _, ancestor := range lineage {
				seen[ancestor] = true
			}
		}

		if common == nil {
			common = seen
			continue
		}
		for candidate := range common {
			if !seen[candidate] {
				delete(common, candidate)
			}
		}
	}

	for _, id := range ids {
		delete(common, id)
	}

	best := ""
	bestDepth := -1
	for _, id := range g.order {
		if !common[id] {
			continue
		}
		if depth := len(g.nodes[id].Ancestry); depth > bestDepth {
			best = id
			bestDepth = depth
		}
	}

	if best == "" {
		return "", false, nil
	}

	return best, true, nil
}
