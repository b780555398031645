// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package netgraph

// Components returns the connected components of g. Components are ordered by
// the insertion position of their earliest node, and each component lists its
// nodes in graph insertion order, so the result is deterministic.
func Components(g *WeightedGraph) [][]string {
	visited := make(map[string]bool, g.NodeCount())
	var components [][]string

	for _, start := range g.order {
		if visited[start] {
			continue
		}
		member := make(map[string]bool)
		member[start] = true
		visited[start] = true
		queue := []string{start}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for w := range g.adj[v] {
				if visited[w] {
					continue
				}
				visited[w] = true
				member[w] = true
				queue = append(queue, w)
			}
		}

		component := make([]string, 0, len(member))
		for _, id := range g.order {
			if member[id] {
				component = append(component, id)
			}
		}
		components = append(components, component)
	}
	return components
}

// LargestComponent returns the node set of the biggest component. Ties keep
// the component whose earliest node was inserted first. An empty graph yields
// an empty slice.
func LargestComponent(g *WeightedGraph) []string {
	var largest []string
	for _, c := range Components(g) {
		if len(c) > len(largest) {
			largest = c
		}
	}
	return largest
}
