// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package netgraph implements the in-memory weighted undirected graph and the
// structural analytics computed over it: connectivity, density, centrality,
// clustering, and community detection.
// Implements: prd005-analytics R1-R6; docs/ARCHITECTURE § Analytics.
package netgraph

// Edge is one undirected weighted edge. Source and Target keep the
// orientation of the first insertion.
type Edge struct {
	Source string
	Target string
	Weight int
}

// WeightedGraph is an undirected graph with string node ids, integer edge
// weights, and per-node attribute bags. Nodes and edges iterate in insertion
// order, which is the row order of every tabular export. Invariants: no
// self-loops; at most one edge per unordered pair, keeping the first-inserted
// weight; attribute values are sentinel-normalized scalars, never nil.
// Per prd003-derivation R5.3-R5.5.
type WeightedGraph struct {
	order    []string
	attrs    map[string]map[string]any
	adj      map[string]map[string]int
	edges    []Edge
	attrKeys []string
	attrSeen map[string]bool
}

// NewWeightedGraph returns an empty graph.
func NewWeightedGraph() *WeightedGraph {
	return &WeightedGraph{
		attrs:    make(map[string]map[string]any),
		adj:      make(map[string]map[string]int),
		attrSeen: make(map[string]bool),
	}
}

// AddNode registers id if not already present. Re-adding an existing node
// keeps its original insertion position and attributes.
func (g *WeightedGraph) AddNode(id string) {
	if _, ok := g.adj[id]; ok {
		return
	}
	g.order = append(g.order, id)
	g.adj[id] = make(map[string]int)
	g.attrs[id] = make(map[string]any)
}

// HasNode reports whether id is in the graph.
func (g *WeightedGraph) HasNode(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// SetNodeAttr sets one attribute on an existing node. Attribute keys are
// registered in first-seen order across the whole graph; that order defines
// export column order. Unknown nodes are ignored.
func (g *WeightedGraph) SetNodeAttr(id, key string, value any) {
	bag, ok := g.attrs[id]
	if !ok {
		return
	}
	bag[key] = value
	if !g.attrSeen[key] {
		g.attrSeen[key] = true
		g.attrKeys = append(g.attrKeys, key)
	}
}

// NodeAttr returns one attribute value and whether it is set.
func (g *WeightedGraph) NodeAttr(id, key string) (any, bool) {
	bag, ok := g.attrs[id]
	if !ok {
		return nil, false
	}
	v, ok := bag[key]
	return v, ok
}

// NodeAttrKeys returns the union of attribute keys over all nodes, in
// first-seen order.
func (g *WeightedGraph) NodeAttrKeys() []string {
	keys := make([]string, len(g.attrKeys))
	copy(keys, g.attrKeys)
	return keys
}

// AddEdge inserts the undirected edge (u, v) with the given weight. Self-loops
// are rejected. If the unordered pair already has an edge the first weight is
// kept; weights are never summed across repeated insertions. Both endpoints
// must already be nodes; unknown endpoints are added implicitly without
// attributes.
func (g *WeightedGraph) AddEdge(u, v string, weight int) {
	if u == v {
		return
	}
	g.AddNode(u)
	g.AddNode(v)
	if _, ok := g.adj[u][v]; ok {
		return
	}
	g.adj[u][v] = weight
	g.adj[v][u] = weight
	g.edges = append(g.edges, Edge{Source: u, Target: v, Weight: weight})
}

// Weight returns the edge weight for the unordered pair and whether the edge
// exists.
func (g *WeightedGraph) Weight(u, v string) (int, bool) {
	w, ok := g.adj[u][v]
	return w, ok
}

// HasEdge reports whether the unordered pair has an edge.
func (g *WeightedGraph) HasEdge(u, v string) bool {
	_, ok := g.adj[u][v]
	return ok
}

// NodeCount returns the number of nodes.
func (g *WeightedGraph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *WeightedGraph) EdgeCount() int { return len(g.edges) }

// Nodes returns all node ids in insertion order.
func (g *WeightedGraph) Nodes() []string {
	nodes := make([]string, len(g.order))
	copy(nodes, g.order)
	return nodes
}

// Edges returns all edges in insertion order.
func (g *WeightedGraph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// Degree returns the number of neighbors of id.
func (g *WeightedGraph) Degree(id string) int {
	return len(g.adj[id])
}

// WeightedDegree returns the sum of incident edge weights of id.
func (g *WeightedGraph) WeightedDegree(id string) float64 {
	var sum float64
	for _, w := range g.adj[id] {
		sum += float64(w)
	}
	return sum
}

// TotalWeight returns the sum of all edge weights.
func (g *WeightedGraph) TotalWeight() float64 {
	var sum float64
	for _, e := range g.edges {
		sum += float64(e.Weight)
	}
	return sum
}

// Neighbors returns the neighbor ids of id. The slice order is unspecified;
// callers needing determinism must sort.
func (g *WeightedGraph) Neighbors(id string) []string {
	nbrs := make([]string, 0, len(g.adj[id]))
	for n := range g.adj[id] {
		nbrs = append(nbrs, n)
	}
	return nbrs
}

// Subgraph returns the induced subgraph over the given node set. Node and
// edge insertion order follow the parent graph, so exports of a subgraph stay
// deterministic.
func (g *WeightedGraph) Subgraph(nodes []string) *WeightedGraph {
	member := make(map[string]bool, len(nodes))
	for _, id := range nodes {
		member[id] = true
	}

	sub := NewWeightedGraph()
	for _, id := range g.order {
		if !member[id] {
			continue
		}
		sub.AddNode(id)
		for _, key := range g.attrKeys {
			if v, ok := g.attrs[id][key]; ok {
				sub.SetNodeAttr(id, key, v)
			}
		}
	}
	for _, e := range g.edges {
		if member[e.Source] && member[e.Target] {
			sub.AddEdge(e.Source, e.Target, e.Weight)
		}
	}
	return sub
}
