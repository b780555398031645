// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package netgraph

import (
	"log/slog"

	"github.com/pdiddy/citegraph/pkg/types"
)

// BetweennessNodeLimit is the largest-component size at which betweenness
// centrality is skipped. Betweenness is O(V*E); above this size it is omitted
// entirely, never approximated. Per prd005-analytics R3.3.
const BetweennessNodeLimit = 1000

// CalculateMetrics computes the structural statistics of g. A zero-node graph
// short-circuits before any component or centrality work and reports only
// zero counts and density. Per prd005-analytics R1-R4.
func CalculateMetrics(g *WeightedGraph, logger *slog.Logger) *types.NetworkMetrics {
	if logger == nil {
		logger = slog.Default()
	}

	m := &types.NetworkMetrics{
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
	}
	if g.NodeCount() == 0 {
		return m
	}

	m.Density = Density(g)

	components := Components(g)
	m.ConnectedComponents = len(components)
	largest := components[0]
	for _, c := range components[1:] {
		if len(c) > len(largest) {
			largest = c
		}
	}
	m.LargestComponentSize = len(largest)

	sub := g.Subgraph(largest)

	degree := DegreeCentrality(sub)
	m.MaxDegreeCentrality, m.AvgDegreeCentrality = maxAvg(degree)

	if sub.NodeCount() < BetweennessNodeLimit {
		betweenness := BetweennessCentrality(sub)
		maxB, avgB := maxAvg(betweenness)
		m.MaxBetweennessCentrality = &maxB
		m.AvgBetweennessCentrality = &avgB
	} else {
		logger.Info("skipping betweenness centrality",
			"largest_component_size", sub.NodeCount(),
			"limit", BetweennessNodeLimit)
	}

	m.AvgClusteringCoefficient = AverageClustering(sub)
	return m
}

// Density returns E / (V*(V-1)/2) for an undirected simple graph, 0 when the
// graph has fewer than two nodes.
func Density(g *WeightedGraph) float64 {
	n := g.NodeCount()
	if n < 2 {
		return 0
	}
	return 2 * float64(g.EdgeCount()) / (float64(n) * float64(n-1))
}

// DegreeCentrality returns degree / (n-1) per node. Graphs with fewer than
// two nodes report 0 for every node.
func DegreeCentrality(g *WeightedGraph) map[string]float64 {
	n := g.NodeCount()
	centrality := make(map[string]float64, n)
	if n < 2 {
		for _, id := range g.order {
			centrality[id] = 0
		}
		return centrality
	}
	scale := 1 / float64(n-1)
	for _, id := range g.order {
		centrality[id] = float64(g.Degree(id)) * scale
	}
	return centrality
}

// BetweennessCentrality returns normalized shortest-path betweenness per node
// (Brandes, unweighted paths). Normalization divides by (n-1)*(n-2) so values
// lie in [0, 1]; graphs with fewer than three nodes report 0 everywhere.
func BetweennessCentrality(g *WeightedGraph) map[string]float64 {
	n := g.NodeCount()
	centrality := make(map[string]float64, n)
	for _, id := range g.order {
		centrality[id] = 0
	}
	if n < 3 {
		return centrality
	}

	for _, s := range g.order {
		stack := make([]string, 0, n)
		pred := make(map[string][]string, n)
		sigma := make(map[string]float64, n)
		dist := make(map[string]int, n)
		for _, id := range g.order {
			dist[id] = -1
		}
		sigma[s] = 1
		dist[s] = 0
		queue := []string{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for w := range g.adj[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					pred[w] = append(pred[w], v)
				}
			}
		}

		delta := make(map[string]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range pred[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				centrality[w] += delta[w]
			}
		}
	}

	scale := 1 / float64((n-1)*(n-2))
	for id := range centrality {
		centrality[id] *= scale
	}
	return centrality
}

// ClosenessCentrality returns closeness per node over unweighted shortest
// paths, scaled by the reachable share so values stay defined on disconnected
// graphs. On a connected graph this is (n-1) / sum-of-distances. Isolated
// nodes report 0.
func ClosenessCentrality(g *WeightedGraph) map[string]float64 {
	n := g.NodeCount()
	centrality := make(map[string]float64, n)
	for _, id := range g.order {
		centrality[id] = 0
	}
	if n < 2 {
		return centrality
	}

	for _, s := range g.order {
		var sum, reached float64
		dist := map[string]int{s: 0}
		queue := []string{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for w := range g.adj[v] {
				if _, seen := dist[w]; seen {
					continue
				}
				dist[w] = dist[v] + 1
				sum += float64(dist[w])
				reached++
				queue = append(queue, w)
			}
		}
		if sum > 0 {
			centrality[s] = reached / sum * (reached / float64(n-1))
		}
	}
	return centrality
}

// Clustering returns the local clustering coefficient per node:
// 2*triangles / (deg*(deg-1)), with 0 for nodes of degree below two.
func Clustering(g *WeightedGraph) map[string]float64 {
	coeff := make(map[string]float64, g.NodeCount())
	for _, v := range g.order {
		deg := g.Degree(v)
		if deg < 2 {
			coeff[v] = 0
			continue
		}
		var links int
		nbrs := g.Neighbors(v)
		for i := 0; i < len(nbrs); i++ {
			for j := i + 1; j < len(nbrs); j++ {
				if g.HasEdge(nbrs[i], nbrs[j]) {
					links++
				}
			}
		}
		coeff[v] = 2 * float64(links) / (float64(deg) * float64(deg-1))
	}
	return coeff
}

// AverageClustering returns the mean local clustering coefficient over all
// nodes, 0 for an empty graph.
func AverageClustering(g *WeightedGraph) float64 {
	_, avg := maxAvg(Clustering(g))
	return avg
}

// BuildCentralityTable computes the per-node centrality table over the
// largest component of g, annotated with community ids from partition (-1
// when a node is missing from it). The betweenness column obeys
// BetweennessNodeLimit; rows follow graph insertion order.
// Per prd005-analytics R3.4.
func BuildCentralityTable(g *WeightedGraph, partition map[string]int) *types.CentralityTable {
	table := &types.CentralityTable{}
	if g.NodeCount() == 0 {
		return table
	}

	sub := g.Subgraph(LargestComponent(g))
	degree := DegreeCentrality(sub)
	closeness := ClosenessCentrality(sub)

	var betweenness map[string]float64
	if sub.NodeCount() < BetweennessNodeLimit {
		betweenness = BetweennessCentrality(sub)
		table.WithBetweenness = true
	}

	for _, id := range sub.Nodes() {
		row := types.CentralityRow{
			Node:                id,
			DegreeCentrality:    degree[id],
			ClosenessCentrality: closeness[id],
			Community:           -1,
		}
		if c, ok := partition[id]; ok {
			row.Community = c
		}
		if table.WithBetweenness {
			b := betweenness[id]
			row.BetweennessCentrality = &b
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// maxAvg returns the maximum and mean of the map values, (0, 0) when empty.
func maxAvg(values map[string]float64) (maxV, avgV float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	first := true
	for _, v := range values {
		sum += v
		if first || v > maxV {
			maxV = v
			first = false
		}
	}
	return maxV, sum / float64(len(values))
}
