// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package netgraph

import (
	"log/slog"
	"sort"

	"github.com/pdiddy/citegraph/pkg/types"
)

const (
	// maxLouvainIterations bounds the local-moving loop.
	maxLouvainIterations = 100

	// maxLabelIterations bounds the label-propagation loop.
	maxLabelIterations = 100

	// convergenceThreshold stops louvain early when the modularity gain of a
	// full pass falls below it.
	convergenceThreshold = 1e-6
)

// Strategy is one community-detection algorithm. Detect must assign every
// node of the graph to exactly one community and report the partition's
// modularity. Per prd005-analytics R5.2.
type Strategy interface {
	// Name returns the algorithm identifier.
	Name() types.CommunityAlgorithm

	// Available reports whether the implementation can run.
	Available() bool

	// Detect partitions the graph and scores the partition.
	Detect(g *WeightedGraph) (map[string]int, float64)
}

// Detector walks an ordered strategy chain, starting at the requested
// algorithm and falling through to the next strategy whenever one is
// unavailable. The chain ends at the trivial partition, which always
// succeeds. Per prd005-analytics R5.1-R5.3.
type Detector struct {
	chain  []Strategy
	logger *slog.Logger
}

// NewDetector returns a detector with the full chain:
// louvain -> label-propagation -> greedy-modularity -> trivial.
func NewDetector(logger *slog.Logger) *Detector {
	return NewDetectorWithChain(logger,
		louvainStrategy{},
		labelPropagationStrategy{},
		greedyModularityStrategy{},
		trivialStrategy{},
	)
}

// NewDetectorWithChain returns a detector over an explicit chain. Tests use
// it to simulate unavailable algorithms.
func NewDetectorWithChain(logger *slog.Logger, chain ...Strategy) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{chain: chain, logger: logger}
}

// Detect partitions g, entering the chain at the requested algorithm. Each
// stage is attempted at most once and the chain never revisits an earlier
// stage. An empty graph returns an empty partition and modularity 0.0 without
// invoking any strategy.
func (d *Detector) Detect(g *WeightedGraph, requested types.CommunityAlgorithm) *types.CommunityResult {
	if g.NodeCount() == 0 {
		return &types.CommunityResult{
			Algorithm:   requested,
			Communities: map[string]int{},
		}
	}

	start := 0
	for i, s := range d.chain {
		if s.Name() == requested {
			start = i
			break
		}
	}

	for _, s := range d.chain[start:] {
		if !s.Available() {
			d.logger.Warn("community algorithm unavailable, falling back",
				"algorithm", string(s.Name()))
			continue
		}
		partition, modularity := s.Detect(g)
		result := &types.CommunityResult{
			Algorithm:   s.Name(),
			Communities: partition,
			Modularity:  modularity,
		}
		for _, c := range partition {
			if c+1 > result.CommunityCount {
				result.CommunityCount = c + 1
			}
		}
		d.logger.Info("community detection complete",
			"algorithm", string(s.Name()),
			"communities", result.CommunityCount,
			"modularity", modularity)
		return result
	}

	// The trivial strategy is always available, so this is unreachable with
	// the default chain; an exhausted custom chain degrades the same way.
	partition, modularity := trivialStrategy{}.Detect(g)
	return &types.CommunityResult{
		Algorithm:      types.AlgorithmTrivial,
		Communities:    partition,
		CommunityCount: 1,
		Modularity:     modularity,
	}
}

// Modularity scores a partition of g using the weighted formula
// Q = sum over communities of (in_c/m - (tot_c/2m)^2), where in_c is the
// intra-community edge weight, tot_c the summed weighted degree, and m the
// total edge weight. Empty partitions and zero-edge graphs score 0.
func Modularity(g *WeightedGraph, partition map[string]int) float64 {
	m := g.TotalWeight()
	if m == 0 || len(partition) == 0 {
		return 0
	}

	internal := make(map[int]float64)
	degreeSum := make(map[int]float64)
	for _, e := range g.edges {
		cs, okS := partition[e.Source]
		ct, okT := partition[e.Target]
		if okS && okT && cs == ct {
			internal[cs] += float64(e.Weight)
		}
	}
	for id, c := range partition {
		degreeSum[c] += g.WeightedDegree(id)
	}

	var q float64
	for c, tot := range degreeSum {
		q += internal[c]/m - (tot/(2*m))*(tot/(2*m))
	}
	return q
}

// renumber maps community ids onto dense zero-based ids, assigned in graph
// insertion order so results are stable within a run.
func renumber(g *WeightedGraph, partition map[string]int) map[string]int {
	remap := make(map[int]int)
	next := 0
	dense := make(map[string]int, len(partition))
	for _, id := range g.order {
		c, ok := partition[id]
		if !ok {
			continue
		}
		d, seen := remap[c]
		if !seen {
			d = next
			remap[c] = d
			next++
		}
		dense[id] = d
	}
	return dense
}

// louvainStrategy implements best-modularity greedy node moving: each node is
// repeatedly offered to its neighbors' communities, taking the move with the
// largest positive modularity gain, until a full pass no longer improves.
type louvainStrategy struct{}

func (louvainStrategy) Name() types.CommunityAlgorithm { return types.AlgorithmLouvain }
func (louvainStrategy) Available() bool                { return true }

func (louvainStrategy) Detect(g *WeightedGraph) (map[string]int, float64) {
	nodes := append([]string(nil), g.order...)
	sort.Strings(nodes)

	partition := make(map[string]int, len(nodes))
	for i, id := range nodes {
		partition[id] = i
	}

	m := g.TotalWeight()
	if m == 0 {
		dense := renumber(g, partition)
		return dense, 0
	}

	degrees := make(map[string]float64, len(nodes))
	commDegreeSum := make(map[int]float64, len(nodes))
	for _, id := range nodes {
		degrees[id] = g.WeightedDegree(id)
		commDegreeSum[partition[id]] += degrees[id]
	}

	previousQ := -1.0
	for iter := 0; iter < maxLouvainIterations; iter++ {
		improved := false

		for _, id := range nodes {
			current := partition[id]
			ki := degrees[id]

			// Edge weight from id into each neighboring community.
			commWeight := make(map[int]float64)
			for nbr, w := range g.adj[id] {
				commWeight[partition[nbr]] += float64(w)
			}

			candidates := make([]int, 0, len(commWeight))
			for c := range commWeight {
				if c != current {
					candidates = append(candidates, c)
				}
			}
			sort.Ints(candidates)

			best := current
			bestDelta := 0.0
			for _, c := range candidates {
				delta := (commWeight[c]-commWeight[current])/m -
					ki*(commDegreeSum[c]-(commDegreeSum[current]-ki))/(2*m*m)
				if delta > bestDelta {
					bestDelta = delta
					best = c
				}
			}

			if best != current {
				commDegreeSum[current] -= ki
				commDegreeSum[best] += ki
				partition[id] = best
				improved = true
			}
		}

		currentQ := Modularity(g, partition)
		if !improved || (previousQ >= 0 && currentQ-previousQ < convergenceThreshold) {
			break
		}
		previousQ = currentQ
	}

	dense := renumber(g, partition)
	return dense, Modularity(g, dense)
}

// labelPropagationStrategy spreads labels along edges: every node adopts the
// label carrying the largest incident weight among its neighbors, smallest
// label winning ties, until labels stabilize.
type labelPropagationStrategy struct{}

func (labelPropagationStrategy) Name() types.CommunityAlgorithm {
	return types.AlgorithmLabelPropagation
}
func (labelPropagationStrategy) Available() bool { return true }

func (labelPropagationStrategy) Detect(g *WeightedGraph) (map[string]int, float64) {
	nodes := append([]string(nil), g.order...)
	sort.Strings(nodes)

	labels := make(map[string]int, len(nodes))
	for i, id := range nodes {
		labels[id] = i
	}

	for iter := 0; iter < maxLabelIterations; iter++ {
		changed := false
		for _, id := range nodes {
			if g.Degree(id) == 0 {
				continue
			}
			weight := make(map[int]float64)
			for nbr, w := range g.adj[id] {
				weight[labels[nbr]] += float64(w)
			}

			best := labels[id]
			bestWeight := -1.0
			candidates := make([]int, 0, len(weight))
			for l := range weight {
				candidates = append(candidates, l)
			}
			sort.Ints(candidates)
			for _, l := range candidates {
				if weight[l] > bestWeight {
					bestWeight = weight[l]
					best = l
				}
			}

			if best != labels[id] {
				labels[id] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	dense := renumber(g, labels)
	return dense, Modularity(g, dense)
}

// greedyModularityStrategy merges communities bottom-up: starting from
// singletons, repeatedly merge the connected pair with the largest modularity
// gain while a positive gain exists.
type greedyModularityStrategy struct{}

func (greedyModularityStrategy) Name() types.CommunityAlgorithm {
	return types.AlgorithmGreedyModularity
}
func (greedyModularityStrategy) Available() bool { return true }

func (greedyModularityStrategy) Detect(g *WeightedGraph) (map[string]int, float64) {
	nodes := append([]string(nil), g.order...)
	sort.Strings(nodes)

	partition := make(map[string]int, len(nodes))
	for i, id := range nodes {
		partition[id] = i
	}

	m := g.TotalWeight()
	if m == 0 {
		dense := renumber(g, partition)
		return dense, 0
	}

	// between[a][b] holds the inter-community edge weight, a < b.
	between := make(map[int]map[int]float64)
	degreeSum := make(map[int]float64)
	addBetween := func(a, b int, w float64) {
		if a > b {
			a, b = b, a
		}
		if between[a] == nil {
			between[a] = make(map[int]float64)
		}
		between[a][b] += w
	}
	for _, e := range g.edges {
		ca, cb := partition[e.Source], partition[e.Target]
		if ca != cb {
			addBetween(ca, cb, float64(e.Weight))
		}
	}
	for _, id := range nodes {
		degreeSum[partition[id]] += g.WeightedDegree(id)
	}

	for {
		bestA, bestB := -1, -1
		bestGain := 0.0
		pairsA := make([]int, 0, len(between))
		for a := range between {
			pairsA = append(pairsA, a)
		}
		sort.Ints(pairsA)
		for _, a := range pairsA {
			pairsB := make([]int, 0, len(between[a]))
			for b := range between[a] {
				pairsB = append(pairsB, b)
			}
			sort.Ints(pairsB)
			for _, b := range pairsB {
				gain := between[a][b]/m - degreeSum[a]*degreeSum[b]/(2*m*m)
				if gain > bestGain {
					bestGain = gain
					bestA, bestB = a, b
				}
			}
		}
		if bestA < 0 {
			break
		}

		// Merge bestB into bestA.
		for id, c := range partition {
			if c == bestB {
				partition[id] = bestA
			}
		}
		degreeSum[bestA] += degreeSum[bestB]
		delete(degreeSum, bestB)

		merged := make(map[int]float64)
		collect := func(a, b int) {
			other := -1
			switch {
			case a == bestA || a == bestB:
				other = b
			case b == bestA || b == bestB:
				other = a
			default:
				return
			}
			if other != bestA && other != bestB {
				merged[other] += between[a][b]
			}
		}
		for a, row := range between {
			for b := range row {
				collect(a, b)
			}
		}
		for a, row := range between {
			for b := range row {
				if a == bestA || a == bestB || b == bestA || b == bestB {
					delete(row, b)
				}
			}
			if len(between[a]) == 0 {
				delete(between, a)
			}
		}
		for other, w := range merged {
			addBetween(bestA, other, w)
		}
	}

	dense := renumber(g, partition)
	return dense, Modularity(g, dense)
}

// trivialStrategy assigns every node to community 0 with modularity 0.0. It
// is the terminal stage of the chain and always available.
type trivialStrategy struct{}

func (trivialStrategy) Name() types.CommunityAlgorithm { return types.AlgorithmTrivial }
func (trivialStrategy) Available() bool                { return true }

func (trivialStrategy) Detect(g *WeightedGraph) (map[string]int, float64) {
	partition := make(map[string]int, g.NodeCount())
	for _, id := range g.order {
		partition[id] = 0
	}
	return partition, 0
}
