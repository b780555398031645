// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package derive builds the four bibliometric networks from the primary
// entity graph. Each kind follows the same two-step shape: an idempotent
// write-side materialization of the derived relationship type, then a
// read-side projection that assembles the in-memory weighted graph.
// Implements: prd003-derivation R1-R6; docs/ARCHITECTURE § Derivation.
package derive

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdiddy/citegraph/internal/graphstore"
	"github.com/pdiddy/citegraph/internal/netgraph"
	"github.com/pdiddy/citegraph/pkg/types"
)

// Builder derives one WeightedGraph per network kind from gateway rows.
type Builder struct {
	gw     graphstore.Gateway
	logger *slog.Logger
}

// NewBuilder returns a builder over the given gateway.
func NewBuilder(gw graphstore.Gateway, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{gw: gw, logger: logger}
}

// Write-side Cypher: MERGE on the undirected pair so re-running never
// duplicates an edge, ON CREATE SET so re-running never re-sums weights.
const (
	materializeCoCitation = `
	MATCH (p1:Paper)-[:REFERENCES]->(ref:Paper)<-[:REFERENCES]-(p2:Paper)
	WHERE p1 <> p2
	WITH p1, p2, COUNT(DISTINCT ref) AS shared_refs
	WHERE shared_refs > 0
	MERGE (p1)-[r:CO_CITED_WITH]-(p2)
	ON CREATE SET r.weight = shared_refs
	RETURN COUNT(r) AS relationship_count`

	materializeAuthorCollaboration = `
	MATCH (a1:Author)-[:AUTHORED]->(p:Paper)<-[:AUTHORED]-(a2:Author)
	WHERE a1 <> a2
	WITH a1, a2, COUNT(p) AS collaboration_count
	WHERE collaboration_count > 0
	MERGE (a1)-[r:COLLABORATED_WITH]-(a2)
	ON CREATE SET r.weight = collaboration_count
	RETURN COUNT(r) AS relationship_count`

	materializeInstitutionCollaboration = `
	MATCH (i1:Institution)<-[:AFFILIATED_WITH]-(a1:Author)-[:AUTHORED]->(p:Paper)<-[:AUTHORED]-(a2:Author)-[:AFFILIATED_WITH]->(i2:Institution)
	WHERE i1 <> i2
	WITH i1, i2, COUNT(DISTINCT p) AS collaboration_count
	WHERE collaboration_count > 0
	MERGE (i1)-[r:COLLABORATED_WITH]-(i2)
	ON CREATE SET r.weight = collaboration_count
	RETURN COUNT(r) AS relationship_count`

	materializeKeywordCoOccurrence = `
	MATCH (k1:Keyword)<-[:HAS_KEYWORD]-(p:Paper)-[:HAS_KEYWORD]->(k2:Keyword)
	WHERE k1 <> k2
	WITH k1, k2, COUNT(p) AS cooccurrence_count
	WHERE cooccurrence_count > 0
	MERGE (k1)-[r:CO_OCCURS_WITH]-(k2)
	ON CREATE SET r.weight = cooccurrence_count
	RETURN COUNT(r) AS relationship_count`
)

// Read-side Cypher: project materialized edges and overlay node attributes.
const (
	readCoCitationEdges = `
	MATCH (p1:Paper)-[r:CO_CITED_WITH]-(p2:Paper)
	WHERE r.weight >= $min_weight
	RETURN p1.doi AS source, p2.doi AS target, r.weight AS weight`

	readPaperAttrs = `
	MATCH (p:Paper)
	WHERE p.doi IN $dois
	RETURN p.doi AS doi, p.title AS title, p.year AS year,
	       p.source AS source, p.abstract AS abstract`

	readAuthorNodes = `
	MATCH (a:Author)
	RETURN a.name AS name, a.orcid AS orcid`

	readAuthorEdges = `
	MATCH (a1:Author)-[r:COLLABORATED_WITH]-(a2:Author)
	RETURN a1.name AS source, a2.name AS target, r.weight AS weight`

	readInstitutionNodes = `
	MATCH (i:Institution)
	RETURN i.name AS name, i.address AS address`

	readInstitutionEdges = `
	MATCH (i1:Institution)-[r:COLLABORATED_WITH]-(i2:Institution)
	RETURN i1.name AS source, i2.name AS target, r.weight AS weight`

	readKeywordNodes = `
	MATCH (k:Keyword)
	RETURN k.name AS name`

	readKeywordEdges = `
	MATCH (k1:Keyword)-[r:CO_OCCURS_WITH]-(k2:Keyword)
	RETURN k1.name AS source, k2.name AS target, r.weight AS weight`
)

// Materialize derives and persists the relationship edges for kind in the
// store. The operation is idempotent: running it twice yields the same edge
// set with the same weights. It returns the relationship count reported by
// the store.
func (b *Builder) Materialize(ctx context.Context, kind types.NetworkKind) (int, error) {
	var cypher string
	switch kind {
	case types.NetworkCoCitation:
		cypher = materializeCoCitation
	case types.NetworkAuthorCollaboration:
		cypher = materializeAuthorCollaboration
	case types.NetworkInstitutionCollaboration:
		cypher = materializeInstitutionCollaboration
	case types.NetworkKeywordCoOccurrence:
		cypher = materializeKeywordCoOccurrence
	default:
		return 0, fmt.Errorf("%w: %q", types.ErrUnknownNetworkKind, kind)
	}

	b.logger.Info("materializing relationships", "kind", string(kind), "edge_type", kind.EdgeType())

	rows, err := b.gw.WriteRun(ctx, cypher, nil)
	if err != nil {
		return 0, fmt.Errorf("materializing %s relationships: %w", kind, err)
	}

	count := 0
	if len(rows) > 0 {
		count = rows[0].AsInt("relationship_count")
		if count < 0 {
			count = 0
		}
	}
	b.logger.Info("relationships materialized", "kind", string(kind), "count", count)
	return count, nil
}

// Read projects the materialized edges for kind into a WeightedGraph. For
// co-citation only edges with weight >= minWeight survive, and only papers
// on a surviving edge become nodes. The other three kinds ignore minWeight
// and add every entity of their type as a node first, isolated or not. Empty
// result sets produce an empty graph, never an error.
func (b *Builder) Read(ctx context.Context, kind types.NetworkKind, minWeight int) (*netgraph.WeightedGraph, error) {
	if minWeight < 1 {
		minWeight = 1
	}

	switch kind {
	case types.NetworkCoCitation:
		return b.readCoCitation(ctx, minWeight)
	case types.NetworkAuthorCollaboration:
		return b.readEntityNetwork(ctx, readAuthorNodes, readAuthorEdges, b.setAuthorAttrs)
	case types.NetworkInstitutionCollaboration:
		return b.readEntityNetwork(ctx, readInstitutionNodes, readInstitutionEdges, b.setInstitutionAttrs)
	case types.NetworkKeywordCoOccurrence:
		return b.readEntityNetwork(ctx, readKeywordNodes, readKeywordEdges, nil)
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownNetworkKind, kind)
	}
}

// Build materializes and then reads the network for kind.
func (b *Builder) Build(ctx context.Context, kind types.NetworkKind, minWeight int) (*netgraph.WeightedGraph, error) {
	if _, err := b.Materialize(ctx, kind); err != nil {
		return nil, err
	}
	return b.Read(ctx, kind, minWeight)
}

type cocitEdge struct {
	source, target string
	weight         int
}

func (b *Builder) readCoCitation(ctx context.Context, minWeight int) (*netgraph.WeightedGraph, error) {
	rows, err := b.gw.ReadRun(ctx, readCoCitationEdges, map[string]any{"min_weight": minWeight})
	if err != nil {
		return nil, fmt.Errorf("reading co-citation edges: %w", err)
	}

	g := netgraph.NewWeightedGraph()

	var edges []cocitEdge
	seen := make(map[string]bool)
	var dois []string
	for _, row := range rows {
		source := row.AsString("source")
		target := row.AsString("target")
		weight := row.AsInt("weight")
		if source == "" || target == "" || weight < 1 {
			continue
		}
		edges = append(edges, cocitEdge{source: source, target: target, weight: weight})
		for _, doi := range []string{source, target} {
			if !seen[doi] {
				seen[doi] = true
				dois = append(dois, doi)
			}
		}
	}

	// Nodes first so every paper carries its attributes before edges land.
	if len(dois) > 0 {
		attrRows, err := b.gw.ReadRun(ctx, readPaperAttrs, map[string]any{"dois": dois})
		if err != nil {
			return nil, fmt.Errorf("reading paper attributes: %w", err)
		}
		for _, row := range attrRows {
			doi := row.AsString("doi")
			if doi == "" {
				continue
			}
			g.AddNode(doi)
			g.SetNodeAttr(doi, "title", row.AsString("title"))
			g.SetNodeAttr(doi, "year", row.AsInt("year"))
			g.SetNodeAttr(doi, "source", row.AsString("source"))
			g.SetNodeAttr(doi, "abstract", row.AsString("abstract"))
		}
	}

	for _, e := range edges {
		g.AddEdge(e.source, e.target, e.weight)
	}

	b.logger.Info("network read",
		"kind", string(types.NetworkCoCitation),
		"min_weight", minWeight,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount())
	return g, nil
}

// readEntityNetwork handles the three all-entity kinds: every entity of the
// type becomes a node, then materialized edges are overlaid.
func (b *Builder) readEntityNetwork(ctx context.Context, nodeQuery, edgeQuery string, setAttrs func(*netgraph.WeightedGraph, graphstore.Row, string)) (*netgraph.WeightedGraph, error) {
	g := netgraph.NewWeightedGraph()

	nodeRows, err := b.gw.ReadRun(ctx, nodeQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("reading nodes: %w", err)
	}
	for _, row := range nodeRows {
		name := row.AsString("name")
		if name == "" {
			continue
		}
		g.AddNode(name)
		if setAttrs != nil {
			setAttrs(g, row, name)
		}
	}

	edgeRows, err := b.gw.ReadRun(ctx, edgeQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("reading edges: %w", err)
	}
	for _, row := range edgeRows {
		source := row.AsString("source")
		target := row.AsString("target")
		weight := row.AsInt("weight")
		if source == "" || target == "" || weight < 1 {
			continue
		}
		g.AddEdge(source, target, weight)
	}

	b.logger.Info("network read", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}

func (b *Builder) setAuthorAttrs(g *netgraph.WeightedGraph, row graphstore.Row, name string) {
	g.SetNodeAttr(name, "orcid", row.AsString("orcid"))
}

func (b *Builder) setInstitutionAttrs(g *netgraph.WeightedGraph, row graphstore.Row, name string) {
	g.SetNodeAttr(name, "address", row.AsString("address"))
}
