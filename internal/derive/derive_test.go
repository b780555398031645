// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package derive

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/pdiddy/citegraph/internal/graphstore"
	"github.com/pdiddy/citegraph/pkg/types"
)

// fakeGateway serves canned rows for the derivation queries so the read side
// can be exercised without a store. Co-citation edge reads honor the
// min_weight parameter the way the store would.
type fakeGateway struct {
	cocitEdges []graphstore.Row
	paperAttrs []graphstore.Row
	nodeRows   []graphstore.Row
	edgeRows   []graphstore.Row

	writeCypher []string
	writeRows   []graphstore.Row
}

func (f *fakeGateway) ReadRun(_ context.Context, cypher string, params map[string]any) ([]graphstore.Row, error) {
	switch cypher {
	case readCoCitationEdges:
		minWeight, _ := params["min_weight"].(int)
		var rows []graphstore.Row
		for _, r := range f.cocitEdges {
			if r.AsInt("weight") >= minWeight {
				rows = append(rows, r)
			}
		}
		return rows, nil
	case readPaperAttrs:
		dois, _ := params["dois"].([]string)
		member := make(map[string]bool, len(dois))
		for _, d := range dois {
			member[d] = true
		}
		var rows []graphstore.Row
		for _, r := range f.paperAttrs {
			if member[r.AsString("doi")] {
				rows = append(rows, r)
			}
		}
		return rows, nil
	case readAuthorNodes, readInstitutionNodes, readKeywordNodes:
		return f.nodeRows, nil
	case readAuthorEdges, readInstitutionEdges, readKeywordEdges:
		return f.edgeRows, nil
	}
	return nil, nil
}

func (f *fakeGateway) WriteRun(_ context.Context, cypher string, _ map[string]any) ([]graphstore.Row, error) {
	f.writeCypher = append(f.writeCypher, cypher)
	return f.writeRows, nil
}

func (f *fakeGateway) Close(context.Context) error { return nil }

// abcGateway is the shared three-paper fixture: A-B share 2 references, B-C
// share 1.
func abcGateway() *fakeGateway {
	return &fakeGateway{
		cocitEdges: []graphstore.Row{
			{"source": "A", "target": "B", "weight": int64(2)},
			{"source": "B", "target": "C", "weight": int64(1)},
		},
		paperAttrs: []graphstore.Row{
			{"doi": "A", "title": "Alpha", "year": int64(1999), "source": "J1", "abstract": "a"},
			{"doi": "B", "title": "Beta", "year": int64(2010), "source": "J1", "abstract": "b"},
			{"doi": "C", "title": nil, "year": nil, "source": nil, "abstract": nil},
		},
	}
}

func TestReadCoCitationThresholdScenario(t *testing.T) {
	b := NewBuilder(abcGateway(), nil)

	g, err := b.Read(context.Background(), types.NetworkCoCitation, 1)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Errorf("threshold 1: %d nodes %d edges, want 3 and 2", g.NodeCount(), g.EdgeCount())
	}
	if w, ok := g.Weight("A", "B"); !ok || w != 2 {
		t.Errorf("Weight(A,B) = %d, %v; want 2, true", w, ok)
	}
	if w, ok := g.Weight("B", "C"); !ok || w != 1 {
		t.Errorf("Weight(B,C) = %d, %v; want 1, true", w, ok)
	}

	g2, err := b.Read(context.Background(), types.NetworkCoCitation, 2)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if g2.NodeCount() != 2 || g2.EdgeCount() != 1 {
		t.Errorf("threshold 2: %d nodes %d edges, want 2 and 1", g2.NodeCount(), g2.EdgeCount())
	}
	if g2.HasNode("C") {
		t.Error("paper C should drop out at threshold 2")
	}
}

func TestReadCoCitationThresholdMonotonic(t *testing.T) {
	b := NewBuilder(abcGateway(), nil)

	for threshold := 1; threshold <= 3; threshold++ {
		lower, err := b.Read(context.Background(), types.NetworkCoCitation, threshold)
		if err != nil {
			t.Fatalf("Read(T=%d): %v", threshold, err)
		}
		higher, err := b.Read(context.Background(), types.NetworkCoCitation, threshold+1)
		if err != nil {
			t.Fatalf("Read(T=%d): %v", threshold+1, err)
		}

		for _, e := range lower.Edges() {
			if e.Weight < threshold {
				t.Errorf("T=%d: edge %s-%s weight %d below threshold", threshold, e.Source, e.Target, e.Weight)
			}
		}
		for _, e := range higher.Edges() {
			if !lower.HasEdge(e.Source, e.Target) {
				t.Errorf("edge %s-%s present at T=%d but not at T=%d", e.Source, e.Target, threshold+1, threshold)
			}
		}
	}
}

func TestReadIsDeterministic(t *testing.T) {
	for _, kind := range types.AllNetworkKinds {
		gw := abcGateway()
		gw.nodeRows = []graphstore.Row{
			{"name": "n1", "orcid": "0000-0001", "address": "Berlin"},
			{"name": "n2", "orcid": nil, "address": nil},
			{"name": "n3"},
		}
		gw.edgeRows = []graphstore.Row{
			{"source": "n1", "target": "n2", "weight": int64(4)},
		}
		b := NewBuilder(gw, nil)

		first, err := b.Read(context.Background(), kind, 1)
		if err != nil {
			t.Fatalf("%s: Read: %v", kind, err)
		}
		second, err := b.Read(context.Background(), kind, 1)
		if err != nil {
			t.Fatalf("%s: Read: %v", kind, err)
		}

		if !reflect.DeepEqual(first.Nodes(), second.Nodes()) {
			t.Errorf("%s: node sets differ between identical reads", kind)
		}
		if !reflect.DeepEqual(first.Edges(), second.Edges()) {
			t.Errorf("%s: edge sets differ between identical reads", kind)
		}
	}
}

func TestReadCoCitationSentinels(t *testing.T) {
	b := NewBuilder(abcGateway(), nil)

	g, err := b.Read(context.Background(), types.NetworkCoCitation, 1)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	title, _ := g.NodeAttr("C", "title")
	if title != types.UnknownText {
		t.Errorf("title sentinel = %v, want empty string", title)
	}
	year, _ := g.NodeAttr("C", "year")
	if year != types.UnknownYear {
		t.Errorf("year sentinel = %v, want -1", year)
	}
}

func TestReadEntityNetworkKeepsIsolatedNodes(t *testing.T) {
	gw := &fakeGateway{
		nodeRows: []graphstore.Row{
			{"name": "MIT", "address": "Cambridge"},
			{"name": "ETH", "address": "Zurich"},
			{"name": "Isolated U", "address": nil},
		},
		edgeRows: []graphstore.Row{
			{"source": "MIT", "target": "ETH", "weight": int64(3)},
		},
	}
	b := NewBuilder(gw, nil)

	g, err := b.Read(context.Background(), types.NetworkInstitutionCollaboration, 1)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3 (isolated node included)", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	if !g.HasNode("Isolated U") {
		t.Error("isolated institution should still be a node")
	}
	addr, _ := g.NodeAttr("Isolated U", "address")
	if addr != types.UnknownText {
		t.Errorf("address sentinel = %v, want empty string", addr)
	}
}

func TestReadEmptyStoreYieldsEmptyGraph(t *testing.T) {
	b := NewBuilder(&fakeGateway{}, nil)

	for _, kind := range types.AllNetworkKinds {
		g, err := b.Read(context.Background(), kind, 1)
		if err != nil {
			t.Fatalf("%s: Read on empty store: %v", kind, err)
		}
		if g.NodeCount() != 0 || g.EdgeCount() != 0 {
			t.Errorf("%s: got %d nodes %d edges, want empty graph", kind, g.NodeCount(), g.EdgeCount())
		}
	}
}

func TestMaterializeReturnsCount(t *testing.T) {
	gw := &fakeGateway{writeRows: []graphstore.Row{{"relationship_count": int64(42)}}}
	b := NewBuilder(gw, nil)

	count, err := b.Materialize(context.Background(), types.NetworkKeywordCoOccurrence)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if count != 42 {
		t.Errorf("count = %d, want 42", count)
	}

	// Re-running issues the identical MERGE, which is what makes the
	// operation safe to repeat.
	if _, err := b.Materialize(context.Background(), types.NetworkKeywordCoOccurrence); err != nil {
		t.Fatalf("second Materialize: %v", err)
	}
	if len(gw.writeCypher) != 2 || gw.writeCypher[0] != gw.writeCypher[1] {
		t.Errorf("expected two identical materialization queries, got %d", len(gw.writeCypher))
	}
}

func TestMaterializeEmptyResultYieldsZero(t *testing.T) {
	b := NewBuilder(&fakeGateway{}, nil)

	count, err := b.Materialize(context.Background(), types.NetworkCoCitation)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestUnknownKindIsConfigurationError(t *testing.T) {
	b := NewBuilder(&fakeGateway{}, nil)

	if _, err := b.Read(context.Background(), types.NetworkKind("citation-cartel"), 1); !errors.Is(err, types.ErrUnknownNetworkKind) {
		t.Errorf("Read error = %v, want ErrUnknownNetworkKind", err)
	}
	if _, err := b.Materialize(context.Background(), types.NetworkKind("citation-cartel")); !errors.Is(err, types.ErrUnknownNetworkKind) {
		t.Errorf("Materialize error = %v, want ErrUnknownNetworkKind", err)
	}
}

func TestBuildMaterializesThenReads(t *testing.T) {
	gw := abcGateway()
	gw.writeRows = []graphstore.Row{{"relationship_count": int64(2)}}
	b := NewBuilder(gw, nil)

	g, err := b.Build(context.Background(), types.NetworkCoCitation, 1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(gw.writeCypher) != 1 {
		t.Errorf("materialization queries = %d, want 1", len(gw.writeCypher))
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
}

var _ graphstore.Gateway = (*fakeGateway)(nil)
