// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/citegraph/internal/netgraph"
	"github.com/pdiddy/citegraph/pkg/types"
)

func sampleGraph() *netgraph.WeightedGraph {
	g := netgraph.NewWeightedGraph()
	g.AddNode("10.1/a")
	g.SetNodeAttr("10.1/a", "title", `The "quoted" paper`)
	g.SetNodeAttr("10.1/a", "year", 2019)
	g.AddNode("10.1/b")
	g.SetNodeAttr("10.1/b", "title", "Second paper")
	g.SetNodeAttr("10.1/b", "year", types.UnknownYear)
	g.AddNode("10.1/c")
	g.AddEdge("10.1/a", "10.1/b", 3)
	g.AddEdge("10.1/b", "10.1/c", 1)
	return g
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
	return records
}

func TestNodesCSVRoundTrip(t *testing.T) {
	g := sampleGraph()
	path := filepath.Join(t.TempDir(), "nodes.csv")
	if err := WriteNodesCSV(g, path); err != nil {
		t.Fatalf("WriteNodesCSV: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != g.NodeCount()+1 {
		t.Fatalf("got %d records, want %d", len(records), g.NodeCount()+1)
	}
	wantHeader := []string{"id", "title", "year"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Fatalf("header = %v, want %v", records[0], wantHeader)
		}
	}
	// Row order is node insertion order.
	for i, id := range g.Nodes() {
		if records[i+1][0] != id {
			t.Errorf("row %d id = %q, want %q", i+1, records[i+1][0], id)
		}
	}
	if records[1][1] != `The "quoted" paper` {
		t.Errorf("embedded quotes mangled: %q", records[1][1])
	}
	if records[2][2] != "-1" {
		t.Errorf("unknown year = %q, want -1", records[2][2])
	}
	if records[3][1] != "" || records[3][2] != "" {
		t.Errorf("attribute-less node row = %v, want empty attr fields", records[3])
	}
}

func TestEdgesCSVRoundTrip(t *testing.T) {
	g := sampleGraph()
	path := filepath.Join(t.TempDir(), "edges.csv")
	if err := WriteEdgesCSV(g, path); err != nil {
		t.Fatalf("WriteEdgesCSV: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != g.EdgeCount()+1 {
		t.Fatalf("got %d records, want %d", len(records), g.EdgeCount()+1)
	}
	want := [][]string{
		{"source", "target", "weight"},
		{"10.1/a", "10.1/b", "3"},
		{"10.1/b", "10.1/c", "1"},
	}
	for i, row := range want {
		for j, field := range row {
			if records[i][j] != field {
				t.Fatalf("records[%d] = %v, want %v", i, records[i], row)
			}
		}
	}
}

func TestQuotedCSVQuotesEveryField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.csv")
	rows := [][]string{{"id", "name"}, {"a", `say "hi"`}}
	if err := writeQuotedCSV(path, rows); err != nil {
		t.Fatalf("writeQuotedCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	want := "\"id\",\"name\"\n\"a\",\"say \"\"hi\"\"\"\n"
	if string(data) != want {
		t.Fatalf("raw CSV = %q, want %q", data, want)
	}
}

func TestGraphMLContent(t *testing.T) {
	g := sampleGraph()
	path := filepath.Join(t.TempDir(), "net.graphml")
	if err := WriteGraphML(g, path); err != nil {
		t.Fatalf("WriteGraphML: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		`xmlns="http://graphml.graphdrawing.org/xmlns"`,
		`edgedefault="undirected"`,
		`attr.name="title" attr.type="string"`,
		`attr.name="year" attr.type="long"`,
		`attr.name="weight" attr.type="long"`,
		`<node id="10.1/a">`,
		`<node id="10.1/c">`,
		`source="10.1/a" target="10.1/b"`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("GraphML missing %q", want)
		}
	}
	// Sentinel years are emitted, not dropped.
	if !strings.Contains(content, ">-1</data>") {
		t.Error("GraphML missing sentinel year value")
	}
}

func TestWriteNetworkWritesAllThreeFiles(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"networks", "data"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	paths := NetworkPathsFor(dir, types.NetworkCoCitation)
	if err := WriteNetwork(context.Background(), sampleGraph(), paths); err != nil {
		t.Fatalf("WriteNetwork: %v", err)
	}
	for _, p := range []string{paths.GraphML, paths.NodesCSV, paths.EdgesCSV} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing export file %s: %v", p, err)
		}
	}
	if filepath.Base(paths.GraphML) != "co_citation_network.graphml" {
		t.Errorf("graphml path = %s", paths.GraphML)
	}
}

func TestWriteNetworkFailureSurfaces(t *testing.T) {
	paths := NetworkPaths{
		GraphML:  filepath.Join(t.TempDir(), "missing-dir", "net.graphml"),
		NodesCSV: filepath.Join(t.TempDir(), "nodes.csv"),
		EdgesCSV: filepath.Join(t.TempDir(), "edges.csv"),
	}
	if err := WriteNetwork(context.Background(), sampleGraph(), paths); err == nil {
		t.Fatal("expected error for unwritable graphml path")
	}
}

func TestCentralityTableFormats(t *testing.T) {
	bc := 0.25
	table := &types.CentralityTable{
		Rows: []types.CentralityRow{
			{Node: "a", DegreeCentrality: 1, BetweennessCentrality: &bc, ClosenessCentrality: 0.5, Community: 0},
			{Node: "b", DegreeCentrality: 0.5, BetweennessCentrality: &bc, ClosenessCentrality: 0.4, Community: 1},
		},
		WithBetweenness: true,
	}

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "cent.csv")
	if err := WriteCentralityTable(table, csvPath, types.FormatCSV); err != nil {
		t.Fatalf("csv: %v", err)
	}
	records := readCSV(t, csvPath)
	wantHeader := []string{"node", "degree_centrality", "betweenness_centrality", "closeness_centrality", "community"}
	if len(records[0]) != len(wantHeader) {
		t.Fatalf("header = %v, want %v", records[0], wantHeader)
	}
	if records[1][2] != "0.25" {
		t.Errorf("betweenness field = %q", records[1][2])
	}

	jsonPath := filepath.Join(dir, "cent.json")
	if err := WriteCentralityTable(table, jsonPath, types.FormatJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("reading json: %v", err)
	}
	if !strings.Contains(string(data), `"betweenness_centrality": 0.25`) {
		t.Errorf("json missing betweenness: %s", data)
	}
}

func TestCentralityTableOmitsBetweennessUnderGuard(t *testing.T) {
	table := &types.CentralityTable{
		Rows:            []types.CentralityRow{{Node: "a", DegreeCentrality: 1, ClosenessCentrality: 1, Community: -1}},
		WithBetweenness: false,
	}
	path := filepath.Join(t.TempDir(), "cent.csv")
	if err := WriteCentralityTable(table, path, types.FormatCSV); err != nil {
		t.Fatalf("csv: %v", err)
	}
	records := readCSV(t, path)
	for _, col := range records[0] {
		if col == "betweenness_centrality" {
			t.Fatal("betweenness column present despite guard")
		}
	}
	if len(records[0]) != 4 {
		t.Fatalf("header = %v, want 4 columns", records[0])
	}
}

func TestCentralityTableUnsupportedFormat(t *testing.T) {
	err := WriteCentralityTable(&types.CentralityTable{}, filepath.Join(t.TempDir(), "x"), types.ExportFormat("xml"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	if !strings.Contains(err.Error(), "xml") {
		t.Fatalf("error does not name the offending format: %v", err)
	}
}

func TestYAMLReportRoundTrip(t *testing.T) {
	report := &types.NetworkMetrics{NodeCount: 3, EdgeCount: 2, Density: 2.0 / 3.0}
	path := filepath.Join(t.TempDir(), "metrics.yaml")
	if err := WriteYAMLReport(report, path); err != nil {
		t.Fatalf("WriteYAMLReport: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if !strings.Contains(string(data), "node_count: 3") {
		t.Errorf("yaml missing node_count: %s", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("perm = %o, want 644", perm)
	}
}
