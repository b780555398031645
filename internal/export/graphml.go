// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/pdiddy/citegraph/internal/netgraph"
)

const graphmlNamespace = "http://graphml.graphdrawing.org/xmlns"

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	XMLNS   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// attrType maps a Go attribute value to a GraphML attr.type.
func attrType(v any) string {
	switch v.(type) {
	case int, int64:
		return "long"
	case float64:
		return "double"
	default:
		return "string"
	}
}

// WriteGraphML serializes the graph with full node-attribute bags and edge
// weights. Key ids are assigned d0, d1, ... in first-seen attribute order,
// with the edge weight key last; the attr.type of each key follows the first
// value seen for that attribute. Sentinel values are written out like any
// other value so re-importers see the same graph the analysis saw.
func WriteGraphML(g *netgraph.WeightedGraph, path string) error {
	attrKeys := g.NodeAttrKeys()

	doc := graphmlDoc{
		XMLNS: graphmlNamespace,
		Graph: graphmlGraph{EdgeDefault: "undirected"},
	}

	keyID := make(map[string]string, len(attrKeys))
	for i, key := range attrKeys {
		id := fmt.Sprintf("d%d", i)
		keyID[key] = id
		doc.Keys = append(doc.Keys, graphmlKey{
			ID:       id,
			For:      "node",
			AttrName: key,
			AttrType: firstAttrType(g, key),
		})
	}
	weightID := fmt.Sprintf("d%d", len(attrKeys))
	doc.Keys = append(doc.Keys, graphmlKey{
		ID:       weightID,
		For:      "edge",
		AttrName: "weight",
		AttrType: "long",
	})

	for _, id := range g.Nodes() {
		node := graphmlNode{ID: id}
		for _, key := range attrKeys {
			if v, ok := g.NodeAttr(id, key); ok {
				node.Data = append(node.Data, graphmlData{Key: keyID[key], Value: formatValue(v)})
			}
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, node)
	}
	for _, e := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			Source: e.Source,
			Target: e.Target,
			Data:   []graphmlData{{Key: weightID, Value: formatValue(e.Weight)}},
		})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling GraphML: %w", err)
	}
	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing GraphML: %w", err)
	}
	return nil
}

// firstAttrType scans nodes in insertion order for the first value of key and
// returns its GraphML type; "string" when no node carries the attribute.
func firstAttrType(g *netgraph.WeightedGraph, key string) string {
	for _, id := range g.Nodes() {
		if v, ok := g.NodeAttr(id, key); ok {
			return attrType(v)
		}
	}
	return "string"
}
