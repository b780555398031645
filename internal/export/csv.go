// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes derived networks and analysis reports to disk in the
// formats downstream tooling consumes: GraphML, fully-quoted CSV, YAML, and
// JSON. Row and column order are deterministic, following graph insertion
// order and first-seen attribute order.
// Implements: prd006-export R1-R5; docs/ARCHITECTURE § Export.
package export

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/citegraph/internal/netgraph"
)

// writeQuotedCSV writes rows where EVERY field, header included, is wrapped
// in double quotes and embedded quotes are doubled per RFC 4180. Standard
// encoding/csv readers parse the output; encoding/csv writers would leave
// unquoted fields bare, which the downstream tooling does not accept.
func writeQuotedCSV(path string, rows [][]string) error {
	var b strings.Builder
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// formatValue renders an attribute value for CSV.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// WriteNodesCSV writes one row per node in insertion order. Columns are "id"
// followed by the union of node-attribute keys in first-seen order; unset
// attributes render as the empty string.
func WriteNodesCSV(g *netgraph.WeightedGraph, path string) error {
	attrKeys := g.NodeAttrKeys()

	header := append([]string{"id"}, attrKeys...)
	rows := make([][]string, 0, g.NodeCount()+1)
	rows = append(rows, header)

	for _, id := range g.Nodes() {
		row := make([]string, 0, len(header))
		row = append(row, id)
		for _, key := range attrKeys {
			if v, ok := g.NodeAttr(id, key); ok {
				row = append(row, formatValue(v))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	if err := writeQuotedCSV(path, rows); err != nil {
		return fmt.Errorf("writing nodes CSV: %w", err)
	}
	return nil
}

// WriteEdgesCSV writes one row per edge in insertion order, with columns
// source, target, weight.
func WriteEdgesCSV(g *netgraph.WeightedGraph, path string) error {
	rows := make([][]string, 0, g.EdgeCount()+1)
	rows = append(rows, []string{"source", "target", "weight"})
	for _, e := range g.Edges() {
		rows = append(rows, []string{e.Source, e.Target, strconv.Itoa(e.Weight)})
	}
	if err := writeQuotedCSV(path, rows); err != nil {
		return fmt.Errorf("writing edges CSV: %w", err)
	}
	return nil
}
