// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pdiddy/citegraph/pkg/types"
)

// ErrUnsupportedFormat reports a centrality export format outside csv/json.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// WriteCentralityTable writes the per-node centrality table in the requested
// format. CSV output uses the fully-quoted dialect and includes a betweenness
// column only when the table carries one; JSON is an indented array of row
// objects. Any other format is a configuration error wrapping
// ErrUnsupportedFormat.
func WriteCentralityTable(table *types.CentralityTable, path string, format types.ExportFormat) error {
	switch format {
	case types.FormatCSV:
		return writeCentralityCSV(table, path)
	case types.FormatJSON:
		data, err := json.MarshalIndent(table.Rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling centrality JSON: %w", err)
		}
		return os.WriteFile(path, data, 0o644)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func writeCentralityCSV(table *types.CentralityTable, path string) error {
	header := []string{"node", "degree_centrality"}
	if table.WithBetweenness {
		header = append(header, "betweenness_centrality")
	}
	header = append(header, "closeness_centrality", "community")

	rows := make([][]string, 0, len(table.Rows)+1)
	rows = append(rows, header)
	for _, r := range table.Rows {
		row := []string{r.Node, formatFloat(r.DegreeCentrality)}
		if table.WithBetweenness {
			var bc float64
			if r.BetweennessCentrality != nil {
				bc = *r.BetweennessCentrality
			}
			row = append(row, formatFloat(bc))
		}
		row = append(row, formatFloat(r.ClosenessCentrality), strconv.Itoa(r.Community))
		rows = append(rows, row)
	}

	if err := writeQuotedCSV(path, rows); err != nil {
		return fmt.Errorf("writing centrality CSV: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
