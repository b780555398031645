// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graphstore provides the gateway to the primary entity graph. The
// engine issues parameterized Cypher through the Gateway interface and
// receives rows of named columns; no driver type leaks past this package.
// Implements: prd002-store R1-R4; docs/ARCHITECTURE § Graph Store.
package graphstore

import (
	"context"

	"github.com/pdiddy/citegraph/pkg/types"
)

// Row is one result row keyed by the query's return column names.
type Row map[string]any

// AsString returns the named column as a string, or the empty-text sentinel
// when the column is absent, null, or not a string.
func (r Row) AsString(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return types.UnknownText
}

// AsInt returns the named column as an int. Neo4j integers arrive as int64;
// absent or null values yield the unknown-year sentinel.
func (r Row) AsInt(key string) int {
	switch v := r[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return types.UnknownYear
}

// AsFloat returns the named column as a float64, 0 when absent or null.
func (r Row) AsFloat(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// Gateway executes Cypher against the backing store. ReadRun and WriteRun are
// separate so the materialize (write-side) and projection (read-side) halves
// of network derivation stay independently testable.
type Gateway interface {
	// ReadRun executes a read-only query and returns all result rows.
	ReadRun(ctx context.Context, cypher string, params map[string]any) ([]Row, error)

	// WriteRun executes a mutating query and returns all result rows.
	WriteRun(ctx context.Context, cypher string, params map[string]any) ([]Row, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
