// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graphstore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/pdiddy/citegraph/pkg/types"
)

// Neo4jGateway implements Gateway over the official Bolt driver. Each call
// opens its own session; the driver pools connections underneath.
type Neo4jGateway struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jGateway connects to the store described by cfg and verifies
// connectivity before returning. The configuration is explicit; there is no
// process-wide default connection.
func NewNeo4jGateway(ctx context.Context, cfg types.StoreConfig) (*Neo4jGateway, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("connecting to neo4j at %s: %w", cfg.URI, err)
	}

	database := cfg.Database
	if database == "" {
		database = "neo4j"
	}

	return &Neo4jGateway{driver: driver, database: database}, nil
}

// Close shuts down the driver and its connection pool.
func (g *Neo4jGateway) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

// ReadRun executes cypher inside a read transaction and collects every row.
func (g *Neo4jGateway) ReadRun(ctx context.Context, cypher string, params map[string]any) ([]Row, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: g.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collectRows(ctx, tx, cypher, params)
	})
	if err != nil {
		return nil, fmt.Errorf("read query: %w", err)
	}
	return result.([]Row), nil
}

// WriteRun executes cypher inside a write transaction and collects every row.
func (g *Neo4jGateway) WriteRun(ctx context.Context, cypher string, params map[string]any) ([]Row, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: g.database})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collectRows(ctx, tx, cypher, params)
	})
	if err != nil {
		return nil, fmt.Errorf("write query: %w", err)
	}
	return result.([]Row), nil
}

func collectRows(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) ([]Row, error) {
	result, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for result.Next(ctx) {
		record := result.Record()
		row := make(Row, len(record.Keys))
		for _, key := range record.Keys {
			val, _ := record.Get(key)
			row[key] = val
		}
		rows = append(rows, row)
	}
	return rows, result.Err()
}
