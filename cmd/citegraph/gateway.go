// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citegraph/internal/graphstore"
	"github.com/pdiddy/citegraph/pkg/types"
)

// addStoreFlags registers the graph store connection flags shared by every
// command that talks to the store.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("uri", "", "graph store bolt URI (default bolt://localhost:7687)")
	cmd.Flags().String("username", "", "graph store username (default neo4j)")
	cmd.Flags().String("password", "", "graph store password (default from .secrets/neo4j-password)")
	cmd.Flags().String("database", "", "graph store database (default neo4j)")
}

// storeConfig resolves the store connection settings with precedence
// flags > environment/config file > secrets > defaults.
func storeConfig(cmd *cobra.Command) types.StoreConfig {
	uri, _ := cmd.Flags().GetString("uri")
	if uri == "" {
		uri = viper.GetString("store.uri")
	}
	if uri == "" {
		uri = "bolt://localhost:7687"
	}

	username, _ := cmd.Flags().GetString("username")
	if username == "" {
		username = viper.GetString("store.username")
	}
	if username == "" {
		username = secretDefault("neo4j-username", "")
	}
	if username == "" {
		username = "neo4j"
	}

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = viper.GetString("store.password")
	}
	password = secretDefault("neo4j-password", password)

	database, _ := cmd.Flags().GetString("database")
	if database == "" {
		database = viper.GetString("store.database")
	}
	if database == "" {
		database = "neo4j"
	}

	return types.StoreConfig{
		URI:      uri,
		Username: username,
		Password: password,
		Database: database,
	}
}

// openGateway connects to the graph store and verifies connectivity.
func openGateway(ctx context.Context, cmd *cobra.Command) (graphstore.Gateway, error) {
	return graphstore.NewNeo4jGateway(ctx, storeConfig(cmd))
}
