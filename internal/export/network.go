// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/citegraph/internal/netgraph"
	"github.com/pdiddy/citegraph/pkg/types"
)

// NetworkPaths names the three files one network export produces.
type NetworkPaths struct {
	GraphML  string
	NodesCSV string
	EdgesCSV string
}

// NetworkPathsFor computes the per-kind file paths under the standard output
// layout: networks/ for GraphML, data/ for the CSV pair.
func NetworkPathsFor(outputDir string, kind types.NetworkKind) NetworkPaths {
	slug := kind.Slug()
	return NetworkPaths{
		GraphML:  filepath.Join(outputDir, "networks", slug+"_network.graphml"),
		NodesCSV: filepath.Join(outputDir, "data", slug+"_nodes.csv"),
		EdgesCSV: filepath.Join(outputDir, "data", slug+"_edges.csv"),
	}
}

// WriteNetwork writes the GraphML file and the nodes/edges CSV pair. The
// three files are independent, so they are written concurrently; the first
// failure cancels the remaining writes and is returned.
func WriteNetwork(ctx context.Context, g *netgraph.WeightedGraph, paths NetworkPaths) error {
	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error { return WriteGraphML(g, paths.GraphML) })
	eg.Go(func() error { return WriteNodesCSV(g, paths.NodesCSV) })
	eg.Go(func() error { return WriteEdgesCSV(g, paths.EdgesCSV) })
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("exporting network files: %w", err)
	}
	return nil
}
