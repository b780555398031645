// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/citegraph/internal/catalog"
	"github.com/pdiddy/citegraph/internal/derive"
	"github.com/pdiddy/citegraph/internal/export"
	"github.com/pdiddy/citegraph/internal/netgraph"
	"github.com/pdiddy/citegraph/internal/quality"
	"github.com/pdiddy/citegraph/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build a derived network, analyze it, and export the results",
	Long: `Analyze runs the full pipeline for one network kind: materialize the
derived relationships in the store, read them back into an in-memory graph,
score corpus quality (co-citation only), compute structural metrics and a
community partition, export all artifacts under the output directory, and
record the run in the catalog.

An empty built network is a warning, not an error: there is nothing to
analyze, and the command exits successfully.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("kind", string(types.NetworkCoCitation), "network kind: co-citation, author, institution, keyword")
	analyzeCmd.Flags().Int("min-weight", 1, "minimum shared references per co-citation edge")
	analyzeCmd.Flags().String("algorithm", string(types.AlgorithmLouvain), "community algorithm: louvain, label-propagation, greedy-modularity, trivial")
	analyzeCmd.Flags().String("output", "output", "base directory for analysis artifacts")
	analyzeCmd.Flags().String("format", string(types.FormatCSV), "centrality table format: csv or json")
	analyzeCmd.Flags().String("catalog", "catalog/citegraph.db", "catalog database file")
	analyzeCmd.Flags().Bool("dry-run", false, "log planned actions without touching the store or filesystem")
	analyzeCmd.Flags().Bool("skip-materialize", false, "read existing derived relationships without re-materializing")
	addStoreFlags(analyzeCmd)

	rootCmd.AddCommand(analyzeCmd)
}

// analysisOptions collects the parsed analyze flags.
type analysisOptions struct {
	kind            types.NetworkKind
	minWeight       int
	algorithm       types.CommunityAlgorithm
	outputDir       string
	format          types.ExportFormat
	catalogPath     string
	dryRun          bool
	skipMaterialize bool
}

func parseAnalysisFlags(cmd *cobra.Command) (analysisOptions, error) {
	var opts analysisOptions

	kindStr, _ := cmd.Flags().GetString("kind")
	kind, err := types.ParseNetworkKind(kindStr)
	if err != nil {
		return opts, err
	}

	algStr, _ := cmd.Flags().GetString("algorithm")
	alg, err := types.ParseCommunityAlgorithm(algStr)
	if err != nil {
		return opts, err
	}

	formatStr, _ := cmd.Flags().GetString("format")
	format := types.ExportFormat(formatStr)
	if format != types.FormatCSV && format != types.FormatJSON {
		return opts, fmt.Errorf("%w: %q", export.ErrUnsupportedFormat, formatStr)
	}

	opts.kind = kind
	opts.algorithm = alg
	opts.format = format
	opts.minWeight, _ = cmd.Flags().GetInt("min-weight")
	opts.outputDir, _ = cmd.Flags().GetString("output")
	opts.catalogPath, _ = cmd.Flags().GetString("catalog")
	opts.dryRun, _ = cmd.Flags().GetBool("dry-run")
	opts.skipMaterialize, _ = cmd.Flags().GetBool("skip-materialize")
	return opts, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	opts, err := parseAnalysisFlags(cmd)
	if err != nil {
		return err
	}

	if opts.dryRun {
		printAnalysisPlan(opts)
		return nil
	}

	ctx := context.Background()
	gw, err := openGateway(ctx, cmd)
	if err != nil {
		return err
	}
	defer gw.Close(ctx)

	logger := slog.Default()
	started := time.Now()
	slug := opts.kind.Slug()

	builder := derive.NewBuilder(gw, logger)
	if !opts.skipMaterialize {
		count, err := builder.Materialize(ctx, opts.kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Materialized %d %s relationships\n", count, opts.kind.EdgeType())
	}

	g, err := builder.Read(ctx, opts.kind, opts.minWeight)
	if err != nil {
		return err
	}
	if g.NodeCount() == 0 {
		fmt.Fprintf(os.Stderr, "warning: %s network is empty, nothing to analyze\n", slug)
		return nil
	}
	fmt.Fprintf(os.Stderr, "Built %s network: %d nodes, %d edges\n", slug, g.NodeCount(), g.EdgeCount())

	if err := makeOutputDirs(opts.outputDir); err != nil {
		return err
	}

	var artifacts []catalog.Artifact
	var qualityScore *float64

	if opts.kind == types.NetworkCoCitation {
		report, err := quality.NewScorer(gw, logger).Score(ctx, g.Nodes())
		if err != nil {
			return err
		}
		qualityScore = &report.QualityScore
		path := filepath.Join(opts.outputDir, "metrics", slug+"_quality.yaml")
		if err := export.WriteYAMLReport(report, path); err != nil {
			return err
		}
		artifacts = append(artifacts, catalog.Artifact{Kind: "quality", Path: path})
		fmt.Fprintf(os.Stderr, "Quality score: %.0f/100 (%d of %d criteria)\n",
			report.QualityScore, report.CriteriaMetCount, report.CriteriaTotalCount)
	}

	metrics := netgraph.CalculateMetrics(g, logger)
	result := netgraph.NewDetector(logger).Detect(g, opts.algorithm)
	table := netgraph.BuildCentralityTable(g, result.Communities)
	fmt.Fprintf(os.Stderr, "Communities: %d (%s, modularity %.3f)\n",
		result.CommunityCount, result.Algorithm, result.Modularity)

	paths := export.NetworkPathsFor(opts.outputDir, opts.kind)
	if err := export.WriteNetwork(ctx, g, paths); err != nil {
		return err
	}
	artifacts = append(artifacts,
		catalog.Artifact{Kind: "graphml", Path: paths.GraphML},
		catalog.Artifact{Kind: "nodes_csv", Path: paths.NodesCSV},
		catalog.Artifact{Kind: "edges_csv", Path: paths.EdgesCSV},
	)

	metricsPath := filepath.Join(opts.outputDir, "metrics", slug+"_metrics.yaml")
	if err := export.WriteYAMLReport(metrics, metricsPath); err != nil {
		return err
	}
	artifacts = append(artifacts, catalog.Artifact{Kind: "metrics", Path: metricsPath})

	centralityPath := filepath.Join(opts.outputDir, "metrics", slug+"_centrality."+string(opts.format))
	if err := export.WriteCentralityTable(table, centralityPath, opts.format); err != nil {
		return err
	}
	artifacts = append(artifacts, catalog.Artifact{Kind: "centrality", Path: centralityPath})

	communitiesPath := filepath.Join(opts.outputDir, "communities", slug+"_communities.yaml")
	if err := export.WriteYAMLReport(result, communitiesPath); err != nil {
		return err
	}
	artifacts = append(artifacts, catalog.Artifact{Kind: "communities", Path: communitiesPath})

	cat, err := catalog.Open(types.CatalogConfig{Path: opts.catalogPath})
	if err != nil {
		return err
	}
	defer cat.Close()

	rec := catalog.RunRecord{
		ID:             uuid.NewString(),
		StartedAt:      started,
		FinishedAt:     time.Now(),
		Kind:           opts.kind,
		MinWeight:      opts.minWeight,
		NodeCount:      g.NodeCount(),
		EdgeCount:      g.EdgeCount(),
		QualityScore:   qualityScore,
		Algorithm:      result.Algorithm,
		CommunityCount: result.CommunityCount,
		Modularity:     result.Modularity,
		OutputDir:      opts.outputDir,
		Artifacts:      artifacts,
	}
	if err := cat.Record(ctx, rec); err != nil {
		return err
	}

	fmt.Printf("Analysis complete: %d artifacts under %s (run %s)\n",
		len(artifacts), opts.outputDir, rec.ID)
	return nil
}

func printAnalysisPlan(opts analysisOptions) {
	slug := opts.kind.Slug()
	fmt.Fprintf(os.Stderr, "[dry-run] would materialize %s relationships\n", opts.kind.EdgeType())
	if opts.kind == types.NetworkCoCitation {
		fmt.Fprintf(os.Stderr, "[dry-run] would read %s network with min weight %d\n", slug, opts.minWeight)
		fmt.Fprintf(os.Stderr, "[dry-run] would write %s/metrics/%s_quality.yaml\n", opts.outputDir, slug)
	} else {
		fmt.Fprintf(os.Stderr, "[dry-run] would read %s network\n", slug)
	}
	fmt.Fprintf(os.Stderr, "[dry-run] would detect communities starting from %s\n", opts.algorithm)
	fmt.Fprintf(os.Stderr, "[dry-run] would write %s/networks/%s_network.graphml\n", opts.outputDir, slug)
	fmt.Fprintf(os.Stderr, "[dry-run] would write %s/data/%s_nodes.csv and %s_edges.csv\n", opts.outputDir, slug, slug)
	fmt.Fprintf(os.Stderr, "[dry-run] would write %s/metrics/%s_metrics.yaml and %s_centrality.%s\n",
		opts.outputDir, slug, slug, opts.format)
	fmt.Fprintf(os.Stderr, "[dry-run] would write %s/communities/%s_communities.yaml\n", opts.outputDir, slug)
	fmt.Fprintf(os.Stderr, "[dry-run] would record the run in %s\n", opts.catalogPath)
}

func makeOutputDirs(outputDir string) error {
	for _, sub := range []string{"networks", "data", "metrics", "communities"} {
		if err := os.MkdirAll(filepath.Join(outputDir, sub), 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", sub, err)
		}
	}
	return nil
}
