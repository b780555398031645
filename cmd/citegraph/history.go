// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citegraph/internal/catalog"
	"github.com/pdiddy/citegraph/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded analysis runs",
	Long: `History lists past analysis runs from the catalog, newest first. With a
run id argument it shows that run's full record including every artifact
the run wrote.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("catalog", "catalog/citegraph.db", "catalog database file")
	historyCmd.Flags().Int("limit", 20, "maximum runs to list (0 = all)")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	catalogPath, _ := cmd.Flags().GetString("catalog")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cat, err := catalog.Open(types.CatalogConfig{Path: catalogPath})
	if err != nil {
		return err
	}
	defer cat.Close()

	ctx := context.Background()

	if len(args) == 1 {
		rec, err := cat.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("run %s: %w", args[0], err)
		}
		if jsonOutput {
			return printJSON(rec)
		}
		printRunDetail(rec)
		return nil
	}

	runs, err := cat.List(ctx, limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(runs)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	printRunTable(runs)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRunTable(runs []catalog.RunRecord) {
	fmt.Fprintf(os.Stdout, "%-36s  %-19s  %-26s  %7s  %7s  %7s\n",
		"Run", "Started", "Kind", "Nodes", "Edges", "Quality")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 112))

	for _, r := range runs {
		quality := "-"
		if r.QualityScore != nil {
			quality = fmt.Sprintf("%.0f", *r.QualityScore)
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-19s  %-26s  %7d  %7d  %7s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Kind.Slug(), r.NodeCount, r.EdgeCount, quality)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
}

func printRunDetail(r *catalog.RunRecord) {
	fmt.Printf("Run:         %s\n", r.ID)
	fmt.Printf("Kind:        %s (min weight %d)\n", r.Kind.Slug(), r.MinWeight)
	fmt.Printf("Started:     %s\n", r.StartedAt.Local().Format(time.RFC3339))
	fmt.Printf("Finished:    %s\n", r.FinishedAt.Local().Format(time.RFC3339))
	fmt.Printf("Network:     %d nodes, %d edges\n", r.NodeCount, r.EdgeCount)
	if r.QualityScore != nil {
		fmt.Printf("Quality:     %.0f/100\n", *r.QualityScore)
	}
	fmt.Printf("Communities: %d (%s, modularity %.3f)\n", r.CommunityCount, r.Algorithm, r.Modularity)
	fmt.Printf("Output:      %s\n", r.OutputDir)

	if len(r.Artifacts) > 0 {
		fmt.Println("Artifacts:")
		for _, a := range r.Artifacts {
			fmt.Printf("  %-12s %s\n", a.Kind, a.Path)
		}
	}
}
