// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citegraph/internal/derive"
	"github.com/pdiddy/citegraph/internal/quality"
	"github.com/pdiddy/citegraph/pkg/types"
)

var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Score the co-citation corpus against the quality criteria",
	Long: `Quality builds the co-citation network and scores its document set
against the five corpus criteria (volume, DOI/reference completeness,
temporal coverage, geographic diversity, key-author participation), plus
informational duplication and missing-data rates. No files are written;
use analyze for a full run with exports.`,
	RunE: runQuality,
}

func init() {
	qualityCmd.Flags().Int("min-weight", 1, "minimum shared references per co-citation edge")
	qualityCmd.Flags().Bool("json", false, "output the scorecard as JSON")
	qualityCmd.Flags().Bool("skip-materialize", false, "read existing derived relationships without re-materializing")
	addStoreFlags(qualityCmd)

	rootCmd.AddCommand(qualityCmd)
}

func runQuality(cmd *cobra.Command, args []string) error {
	minWeight, _ := cmd.Flags().GetInt("min-weight")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	skipMaterialize, _ := cmd.Flags().GetBool("skip-materialize")

	ctx := context.Background()
	gw, err := openGateway(ctx, cmd)
	if err != nil {
		return err
	}
	defer gw.Close(ctx)

	logger := slog.Default()
	builder := derive.NewBuilder(gw, logger)

	build := builder.Build
	if skipMaterialize {
		build = builder.Read
	}
	g, err := build(ctx, types.NetworkCoCitation, minWeight)
	if err != nil {
		return err
	}

	report, err := quality.NewScorer(gw, logger).Score(ctx, g.Nodes())
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printQualityReport(report)
	return nil
}

func printQualityReport(r *types.QualityReport) {
	check := func(met bool) string {
		if met {
			return "met"
		}
		return "NOT met"
	}

	fmt.Printf("Documents: %d\n\n", r.DocumentCount)
	fmt.Printf("Volume >= %d:                %s\n", quality.VolumeThreshold, check(r.MeetsVolumeThreshold))
	fmt.Printf("DOI + references >= %.0f%%:    %s (%.1f%%)\n", quality.DOIRefThreshold, check(r.MeetsDOIRefThreshold), r.DOIRefPercentage)
	fmt.Printf("Temporal coverage:          %s (%s)\n", check(r.MeetsTemporalThreshold), r.TemporalCoverage)
	fmt.Printf("Distinct addresses >= %d:    %s (%d)\n", quality.GeographicThreshold, check(r.MeetsGeographicThreshold), r.CountryCount)
	fmt.Printf("Recurring authors >= %d:    %s (%d)\n", quality.AuthorThreshold, check(r.MeetsAuthorThreshold), r.RecurringAuthors)

	if len(r.TopAuthors) > 0 {
		fmt.Println("\nTop authors:")
		for _, a := range r.TopAuthors {
			fmt.Printf("  %-40s %d\n", a.Name, a.PaperCount)
		}
	}

	fmt.Printf("\nSource duplication: %.1f%%\n", r.SourceDuplicationPercentage)
	fmt.Println("Missing data:")
	for _, field := range []string{"title", "year", "abstract", "authors", "keywords"} {
		fmt.Printf("  %-10s %.1f%%\n", field, r.MissingDataPercentages[field])
	}

	fmt.Printf("\nQuality score: %.0f/100 (%d of %d criteria)\n",
		r.QualityScore, r.CriteriaMetCount, r.CriteriaTotalCount)
}
