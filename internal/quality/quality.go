// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quality scores whether the co-citation network's document set is
// adequate for bibliometric conclusions. Five criteria are scored (volume,
// DOI+reference completeness, temporal coverage, geographic diversity,
// key-author participation); source duplication and missing-field rates are
// reported without a threshold.
// Implements: prd004-quality R1-R7; docs/ARCHITECTURE § Quality.
package quality

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdiddy/citegraph/internal/graphstore"
	"github.com/pdiddy/citegraph/pkg/types"
)

// Thresholds for the five scored criteria.
const (
	VolumeThreshold     = 200
	DOIRefThreshold     = 90.0
	TemporalMinYear     = 2000
	TemporalMaxYear     = 2024
	GeographicThreshold = 5
	AuthorThreshold     = 10
)

// noData is the temporal coverage rendering when no document has a known year.
const noData = "No data"

const (
	doiRefQuery = `
	MATCH (p:Paper)
	WHERE p.doi IN $dois
	RETURN COUNT(p) AS total,
	       SUM(CASE
	               WHEN p.doi IS NOT NULL AND EXISTS { (p)-[:REFERENCES]->() }
	               THEN 1
	               ELSE 0
	           END) AS with_doi_and_refs`

	yearQuery = `
	MATCH (p:Paper)
	WHERE p.doi IN $dois AND p.year IS NOT NULL
	RETURN MIN(toInteger(p.year)) AS min_year,
	       MAX(toInteger(p.year)) AS max_year,
	       COUNT(DISTINCT p.year) AS unique_years`

	addressQuery = `
	MATCH (a:Author)-[:AUTHORED]->(p:Paper)
	WHERE p.doi IN $dois
	MATCH (a)-[:AFFILIATED_WITH]->(i:Institution)
	RETURN COUNT(DISTINCT i.address) AS address_count`

	recurringAuthorQuery = `
	MATCH (a:Author)-[:AUTHORED]->(p:Paper)
	WHERE p.doi IN $dois
	WITH a, COUNT(p) AS paper_count
	WHERE paper_count > 1
	RETURN COUNT(a) AS recurring_authors`

	topAuthorsQuery = `
	MATCH (a:Author)-[:AUTHORED]->(p:Paper)
	WHERE p.doi IN $dois
	WITH a, COUNT(p) AS paper_count
	ORDER BY paper_count DESC
	LIMIT 10
	RETURN a.name AS author_name, paper_count`

	sourceQuery = `
	MATCH (p:Paper)
	WHERE p.doi IN $dois
	RETURN COUNT(p) AS total,
	       COUNT(DISTINCT p.source) AS unique_sources`

	missingDataQuery = `
	MATCH (p:Paper)
	WHERE p.doi IN $dois
	RETURN COUNT(p) AS total,
	       SUM(CASE WHEN p.title IS NULL THEN 1 ELSE 0 END) AS missing_title,
	       SUM(CASE WHEN p.year IS NULL THEN 1 ELSE 0 END) AS missing_year,
	       SUM(CASE WHEN p.abstract IS NULL THEN 1 ELSE 0 END) AS missing_abstract,
	       SUM(CASE WHEN NOT EXISTS { (p)<-[:AUTHORED]-() } THEN 1 ELSE 0 END) AS missing_authors,
	       SUM(CASE WHEN NOT EXISTS { (p)-[:HAS_KEYWORD]->() } THEN 1 ELSE 0 END) AS missing_keywords`
)

// missingFields names the informational missing-data rates, in report order.
var missingFields = []string{"title", "year", "abstract", "authors", "keywords"}

// Scorer computes the quality scorecard over a co-citation document set.
type Scorer struct {
	gw     graphstore.Gateway
	logger *slog.Logger
}

// NewScorer returns a scorer over the given gateway.
func NewScorer(gw graphstore.Gateway, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{gw: gw, logger: logger}
}

// Score assesses the document set identified by dois. An empty set yields a
// report with every percentage 0, every flag false, and score 0; no query is
// issued for it.
func (s *Scorer) Score(ctx context.Context, dois []string) (*types.QualityReport, error) {
	report := &types.QualityReport{
		DocumentCount:          len(dois),
		MinYear:                types.UnknownYear,
		MaxYear:                types.UnknownYear,
		TemporalCoverage:       noData,
		TopAuthors:             []types.AuthorCount{},
		MissingDataPercentages: zeroMissing(),
		CriteriaTotalCount:     5,
	}
	report.MeetsVolumeThreshold = report.DocumentCount >= VolumeThreshold

	if len(dois) == 0 {
		s.logger.Info("quality scorecard on empty document set")
		finalize(report)
		return report, nil
	}

	params := map[string]any{"dois": dois}

	if err := s.scoreDOIRefs(ctx, params, report); err != nil {
		return nil, err
	}
	if err := s.scoreTemporal(ctx, params, report); err != nil {
		return nil, err
	}
	if err := s.scoreGeographic(ctx, params, report); err != nil {
		return nil, err
	}
	if err := s.scoreAuthors(ctx, params, report); err != nil {
		return nil, err
	}
	if err := s.scoreSources(ctx, params, report); err != nil {
		return nil, err
	}
	if err := s.scoreMissingData(ctx, params, report); err != nil {
		return nil, err
	}

	finalize(report)
	s.logger.Info("quality scorecard complete",
		"documents", report.DocumentCount,
		"criteria_met", report.CriteriaMetCount,
		"score", report.QualityScore)
	return report, nil
}

func (s *Scorer) scoreDOIRefs(ctx context.Context, params map[string]any, report *types.QualityReport) error {
	rows, err := s.gw.ReadRun(ctx, doiRefQuery, params)
	if err != nil {
		return fmt.Errorf("doi/reference completeness query: %w", err)
	}
	if len(rows) > 0 {
		total := rows[0].AsFloat("total")
		withBoth := rows[0].AsFloat("with_doi_and_refs")
		if total > 0 {
			report.DOIRefPercentage = withBoth / total * 100
		}
	}
	report.MeetsDOIRefThreshold = report.DOIRefPercentage >= DOIRefThreshold
	return nil
}

func (s *Scorer) scoreTemporal(ctx context.Context, params map[string]any, report *types.QualityReport) error {
	rows, err := s.gw.ReadRun(ctx, yearQuery, params)
	if err != nil {
		return fmt.Errorf("temporal coverage query: %w", err)
	}
	if len(rows) == 0 || rows[0]["min_year"] == nil {
		// No document has a known year; the criterion fails.
		return nil
	}
	report.MinYear = rows[0].AsInt("min_year")
	report.MaxYear = rows[0].AsInt("max_year")
	report.UniqueYears = rows[0].AsInt("unique_years")
	report.TemporalCoverage = fmt.Sprintf("%d-%d", report.MinYear, report.MaxYear)
	report.MeetsTemporalThreshold = report.MinYear <= TemporalMinYear && report.MaxYear >= TemporalMaxYear
	return nil
}

func (s *Scorer) scoreGeographic(ctx context.Context, params map[string]any, report *types.QualityReport) error {
	rows, err := s.gw.ReadRun(ctx, addressQuery, params)
	if err != nil {
		return fmt.Errorf("geographic diversity query: %w", err)
	}
	if len(rows) > 0 {
		report.CountryCount = rows[0].AsInt("address_count")
		if report.CountryCount < 0 {
			report.CountryCount = 0
		}
	}
	report.MeetsGeographicThreshold = report.CountryCount >= GeographicThreshold
	return nil
}

func (s *Scorer) scoreAuthors(ctx context.Context, params map[string]any, report *types.QualityReport) error {
	rows, err := s.gw.ReadRun(ctx, recurringAuthorQuery, params)
	if err != nil {
		return fmt.Errorf("recurring author query: %w", err)
	}
	if len(rows) > 0 {
		report.RecurringAuthors = rows[0].AsInt("recurring_authors")
		if report.RecurringAuthors < 0 {
			report.RecurringAuthors = 0
		}
	}
	report.MeetsAuthorThreshold = report.RecurringAuthors >= AuthorThreshold

	topRows, err := s.gw.ReadRun(ctx, topAuthorsQuery, params)
	if err != nil {
		return fmt.Errorf("top authors query: %w", err)
	}
	// Arrival order of the ORDER BY result is kept; ties are not re-sorted.
	for _, row := range topRows {
		name := row.AsString("author_name")
		if name == "" {
			continue
		}
		report.TopAuthors = append(report.TopAuthors, types.AuthorCount{
			Name:       name,
			PaperCount: row.AsInt("paper_count"),
		})
	}
	return nil
}

func (s *Scorer) scoreSources(ctx context.Context, params map[string]any, report *types.QualityReport) error {
	rows, err := s.gw.ReadRun(ctx, sourceQuery, params)
	if err != nil {
		return fmt.Errorf("source duplication query: %w", err)
	}
	if len(rows) > 0 {
		total := rows[0].AsFloat("total")
		unique := rows[0].AsFloat("unique_sources")
		if total > 0 {
			report.SourceDuplicationPercentage = (total - unique) / total * 100
		}
	}
	return nil
}

func (s *Scorer) scoreMissingData(ctx context.Context, params map[string]any, report *types.QualityReport) error {
	rows, err := s.gw.ReadRun(ctx, missingDataQuery, params)
	if err != nil {
		return fmt.Errorf("missing data query: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}
	total := rows[0].AsFloat("total")
	if total <= 0 {
		return nil
	}
	for _, field := range missingFields {
		missing := rows[0].AsFloat("missing_" + field)
		if missing < 0 {
			missing = 0
		}
		report.MissingDataPercentages[field] = missing / total * 100
	}
	return nil
}

func zeroMissing() map[string]float64 {
	m := make(map[string]float64, len(missingFields))
	for _, field := range missingFields {
		m[field] = 0
	}
	return m
}

func finalize(report *types.QualityReport) {
	met := 0
	for _, ok := range []bool{
		report.MeetsVolumeThreshold,
		report.MeetsDOIRefThreshold,
		report.MeetsTemporalThreshold,
		report.MeetsGeographicThreshold,
		report.MeetsAuthorThreshold,
	} {
		if ok {
			met++
		}
	}
	report.CriteriaMetCount = met
	report.QualityScore = float64(met) / float64(report.CriteriaTotalCount) * 100
}
