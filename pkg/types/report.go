// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AuthorCount pairs an author name with the number of documents they authored
// inside the assessed set. Per prd004-quality R5.3.
type AuthorCount struct {
	// Name is the author name.
	Name string `json:"name" yaml:"name"`

	// PaperCount is the number of documents in the set authored by Name.
	PaperCount int `json:"paper_count" yaml:"paper_count"`
}

// QualityReport is the scorecard assessing whether a co-citation document set
// supports bibliometric conclusions. Five criteria are scored; source
// duplication and missing-field rates are informational only.
// Per prd004-quality R1-R7.
type QualityReport struct {
	// DocumentCount is the number of documents in the assessed set.
	DocumentCount int `json:"document_count" yaml:"document_count"`

	// MeetsVolumeThreshold is true when DocumentCount >= 200.
	MeetsVolumeThreshold bool `json:"meets_volume_threshold" yaml:"meets_volume_threshold"`

	// DOIRefPercentage is the share of documents having both a DOI and at
	// least one outbound reference.
	DOIRefPercentage float64 `json:"doi_ref_percentage" yaml:"doi_ref_percentage"`

	// MeetsDOIRefThreshold is true when DOIRefPercentage >= 90.
	MeetsDOIRefThreshold bool `json:"meets_doi_ref_threshold" yaml:"meets_doi_ref_threshold"`

	// MinYear and MaxYear bound the known publication years; UnknownYear when
	// no document has a known year.
	MinYear int `json:"min_year" yaml:"min_year"`
	MaxYear int `json:"max_year" yaml:"max_year"`

	// UniqueYears counts distinct known publication years.
	UniqueYears int `json:"unique_years" yaml:"unique_years"`

	// TemporalCoverage renders the year range ("1998-2025"), or "No data"
	// when no document has a known year.
	TemporalCoverage string `json:"temporal_coverage" yaml:"temporal_coverage"`

	// MeetsTemporalThreshold is true when MinYear <= 2000 and MaxYear >= 2024.
	MeetsTemporalThreshold bool `json:"meets_temporal_threshold" yaml:"meets_temporal_threshold"`

	// CountryCount is the number of distinct institution addresses reachable
	// from the document set.
	CountryCount int `json:"country_count" yaml:"country_count"`

	// MeetsGeographicThreshold is true when CountryCount >= 5.
	MeetsGeographicThreshold bool `json:"meets_geographic_threshold" yaml:"meets_geographic_threshold"`

	// RecurringAuthors counts authors with more than one document in the set.
	RecurringAuthors int `json:"recurring_authors" yaml:"recurring_authors"`

	// MeetsAuthorThreshold is true when RecurringAuthors >= 10.
	MeetsAuthorThreshold bool `json:"meets_author_threshold" yaml:"meets_author_threshold"`

	// TopAuthors lists up to ten authors by descending document count. Ties
	// keep the store's arrival order.
	TopAuthors []AuthorCount `json:"top_authors" yaml:"top_authors"`

	// SourceDuplicationPercentage = (documents - distinct venues) / documents * 100.
	SourceDuplicationPercentage float64 `json:"source_duplication_percentage" yaml:"source_duplication_percentage"`

	// MissingDataPercentages maps field name (title, year, abstract, authors,
	// keywords) to the share of documents missing it.
	MissingDataPercentages map[string]float64 `json:"missing_data_percentages" yaml:"missing_data_percentages"`

	// CriteriaMetCount and CriteriaTotalCount summarize the scored criteria.
	CriteriaMetCount   int `json:"criteria_met_count" yaml:"criteria_met_count"`
	CriteriaTotalCount int `json:"criteria_total_count" yaml:"criteria_total_count"`

	// QualityScore = CriteriaMetCount / CriteriaTotalCount * 100.
	QualityScore float64 `json:"quality_score" yaml:"quality_score"`
}

// NetworkMetrics holds structural statistics for one derived network.
// Betweenness fields are nil when the largest component met the size guard.
// Per prd005-analytics R1-R4.
type NetworkMetrics struct {
	// NodeCount and EdgeCount size the graph.
	NodeCount int `json:"node_count" yaml:"node_count"`
	EdgeCount int `json:"edge_count" yaml:"edge_count"`

	// Density = EdgeCount / (NodeCount * (NodeCount-1) / 2); 0 for graphs
	// with fewer than two nodes.
	Density float64 `json:"density" yaml:"density"`

	// ConnectedComponents counts the components; LargestComponentSize is the
	// node count of the biggest one.
	ConnectedComponents  int `json:"connected_components" yaml:"connected_components"`
	LargestComponentSize int `json:"largest_component_size" yaml:"largest_component_size"`

	// Degree centrality over the largest component.
	MaxDegreeCentrality float64 `json:"max_degree_centrality" yaml:"max_degree_centrality"`
	AvgDegreeCentrality float64 `json:"avg_degree_centrality" yaml:"avg_degree_centrality"`

	// Betweenness centrality over the largest component, computed only when
	// that component has fewer than 1000 nodes.
	MaxBetweennessCentrality *float64 `json:"max_betweenness_centrality,omitempty" yaml:"max_betweenness_centrality,omitempty"`
	AvgBetweennessCentrality *float64 `json:"avg_betweenness_centrality,omitempty" yaml:"avg_betweenness_centrality,omitempty"`

	// AvgClusteringCoefficient is the mean clustering coefficient of the
	// largest component.
	AvgClusteringCoefficient float64 `json:"avg_clustering_coefficient" yaml:"avg_clustering_coefficient"`
}

// CommunityResult reports a community partition and which strategy produced
// it. Community ids are dense, zero-based, and meaningless across runs.
// Per prd005-analytics R5-R6.
type CommunityResult struct {
	// Algorithm is the strategy that actually ran, which may differ from the
	// requested one after fallback.
	Algorithm CommunityAlgorithm `json:"algorithm" yaml:"algorithm"`

	// Communities maps node id to community id.
	Communities map[string]int `json:"communities" yaml:"communities"`

	// CommunityCount is the number of distinct community ids.
	CommunityCount int `json:"community_count" yaml:"community_count"`

	// Modularity scores the partition; 0.0 for trivial or empty partitions.
	Modularity float64 `json:"modularity" yaml:"modularity"`
}

// CentralityRow is one node's entry in the per-node centrality table computed
// over the largest component. Per prd005-analytics R3.4.
type CentralityRow struct {
	// Node is the node identifier.
	Node string `json:"node" yaml:"node"`

	// DegreeCentrality is degree / (n-1) within the component.
	DegreeCentrality float64 `json:"degree_centrality" yaml:"degree_centrality"`

	// BetweennessCentrality is nil when the component size guard suppressed
	// the computation.
	BetweennessCentrality *float64 `json:"betweenness_centrality,omitempty" yaml:"betweenness_centrality,omitempty"`

	// ClosenessCentrality is (n-1) / sum of distances within the component.
	ClosenessCentrality float64 `json:"closeness_centrality" yaml:"closeness_centrality"`

	// Community is the node's community id, -1 when the partition lacks it.
	Community int `json:"community" yaml:"community"`
}

// CentralityTable is the full per-node table plus a flag recording whether
// the betweenness column was computed.
type CentralityTable struct {
	// Rows holds one entry per node of the largest component, in graph
	// insertion order.
	Rows []CentralityRow `json:"rows" yaml:"rows"`

	// WithBetweenness reports whether BetweennessCentrality is populated.
	WithBetweenness bool `json:"with_betweenness" yaml:"with_betweenness"`
}
