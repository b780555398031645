// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StoreConfig holds connection settings for the graph store. The configuration
// is passed explicitly into the gateway constructor; there is no process-wide
// default connection. Per prd003-derivation R6.1.
type StoreConfig struct {
	// URI is the bolt/neo4j connection URI (e.g. "bolt://localhost:7687").
	URI string `json:"uri" yaml:"uri"`

	// Username authenticates against the store (default "neo4j").
	Username string `json:"username" yaml:"username"`

	// Password authenticates against the store. May also be supplied through
	// the secrets directory as neo4j-password.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// Database selects the store database (default "neo4j").
	Database string `json:"database" yaml:"database"`
}

// AnalysisConfig holds settings for the network-analysis phase.
// Per prd003-derivation R1.3, prd005-analytics R5.1.
type AnalysisConfig struct {
	// Kind selects which derived network to build.
	Kind NetworkKind `json:"kind" yaml:"kind"`

	// MinWeight is the inclusive minimum edge weight for the co-citation
	// network (default 1). Other kinds ignore it.
	MinWeight int `json:"min_weight" yaml:"min_weight"`

	// Algorithm selects the community-detection chain entry point (default louvain).
	Algorithm CommunityAlgorithm `json:"algorithm" yaml:"algorithm"`

	// OutputDir is the base directory for analysis artifacts (default "output").
	// Subdirectories networks/, data/, metrics/, communities/ are created under it.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// ExportFormat selects the tabular output format for the centrality table.
// Per prd006-export R3.2.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ExportConfig holds settings for result serialization.
// Per prd006-export R3.1-R3.3.
type ExportConfig struct {
	// CentralityFormat selects csv or json for the per-node centrality table.
	CentralityFormat ExportFormat `json:"centrality_format" yaml:"centrality_format"`
}

// CatalogConfig holds settings for the run-history catalog.
// Per prd007-catalog R1.2.
type CatalogConfig struct {
	// Path is the SQLite database file (default "catalog/citegraph.db").
	Path string `json:"path" yaml:"path"`
}

// ContainerConfig holds settings for the locally managed store container.
type ContainerConfig struct {
	// Image is the store container image (default "neo4j:5").
	Image string `json:"image" yaml:"image"`

	// Name is the container name (default "citegraph-neo4j").
	Name string `json:"name" yaml:"name"`

	// DataDir is the host directory mounted for store data (default ".neo4j/data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Store     StoreConfig     `json:"store" yaml:"store"`
	Analysis  AnalysisConfig  `json:"analysis" yaml:"analysis"`
	Export    ExportConfig    `json:"export" yaml:"export"`
	Catalog   CatalogConfig   `json:"catalog" yaml:"catalog"`
	Container ContainerConfig `json:"container" yaml:"container"`
}
