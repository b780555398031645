// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records analysis runs and the files they produced in a
// local SQLite database, so past runs can be listed and their artifacts
// located without re-running the analysis.
// Implements: prd007-catalog R1-R4; docs/ARCHITECTURE § Catalog.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/citegraph/pkg/types"
)

// Artifact is one file an analysis run wrote.
type Artifact struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// RunRecord describes one completed analysis run.
type RunRecord struct {
	ID             string                  `json:"id"`
	StartedAt      time.Time               `json:"started_at"`
	FinishedAt     time.Time               `json:"finished_at"`
	Kind           types.NetworkKind       `json:"kind"`
	MinWeight      int                     `json:"min_weight"`
	NodeCount      int                     `json:"node_count"`
	EdgeCount      int                     `json:"edge_count"`
	QualityScore   *float64                `json:"quality_score,omitempty"`
	Algorithm      types.CommunityAlgorithm `json:"algorithm"`
	CommunityCount int                     `json:"community_count"`
	Modularity     float64                 `json:"modularity"`
	OutputDir      string                  `json:"output_dir"`
	Artifacts      []Artifact              `json:"artifacts,omitempty"`
}

// Catalog manages the run-history SQLite database.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog at cfg.Path, creating the schema and any
// missing parent directories.
func Open(cfg types.CatalogConfig) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			kind TEXT NOT NULL,
			min_weight INTEGER NOT NULL,
			node_count INTEGER NOT NULL,
			edge_count INTEGER NOT NULL,
			quality_score REAL,
			algorithm TEXT NOT NULL,
			community_count INTEGER NOT NULL,
			modularity REAL NOT NULL,
			output_dir TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			run_id TEXT NOT NULL REFERENCES runs(id),
			kind TEXT NOT NULL,
			path TEXT NOT NULL,
			PRIMARY KEY (run_id, kind, path)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}

	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts a run and its artifacts in one transaction. Recording the
// same run id again is a no-op, so a retried pipeline never duplicates
// history.
func (c *Catalog) Record(ctx context.Context, rec RunRecord) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var score any
	if rec.QualityScore != nil {
		score = *rec.QualityScore
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, kind, min_weight, node_count,
			edge_count, quality_score, algorithm, community_count, modularity, output_dir)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		rec.ID,
		rec.StartedAt.UTC().Format(time.RFC3339),
		rec.FinishedAt.UTC().Format(time.RFC3339),
		string(rec.Kind), rec.MinWeight, rec.NodeCount, rec.EdgeCount,
		score, string(rec.Algorithm), rec.CommunityCount, rec.Modularity, rec.OutputDir,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Run already recorded; keep the original artifacts too.
		return nil
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO artifacts (run_id, kind, path) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing artifact insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range rec.Artifacts {
		if _, err := stmt.ExecContext(ctx, rec.ID, a.Kind, a.Path); err != nil {
			return fmt.Errorf("inserting artifact %s: %w", a.Path, err)
		}
	}

	return tx.Commit()
}

// List returns up to limit runs, newest first by start time. Artifacts are
// not loaded; use Get for one run's full record. limit <= 0 means no limit.
func (c *Catalog) List(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT id, started_at, finished_at, kind, min_weight, node_count,
			edge_count, quality_score, algorithm, community_count, modularity, output_dir
		FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return records, nil
}

// Get returns one run with its artifacts. A missing id yields sql.ErrNoRows.
func (c *Catalog) Get(ctx context.Context, id string) (*RunRecord, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, kind, min_weight, node_count,
			edge_count, quality_score, algorithm, community_count, modularity, output_dir
		 FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("querying run %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("querying run %s: %w", id, err)
		}
		return nil, sql.ErrNoRows
	}
	rec, err := scanRun(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	artRows, err := c.db.QueryContext(ctx,
		`SELECT kind, path FROM artifacts WHERE run_id = ? ORDER BY kind, path`, id)
	if err != nil {
		return nil, fmt.Errorf("querying artifacts for %s: %w", id, err)
	}
	defer artRows.Close()

	for artRows.Next() {
		var a Artifact
		if err := artRows.Scan(&a.Kind, &a.Path); err != nil {
			return nil, fmt.Errorf("scanning artifact: %w", err)
		}
		rec.Artifacts = append(rec.Artifacts, a)
	}
	if err := artRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating artifacts: %w", err)
	}
	return &rec, nil
}

func scanRun(rows *sql.Rows) (RunRecord, error) {
	var rec RunRecord
	var started, finished, kind, algorithm string
	var score sql.NullFloat64

	err := rows.Scan(&rec.ID, &started, &finished, &kind, &rec.MinWeight,
		&rec.NodeCount, &rec.EdgeCount, &score, &algorithm,
		&rec.CommunityCount, &rec.Modularity, &rec.OutputDir)
	if err != nil {
		return RunRecord{}, fmt.Errorf("scanning run: %w", err)
	}

	rec.Kind = types.NetworkKind(kind)
	rec.Algorithm = types.CommunityAlgorithm(algorithm)
	if score.Valid {
		v := score.Float64
		rec.QualityScore = &v
	}
	if rec.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
		return RunRecord{}, fmt.Errorf("parsing started_at %q: %w", started, err)
	}
	if rec.FinishedAt, err = time.Parse(time.RFC3339, finished); err != nil {
		return RunRecord{}, fmt.Errorf("parsing finished_at %q: %w", finished, err)
	}
	return rec, nil
}
