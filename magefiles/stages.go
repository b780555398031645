//go:build mage

package main

import "fmt"

// Ingest loads bibliographic exports into the graph store.
// See prd001-ingestion for full requirements.
func Ingest() error {
	fmt.Println("[ingest] Load bibliographic exports (BibTeX, CSV, JSON) into the graph store.")
	fmt.Println("[ingest] Not yet implemented.")
	return nil
}

// Enrich fills missing record fields from external bibliographic APIs.
// See prd001-ingestion for full requirements.
func Enrich() error {
	fmt.Println("[enrich] Fill missing DOIs, abstracts, and references from external APIs.")
	fmt.Println("[enrich] Not yet implemented.")
	return nil
}
