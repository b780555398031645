// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load bibliographic records into the graph store",
	Long: `Ingest parses bibliographic exports (BibTeX, CSV, JSON) and loads papers,
authors, institutions, and keywords with their primary relationships into
the graph store. The derivation pipeline assumes the store is already
populated; this stage is handled by external tooling for now.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(os.Stderr, "ingest: not yet implemented")
		return fmt.Errorf("not yet implemented")
	},
}

func init() {
	ingestCmd.Flags().String("input", "", "bibliographic export file to load")
	ingestCmd.Flags().String("format", "", "input format: bibtex, csv, json")

	rootCmd.AddCommand(ingestCmd)
}
