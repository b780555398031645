// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich stored records from external bibliographic APIs",
	Long: `Enrich fills gaps in stored records (missing DOIs, abstracts, reference
lists) from external bibliographic services. The analysis pipeline works on
whatever the store holds; enrichment is handled by external tooling for
now.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(os.Stderr, "enrich: not yet implemented")
		return fmt.Errorf("not yet implemented")
	},
}

func init() {
	enrichCmd.Flags().Int("batch-size", 50, "records per enrichment batch")

	rootCmd.AddCommand(enrichCmd)
}
