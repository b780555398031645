// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citegraph/internal/derive"
	"github.com/pdiddy/citegraph/pkg/types"
)

var materializeCmd = &cobra.Command{
	Use:   "materialize [kind]",
	Short: "Materialize derived relationships in the graph store",
	Long: `Materialize computes and persists the derived relationship type for one
network kind (or all of them) from the primary citation graph. The queries
are idempotent: re-running never duplicates relationships or re-sums
weights.

Kinds: co-citation, author, institution, keyword, or all (default).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMaterialize,
}

func init() {
	materializeCmd.Flags().Bool("dry-run", false, "log planned actions without touching the store")
	addStoreFlags(materializeCmd)

	rootCmd.AddCommand(materializeCmd)
}

func runMaterialize(cmd *cobra.Command, args []string) error {
	kinds := types.AllNetworkKinds
	if len(args) == 1 && args[0] != "all" {
		kind, err := types.ParseNetworkKind(args[0])
		if err != nil {
			return err
		}
		kinds = []types.NetworkKind{kind}
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		for _, kind := range kinds {
			fmt.Fprintf(os.Stderr, "[dry-run] would materialize %s relationships for %s\n",
				kind.EdgeType(), kind.Slug())
		}
		return nil
	}

	ctx := context.Background()
	gw, err := openGateway(ctx, cmd)
	if err != nil {
		return err
	}
	defer gw.Close(ctx)

	builder := derive.NewBuilder(gw, slog.Default())
	for _, kind := range kinds {
		count, err := builder.Materialize(ctx, kind)
		if err != nil {
			return err
		}
		fmt.Printf("%-28s %8d %s relationships\n", kind.Slug(), count, kind.EdgeType())
	}
	return nil
}
