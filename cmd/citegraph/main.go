// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citegraph CLI.
// Implements: prd002-store, prd003-derivation, prd004-quality,
//             prd005-analytics, prd006-export, prd007-catalog (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citegraph/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the citegraph CLI.
var rootCmd = &cobra.Command{
	Use:   "citegraph",
	Short: "Bibliometric network derivation and analysis",
	Long: `citegraph derives bibliometric networks (co-citation, author collaboration,
institution collaboration, keyword co-occurrence) from a citation graph store,
scores corpus quality, computes structural metrics and community partitions,
and exports the results for external analysis tools.

Each pipeline stage is a subcommand: materialize, analyze, quality, and
history, plus store for managing the local graph store container.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citegraph.yaml or ~/.config/citegraph/citegraph.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citegraph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citegraph"))
		}
	}

	viper.SetEnvPrefix("CITEGRAPH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
