// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citegraph/internal/container"
	"github.com/pdiddy/citegraph/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local graph store container",
	Long: `Store manages a local Neo4j container through docker or podman,
whichever is available. Data persists in a host directory across
restarts. The store password comes from --password or
.secrets/neo4j-password.`,
}

var storeUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Start the graph store container",
	RunE:  runStoreUp,
}

var storeDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop and remove the graph store container",
	RunE:  runStoreDown,
}

var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the graph store container state",
	RunE:  runStoreStatus,
}

func init() {
	storeCmd.PersistentFlags().String("image", "", "store container image (default neo4j:5)")
	storeCmd.PersistentFlags().String("name", "", "store container name (default citegraph-neo4j)")
	storeUpCmd.Flags().String("data-dir", "", "host directory for store data (default .neo4j/data)")
	storeUpCmd.Flags().String("password", "", "store password (default from .secrets/neo4j-password)")

	storeCmd.AddCommand(storeUpCmd)
	storeCmd.AddCommand(storeDownCmd)
	storeCmd.AddCommand(storeStatusCmd)

	rootCmd.AddCommand(storeCmd)
}

// containerConfig resolves the container settings with precedence
// flags > config file > defaults.
func containerConfig(cmd *cobra.Command) types.ContainerConfig {
	image, _ := cmd.Flags().GetString("image")
	if image == "" {
		image = viper.GetString("container.image")
	}
	if image == "" {
		image = "neo4j:5"
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = viper.GetString("container.name")
	}
	if name == "" {
		name = "citegraph-neo4j"
	}

	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("container.data_dir")
	}
	if dataDir == "" {
		dataDir = ".neo4j/data"
	}

	return types.ContainerConfig{Image: image, Name: name, DataDir: dataDir}
}

func runStoreUp(cmd *cobra.Command, args []string) error {
	cfg := containerConfig(cmd)

	password, _ := cmd.Flags().GetString("password")
	password = secretDefault("neo4j-password", password)
	if password == "" {
		return fmt.Errorf("store password required: use --password or .secrets/neo4j-password")
	}

	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}

	state, err := rt.Status(cfg.Name)
	if err != nil {
		return err
	}
	if state == container.StateRunning {
		fmt.Printf("%s already running\n", cfg.Name)
		return nil
	}
	if state != container.StateAbsent {
		// A stopped container with the name blocks a fresh run.
		if err := rt.Stop(cfg.Name); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", cfg.DataDir, err)
	}

	spec := container.Spec{
		Name:    cfg.Name,
		Image:   cfg.Image,
		Ports:   []string{"7474:7474", "7687:7687"},
		Env:     map[string]string{"NEO4J_AUTH": "neo4j/" + password},
		Volumes: []string{cfg.DataDir + ":/data"},
	}
	if err := rt.Start(spec); err != nil {
		return err
	}

	fmt.Printf("Started %s (%s) via %s\n", cfg.Name, cfg.Image, rt.Name())
	fmt.Println("Bolt endpoint: bolt://localhost:7687")
	return nil
}

func runStoreDown(cmd *cobra.Command, args []string) error {
	cfg := containerConfig(cmd)

	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}

	state, err := rt.Status(cfg.Name)
	if err != nil {
		return err
	}
	if state == container.StateAbsent {
		fmt.Printf("%s not found\n", cfg.Name)
		return nil
	}

	if err := rt.Stop(cfg.Name); err != nil {
		return err
	}
	fmt.Printf("Stopped and removed %s\n", cfg.Name)
	return nil
}

func runStoreStatus(cmd *cobra.Command, args []string) error {
	cfg := containerConfig(cmd)

	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}

	state, err := rt.Status(cfg.Name)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s (runtime %s)\n", cfg.Name, state, rt.Name())
	return nil
}
