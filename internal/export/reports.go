// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// WriteYAMLReport serializes any report value to YAML at path. Used for
// metrics, quality scorecards, and community partitions.
func WriteYAMLReport(report any, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling YAML report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing YAML report: %w", err)
	}
	return nil
}

// WriteJSONReport serializes any report value to indented JSON at path.
func WriteJSONReport(report any, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing JSON report: %w", err)
	}
	return nil
}
