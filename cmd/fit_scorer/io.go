package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/fit-scorer/internal/fit"
	"github.com/jonathan/fit-scorer/internal/taxonomy"
	"github.com/spf13/cobra"
)

// readJSON decodes the JSON file at path into out.
func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse JSON from %s: %w", path, err)
	}
	return nil
}

// writeJSON writes v as indented JSON to path, or to the command's stdout when path
// is empty.
func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}

	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// loadTables returns the tables of dir, or the embedded defaults when dir is empty.
func loadTables(dir string) (*taxonomy.Tables, error) {
	if dir == "" {
		return taxonomy.Default()
	}
	return taxonomy.Load(dir)
}

// newEngine builds the scoring engine from the loaded config.
func newEngine() (*fit.Engine, error) {
	tables, err := loadTables(cfg.TablesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}

	opts := []fit.Option{fit.WithTables(tables)}
	if !cfg.Weights.IsZero() {
		opts = append(opts, fit.WithWeights(cfg.Weights))
	}

	engine, err := fit.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return engine, nil
}
