package main

import (
	"fmt"

	"github.com/jonathan/fit-scorer/internal/observability"
	"github.com/spf13/cobra"
)

var (
	tablesDir string
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Load and validate the scoring tables",
	Long: `Loads the embedded scoring tables, applying overrides from --dir (or tables_dir
in the config) when given, validates them and prints the size of each table.`,
	RunE: runTables,
}

func init() {
	tablesCmd.Flags().StringVarP(&tablesDir, "dir", "d", "", "Directory with JSON or YAML table overrides")
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, _ []string) error {
	dir := tablesDir
	if dir == "" {
		dir = cfg.TablesDir
	}

	tables, err := loadTables(dir)
	if err != nil {
		return fmt.Errorf("failed to load tables: %w", err)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintTableCounts(tables.Counts())
	return nil
}
