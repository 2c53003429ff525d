// Package main provides the entry point for the fit scorer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/fit-scorer/internal/config"
	"github.com/jonathan/fit-scorer/internal/logger"
	"github.com/jonathan/fit-scorer/internal/ranking"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	debugLogs  bool
	jsonLogs   bool
)

// Populated by loadRuntime before any subcommand runs.
var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fit_scorer",
	Short: "Candidate-job fit scoring engine",
	Long: `fit_scorer scores how well an applicant profile fits a job posting using a
deterministic, rule-based engine. Scores, seniority and narrative output are
derived from static skill, degree, institution and company tables.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")
}

func loadRuntime(_ *cobra.Command, _ []string) error {
	loaded := &config.Config{}
	if configPath != "" {
		var err error
		loaded, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}
	loaded.ApplyEnv()

	merged := loaded.MergeWithDefaults(config.Config{
		Workers: ranking.DefaultWorkers,
		Port:    config.DefaultPort,
	})
	if err := merged.Validate(); err != nil {
		return err
	}
	cfg = &merged

	l, err := logger.New(jsonLogs || cfg.LogJSON, debugLogs || cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	log = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if log != nil {
		_ = log.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
