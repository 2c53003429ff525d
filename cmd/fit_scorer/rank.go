package main

import (
	"fmt"
	"os"

	"github.com/jonathan/fit-scorer/internal/observability"
	"github.com/jonathan/fit-scorer/internal/ranking"
	"github.com/jonathan/fit-scorer/internal/schemas"
	"github.com/jonathan/fit-scorer/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	rankApplicants string
	rankJob        string
	rankOutput     string
	rankMinScore   int
	rankVerbose    bool
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a batch of applicants against one job",
	Long: `Reads a JSON array of {"id", "applicant"} entries and a job record, scores every
applicant and writes them sorted by fit score, highest first. Applicants with equal
scores keep their input order.`,
	RunE: runRank,
}

func init() {
	rankCmd.Flags().StringVarP(&rankApplicants, "applicants", "a", "", "Path to applicants JSON array (required)")
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Path to job record JSON file (required)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output ranked JSON file")
	rankCmd.Flags().IntVar(&rankMinScore, "min-score", 0, "Drop applicants scoring below this value")
	rankCmd.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print the ranking to stderr")

	if err := rankCmd.MarkFlagRequired("applicants"); err != nil {
		panic(fmt.Sprintf("failed to mark applicants flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	if rankMinScore < 0 || rankMinScore > 100 {
		return fmt.Errorf("--min-score must be between 0 and 100, got %d", rankMinScore)
	}

	var entries []types.ApplicantEntry
	if err := readJSON(rankApplicants, &entries); err != nil {
		return fmt.Errorf("failed to load applicants: %w", err)
	}
	for i, entry := range entries {
		if entry.ID == "" {
			return fmt.Errorf("applicant entry %d has no id", i)
		}
	}
	var job types.JobRecord
	if err := readJSON(rankJob, &job); err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	ranked, err := ranking.RankApplicants(cmd.Context(), engine, job, entries, ranking.RankOptions{
		Workers:  cfg.Workers,
		MinScore: rankMinScore,
	})
	if err != nil {
		return fmt.Errorf("failed to rank applicants: %w", err)
	}

	if cfg.ValidateOutput {
		if err := schemas.ValidateRanked(ranked); err != nil {
			log.Warn("output validation failed", zap.Error(err))
		}
	}

	if rankVerbose {
		observability.NewPrinter(os.Stderr).PrintRanked(ranked)
	}

	if err := writeJSON(cmd, rankOutput, ranked); err != nil {
		return err
	}
	log.Info("ranked applicants",
		zap.Int("scored", len(entries)),
		zap.Int("kept", len(ranked.Ranked)),
		zap.Int("workers", cfg.Workers),
	)
	return nil
}
