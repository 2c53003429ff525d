package main

import (
	"fmt"
	"os"

	"github.com/jonathan/fit-scorer/internal/logger"
	"github.com/jonathan/fit-scorer/internal/observability"
	"github.com/jonathan/fit-scorer/internal/schemas"
	"github.com/jonathan/fit-scorer/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	assessApplicant string
	assessJob       string
	assessOutput    string
	assessVerbose   bool
	assessValidate  bool
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Score one applicant against one job",
	Long: `Reads an applicant record and a job record from JSON files and writes the fit
assessment as JSON. Output goes to stdout unless --out is given.`,
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().StringVarP(&assessApplicant, "applicant", "a", "", "Path to applicant record JSON file (required)")
	assessCmd.Flags().StringVarP(&assessJob, "job", "j", "", "Path to job record JSON file (required)")
	assessCmd.Flags().StringVarP(&assessOutput, "out", "o", "", "Path to output assessment JSON file")
	assessCmd.Flags().BoolVarP(&assessVerbose, "verbose", "v", false, "Print a readable summary to stderr")
	assessCmd.Flags().BoolVar(&assessValidate, "validate", false, "Check the output against the assessment schema")

	if err := assessCmd.MarkFlagRequired("applicant"); err != nil {
		panic(fmt.Sprintf("failed to mark applicant flag as required: %v", err))
	}
	if err := assessCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, _ []string) error {
	var applicant types.ApplicantRecord
	if err := readJSON(assessApplicant, &applicant); err != nil {
		return fmt.Errorf("failed to load applicant: %w", err)
	}
	var job types.JobRecord
	if err := readJSON(assessJob, &job); err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	assessment := engine.Assess(applicant, job)
	log.Debug("assessed applicant",
		zap.String("job_title", logger.TruncateForLog(job.Title, 80)),
		zap.Int("fit_score", assessment.FitScore),
		zap.String("seniority", string(assessment.SeniorityLevel)),
	)

	if assessValidate || cfg.ValidateOutput {
		// Output validation is a safety check, not a requirement
		if err := schemas.ValidateAssessment(assessment); err != nil {
			log.Warn("output validation failed", zap.Error(err))
		}
	}

	if assessVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintExperienceEvidence(engine.ExperienceEvidence(applicant))
		printer.PrintAssessment(&assessment)
	}

	if err := writeJSON(cmd, assessOutput, assessment); err != nil {
		return err
	}
	if assessOutput != "" {
		log.Info("wrote assessment", zap.String("path", assessOutput), zap.Int("fit_score", assessment.FitScore))
	}
	return nil
}
