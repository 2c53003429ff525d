package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/fit-scorer/internal/schemas"
	"github.com/jonathan/fit-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	backendApplicant = types.ApplicantRecord{
		Name:       "Dana Ortiz",
		Location:   "Austin, TX",
		Education:  "M.S. Computer Science, Stanford University",
		Experience: "Senior engineer at Google. 10 years of experience building backend services.",
		Skills:     "Python, Go, Docker, Kubernetes, AWS, PostgreSQL",
	}
	backendJob = types.JobRecord{
		Title:        "Senior Backend Engineer",
		Requirements: "Python, Docker, Kubernetes, AWS and PostgreSQL required.",
		Location:     "Remote",
	}
)

func TestAssessCommand_FlagsValidation(t *testing.T) {
	dir := t.TempDir()
	applicantPath := writeJSONFile(t, dir, "applicant.json", backendApplicant)
	jobPath := writeJSONFile(t, dir, "job.json", backendJob)

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Missing --applicant flag",
			args:        []string{"assess", "--job", jobPath},
			errorString: `required flag(s) "applicant" not set`,
		},
		{
			name:        "Missing --job flag",
			args:        []string{"assess", "--applicant", applicantPath},
			errorString: `required flag(s) "job" not set`,
		},
		{
			name:        "Applicant file not found",
			args:        []string{"assess", "--applicant", filepath.Join(dir, "missing.json"), "--job", jobPath},
			errorString: "failed to load applicant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestAssessCommand_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	applicantPath := filepath.Join(dir, "applicant.json")
	require.NoError(t, os.WriteFile(applicantPath, []byte("{not json"), 0644))
	jobPath := writeJSONFile(t, dir, "job.json", backendJob)

	_, err := executeCommand(t, "assess", "--applicant", applicantPath, "--job", jobPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}

func TestAssessCommand_WritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	applicantPath := writeJSONFile(t, dir, "applicant.json", backendApplicant)
	jobPath := writeJSONFile(t, dir, "job.json", backendJob)
	outPath := filepath.Join(dir, "out", "assessment.json")

	stdout, err := executeCommand(t, "assess", "--applicant", applicantPath, "--job", jobPath, "--out", outPath, "--validate")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var assessment types.FitAssessment
	require.NoError(t, json.Unmarshal(data, &assessment))
	assert.Greater(t, assessment.FitScore, 50)
	assert.Equal(t, types.SenioritySenior, assessment.SeniorityLevel)
	assert.Equal(t, 10.0, assessment.TotalExperienceYears)
	assert.Equal(t, 100, assessment.LocationScore)
	assert.Contains(t, assessment.MatchedSkills, "python")
	assert.Contains(t, assessment.MatchedSkills, "kubernetes")

	assert.NoError(t, schemas.ValidateFile(schemas.FitAssessmentSchema, outPath))
}

func TestAssessCommand_Stdout(t *testing.T) {
	dir := t.TempDir()
	applicantPath := writeJSONFile(t, dir, "applicant.json", types.ApplicantRecord{})
	jobPath := writeJSONFile(t, dir, "job.json", backendJob)

	stdout, err := executeCommand(t, "assess", "-a", applicantPath, "-j", jobPath)
	require.NoError(t, err)

	var assessment types.FitAssessment
	require.NoError(t, json.Unmarshal([]byte(stdout), &assessment))
	assert.Equal(t, 0, assessment.FitScore)
	assert.Equal(t, types.SeniorityEntry, assessment.SeniorityLevel)
	assert.Equal(t, "High School", assessment.HighestDegree)
	assert.Contains(t, assessment.RiskFactors, "Limited experience and skills")
}

func TestRootCommand_Config(t *testing.T) {
	dir := t.TempDir()
	applicantPath := writeJSONFile(t, dir, "applicant.json", backendApplicant)
	jobPath := writeJSONFile(t, dir, "job.json", backendJob)

	t.Run("yaml config with skill-only weights", func(t *testing.T) {
		configPath := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("weights:\n  skills: 1\nworkers: 2\n"), 0644))

		stdout, err := executeCommand(t, "assess", "--config", configPath, "-a", applicantPath, "-j", jobPath)
		require.NoError(t, err)

		var assessment types.FitAssessment
		require.NoError(t, json.Unmarshal([]byte(stdout), &assessment))
		// Every job skill is matched, so the skill sub-score alone saturates.
		assert.Equal(t, 100, assessment.FitScore)
		assert.Equal(t, 2, cfg.Workers)
	})

	t.Run("invalid workers", func(t *testing.T) {
		configPath := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(configPath, []byte(`{"workers": 1000}`), 0644))

		_, err := executeCommand(t, "assess", "--config", configPath, "-a", applicantPath, "-j", jobPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config error")
	})

	t.Run("missing tables dir", func(t *testing.T) {
		configPath := filepath.Join(dir, "tables.json")
		require.NoError(t, os.WriteFile(configPath, []byte(`{"tables_dir": "`+filepath.Join(dir, "nope")+`"}`), 0644))

		_, err := executeCommand(t, "assess", "--config", configPath, "-a", applicantPath, "-j", jobPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tables directory not found")
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := executeCommand(t, "assess", "--config", filepath.Join(dir, "absent.yaml"), "-a", applicantPath, "-j", jobPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}
