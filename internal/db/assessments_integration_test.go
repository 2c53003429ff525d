//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/fit-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, db.Migrate(ctx))

	return db
}

func TestIntegration_SaveAndListAssessments(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	jobID := "test-job-" + uuid.New().String()
	defer func() {
		_, _ = db.pool.Exec(ctx, "DELETE FROM fit_assessments WHERE job_id = $1", jobID)
	}()

	low := types.FitAssessment{FitScore: 20, SeniorityLevel: types.SeniorityEntry, HighestDegree: types.DefaultDegree}
	high := types.FitAssessment{FitScore: 85, SeniorityLevel: types.SenioritySenior, HighestDegree: "Master's"}

	lowID, err := db.SaveAssessment(ctx, jobID, "applicant-low", low)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, lowID)

	_, err = db.SaveAssessment(ctx, jobID, "applicant-high", high)
	require.NoError(t, err)

	stored, err := db.ListAssessments(ctx, jobID, 0)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "applicant-high", stored[0].ApplicantID)
	assert.Equal(t, "Master's", stored[0].Assessment.HighestDegree)
	assert.Equal(t, 20, stored[1].FitScore)

	t.Run("upsert keeps a single row", func(t *testing.T) {
		low.FitScore = 40
		id, err := db.SaveAssessment(ctx, jobID, "applicant-low", low)
		require.NoError(t, err)
		assert.Equal(t, lowID, id)

		stored, err := db.ListAssessments(ctx, jobID, 10)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		assert.Equal(t, 40, stored[1].FitScore)
	})

	t.Run("limit", func(t *testing.T) {
		stored, err := db.ListAssessments(ctx, jobID, 1)
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})
}

func TestIntegration_ListAssessments_UnknownJob(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	stored, err := db.ListAssessments(context.Background(), "missing-"+uuid.New().String(), 10)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
