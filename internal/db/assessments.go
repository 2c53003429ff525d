package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/fit-scorer/internal/types"
)

// ErrMissingID is returned when a job or applicant id is blank.
var ErrMissingID = errors.New("job id and applicant id are required")

// SaveAssessment stores an assessment, replacing any earlier one for the same job and
// applicant, and returns the row id.
func (db *DB) SaveAssessment(ctx context.Context, jobID, applicantID string, a types.FitAssessment) (uuid.UUID, error) {
	if jobID == "" || applicantID == "" {
		return uuid.Nil, ErrMissingID
	}

	content, err := json.Marshal(a)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal assessment: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO fit_assessments (id, job_id, applicant_id, fit_score, assessment)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (job_id, applicant_id) DO UPDATE
		 SET fit_score = EXCLUDED.fit_score, assessment = EXCLUDED.assessment, created_at = NOW()
		 RETURNING id`,
		uuid.New(), jobID, applicantID, a.FitScore, content,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save assessment for %s/%s: %w", jobID, applicantID, err)
	}
	return id, nil
}

// ListAssessments returns the stored assessments of a job, best first.
func (db *DB) ListAssessments(ctx context.Context, jobID string, limit int) ([]StoredAssessment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, applicant_id, fit_score, assessment, created_at
		 FROM fit_assessments
		 WHERE job_id = $1
		 ORDER BY fit_score DESC, created_at ASC
		 LIMIT $2`,
		jobID, normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments for %s: %w", jobID, err)
	}
	defer rows.Close()

	stored := []StoredAssessment{}
	for rows.Next() {
		var s StoredAssessment
		var content []byte
		if err := rows.Scan(&s.ID, &s.JobID, &s.ApplicantID, &s.FitScore, &content, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		if err := json.Unmarshal(content, &s.Assessment); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assessment %s: %w", s.ID, err)
		}
		stored = append(stored, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}
	return stored, nil
}
