package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/fit-scorer/internal/types"
)

// Listing limits for ListAssessments.
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// StoredAssessment is a persisted assessment of one applicant for one job.
type StoredAssessment struct {
	ID          uuid.UUID           `json:"id"`
	JobID       string              `json:"job_id"`
	ApplicantID string              `json:"applicant_id"`
	FitScore    int                 `json:"fit_score"`
	Assessment  types.FitAssessment `json:"assessment"`
	CreatedAt   time.Time           `json:"created_at"`
}

// normalizeLimit maps non-positive limits to the default and caps the rest.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
