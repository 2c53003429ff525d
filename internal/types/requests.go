package types

import (
	"github.com/go-playground/validator/v10"
)

// fieldRule bounds every free-text field accepted over the API.
const fieldRule = "max=20000"

var validate = validator.New()

// AssessRequest is the body of a single scoring request.
type AssessRequest struct {
	Applicant   ApplicantRecord `json:"applicant"`
	Job         JobRecord       `json:"job"`
	JobID       string          `json:"job_id,omitempty" validate:"omitempty,max=128"`
	ApplicantID string          `json:"applicant_id,omitempty" validate:"omitempty,max=128"`
}

// ApplicantEntry is one applicant in a batch request.
type ApplicantEntry struct {
	ID        string          `json:"id" validate:"required,max=128"`
	Applicant ApplicantRecord `json:"applicant"`
}

// RankRequest is the body of a batch ranking request.
type RankRequest struct {
	Job        JobRecord        `json:"job"`
	JobID      string           `json:"job_id,omitempty" validate:"omitempty,max=128"`
	Applicants []ApplicantEntry `json:"applicants" validate:"required,min=1,max=500,dive"`
	MinScore   int              `json:"min_score,omitempty" validate:"min=0,max=100"`
}

// Validate validates the AssessRequest using the validator.
func (r *AssessRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if err := validateApplicant(r.Applicant); err != nil {
		return err
	}
	return validateJob(r.Job)
}

// Validate validates the RankRequest using the validator.
func (r *RankRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	for _, entry := range r.Applicants {
		if err := validateApplicant(entry.Applicant); err != nil {
			return err
		}
	}
	return validateJob(r.Job)
}

func validateApplicant(a ApplicantRecord) error {
	for _, field := range []string{a.Notes, a.Name, a.Email, a.Location, a.Education, a.Experience, a.Skills, a.Bio, a.Summary} {
		if err := validate.Var(field, fieldRule); err != nil {
			return err
		}
	}
	return nil
}

func validateJob(j JobRecord) error {
	for _, field := range []string{j.Title, j.Description, j.Requirements, j.Company, j.Location} {
		if err := validate.Var(field, fieldRule); err != nil {
			return err
		}
	}
	return nil
}
