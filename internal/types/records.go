// Package types provides type definitions for structured data used throughout the fit-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ApplicantRecord is the flat, free-text view of an applicant supplied by the caller.
// Every field is optional.
type ApplicantRecord struct {
	Notes      string `json:"notes,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Location   string `json:"location,omitempty"`
	Education  string `json:"education_text,omitempty"`
	Experience string `json:"experience_text,omitempty"`
	Skills     string `json:"skills_text,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Summary    string `json:"summary,omitempty"`
}

// JobRecord is the flat, free-text view of a job posting. Every field is optional.
type JobRecord struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	Company      string `json:"company,omitempty"`
	Location     string `json:"location,omitempty"`
}

// IsEmpty reports whether no applicant field carries any text.
func (a ApplicantRecord) IsEmpty() bool {
	return a == ApplicantRecord{}
}
