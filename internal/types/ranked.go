package types

// RankedApplicants is the result of scoring a batch of applicants against one job.
type RankedApplicants struct {
	JobTitle string            `json:"job_title,omitempty"`
	Ranked   []RankedApplicant `json:"ranked"`
}

// RankedApplicant pairs a caller-supplied applicant id with its assessment.
type RankedApplicant struct {
	ApplicantID string        `json:"applicant_id"`
	Rank        int           `json:"rank"`
	Assessment  FitAssessment `json:"assessment"`
}
