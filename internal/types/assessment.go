package types

// SeniorityLevel is a coarse experience-based tier.
type SeniorityLevel string

// Seniority tiers, lowest first.
const (
	SeniorityEntry     SeniorityLevel = "Entry-Level"
	SeniorityJunior    SeniorityLevel = "Junior"
	SeniorityMid       SeniorityLevel = "Mid-Level"
	SenioritySenior    SeniorityLevel = "Senior"
	SeniorityExecutive SeniorityLevel = "Executive"
)

// DefaultDegree is reported when no degree keyword is found.
const DefaultDegree = "High School"

// WorkHistoryEntry is an employer recognized in the applicant's text.
type WorkHistoryEntry struct {
	Company  string `json:"company"`
	Prestige int    `json:"prestige"`
}

// FitAssessment is the structured result of scoring one applicant against one job.
// It is produced fresh per call and carries no identity of its own.
type FitAssessment struct {
	FitScore             int                `json:"fit_score"`
	SeniorityLevel       SeniorityLevel     `json:"seniority_level"`
	TotalExperienceYears float64            `json:"total_experience_years"`
	HighestDegree        string             `json:"highest_degree"`
	EducationScore       int                `json:"education_score"`
	CompanyPrestige      int                `json:"company_prestige"`
	LocationScore        int                `json:"location_score"`
	WorkHistory          []WorkHistoryEntry `json:"work_history"`
	MatchedSkills        []string           `json:"matched_skills"`
	TopSkills            []string           `json:"top_skills"`
	SoftSkills           []string           `json:"soft_skills"`
	Strengths            []string           `json:"strengths"`
	RiskFactors          []string           `json:"risk_factors"`
	InterviewFocus       []string           `json:"interview_focus"`
	NarrativeSummary     string             `json:"narrative_summary"`
	Highlights           []string           `json:"highlights"`
}
