// Package narrative turns the numeric signals of an assessment into strengths, risks,
// interview talking points and a short summary.
package narrative

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/fit-scorer/internal/skills"
	"github.com/jonathan/fit-scorer/internal/types"
)

const (
	exceptionalFitThreshold = 90
	strongFitThreshold      = 75
	topCompanyThreshold     = 90
	enterpriseThreshold     = 85
	extensiveYears          = 10.0
	leadershipYears         = 5.0
	strongEducation         = 90
	lowEducation            = 50
	earlyCareerYears        = 2.0
	poorLocation            = 40
	narrowSkillSet          = 3
	skillAlignmentRatio     = 0.8
	wellRoundedSoftSkills   = 3

	maxListedSoftSkills   = 3
	maxDeepDiveSkills     = 3
	maxHighlightStrengths = 2
	maxHighlightFocus     = 2

	summarySeparator = " • "
)

// Risk factor texts.
const (
	RiskNoEvidence   = "Limited experience and skills"
	RiskEarlyCareer  = "Limited formal education and early-career experience"
	RiskLocation     = "Location may not align with the role"
	RiskNoOverlap    = "No overlap with the skills the job asks for"
	RiskNarrowSkills = "Narrow skill set"
)

// Signals are the intermediate values the narrative is derived from.
type Signals struct {
	FitScore        int
	Seniority       types.SeniorityLevel
	Years           float64
	HighestDegree   string
	EducationScore  int
	CompanyPrestige int
	LocationScore   int
	Skills          skills.Overlap
	SoftSkills      []string
}

// Narrative is the human-readable part of an assessment. Lists are never nil.
type Narrative struct {
	Strengths      []string
	RiskFactors    []string
	InterviewFocus []string
	Summary        string
	Highlights     []string
}

// Build derives the whole narrative from s.
func Build(s Signals) Narrative {
	n := Narrative{
		Strengths:   Strengths(s),
		RiskFactors: RiskFactors(s),
	}
	n.InterviewFocus = InterviewFocus(s, n.RiskFactors)
	n.Summary = Summary(s)
	n.Highlights = Highlights(s, n.Strengths, n.InterviewFocus)
	return n
}

// RiskFactors lists every applicable risk in a fixed order.
func RiskFactors(s Signals) []string {
	risks := []string{}
	if s.Years == 0 && len(s.Skills.Profile) == 0 {
		risks = append(risks, RiskNoEvidence)
	}
	if s.EducationScore < lowEducation && s.Years < earlyCareerYears {
		risks = append(risks, RiskEarlyCareer)
	}
	if s.LocationScore < poorLocation {
		risks = append(risks, RiskLocation)
	}
	if len(s.Skills.Job) > 0 && len(s.Skills.Matched) == 0 {
		risks = append(risks, RiskNoOverlap)
	}
	if len(s.Skills.Profile) < narrowSkillSet {
		risks = append(risks, RiskNarrowSkills)
	}
	return risks
}

// Strengths lists every applicable strength.
func Strengths(s Signals) []string {
	strengths := []string{}
	switch {
	case s.FitScore >= exceptionalFitThreshold:
		strengths = append(strengths, "Exceptional overall match")
	case s.FitScore >= strongFitThreshold:
		strengths = append(strengths, "Strong candidate profile")
	}
	if s.CompanyPrestige >= topCompanyThreshold {
		strengths = append(strengths, "Experience at top-tier companies")
	}
	if s.Years >= extensiveYears {
		strengths = append(strengths, fmt.Sprintf("Extensive experience (%.1f years)", s.Years))
	}
	if s.EducationScore >= strongEducation {
		strengths = append(strengths, "Strong educational background")
	}
	if job := len(s.Skills.Job); job > 0 && float64(len(s.Skills.Matched)) >= skillAlignmentRatio*float64(job) {
		strengths = append(strengths, fmt.Sprintf("Excellent skill alignment (%d/%d required skills)", len(s.Skills.Matched), job))
	}
	if len(s.SoftSkills) >= wellRoundedSoftSkills {
		listed := s.SoftSkills[:min(len(s.SoftSkills), maxListedSoftSkills)]
		strengths = append(strengths, "Well-rounded soft skills: "+strings.Join(listed, ", "))
	}
	return strengths
}

// InterviewFocus suggests talking points. risks is the output of RiskFactors; only the
// first one is addressed.
func InterviewFocus(s Signals, risks []string) []string {
	focus := []string{}
	if len(s.Skills.Matched) > 0 {
		top := s.Skills.Matched[:min(len(s.Skills.Matched), maxDeepDiveSkills)]
		focus = append(focus, "Technical deep dive: "+strings.Join(top, ", "))
	}
	if s.Years >= leadershipYears {
		focus = append(focus, "Leadership and project management experience")
	}
	if s.CompanyPrestige >= enterpriseThreshold {
		focus = append(focus, "Working at enterprise scale")
	}
	if len(risks) > 0 {
		focus = append(focus, "Address concern: "+risks[0])
	}
	if slices.Contains(s.SoftSkills, LeadershipCategory) {
		focus = append(focus, "Mentoring style and team dynamics")
	}
	return focus
}

// Summary is a single line of facts joined by " • ".
func Summary(s Signals) string {
	parts := []string{
		fmt.Sprintf("%s professional with %.1f years of experience", s.Seniority, s.Years),
		fmt.Sprintf("%s (education score %d)", s.HighestDegree, s.EducationScore),
		fmt.Sprintf("%d/%d required skills matched", len(s.Skills.Matched), len(s.Skills.Job)),
	}
	if s.CompanyPrestige > 0 {
		parts = append(parts, fmt.Sprintf("Company prestige %d", s.CompanyPrestige))
	} else {
		parts = append(parts, "Diverse experience")
	}
	parts = append(parts, fmt.Sprintf("Location fit %d", s.LocationScore))
	if len(s.SoftSkills) > 0 {
		parts = append(parts, "Soft skills: "+strings.Join(s.SoftSkills, ", "))
	} else {
		parts = append(parts, "Focus on technical capabilities")
	}
	return strings.Join(parts, summarySeparator)
}

// Highlights is the short list shown on a candidate card.
func Highlights(s Signals, strengths, focus []string) []string {
	highlights := []string{
		fmt.Sprintf("Overall match: %d/100", s.FitScore),
		fmt.Sprintf("%s level with %.1f years of experience", s.Seniority, s.Years),
		fmt.Sprintf("Skills: %d of %d required matched", len(s.Skills.Matched), len(s.Skills.Job)),
		fmt.Sprintf("Education: %s (%d/100)", s.HighestDegree, s.EducationScore),
	}
	highlights = append(highlights, strengths[:min(len(strengths), maxHighlightStrengths)]...)
	highlights = append(highlights, focus[:min(len(focus), maxHighlightFocus)]...)
	return highlights
}
