// Package fit assembles the scoring components into the applicant/job assessment engine.
package fit

import (
	"fmt"
	"time"

	"github.com/jonathan/fit-scorer/internal/experience"
	"github.com/jonathan/fit-scorer/internal/matching"
	"github.com/jonathan/fit-scorer/internal/narrative"
	"github.com/jonathan/fit-scorer/internal/parsing"
	"github.com/jonathan/fit-scorer/internal/ranking"
	"github.com/jonathan/fit-scorer/internal/skills"
	"github.com/jonathan/fit-scorer/internal/taxonomy"
	"github.com/jonathan/fit-scorer/internal/types"
)

// Engine scores applicants against jobs. It is safe for concurrent use.
type Engine struct {
	tables     *taxonomy.Tables
	weights    ranking.ScoringWeights
	matcher    *matching.Matcher
	extractor  *experience.Extractor
	skillTerms []string
}

type options struct {
	tables  *taxonomy.Tables
	weights ranking.ScoringWeights
	now     func() time.Time
	noWarm  bool
}

// Option configures an Engine.
type Option func(*options)

// WithTables replaces the embedded tables. The tables are validated by New.
func WithTables(t *taxonomy.Tables) Option {
	return func(o *options) { o.tables = t }
}

// WithWeights overrides the composite weights. Zero weights select the defaults.
func WithWeights(w ranking.ScoringWeights) Option {
	return func(o *options) { o.weights = w }
}

// WithClock sets the clock used to resolve open-ended date ranges.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithoutWarmup skips pre-compiling match patterns. Patterns are then compiled on
// first use.
func WithoutWarmup() Option {
	return func(o *options) { o.noWarm = true }
}

// New builds an Engine. It fails only on invalid tables or weights.
func New(opts ...Option) (*Engine, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	tables := o.tables
	if tables == nil {
		var err error
		tables, err = taxonomy.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load default tables: %w", err)
		}
	} else if err := taxonomy.Validate(tables); err != nil {
		return nil, err
	}

	weights := ranking.DefaultWeights()
	if !o.weights.IsZero() {
		if err := o.weights.Validate(); err != nil {
			return nil, fmt.Errorf("invalid weights: %w", err)
		}
		weights = o.weights.Normalize()
	}

	e := &Engine{
		tables:     tables,
		weights:    weights,
		matcher:    matching.NewMatcher(tables.Aliases),
		extractor:  experience.NewExtractor(o.now),
		skillTerms: tables.SkillTerms(),
	}
	if !o.noWarm {
		e.warm()
	}
	return e, nil
}

// Tables returns the tables the engine scores with.
func (e *Engine) Tables() *taxonomy.Tables {
	return e.tables
}

// Weights returns the composite weights in effect.
func (e *Engine) Weights() ranking.ScoringWeights {
	return e.weights
}

// Assess scores applicant against job. It never fails: missing text produces low
// scores and populated risk factors.
func (e *Engine) Assess(applicant types.ApplicantRecord, job types.JobRecord) types.FitAssessment {
	profileText := parsing.ProfileText(applicant)
	jobText := parsing.JobText(job)

	years := e.extractor.Years(parsing.ProfileLooseText(applicant))
	seniority := experience.ProfileSeniority(years, profileText)
	edu := ranking.ScoreEducation(e.matcher, e.tables, profileText)
	company := ranking.ScoreCompanies(e.matcher, e.tables, profileText)
	location := ranking.ScoreLocation(e.matcher, e.tables.Regions,
		parsing.NormalizeText(applicant.Location), parsing.NormalizeText(job.Location))
	overlap := skills.Compare(
		skills.Extract(e.matcher, e.skillTerms, profileText),
		skills.Extract(e.matcher, e.skillTerms, jobText),
	)
	soft := narrative.DetectSoftSkills(e.matcher, e.tables.SoftSkills, profileText)

	fitScore := 0
	if profileText != "" {
		fitScore = ranking.Composite(ranking.SubScores{
			Skills:     overlap.Score(),
			Experience: ranking.ExperienceScore(years),
			Education:  edu.Score,
			Company:    float64(company.Prestige),
			Location:   float64(location),
		}, e.weights)
	}

	educationScore := ranking.Round(edu.Score)
	story := narrative.Build(narrative.Signals{
		FitScore:        fitScore,
		Seniority:       seniority,
		Years:           years,
		HighestDegree:   edu.HighestDegree,
		EducationScore:  educationScore,
		CompanyPrestige: company.Prestige,
		LocationScore:   location,
		Skills:          overlap,
		SoftSkills:      soft,
	})

	return types.FitAssessment{
		FitScore:             fitScore,
		SeniorityLevel:       seniority,
		TotalExperienceYears: years,
		HighestDegree:        edu.HighestDegree,
		EducationScore:       educationScore,
		CompanyPrestige:      company.Prestige,
		LocationScore:        location,
		WorkHistory:          company.WorkHistory,
		MatchedSkills:        overlap.MatchedSkills(),
		TopSkills:            overlap.TopSkills(),
		SoftSkills:           soft,
		Strengths:            story.Strengths,
		RiskFactors:          story.RiskFactors,
		InterviewFocus:       story.InterviewFocus,
		NarrativeSummary:     story.Summary,
		Highlights:           story.Highlights,
	}
}

// ExperienceEvidence reports the experience rule matches found for applicant.
func (e *Engine) ExperienceEvidence(applicant types.ApplicantRecord) []experience.Evidence {
	return e.extractor.Evidence(parsing.ProfileLooseText(applicant))
}

// warm pre-compiles every pattern the tables can produce.
func (e *Engine) warm() {
	e.matcher.Warm(e.skillTerms, false)
	e.matcher.Warm(e.tables.Regions, true)
	e.matcher.Warm([]string{"remote"}, true)

	terms := make([]string, 0, len(e.tables.Degrees)+len(e.tables.Institutions)+len(e.tables.Companies))
	for _, d := range e.tables.Degrees {
		terms = append(terms, d.Keyword)
	}
	for _, inst := range e.tables.Institutions {
		terms = append(terms, inst.Name)
	}
	for _, c := range e.tables.Companies {
		terms = append(terms, c.Name)
	}
	for _, soft := range e.tables.SoftSkills {
		terms = append(terms, soft.Keywords...)
	}
	e.matcher.Warm(terms, false)
}

// CacheSize reports how many match patterns are compiled.
func (e *Engine) CacheSize() int {
	return e.matcher.CacheSize()
}
