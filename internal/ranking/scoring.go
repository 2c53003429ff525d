// Package ranking scores the individual fit signals (education, company prestige,
// location, experience) and combines them into a composite fit score.
package ranking

import (
	"fmt"
	"math"
)

// ScoringWeights holds the composite weights. They should sum to 1.0.
type ScoringWeights struct {
	Skills     float64 `json:"skills" yaml:"skills" validate:"min=0,max=1"`
	Experience float64 `json:"experience" yaml:"experience" validate:"min=0,max=1"`
	Education  float64 `json:"education" yaml:"education" validate:"min=0,max=1"`
	Company    float64 `json:"company" yaml:"company" validate:"min=0,max=1"`
	Location   float64 `json:"location" yaml:"location" validate:"min=0,max=1"`
}

// DefaultWeights returns the standard weighting:
// skills 40%, experience 25%, education 15%, company 15%, location 5%.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Skills:     0.40,
		Experience: 0.25,
		Education:  0.15,
		Company:    0.15,
		Location:   0.05,
	}
}

// IsZero reports whether no weight is set.
func (w ScoringWeights) IsZero() bool {
	return w == ScoringWeights{}
}

// Sum returns the total of all weights.
func (w ScoringWeights) Sum() float64 {
	return w.Skills + w.Experience + w.Education + w.Company + w.Location
}

// Validate checks each weight is in [0,1] and that they sum to 1.0 within tolerance.
func (w ScoringWeights) Validate() error {
	for name, v := range map[string]float64{
		"skills":     w.Skills,
		"experience": w.Experience,
		"education":  w.Education,
		"company":    w.Company,
		"location":   w.Location,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("weight %s must be between 0 and 1, got %.3f", name, v)
		}
	}
	sum := w.Sum()
	if sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}

// Normalize rescales the weights to sum to 1.0. All-zero weights become the defaults.
func (w ScoringWeights) Normalize() ScoringWeights {
	sum := w.Sum()
	if sum == 0 {
		return DefaultWeights()
	}
	return ScoringWeights{
		Skills:     w.Skills / sum,
		Experience: w.Experience / sum,
		Education:  w.Education / sum,
		Company:    w.Company / sum,
		Location:   w.Location / sum,
	}
}

// SubScores are the inputs of the composite, each in [0,100].
type SubScores struct {
	Skills     float64
	Experience float64
	Education  float64
	Company    float64
	Location   float64
}

// Composite returns the rounded weighted sum clamped to [0,100].
func Composite(s SubScores, w ScoringWeights) int {
	total := s.Skills*w.Skills +
		s.Experience*w.Experience +
		s.Education*w.Education +
		s.Company*w.Company +
		s.Location*w.Location
	return ClampInt(int(math.Round(total)))
}

// ExperienceScore maps years of experience onto [0,100] with diminishing returns:
// 30/yr up to 2 years, 15/yr up to 5, 5/yr up to 10, 2/yr after that.
func ExperienceScore(years float64) float64 {
	var score float64
	switch {
	case years <= 2:
		score = years * 30
	case years <= 5:
		score = 60 + (years-2)*15
	case years <= 10:
		score = 105 + (years-5)*5
	default:
		score = 130 + (years-10)*2
	}
	return Clamp(score)
}

// Clamp bounds a score to [0,100].
func Clamp(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

// ClampInt bounds an integer score to [0,100].
func ClampInt(score int) int {
	return max(0, min(100, score))
}

// Round converts a float score to a clamped integer.
func Round(score float64) int {
	return ClampInt(int(math.Round(score)))
}
