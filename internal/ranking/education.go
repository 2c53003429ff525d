package ranking

import (
	"github.com/jonathan/fit-scorer/internal/matching"
	"github.com/jonathan/fit-scorer/internal/taxonomy"
	"github.com/jonathan/fit-scorer/internal/types"
)

const (
	// degreeBlend and institutionBlend weight a matched institution against the
	// running degree-based score.
	degreeBlend      = 0.6
	institutionBlend = 0.4
)

// EducationResult is the outcome of education scoring.
type EducationResult struct {
	HighestDegree string
	Score         float64
	Institutions  []string
}

// ScoreEducation picks the highest-scoring degree keyword found in text and blends in
// every matched institution. An institution can raise the score but never lower it.
// Without a degree match the result is types.DefaultDegree with score 0.
func ScoreEducation(m *matching.Matcher, tables *taxonomy.Tables, text string) EducationResult {
	result := EducationResult{HighestDegree: types.DefaultDegree}
	if text == "" {
		return result
	}

	// Strictly greater: ties keep the first entry in table order, and a 0-score entry
	// leaves the default degree in place.
	for _, degree := range tables.Degrees {
		if float64(degree.Score) > result.Score && m.Matches(text, degree.Keyword, false) {
			result.Score = float64(degree.Score)
			result.HighestDegree = degree.Level
		}
	}

	for _, inst := range tables.Institutions {
		if !m.Matches(text, inst.Name, false) {
			continue
		}
		result.Institutions = append(result.Institutions, inst.Name)
		blended := result.Score*degreeBlend + float64(inst.Score)*institutionBlend
		if blended > result.Score {
			result.Score = blended
		}
	}

	result.Score = Clamp(result.Score)
	return result
}
