package ranking

import (
	"github.com/jonathan/fit-scorer/internal/matching"
	"github.com/jonathan/fit-scorer/internal/taxonomy"
	"github.com/jonathan/fit-scorer/internal/types"
)

// CompanyResult is the outcome of company prestige scoring.
type CompanyResult struct {
	Prestige    int
	WorkHistory []types.WorkHistoryEntry
}

// ScoreCompanies records every employer from the prestige table found in text, in table
// order, and reports the highest prestige seen.
func ScoreCompanies(m *matching.Matcher, tables *taxonomy.Tables, text string) CompanyResult {
	result := CompanyResult{WorkHistory: []types.WorkHistoryEntry{}}
	if text == "" {
		return result
	}

	for _, company := range tables.Companies {
		if !m.Matches(text, company.Name, false) {
			continue
		}
		result.WorkHistory = append(result.WorkHistory, types.WorkHistoryEntry{
			Company:  company.Name,
			Prestige: company.Score,
		})
		if company.Score > result.Prestige {
			result.Prestige = company.Score
		}
	}

	result.Prestige = ClampInt(result.Prestige)
	return result
}
