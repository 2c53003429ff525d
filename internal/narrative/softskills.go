package narrative

import (
	"github.com/jonathan/fit-scorer/internal/matching"
	"github.com/jonathan/fit-scorer/internal/taxonomy"
)

// LeadershipCategory is the soft-skill category that triggers the mentoring focus.
const LeadershipCategory = "leadership"

// DetectSoftSkills returns, in table order, every category with at least one keyword
// found in text. The result is never nil.
func DetectSoftSkills(m *matching.Matcher, table []taxonomy.SoftSkill, text string) []string {
	found := []string{}
	if text == "" {
		return found
	}
	for _, soft := range table {
		if _, ok := m.MatchAny(text, soft.Keywords, false); ok {
			found = append(found, soft.Category)
		}
	}
	return found
}
