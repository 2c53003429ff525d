// Package skills extracts canonical skills from normalized text and scores the overlap
// between an applicant and a job.
package skills

import (
	"math"

	"github.com/jonathan/fit-scorer/internal/matching"
)

const (
	// depthBonusPerSkill is awarded for every profile skill beyond the matched ones.
	depthBonusPerSkill = 2.0
	maxDepthBonus      = 20.0

	// TopSkillsLimit and MatchedSkillsLimit cap the lists reported to callers.
	TopSkillsLimit     = 10
	MatchedSkillsLimit = 8
)

// Extract returns the terms found in text, in the order of terms, without duplicates.
func Extract(m *matching.Matcher, terms []string, text string) []string {
	if text == "" {
		return nil
	}
	seen := make(map[string]bool)
	var found []string
	for _, term := range terms {
		if seen[term] {
			continue
		}
		if m.Matches(text, term, false) {
			seen[term] = true
			found = append(found, term)
		}
	}
	return found
}

// Overlap describes the skills on each side and their intersection.
type Overlap struct {
	Job     []string
	Profile []string
	Matched []string
}

// Compare intersects profile and job skills. Matched keeps the order of job.
func Compare(profile, job []string) Overlap {
	inProfile := make(map[string]bool, len(profile))
	for _, s := range profile {
		inProfile[s] = true
	}

	var matched []string
	for _, s := range job {
		if inProfile[s] {
			matched = append(matched, s)
		}
	}

	return Overlap{Job: job, Profile: profile, Matched: matched}
}

// Score returns the skill sub-score in [0,100]: the matched share of job skills plus a
// depth bonus for extra profile skills. A job without recognizable skills scores 0.
func (o Overlap) Score() float64 {
	if len(o.Job) == 0 {
		return 0
	}
	base := float64(len(o.Matched)) / float64(len(o.Job)) * 100
	bonus := math.Min(maxDepthBonus, float64(len(o.Profile)-len(o.Matched))*depthBonusPerSkill)
	if bonus < 0 {
		bonus = 0
	}
	return math.Min(100, base+bonus)
}

// Ratio returns matched/job, or 0 when the job lists no skills.
func (o Overlap) Ratio() float64 {
	if len(o.Job) == 0 {
		return 0
	}
	return float64(len(o.Matched)) / float64(len(o.Job))
}

// TopSkills lists profile skills with matched ones first, capped at TopSkillsLimit.
func (o Overlap) TopSkills() []string {
	top := make([]string, 0, TopSkillsLimit)
	seen := make(map[string]bool)
	for _, group := range [][]string{o.Matched, o.Profile} {
		for _, s := range group {
			if len(top) == TopSkillsLimit {
				return top
			}
			if seen[s] {
				continue
			}
			seen[s] = true
			top = append(top, s)
		}
	}
	return top
}

// MatchedSkills lists matched skills capped at MatchedSkillsLimit. Because TopSkills
// puts matched skills first and has a larger cap, the result is always a subset of it.
func (o Overlap) MatchedSkills() []string {
	if len(o.Matched) > MatchedSkillsLimit {
		return append([]string(nil), o.Matched[:MatchedSkillsLimit]...)
	}
	return append([]string{}, o.Matched...)
}
