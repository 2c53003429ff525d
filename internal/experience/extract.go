// Package experience estimates total years of experience from free text.
package experience

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/jonathan/fit-scorer/internal/types"
)

// maxPlausibleYears discards single mentions that cannot be a career length.
const maxPlausibleYears = 60

// Seniority thresholds in years.
const (
	executiveYears = 15
	seniorYears    = 10
	midYears       = 5
	juniorYears    = 2
)

// Evidence is one rule match and the value it contributed.
type Evidence struct {
	Rule     string  `json:"rule"`
	Text     string  `json:"text"`
	Years    float64 `json:"years"`
	Weighted float64 `json:"weighted"`
}

// rule is a weighted pattern. years derives the raw duration from submatches and
// reports false when the match carries no usable duration.
type rule struct {
	name    string
	pattern *regexp.Regexp
	weight  float64
	years   func(groups []string, currentYear int) (float64, bool)
}

// seniorTitle matches a senior-level job title in normalized text.
var seniorTitle = regexp.MustCompile(`(?:^|[^a-z0-9])(?:senior|sr|staff|principal)(?:$|[^a-z0-9])`)

var rules = []rule{
	{
		name:    "explicit",
		pattern: regexp.MustCompile(`\b(\d{1,2}(?:\.\d+)?)\s*(?:\+|plus)?\s*(?:(?:to|-|–)\s*(\d{1,2}(?:\.\d+)?)\s*)?(?:years?|yrs?)\.?\s*(?:of\s+)?(?:professional\s+|relevant\s+|industry\s+|work\s+)?(?:experience|exp)\b`),
		weight:  1.0,
		years: func(g []string, _ int) (float64, bool) {
			n, ok := parseYears(g[1])
			if !ok {
				return 0, false
			}
			if m, ok := parseYears(g[2]); ok && m > n {
				n = m
			}
			return n, true
		},
	},
	{
		name:    "lower_bound",
		pattern: regexp.MustCompile(`\b(?:over|more than|above)\s+(\d{1,2}(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b`),
		weight:  1.1,
		years:   firstGroupYears,
	},
	{
		name:    "plus",
		pattern: regexp.MustCompile(`\b(\d{1,2}(?:\.\d+)?)\s*(?:\+|plus)\s*(?:years?|yrs?)\b`),
		weight:  1.2,
		years:   firstGroupYears,
	},
	{
		name:    "date_range",
		pattern: regexp.MustCompile(`\b((?:19|20)\d{2})\s*(?:-|–|—|to)\s*((?:19|20)\d{2}|present|current|now|today)\b`),
		weight:  1.0,
		years: func(g []string, currentYear int) (float64, bool) {
			start, err := strconv.Atoi(g[1])
			if err != nil {
				return 0, false
			}
			end := currentYear
			if parsed, err := strconv.Atoi(g[2]); err == nil {
				end = parsed
			}
			return durationYears(start, end)
		},
	},
	{
		name:    "since",
		pattern: regexp.MustCompile(`\b(?:since|from)\s+((?:19|20)\d{2})\b`),
		weight:  0.9,
		years: func(g []string, currentYear int) (float64, bool) {
			start, err := strconv.Atoi(g[1])
			if err != nil {
				return 0, false
			}
			return durationYears(start, currentYear)
		},
	},
}

// Extractor applies the experience rules. The zero value is not usable; use
// NewExtractor.
type Extractor struct {
	now func() time.Time
}

// NewExtractor creates an Extractor that resolves "present" and "since" phrasing
// against now. A nil now uses the system clock.
func NewExtractor(now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{now: now}
}

// Years returns the strongest single weighted estimate across all rule matches,
// rounded to one decimal. Overlapping mentions are not summed.
func (e *Extractor) Years(text string) float64 {
	best := 0.0
	for _, ev := range e.Evidence(text) {
		if ev.Weighted > best {
			best = ev.Weighted
		}
	}
	return math.Round(best*10) / 10
}

// Evidence returns every usable rule match in rule order.
func (e *Extractor) Evidence(text string) []Evidence {
	if text == "" {
		return nil
	}
	currentYear := e.now().Year()

	var out []Evidence
	for _, r := range rules {
		for _, groups := range r.pattern.FindAllStringSubmatch(text, -1) {
			years, ok := r.years(groups, currentYear)
			if !ok || years > maxPlausibleYears {
				continue
			}
			out = append(out, Evidence{
				Rule:     r.name,
				Text:     groups[0],
				Years:    years,
				Weighted: years * r.weight,
			})
		}
	}
	return out
}

// Seniority maps years of experience to a tier.
func Seniority(years float64) types.SeniorityLevel {
	switch {
	case years >= executiveYears:
		return types.SeniorityExecutive
	case years >= seniorYears:
		return types.SenioritySenior
	case years >= midYears:
		return types.SeniorityMid
	case years >= juniorYears:
		return types.SeniorityJunior
	default:
		return types.SeniorityEntry
	}
}

// ProfileSeniority is Seniority(years) lifted to Senior when the normalized profile
// text carries a senior-level title and years reach the mid-level threshold. A title
// never lowers the tier and never lifts it on its own.
func ProfileSeniority(years float64, text string) types.SeniorityLevel {
	level := Seniority(years)
	if level == types.SeniorityMid && seniorTitle.MatchString(text) {
		return types.SenioritySenior
	}
	return level
}

func firstGroupYears(g []string, _ int) (float64, bool) {
	return parseYears(g[1])
}

func parseYears(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// durationYears counts end-start, rejecting negative durations.
func durationYears(start, end int) (float64, bool) {
	if end < start {
		return 0, false
	}
	return float64(end - start), true
}
