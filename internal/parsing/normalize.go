// Package parsing builds the normalized text bundles the scoring engine matches against.
package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/fit-scorer/internal/types"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reDisallowed = regexp.MustCompile(`[^a-z0-9 .\-]+`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// NormalizeText lower-cases s, replaces every character outside [a-z0-9 .-] with a
// space and collapses runs of whitespace. Accented letters are folded to their base
// letter first so "São Paulo" becomes "sao paulo" rather than "s o paulo".
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(foldDiacritics(s))
	s = reDisallowed.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// LooseText lower-cases s and collapses whitespace but keeps punctuation, so phrasing
// like "5+ years" or "2019–2023" survives for the experience extractor.
func LooseText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ProfileText returns the normalized applicant bundle.
func ProfileText(a types.ApplicantRecord) string {
	return NormalizeText(joinFields(profileFields(a)))
}

// ProfileLooseText returns the applicant bundle with punctuation preserved.
func ProfileLooseText(a types.ApplicantRecord) string {
	return LooseText(joinFields(profileFields(a)))
}

// JobText returns the normalized job bundle.
func JobText(j types.JobRecord) string {
	return NormalizeText(joinFields([]string{j.Title, j.Description, j.Requirements, j.Company, j.Location}))
}

// profileFields lists applicant fields in bundle order.
func profileFields(a types.ApplicantRecord) []string {
	return []string{a.Notes, a.Name, a.Email, a.Location, a.Education, a.Experience, a.Skills, a.Bio, a.Summary}
}

// joinFields joins the non-blank fields with single spaces.
func joinFields(fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			continue
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, " ")
}

// foldDiacritics strips combining marks after canonical decomposition. On a transform
// failure the input is returned unchanged.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
