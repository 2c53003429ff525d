package parsing

import (
	"testing"

	"github.com/jonathan/fit-scorer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty string", "", ""},
		{"Whitespace only", "   \t\n ", ""},
		{"Lower-cases", "React AWS", "react aws"},
		{"Keeps dots and dashes", "Node.js, e-learning", "node.js e-learning"},
		{"Strips other punctuation", "C++/C#; (Go)!", "c c go"},
		{"Collapses whitespace", "a   b\t\tc\n\nd", "a b c d"},
		{"Strips plus sign", "10+ years", "10 years"},
		{"Folds diacritics", "São Paulo, Zürich", "sao paulo zurich"},
		{"Replaces slash", "CI/CD", "ci cd"},
		{"Email becomes tokens", "jane@example.com", "jane example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input))
		})
	}
}

func TestLooseText(t *testing.T) {
	assert.Equal(t, "", LooseText(""))
	assert.Equal(t, "5+ years, 2019–2023", LooseText("  5+  Years,\n2019–2023 "))
}

func TestProfileText_FieldOrder(t *testing.T) {
	a := types.ApplicantRecord{
		Summary:    "summary",
		Notes:      "notes",
		Name:       "Name",
		Email:      "mail",
		Location:   "loc",
		Education:  "edu",
		Experience: "exp",
		Skills:     "skills",
		Bio:        "bio",
	}

	assert.Equal(t, "notes name mail loc edu exp skills bio summary", ProfileText(a))
}

func TestProfileText_SkipsAbsentFields(t *testing.T) {
	a := types.ApplicantRecord{Name: "Jane", Bio: "  ", Skills: "Go"}
	assert.Equal(t, "jane go", ProfileText(a))
	assert.Equal(t, "", ProfileText(types.ApplicantRecord{}))
}

func TestProfileLooseText(t *testing.T) {
	a := types.ApplicantRecord{Experience: "8+ Years", Summary: "Since 2015"}
	assert.Equal(t, "8+ years since 2015", ProfileLooseText(a))
}

func TestJobText_FieldOrder(t *testing.T) {
	j := types.JobRecord{
		Location:     "Remote",
		Company:      "Acme",
		Requirements: "React",
		Description:  "Build UI",
		Title:        "Frontend Engineer",
	}

	assert.Equal(t, "frontend engineer build ui react acme remote", JobText(j))
	assert.Equal(t, "", JobText(types.JobRecord{}))
}
