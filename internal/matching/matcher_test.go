package matching

import (
	"fmt"
	"sync"
	"testing"

	"github.com/jonathan/fit-scorer/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher() *Matcher {
	return NewMatcher(taxonomy.MustDefault().Aliases)
}

func TestMatches_DirectTerm(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name     string
		text     string
		term     string
		expected bool
	}{
		{"Whole word", "built apps in react and aws", "react", true},
		{"Start of text", "react developer", "react", true},
		{"End of text", "developer using react", "react", true},
		{"Followed by dot", "react. aws", "react", true},
		{"Not a substring", "javascript developer", "java", false},
		{"Not inside a longer word", "mysql admin", "sql", false},
		{"Multi-word term", "strong project management skills", "project management", true},
		{"Term with dot", "apis in node.js and go", "node.js", true},
		{"Term starting with dot", "c .net developer", ".net", true},
		{"Skill suffix attached", "reactjs and vue", "react", true},
		{"Skill suffix with dash", "express-framework", "express", true},
		{"Skill suffix with space", "spring framework", "spring", true},
		{"Unrelated suffix", "reactive streams", "react", false},
		{"Empty text", "", "react", false},
		{"Empty term", "react", "", false},
		{"Term is trimmed and lower-cased", "react", "  React ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.Matches(tt.text, tt.term, false))
		})
	}
}

func TestMatches_Aliases(t *testing.T) {
	m := newTestMatcher()

	assert.True(t, m.Matches("deployed on k8s clusters", "kubernetes", false))
	assert.True(t, m.Matches("wrote js daily", "javascript", false))
	assert.True(t, m.Matches("postgres and redis", "postgresql", false))
	assert.True(t, m.Matches("applied ml models", "machine learning", false))
	assert.False(t, m.Matches("html templates", "machine learning", false))
	assert.False(t, m.Matches("no orchestration here", "kubernetes", false))
}

func TestMatches_DotBeforeTerm(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name     string
		text     string
		term     string
		expected bool
	}{
		{"Framework does not imply language", "react, node.js, aws", "javascript", false},
		{"Next.js does not imply language", "next.js developer", "javascript", false},
		{"Framework itself still matches", "react, node.js, aws", "node.js", true},
		{"Standalone alias still matches", "vanilla js and css", "javascript", true},
		{"Dotted term after space", "c .net developer", ".net", true},
		{"Term after sentence dot and space", "aws. react", "react", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.Matches(tt.text, tt.term, false))
		})
	}
}

func TestMatches_AliasLookupIgnoresSpaces(t *testing.T) {
	m := newTestMatcher()

	// "new york" is looked up as "newyork".
	assert.True(t, m.Matches("based in nyc", "new york", true))
	assert.True(t, m.Matches("sf bay", "san francisco", true))
}

func TestMatches_LocationQualifier(t *testing.T) {
	m := newTestMatcher()

	assert.True(t, m.Matches("new york city", "new york", true))
	assert.True(t, m.Matches("greater toronto area", "toronto", true))
	assert.True(t, m.Matches("torontoarea", "toronto", true))
	assert.False(t, m.Matches("torontoarea", "toronto", false))
	assert.True(t, m.Matches("remote-first team", "remote", true))
	assert.True(t, m.Matches("work from home", "remote", true))
}

func TestMatches_UnknownTermWithoutAlias(t *testing.T) {
	m := NewMatcher(nil)
	assert.False(t, m.Matches("k8s", "kubernetes", false))
	assert.True(t, m.Matches("kubernetes", "kubernetes", false))
}

func TestMatchAny(t *testing.T) {
	m := newTestMatcher()

	found, ok := m.MatchAny("offices in the uk and usa", []string{"usa", "uk"}, true)
	require.True(t, ok)
	assert.Equal(t, "usa", found)

	_, ok = m.MatchAny("mars", []string{"usa", "uk"}, true)
	assert.False(t, ok)
}

func TestWarm_PopulatesCache(t *testing.T) {
	m := newTestMatcher()
	assert.Equal(t, 0, m.CacheSize())

	m.Warm([]string{"kubernetes", "react"}, false)
	// kubernetes + k8s + react + reactjs + react.js
	assert.Equal(t, 5, m.CacheSize())

	m.Warm([]string{"kubernetes"}, true)
	assert.Equal(t, 7, m.CacheSize())
}

func TestCache_DoesNotChangeResults(t *testing.T) {
	cold := newTestMatcher()
	warm := newTestMatcher()
	warm.Warm(taxonomy.MustDefault().SkillTerms(), false)

	texts := []string{
		"senior engineer react node.js aws k8s",
		"nurse with cpr and emr experience",
		"",
	}
	for _, text := range texts {
		for _, term := range taxonomy.MustDefault().SkillTerms() {
			assert.Equal(t, cold.Matches(text, term, false), warm.Matches(text, term, false), "%q in %q", term, text)
		}
	}
}

func TestCache_Bounded(t *testing.T) {
	m := NewMatcher(nil)
	for i := 0; i < maxCachedPatterns+10; i++ {
		m.Matches("city 1", fmt.Sprintf("city %d", i), true)
	}
	assert.Equal(t, maxCachedPatterns, m.CacheSize())
	assert.True(t, m.Matches("city 4200", "city 4200", true))
}

func TestMatches_ConcurrentUse(t *testing.T) {
	m := newTestMatcher()
	terms := taxonomy.MustDefault().SkillTerms()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, term := range terms {
				m.Matches("react aws k8s", term, false)
			}
		}()
	}
	wg.Wait()

	assert.True(t, m.Matches("react aws k8s", "kubernetes", false))
}
