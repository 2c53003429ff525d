// Package matching implements alias-aware fuzzy containment of canonical terms in
// normalized text.
package matching

import (
	"regexp"
	"strings"
	"sync"

	"github.com/jonathan/fit-scorer/internal/taxonomy"
)

const (
	// boundary matches the start or end of text or any non-alphanumeric character.
	// \b is not used because terms such as ".net" or "node.js" start or end with
	// punctuation. A term may not start right after a dot, so the "js" of "node.js"
	// is not read as javascript.
	boundaryStart = `(?:^|[^a-z0-9.])`
	boundaryEnd   = `(?:$|[^a-z0-9])`

	skillSuffix    = `(?:[ .\-]?(?:js|css|html|api|framework|library))?`
	locationSuffix = `(?: ?(?:city|state|province|region|area))?`

	// maxCachedPatterns bounds the cache. Location terms come from caller text, so the
	// key space is open; patterns past the bound are compiled per call.
	maxCachedPatterns = 4096
)

type patternKey struct {
	term     string
	location bool
}

// Matcher tests whether a canonical term, or any alias registered for it, occurs in a
// text. It is safe for concurrent use; the pattern cache only affects speed.
type Matcher struct {
	aliases map[string][]string

	mu       sync.RWMutex
	patterns map[patternKey]*regexp.Regexp
}

// NewMatcher creates a Matcher over an alias table keyed by taxonomy.AliasKey.
func NewMatcher(aliases map[string][]string) *Matcher {
	if aliases == nil {
		aliases = map[string][]string{}
	}
	return &Matcher{
		aliases:  aliases,
		patterns: make(map[patternKey]*regexp.Regexp),
	}
}

// Matches reports whether text contains term or one of its aliases as a whole token
// sequence, allowing a trailing skill suffix (isLocation false) or locality qualifier
// (isLocation true). text is expected to be normalized.
func (m *Matcher) Matches(text, term string, isLocation bool) bool {
	term = strings.TrimSpace(strings.ToLower(term))
	if text == "" || term == "" {
		return false
	}

	if m.pattern(term, isLocation).MatchString(text) {
		return true
	}

	aliases, ok := m.aliases[taxonomy.AliasKey(term)]
	if !ok {
		return false
	}
	for _, alias := range aliases {
		alias = strings.TrimSpace(strings.ToLower(alias))
		if alias == "" {
			continue
		}
		if m.pattern(alias, isLocation).MatchString(text) {
			return true
		}
	}
	return false
}

// MatchAny returns the first term found in text, in the given order.
func (m *Matcher) MatchAny(text string, terms []string, isLocation bool) (string, bool) {
	for _, term := range terms {
		if m.Matches(text, term, isLocation) {
			return term, true
		}
	}
	return "", false
}

// Warm compiles and caches the patterns for terms and all of their aliases.
func (m *Matcher) Warm(terms []string, isLocation bool) {
	for _, term := range terms {
		term = strings.TrimSpace(strings.ToLower(term))
		if term == "" {
			continue
		}
		m.pattern(term, isLocation)
		for _, alias := range m.aliases[taxonomy.AliasKey(term)] {
			m.pattern(strings.TrimSpace(strings.ToLower(alias)), isLocation)
		}
	}
}

// CacheSize returns the number of cached patterns.
func (m *Matcher) CacheSize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.patterns)
}

// pattern returns the compiled pattern for term, compiling and caching it on a miss.
// Two goroutines racing on the same key store equivalent patterns.
func (m *Matcher) pattern(term string, isLocation bool) *regexp.Regexp {
	key := patternKey{term: term, location: isLocation}

	m.mu.RLock()
	re, ok := m.patterns[key]
	m.mu.RUnlock()
	if ok {
		return re
	}

	re = compile(term, isLocation)

	m.mu.Lock()
	if len(m.patterns) < maxCachedPatterns {
		m.patterns[key] = re
	}
	m.mu.Unlock()

	return re
}

// compile builds the boundary-delimited pattern for term.
func compile(term string, isLocation bool) *regexp.Regexp {
	suffix := skillSuffix
	if isLocation {
		suffix = locationSuffix
	}
	return regexp.MustCompile(boundaryStart + regexp.QuoteMeta(term) + suffix + boundaryEnd)
}
