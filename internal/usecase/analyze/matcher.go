package analyze

import (
	"strings"

	"github.com/safewonder/safewonder/internal/domain"
)

// MatcherRules make the matching policy injectable data rather than
// scattered literals. The zero value is not usable; use DefaultMatcherRules.
type MatcherRules struct {
	// MinDerivedWordLength is the minimum length (exclusive) of words
	// derived from harassment pattern names and descriptions. Words at or
	// below this length are skipped to avoid matching articles and
	// prepositions.
	MinDerivedWordLength int
}

// DefaultMatcherRules returns the standard matching policy.
func DefaultMatcherRules() MatcherRules {
	return MatcherRules{MinDerivedWordLength: 3}
}

// Matcher scans free-text situation descriptions against the knowledge
// base entries for the active destination country.
//
// Matching is deliberate substring containment, not tokenized or
// boundary-aware: a keyword matches when it is a literal case-insensitive
// substring of the description. This biases toward over-matching so true
// positives are not missed; short keywords can false-positive inside
// unrelated words, an accepted tradeoff of the matching policy.
type Matcher struct {
	rules MatcherRules
}

// NewMatcher constructs a Matcher with the given rules.
func NewMatcher(rules MatcherRules) *Matcher {
	return &Matcher{rules: rules}
}

// Match returns every record of the country whose keyword list has at
// least one case-insensitive substring hit in the description. Matches
// come back in knowledge-base iteration order, scams before harassment,
// with no dedup and no ranking. Scanning a record stops at its first
// matching keyword. An empty description yields an empty list.
func (m *Matcher) Match(description string, country domain.Country) []domain.MatchedPattern {
	descLower := strings.ToLower(description)
	if descLower == "" {
		return nil
	}

	var matched []domain.MatchedPattern

	for i := range country.CommonScams {
		scam := &country.CommonScams[i]
		for _, keyword := range scam.SituationKeywords {
			if keyword != "" && strings.Contains(descLower, strings.ToLower(keyword)) {
				matched = append(matched, domain.MatchedPattern{
					Type: domain.PatternScam,
					Name: scam.Name,
					Scam: scam,
				})
				break
			}
		}
	}

	for i := range country.HarassmentPatterns.Examples {
		pattern := &country.HarassmentPatterns.Examples[i]
		for _, keyword := range m.derivedKeywords(pattern) {
			if strings.Contains(descLower, keyword) {
				matched = append(matched, domain.MatchedPattern{
					Type:       domain.PatternHarassment,
					Name:       pattern.Name,
					Harassment: pattern,
				})
				break
			}
		}
	}

	return matched
}

// derivedKeywords builds the ad hoc keyword list for a harassment record,
// which carries no explicit keywords: every word of its name and
// description longer than the rule threshold.
func (m *Matcher) derivedKeywords(pattern *domain.HarassmentPattern) []string {
	words := strings.Fields(strings.ToLower(pattern.Name))
	words = append(words, strings.Fields(strings.ToLower(pattern.Description))...)

	keywords := words[:0]
	for _, word := range words {
		if len([]rune(word)) > m.rules.MinDerivedWordLength {
			keywords = append(keywords, word)
		}
	}
	return keywords
}
