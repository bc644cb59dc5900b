package analyze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safewonder/safewonder/internal/domain"
	"github.com/safewonder/safewonder/internal/usecase/analyze"
)

func TestMatchScamKeywords(t *testing.T) {
	matcher := analyze.NewMatcher(analyze.DefaultMatcherRules())

	tests := []struct {
		name        string
		description string
		wantNames   []string
	}{
		{
			name:        "taxi keyword hits scam record",
			description: "The taxi driver is asking 800 rupees",
			wantNames:   []string{"Taxi Overcharge"},
		},
		{
			name:        "case insensitive",
			description: "THE TAXI QUOTED A CRAZY PRICE",
			wantNames:   []string{"Taxi Overcharge"},
		},
		{
			name:        "multiple keywords still one match per record",
			description: "the taxi wants an outrageous fare",
			wantNames:   []string{"Taxi Overcharge"},
		},
		{
			name:        "substring containment matches inside words",
			description: "I took an automatic rickshaw",
			wantNames:   []string{"Taxi Overcharge"},
		},
		{
			name:        "two records can both match",
			description: "the taxi driver insists on a gem shop stop",
			wantNames:   []string{"Taxi Overcharge", "Gem Store Detour"},
		},
		{
			name:        "no keyword no match",
			description: "the hotel breakfast was excellent today",
			wantNames:   nil,
		},
		{
			name:        "empty description",
			description: "",
			wantNames:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := matcher.Match(tt.description, testCountry())

			var names []string
			for _, m := range matches {
				names = append(names, m.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestMatchHarassmentDerivedKeywords(t *testing.T) {
	matcher := analyze.NewMatcher(analyze.DefaultMatcherRules())

	matches := matcher.Match("a stranger follows me everywhere", testCountry())

	require.Len(t, matches, 1)
	assert.Equal(t, domain.PatternHarassment, matches[0].Type)
	assert.Equal(t, "Persistent Follower", matches[0].Name)
	require.NotNil(t, matches[0].Harassment)
	assert.Equal(t, "HIGH", matches[0].Harassment.ThreatLevel)
}

func TestMatchSkipsShortDerivedWords(t *testing.T) {
	matcher := analyze.NewMatcher(analyze.DefaultMatcherRules())

	// "you" and "or" appear in the harassment description but are at or
	// below the derived-word length threshold.
	matches := matcher.Match("can you help me or not", testCountry())

	assert.Empty(t, matches)
}

func TestMatchScamsOrderedBeforeHarassment(t *testing.T) {
	matcher := analyze.NewMatcher(analyze.DefaultMatcherRules())

	matches := matcher.Match("a stranger near the taxi stand follows me", testCountry())

	require.Len(t, matches, 2)
	assert.Equal(t, domain.PatternScam, matches[0].Type)
	assert.Equal(t, domain.PatternHarassment, matches[1].Type)
}
