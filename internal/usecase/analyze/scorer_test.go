package analyze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/safewonder/safewonder/internal/domain"
	"github.com/safewonder/safewonder/internal/usecase/analyze"
)

func intPtr(v int) *int { return &v }

func scamMatch() domain.MatchedPattern {
	return domain.MatchedPattern{Type: domain.PatternScam, Name: "Taxi Overcharge"}
}

func harassmentMatch() domain.MatchedPattern {
	return domain.MatchedPattern{Type: domain.PatternHarassment, Name: "Persistent Follower"}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		parsed  analyze.ParsedResponse
		matches []domain.MatchedPattern
		want    int
	}{
		{
			name:   "structured score passes through",
			parsed: &analyze.Structured{RiskScore: intPtr(72)},
			want:   72,
		},
		{
			name:   "structured missing score defaults",
			parsed: &analyze.Structured{},
			want:   analyze.DefaultStructuredScore,
		},
		{
			name:   "structured score clamped to 100",
			parsed: &analyze.Structured{RiskScore: intPtr(150)},
			want:   100,
		},
		{
			name:   "structured negative score clamped to 0",
			parsed: &analyze.Structured{RiskScore: intPtr(-5)},
			want:   0,
		},
		{
			name:    "scam match floors a low structured score",
			parsed:  &analyze.Structured{RiskScore: intPtr(10)},
			matches: []domain.MatchedPattern{scamMatch()},
			want:    40,
		},
		{
			name:    "harassment match floors higher",
			parsed:  &analyze.Structured{RiskScore: intPtr(10)},
			matches: []domain.MatchedPattern{harassmentMatch()},
			want:    50,
		},
		{
			name:    "floors never lower a high score",
			parsed:  &analyze.Structured{RiskScore: intPtr(85)},
			matches: []domain.MatchedPattern{scamMatch(), harassmentMatch()},
			want:    85,
		},
		{
			name:   "free text high tier maps to midpoint",
			parsed: &analyze.FreeText{Tier: domain.TierHigh},
			want:   80,
		},
		{
			name:   "free text medium tier maps to midpoint",
			parsed: &analyze.FreeText{Tier: domain.TierMedium},
			want:   45,
		},
		{
			name:    "free text low tier raised by harassment floor",
			parsed:  &analyze.FreeText{Tier: domain.TierLow},
			matches: []domain.MatchedPattern{harassmentMatch()},
			want:    50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analyze.Score(tt.parsed, tt.matches))
		})
	}
}
