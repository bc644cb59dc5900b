package analyze

import "github.com/safewonder/safewonder/internal/domain"

// DefaultStructuredScore is used when a structured response omits its
// risk_score field.
const DefaultStructuredScore = 50

// Score produces the final risk score for a parsed response. Structured
// responses carry a numeric score directly; free-text responses map their
// detected tier to the band midpoint. Knowledge-base pattern floors are
// applied last, so a deterministic local match always outranks a
// collaborator that underestimated the risk.
func Score(parsed ParsedResponse, matches []domain.MatchedPattern) int {
	var raw int
	switch r := parsed.(type) {
	case *Structured:
		if r.RiskScore != nil {
			raw = *r.RiskScore
		} else {
			raw = DefaultStructuredScore
		}
	case *FreeText:
		raw = r.Tier.Midpoint()
	default:
		raw = DefaultStructuredScore
	}
	return domain.ApplyPatternFloors(raw, matches)
}
