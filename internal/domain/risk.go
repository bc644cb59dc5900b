package domain

// RiskTier is the coarse classification of a situation's danger level.
type RiskTier string

const (
	TierLow    RiskTier = "LOW"
	TierMedium RiskTier = "MEDIUM"
	TierHigh   RiskTier = "HIGH"
)

// Numeric bands for each tier. A tier maps to a band of scores; the band
// midpoint is used when only a tier is known (free-text responses).
const (
	lowBandMax    = 30
	mediumBandMax = 60

	LowBandMidpoint    = 15
	MediumBandMidpoint = 45
	HighBandMidpoint   = 80
)

// Risk floors applied when certain pattern types matched. Floors raise a
// computed score to a minimum; they never lower it.
const (
	ScamRiskFloor       = 40
	HarassmentRiskFloor = 50
)

// TierForScore maps a numeric score to its tier band:
// 0-30 LOW, 31-60 MEDIUM, 61-100 HIGH.
func TierForScore(score int) RiskTier {
	switch {
	case score <= lowBandMax:
		return TierLow
	case score <= mediumBandMax:
		return TierMedium
	default:
		return TierHigh
	}
}

// Midpoint returns the representative score for a tier's band.
func (t RiskTier) Midpoint() int {
	switch t {
	case TierLow:
		return LowBandMidpoint
	case TierHigh:
		return HighBandMidpoint
	default:
		return MediumBandMidpoint
	}
}

// ClampScore bounds a risk score to [0, 100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ApplyPatternFloors raises the score to the minimum required by the
// matched pattern types, then clamps. The raw score is computed first and
// the floors applied after; a raw score above a floor passes through.
func ApplyPatternFloors(score int, matches []MatchedPattern) int {
	for _, match := range matches {
		switch match.Type {
		case PatternScam:
			if score < ScamRiskFloor {
				score = ScamRiskFloor
			}
		case PatternHarassment:
			if score < HarassmentRiskFloor {
				score = HarassmentRiskFloor
			}
		}
	}
	return ClampScore(score)
}
