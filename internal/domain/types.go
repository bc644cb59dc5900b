package domain

// Country is one entry of the safety knowledge base. All fields are
// read-only after load; empty maps and slices are legal and flow through
// to the presentation layer untouched.
type Country struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	EmergencyNumbers   map[string]string `json:"emergency_numbers"`
	CommonScams        []ScamPattern     `json:"common_scams"`
	HarassmentPatterns HarassmentInfo    `json:"harassment_patterns"`
	Culture            CultureInfo       `json:"culture"`
	LocalPhrases       map[string]string `json:"local_phrases"`
	PriceReference     map[string]string `json:"price_reference"`
}

// ScamPattern describes a known overcharge or fraud scheme for a country,
// with reference rates and the situation keywords used by the matcher.
type ScamPattern struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	SituationKeywords []string `json:"situation_keywords"`
	NormalRate        string   `json:"normal_rate"`
	ScamRate          string   `json:"scam_rate"`
	Advice            string   `json:"advice"`
}

// HarassmentInfo wraps the harassment pattern examples for a country.
type HarassmentInfo struct {
	Overview string              `json:"overview"`
	Examples []HarassmentPattern `json:"examples"`
}

// HarassmentPattern describes a personal-safety situation archetype.
// It carries no explicit keyword list; the matcher derives ad hoc
// keywords from the name and description.
type HarassmentPattern struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	ThreatLevel      string   `json:"threat_level"`
	ImmediateActions []string `json:"immediate_actions"`
}

// CultureInfo captures cultural rules and etiquette for a country.
type CultureInfo struct {
	Greetings string   `json:"greetings"`
	Dos       []string `json:"dos"`
	Donts     []string `json:"donts"`
	Etiquette string   `json:"etiquette"`
}

// UserProfile is the per-session traveler profile. It is created at
// onboarding, mutable through the profile command, and never persisted
// across process restarts.
type UserProfile struct {
	Name               string `mapstructure:"name"`
	Gender             string `mapstructure:"gender"`
	AgeRange           string `mapstructure:"ageRange"`
	NativeLanguage     string `mapstructure:"nativeLanguage"`
	DestinationCountry string `mapstructure:"destinationCountry"`
	DestinationCity    string `mapstructure:"destinationCity"`
	Interest           string `mapstructure:"interest"`
	SafetyPreference   string `mapstructure:"safetyPreference"`
}

// PatternType tags a matched knowledge-base record.
type PatternType string

const (
	PatternScam       PatternType = "scam"
	PatternHarassment PatternType = "harassment"
)

// MatchedPattern is a transient record produced per classification call.
// Exactly one of Scam or Harassment is set, according to Type.
type MatchedPattern struct {
	Type       PatternType
	Name       string
	Scam       *ScamPattern
	Harassment *HarassmentPattern
}

// SituationAnalysis is the structured result of one classification call.
// Instances are appended to the session history and never persisted.
type SituationAnalysis struct {
	RiskScore        int               `json:"riskScore"`
	Tier             RiskTier          `json:"tier"`
	PatternMatched   string            `json:"patternMatched"`
	RiskExplanation  string            `json:"riskExplanation"`
	WhatToDo         []string          `json:"whatToDo"`
	WhatNotToDo      []string          `json:"whatNotToDo"`
	EmergencyNumbers map[string]string `json:"emergencyNumbers"`
	LocalPhrases     map[string]string `json:"localPhrases"`
	CulturalNotes    string            `json:"culturalNotes"`

	// Raw preserves the collaborator's response text verbatim so a failed
	// structured parse can be shown to the user instead of guessed at.
	Raw string `json:"raw,omitempty"`

	// Degraded marks results assembled through the free-text fallback
	// parser rather than the structured JSON path.
	Degraded bool `json:"degraded,omitempty"`
}

// TranslationResult is the outcome of a culture-aware phrase translation.
type TranslationResult struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	Pronunciation  string `json:"pronunciation"`
	ToneGuidance   string `json:"toneGuidance"`
	CulturalNotes  string `json:"culturalNotes"`
	Audio          []byte `json:"-"`
}
