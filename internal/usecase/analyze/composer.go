package analyze

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/safewonder/safewonder/internal/domain"
)

// SystemPrompt is the system message sent with every analysis request.
const SystemPrompt = "You are a helpful travel safety assistant. Provide accurate, actionable advice."

// DefaultMaxContextPatterns bounds how many matched records the composer
// includes in the prompt context.
const DefaultMaxContextPatterns = 5

const promptTemplate = `You are a Safety AI assistant for travelers. Analyze the following situation:

USER SITUATION: {{.Description}}

TRAVELER PROFILE:
- Gender: {{.Gender}}
- Age range: {{.AgeRange}}
- Native Language: {{.NativeLanguage}}
- Destination: {{.CountryName}}, {{.City}}

KNOWLEDGE BASE CONTEXT:

Cultural Rules:
{{.CultureJSON}}

Local Emergency Phrases:
{{.PhrasesJSON}}

Emergency Numbers:
{{.EmergencyJSON}}

Price Reference:
{{.PricesJSON}}

PRE-MATCHED PATTERNS:
{{.MatchedContext}}

TASK:
1. Analyze if this situation matches any scam, harassment, or cultural misunderstanding
2. Assess risk level (0-100):
   - 0-30: Low risk (normal situation, minor concern)
   - 31-60: Medium risk (caution advised, potential issue)
   - 61-100: High risk (immediate action needed, dangerous)
3. Provide specific, actionable steps from the knowledge base
4. Add intelligent reasoning beyond the JSON data
5. Include relevant emergency contacts and cultural guidance

OUTPUT FORMAT (respond ONLY with valid JSON):
{
  "risk_score": <number 0-100>,
  "pattern_matched": "<name of matched pattern or 'General Safety Concern'>",
  "risk_explanation": "<clear explanation of why this is risky or not>",
  "what_to_do": ["<specific action 1>", "<specific action 2>", "<specific action 3>"],
  "what_not_to_do": ["<what to avoid 1>", "<what to avoid 2>"],
  "cultural_notes": "<relevant cultural context or 'No specific cultural concerns'>"
}

Remember: Be specific, actionable, and prioritize traveler safety.`

// Composer assembles a bounded natural-language context for the LLM
// collaborator. It never performs network IO; the caller submits the
// returned prompt.
type Composer struct {
	maxContextPatterns int
	tmpl               *template.Template
}

// NewComposer constructs a Composer. maxContextPatterns values outside
// 1..DefaultMaxContextPatterns fall back to the default.
func NewComposer(maxContextPatterns int) *Composer {
	if maxContextPatterns < 1 || maxContextPatterns > DefaultMaxContextPatterns {
		maxContextPatterns = DefaultMaxContextPatterns
	}
	return &Composer{
		maxContextPatterns: maxContextPatterns,
		tmpl:               template.Must(template.New("prompt").Parse(promptTemplate)),
	}
}

type promptData struct {
	Description    string
	Gender         string
	AgeRange       string
	NativeLanguage string
	CountryName    string
	City           string
	CultureJSON    string
	PhrasesJSON    string
	EmergencyJSON  string
	PricesJSON     string
	MatchedContext string
}

// Compose renders the analysis prompt from the situation description, the
// traveler profile, the destination country data, and the pre-matched
// patterns. Only the first maxContextPatterns matches are included; later
// matches are dropped silently to bound prompt size.
func (c *Composer) Compose(description string, profile domain.UserProfile, country domain.Country, matches []domain.MatchedPattern) (string, error) {
	data := promptData{
		Description:    description,
		Gender:         orDefault(profile.Gender, "Not specified"),
		AgeRange:       orDefault(profile.AgeRange, "Not specified"),
		NativeLanguage: orDefault(profile.NativeLanguage, "English"),
		CountryName:    orDefault(country.Name, "Unknown"),
		City:           orDefault(profile.DestinationCity, "Unknown"),
		CultureJSON:    marshalContext(country.Culture),
		PhrasesJSON:    marshalContext(country.LocalPhrases),
		EmergencyJSON:  marshalContext(country.EmergencyNumbers),
		PricesJSON:     marshalContext(country.PriceReference),
		MatchedContext: c.formatMatches(matches),
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

// formatMatches renders the capped match list with a per-type template.
func (c *Composer) formatMatches(matches []domain.MatchedPattern) string {
	if len(matches) == 0 {
		return "None"
	}
	if len(matches) > c.maxContextPatterns {
		matches = matches[:c.maxContextPatterns]
	}

	var builder strings.Builder
	for _, match := range matches {
		switch match.Type {
		case domain.PatternScam:
			scam := match.Scam
			fmt.Fprintf(&builder, "- Scam %q: Normal rate: %s, Scam rate: %s, Advice: %s\n",
				scam.Name, scam.NormalRate, scam.ScamRate, scam.Advice)
		case domain.PatternHarassment:
			pattern := match.Harassment
			actions := pattern.ImmediateActions
			if len(actions) > 3 {
				actions = actions[:3]
			}
			fmt.Fprintf(&builder, "- Harassment %q: %s, Threat level: %s, Immediate actions: %s\n",
				pattern.Name, pattern.Description, pattern.ThreatLevel, strings.Join(actions, "; "))
		}
	}
	return strings.TrimRight(builder.String(), "\n")
}

func marshalContext(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
