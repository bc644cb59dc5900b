package analyze

import (
	"encoding/json"
	"strings"

	llmhttp "github.com/safewonder/safewonder/internal/adapter/llm/http"
	"github.com/safewonder/safewonder/internal/domain"
)

// ParsedResponse is the sum of the two collaborator response shapes:
// Structured (the model honored the JSON contract) or FreeText (prose,
// segmented heuristically). Callers switch on the concrete type instead
// of probing string contents to guess shape.
type ParsedResponse interface {
	parsedResponse()
}

// Structured is a decoded JSON response from the collaborator.
type Structured struct {
	RiskScore       *int     `json:"risk_score"`
	PatternMatched  string   `json:"pattern_matched"`
	RiskExplanation string   `json:"risk_explanation"`
	WhatToDo        []string `json:"what_to_do"`
	WhatNotToDo     []string `json:"what_not_to_do"`
	CulturalNotes   string   `json:"cultural_notes"`
}

func (*Structured) parsedResponse() {}

// FreeText is a prose response segmented by the fallback parser.
type FreeText struct {
	Tier       domain.RiskTier
	Assessment []string
	Actions    []string
	Cultural   []string
	Emergency  []string

	// Defaulted is set when no actionable lines were found and the
	// hardcoded default actions were supplied.
	Defaulted bool
}

func (*FreeText) parsedResponse() {}

// Default outputs supplied when the fallback parser finds nothing usable.
// The parser always succeeds; degenerate input yields these rather than
// an empty result.
var (
	DefaultActions = []string{"Stay calm", "Assess the situation", "Seek help if needed"}
	DefaultAvoid   = []string{"Don't panic", "Don't engage with suspicious individuals"}
)

// ParserRules are the trigger tables and bounds for the free-text parser.
// Rules are data, injectable and independently testable.
type ParserRules struct {
	ActionTriggers    []string
	CulturalTriggers  []string
	EmergencyTriggers []string

	HighTierMarkers []string
	LowTierMarkers  []string

	MaxAssessmentLines int
	MaxActionLines     int
	MaxCulturalLines   int
	MaxEmergencyLines  int
}

// DefaultParserRules returns the standard trigger tables and bounds.
func DefaultParserRules() ParserRules {
	return ParserRules{
		ActionTriggers:    []string{"action", "step", "should"},
		CulturalTriggers:  []string{"culture", "custom", "etiquette"},
		EmergencyTriggers: []string{"emergency", "contact", "police"},

		HighTierMarkers: []string{"HIGH", "DANGER", "URGENT"},
		LowTierMarkers:  []string{"LOW", "SAFE", "MINOR"},

		MaxAssessmentLines: 5,
		MaxActionLines:     4,
		MaxCulturalLines:   3,
		MaxEmergencyLines:  3,
	}
}

// Parser turns raw collaborator text into a ParsedResponse. The
// structured JSON path is primary; the lexical free-text segmentation is
// a best-effort fallback for responses that do not decode.
type Parser struct {
	rules ParserRules
}

// NewParser constructs a Parser with the given rules.
func NewParser(rules ParserRules) *Parser {
	return &Parser{rules: rules}
}

// Parse never fails: any text that does not decode as the structured
// shape is run through the free-text segmenter, which always produces a
// result (defaulting when nothing matches).
func (p *Parser) Parse(text string) ParsedResponse {
	if structured, ok := p.parseStructured(text); ok {
		return structured
	}
	return p.parseFreeText(text)
}

// parseStructured tries the JSON contract, unwrapping markdown fences
// first. A decode failure is not an error here; it selects the fallback.
func (p *Parser) parseStructured(text string) (*Structured, bool) {
	jsonText := llmhttp.ExtractJSONFromMarkdown(text)
	if !strings.HasPrefix(strings.TrimSpace(jsonText), "{") {
		return nil, false
	}

	var result Structured
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		return nil, false
	}
	return &result, true
}

// Section cursor states for the free-text segmenter.
type section int

const (
	sectionAssessment section = iota
	sectionActions
	sectionCultural
	sectionEmergency
)

// parseFreeText segments prose into assessment, actions, cultural and
// emergency buckets in a single forward pass over the lines.
//
// The cursor is one-directional with respect to the assessment state: it
// never returns there once a trigger fires. This assumes well-formed
// model output lists its general assessment before the specific sections,
// which holds for the prompt used here.
func (p *Parser) parseFreeText(text string) *FreeText {
	result := &FreeText{Tier: p.detectTier(text)}

	state := sectionAssessment

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		// List items are always action items: the numbered-step format is
		// a stronger signal than any trigger word they may contain.
		if isListItem(line) {
			state = sectionActions
			if item := cleanActionItem(line); item != "" {
				result.Actions = append(result.Actions, item)
			}
			continue
		}

		lower := strings.ToLower(line)
		if next, ok := p.sectionFor(lower); ok && next != state {
			state = next
			continue
		}

		switch state {
		case sectionAssessment:
			result.Assessment = append(result.Assessment, line)
		case sectionActions:
			result.Actions = append(result.Actions, cleanActionItem(line))
		case sectionCultural:
			result.Cultural = append(result.Cultural, line)
		case sectionEmergency:
			result.Emergency = append(result.Emergency, line)
		}
	}

	result.Assessment = capLines(result.Assessment, p.rules.MaxAssessmentLines)
	result.Actions = capLines(result.Actions, p.rules.MaxActionLines)
	result.Cultural = capLines(result.Cultural, p.rules.MaxCulturalLines)
	result.Emergency = capLines(result.Emergency, p.rules.MaxEmergencyLines)

	if len(result.Actions) == 0 {
		result.Actions = append([]string(nil), DefaultActions...)
		result.Defaulted = true
	}

	return result
}

// sectionFor returns the section a prose line switches to, if any.
// Action triggers are checked first, then cultural, then emergency,
// mirroring the order sections appear in well-formed output.
func (p *Parser) sectionFor(lower string) (section, bool) {
	if containsAny(lower, p.rules.ActionTriggers) {
		return sectionActions, true
	}
	if containsAny(lower, p.rules.CulturalTriggers) {
		return sectionCultural, true
	}
	if containsAny(lower, p.rules.EmergencyTriggers) {
		return sectionEmergency, true
	}
	return sectionAssessment, false
}

// detectTier scans the uppercased text for tier marker substrings.
// This is a lexical heuristic, not structured parsing: a phrase like
// "this is NOT urgent" still reads as HIGH. Known fragility of the
// free-text fallback; the structured path avoids it entirely.
func (p *Parser) detectTier(text string) domain.RiskTier {
	upper := strings.ToUpper(text)
	if containsAny(upper, p.rules.HighTierMarkers) {
		return domain.TierHigh
	}
	if containsAny(upper, p.rules.LowTierMarkers) {
		return domain.TierLow
	}
	return domain.TierMedium
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// isListItem reports whether a line looks like a numbered or bulleted item.
func isListItem(line string) bool {
	if line == "" {
		return false
	}
	switch line[0] {
	case '-', '*':
		return len(line) > 1 && line[1] == ' '
	}
	if strings.HasPrefix(line, "•") {
		return true
	}
	if line[0] >= '0' && line[0] <= '9' {
		rest := strings.TrimLeft(line, "0123456789")
		return strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, ")")
	}
	return false
}

// cleanActionItem strips leading numbering and bullet characters.
func cleanActionItem(line string) string {
	return strings.TrimLeft(line, "0123456789.-*•) ")
}

func capLines(lines []string, max int) []string {
	if len(lines) > max {
		return lines[:max]
	}
	return lines
}
