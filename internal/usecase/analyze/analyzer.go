// Package analyze implements the situation analysis pipeline: keyword
// matching against the knowledge base, prompt composition, the LLM
// round trip, response parsing, and risk scoring.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/safewonder/safewonder/internal/adapter/llm"
	"github.com/safewonder/safewonder/internal/domain"
	"github.com/safewonder/safewonder/internal/session"
)

// MinDescriptionChars is the minimum situation description length
// accepted before any LLM call is made.
const MinDescriptionChars = 10

// ErrDescriptionTooShort is returned when the trimmed description is
// below MinDescriptionChars. No tokens are spent on such input.
var ErrDescriptionTooShort = errors.New("situation description too short")

// LLMClient is the outbound port to the language model collaborator.
type LLMClient interface {
	Complete(ctx context.Context, req llm.ChatRequest) (llm.ChatResponse, error)
}

// Options configure an Analyzer.
type Options struct {
	MaxContextPatterns  int
	MinDescriptionChars int
	MatcherRules        MatcherRules
	ParserRules         ParserRules
	Temperature         float64
	MaxTokens           int
}

// DefaultOptions returns the standard analyzer configuration.
func DefaultOptions() Options {
	return Options{
		MaxContextPatterns:  DefaultMaxContextPatterns,
		MinDescriptionChars: MinDescriptionChars,
		MatcherRules:        DefaultMatcherRules(),
		ParserRules:         DefaultParserRules(),
		Temperature:         0.3,
		MaxTokens:           1024,
	}
}

// Analyzer runs the end-to-end analysis pipeline for one situation
// description. It is synchronous and stateless between calls; per-user
// state lives in the Session passed to Analyze.
type Analyzer struct {
	client   LLMClient
	matcher  *Matcher
	composer *Composer
	parser   *Parser
	opts     Options
}

// New constructs an Analyzer around the given LLM client.
func New(client LLMClient, opts Options) *Analyzer {
	if opts.MinDescriptionChars <= 0 {
		opts.MinDescriptionChars = MinDescriptionChars
	}
	return &Analyzer{
		client:   client,
		matcher:  NewMatcher(opts.MatcherRules),
		composer: NewComposer(opts.MaxContextPatterns),
		parser:   NewParser(opts.ParserRules),
		opts:     opts,
	}
}

// Analyze classifies a situation description against the session's
// destination country. The result is recorded in the session history
// before being returned. Local keyword matching and risk floors are
// deterministic; only the explanation text depends on the collaborator.
func (a *Analyzer) Analyze(ctx context.Context, sess *session.Session, description string) (domain.SituationAnalysis, error) {
	description = strings.TrimSpace(description)
	if len([]rune(description)) < a.opts.MinDescriptionChars {
		return domain.SituationAnalysis{}, fmt.Errorf("%w: need at least %d characters", ErrDescriptionTooShort, a.opts.MinDescriptionChars)
	}

	country := sess.Country
	matches := a.matcher.Match(description, country)

	prompt, err := a.composer.Compose(description, sess.Profile, country, matches)
	if err != nil {
		return domain.SituationAnalysis{}, err
	}

	resp, err := a.client.Complete(ctx, llm.ChatRequest{
		SystemPrompt: SystemPrompt,
		UserPrompt:   prompt,
		Temperature:  a.opts.Temperature,
		MaxTokens:    a.opts.MaxTokens,
	})
	if err != nil {
		return domain.SituationAnalysis{}, fmt.Errorf("analysis request: %w", err)
	}

	parsed := a.parser.Parse(resp.Text)
	analysis := a.assemble(parsed, matches, country, resp.Text)

	sess.RecordAnalysis(analysis)
	return analysis, nil
}

// assemble builds the SituationAnalysis from a parsed response, the
// local matches, and the country reference data. Emergency numbers and
// local phrases always come from the knowledge base, never from the
// collaborator.
func (a *Analyzer) assemble(parsed ParsedResponse, matches []domain.MatchedPattern, country domain.Country, raw string) domain.SituationAnalysis {
	score := Score(parsed, matches)

	analysis := domain.SituationAnalysis{
		RiskScore:        score,
		Tier:             domain.TierForScore(score),
		EmergencyNumbers: country.EmergencyNumbers,
		LocalPhrases:     country.LocalPhrases,
		Raw:              raw,
	}

	switch r := parsed.(type) {
	case *Structured:
		analysis.PatternMatched = orDefault(r.PatternMatched, fallbackPatternName(matches))
		analysis.RiskExplanation = orDefault(r.RiskExplanation, "No explanation provided")
		analysis.WhatToDo = orDefaultList(r.WhatToDo, DefaultActions)
		analysis.WhatNotToDo = orDefaultList(r.WhatNotToDo, DefaultAvoid)
		analysis.CulturalNotes = orDefault(r.CulturalNotes, "No specific cultural concerns")
	case *FreeText:
		analysis.Degraded = true
		analysis.PatternMatched = fallbackPatternName(matches)
		analysis.RiskExplanation = orDefault(strings.Join(r.Assessment, " "), "Unable to determine specific risk details")
		analysis.WhatToDo = orDefaultList(r.Actions, DefaultActions)
		analysis.WhatNotToDo = append([]string(nil), DefaultAvoid...)
		analysis.CulturalNotes = orDefault(strings.Join(r.Cultural, " "), "No specific cultural concerns")
		if len(r.Emergency) > 0 {
			analysis.RiskExplanation += " Emergency guidance: " + strings.Join(r.Emergency, " ")
		}
	}

	return analysis
}

// fallbackPatternName labels the analysis when the collaborator supplied
// no pattern name: the first local match wins, else the generic label.
func fallbackPatternName(matches []domain.MatchedPattern) string {
	if len(matches) > 0 {
		return matches[0].Name
	}
	return "General Safety Concern"
}

func orDefaultList(values, fallback []string) []string {
	if len(values) == 0 {
		return append([]string(nil), fallback...)
	}
	return values
}
