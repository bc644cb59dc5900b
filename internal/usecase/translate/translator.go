// Package translate implements culture-aware phrase translation through
// the LLM collaborator, with a per-session cache to avoid repeating
// identical requests.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/safewonder/safewonder/internal/adapter/llm"
	llmhttp "github.com/safewonder/safewonder/internal/adapter/llm/http"
	"github.com/safewonder/safewonder/internal/domain"
	"github.com/safewonder/safewonder/internal/session"
)

// SystemPrompt is the system message sent with every translation request.
const SystemPrompt = "You are a culturally aware translator helping travelers communicate safely and politely."

const promptTemplate = `Translate the following phrase for a traveler.

PHRASE: {{.Phrase}}
FROM: {{.Source}}
TO: {{.Target}}

Consider politeness levels, gender conventions, and situations where a
literal translation would be rude or unsafe in {{.Target}}.

OUTPUT FORMAT (respond ONLY with valid JSON):
{
  "translated_text": "<the translation>",
  "pronunciation": "<simple phonetic guide for an English speaker>",
  "tone_guidance": "<how to deliver it: tone, volume, body language>",
  "cultural_notes": "<cultural context, or 'None'>"
}`

// LLMClient is the outbound port to the language model collaborator.
type LLMClient interface {
	Complete(ctx context.Context, req llm.ChatRequest) (llm.ChatResponse, error)
}

// Options configure a Translator.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// DefaultOptions returns the standard translator configuration.
func DefaultOptions() Options {
	return Options{Temperature: 0.2, MaxTokens: 512}
}

// Translator performs LLM-backed translations and caches results in the
// session keyed by phrase and language pair.
type Translator struct {
	client  LLMClient
	speaker Speaker
	tmpl    *template.Template
	opts    Options
}

// New constructs a Translator. A nil speaker disables audio synthesis.
func New(client LLMClient, speaker Speaker, opts Options) *Translator {
	if speaker == nil {
		speaker = NopSpeaker{}
	}
	return &Translator{
		client:  client,
		speaker: speaker,
		tmpl:    template.Must(template.New("translate").Parse(promptTemplate)),
		opts:    opts,
	}
}

type translationPayload struct {
	TranslatedText string `json:"translated_text"`
	Pronunciation  string `json:"pronunciation"`
	ToneGuidance   string `json:"tone_guidance"`
	CulturalNotes  string `json:"cultural_notes"`
}

// Translate renders a phrase from the source language into the target
// language. Identical requests within a session are served from the
// cache without an API call. A response that fails to parse as the JSON
// contract is surfaced verbatim in TranslatedText and is not cached, so
// a retry can still succeed.
func (t *Translator) Translate(ctx context.Context, sess *session.Session, phrase, source, target string) (domain.TranslationResult, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return domain.TranslationResult{}, fmt.Errorf("phrase is required")
	}

	sourceTag, err := ResolveLanguage(source)
	if err != nil {
		return domain.TranslationResult{}, err
	}
	targetTag, err := ResolveLanguage(target)
	if err != nil {
		return domain.TranslationResult{}, err
	}

	sourceName := LanguageName(sourceTag)
	targetName := LanguageName(targetTag)

	key := cacheKey(phrase, sourceName, targetName)
	if cached, ok := sess.CachedTranslation(key); ok {
		return cached, nil
	}

	prompt, err := t.renderPrompt(phrase, sourceName, targetName)
	if err != nil {
		return domain.TranslationResult{}, err
	}

	resp, err := t.client.Complete(ctx, llm.ChatRequest{
		SystemPrompt: SystemPrompt,
		UserPrompt:   prompt,
		Temperature:  t.opts.Temperature,
		MaxTokens:    t.opts.MaxTokens,
	})
	if err != nil {
		return domain.TranslationResult{}, fmt.Errorf("translation request: %w", err)
	}

	result := domain.TranslationResult{
		OriginalText:   phrase,
		SourceLanguage: sourceName,
		TargetLanguage: targetName,
	}

	var payload translationPayload
	if jsonErr := json.Unmarshal([]byte(llmhttp.ExtractJSONFromMarkdown(resp.Text)), &payload); jsonErr != nil {
		result.TranslatedText = strings.TrimSpace(resp.Text)
		return result, nil
	}

	result.TranslatedText = payload.TranslatedText
	result.Pronunciation = payload.Pronunciation
	result.ToneGuidance = payload.ToneGuidance
	result.CulturalNotes = payload.CulturalNotes

	if audio, audioErr := t.speaker.Speak(ctx, result.TranslatedText, targetTag.String()); audioErr == nil {
		result.Audio = audio
	}

	sess.CacheTranslation(key, result)
	return result, nil
}

func (t *Translator) renderPrompt(phrase, source, target string) (string, error) {
	var buf bytes.Buffer
	err := t.tmpl.Execute(&buf, struct {
		Phrase, Source, Target string
	}{phrase, source, target})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

func cacheKey(phrase, source, target string) string {
	return strings.ToLower(phrase) + "|" + source + "|" + target
}
