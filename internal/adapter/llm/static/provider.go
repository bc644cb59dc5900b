// Package static provides a canned LLM collaborator for offline use and
// tests. It returns a deterministic structured response without any
// network IO.
package static

import (
	"context"

	"github.com/safewonder/safewonder/internal/adapter/llm"
)

const providerName = "static"

// Provider implements the usecase LLM port with fixed responses.
type Provider struct {
	model string
	text  string
}

const defaultResponse = "```json\n" +
	`{
  "risk_score": 45,
  "pattern_matched": "General Safety Concern",
  "risk_explanation": "Offline mode: no live assessment was performed. Treat unfamiliar situations with normal caution.",
  "what_to_do": ["Stay calm", "Move to a public, well-lit area", "Keep your valuables out of sight"],
  "what_not_to_do": ["Don't panic", "Don't engage with suspicious individuals"],
  "cultural_notes": "No specific cultural concerns identified"
}` + "\n```"

// NewProvider constructs a static Provider.
func NewProvider(model string) *Provider {
	return &Provider{model: model, text: defaultResponse}
}

// SetResponse overrides the canned response text (used by tests).
func (p *Provider) SetResponse(text string) {
	p.text = text
}

// Complete returns the canned response.
func (p *Provider) Complete(ctx context.Context, req llm.ChatRequest) (llm.ChatResponse, error) {
	return llm.ChatResponse{
		Text:         p.text,
		Model:        p.model,
		FinishReason: "stop",
	}, nil
}
