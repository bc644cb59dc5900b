package http_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	llmhttp "github.com/safewonder/safewonder/internal/adapter/llm/http"
)

func TestExtractJSONFromMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "json fence",
			input: "```json\n{\"risk_score\": 70}\n```",
			want:  `{"risk_score": 70}`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"risk_score\": 70}\n```",
			want:  `{"risk_score": 70}`,
		},
		{
			name:  "no fence returns trimmed original",
			input: "  {\"risk_score\": 70}  ",
			want:  `{"risk_score": 70}`,
		},
		{
			name:  "fence with surrounding prose",
			input: "Here is my assessment:\n```json\n{\"risk_score\": 45}\n```\nStay safe!",
			want:  `{"risk_score": 45}`,
		},
		{
			name:  "plain text unchanged",
			input: "THREAT LEVEL: HIGH",
			want:  "THREAT LEVEL: HIGH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, llmhttp.ExtractJSONFromMarkdown(tt.input))
		})
	}
}

func TestErrorIsMatchesOnType(t *testing.T) {
	err := llmhttp.NewRateLimitError("groq", "slow down")
	target := llmhttp.NewRateLimitError("groq", "different message")
	assert.ErrorIs(t, err, target)

	other := llmhttp.NewTimeoutError("groq", "slow down")
	assert.NotErrorIs(t, err, other)
}

func TestRedactAPIKey(t *testing.T) {
	logger := llmhttp.NewDefaultLogger(llmhttp.LogLevelInfo, llmhttp.LogFormatHuman, true)

	assert.Equal(t, "[REDACTED-wxyz]", logger.RedactAPIKey("gsk_abcdwxyz"))
	assert.Equal(t, "[REDACTED]", logger.RedactAPIKey("abc"))

	plain := llmhttp.NewDefaultLogger(llmhttp.LogLevelInfo, llmhttp.LogFormatHuman, false)
	assert.Equal(t, "gsk_abcdwxyz", plain.RedactAPIKey("gsk_abcdwxyz"))
}
