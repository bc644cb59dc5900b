// Package groq implements the LLM collaborator port against Groq's hosted
// chat-completions API.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/safewonder/safewonder/internal/adapter/llm"
	llmhttp "github.com/safewonder/safewonder/internal/adapter/llm/http"
)

const (
	providerName   = "groq"
	defaultBaseURL = "https://api.groq.com/openai"
	defaultModel   = "llama-3.1-70b-versatile"
	defaultTimeout = 60 * time.Second
)

// Client is an HTTP client for the Groq API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	retry   llmhttp.RetryConfig
	logger  llmhttp.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithTimeout overrides the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.client.Timeout = timeout }
}

// WithRetryConfig overrides the retry policy.
func WithRetryConfig(cfg llmhttp.RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithLogger attaches a structured logger.
func WithLogger(logger llmhttp.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient constructs a Groq client. The API key is required; model
// defaults to llama-3.1-70b-versatile when empty.
func NewClient(apiKey, model string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("groq: API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	c := &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		retry:   llmhttp.DefaultRetryConfig(),
		logger:  llmhttp.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Complete submits a chat completion request and returns the model's text.
// Transient failures (rate limit, timeout, 5xx) are retried with
// exponential backoff; authentication failures surface immediately.
func (c *Client) Complete(ctx context.Context, req llm.ChatRequest) (llm.ChatResponse, error) {
	reqBody := ChatCompletionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return llm.ChatResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	c.logger.LogRequest(ctx, llmhttp.RequestLog{
		Provider:    providerName,
		Model:       c.model,
		Timestamp:   time.Now(),
		PromptChars: len(req.UserPrompt),
		APIKey:      c.apiKey,
	})

	started := time.Now()
	var response llm.ChatResponse
	operation := func(ctx context.Context) error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(jsonData))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(httpReq)
		if err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				return llmhttp.NewTimeoutError(providerName, "request timed out")
			}
			return llmhttp.NewTimeoutError(providerName, err.Error())
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return c.handleErrorResponse(resp.StatusCode, body)
		}

		var chatResp ChatCompletionResponse
		if err := json.Unmarshal(body, &chatResp); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
		if len(chatResp.Choices) == 0 {
			return fmt.Errorf("no choices in response")
		}

		response = llm.ChatResponse{
			Text:         chatResp.Choices[0].Message.Content,
			Model:        chatResp.Model,
			TokensIn:     chatResp.Usage.PromptTokens,
			TokensOut:    chatResp.Usage.CompletionTokens,
			FinishReason: chatResp.Choices[0].FinishReason,
		}
		return nil
	}

	if err := llmhttp.RetryWithBackoff(ctx, operation, c.retry); err != nil {
		errLog := llmhttp.ErrorLog{
			Provider:  providerName,
			Model:     c.model,
			Timestamp: time.Now(),
			Duration:  time.Since(started),
			Error:     err,
		}
		var httpErr *llmhttp.Error
		if errors.As(err, &httpErr) {
			errLog.ErrorType = httpErr.Type
			errLog.StatusCode = httpErr.StatusCode
			errLog.Retryable = httpErr.Retryable
		}
		c.logger.LogError(ctx, errLog)
		return llm.ChatResponse{}, err
	}

	c.logger.LogResponse(ctx, llmhttp.ResponseLog{
		Provider:     providerName,
		Model:        response.Model,
		Timestamp:    time.Now(),
		Duration:     time.Since(started),
		TokensIn:     response.TokensIn,
		TokensOut:    response.TokensOut,
		StatusCode:   http.StatusOK,
		FinishReason: response.FinishReason,
	})
	return response, nil
}

// handleErrorResponse converts HTTP error responses to typed errors.
func (c *Client) handleErrorResponse(statusCode int, body []byte) error {
	message := fmt.Sprintf("HTTP %d", statusCode)

	// Prefer the API's own error message when the body parses.
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	} else if len(body) > 0 && len(body) < 200 {
		message = string(body)
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return llmhttp.NewAuthenticationError(providerName, message)
	case http.StatusTooManyRequests:
		return llmhttp.NewRateLimitError(providerName, message)
	case http.StatusBadRequest:
		return llmhttp.NewInvalidRequestError(providerName, message)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return llmhttp.NewServiceUnavailableError(providerName, message)
	default:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeUnknown,
			Message:    message,
			StatusCode: statusCode,
			Provider:   providerName,
		}
	}
}
