package http

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Logger provides structured logging for LLM API calls.
type Logger interface {
	// LogRequest logs an outgoing API request (API key redacted)
	LogRequest(ctx context.Context, req RequestLog)

	// LogResponse logs an API response with timing and token info
	LogResponse(ctx context.Context, resp ResponseLog)

	// LogError logs an API error
	LogError(ctx context.Context, err ErrorLog)

	// LogWarning logs a warning message with structured fields
	LogWarning(ctx context.Context, message string, fields map[string]interface{})
}

// RequestLog contains request information for logging.
type RequestLog struct {
	Provider    string
	Model       string
	Timestamp   time.Time
	PromptChars int
	APIKey      string // redacted to last 4 chars when redaction is on
}

// ResponseLog contains response information for logging.
type ResponseLog struct {
	Provider     string
	Model        string
	Timestamp    time.Time
	Duration     time.Duration
	TokensIn     int
	TokensOut    int
	StatusCode   int
	FinishReason string
}

// ErrorLog contains error information for logging.
type ErrorLog struct {
	Provider   string
	Model      string
	Timestamp  time.Time
	Duration   time.Duration
	Error      error
	ErrorType  ErrorType
	StatusCode int
	Retryable  bool
}

// LogLevel defines the logging verbosity level.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelError
)

// LogFormat defines the output format for logs.
type LogFormat int

const (
	LogFormatHuman LogFormat = iota
	LogFormatJSON
)

// DefaultLogger writes structured logs to the standard logger.
type DefaultLogger struct {
	level      LogLevel
	redactKeys bool
	format     LogFormat
}

// NewDefaultLogger creates a logger with the specified config.
func NewDefaultLogger(level LogLevel, format LogFormat, redactKeys bool) *DefaultLogger {
	return &DefaultLogger{
		level:      level,
		redactKeys: redactKeys,
		format:     format,
	}
}

// LogRequest logs an API request at debug level.
func (l *DefaultLogger) LogRequest(ctx context.Context, req RequestLog) {
	if l.level > LogLevelDebug {
		return
	}

	redacted := l.RedactAPIKey(req.APIKey)

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"debug","type":"request","provider":"%s","model":"%s","timestamp":"%s","prompt_chars":%d,"api_key":"%s"}`,
			req.Provider, req.Model, req.Timestamp.Format(time.RFC3339),
			req.PromptChars, redacted)
	} else {
		log.Printf("[DEBUG] %s/%s: Request sent (prompt=%d chars, key=%s)",
			req.Provider, req.Model, req.PromptChars, redacted)
	}
}

// LogResponse logs an API response at info level.
func (l *DefaultLogger) LogResponse(ctx context.Context, resp ResponseLog) {
	if l.level > LogLevelInfo {
		return
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"info","type":"response","provider":"%s","model":"%s","timestamp":"%s","duration_ms":%d,"tokens_in":%d,"tokens_out":%d,"status_code":%d,"finish_reason":"%s"}`,
			resp.Provider, resp.Model, resp.Timestamp.Format(time.RFC3339),
			resp.Duration.Milliseconds(), resp.TokensIn, resp.TokensOut,
			resp.StatusCode, resp.FinishReason)
	} else {
		log.Printf("[INFO] %s/%s: Response received (duration=%.1fs, tokens=%d/%d)",
			resp.Provider, resp.Model, resp.Duration.Seconds(),
			resp.TokensIn, resp.TokensOut)
	}
}

// LogError logs an API error.
func (l *DefaultLogger) LogError(ctx context.Context, err ErrorLog) {
	if l.level > LogLevelError {
		return
	}

	retryableStr := "non-retryable"
	if err.Retryable {
		retryableStr = "retryable"
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"error","type":"error","provider":"%s","model":"%s","timestamp":"%s","duration_ms":%d,"error":"%s","error_type":%d,"status_code":%d,"retryable":%t}`,
			err.Provider, err.Model, err.Timestamp.Format(time.RFC3339),
			err.Duration.Milliseconds(), err.Error.Error(), err.ErrorType,
			err.StatusCode, err.Retryable)
	} else {
		log.Printf("[ERROR] %s/%s: API call failed (status=%d, %s): %v",
			err.Provider, err.Model, err.StatusCode, retryableStr, err.Error)
	}
}

// LogWarning logs a warning message with structured fields.
func (l *DefaultLogger) LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
	if l.level > LogLevelInfo {
		return
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"warn","message":"%s","fields":%v}`, message, fields)
	} else {
		log.Printf("[WARN] %s %v", message, fields)
	}
}

// RedactAPIKey shows only the last 4 characters of an API key with explicit redaction markers.
func (l *DefaultLogger) RedactAPIKey(key string) string {
	if !l.redactKeys {
		return key
	}
	if len(key) <= 4 {
		return "[REDACTED]"
	}
	return fmt.Sprintf("[REDACTED-%s]", key[len(key)-4:])
}

// NopLogger discards all log events. Useful in tests.
type NopLogger struct{}

func (NopLogger) LogRequest(context.Context, RequestLog) {}

func (NopLogger) LogResponse(context.Context, ResponseLog) {}

func (NopLogger) LogError(context.Context, ErrorLog) {}

func (NopLogger) LogWarning(context.Context, string, map[string]interface{}) {}
