package llm

import (
	"context"
	"errors"
	"time"
)

// Provider names accepted by NewClient.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderClaudeCode = "claudecode"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 30 * time.Second

// Errors returned by clients.
var (
	ErrMissingAPIKey       = errors.New("API key is required")
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")
	ErrEmptyResponse       = errors.New("empty response")
	ErrMalformedResponse   = errors.New("malformed response")
)

// Client sends a single prompt and returns the generated text.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds provider and request settings.
type Config struct {
	Provider       string
	APIKey         string
	Model          string
	BaseURL        string // Overrides the provider endpoint, mainly for tests
	ClaudeCodePath string
	MaxRetries     int
	RetryDelay     time.Duration
	Timeout        time.Duration
	RateLimit      int
	HistoryLimit   int
	Temperature    float64
	MaxTokens      int
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

func (c Config) temperatureOr(def float64) float64 {
	if c.Temperature == 0 {
		return def
	}
	return c.Temperature
}

func (c Config) maxTokensOr(def int) int {
	if c.MaxTokens == 0 {
		return def
	}
	return c.MaxTokens
}
