package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/model"
	"github.com/Veraticus/finance-pro/internal/service"
)

// NoAdviceText is returned when the model answers with nothing.
const NoAdviceText = "Сегодня без советов, всё идет по плану! 🇧🇾"

// Advisor implements service.Advisor on top of a Client.
type Advisor struct {
	client       Client
	limiter      *rateLimiter
	logger       *slog.Logger
	retryOpts    service.RetryOptions
	historyLimit int
}

// NewAdvisor builds the provider client from cfg. A missing API key is
// not an error here: Summarize reports it as a missing credential so the
// caller can show a setup hint.
func NewAdvisor(cfg Config, logger *slog.Logger) (*Advisor, error) {
	client, err := NewClient(cfg)
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		client = nil
	case err != nil:
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return NewAdvisorWithClient(client, cfg, logger), nil
}

// NewAdvisorWithClient wraps an existing client. A nil client makes every
// call fail with a missing credential error.
func NewAdvisorWithClient(client Client, cfg Config, logger *slog.Logger) *Advisor {
	if logger == nil {
		logger = slog.Default()
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Advisor{
		client:       client,
		limiter:      newRateLimiter(cfg.RateLimit),
		logger:       logger,
		retryOpts:    retryOpts,
		historyLimit: cfg.HistoryLimit,
	}
}

// Summarize asks the model for one piece of advice about the newest
// transactions. Failures are *common.ServiceError.
func (a *Advisor) Summarize(ctx context.Context, transactions []model.Transaction) (string, error) {
	if a.client == nil {
		return "", common.NewServiceError(common.ServiceMissingCredential, ErrMissingAPIKey)
	}

	prompt, err := BuildPrompt(transactions, a.historyLimit)
	if err != nil {
		return "", common.NewServiceError(common.ServiceMalformedResponse, err)
	}

	var text string
	err = common.WithRetry(ctx, a.retryOpts, a.logger, func(attempt int) error {
		if waitErr := a.limiter.wait(ctx); waitErr != nil {
			return waitErr
		}
		if attempt > 1 {
			a.logger.Debug("Retrying advice request", "attempt", attempt)
		}
		var callErr error
		text, callErr = a.client.Complete(ctx, prompt)
		return callErr
	})
	if err != nil {
		kind := common.ServiceTransport
		if errors.Is(err, ErrMalformedResponse) {
			kind = common.ServiceMalformedResponse
		}
		a.logger.Warn("Advice request failed", "kind", kind, "error", err)
		return "", common.NewServiceError(kind, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		a.logger.Debug("Model returned no advice")
		return NoAdviceText, nil
	}

	return text, nil
}

// Close stops the rate limiter.
func (a *Advisor) Close() {
	a.limiter.Close()
}
