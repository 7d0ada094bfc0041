package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/finance-pro/internal/service"
)

var (
	// ErrRateLimit indicates that the API rate limit has been exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError marks an error as transient. RetryAfter is the delay the
// server asked for, zero when it gave none.
type RetryableError struct {
	Err        error
	RetryAfter time.Duration
	Retryable  bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

func withRetryDefaults(opts service.RetryOptions) service.RetryOptions {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 100 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}
	return opts
}

// retryDelay picks the wait before the next attempt. A server supplied
// delay wins; a rate limit without one waits the longest delay.
func retryDelay(err error, backoff time.Duration, opts service.RetryOptions) time.Duration {
	var retryable *RetryableError
	if errors.As(err, &retryable) && retryable.RetryAfter > 0 {
		return min(retryable.RetryAfter, opts.MaxDelay)
	}
	if errors.Is(err, ErrRateLimit) {
		return opts.MaxDelay
	}
	return backoff
}

// WithRetry runs operation until it succeeds, fails with an error that is
// not retryable, or runs out of attempts. operation receives the 1-based
// attempt number. A nil logger uses slog.Default.
func WithRetry(ctx context.Context, opts service.RetryOptions, logger *slog.Logger, operation func(attempt int) error) error {
	opts = withRetryDefaults(opts)
	if logger == nil {
		logger = slog.Default()
	}

	backoff := opts.InitialDelay
	for attempt := 1; ; attempt++ {
		err := operation(attempt)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt == opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, opts.MaxAttempts, err)
		}

		delay := retryDelay(err, backoff, opts)
		logger.Warn("Transient failure, retrying",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"delay", delay,
			"error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff = min(time.Duration(float64(backoff)*opts.Multiplier), opts.MaxDelay)
	}
}
