package common

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/finance-pro/internal/service"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func fastRetry(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestWithRetry(t *testing.T) {
	transient := &RetryableError{Err: errors.New("502 bad gateway"), Retryable: true}
	permanent := errors.New("401 unauthorized")

	tests := []struct {
		name         string
		failures     []error
		wantAttempts int
		wantErr      error
	}{
		{name: "first try", wantAttempts: 1},
		{name: "recovers", failures: []error{transient, transient}, wantAttempts: 3},
		{name: "permanent error stops", failures: []error{permanent}, wantAttempts: 1, wantErr: permanent},
		{name: "gives up", failures: []error{transient, transient, transient}, wantAttempts: 3, wantErr: ErrMaxRetries},
		{name: "deadline is retried", failures: []error{context.DeadlineExceeded}, wantAttempts: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []int
			err := WithRetry(context.Background(), fastRetry(3), quietLogger, func(attempt int) error {
				seen = append(seen, attempt)
				if attempt <= len(tt.failures) {
					return tt.failures[attempt-1]
				}
				return nil
			})

			assert.Len(t, seen, tt.wantAttempts)
			for i, attempt := range seen {
				assert.Equal(t, i+1, attempt)
			}
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestWithRetry_CanceledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opts := service.RetryOptions{MaxAttempts: 5, InitialDelay: time.Hour, MaxDelay: time.Hour}

	calls := 0
	err := WithRetry(ctx, opts, quietLogger, func(int) error {
		calls++
		cancel()
		return &RetryableError{Err: errors.New("timeout"), Retryable: true}
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryDelay(t *testing.T) {
	opts := withRetryDefaults(service.RetryOptions{MaxDelay: 10 * time.Second})
	backoff := 200 * time.Millisecond

	tests := []struct {
		name string
		err  error
		want time.Duration
	}{
		{name: "plain backoff", err: &RetryableError{Err: errors.New("503"), Retryable: true}, want: backoff},
		{name: "rate limit waits longest", err: &RetryableError{Err: ErrRateLimit, Retryable: true}, want: 10 * time.Second},
		{name: "server delay", err: &RetryableError{Err: ErrRateLimit, RetryAfter: 2 * time.Second, Retryable: true}, want: 2 * time.Second},
		{name: "server delay capped", err: &RetryableError{Err: ErrRateLimit, RetryAfter: time.Minute, Retryable: true}, want: 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryDelay(tt.err, backoff, opts))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x")}))
	assert.False(t, IsRetryable(errors.New("x")))
}
