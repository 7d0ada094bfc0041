package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Capacity(t *testing.T) {
	tests := []struct {
		name   string
		perMin int
		want   int
	}{
		{name: "configured", perMin: 5, want: 5},
		{name: "default", perMin: 0, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := newRateLimiter(tt.perMin)
			defer rl.Close()

			frozen := rl.last
			rl.now = func() time.Time { return frozen }

			for i := 0; i < tt.want; i++ {
				require.True(t, rl.tryAcquire(), "request %d", i+1)
			}
			assert.False(t, rl.tryAcquire())
		})
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := newRateLimiter(60)
	defer rl.Close()

	clock := rl.last
	rl.now = func() time.Time { return clock }

	for rl.tryAcquire() {
	}

	ok, delay := rl.reserve()
	assert.False(t, ok)
	assert.Equal(t, time.Second, delay)

	clock = clock.Add(1500 * time.Millisecond)
	assert.True(t, rl.tryAcquire())
	assert.False(t, rl.tryAcquire())

	clock = clock.Add(time.Hour)
	for i := 0; i < 60; i++ {
		require.True(t, rl.tryAcquire())
	}
	assert.False(t, rl.tryAcquire())
}

func TestRateLimiter_Wait(t *testing.T) {
	t.Run("context cancellation", func(t *testing.T) {
		rl := newRateLimiter(1)
		defer rl.Close()

		require.NoError(t, rl.wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() {
			done <- rl.wait(ctx)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		err := <-done
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limiter canceled")
	})

	t.Run("close releases waiters", func(t *testing.T) {
		rl := newRateLimiter(1)
		require.NoError(t, rl.wait(context.Background()))

		done := make(chan error)
		go func() {
			done <- rl.wait(context.Background())
		}()

		time.Sleep(10 * time.Millisecond)
		rl.Close()

		assert.ErrorIs(t, <-done, errLimiterClosed)
		assert.NotPanics(t, rl.Close)
	})
}
