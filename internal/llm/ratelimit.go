package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var errLimiterClosed = errors.New("rate limiter closed")

// rateLimiter is a token bucket holding one minute worth of requests.
// Tokens are refilled lazily from the time elapsed since the last call.
type rateLimiter struct {
	now       func() time.Time
	closed    chan struct{}
	last      time.Time
	interval  time.Duration
	tokens    float64
	capacity  float64
	mu        sync.Mutex
	closeOnce sync.Once
}

func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 10
	}
	return &rateLimiter{
		now:      time.Now,
		closed:   make(chan struct{}),
		last:     time.Now(),
		interval: time.Minute / time.Duration(requestsPerMinute),
		tokens:   float64(requestsPerMinute),
		capacity: float64(requestsPerMinute),
	}
}

// reserve takes a token if one is available. Otherwise it reports how long
// until the next one is due.
func (rl *rateLimiter) reserve() (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if elapsed := now.Sub(rl.last); elapsed > 0 {
		rl.tokens = min(rl.capacity, rl.tokens+float64(elapsed)/float64(rl.interval))
	}
	rl.last = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true, 0
	}
	return false, time.Duration((1 - rl.tokens) * float64(rl.interval))
}

func (rl *rateLimiter) tryAcquire() bool {
	ok, _ := rl.reserve()
	return ok
}

// wait blocks until a token is taken, ctx is done or the limiter is closed.
func (rl *rateLimiter) wait(ctx context.Context) error {
	for {
		ok, delay := rl.reserve()
		if ok {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("rate limiter canceled: %w", ctx.Err())
		case <-rl.closed:
			timer.Stop()
			return errLimiterClosed
		case <-timer.C:
		}
	}
}

// Close releases every pending wait.
func (rl *rateLimiter) Close() {
	rl.closeOnce.Do(func() { close(rl.closed) })
}
