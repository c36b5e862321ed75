// Package retry provides a small attempt/backoff helper shared by the email
// dispatcher and the mobile client HTTP layer. It is a pure function of its
// inputs so callers can inject zero backoff in tests.
package retry

import (
	"context"
	"fmt"
	"math"
	"time"
)

// BackoffPolicy returns the delay to wait after the given failed attempt.
// Attempts are numbered starting at 1.
type BackoffPolicy func(attempt int) time.Duration

// Linear waits attempt*step after each failed attempt (step, 2*step, ...)
func Linear(step time.Duration) BackoffPolicy {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * step
	}
}

// Exponential waits base*multiplier^(attempt-1), capped at max
func Exponential(base time.Duration, multiplier float64, max time.Duration) BackoffPolicy {
	return func(attempt int) time.Duration {
		delay := float64(base) * math.Pow(multiplier, float64(attempt-1))
		if delay > float64(max) {
			delay = float64(max)
		}
		return time.Duration(delay)
	}
}

// None applies no delay between attempts
func None() BackoffPolicy {
	return func(int) time.Duration { return 0 }
}

// Attempt executes fn up to maxAttempts times, waiting policy(attempt) between
// failures. It returns nil on the first success, the context error if the
// context is cancelled while waiting, and the last error wrapped once the
// attempt budget is exhausted.
func Attempt(ctx context.Context, maxAttempts int, policy BackoffPolicy, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := fn(ctx); err == nil {
			return nil
		} else {
			lastErr = err
		}

		// Don't wait after the last attempt
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(policy(attempt)):
		}
	}

	return fmt.Errorf("retry limit exceeded after %d attempts: %w", maxAttempts, lastErr)
}
