package vms

import (
	"context"
	"time"

	"github.com/georgemunganga/ims-backend/internal/apperr"
	"go.uber.org/zap"
)

// RetryPolicy is a fixed-count, fixed-delay policy: no backoff growth and no jitter.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the production Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Retry calls fn until it succeeds or the policy's attempts are used up, sleeping between attempts.
// Every failure is retried the same way regardless of its cause.
func Retry(ctx context.Context, policy RetryPolicy, sleep Sleeper, log *zap.Logger, fn func(ctx context.Context) error) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
		log.Error("VMS call failed", zap.Int("attempt", attempt), zap.Int("of", attempts), zap.Error(lastErr))
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, policy.Delay); err != nil {
			return apperr.Upstream(err, "failed to update VMS: retry aborted")
		}
	}
	return apperr.Upstream(lastErr, "Failed to update VMS after multiple attempts.")
}
