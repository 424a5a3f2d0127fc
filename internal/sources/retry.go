package sources

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy controls how often a failing source is re-queried. Delays
// grow exponentially from BaseDelay up to MaxDelay, each randomized by
// ±Jitter (a fraction between 0 and 1).
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      float64
}

// DefaultRetryPolicy returns the policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 2,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Jitter:      0.2,
	}
}

// NoRetry performs a single attempt.
func NoRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 1}
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *backoff.PermanentError
	return errors.As(err, &p)
}

// Do calls fn until it succeeds, returns a permanent error, the attempts
// are exhausted or ctx is done. It returns the last error from fn, or the
// context error when ctx ended the retries.
func (p RetryPolicy) Do(ctx context.Context, fn func(context.Context) error) error {
	return backoff.Retry(func() error {
		return fn(ctx)
	}, p.backOff(ctx))
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	attempts := max(p.MaxAttempts, 1)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	if b.InitialInterval <= 0 {
		b.InitialInterval = time.Millisecond
	}
	b.MaxInterval = max(p.MaxDelay, b.InitialInterval)
	b.RandomizationFactor = min(max(p.Jitter, 0), 1)
	b.Multiplier = 2
	b.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
}
