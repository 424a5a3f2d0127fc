package sources

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/metrics"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// ErrDailyLimitReached is returned when a source's daily call budget has
// been exhausted.
var ErrDailyLimitReached = errors.New("daily source limit reached")

// RateLimiter controls the call rate and daily usage of one source.
// It uses a token bucket for per-second limiting and a rolling 24-hour
// window for the daily quota. A maxDaily of zero or less disables the
// daily quota.
type RateLimiter struct {
	limiter     *rate.Limiter
	daily       atomic.Int64
	maxDaily    int64
	windowStart time.Time
	resetAt     time.Time
	mu          sync.Mutex
	nowFunc     func() time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a rate limiter with the given per-second rate,
// burst size and daily limit. The daily window resets 24 hours after it
// opened.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	r := &RateLimiter{
		limiter:  rate.NewLimiter(limit, max(burst, 1)),
		maxDaily: maxDaily,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	now := r.nowFunc()
	r.windowStart = now
	r.resetAt = now.Add(24 * time.Hour)
	return r
}

// Wait blocks until the limiter allows a call or ctx is done.
// Returns ErrDailyLimitReached when the daily budget is spent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.checkDailyReset()

	if r.maxDaily > 0 && r.daily.Load() >= r.maxDaily {
		return fmt.Errorf("%w (%d/%d)", ErrDailyLimitReached, r.daily.Load(), r.maxDaily)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	r.daily.Add(1)
	return nil
}

// DailyCount returns the current daily call count.
func (r *RateLimiter) DailyCount() int64 {
	return r.daily.Load()
}

// MaxDaily returns the configured daily call limit.
func (r *RateLimiter) MaxDaily() int64 {
	return r.maxDaily
}

// Remaining returns the calls left in the current window, or -1 when the
// daily quota is disabled.
func (r *RateLimiter) Remaining() int64 {
	if r.maxDaily <= 0 {
		return -1
	}
	return max(r.maxDaily-r.daily.Load(), 0)
}

// ResetAt returns when the current 24-hour window expires.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}

func (r *RateLimiter) checkDailyReset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.daily.Store(0)
		r.windowStart = now
		r.resetAt = now.Add(24 * time.Hour)
	}
}

type limitedSource struct {
	Source
	limiter *RateLimiter
}

// Limited wraps src so every query first waits on limiter. A spent daily
// budget fails the query permanently so it is not retried.
func Limited(src Source, limiter *RateLimiter) Source {
	if limiter == nil {
		return src
	}
	return &limitedSource{Source: src, limiter: limiter}
}

func (l *limitedSource) Query(
	ctx context.Context,
	query, identifier string,
) ([]domain.SourceObservation, error) {
	id := l.ID()
	if err := l.limiter.Wait(ctx); err != nil {
		if errors.Is(err, ErrDailyLimitReached) {
			metrics.SourceDailyLimitHits.WithLabelValues(id).Inc()
			return nil, Permanent(fmt.Errorf("%s: %w", id, err))
		}
		return nil, err
	}
	metrics.SourceDailyUsage.WithLabelValues(id).Set(float64(l.limiter.DailyCount()))

	return l.Source.Query(ctx, query, identifier)
}
