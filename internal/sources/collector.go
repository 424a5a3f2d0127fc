package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/metrics"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/extract"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

const (
	// DefaultTimeout bounds each source query, retries included.
	DefaultTimeout = 15 * time.Second

	maxConcurrency = 6
)

// Query status labels.
const (
	statusOK      = "ok"
	statusError   = "error"
	statusTimeout = "timeout"
)

// Collector fans one query out to every registered source and gathers the
// plausible observations they return.
type Collector struct {
	sources     []Source
	timeout     time.Duration
	concurrency int
	retry       RetryPolicy
	log         *slog.Logger
}

// CollectorOption configures the Collector.
type CollectorOption func(*Collector)

// WithTimeout sets the per-source timeout.
func WithTimeout(d time.Duration) CollectorOption {
	return func(c *Collector) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithConcurrency caps how many sources are queried at once.
func WithConcurrency(n int) CollectorOption {
	return func(c *Collector) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithRetryPolicy sets the retry policy applied to each source.
func WithRetryPolicy(p RetryPolicy) CollectorOption {
	return func(c *Collector) {
		c.retry = p
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) CollectorOption {
	return func(c *Collector) {
		c.log = l
	}
}

// NewCollector creates a collector over srcs. Observations are returned in
// the order the sources are given here.
func NewCollector(srcs []Source, opts ...CollectorOption) *Collector {
	c := &Collector{
		sources:     srcs,
		timeout:     DefaultTimeout,
		concurrency: min(max(len(srcs), 1), maxConcurrency),
		retry:       NoRetry(),
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sources returns the IDs of the registered sources in registration order.
func (c *Collector) Sources() []string {
	ids := make([]string, len(c.sources))
	for i, s := range c.sources {
		ids[i] = s.ID()
	}
	return ids
}

// Collect queries every source and returns their observations once all
// queries have settled. A failing source contributes nothing. Observations
// that fail validation are dropped. When ctx is cancelled Collect returns
// nil; callers check ctx.Err().
func (c *Collector) Collect(
	ctx context.Context,
	query, identifier string,
) []domain.SourceObservation {
	results := make([][]domain.SourceObservation, len(c.sources))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, src := range c.sources {
		g.Go(func() error {
			results[i] = c.query(ctx, src, query, identifier)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never return errors

	if ctx.Err() != nil {
		return nil
	}

	var out []domain.SourceObservation
	for i, obs := range results {
		id := c.sources[i].ID()
		for _, o := range obs {
			if o.SourceID == "" {
				o.SourceID = id
			}
			if err := extract.ValidateObservation(o); err != nil {
				metrics.SourceObservationsDiscardedTotal.WithLabelValues(id).Inc()
				c.log.Debug("discarding observation",
					"source", id,
					"title", o.Title,
					"error", err,
				)
				continue
			}
			out = append(out, o)
		}
	}
	return out
}

func (c *Collector) query(
	ctx context.Context,
	src Source,
	query, identifier string,
) (obs []domain.SourceObservation) {
	id := src.ID()
	start := time.Now()

	qctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.retry.Do(qctx, func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = Permanent(fmt.Errorf("source panicked: %v", r))
			}
		}()
		res, err := src.Query(ctx, query, identifier)
		if err != nil {
			return err
		}
		obs = res
		return nil
	})

	metrics.SourceQueryDuration.WithLabelValues(id).Observe(time.Since(start).Seconds())

	if err != nil {
		status := statusError
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			status = statusTimeout
		}
		metrics.SourceQueriesTotal.WithLabelValues(id, status).Inc()
		if ctx.Err() == nil {
			c.log.Warn("price source query failed",
				"source", id,
				"status", status,
				"error", err,
			)
		}
		return nil
	}

	metrics.SourceQueriesTotal.WithLabelValues(id, statusOK).Inc()
	metrics.SourceObservationsTotal.WithLabelValues(id).Add(float64(len(obs)))
	return obs
}
