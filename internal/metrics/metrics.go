// Package metrics defines Prometheus metrics for the price matcher.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pm"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPPanicsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_panics_total",
		Help:      "Total number of handler panics recovered.",
	})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded.",
	})
)

// Pipeline metrics.
var (
	ItemsPricedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_priced_total",
		Help:      "Total number of pipeline runs by outcome (priced, no_match, no_price, error).",
	}, []string{"outcome"})

	PricingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pricing_duration_seconds",
		Help:      "Duration of a single item pipeline run in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	MatchScoreDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_score_distribution",
		Help:      "Distribution of best match scores.",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11), // 0, 0.1, ..., 1.0
	})

	OutliersRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outliers_rejected_total",
		Help:      "Total number of price observations rejected as outliers.",
	})

	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_duration_seconds",
		Help:      "Duration of batch pricing runs in seconds.",
		Buckets:   []float64{1, 5, 15, 60, 300, 900, 1800, 3600},
	})
)

// Price source metrics.
var (
	SourceQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_queries_total",
		Help:      "Total price source queries by source and status (ok, error, timeout).",
	}, []string{"source", "status"})

	SourceQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "source_query_duration_seconds",
		Help:      "Duration of price source queries in seconds, including retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	SourceObservationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_observations_total",
		Help:      "Total observations returned by each source.",
	}, []string{"source"})

	SourceObservationsDiscardedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_observations_discarded_total",
		Help:      "Total observations discarded as implausible before scoring.",
	}, []string{"source"})

	SourceDailyUsage = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "source_daily_usage",
		Help:      "Current daily call count per rate-limited source.",
	}, []string{"source"})

	SourceDailyLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_daily_limit_hits_total",
		Help:      "Total number of times a source's daily limit was reached.",
	}, []string{"source"})
)

// Output metrics.
var (
	PublishFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "publish_failures_total",
		Help:      "Total number of result publish failures.",
	})

	StoreFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_failures_total",
		Help:      "Total number of result persistence failures.",
	})
)
