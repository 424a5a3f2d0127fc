// Package app wires a loaded configuration into a running pricing engine:
// result store, price sources with their rate limiters, publisher and
// the engine itself.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/config"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/engine"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/publish"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/sources"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/sources/ebay"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/store"
)

// App is a fully wired pricing engine and the resources behind it.
type App struct {
	Engine    *engine.Engine
	Store     store.Store
	Collector *sources.Collector
	// Limiters holds the rate limiter of every limited source by ID.
	Limiters map[string]*sources.RateLimiter
}

// Option adjusts how an App is built.
type Option func(*options)

type options struct {
	withoutStore bool
	engineOpts   []engine.EngineOption
}

// WithoutStore skips opening the result store.
func WithoutStore() Option {
	return func(o *options) {
		o.withoutStore = true
	}
}

// WithEngineOptions appends options applied last when building the engine.
func WithEngineOptions(opts ...engine.EngineOption) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

// New builds an App from cfg. The caller must Close it.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Limiters: map[string]*sources.RateLimiter{}}

	srcs := a.buildSources(&cfg.Sources, log)
	a.Collector = sources.NewCollector(srcs,
		sources.WithTimeout(cfg.Sources.Timeout),
		sources.WithConcurrency(cfg.Sources.Concurrency),
		sources.WithRetryPolicy(sources.RetryPolicy{
			MaxAttempts: cfg.Sources.Retry.MaxAttempts,
			BaseDelay:   cfg.Sources.Retry.BaseDelay,
			MaxDelay:    cfg.Sources.Retry.MaxDelay,
			Jitter:      cfg.Sources.Retry.Jitter,
		}),
		sources.WithLogger(log),
	)

	engOpts := []engine.EngineOption{
		engine.WithCollector(a.Collector),
		engine.WithPublisher(NewPublisher(&cfg.Publish, log)),
	}

	if !o.withoutStore {
		st, err := OpenStore(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		a.Store = st
		engOpts = append(engOpts, engine.WithStore(st))
	}

	eng, err := engine.FromConfig(&cfg.Engine, log, append(engOpts, o.engineOpts...)...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("building engine: %w", err)
	}
	a.Engine = eng

	log.Info("pricing engine ready",
		"mode", eng.Mode(),
		"sources", a.Collector.Sources(),
		"store", storeDriver(a.Store, &cfg.Database),
	)
	return a, nil
}

// Close releases the result store, if one was opened.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
	}
}

// SourceIDs returns the configured source IDs in query order.
func (a *App) SourceIDs() []string {
	return a.Collector.Sources()
}

// OpenStore opens and migrates the configured result store.
func OpenStore(ctx context.Context, cfg *config.DatabaseConfig) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Driver {
	case config.DriverSQLite:
		st, err = store.NewSQLiteStore(ctx, cfg.Path)
	default:
		st, err = store.NewPostgresStore(ctx, cfg.DSN(), store.WithPoolSize(cfg.PoolSize))
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Driver, err)
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return st, nil
}

// NewPublisher returns the webhook publisher when enabled, else a no-op.
func NewPublisher(cfg *config.PublishConfig, log *slog.Logger) publish.Publisher {
	if !cfg.Webhook.Enabled {
		return publish.NewNoOpPublisher(log)
	}
	return publish.NewWebhookPublisher(cfg.Webhook.URL, publish.WithHeaders(cfg.Webhook.Headers))
}

func (a *App) buildSources(cfg *config.SourcesConfig, log *slog.Logger) []sources.Source {
	srcs := make([]sources.Source, 0, len(cfg.HTTP)+1)

	for i := range cfg.HTTP {
		hc := &cfg.HTTP[i]
		src := sources.NewHTTPSource(hc.ID, hc.BaseURL,
			sources.WithHeaders(hc.Headers),
			sources.WithSupplierOnly(hc.SupplierOnly),
			sources.WithHTTPLogger(log),
		)
		srcs = append(srcs, a.limit(src, hc.RateLimit))
	}

	if cfg.Ebay.Enabled {
		tokens := ebay.NewOAuthTokenProvider(cfg.Ebay.AppID, cfg.Ebay.CertID,
			ebay.WithTokenURL(cfg.Ebay.TokenURL),
		)
		client := ebay.NewBrowseClient(tokens,
			ebay.WithBrowseURL(cfg.Ebay.BrowseURL),
			ebay.WithMarketplace(cfg.Ebay.Marketplace),
		)
		src := ebay.NewSource(client,
			ebay.WithCategory(cfg.Ebay.CategoryID),
			ebay.WithLimit(cfg.Ebay.Limit),
		)
		srcs = append(srcs, a.limit(src, cfg.Ebay.RateLimit))
	}

	return srcs
}

func (a *App) limit(src sources.Source, rl config.RateLimitConfig) sources.Source {
	limiter := sources.NewRateLimiter(rl.PerSecond, rl.Burst, rl.DailyLimit)
	a.Limiters[src.ID()] = limiter
	return sources.Limited(src, limiter)
}

func storeDriver(st store.Store, cfg *config.DatabaseConfig) string {
	if st == nil {
		return "none"
	}
	return cfg.Driver
}
