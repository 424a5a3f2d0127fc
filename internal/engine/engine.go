// Package engine runs the pricing pipeline for inventory items: extraction,
// observation collection, matching, aggregation and condition pricing,
// followed by persistence and publishing of the result.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/metrics"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/publish"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/sources"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/store"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/extract"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/pricing"
	score "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/scorer"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

const defaultStagger = 2 * time.Second

// outcomeError labels pipeline runs that returned an error.
const outcomeError = "error"

// Collector gathers observations for a query from the configured price
// sources. *sources.Collector implements it.
type Collector interface {
	Collect(ctx context.Context, query, identifier string) []domain.SourceObservation
}

// Engine orchestrates the pricing pipeline for one item at a time. The
// scoring and pricing core is pure; the store and publisher are optional
// side effects applied once a result is complete.
type Engine struct {
	extractor  *extract.Extractor
	selector   *score.Selector
	aggregator *pricing.Aggregator
	pricer     *pricing.ConditionPricer

	collector Collector
	store     store.Store
	publisher publish.Publisher
	log       *slog.Logger
	now       func() time.Time

	mode          domain.Mode
	staggerOffset time.Duration
}

// NewEngine creates a new Engine over the pricing components.
func NewEngine(
	ex *extract.Extractor,
	sel *score.Selector,
	agg *pricing.Aggregator,
	cp *pricing.ConditionPricer,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		extractor:     ex,
		selector:      sel,
		aggregator:    agg,
		pricer:        cp,
		log:           slog.Default(),
		now:           time.Now,
		mode:          domain.ModeAggregate,
		staggerOffset: defaultStagger,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithCollector sets the observation collector used by Price.
func WithCollector(c Collector) EngineOption {
	return func(e *Engine) {
		e.collector = c
	}
}

// WithStore persists items, observations and results after each run.
func WithStore(s store.Store) EngineOption {
	return func(e *Engine) {
		e.store = s
	}
}

// WithPublisher publishes each result after it is stored.
func WithPublisher(p publish.Publisher) EngineOption {
	return func(e *Engine) {
		e.publisher = p
	}
}

// WithMode selects best-match or aggregate pricing.
func WithMode(m domain.Mode) EngineOption {
	return func(e *Engine) {
		if m != "" {
			e.mode = m
		}
	}
}

// WithStaggerOffset sets the delay between items in a batch.
func WithStaggerOffset(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.staggerOffset = d
	}
}

// WithNowFunc overrides the clock used for PricedAt.
func WithNowFunc(fn func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = fn
	}
}

// RunOption adjusts a single pipeline run.
type RunOption func(*runConfig)

type runConfig struct {
	mode domain.Mode
}

// ForMode prices one run in mode m instead of the configured mode. An empty
// mode is ignored.
func ForMode(m domain.Mode) RunOption {
	return func(rc *runConfig) {
		if m != "" {
			rc.mode = m
		}
	}
}

// Mode returns the configured pricing mode.
func (e *Engine) Mode() domain.Mode {
	return e.mode
}

// Extractor returns the attribute extractor the engine prices with.
func (e *Engine) Extractor() *extract.Extractor {
	return e.extractor
}

// Aggregator returns the price aggregator the engine prices with.
func (e *Engine) Aggregator() *pricing.Aggregator {
	return e.aggregator
}

// Price runs the full pipeline for item, querying the configured sources.
// The outcome is priced, no_match or no_price; for the latter two the result
// carries zero prices. A cancelled ctx yields ctx.Err() and no result. An
// error from the store or publisher is returned alongside the computed
// result.
func (e *Engine) Price(
	ctx context.Context,
	item domain.ItemDescriptor,
	opts ...RunOption,
) (*domain.PricingResult, domain.Outcome, error) {
	return e.run(ctx, item, opts, func(attrs domain.ExtractedAttributes) []domain.SourceObservation {
		if e.collector == nil {
			return nil
		}
		query, identifier := sources.BuildQuery(attrs)
		return e.collector.Collect(ctx, query, identifier)
	})
}

// PriceObservations runs the pipeline for item against obs instead of the
// configured sources. Implausible observations are discarded first.
func (e *Engine) PriceObservations(
	ctx context.Context,
	item domain.ItemDescriptor,
	obs []domain.SourceObservation,
	opts ...RunOption,
) (*domain.PricingResult, domain.Outcome, error) {
	return e.run(ctx, item, opts, func(domain.ExtractedAttributes) []domain.SourceObservation {
		valid := make([]domain.SourceObservation, 0, len(obs))
		for _, o := range obs {
			if err := extract.ValidateObservation(o); err != nil {
				e.log.Debug("discarding observation", "title", o.Title, "error", err)
				continue
			}
			valid = append(valid, o)
		}
		return valid
	})
}

func (e *Engine) run(
	ctx context.Context,
	item domain.ItemDescriptor,
	opts []RunOption,
	collect func(domain.ExtractedAttributes) []domain.SourceObservation,
) (*domain.PricingResult, domain.Outcome, error) {
	rc := runConfig{mode: e.mode}
	for _, opt := range opts {
		opt(&rc)
	}

	start := time.Now()
	defer func() {
		metrics.PricingDuration.Observe(time.Since(start).Seconds())
	}()

	if err := ctx.Err(); err != nil {
		metrics.ItemsPricedTotal.WithLabelValues(outcomeError).Inc()
		return nil, "", err
	}

	attrs := e.extractor.ExtractItem(item)
	e.trace(domain.StageNormalized, attrs)

	obs := collect(attrs)
	if err := ctx.Err(); err != nil {
		metrics.ItemsPricedTotal.WithLabelValues(outcomeError).Inc()
		return nil, "", err
	}
	e.trace(domain.StageSearched, attrs, "observations", len(obs))

	result := e.evaluate(rc.mode, item, attrs, obs)
	result.PricedAt = e.now().UTC()

	if err := ctx.Err(); err != nil {
		metrics.ItemsPricedTotal.WithLabelValues(outcomeError).Inc()
		return nil, "", err
	}
	metrics.ItemsPricedTotal.WithLabelValues(string(result.Outcome)).Inc()
	e.trace(domain.StageDone, attrs, "outcome", result.Outcome)

	if err := e.emit(ctx, item, result, obs); err != nil {
		return result, result.Outcome, err
	}
	return result, result.Outcome, nil
}

// evaluate is the pure part of the pipeline.
func (e *Engine) evaluate(
	mode domain.Mode,
	item domain.ItemDescriptor,
	attrs domain.ExtractedAttributes,
	obs []domain.SourceObservation,
) *domain.PricingResult {
	result := &domain.PricingResult{
		ProductKey:   attrs.ProductKey,
		RawName:      attrs.RawName,
		Manufacturer: attrs.Manufacturer,
		PartNumber:   attrs.PartNumber,
		Mode:         mode,
		Outcome:      domain.OutcomeNoMatch,
		Condition:    attrs.Condition,
	}

	if len(obs) == 0 {
		return result
	}

	candidates := e.selector.ScoreAll(attrs, obs)
	best := score.Best(candidates)
	metrics.MatchScoreDistribution.Observe(best.Score)
	result.Confidence = best.Score
	result.MatchedTitle = best.Observation.Title
	result.MatchedSource = best.Observation.SourceID

	var base *domain.AggregatedPrice
	switch mode {
	case domain.ModeBestMatch:
		e.trace(domain.StageScored, attrs, "score", best.Score)
		if !e.selector.Accepts(best.Score) {
			return result
		}
		base = e.priceOf(best.Observation)
	default:
		base = e.aggregate(obs)
		e.trace(domain.StageAggregated, attrs, "score", best.Score)
	}

	if base == nil {
		result.Outcome = domain.OutcomeNoPrice
		return result
	}

	final, multiplier := e.pricer.Apply(
		base.Value,
		attrs.Condition,
		item.IsReagent || extract.IsReagent(item.RawName),
	)

	result.Outcome = domain.OutcomePriced
	result.BasePrice = base.Value
	result.Multiplier = multiplier
	result.FinalPrice = final
	result.Sources = base.ContributingSources
	result.Rejected = base.RejectedOutliers
	e.trace(domain.StagePriced, attrs, "base", base.Value, "final", final)

	return result
}

// priceOf range-checks and rounds a single matched observation's price.
func (e *Engine) priceOf(o domain.SourceObservation) *domain.AggregatedPrice {
	if !o.HasPrice() {
		return nil
	}
	agg, ok := e.aggregator.Aggregate([]decimal.Decimal{*o.Price})
	if !ok {
		return nil
	}
	return agg
}

// aggregate reconciles the price of every observation. Match scores only
// feed the result's confidence.
func (e *Engine) aggregate(obs []domain.SourceObservation) *domain.AggregatedPrice {
	prices := make([]decimal.Decimal, 0, len(obs))
	for i := range obs {
		if obs[i].HasPrice() {
			prices = append(prices, *obs[i].Price)
		}
	}

	agg, ok := e.aggregator.Aggregate(prices)
	if !ok {
		return nil
	}
	metrics.OutliersRejectedTotal.Add(float64(agg.RejectedOutliers))
	return agg
}

// emit applies the side effects of a finished run. Every failure is logged
// and counted; the joined error is returned to the caller.
func (e *Engine) emit(
	ctx context.Context,
	item domain.ItemDescriptor,
	result *domain.PricingResult,
	obs []domain.SourceObservation,
) error {
	var errs []error

	if e.store != nil {
		if err := e.persist(ctx, item, result, obs); err != nil {
			metrics.StoreFailuresTotal.Inc()
			e.log.Warn("storing result failed", "product_key", result.ProductKey, "error", err)
			errs = append(errs, err)
		}
	}

	if e.publisher != nil {
		if err := e.publisher.Publish(ctx, result, item); err != nil {
			metrics.PublishFailuresTotal.Inc()
			e.log.Warn("publishing result failed", "product_key", result.ProductKey, "error", err)
			errs = append(errs, fmt.Errorf("publishing result: %w", err))
		}
	}

	return errors.Join(errs...)
}

// persist writes the run in one store transaction, so a failure leaves
// neither the item nor its observations behind without a result.
func (e *Engine) persist(
	ctx context.Context,
	item domain.ItemDescriptor,
	result *domain.PricingResult,
	obs []domain.SourceObservation,
) error {
	if err := e.store.SavePricing(ctx, &store.Item{ItemDescriptor: item}, result, obs); err != nil {
		return fmt.Errorf("saving pricing run: %w", err)
	}
	return nil
}

func (e *Engine) trace(stage domain.Stage, attrs domain.ExtractedAttributes, args ...any) {
	e.log.Debug("pipeline stage",
		append([]any{"stage", stage, "product_key", attrs.ProductKey}, args...)...,
	)
}
