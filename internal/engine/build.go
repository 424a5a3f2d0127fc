package engine

import (
	"fmt"
	"log/slog"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/config"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/extract"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/normalize"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/pricing"
	score "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/scorer"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// FromConfig builds an Engine whose pricing components follow cfg. Extra
// options (collector, store, publisher) are applied after the configured
// mode and stagger.
func FromConfig(cfg *config.EngineConfig, log *slog.Logger, opts ...EngineOption) (*Engine, error) {
	if log == nil {
		log = slog.Default()
	}

	n := normalize.New(cfg.ManufacturerAliases, normalize.WithLogger(log))

	strategy, err := score.NewStrategy(cfg.Strategy, n, cfg.StructuredWeights, cfg.PageWeights)
	if err != nil {
		return nil, fmt.Errorf("building scoring strategy: %w", err)
	}

	agg, err := pricing.NewAggregator(
		domain.PriceProfile(cfg.PriceRangeProfile),
		pricing.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("building aggregator: %w", err)
	}

	base := []EngineOption{
		WithLogger(log),
		WithMode(domain.Mode(cfg.Mode)),
		WithStaggerOffset(cfg.Stagger),
	}

	return NewEngine(
		extract.New(n, extract.WithLogger(log)),
		score.NewSelector(strategy, score.WithThreshold(cfg.MatchConfidenceThreshold)),
		agg,
		pricing.NewConditionPricer(cfg.ConditionMultipliers),
		append(base, opts...)...,
	), nil
}
