// Package pricing reconciles observed prices into a single base price and
// applies condition-dependent adjustments.
package pricing

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/shopspring/decimal"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// minFilterSamples is the smallest sample size that gets outlier rejection.
const minFilterSamples = 3

var (
	lowerBand = decimal.RequireFromString("0.5")
	upperBand = decimal.RequireFromString("1.5")
)

// Range is an inclusive plausible price interval.
type Range struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Contains reports whether p lies within r.
func (r Range) Contains(p decimal.Decimal) bool {
	return p.GreaterThanOrEqual(r.Min) && p.LessThanOrEqual(r.Max)
}

// ProfileRange returns the plausible range for a price profile.
func ProfileRange(p domain.PriceProfile) (Range, error) {
	switch p {
	case domain.ProfileConsumer:
		return Range{
			Min: decimal.RequireFromString("0.01"),
			Max: decimal.NewFromInt(10000),
		}, nil
	case domain.ProfileLabEquipment:
		return Range{
			Min: decimal.NewFromInt(1),
			Max: decimal.NewFromInt(50000),
		}, nil
	default:
		return Range{}, fmt.Errorf("unknown price range profile %q", p)
	}
}

// Aggregator combines several observed prices into one, rejecting values
// far from the median.
type Aggregator struct {
	rng Range
	log *slog.Logger
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) AggregatorOption {
	return func(a *Aggregator) {
		a.log = l
	}
}

// WithRange overrides the profile range.
func WithRange(r Range) AggregatorOption {
	return func(a *Aggregator) {
		a.rng = r
	}
}

// NewAggregator creates an Aggregator for the given price profile.
func NewAggregator(profile domain.PriceProfile, opts ...AggregatorOption) (*Aggregator, error) {
	rng, err := ProfileRange(profile)
	if err != nil {
		return nil, err
	}
	a := &Aggregator{
		rng: rng,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Aggregate reconciles prices. Values outside the profile range are dropped
// first. Fewer than three remaining values are averaged as-is; otherwise only
// values within [0.5x, 1.5x] of the lower-middle median are averaged. The
// boolean is false when no price survives.
func (a *Aggregator) Aggregate(prices []decimal.Decimal) (*domain.AggregatedPrice, bool) {
	valid := make([]decimal.Decimal, 0, len(prices))
	for _, p := range prices {
		if a.rng.Contains(p) {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return nil, false
	}

	kept := valid
	if len(valid) >= minFilterSamples {
		slices.SortFunc(valid, func(x, y decimal.Decimal) int { return x.Cmp(y) })
		median := valid[(len(valid)-1)/2]
		lo, hi := median.Mul(lowerBand), median.Mul(upperBand)

		kept = make([]decimal.Decimal, 0, len(valid))
		for _, p := range valid {
			if p.GreaterThanOrEqual(lo) && p.LessThanOrEqual(hi) {
				kept = append(kept, p)
			}
		}
	}

	result := &domain.AggregatedPrice{
		Value:               decimal.Avg(kept[0], kept[1:]...).Round(2),
		ContributingSources: len(kept),
		RejectedOutliers:    len(valid) - len(kept),
	}

	a.log.Debug("aggregated prices",
		"input", len(prices),
		"in_range", len(valid),
		"kept", result.ContributingSources,
		"rejected", result.RejectedOutliers,
		"value", result.Value.StringFixed(2),
	)

	return result, true
}
