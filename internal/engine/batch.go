package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/metrics"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// BatchSummary counts the outcomes of a batch run.
type BatchSummary struct {
	Processed int `json:"processed"`
	Priced    int `json:"priced"`
	NoMatch   int `json:"no_match"`
	NoPrice   int `json:"no_price"`
	Failed    int `json:"failed"`
}

func (s *BatchSummary) record(outcome domain.Outcome) {
	switch outcome {
	case domain.OutcomePriced:
		s.Priced++
	case domain.OutcomeNoMatch:
		s.NoMatch++
	case domain.OutcomeNoPrice:
		s.NoPrice++
	}
}

// RunBatch prices items sequentially, waiting the stagger offset between
// items. Per-item errors are logged and counted; only cancellation stops
// the batch early.
func (e *Engine) RunBatch(ctx context.Context, items []domain.ItemDescriptor) (BatchSummary, error) {
	start := time.Now()
	defer func() {
		metrics.BatchDuration.Observe(time.Since(start).Seconds())
	}()

	var summary BatchSummary

	for i := range items {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		result, outcome, err := e.Price(ctx, items[i])
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		summary.Processed++

		switch {
		case result == nil:
			summary.Failed++
			e.log.Error("pricing item failed", "item", items[i].RawName, "error", err)
		default:
			summary.record(outcome)
			if err != nil {
				e.log.Warn("item priced with errors", "item", items[i].RawName, "error", err)
			}
		}

		// Stagger between items to spread source load.
		if i < len(items)-1 && e.staggerOffset > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(e.staggerOffset):
			}
		}
	}

	e.log.Info("batch complete",
		"processed", summary.Processed,
		"priced", summary.Priced,
		"no_match", summary.NoMatch,
		"no_price", summary.NoPrice,
		"failed", summary.Failed,
	)

	return summary, nil
}

// RepriceAll re-runs the pipeline for every item held in the store.
func (e *Engine) RepriceAll(ctx context.Context) (BatchSummary, error) {
	if e.store == nil {
		return BatchSummary{}, fmt.Errorf("repricing requires a store")
	}

	stored, err := e.store.ListItems(ctx, 0)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("listing items: %w", err)
	}

	items := make([]domain.ItemDescriptor, len(stored))
	for i := range stored {
		items[i] = stored[i].ItemDescriptor
	}

	return e.RunBatch(ctx, items)
}
