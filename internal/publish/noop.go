package publish

import (
	"context"
	"log/slog"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// NoOpPublisher implements Publisher by logging discarded results. It is
// used when no webhook is configured.
type NoOpPublisher struct {
	log *slog.Logger
}

// NewNoOpPublisher creates a publisher that discards results with a log message.
func NewNoOpPublisher(log *slog.Logger) *NoOpPublisher {
	if log == nil {
		log = slog.Default()
	}
	return &NoOpPublisher{log: log}
}

// Publish logs and discards a result.
func (n *NoOpPublisher) Publish(_ context.Context, result *domain.PricingResult, item domain.ItemDescriptor) error {
	n.log.Debug("result discarded (no publisher configured)",
		"item", item.RawName,
		"product_key", result.ProductKey,
		"outcome", result.Outcome,
	)
	return nil
}
