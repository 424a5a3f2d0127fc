// Package publish delivers pricing results to downstream inventory systems.
package publish

import (
	"context"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// Publisher pushes a finished pricing result for an inventory item.
type Publisher interface {
	Publish(ctx context.Context, result *domain.PricingResult, item domain.ItemDescriptor) error
}
