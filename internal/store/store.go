// Package store persists inventory items, pricing results and the source
// observations behind them. Business logic depends on the Store interface
// only, so everything above it can be tested against mocks.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// itemNamespace seeds deterministic item IDs.
var itemNamespace = uuid.MustParse("5b0b8a53-6c1f-4b8e-9d43-2f6e3c0f7a11")

// Item is an inventory record held for scheduled re-pricing.
type Item struct {
	ID string `json:"id"`
	domain.ItemDescriptor
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemID derives the stable ID of an item from its identifying fields, so
// the same inventory record always upserts onto the same row.
func ItemID(d domain.ItemDescriptor) string {
	key := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(d.RawName)),
		strings.ToLower(strings.TrimSpace(d.ManufacturerHint)),
		strings.TrimSpace(d.Barcode),
	}, "\x1f")
	return uuid.NewSHA1(itemNamespace, []byte(key)).String()
}

// Store defines all data access operations for the price matcher.
type Store interface {
	// Items
	UpsertItem(ctx context.Context, item *Item) error
	ListItems(ctx context.Context, limit int) ([]Item, error)

	// Results
	SaveResult(ctx context.Context, r *domain.PricingResult) error
	GetResult(ctx context.Context, productKey string) (*domain.PricingResult, error)
	ListResults(ctx context.Context, q *ResultQuery) ([]domain.PricingResult, int, error)

	// Observations
	SaveObservations(ctx context.Context, productKey string, obs []domain.SourceObservation) error
	ListObservations(ctx context.Context, productKey string, limit int) ([]domain.SourceObservation, error)

	// SavePricing records one run atomically: the item, its observations
	// and the result.
	SavePricing(ctx context.Context, item *Item, r *domain.PricingResult, obs []domain.SourceObservation) error

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
	Close()
}

// prepareResult fills the generated fields of a result before insert.
func prepareResult(r *domain.PricingResult, now time.Time) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.PricedAt.IsZero() {
		r.PricedAt = now
	}
	r.PricedAt = r.PricedAt.UTC()
}

// prepareItem fills the generated fields of an item before upsert.
func prepareItem(item *Item) {
	item.ID = ItemID(item.ItemDescriptor)
}
