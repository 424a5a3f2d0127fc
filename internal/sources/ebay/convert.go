package ebay

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/extract"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// ToObservations converts item summaries into source observations
// attributed to sourceID.
func ToObservations(sourceID string, items []ItemSummary) []domain.SourceObservation {
	obs := make([]domain.SourceObservation, 0, len(items))
	for i := range items {
		obs = append(obs, toObservation(sourceID, &items[i]))
	}
	return obs
}

func toObservation(sourceID string, item *ItemSummary) domain.SourceObservation {
	o := domain.SourceObservation{
		SourceID:     sourceID,
		Title:        item.Title,
		URL:          item.ItemWebURL,
		Description:  strings.TrimSpace(item.ShortDescription),
		PartNumber:   extract.PartNumber(item.Title),
		PackQuantity: extract.PackQuantity(item.Title),
	}

	if item.Price != nil {
		if p, err := decimal.NewFromString(item.Price.Value); err == nil {
			o.Price = &p
		}
	}

	return o
}
