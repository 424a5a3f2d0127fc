package extract

import (
	"errors"
	"fmt"
	"strings"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// Validation errors.
var (
	ErrMissingField = errors.New("missing required field")
	ErrOutOfRange   = errors.New("value out of valid range")
)

// ValidateObservation checks that an observation can enter the engine: it
// must name its source and carry either a title or a price, and any price
// must lie within the observation range.
func ValidateObservation(obs domain.SourceObservation) error {
	if strings.TrimSpace(obs.SourceID) == "" {
		return fmt.Errorf("source_id: %w", ErrMissingField)
	}
	if strings.TrimSpace(obs.Title) == "" && obs.Price == nil {
		return fmt.Errorf("title or price: %w", ErrMissingField)
	}
	if obs.Price != nil && !InObservationRange(*obs.Price) {
		return fmt.Errorf("price %s: %w (must be %s-%s)",
			obs.Price.StringFixed(2), ErrOutOfRange,
			domain.ObservationPriceMin.StringFixed(2),
			domain.ObservationPriceMax.StringFixed(2),
		)
	}
	if obs.PackQuantity < 0 {
		return fmt.Errorf("pack_quantity %d: %w (must be >= 0)", obs.PackQuantity, ErrOutOfRange)
	}
	return nil
}
