package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// pricePatterns are tried in order against comma-free text. The first
// pattern whose value lies in the observation range wins.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s*(\d+(?:\.\d{1,2})?)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d{1,2})?)\s*USD`),
	regexp.MustCompile(`(\d+(?:\.\d{1,2})?)\s*\$`),
	regexp.MustCompile(`(\d+\.\d{2})`),
	regexp.MustCompile(`(\d+)`),
}

// ErrInvalidAmount is returned by ParseAmount for anything but a single
// non-negative amount.
var ErrInvalidAmount = errors.New("invalid amount")

// amountPattern matches a plain amount, optionally with correctly grouped
// thousands separators.
var amountPattern = regexp.MustCompile(`^(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?$`)

// ParseAmount parses a structured price field such as "45", "48.50" or
// "$1,234.50". Unlike ParsePrice it does not search the text, and it does
// not range-check the value.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimSpace(strings.TrimPrefix(clean, "$"))
	if !amountPattern.MatchString(clean) {
		return decimal.Zero, fmt.Errorf("%w %q", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(clean, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: %w", ErrInvalidAmount, s, err)
	}
	return d, nil
}

// ParsePrice finds a price in free text such as "$1,234.56" or "45.00 USD".
// Values outside the observation range are ignored.
func ParsePrice(text string) (decimal.Decimal, bool) {
	if text == "" {
		return decimal.Zero, false
	}
	clean := strings.ReplaceAll(text, ",", "")

	for _, re := range pricePatterns {
		m := re.FindStringSubmatch(clean)
		if m == nil {
			continue
		}
		p, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		if InObservationRange(p) {
			return p, true
		}
	}
	return decimal.Zero, false
}

// InObservationRange reports whether p is a plausible single observed price.
func InObservationRange(p decimal.Decimal) bool {
	return p.GreaterThanOrEqual(domain.ObservationPriceMin) &&
		p.LessThanOrEqual(domain.ObservationPriceMax)
}
