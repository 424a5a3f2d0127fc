package ebay

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/sources"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// DefaultSourceID identifies eBay observations.
const DefaultSourceID = "ebay"

// Source adapts a Client to sources.Source.
type Source struct {
	id         string
	client     Client
	categoryID string
	limit      int
	filter     string
}

// SourceOption configures the Source.
type SourceOption func(*Source)

// WithSourceID overrides the source identifier.
func WithSourceID(id string) SourceOption {
	return func(s *Source) {
		if id != "" {
			s.id = id
		}
	}
}

// WithCategory restricts searches to an eBay category.
func WithCategory(id string) SourceOption {
	return func(s *Source) {
		s.categoryID = id
	}
}

// WithLimit sets the number of items requested per search.
func WithLimit(n int) SourceOption {
	return func(s *Source) {
		s.limit = n
	}
}

// NewSource creates an eBay price source over fixed-price listings.
func NewSource(client Client, opts ...SourceOption) *Source {
	s := &Source{
		id:     DefaultSourceID,
		client: client,
		limit:  defaultLimit,
		filter: "buyingOptions:{FIXED_PRICE}",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID implements sources.Source.
func (s *Source) ID() string { return s.id }

// Query implements sources.Source. A numeric identifier of GTIN length is
// sent as a GTIN lookup alongside the text query.
func (s *Source) Query(
	ctx context.Context,
	query, identifier string,
) ([]domain.SourceObservation, error) {
	req := SearchRequest{
		Query:      query,
		CategoryID: s.categoryID,
		Limit:      s.limit,
		Filter:     s.filter,
	}
	if isGTIN(identifier) {
		req.GTIN = identifier
	}

	resp, err := s.client.Search(ctx, req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return nil, sources.Permanent(fmt.Errorf("searching eBay: %w", err))
		}
		return nil, fmt.Errorf("searching eBay: %w", err)
	}

	return ToObservations(s.id, resp.Items), nil
}

func isGTIN(s string) bool {
	switch len(s) {
	case 8, 12, 13, 14:
	default:
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
