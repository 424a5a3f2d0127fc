// Package ebay provides a price source backed by the eBay Browse API.
package ebay

import (
	"context"
)

// SearchRequest defines the parameters for an eBay search.
type SearchRequest struct {
	Query      string
	GTIN       string
	CategoryID string
	Limit      int
	Filter     string // e.g. "buyingOptions:{FIXED_PRICE}"
}

// SearchResponse holds the results of an eBay search.
type SearchResponse struct {
	Items []ItemSummary
	Total int
}

// Client defines the interface for searching eBay listings.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// TokenProvider defines the interface for obtaining OAuth2 tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
