package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBrowseURL   = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	defaultMarketplace = "EBAY_US"
	defaultLimit       = 20
)

// BrowseClient implements Client using the eBay Browse API.
type BrowseClient struct {
	tokens      TokenProvider
	browseURL   string
	marketplace string
	client      *resty.Client
}

// BrowseOption configures the BrowseClient.
type BrowseOption func(*BrowseClient)

// WithBrowseURL overrides the default Browse API endpoint.
func WithBrowseURL(u string) BrowseOption {
	return func(c *BrowseClient) {
		if u != "" {
			c.browseURL = u
		}
	}
}

// WithMarketplace overrides the default marketplace.
func WithMarketplace(m string) BrowseOption {
	return func(c *BrowseClient) {
		if m != "" {
			c.marketplace = m
		}
	}
}

// NewBrowseClient creates a new Browse API client.
func NewBrowseClient(tokens TokenProvider, opts ...BrowseOption) *BrowseClient {
	c := &BrowseClient{
		tokens:      tokens,
		browseURL:   defaultBrowseURL,
		marketplace: defaultMarketplace,
		client:      resty.New().SetTimeout(30 * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search implements Client.
func (c *BrowseClient) Search(
	ctx context.Context,
	req SearchRequest,
) (*SearchResponse, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("X-EBAY-C-MARKETPLACE-ID", c.marketplace).
		SetHeader("Accept", "application/json").
		SetQueryParams(searchParams(req)).
		Get(c.browseURL)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}

	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var apiResp browseAPIResponse
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &SearchResponse{
		Items: apiResp.ItemSummaries,
		Total: apiResp.Total,
	}, nil
}

// APIError is a non-2xx response from the Browse API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("eBay API error (status %d): %s", e.StatusCode, e.Body)
}

// Retryable reports whether the request may succeed if repeated.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

func searchParams(req SearchRequest) map[string]string {
	params := map[string]string{}
	if req.Query != "" {
		params["q"] = req.Query
	}
	if req.GTIN != "" {
		params["gtin"] = req.GTIN
	}
	if req.CategoryID != "" {
		params["category_ids"] = req.CategoryID
	}
	if req.Filter != "" {
		params["filter"] = req.Filter
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	params["limit"] = strconv.Itoa(limit)

	return params
}
