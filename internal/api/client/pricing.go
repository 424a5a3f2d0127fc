package client

import (
	"context"
	"time"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// Observation is an offer supplied to the price endpoint. Price is free
// text such as "$45.00".
type Observation struct {
	SourceID     string `json:"source_id,omitempty"`
	Title        string `json:"title"`
	Price        string `json:"price,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	PartNumber   string `json:"part_number,omitempty"`
	PackQuantity int    `json:"pack_quantity,omitempty"`
	URL          string `json:"url,omitempty"`
}

// PriceRequest is the body of a price call. Observations, when set, are
// priced instead of the server's configured sources.
type PriceRequest struct {
	domain.ItemDescriptor
	Mode         domain.Mode   `json:"mode,omitempty"`
	Observations []Observation `json:"observations,omitempty"`
}

// PriceResponse is a pricing result plus any side-effect warnings.
type PriceResponse struct {
	domain.PricingResult
	Warnings []string `json:"warnings,omitempty"`
}

// Price runs the pricing pipeline on the server for one item.
func (c *Client) Price(ctx context.Context, req *PriceRequest) (*PriceResponse, error) {
	var resp PriceResponse
	if err := c.post(ctx, "/api/v1/price", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExtractResponse is the attribute set derived from an item name.
type ExtractResponse struct {
	domain.ExtractedAttributes
	IsReagent bool `json:"is_reagent"`
}

// Extract parses an item into structured attributes.
func (c *Client) Extract(ctx context.Context, item domain.ItemDescriptor) (*ExtractResponse, error) {
	var resp ExtractResponse
	if err := c.post(ctx, "/api/v1/extract", item, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// NormalizeResponse is the canonical form of a manufacturer name.
type NormalizeResponse struct {
	Input     string `json:"input"`
	Canonical string `json:"canonical"`
	Matched   bool   `json:"matched"`
}

// Normalize resolves a manufacturer spelling on the server.
func (c *Client) Normalize(ctx context.Context, name string) (*NormalizeResponse, error) {
	var resp NormalizeResponse
	if err := c.post(ctx, "/api/v1/normalize", map[string]string{"name": name}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AggregateResponse is the reconciled price of a list of observed prices.
type AggregateResponse struct {
	Found               bool   `json:"found"`
	Value               string `json:"value,omitempty"`
	ContributingSources int    `json:"contributing_sources"`
	RejectedOutliers    int    `json:"rejected_outliers"`
}

// Aggregate reconciles prices on the server. An empty profile uses the
// server's configured profile.
func (c *Client) Aggregate(
	ctx context.Context,
	prices []string,
	profile domain.PriceProfile,
) (*AggregateResponse, error) {
	body := map[string]any{"prices": prices}
	if profile != "" {
		body["profile"] = profile
	}

	var resp AggregateResponse
	if err := c.post(ctx, "/api/v1/aggregate", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SourceStatus is the quota state of one configured source.
type SourceStatus struct {
	ID          string     `json:"id"`
	RateLimited bool       `json:"rate_limited"`
	DailyLimit  int64      `json:"daily_limit,omitempty"`
	DailyUsed   int64      `json:"daily_used,omitempty"`
	Remaining   int64      `json:"remaining,omitempty"`
	ResetAt     *time.Time `json:"reset_at,omitempty"`
}

// ListSources returns the server's configured sources.
func (c *Client) ListSources(ctx context.Context) ([]SourceStatus, error) {
	var resp struct {
		Sources []SourceStatus `json:"sources"`
	}
	if err := c.get(ctx, "/api/v1/sources", &resp); err != nil {
		return nil, err
	}
	return resp.Sources, nil
}
