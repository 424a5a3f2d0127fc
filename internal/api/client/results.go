package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// ResultsResponse wraps a paginated results response.
type ResultsResponse struct {
	Results []domain.PricingResult `json:"results"`
	Total   int                    `json:"total"`
	Limit   int                    `json:"limit"`
	Offset  int                    `json:"offset"`
}

// ListResultsParams defines query parameters for result queries.
type ListResultsParams struct {
	ProductKey    string
	Outcome       string
	Conditions    []string
	MinConfidence float64
	Limit         int
	Offset        int
	OrderBy       string
}

// ListResults returns stored results matching the given parameters.
func (c *Client) ListResults(
	ctx context.Context,
	params *ListResultsParams,
) (*ResultsResponse, error) {
	q := url.Values{}
	if params.ProductKey != "" {
		q.Set("product_key", params.ProductKey)
	}
	if params.Outcome != "" {
		q.Set("outcome", params.Outcome)
	}
	if len(params.Conditions) > 0 {
		q.Set("condition", strings.Join(params.Conditions, ","))
	}
	if params.MinConfidence > 0 {
		q.Set("min_confidence", strconv.FormatFloat(params.MinConfidence, 'f', -1, 64))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.OrderBy != "" {
		q.Set("order_by", params.OrderBy)
	}

	path := "/api/v1/results"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ResultsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetResult returns the latest stored result for a product key.
func (c *Client) GetResult(ctx context.Context, productKey string) (*domain.PricingResult, error) {
	var r domain.PricingResult
	if err := c.get(ctx, "/api/v1/results/"+url.PathEscape(productKey), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListObservations returns the observations stored for a product key.
func (c *Client) ListObservations(
	ctx context.Context,
	productKey string,
	limit int,
) ([]domain.SourceObservation, error) {
	path := "/api/v1/results/" + url.PathEscape(productKey) + "/observations"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var resp struct {
		Observations []domain.SourceObservation `json:"observations"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Observations, nil
}
