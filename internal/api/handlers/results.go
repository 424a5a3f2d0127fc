package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/store"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

const defaultObservationLimit = 100

// ResultsHandler handles stored result query endpoints.
type ResultsHandler struct {
	store store.Store
}

// NewResultsHandler creates a new ResultsHandler.
func NewResultsHandler(s store.Store) *ResultsHandler {
	return &ResultsHandler{store: s}
}

// --- Input/Output types ---

// ListResultsInput is the input for listing results with optional filters.
type ListResultsInput struct {
	ProductKey    string   `query:"product_key"    doc:"Filter by product key"`
	Outcome       string   `query:"outcome"        doc:"Filter by outcome"              enum:"priced,no_match,no_price,"`
	Condition     []string `query:"condition"      doc:"Filter by item condition"`
	MinConfidence float64  `query:"min_confidence" doc:"Minimum match confidence"                                      minimum:"0" maximum:"1"`
	Limit         int      `query:"limit"          doc:"Number of results (default 50)"                                minimum:"0" maximum:"500"`
	Offset        int      `query:"offset"         doc:"Pagination offset"                                             minimum:"0"`
	OrderBy       string   `query:"order_by"       doc:"Sort field"                     enum:"priced_at,confidence,final_price,"`
}

// ListResultsOutput is the response for listing results.
type ListResultsOutput struct {
	Body struct {
		Results []domain.PricingResult `json:"results"`
		Total   int                    `json:"total"`
		Limit   int                    `json:"limit"`
		Offset  int                    `json:"offset"`
	}
}

// GetResultInput is the input for getting the latest result of a product.
type GetResultInput struct {
	ProductKey string `path:"product_key" doc:"Product key"`
}

// GetResultOutput is the response for getting a single result.
type GetResultOutput struct {
	Body domain.PricingResult
}

// ListObservationsInput is the input for listing stored observations.
type ListObservationsInput struct {
	ProductKey string `path:"product_key" doc:"Product key"`
	Limit      int    `query:"limit"      doc:"Number of observations (default 100)" minimum:"0" maximum:"1000"`
}

// ListObservationsOutput is the response for listing observations.
type ListObservationsOutput struct {
	Body struct {
		ProductKey   string                     `json:"product_key"`
		Observations []domain.SourceObservation `json:"observations"`
	}
}

// --- Handlers ---

// ListResults returns stored pricing results, newest first by default.
func (h *ResultsHandler) ListResults(
	ctx context.Context,
	input *ListResultsInput,
) (*ListResultsOutput, error) {
	q := &store.ResultQuery{
		Conditions: input.Condition,
		Limit:      input.Limit,
		Offset:     input.Offset,
		OrderBy:    input.OrderBy,
	}

	if input.ProductKey != "" {
		q.ProductKey = &input.ProductKey
	}

	if input.Outcome != "" {
		q.Outcome = &input.Outcome
	}

	if input.MinConfidence != 0 {
		q.MinConfidence = &input.MinConfidence
	}

	results, total, err := h.store.ListResults(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("result query failed: " + err.Error())
	}
	if results == nil {
		results = []domain.PricingResult{}
	}

	resp := &ListResultsOutput{}
	resp.Body.Results = results
	resp.Body.Total = total
	resp.Body.Limit = q.EffectiveLimit()
	resp.Body.Offset = q.Offset

	return resp, nil
}

// GetResult returns the latest result for a product key.
func (h *ResultsHandler) GetResult(
	ctx context.Context,
	input *GetResultInput,
) (*GetResultOutput, error) {
	r, err := h.store.GetResult(ctx, input.ProductKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("result not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("result lookup failed: " + err.Error())
	}

	return &GetResultOutput{Body: *r}, nil
}

// ListObservations returns the observations stored for a product key.
func (h *ResultsHandler) ListObservations(
	ctx context.Context,
	input *ListObservationsInput,
) (*ListObservationsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = defaultObservationLimit
	}

	obs, err := h.store.ListObservations(ctx, input.ProductKey, limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("observation query failed: " + err.Error())
	}
	if obs == nil {
		obs = []domain.SourceObservation{}
	}

	resp := &ListObservationsOutput{}
	resp.Body.ProductKey = input.ProductKey
	resp.Body.Observations = obs
	return resp, nil
}

// RegisterResultRoutes registers result endpoints with the Huma API.
func RegisterResultRoutes(api huma.API, h *ResultsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-results",
		Method:      http.MethodGet,
		Path:        "/api/v1/results",
		Summary:     "List pricing results",
		Description: "Returns stored pricing results with optional filters and pagination.",
		Tags:        []string{"results"},
	}, h.ListResults)

	huma.Register(api, huma.Operation{
		OperationID: "get-result",
		Method:      http.MethodGet,
		Path:        "/api/v1/results/{product_key}",
		Summary:     "Get the latest result for a product",
		Description: "Returns the most recent pricing result stored for a product key.",
		Tags:        []string{"results"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetResult)

	huma.Register(api, huma.Operation{
		OperationID: "list-observations",
		Method:      http.MethodGet,
		Path:        "/api/v1/results/{product_key}/observations",
		Summary:     "List stored observations for a product",
		Description: "Returns the source observations recorded when the product was priced.",
		Tags:        []string{"results"},
	}, h.ListObservations)
}
