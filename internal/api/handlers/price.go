package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/engine"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/extract"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/pricing"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// inlineSourceID labels request-supplied observations without a source.
const inlineSourceID = "inline"

// Pricer runs the pricing pipeline. *engine.Engine implements it.
type Pricer interface {
	Price(
		ctx context.Context,
		item domain.ItemDescriptor,
		opts ...engine.RunOption,
	) (*domain.PricingResult, domain.Outcome, error)
	PriceObservations(
		ctx context.Context,
		item domain.ItemDescriptor,
		obs []domain.SourceObservation,
		opts ...engine.RunOption,
	) (*domain.PricingResult, domain.Outcome, error)
}

// PriceHandler handles pricing and aggregation requests.
type PriceHandler struct {
	pricer     Pricer
	aggregator *pricing.Aggregator
	log        *slog.Logger
}

// NewPriceHandler creates a new PriceHandler. agg is used by the aggregate
// endpoint when the request names no profile.
func NewPriceHandler(p Pricer, agg *pricing.Aggregator, log *slog.Logger) *PriceHandler {
	if log == nil {
		log = slog.Default()
	}
	return &PriceHandler{pricer: p, aggregator: agg, log: log}
}

// ObservationBody is a request-supplied source observation.
type ObservationBody struct {
	SourceID     string `json:"source_id,omitempty"     doc:"Source identifier; defaults to inline"`
	Title        string `json:"title"                    minLength:"1" doc:"Offer title"`
	Price        string `json:"price,omitempty"          doc:"Offer amount, e.g. \"1234.50\" or \"$1,234.50\""`
	Manufacturer string `json:"manufacturer,omitempty"`
	PartNumber   string `json:"part_number,omitempty"`
	PackQuantity int    `json:"pack_quantity,omitempty"  minimum:"0"`
	URL          string `json:"url,omitempty"`
	Description  string `json:"description,omitempty"`
}

func (b *ObservationBody) observation() (domain.SourceObservation, error) {
	obs := domain.SourceObservation{
		SourceID:     b.SourceID,
		Title:        b.Title,
		Manufacturer: b.Manufacturer,
		PartNumber:   b.PartNumber,
		PackQuantity: b.PackQuantity,
		URL:          b.URL,
		Description:  b.Description,
	}
	if obs.SourceID == "" {
		obs.SourceID = inlineSourceID
	}
	if b.Price != "" {
		p, err := extract.ParseAmount(b.Price)
		if err != nil {
			return obs, fmt.Errorf("invalid price %q", b.Price)
		}
		obs.Price = &p
	}
	return obs, nil
}

// PriceInput is the request body for the price endpoint.
type PriceInput struct {
	Body struct {
		ItemBody
		Mode         domain.Mode       `json:"mode,omitempty"         enum:"best_match,aggregate" doc:"Override the configured pricing mode"`
		Observations []ObservationBody `json:"observations,omitempty" doc:"Price these offers instead of querying sources"`
	}
}

// PriceOutput is the response body for the price endpoint.
type PriceOutput struct {
	Body struct {
		domain.PricingResult
		Warnings []string `json:"warnings,omitempty" doc:"Store or publish failures; the result is still valid"`
	}
}

// Price runs the pipeline for one item.
func (h *PriceHandler) Price(ctx context.Context, input *PriceInput) (*PriceOutput, error) {
	item := input.Body.Descriptor()
	opts := []engine.RunOption{engine.ForMode(input.Body.Mode)}

	var (
		result *domain.PricingResult
		err    error
	)
	if len(input.Body.Observations) > 0 {
		// Implausible prices parse here and are discarded by the engine.
		obs := make([]domain.SourceObservation, 0, len(input.Body.Observations))
		for i := range input.Body.Observations {
			o, perr := input.Body.Observations[i].observation()
			if perr != nil {
				return nil, huma.Error422UnprocessableEntity(
					fmt.Sprintf("observations[%d]: %s", i, perr),
				)
			}
			obs = append(obs, o)
		}
		result, _, err = h.pricer.PriceObservations(ctx, item, obs, opts...)
	} else {
		result, _, err = h.pricer.Price(ctx, item, opts...)
	}

	if result == nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, huma.Error503ServiceUnavailable("pricing cancelled", err)
		}
		return nil, huma.Error500InternalServerError("pricing failed", err)
	}

	resp := &PriceOutput{}
	resp.Body.PricingResult = *result
	if err != nil {
		h.log.Warn("pricing side effects failed", "product_key", result.ProductKey, "error", err)
		resp.Body.Warnings = []string{err.Error()}
	}
	return resp, nil
}

// AggregateInput is the request body for the aggregate endpoint.
type AggregateInput struct {
	Body struct {
		Prices  []string            `json:"prices"            minItems:"1" doc:"Observed amounts, e.g. \"45.00\" or \"$45.00\""`
		Profile domain.PriceProfile `json:"profile,omitempty" enum:"consumer,lab_equipment" doc:"Plausible range profile"`
	}
}

// AggregateOutput is the response body for the aggregate endpoint.
type AggregateOutput struct {
	Body struct {
		Found               bool   `json:"found"                 doc:"False when no price survived range filtering"`
		Value               string `json:"value,omitempty"       example:"46.75"`
		ContributingSources int    `json:"contributing_sources"`
		RejectedOutliers    int    `json:"rejected_outliers"`
	}
}

// Aggregate reconciles a list of prices without running the pipeline.
func (h *PriceHandler) Aggregate(_ context.Context, input *AggregateInput) (*AggregateOutput, error) {
	prices := make([]decimal.Decimal, 0, len(input.Body.Prices))
	for i, raw := range input.Body.Prices {
		p, err := extract.ParseAmount(raw)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(
				fmt.Sprintf("prices[%d]: invalid price %q", i, raw),
			)
		}
		prices = append(prices, p)
	}

	agg := h.aggregator
	if input.Body.Profile != "" {
		var err error
		agg, err = pricing.NewAggregator(input.Body.Profile, pricing.WithLogger(h.log))
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
	}

	resp := &AggregateOutput{}
	price, ok := agg.Aggregate(prices)
	if !ok {
		return resp, nil
	}
	resp.Body.Found = true
	resp.Body.Value = price.Value.StringFixed(2)
	resp.Body.ContributingSources = price.ContributingSources
	resp.Body.RejectedOutliers = price.RejectedOutliers
	return resp, nil
}

// RegisterPriceRoutes registers pricing endpoints with the Huma API.
func RegisterPriceRoutes(api huma.API, h *PriceHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "price-item",
		Method:      http.MethodPost,
		Path:        "/api/v1/price",
		Summary:     "Price an inventory item",
		Description: "Runs the pricing pipeline for one item. Supplying observations " +
			"prices against them instead of querying the configured sources.",
		Tags:   []string{"pricing"},
		Errors: []int{http.StatusUnprocessableEntity, http.StatusInternalServerError, http.StatusServiceUnavailable},
	}, h.Price)

	huma.Register(api, huma.Operation{
		OperationID: "aggregate-prices",
		Method:      http.MethodPost,
		Path:        "/api/v1/aggregate",
		Summary:     "Aggregate observed prices",
		Description: "Drops out-of-range prices and outliers, then averages the rest.",
		Tags:        []string{"pricing"},
		Errors:      []int{http.StatusUnprocessableEntity},
	}, h.Aggregate)
}
