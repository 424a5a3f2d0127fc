package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/extract"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// ExtractHandler handles attribute extraction and manufacturer
// normalization requests.
type ExtractHandler struct {
	extractor *extract.Extractor
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractor *extract.Extractor) *ExtractHandler {
	return &ExtractHandler{extractor: extractor}
}

// ItemBody is the inventory item shared by the extract and price endpoints.
type ItemBody struct {
	RawName          string `json:"raw_name"                    minLength:"1" doc:"Inventory item name"                  example:"VWR Catalog # ABC-789 Reagent Bottles Case of 20"`
	ManufacturerHint string `json:"manufacturer_hint,omitempty"               doc:"Manufacturer column, if known"        example:"VWR"`
	Barcode          string `json:"barcode,omitempty"                         doc:"UPC/EAN barcode, if known"`
	Condition        string `json:"condition,omitempty"                       doc:"Explicit condition column, if known"  example:"opened"`
	IsReagent        bool   `json:"is_reagent,omitempty"                      doc:"Treat the item as a consumable reagent"`
}

// Descriptor converts the body to a domain item.
func (b *ItemBody) Descriptor() domain.ItemDescriptor {
	return domain.ItemDescriptor{
		RawName:          b.RawName,
		ManufacturerHint: b.ManufacturerHint,
		Barcode:          b.Barcode,
		Condition:        b.Condition,
		IsReagent:        b.IsReagent,
	}
}

// ExtractInput is the request body for the extract endpoint.
type ExtractInput struct {
	Body ItemBody
}

// ExtractOutput is the response body for the extract endpoint.
type ExtractOutput struct {
	Body struct {
		domain.ExtractedAttributes
		IsReagent bool `json:"is_reagent" doc:"Whether the item is priced as a reagent"`
	}
}

// NormalizeInput is the request body for the normalize endpoint.
type NormalizeInput struct {
	Body struct {
		Name string `json:"name" minLength:"1" doc:"Manufacturer spelling to resolve" example:"thermo fisher sci"`
	}
}

// NormalizeOutput is the response body for the normalize endpoint.
type NormalizeOutput struct {
	Body struct {
		Input     string `json:"input"`
		Canonical string `json:"canonical" example:"Thermo Fisher Scientific"`
		Matched   bool   `json:"matched"   doc:"Whether an alias matched; false returns the trimmed input"`
	}
}

// Extract parses an item name into structured attributes.
func (h *ExtractHandler) Extract(_ context.Context, input *ExtractInput) (*ExtractOutput, error) {
	item := input.Body.Descriptor()

	resp := &ExtractOutput{}
	resp.Body.ExtractedAttributes = h.extractor.ExtractItem(item)
	resp.Body.IsReagent = item.IsReagent || extract.IsReagent(item.RawName)
	return resp, nil
}

// Normalize resolves a manufacturer spelling to its canonical name.
func (h *ExtractHandler) Normalize(_ context.Context, input *NormalizeInput) (*NormalizeOutput, error) {
	canonical, matched := h.extractor.Normalizer().Resolve(input.Body.Name)
	if canonical == "" {
		return nil, huma.Error422UnprocessableEntity("name must contain non-whitespace characters")
	}

	resp := &NormalizeOutput{}
	resp.Body.Input = input.Body.Name
	resp.Body.Canonical = canonical
	resp.Body.Matched = matched
	return resp, nil
}

// RegisterExtractRoutes registers extract and normalize endpoints with the
// Huma API.
func RegisterExtractRoutes(api huma.API, h *ExtractHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "extract-attributes",
		Method:      http.MethodPost,
		Path:        "/api/v1/extract",
		Summary:     "Extract attributes from an item name",
		Description: "Derives manufacturer, part number, pack quantity, unit, condition " +
			"and product key from a free-text inventory item name.",
		Tags: []string{"extract"},
	}, h.Extract)

	huma.Register(api, huma.Operation{
		OperationID: "normalize-manufacturer",
		Method:      http.MethodPost,
		Path:        "/api/v1/normalize",
		Summary:     "Resolve a manufacturer name",
		Description: "Fuzzy-matches a manufacturer spelling against the alias table.",
		Tags:        []string{"extract"},
		Errors:      []int{http.StatusUnprocessableEntity},
	}, h.Normalize)
}
