package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/sources"
)

// SourcesHandler reports the configured price sources and their quota usage.
type SourcesHandler struct {
	ids      []string
	limiters map[string]*sources.RateLimiter
}

// NewSourcesHandler creates a new SourcesHandler. ids lists the sources in
// query order; limiters holds the rate limiter of each limited source.
func NewSourcesHandler(ids []string, limiters map[string]*sources.RateLimiter) *SourcesHandler {
	return &SourcesHandler{ids: ids, limiters: limiters}
}

// SourceStatus is the quota state of one source.
type SourceStatus struct {
	ID          string     `json:"id"                     example:"ebay"`
	RateLimited bool       `json:"rate_limited"`
	DailyLimit  int64      `json:"daily_limit,omitempty"  example:"5000"`
	DailyUsed   int64      `json:"daily_used,omitempty"   example:"142"`
	Remaining   int64      `json:"remaining,omitempty"    example:"4858" doc:"-1 when the source has no daily quota"`
	ResetAt     *time.Time `json:"reset_at,omitempty"`
}

// ListSourcesOutput is the response for the sources endpoint.
type ListSourcesOutput struct {
	Body struct {
		Sources []SourceStatus `json:"sources"`
	}
}

// ListSources returns every configured source with its current quota usage.
func (h *SourcesHandler) ListSources(_ context.Context, _ *struct{}) (*ListSourcesOutput, error) {
	resp := &ListSourcesOutput{}
	resp.Body.Sources = make([]SourceStatus, 0, len(h.ids))

	for _, id := range h.ids {
		st := SourceStatus{ID: id}
		if rl, ok := h.limiters[id]; ok && rl != nil {
			resetAt := rl.ResetAt().UTC()
			st.RateLimited = true
			st.DailyLimit = rl.MaxDaily()
			st.DailyUsed = rl.DailyCount()
			st.Remaining = rl.Remaining()
			st.ResetAt = &resetAt
		}
		resp.Body.Sources = append(resp.Body.Sources, st)
	}

	return resp, nil
}

// RegisterSourceRoutes registers the sources endpoint with the Huma API.
func RegisterSourceRoutes(api huma.API, h *SourcesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-sources",
		Method:      http.MethodGet,
		Path:        "/api/v1/sources",
		Summary:     "List price sources",
		Description: "Returns the configured price sources with their rate limit and daily quota usage.",
		Tags:        []string{"sources"},
	}, h.ListSources)
}
