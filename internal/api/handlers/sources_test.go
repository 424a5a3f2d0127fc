package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/api/handlers"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/sources"
)

func TestSourcesHandler_ListSources(t *testing.T) {
	t.Parallel()

	opened := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	rl := sources.NewRateLimiter(100, 10, 5000,
		sources.WithRateLimiterNowFunc(func() time.Time { return opened }),
	)
	for range 3 {
		require.NoError(t, rl.Wait(context.Background()))
	}

	h := handlers.NewSourcesHandler(
		[]string{"google_shopping", "ebay"},
		map[string]*sources.RateLimiter{"ebay": rl},
	)

	_, api := humatest.New(t)
	handlers.RegisterSourceRoutes(api, h)

	resp := api.Get("/api/v1/sources")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `{"id":"google_shopping","rate_limited":false}`)
	assert.Contains(t, body, `"id":"ebay","rate_limited":true`)
	assert.Contains(t, body, `"daily_limit":5000`)
	assert.Contains(t, body, `"daily_used":3`)
	assert.Contains(t, body, `"remaining":4997`)
	assert.Contains(t, body, `"reset_at":"2026-03-02T08:00:00Z"`)
}

func TestSourcesHandler_NoSources(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterSourceRoutes(api, handlers.NewSourcesHandler(nil, nil))

	resp := api.Get("/api/v1/sources")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"sources":[]`)
}
