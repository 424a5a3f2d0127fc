package handlers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/api/handlers"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/config"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/engine"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/pricing"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type collectorFunc func(ctx context.Context, query, identifier string) []domain.SourceObservation

func (f collectorFunc) Collect(ctx context.Context, query, identifier string) []domain.SourceObservation {
	return f(ctx, query, identifier)
}

// stubPricer returns a fixed result and error.
type stubPricer struct {
	result *domain.PricingResult
	err    error
}

func (s stubPricer) Price(
	context.Context, domain.ItemDescriptor, ...engine.RunOption,
) (*domain.PricingResult, domain.Outcome, error) {
	if s.result == nil {
		return nil, "", s.err
	}
	return s.result, s.result.Outcome, s.err
}

func (s stubPricer) PriceObservations(
	ctx context.Context, item domain.ItemDescriptor, _ []domain.SourceObservation, opts ...engine.RunOption,
) (*domain.PricingResult, domain.Outcome, error) {
	return s.Price(ctx, item, opts...)
}

func newTestEngine(t *testing.T, opts ...engine.EngineOption) *engine.Engine {
	t.Helper()
	cfg := config.Default()
	eng, err := engine.FromConfig(&cfg.Engine, quietLogger(), opts...)
	require.NoError(t, err)
	return eng
}

func newPriceAPI(t *testing.T, p handlers.Pricer) humatest.TestAPI {
	t.Helper()

	agg, err := pricing.NewAggregator(domain.ProfileConsumer, pricing.WithLogger(quietLogger()))
	require.NoError(t, err)

	_, api := humatest.New(t)
	handlers.RegisterPriceRoutes(api, handlers.NewPriceHandler(p, agg, quietLogger()))
	return api
}

var corningObservationBodies = []map[string]any{
	{"source_id": "corning.com", "title": "Corning 175cm Flask Angled Neck", "manufacturer": "Corning", "price": "$45.00"},
	{"source_id": "google_shopping", "title": "Corning 175cm Flask Angled Neck", "manufacturer": "Corning", "price": "48.50"},
	{"source_id": "marketplace", "title": "Corning 175cm Flask Angled Neck", "manufacturer": "Corning", "price": "200"},
}

func TestPriceHandler_Price(t *testing.T) {
	t.Parallel()

	collected := []domain.SourceObservation{}
	collector := collectorFunc(func(context.Context, string, string) []domain.SourceObservation {
		return collected
	})

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantBody   []string
	}{
		{
			name: "inline observations are aggregated",
			body: map[string]any{
				"raw_name":          "Corning 175 cm² Flask Angled Neck Nonpyrogenic Polystyrene",
				"manufacturer_hint": "Corning",
				"observations":      corningObservationBodies,
			},
			wantStatus: http.StatusOK,
			wantBody: []string{
				`"outcome":"priced"`,
				`"base_price":"46.75"`,
				`"final_price":"23.38"`,
				`"sources":2`,
				`"rejected_outliers":1`,
				`"mode":"aggregate"`,
			},
		},
		{
			name: "mode override",
			body: map[string]any{
				"raw_name":          "Corning 175 cm² Flask Angled Neck Nonpyrogenic Polystyrene",
				"manufacturer_hint": "Corning",
				"mode":              "best_match",
				"observations":      corningObservationBodies[:1],
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"mode":"best_match"`, `"final_price":"22.5"`},
		},
		{
			name:       "no observations from sources is no_match",
			body:       map[string]any{"raw_name": "Unknown widget"},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"outcome":"no_match"`, `"final_price":"0"`},
		},
		{
			name: "out of range inline price is discarded",
			body: map[string]any{
				"raw_name":          "Corning 175 cm² Flask Angled Neck Nonpyrogenic Polystyrene",
				"manufacturer_hint": "Corning",
				"observations": append(append([]map[string]any{}, corningObservationBodies...),
					map[string]any{"source_id": "broker", "title": "Corning 175cm Flask", "price": "60000"},
				),
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"base_price":"46.75"`, `"sources":2`, `"rejected_outliers":1`},
		},
		{
			name: "invalid inline price returns 422",
			body: map[string]any{
				"raw_name":     "Corning flask",
				"observations": []map[string]any{{"title": "Corning flask", "price": "call for price"}},
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{`observations[0]: invalid price`},
		},
		{
			name: "negative inline price returns 422",
			body: map[string]any{
				"raw_name":     "Corning flask",
				"observations": []map[string]any{{"title": "Corning flask", "price": "-5"}},
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{`observations[0]: invalid price`},
		},
		{
			name: "inline price with trailing text returns 422",
			body: map[string]any{
				"raw_name": "Corning flask",
				"observations": []map[string]any{
					{"title": "Corning flask", "price": "45.00"},
					{"title": "Corning flask", "price": "12.5.3"},
				},
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{`observations[1]: invalid price`},
		},
		{
			name:       "invalid mode returns 422",
			body:       map[string]any{"raw_name": "Corning flask", "mode": "cheapest"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "missing raw_name returns 422",
			body:       map[string]any{},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newPriceAPI(t, newTestEngine(t, engine.WithCollector(collector)))
			resp := api.Post("/api/v1/price", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}

func TestPriceHandler_PriceErrors(t *testing.T) {
	t.Parallel()

	result := &domain.PricingResult{ProductKey: "ABC-789_pack_20", Outcome: domain.OutcomeNoMatch}

	tests := []struct {
		name       string
		pricer     stubPricer
		wantStatus int
		wantBody   string
	}{
		{
			name:       "side effect failure returns result with warning",
			pricer:     stubPricer{result: result, err: errors.New("saving result: disk full")},
			wantStatus: http.StatusOK,
			wantBody:   `"warnings":["saving result: disk full"]`,
		},
		{
			name:       "cancelled run returns 503",
			pricer:     stubPricer{err: context.Canceled},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `pricing cancelled`,
		},
		{
			name:       "failed run returns 500",
			pricer:     stubPricer{err: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `pricing failed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := newPriceAPI(t, tt.pricer).Post("/api/v1/price", map[string]any{"raw_name": "VWR ABC-789"})
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestPriceHandler_Aggregate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "outlier rejected",
			body:       map[string]any{"prices": []string{"45.00", "$48.50", "200"}},
			wantStatus: http.StatusOK,
			wantBody: []string{
				`"found":true`,
				`"value":"46.75"`,
				`"contributing_sources":2`,
				`"rejected_outliers":1`,
			},
		},
		{
			name:       "lab equipment profile drops sub-dollar prices",
			body:       map[string]any{"prices": []string{"0.50"}, "profile": "lab_equipment"},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"found":false`},
		},
		{
			name:       "consumer profile drops prices above range",
			body:       map[string]any{"prices": []string{"12000", "15000"}},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"found":false`},
		},
		{
			name:       "unparseable price returns 422",
			body:       map[string]any{"prices": []string{"45.00", "n/a"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{`prices[1]: invalid price`},
		},
		{
			name:       "negative price returns 422",
			body:       map[string]any{"prices": []string{"-5"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{`prices[0]: invalid price`},
		},
		{
			name:       "exponent and decimal comma return 422",
			body:       map[string]any{"prices": []string{"1e3", "€45,00"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{`prices[0]: invalid price`},
		},
		{
			name:       "extra precision is kept until rounding",
			body:       map[string]any{"prices": []string{"45.999", "46.001"}},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"value":"46.00"`, `"contributing_sources":2`},
		},
		{
			name:       "empty list returns 422",
			body:       map[string]any{"prices": []string{}},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown profile returns 422",
			body:       map[string]any{"prices": []string{"10"}, "profile": "wholesale"},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := newPriceAPI(t, stubPricer{}).Post("/api/v1/aggregate", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}
