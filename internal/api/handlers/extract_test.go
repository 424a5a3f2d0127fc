package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/api/handlers"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/extract"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/normalize"
)

func newExtractAPI(t *testing.T) humatest.TestAPI {
	t.Helper()

	h := handlers.NewExtractHandler(extract.New(normalize.New(nil)))

	_, api := humatest.New(t)
	handlers.RegisterExtractRoutes(api, h)
	return api
}

func TestExtractHandler_Extract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantBody   []string
	}{
		{
			name: "catalog number and pack quantity",
			body: map[string]any{
				"raw_name": "VWR Catalog # ABC-789 Reagent Bottles Case of 20",
			},
			wantStatus: http.StatusOK,
			wantBody: []string{
				`"part_number":"ABC-789"`,
				`"pack_quantity":20`,
				`"unit_type":"bottles"`,
				`"product_key":"ABC-789_pack_20"`,
				`"is_reagent":false`,
			},
		},
		{
			name: "manufacturer hint is canonicalized",
			body: map[string]any{
				"raw_name":          "TF-200 Pipette Tips 200uL pack of 96",
				"manufacturer_hint": "fisher",
			},
			wantStatus: http.StatusOK,
			wantBody: []string{
				`"manufacturer":"Thermo Fisher Scientific"`,
				`"product_key":"Thermo Fisher Scientific_TF-200_pack_96"`,
			},
		},
		{
			name: "explicit reagent flag",
			body: map[string]any{
				"raw_name":   "Tris Buffer 1L",
				"is_reagent": true,
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"is_reagent":true`},
		},
		{
			name:       "missing raw_name returns 422",
			body:       map[string]any{},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{`expected required property raw_name to be present`},
		},
		{
			name:       "empty raw_name returns 422",
			body:       map[string]any{"raw_name": ""},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{`expected length >= 1`},
		},
		{
			name:       "invalid JSON returns 400",
			body:       strings.NewReader(`not json`),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := newExtractAPI(t).Post("/api/v1/extract", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}

func TestExtractHandler_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "alias resolves to canonical name",
			body:       map[string]any{"name": "VWR International"},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"canonical":"Avantor"`, `"matched":true`},
		},
		{
			name:       "unknown name is returned trimmed",
			body:       map[string]any{"name": "  Zymo Research "},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"canonical":"Zymo Research"`, `"matched":false`},
		},
		{
			name:       "whitespace only returns 422",
			body:       map[string]any{"name": "   "},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{`non-whitespace`},
		},
		{
			name:       "missing name returns 422",
			body:       map[string]any{},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := newExtractAPI(t).Post("/api/v1/normalize", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}
