package sources_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/sources"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/logger"
)

const offersBody = `{
  "offers": [
    {
      "title": "Corning 431080 T-75 Flask, Case of 100",
      "price": "$1,299.00",
      "url": "https://www.fishersci.com/shop/products/431080"
    },
    {
      "title": "Corning T-75 flask",
      "price": 48.5,
      "manufacturer": "Corning",
      "part_number": "431080",
      "pack_quantity": 5,
      "url": "https://www.amazon.com/dp/B000"
    },
    {
      "title": "Catalogue listing",
      "price": null,
      "url": "https://us.vwr.com/store/product/1"
    }
  ]
}`

func TestHTTPSource_Query(t *testing.T) {
	t.Parallel()

	var gotQuery, gotID, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/offers", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotID = r.URL.Query().Get("id")
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(offersBody))
	}))
	t.Cleanup(srv.Close)

	src := sources.NewHTTPSource("catalog", srv.URL,
		sources.WithHeaders(map[string]string{"X-Api-Key": "secret"}),
		sources.WithHTTPLogger(logger.Discard()),
	)
	obs, err := src.Query(context.Background(), "Corning T-75", "431080")
	require.NoError(t, err)

	assert.Equal(t, "Corning T-75", gotQuery)
	assert.Equal(t, "431080", gotID)
	assert.Equal(t, "secret", gotKey)

	require.Len(t, obs, 3)

	assert.Equal(t, "catalog", obs[0].SourceID)
	require.NotNil(t, obs[0].Price)
	assert.Equal(t, "1299.00", obs[0].Price.StringFixed(2))
	assert.Equal(t, "T-75", obs[0].PartNumber)
	assert.Equal(t, 100, obs[0].PackQuantity)

	require.NotNil(t, obs[1].Price)
	assert.Equal(t, "48.50", obs[1].Price.StringFixed(2))
	assert.Equal(t, 5, obs[1].PackQuantity)
	assert.Equal(t, "Corning", obs[1].Manufacturer)

	assert.Nil(t, obs[2].Price)
}

func TestHTTPSource_SupplierOnly(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(offersBody))
	}))
	t.Cleanup(srv.Close)

	src := sources.NewHTTPSource("catalog", srv.URL,
		sources.WithSupplierOnly(true),
		sources.WithHTTPLogger(logger.Discard()),
	)
	obs, err := src.Query(context.Background(), "flask", "")
	require.NoError(t, err)

	require.Len(t, obs, 2)
	assert.Equal(t, "https://www.fishersci.com/shop/products/431080", obs[0].URL)
	assert.Equal(t, "https://us.vwr.com/store/product/1", obs[1].URL)
}

func TestHTTPSource_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		status        int
		body          string
		wantPermanent bool
	}{
		{name: "not found is permanent", status: http.StatusNotFound, wantPermanent: true},
		{name: "unauthorized is permanent", status: http.StatusUnauthorized, wantPermanent: true},
		{name: "rate limited is retryable", status: http.StatusTooManyRequests},
		{name: "server error is retryable", status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(srv.Close)

			_, err := sources.NewHTTPSource("catalog", srv.URL).Query(context.Background(), "x", "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "catalog returned status")
			assert.Equal(t, tt.wantPermanent, sources.IsPermanent(err))
		})
	}
}

func TestHTTPSource_MalformedPrice(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"offers":[{"title":"Tips","price":"call for price"}]}`))
	}))
	t.Cleanup(srv.Close)

	obs, err := sources.NewHTTPSource("catalog", srv.URL).Query(context.Background(), "tips", "")
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Nil(t, obs[0].Price)
}
