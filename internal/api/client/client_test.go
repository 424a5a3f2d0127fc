package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListSources(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"internal"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListSources(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 500)")
	assert.False(t, IsNotFound(err))
}

func TestClient_GetResultNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/results/missing_key", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetResult(context.Background(), "missing_key")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClient_ListResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/results", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "priced", q.Get("outcome"))
		assert.Equal(t, "new,used", q.Get("condition"))
		assert.Equal(t, "0.6", q.Get("min_confidence"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Empty(t, q.Get("offset"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ResultsResponse{
			Results: []domain.PricingResult{{ID: "r1", FinalPrice: decimal.RequireFromString("23.38")}},
			Total:   1,
			Limit:   10,
		})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).ListResults(context.Background(), &ListResultsParams{
		Outcome:       "priced",
		Conditions:    []string{"new", "used"},
		MinConfidence: 0.6,
		Limit:         10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Results, 1)
	assert.True(t, decimal.RequireFromString("23.38").Equal(resp.Results[0].FinalPrice))
}

func TestClient_ListObservations(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/results/k1/observations", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"product_key":"k1","observations":[{"source_id":"vwr.com","title":"VWR"}]}`))
	}))
	defer srv.Close()

	obs, err := New(srv.URL).ListObservations(context.Background(), "k1", 5)
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, "vwr.com", obs[0].SourceID)
}

func TestClient_Price(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/price", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Corning flask", body["raw_name"])
		assert.Equal(t, "best_match", body["mode"])
		assert.Len(t, body["observations"], 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"outcome":"priced","final_price":"22.5","warnings":["saving result: boom"]}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Price(context.Background(), &PriceRequest{
		ItemDescriptor: domain.ItemDescriptor{RawName: "Corning flask"},
		Mode:           domain.ModeBestMatch,
		Observations:   []Observation{{Title: "Corning flask", Price: "$45.00"}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePriced, resp.Outcome)
	assert.Equal(t, "22.50", resp.FinalPrice.StringFixed(2))
	assert.Equal(t, []string{"saving result: boom"}, resp.Warnings)
}

func TestClient_ExtractAndNormalize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/extract":
			_, _ = w.Write([]byte(`{"raw_name":"x","part_number":"ABC-789","product_key":"ABC-789","condition":"unknown","is_reagent":true}`))
		case "/api/v1/normalize":
			_, _ = w.Write([]byte(`{"input":"vwr","canonical":"Avantor","matched":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	attrs, err := c.Extract(context.Background(), domain.ItemDescriptor{RawName: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ABC-789", attrs.PartNumber)
	assert.True(t, attrs.IsReagent)

	norm, err := c.Normalize(context.Background(), "vwr")
	require.NoError(t, err)
	assert.Equal(t, "Avantor", norm.Canonical)
	assert.True(t, norm.Matched)
}

func TestClient_Aggregate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "lab_equipment", body["profile"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"found":true,"value":"46.75","contributing_sources":2,"rejected_outliers":1}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Aggregate(
		context.Background(),
		[]string{"45", "48.50", "200"},
		domain.ProfileLabEquipment,
	)
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, "46.75", resp.Value)
	assert.Equal(t, 1, resp.RejectedOutliers)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	c := New("http://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, c.httpClient)
}
