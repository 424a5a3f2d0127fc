package ebay_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/sources/ebay"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/sources/ebay/mocks"
)

func TestBrowseClient_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		req           ebay.SearchRequest
		handler       http.HandlerFunc
		tokenErr      error
		wantErr       bool
		errContain    string
		wantRetryable bool
		wantItems     int
	}{
		{
			name: "successful search",
			req:  ebay.SearchRequest{Query: "Corning T-75 flask", Limit: 10, Filter: "buyingOptions:{FIXED_PRICE}"},
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
				assert.Equal(t, "EBAY_US", r.Header.Get("X-EBAY-C-MARKETPLACE-ID"))
				assert.Equal(t, "Corning T-75 flask", r.URL.Query().Get("q"))
				assert.Equal(t, "10", r.URL.Query().Get("limit"))
				assert.Equal(t, "buyingOptions:{FIXED_PRICE}", r.URL.Query().Get("filter"))
				assert.Empty(t, r.URL.Query().Get("gtin"))

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"itemSummaries": [
						{"itemId": "v1|1|0", "title": "Corning 431080 flask", "price": {"value": "45.00", "currency": "USD"}},
						{"itemId": "v1|2|0", "title": "T-75 flasks case of 100", "price": {"value": "310.00", "currency": "USD"}}
					],
					"total": 2
				}`))
			},
			wantItems: 2,
		},
		{
			name: "gtin and default limit",
			req:  ebay.SearchRequest{Query: "flask", GTIN: "0012345678905"},
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "0012345678905", r.URL.Query().Get("gtin"))
				assert.Equal(t, "20", r.URL.Query().Get("limit"))
				_, _ = w.Write([]byte(`{"total": 0}`))
			},
		},
		{
			name: "unauthorized",
			req:  ebay.SearchRequest{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"errors": [{"message": "Invalid access token"}]}`))
			},
			wantErr:    true,
			errContain: "status 401",
		},
		{
			name: "rate limited",
			req:  ebay.SearchRequest{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantErr:       true,
			errContain:    "status 429",
			wantRetryable: true,
		},
		{
			name: "server error",
			req:  ebay.SearchRequest{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:       true,
			errContain:    "status 500",
			wantRetryable: true,
		},
		{
			name:       "token provider error",
			req:        ebay.SearchRequest{Query: "test"},
			handler:    func(http.ResponseWriter, *http.Request) {},
			tokenErr:   errors.New("token fetch failed"),
			wantErr:    true,
			errContain: "getting auth token",
		},
		{
			name: "invalid JSON",
			req:  ebay.SearchRequest{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("not valid json"))
			},
			wantErr:    true,
			errContain: "parsing search response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			tokens := mocks.NewMockTokenProvider(t)
			if tt.tokenErr != nil {
				tokens.EXPECT().Token(mock.Anything).Return("", tt.tokenErr)
			} else {
				tokens.EXPECT().Token(mock.Anything).Return("test-token", nil)
			}

			client := ebay.NewBrowseClient(tokens, ebay.WithBrowseURL(srv.URL))
			resp, err := client.Search(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				var apiErr *ebay.APIError
				if errors.As(err, &apiErr) {
					assert.Equal(t, tt.wantRetryable, apiErr.Retryable())
				}
				return
			}

			require.NoError(t, err)
			assert.Len(t, resp.Items, tt.wantItems)
			assert.Equal(t, tt.wantItems, resp.Total)
		})
	}
}

func TestBrowseClient_Marketplace(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "EBAY_GB", r.Header.Get("X-EBAY-C-MARKETPLACE-ID"))
		_, _ = w.Write([]byte(`{"itemSummaries": []}`))
	}))
	defer srv.Close()

	tokens := mocks.NewMockTokenProvider(t)
	tokens.EXPECT().Token(mock.Anything).Return("tok", nil)

	client := ebay.NewBrowseClient(tokens,
		ebay.WithBrowseURL(srv.URL),
		ebay.WithMarketplace("EBAY_GB"),
	)
	_, err := client.Search(context.Background(), ebay.SearchRequest{Query: "beaker"})
	require.NoError(t, err)
}
