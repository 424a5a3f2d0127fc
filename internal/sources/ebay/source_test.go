package ebay_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/sources"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/sources/ebay"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/sources/ebay/mocks"
)

func TestSource_Query(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		identifier string
		wantGTIN   string
	}{
		{name: "part number is not a gtin", identifier: "431080"},
		{name: "ean-13 barcode", identifier: "0012345678905", wantGTIN: "0012345678905"},
		{name: "upc-a barcode", identifier: "012345678905", wantGTIN: "012345678905"},
		{name: "alphanumeric identifier", identifier: "ABC-789-00001"},
		{name: "no identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := mocks.NewMockClient(t)
			client.EXPECT().
				Search(mock.Anything, ebay.SearchRequest{
					Query:      "Corning flask",
					GTIN:       tt.wantGTIN,
					CategoryID: "181",
					Limit:      5,
					Filter:     "buyingOptions:{FIXED_PRICE}",
				}).
				Return(&ebay.SearchResponse{
					Items: []ebay.ItemSummary{{Title: "Corning flask", Price: &ebay.ItemPrice{Value: "45.00"}}},
					Total: 1,
				}, nil)

			src := ebay.NewSource(client, ebay.WithCategory("181"), ebay.WithLimit(5))
			obs, err := src.Query(context.Background(), "Corning flask", tt.identifier)
			require.NoError(t, err)
			require.Len(t, obs, 1)
			assert.Equal(t, "ebay", obs[0].SourceID)
		})
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		err           error
		wantPermanent bool
	}{
		{name: "client error is permanent", err: &ebay.APIError{StatusCode: 400}, wantPermanent: true},
		{name: "throttling is retryable", err: &ebay.APIError{StatusCode: 429}},
		{name: "transport error is retryable", err: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := mocks.NewMockClient(t)
			client.EXPECT().Search(mock.Anything, mock.Anything).Return(nil, tt.err)

			src := ebay.NewSource(client, ebay.WithSourceID("ebay-us"))
			assert.Equal(t, "ebay-us", src.ID())

			_, err := src.Query(context.Background(), "tips", "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "searching eBay")
			assert.Equal(t, tt.wantPermanent, sources.IsPermanent(err))
		})
	}
}
