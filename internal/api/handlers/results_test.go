package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/api/handlers"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/store"
	storeMocks "github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/store/mocks"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

func newResultsAPI(t *testing.T, setup func(*storeMocks.MockStore)) humatest.TestAPI {
	t.Helper()

	ms := storeMocks.NewMockStore(t)
	setup(ms)

	_, api := humatest.New(t)
	handlers.RegisterResultRoutes(api, handlers.NewResultsHandler(ms))
	return api
}

func TestResultsHandler_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		setupMock  func(*storeMocks.MockStore)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "no filters returns results",
			query: "",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListResults(mock.Anything, mock.Anything).
					Return([]domain.PricingResult{
						{ID: "r1", ProductKey: "ABC-789_pack_20", FinalPrice: decimal.RequireFromString("28.5")},
					}, 1, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total":1`,
		},
		{
			name:  "default limit is reported",
			query: "",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().ListResults(mock.Anything, mock.Anything).Return(nil, 0, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"limit":50`,
		},
		{
			name:  "empty store returns empty list",
			query: "",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().ListResults(mock.Anything, mock.Anything).Return(nil, 0, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"results":[]`,
		},
		{
			name:  "product key and outcome filters",
			query: "?product_key=ABC-789_pack_20&outcome=priced",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListResults(mock.Anything, mock.MatchedBy(func(q *store.ResultQuery) bool {
						return q.ProductKey != nil && *q.ProductKey == "ABC-789_pack_20" &&
							q.Outcome != nil && *q.Outcome == "priced"
					})).
					Return(nil, 0, nil).
					Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "condition and confidence filters",
			query: "?condition=new,used&min_confidence=0.5",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListResults(mock.Anything, mock.MatchedBy(func(q *store.ResultQuery) bool {
						return len(q.Conditions) == 2 &&
							q.MinConfidence != nil && *q.MinConfidence == 0.5
					})).
					Return(nil, 0, nil).
					Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "pagination and order",
			query: "?limit=10&offset=20&order_by=final_price",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListResults(mock.Anything, mock.MatchedBy(func(q *store.ResultQuery) bool {
						return q.Limit == 10 && q.Offset == 20 && q.OrderBy == "final_price"
					})).
					Return(nil, 0, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"limit":10`,
		},
		{
			name:       "invalid outcome returns 422",
			query:      "?outcome=sold",
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "limit above maximum returns 422",
			query:      "?limit=1000",
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:  "store error returns 500",
			query: "",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListResults(mock.Anything, mock.Anything).
					Return(nil, 0, assert.AnError).
					Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `result query failed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := newResultsAPI(t, tt.setupMock).Get("/api/v1/results" + tt.query)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestResultsHandler_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "found",
			wantStatus: http.StatusOK,
			wantBody:   `"product_key":"ABC-789_pack_20"`,
		},
		{
			name:       "not found returns 404",
			err:        fmt.Errorf("getting result: %w", store.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   `result not found`,
		},
		{
			name:       "store error returns 500",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `result lookup failed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newResultsAPI(t, func(m *storeMocks.MockStore) {
				var r *domain.PricingResult
				if tt.err == nil {
					r = &domain.PricingResult{ProductKey: "ABC-789_pack_20", Outcome: domain.OutcomePriced}
				}
				m.EXPECT().GetResult(mock.Anything, "ABC-789_pack_20").Return(r, tt.err).Once()
			})

			resp := api.Get("/api/v1/results/ABC-789_pack_20")
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestResultsHandler_ListObservations(t *testing.T) {
	t.Parallel()

	t.Run("default limit", func(t *testing.T) {
		t.Parallel()

		api := newResultsAPI(t, func(m *storeMocks.MockStore) {
			m.EXPECT().
				ListObservations(mock.Anything, "ABC-789_pack_20", 100).
				Return([]domain.SourceObservation{{SourceID: "vwr.com", Title: "VWR ABC-789"}}, nil).
				Once()
		})

		resp := api.Get("/api/v1/results/ABC-789_pack_20/observations")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"source_id":"vwr.com"`)
	})

	t.Run("explicit limit and empty result", func(t *testing.T) {
		t.Parallel()

		api := newResultsAPI(t, func(m *storeMocks.MockStore) {
			m.EXPECT().ListObservations(mock.Anything, "k", 5).Return(nil, nil).Once()
		})

		resp := api.Get("/api/v1/results/k/observations?limit=5")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"observations":[]`)
	})

	t.Run("store error returns 500", func(t *testing.T) {
		t.Parallel()

		api := newResultsAPI(t, func(m *storeMocks.MockStore) {
			m.EXPECT().ListObservations(mock.Anything, "k", 100).Return(nil, assert.AnError).Once()
		})

		resp := api.Get("/api/v1/results/k/observations")
		require.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}
