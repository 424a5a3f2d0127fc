package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/metrics"
)

func TestRecovery_NoPanic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Recovery(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, buf.String(), "no panic should produce no log output")
}

func TestRecovery_Panic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		method  string
		path    string
		value   any
		wantLog []string
	}{
		{
			name:    "string panic",
			method:  http.MethodGet,
			path:    "/panic",
			value:   "test panic",
			wantLog: []string{"panic recovered", "test panic", "path=/panic"},
		},
		{
			name:    "non-string panic",
			method:  http.MethodPost,
			path:    "/api/v1/price",
			value:   42,
			wantLog: []string{"42", "method=POST"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			before := ptestutil.ToFloat64(metrics.HTTPPanicsTotal)

			handler := Recovery(logger)(func(echo.Context) error {
				panic(tt.value)
			})

			require.NoError(t, handler(c))
			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			var body problem
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, http.StatusInternalServerError, body.Status)
			assert.Equal(t, "internal server error", body.Detail)

			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
			assert.Greater(t, ptestutil.ToFloat64(metrics.HTTPPanicsTotal), before)
		})
	}
}

func TestRecovery_IncludesRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	e.Use(RequestLog(logger), Recovery(logger))
	e.GET("/boom", func(echo.Context) error { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", http.NoBody)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "request_id=req-42")
}
