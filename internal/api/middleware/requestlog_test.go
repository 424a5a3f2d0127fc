package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		status        int
		providedReqID string
		wantLogFields []string
	}{
		{
			name:   "logs GET request with generated ID",
			method: http.MethodGet,
			path:   "/api/v1/results",
			status: http.StatusOK,
			wantLogFields: []string{
				"level=INFO",
				"method=GET",
				"path=/api/v1/results",
				"status=200",
				"duration_ms=",
				"request_id=",
			},
		},
		{
			name:   "logs client errors at warn",
			method: http.MethodPost,
			path:   "/api/v1/price",
			status: http.StatusUnprocessableEntity,
			wantLogFields: []string{
				"level=WARN",
				"method=POST",
				"status=422",
			},
		},
		{
			name:   "logs server errors at error",
			method: http.MethodPost,
			path:   "/api/v1/price",
			status: http.StatusInternalServerError,
			wantLogFields: []string{
				"level=ERROR",
				"status=500",
			},
		},
		{
			name:          "uses provided request ID",
			method:        http.MethodGet,
			path:          "/test",
			status:        http.StatusOK,
			providedReqID: "custom-req-id-123",
			wantLogFields: []string{
				"request_id=custom-req-id-123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.providedReqID != "" {
				req.Header.Set(requestIDHeader, tt.providedReqID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var ctxID string
			handler := RequestLog(logger)(func(c echo.Context) error {
				ctxID = RequestIDFromContext(c.Request().Context())
				return c.NoContent(tt.status)
			})

			require.NoError(t, handler(c))

			logOutput := buf.String()
			for _, field := range tt.wantLogFields {
				assert.Contains(t, logOutput, field)
			}

			respID := rec.Header().Get(requestIDHeader)
			assert.NotEmpty(t, respID)
			assert.Equal(t, respID, RequestID(c))
			assert.Equal(t, respID, ctxID)

			if tt.providedReqID != "" {
				assert.Equal(t, tt.providedReqID, respID)
			}
		})
	}
}

func TestRequestLog_HandlerErrorIsWritten(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/missing", http.NoBody)
	rec := httptest.NewRecorder()

	handler := RequestLog(logger)(func(echo.Context) error {
		return echo.ErrNotFound
	})

	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "status=404")
}

func TestRequestLog_ProbeFirstSuccessLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	handler := RequestLog(logger)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	serve := func() {
		req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
		require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
	}

	serve()
	assert.Contains(t, buf.String(), "path=/healthz")
	firstLen := buf.Len()

	serve()
	serve()
	assert.Equal(t, firstLen, buf.Len(), "repeated successful probes should not be logged")
}

func TestRequestLog_ProbeFailureAlwaysLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	handler := RequestLog(logger)(func(c echo.Context) error {
		return c.NoContent(http.StatusServiceUnavailable)
	})

	req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
	assert.Contains(t, buf.String(), "status=503")
	firstLen := buf.Len()

	req = httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
	assert.Greater(t, buf.Len(), firstLen)
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	t.Parallel()

	assert.Empty(t, RequestIDFromContext(context.Background()))
}
