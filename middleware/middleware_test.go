package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/headcount/core/handler"
	"github.com/dmitrymomot/headcount/core/logger"
	"github.com/dmitrymomot/headcount/core/response"
	"github.com/dmitrymomot/headcount/core/router"
	"github.com/dmitrymomot/headcount/middleware"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates_id", func(t *testing.T) {
		t.Parallel()

		var seen string
		r := router.New[*router.Context](router.WithMiddleware(middleware.RequestID[*router.Context]()))
		r.Get("/", func(ctx *router.Context) handler.Response {
			seen, _ = middleware.GetRequestID(ctx)
			return response.NoContent()
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})

	t.Run("reuses_incoming_id", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context](router.WithMiddleware(
			middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{UseExisting: true}),
		))
		r.Get("/", func(ctx *router.Context) handler.Response {
			return response.NoContent()
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
	})
}

func TestLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))

	r := router.New[*router.Context](router.WithMiddleware(
		middleware.RequestID[*router.Context](),
		middleware.LoggingWithLogger[*router.Context](log),
	))
	r.Get("/count", func(ctx *router.Context) handler.Response {
		return response.JSON(map[string]int{"count": 2})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/count", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "HTTP request completed", rec["msg"])
	assert.Equal(t, "/count", rec["path"])
	assert.Equal(t, float64(http.StatusOK), rec["status_code"])
	assert.Equal(t, w.Header().Get("X-Request-ID"), rec["request_id"])
}
