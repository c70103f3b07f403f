package response_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/headcount/core/response"
)

type countEvent struct {
	Count uint32 `json:"count"`
}

func TestSSE_ProtocolFormat(t *testing.T) {
	t.Parallel()

	t.Run("json_events_with_sequential_ids", func(t *testing.T) {
		t.Parallel()

		events := make(chan countEvent, 2)
		events <- countEvent{Count: 1}
		events <- countEvent{Count: 2}
		close(events)

		resp := response.SSE(events, response.WithEventName("count"), response.WithoutKeepAlive())
		w := httptest.NewRecorder()
		require.NoError(t, resp(w, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
		assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))

		out := w.Body.String()
		assert.True(t, strings.HasPrefix(out, ": connected\n\n"))
		assert.Contains(t, out, "event: count\nid: 1\ndata: {\"count\":1}\n\n")
		assert.Contains(t, out, "event: count\nid: 2\ndata: {\"count\":2}\n\n")
	})

	t.Run("string_payload_is_written_verbatim", func(t *testing.T) {
		t.Parallel()

		events := make(chan string, 1)
		events <- "hello"
		close(events)

		w := httptest.NewRecorder()
		require.NoError(t, response.SSE(events, response.WithoutKeepAlive())(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Contains(t, w.Body.String(), "data: hello\n\n")
	})

	t.Run("retry_field", func(t *testing.T) {
		t.Parallel()

		events := make(chan string)
		close(events)

		w := httptest.NewRecorder()
		require.NoError(t, response.SSE(events,
			response.WithReconnectTime(5000),
			response.WithoutKeepAlive(),
		)(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Contains(t, w.Body.String(), "retry: 5000\n\n")
	})
}

func TestSSE_StopsOnClientDisconnect(t *testing.T) {
	t.Parallel()

	events := make(chan string)
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	done := make(chan error, 1)
	go func() {
		done <- response.SSE(events, response.WithoutKeepAlive())(httptest.NewRecorder(), req)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("SSE response did not return after client disconnect")
	}
}

func TestSSE_KeepAlive(t *testing.T) {
	t.Parallel()

	events := make(chan string)
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	require.NoError(t, response.SSE(events, response.WithKeepAlive(20*time.Millisecond))(rec, req))

	assert.Contains(t, rec.Body.String(), ": keepalive\n\n")
}
