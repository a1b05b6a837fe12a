package trackerclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	response "labtracker/internal/adapter/http/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchPipeline(t *testing.T) {
	var summaries atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/realtime/quotes", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = fmt.Fprint(w, "event:ready\ndata:{\"user_id\":\"u-1\"}\n\n")
		_, _ = fmt.Fprint(w, ": comment\n\n")
		_, _ = fmt.Fprint(w, "event:ping\ndata:now\n\n")
		_, _ = fmt.Fprint(w, "event:quote\ndata:{\"type\":\"UPDATE\",\"quote_id\":\"q-1\",\"status\":\"paid\"}\n\n")
	})
	mux.HandleFunc("GET /v1/dashboard/pipeline", func(w http.ResponseWriter, r *http.Request) {
		n := summaries.Add(1)
		_, _ = fmt.Fprintf(w, `{"counts":{"paid":%d},"order":["paid"],"total":%d}`, n, n)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	c.quotes.Set(nil)
	require.False(t, c.quotes.Stale())

	var got []int
	err := c.WatchPipeline(context.Background(), func(p response.PipelineResponse) error {
		got = append(got, p.Total)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got, "summary is fetched on ready and on every quote event")
	assert.True(t, c.quotes.Stale(), "quote events invalidate the cached list")
}

func TestWatchPipeline_CallbackErrorStops(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/realtime/quotes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "event:ready\ndata:{}\n\nevent:quote\ndata:{}\n\n")
	})
	mux.HandleFunc("GET /v1/dashboard/pipeline", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"counts":{},"order":[],"total":0}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	stop := errors.New("stop")
	calls := 0
	err := New(srv.URL).WatchPipeline(context.Background(), func(response.PipelineResponse) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestWatchPipeline_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"code":"UNAUTHORIZED","message":"Missing or invalid bearer token"}`)
	}))
	defer srv.Close()

	err := New(srv.URL).WatchPipeline(context.Background(), func(response.PipelineResponse) error { return nil })
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
}
