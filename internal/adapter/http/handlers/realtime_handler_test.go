package handlers

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"labtracker/internal/infrastructure/realtime"
	"labtracker/internal/usecase/interfaces"
)

// nextEvent reads SSE lines until an event of the given name arrives and
// returns its data line.
func nextEvent(t *testing.T, sc *bufio.Scanner, name string) string {
	t.Helper()
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "event:"+name {
			continue
		}
		if !sc.Scan() {
			break
		}
		return strings.TrimPrefix(sc.Text(), "data:")
	}
	t.Fatalf("stream ended before %q event: %v", name, sc.Err())
	return ""
}

func TestRealtimeHandler_StreamQuotes(t *testing.T) {
	broker := realtime.NewMemoryBroker(nil)
	defer broker.Close()
	h := NewRealtimeHandler(broker, time.Hour, nil)

	r := newRouter(&customerCaller)
	r.GET("/v1/realtime/quotes", h.StreamQuotes)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/realtime/quotes", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("unexpected content type %q", ct)
	}

	sc := bufio.NewScanner(res.Body)
	if data := nextEvent(t, sc, "ready"); !strings.Contains(data, `"u-1"`) {
		t.Fatalf("unexpected ready payload %q", data)
	}

	_ = broker.Publish(ctx, interfaces.QuoteEvent{Type: interfaces.QuoteEventUpdated, QuoteID: "q-other", UserID: "u-2"})
	_ = broker.Publish(ctx, interfaces.QuoteEvent{Type: interfaces.QuoteEventUpdated, QuoteID: "q-mine", UserID: "u-1"})

	data := nextEvent(t, sc, "quote")
	if !strings.Contains(data, `"q-mine"`) {
		t.Fatalf("expected only in-scope events, got %q", data)
	}

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for broker.Subscribers() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("subscription not released after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRealtimeHandler_Unauthenticated(t *testing.T) {
	broker := realtime.NewMemoryBroker(nil)
	defer broker.Close()
	h := NewRealtimeHandler(broker, 0, nil)

	r := newRouter(nil)
	r.GET("/v1/realtime/quotes", h.StreamQuotes)

	if w := serve(r, http.MethodGet, "/v1/realtime/quotes", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if broker.Subscribers() != 0 {
		t.Fatalf("no subscription expected")
	}
}
