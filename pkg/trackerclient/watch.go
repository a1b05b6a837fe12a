package trackerclient

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	response "labtracker/internal/adapter/http/dto/response"

	"go.uber.org/zap"
)

// QuoteEvent is a change notification from the realtime feed.
type QuoteEvent struct {
	Type    string `json:"type"`
	QuoteID string `json:"quote_id"`
	UserID  string `json:"user_id"`
	LabID   string `json:"lab_id"`
	Status  string `json:"status"`
}

type sseEvent struct {
	name string
	data string
}

// WatchPipeline calls fn with a fresh pipeline summary once the feed is open
// and again after every quote change. Each change also marks the quote list
// stale. It returns when ctx is done, the stream ends or fn fails.
func (c *Client) WatchPipeline(ctx context.Context, fn func(response.PipelineResponse) error) error {
	return c.watch(ctx, func(ev sseEvent) error {
		switch ev.name {
		case "quote":
			var qe QuoteEvent
			if err := json.Unmarshal([]byte(ev.data), &qe); err == nil {
				c.log.Debug("quote changed", zap.String("quote_id", qe.QuoteID), zap.String("type", qe.Type))
			}
			c.quotes.Invalidate()
		case "ready":
		default:
			return nil
		}
		summary, err := c.Pipeline(ctx)
		if err != nil {
			return err
		}
		return fn(summary)
	})
}

func (c *Client) watch(ctx context.Context, handle func(sseEvent) error) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/realtime/quotes", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	// the stream outlives any client-wide timeout
	hc := *c.http
	hc.Timeout = 0
	res, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return decodeError(res)
	}

	sc := bufio.NewScanner(res.Body)
	var ev sseEvent
	var data []string
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if ev.name != "" || len(data) > 0 {
				ev.data = strings.Join(data, "\n")
				if err := handle(ev); err != nil {
					return err
				}
			}
			ev, data = sseEvent{}, nil
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			ev.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return sc.Err()
}
