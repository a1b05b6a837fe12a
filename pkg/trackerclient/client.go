// Package trackerclient is a Go client for the lab tracker API. Quote lists
// are cached and mutated optimistically: the cache shows the change at once
// and rolls back when the server rejects it.
package trackerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	request "labtracker/internal/adapter/http/dto/request"
	response "labtracker/internal/adapter/http/dto/response"
	"labtracker/internal/infrastructure/logger"
	"labtracker/internal/querycache"

	"go.uber.org/zap"
)

const (
	headerSessionID = "X-Session-ID"
	headerDevUserID = "X-User-ID"
)

// APIError is a non-2xx reply. Code and Message come from the error body
// when it has one.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("trackerclient: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("trackerclient: %d %s: %s", e.Status, e.Code, e.Message)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithToken sends token as a bearer credential.
func WithToken(token string) Option { return func(c *Client) { c.token = token } }

// WithSession names the session used for impersonation.
func WithSession(id string) Option { return func(c *Client) { c.session = id } }

// WithDevUser identifies the caller on servers running with auth disabled.
func WithDevUser(id string) Option { return func(c *Client) { c.devUser = id } }

func WithLogger(log *zap.Logger) Option { return func(c *Client) { c.log = log } }

type Client struct {
	baseURL string
	http    *http.Client
	token   string
	session string
	devUser string
	log     *zap.Logger

	quotes *querycache.Collection[response.QuoteResponse]
}

// New returns a client for the API rooted at baseURL (without /v1).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	c.log = logger.OrNop(c.log).Named("trackerclient")
	c.quotes = querycache.New(c.fetchQuotes)
	return c
}

// Quotes returns the cached quote list, loading it when stale.
func (c *Client) Quotes(ctx context.Context) ([]response.QuoteResponse, error) {
	return c.quotes.Get(ctx)
}

// CachedQuotes returns what the cache currently shows without a request.
func (c *Client) CachedQuotes() []response.QuoteResponse {
	return c.quotes.Snapshot()
}

// RefreshQuotes forces a reload of the quote list.
func (c *Client) RefreshQuotes(ctx context.Context) error {
	return c.quotes.Refetch(ctx)
}

func (c *Client) fetchQuotes(ctx context.Context) ([]response.QuoteResponse, error) {
	var out []response.QuoteResponse
	if err := c.do(ctx, http.MethodGet, "/v1/quotes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetQuote(ctx context.Context, id string) (response.QuoteResponse, error) {
	var out response.QuoteResponse
	err := c.do(ctx, http.MethodGet, "/v1/quotes/"+url.PathEscape(id), nil, &out)
	return out, err
}

// CreateQuote posts a draft quote and marks the list stale.
func (c *Client) CreateQuote(ctx context.Context, req request.CreateQuoteRequest) (response.QuoteResponse, error) {
	var out response.QuoteResponse
	if err := c.do(ctx, http.MethodPost, "/v1/quotes", req, &out); err != nil {
		return out, err
	}
	c.quotes.Invalidate()
	return out, nil
}

// DeleteQuote removes the quote from the cache at once and restores it when
// the server refuses.
func (c *Client) DeleteQuote(ctx context.Context, id string) error {
	patch := querycache.RemoveWhere(func(q response.QuoteResponse) bool { return q.ID == id })
	return c.mutate(ctx, "delete", id, patch, func(ctx context.Context) error {
		return c.do(ctx, http.MethodDelete, "/v1/quotes/"+url.PathEscape(id), nil, nil)
	})
}

// UpdateQuoteStatus shows the new status at once and restores the previous
// one when the server refuses.
func (c *Client) UpdateQuoteStatus(ctx context.Context, id, status string) error {
	patch := querycache.UpdateWhere(
		func(q response.QuoteResponse) bool { return q.ID == id },
		func(q response.QuoteResponse) response.QuoteResponse { q.Status = status; return q },
	)
	body := request.UpdateQuoteStatusRequest{Status: status}
	return c.mutate(ctx, "update-status", id, patch, func(ctx context.Context) error {
		return c.do(ctx, http.MethodPatch, "/v1/quotes/"+url.PathEscape(id)+"/status", body, nil)
	})
}

// UpdateQuote applies the non-nil fields of req optimistically.
func (c *Client) UpdateQuote(ctx context.Context, id string, req request.UpdateQuoteRequest) error {
	patch := querycache.UpdateWhere(
		func(q response.QuoteResponse) bool { return q.ID == id },
		func(q response.QuoteResponse) response.QuoteResponse { return applyUpdate(q, req) },
	)
	return c.mutate(ctx, "update", id, patch, func(ctx context.Context) error {
		return c.do(ctx, http.MethodPatch, "/v1/quotes/"+url.PathEscape(id), req, nil)
	})
}

func applyUpdate(q response.QuoteResponse, req request.UpdateQuoteRequest) response.QuoteResponse {
	if req.Status != nil {
		q.Status = *req.Status
	}
	if req.LabID != nil {
		q.LabID = *req.LabID
	}
	if req.TrackingNumber != nil {
		q.TrackingNumber = *req.TrackingNumber
	}
	if req.Notes != nil {
		q.Notes = *req.Notes
	}
	if req.ShippedDate != nil {
		d := *req.ShippedDate
		q.ShippedDate = &d
	}
	return q
}

// mutate runs an optimistic change and then reloads the list so the cache
// reflects the server. A failed reload leaves the list stale for the next
// read.
func (c *Client) mutate(ctx context.Context, op, id string, patch querycache.Patch[response.QuoteResponse], remote func(context.Context) error) error {
	err := c.quotes.Mutate(ctx, patch, remote)
	if err != nil {
		c.log.Info("optimistic change rolled back", zap.String("op", op), zap.String("quote_id", id), zap.Error(err))
	}
	if rerr := c.quotes.Refetch(ctx); rerr != nil {
		c.log.Debug("refetch after mutation failed", zap.String("op", op), zap.Error(rerr))
	}
	return err
}

func (c *Client) SendToVendor(ctx context.Context, id string) (response.QuoteResponse, error) {
	var out response.QuoteResponse
	if err := c.do(ctx, http.MethodPost, "/v1/quotes/"+url.PathEscape(id)+"/send", nil, &out); err != nil {
		return out, err
	}
	c.quotes.Invalidate()
	return out, nil
}

func (c *Client) Pipeline(ctx context.Context) (response.PipelineResponse, error) {
	var out response.PipelineResponse
	err := c.do(ctx, http.MethodGet, "/v1/dashboard/pipeline", nil, &out)
	return out, err
}

func (c *Client) Usage(ctx context.Context) (response.UsageResponse, error) {
	var out response.UsageResponse
	err := c.do(ctx, http.MethodGet, "/v1/usage", nil, &out)
	return out, err
}

func (c *Client) TrackUsage(ctx context.Context, items int) (response.TrackUsageResponse, error) {
	var out response.TrackUsageResponse
	err := c.do(ctx, http.MethodPost, "/v1/functions/track-usage", request.TrackUsageRequest{ItemsCount: items}, &out)
	return out, err
}

func (c *Client) Me(ctx context.Context) (response.MeResponse, error) {
	var out response.MeResponse
	err := c.do(ctx, http.MethodGet, "/v1/me", nil, &out)
	return out, err
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.session != "" {
		req.Header.Set(headerSessionID, c.session)
	}
	if c.devUser != "" {
		req.Header.Set(headerDevUserID, c.devUser)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeError(res)
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeError(res *http.Response) error {
	apiErr := &APIError{Status: res.StatusCode}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	return apiErr
}
