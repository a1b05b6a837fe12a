package response

import (
	"time"

	"labtracker/internal/domain/entities"
	"labtracker/internal/domain/pricing"
)

type QuoteItemResponse struct {
	ID                      string  `json:"id"`
	ProductID               string  `json:"product_id"`
	AdditionalSamples       *int    `json:"additional_samples,omitempty"`
	AdditionalReportHeaders *int    `json:"additional_report_headers,omitempty"`
	Price                   *string `json:"price,omitempty"`
	AdditionalSamplesPrice  *string `json:"additional_samples_price,omitempty"`
	AdditionalHeadersPrice  *string `json:"additional_headers_price,omitempty"`
}

type QuoteResponse struct {
	ID             string              `json:"id"`
	QuoteNumber    string              `json:"quote_number"`
	Status         string              `json:"status"`
	UserID         string              `json:"user_id"`
	LabID          string              `json:"lab_id"`
	TrackingNumber string              `json:"tracking_number,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	ShippedDate    *time.Time          `json:"shipped_date,omitempty"`
	Items          []QuoteItemResponse `json:"items,omitempty"`
}

func FromQuoteItem(it entities.QuoteItem) QuoteItemResponse {
	return QuoteItemResponse{
		ID:                      it.ID,
		ProductID:               it.ProductID,
		AdditionalSamples:       it.AdditionalSamples,
		AdditionalReportHeaders: it.AdditionalReportHeaders,
		Price:                   it.Price,
		AdditionalSamplesPrice:  it.AdditionalSamplesPrice,
		AdditionalHeadersPrice:  it.AdditionalHeadersPrice,
	}
}

func FromQuote(q entities.Quote) QuoteResponse {
	res := QuoteResponse{
		ID:             q.ID,
		QuoteNumber:    q.QuoteNumber,
		Status:         string(q.Status),
		UserID:         q.UserID,
		LabID:          q.LabID,
		TrackingNumber: q.TrackingNumber,
		Notes:          q.Notes,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
		ShippedDate:    q.ShippedDate,
	}
	for _, it := range q.Items {
		res.Items = append(res.Items, FromQuoteItem(it))
	}
	return res
}

func FromQuotes(qs []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, FromQuote(q))
	}
	return out
}

// PipelineResponse lists every known status, in pipeline order, with its count.
type PipelineResponse struct {
	Counts map[string]int `json:"counts"`
	Order  []string       `json:"order"`
	Total  int            `json:"total"`
}

func FromPipelineSummary(s entities.PipelineSummary) PipelineResponse {
	res := PipelineResponse{
		Counts: make(map[string]int, len(entities.KnownQuoteStatuses)),
		Order:  make([]string, 0, len(entities.KnownQuoteStatuses)),
		Total:  s.Total(),
	}
	for _, st := range entities.KnownQuoteStatuses {
		res.Counts[string(st)] = s[st]
		res.Order = append(res.Order, string(st))
	}
	return res
}

type QuotePricingResponse struct {
	QuoteID string                  `json:"quote_id"`
	Items   []pricing.ItemBreakdown `json:"items"`
	Total   float64                 `json:"total"`
}

func FromQuoteBreakdown(quoteID string, b pricing.QuoteBreakdown) QuotePricingResponse {
	items := b.Items
	if items == nil {
		items = []pricing.ItemBreakdown{}
	}
	return QuotePricingResponse{QuoteID: quoteID, Items: items, Total: b.Total}
}
