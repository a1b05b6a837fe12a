package request

import (
	"errors"
	"strings"
	"time"

	"labtracker/internal/domain/entities"
)

var (
	ErrInvalidQuoteStatus = errors.New("invalid quote status")
	ErrEmptyQuoteUpdate   = errors.New("empty quote update")
)

type QuoteItemRequest struct {
	ProductID               string  `json:"product_id" binding:"required"`
	AdditionalSamples       *int    `json:"additional_samples" binding:"omitempty,min=0"`
	AdditionalReportHeaders *int    `json:"additional_report_headers" binding:"omitempty,min=0"`
	Price                   *string `json:"price"`
	AdditionalSamplesPrice  *string `json:"additional_samples_price"`
	AdditionalHeadersPrice  *string `json:"additional_headers_price"`
}

func (r QuoteItemRequest) ToEntity() entities.QuoteItem {
	return entities.QuoteItem{
		ProductID:               strings.TrimSpace(r.ProductID),
		AdditionalSamples:       r.AdditionalSamples,
		AdditionalReportHeaders: r.AdditionalReportHeaders,
		Price:                   r.Price,
		AdditionalSamplesPrice:  r.AdditionalSamplesPrice,
		AdditionalHeadersPrice:  r.AdditionalHeadersPrice,
	}
}

// CreateQuoteRequest opens a draft quote for the caller.
type CreateQuoteRequest struct {
	LabID string             `json:"lab_id" binding:"required"`
	Notes string             `json:"notes"`
	Items []QuoteItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r CreateQuoteRequest) ItemEntities() []entities.QuoteItem {
	out := make([]entities.QuoteItem, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.ToEntity())
	}
	return out
}

type UpdateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ResolveStatus rejects anything outside the closed status set.
func (r UpdateQuoteStatusRequest) ResolveStatus() (entities.QuoteStatus, error) {
	s := entities.QuoteStatus(strings.TrimSpace(r.Status))
	if !s.IsKnown() {
		return "", ErrInvalidQuoteStatus
	}
	return s, nil
}

// UpdateQuoteRequest is a field patch; omitted fields are left untouched.
type UpdateQuoteRequest struct {
	Status         *string    `json:"status"`
	LabID          *string    `json:"lab_id"`
	TrackingNumber *string    `json:"tracking_number"`
	Notes          *string    `json:"notes"`
	ShippedDate    *time.Time `json:"shipped_date"`
}

func (r UpdateQuoteRequest) ToPatch() (entities.QuotePatch, error) {
	p := entities.QuotePatch{
		LabID:          r.LabID,
		TrackingNumber: r.TrackingNumber,
		Notes:          r.Notes,
		ShippedDate:    r.ShippedDate,
	}
	if r.Status != nil {
		s, err := UpdateQuoteStatusRequest{Status: *r.Status}.ResolveStatus()
		if err != nil {
			return entities.QuotePatch{}, err
		}
		p.Status = &s
	}
	if p.IsEmpty() {
		return entities.QuotePatch{}, ErrEmptyQuoteUpdate
	}
	return p, nil
}

// UpdateItemPricingRequest carries the lab's price overrides for one item.
// Omitted fields keep their stored value; an empty price string removes
// that override.
type UpdateItemPricingRequest struct {
	AdditionalSamples       *int    `json:"additional_samples" binding:"omitempty,min=0"`
	AdditionalReportHeaders *int    `json:"additional_report_headers" binding:"omitempty,min=0"`
	Price                   *string `json:"price"`
	AdditionalSamplesPrice  *string `json:"additional_samples_price"`
	AdditionalHeadersPrice  *string `json:"additional_headers_price"`
}

func (r UpdateItemPricingRequest) ToEntity(itemID string) entities.QuoteItem {
	return entities.QuoteItem{
		ID:                      itemID,
		AdditionalSamples:       r.AdditionalSamples,
		AdditionalReportHeaders: r.AdditionalReportHeaders,
		Price:                   r.Price,
		AdditionalSamplesPrice:  r.AdditionalSamplesPrice,
		AdditionalHeadersPrice:  r.AdditionalHeadersPrice,
	}
}
