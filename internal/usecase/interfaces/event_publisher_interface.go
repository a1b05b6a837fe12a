package interfaces

import (
	"context"
	"labtracker/internal/domain/entities"
)

// QuoteEventType names a row change on the quotes table.
type QuoteEventType string

const (
	QuoteEventInserted QuoteEventType = "INSERT"
	QuoteEventUpdated  QuoteEventType = "UPDATE"
	QuoteEventDeleted  QuoteEventType = "DELETE"
)

// QuoteEvent is a change notification for one quote row.
type QuoteEvent struct {
	Type    QuoteEventType       `json:"type"`
	QuoteID string               `json:"quote_id"`
	UserID  string               `json:"user_id"`
	LabID   string               `json:"lab_id"`
	Status  entities.QuoteStatus `json:"status"`
}

// IQuoteEventPublisher fans quote changes out to realtime subscribers.
type IQuoteEventPublisher interface {
	Publish(ctx context.Context, ev QuoteEvent) error
}
