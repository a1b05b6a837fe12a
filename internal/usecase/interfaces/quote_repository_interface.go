package interfaces

import (
	"context"
	"labtracker/internal/domain/entities"
)

// IQuoteRepository abstracts persistence for Quote rows.
//
// Lookups return a zero Quote (empty ID) and nil error when the row is absent.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context, scope entities.QuoteScope) ([]entities.Quote, error)
	UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error)
	TransitionStatus(ctx context.Context, id string, from, to entities.QuoteStatus) (entities.Quote, error)
	Update(ctx context.Context, id string, patch entities.QuotePatch) (entities.Quote, error)
	Delete(ctx context.Context, id string) error
}

// IQuoteItemRepository abstracts persistence for QuoteItem rows.

type IQuoteItemRepository interface {
	CreateBatch(ctx context.Context, items []entities.QuoteItem) error
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.QuoteItem, error)
	Update(ctx context.Context, item entities.QuoteItem) (entities.QuoteItem, error)
	DeleteByQuoteID(ctx context.Context, quoteID string) error
}

// ICatalogRepository resolves products and labs referenced by quotes.

type ICatalogRepository interface {
	GetProducts(ctx context.Context, ids []string) (map[string]entities.Product, error)
	GetLab(ctx context.Context, id string) (entities.Lab, error)
	ListLabs(ctx context.Context) ([]entities.Lab, error)
}
