package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"labtracker/internal/domain/entities"
	"labtracker/internal/domain/pricing"
	"labtracker/internal/infrastructure/logger"
	"labtracker/internal/infrastructure/metrics"
	"labtracker/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrInvalidQuoteID     = errors.New("invalid quote id")
	ErrInvalidQuoteStatus = errors.New("invalid quote status")
	ErrInvalidQuoteInput  = errors.New("invalid quote input")
	ErrEmptyQuotePatch    = errors.New("empty quote patch")
	ErrQuoteItemNotFound  = errors.New("quote item not found")
	ErrQuoteNotDraft      = errors.New("quote is not a draft")
)

// IQuoteUseCase exposes quote operations. Every call is evaluated against the
// caller's scope; quotes outside it are reported as not found.

type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, cmd CreateQuoteCommand) (entities.Quote, error)
	GetQuote(ctx context.Context, scope entities.QuoteScope, id string) (entities.Quote, error)
	ListQuotes(ctx context.Context, scope entities.QuoteScope) ([]entities.Quote, error)
	UpdateStatus(ctx context.Context, scope entities.QuoteScope, id string, status entities.QuoteStatus) (entities.Quote, error)
	UpdateQuote(ctx context.Context, scope entities.QuoteScope, id string, patch entities.QuotePatch) (entities.Quote, error)
	UpdateItemPricing(ctx context.Context, scope entities.QuoteScope, quoteID string, item entities.QuoteItem) (entities.QuoteItem, error)
	DeleteQuote(ctx context.Context, scope entities.QuoteScope, id string) error
	SendToVendor(ctx context.Context, scope entities.QuoteScope, id string) (entities.Quote, error)
	PriceQuote(ctx context.Context, scope entities.QuoteScope, id string) (pricing.QuoteBreakdown, error)
	PipelineSummary(ctx context.Context, scope entities.QuoteScope) (entities.PipelineSummary, error)
}

// CreateQuoteCommand carries a new draft quote and its lines.
type CreateQuoteCommand struct {
	UserID string
	LabID  string
	Notes  string
	Items  []entities.QuoteItem
}

// QuoteUseCaseDeps groups the collaborators of QuoteUseCase.
type QuoteUseCaseDeps struct {
	Quotes     interfaces.IQuoteRepository
	Items      interfaces.IQuoteItemRepository
	Catalog    interfaces.ICatalogRepository
	Usage      IUsageUseCase
	Events     interfaces.IQuoteEventPublisher
	Calculator pricing.Calculator
	Logger     *zap.Logger
}

type QuoteUseCase struct {
	quotes  interfaces.IQuoteRepository
	items   interfaces.IQuoteItemRepository
	catalog interfaces.ICatalogRepository
	usage   IUsageUseCase
	events  interfaces.IQuoteEventPublisher
	calc    pricing.Calculator
	log     *zap.Logger
	now     func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(d QuoteUseCaseDeps) *QuoteUseCase {
	return &QuoteUseCase{
		quotes:  d.Quotes,
		items:   d.Items,
		catalog: d.Catalog,
		usage:   d.Usage,
		events:  d.Events,
		calc:    d.Calculator,
		log:     logger.OrNop(d.Logger).Named("quote"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, cmd CreateQuoteCommand) (entities.Quote, error) {
	cmd.UserID = strings.TrimSpace(cmd.UserID)
	cmd.LabID = strings.TrimSpace(cmd.LabID)
	if cmd.UserID == "" || cmd.LabID == "" || len(cmd.Items) == 0 {
		return entities.Quote{}, ErrInvalidQuoteInput
	}
	for _, it := range cmd.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return entities.Quote{}, ErrInvalidQuoteInput
		}
	}

	now := u.now()
	q := entities.Quote{
		ID:          uuid.NewString(),
		QuoteNumber: newQuoteNumber(now),
		Status:      entities.QuoteStatusDraft,
		UserID:      cmd.UserID,
		LabID:       cmd.LabID,
		Notes:       strings.TrimSpace(cmd.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	items := make([]entities.QuoteItem, 0, len(cmd.Items))
	for _, it := range cmd.Items {
		it.ID = uuid.NewString()
		it.QuoteID = q.ID
		it.ProductID = strings.TrimSpace(it.ProductID)
		items = append(items, it)
	}

	created, err := u.quotes.Create(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := u.items.CreateBatch(ctx, items); err != nil {
		u.log.Error("creating quote items failed; removing quote", zap.String("quote_id", q.ID), zap.Error(err))
		if delErr := u.quotes.Delete(ctx, q.ID); delErr != nil {
			u.log.Error("removing orphan quote failed", zap.String("quote_id", q.ID), zap.Error(delErr))
		}
		return entities.Quote{}, err
	}
	created.Items = items

	u.log.Info("quote created", zap.String("quote_id", created.ID), zap.String("quote_number", created.QuoteNumber), zap.Int("items", len(items)))
	u.publish(ctx, interfaces.QuoteEventInserted, created)
	return created, nil
}

func (u *QuoteUseCase) GetQuote(ctx context.Context, scope entities.QuoteScope, id string) (entities.Quote, error) {
	q, err := u.loadScoped(ctx, scope, id)
	if err != nil {
		return entities.Quote{}, err
	}
	items, err := u.items.ListByQuoteID(ctx, q.ID)
	if err != nil {
		return entities.Quote{}, err
	}
	q.Items = items
	return q, nil
}

func (u *QuoteUseCase) ListQuotes(ctx context.Context, scope entities.QuoteScope) ([]entities.Quote, error) {
	if !scope.All && scope.UserID == "" && scope.LabID == "" {
		return []entities.Quote{}, nil
	}
	return u.quotes.List(ctx, scope)
}

func (u *QuoteUseCase) UpdateStatus(ctx context.Context, scope entities.QuoteScope, id string, status entities.QuoteStatus) (entities.Quote, error) {
	if !status.IsKnown() {
		return entities.Quote{}, ErrInvalidQuoteStatus
	}
	q, err := u.loadScoped(ctx, scope, id)
	if err != nil {
		return entities.Quote{}, err
	}

	updated, err := u.quotes.UpdateStatus(ctx, q.ID, status)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	metrics.QuoteStatusChanges.WithLabelValues(string(status)).Inc()
	u.log.Info("quote status updated", zap.String("quote_id", q.ID), zap.String("from", string(q.Status)), zap.String("to", string(status)))
	u.publish(ctx, interfaces.QuoteEventUpdated, updated)
	return updated, nil
}

func (u *QuoteUseCase) UpdateQuote(ctx context.Context, scope entities.QuoteScope, id string, patch entities.QuotePatch) (entities.Quote, error) {
	if patch.IsEmpty() {
		return entities.Quote{}, ErrEmptyQuotePatch
	}
	if patch.Status != nil && !patch.Status.IsKnown() {
		return entities.Quote{}, ErrInvalidQuoteStatus
	}
	if patch.LabID != nil && strings.TrimSpace(*patch.LabID) == "" {
		return entities.Quote{}, ErrInvalidQuoteInput
	}
	q, err := u.loadScoped(ctx, scope, id)
	if err != nil {
		return entities.Quote{}, err
	}

	updated, err := u.quotes.Update(ctx, q.ID, patch)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if patch.Status != nil {
		metrics.QuoteStatusChanges.WithLabelValues(string(*patch.Status)).Inc()
	}

	u.log.Info("quote updated", zap.String("quote_id", q.ID))
	u.publish(ctx, interfaces.QuoteEventUpdated, updated)
	return updated, nil
}

func (u *QuoteUseCase) UpdateItemPricing(ctx context.Context, scope entities.QuoteScope, quoteID string, item entities.QuoteItem) (entities.QuoteItem, error) {
	q, err := u.loadScoped(ctx, scope, quoteID)
	if err != nil {
		return entities.QuoteItem{}, err
	}
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		return entities.QuoteItem{}, ErrInvalidQuoteInput
	}

	existing, err := u.items.ListByQuoteID(ctx, q.ID)
	if err != nil {
		return entities.QuoteItem{}, err
	}
	var current *entities.QuoteItem
	for i := range existing {
		if existing[i].ID == item.ID {
			current = &existing[i]
			break
		}
	}
	if current == nil {
		return entities.QuoteItem{}, ErrQuoteItemNotFound
	}

	next := *current
	applyOverride(&next.Price, item.Price)
	applyOverride(&next.AdditionalSamplesPrice, item.AdditionalSamplesPrice)
	applyOverride(&next.AdditionalHeadersPrice, item.AdditionalHeadersPrice)
	if item.AdditionalSamples != nil {
		next.AdditionalSamples = item.AdditionalSamples
	}
	if item.AdditionalReportHeaders != nil {
		next.AdditionalReportHeaders = item.AdditionalReportHeaders
	}

	saved, err := u.items.Update(ctx, next)
	if err != nil {
		return entities.QuoteItem{}, err
	}
	if saved.ID == "" {
		return entities.QuoteItem{}, ErrQuoteItemNotFound
	}
	u.publish(ctx, interfaces.QuoteEventUpdated, q)
	return saved, nil
}

// DeleteQuote removes the quote's items and then the quote. A failure while
// removing items aborts before the quote row is touched.
func (u *QuoteUseCase) DeleteQuote(ctx context.Context, scope entities.QuoteScope, id string) error {
	q, err := u.loadScoped(ctx, scope, id)
	if err != nil {
		return err
	}

	if err := u.items.DeleteByQuoteID(ctx, q.ID); err != nil {
		u.log.Error("deleting quote items failed", zap.String("quote_id", q.ID), zap.Error(err))
		return fmt.Errorf("delete quote items: %w", err)
	}
	if err := u.quotes.Delete(ctx, q.ID); err != nil {
		u.log.Error("deleting quote failed", zap.String("quote_id", q.ID), zap.Error(err))
		return fmt.Errorf("delete quote: %w", err)
	}

	u.log.Info("quote deleted", zap.String("quote_id", q.ID))
	u.publish(ctx, interfaces.QuoteEventDeleted, q)
	return nil
}

// SendToVendor meters the quote's items against the owner's monthly limit and
// moves it from draft to sent_to_vendor. Only drafts can be sent; when the
// status write fails or another request moved the quote first, the metered
// items are released again.
func (u *QuoteUseCase) SendToVendor(ctx context.Context, scope entities.QuoteScope, id string) (entities.Quote, error) {
	q, err := u.GetQuote(ctx, scope, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.Status != entities.QuoteStatusDraft {
		return entities.Quote{}, ErrQuoteNotDraft
	}
	if u.usage == nil {
		return entities.Quote{}, errors.New("usage metering not configured")
	}

	rec, err := u.usage.CheckAndTrack(ctx, q.UserID, len(q.Items))
	if err != nil {
		return entities.Quote{}, err
	}

	updated, err := u.quotes.TransitionStatus(ctx, q.ID, entities.QuoteStatusDraft, entities.QuoteStatusSentToVendor)
	if err == nil && updated.ID == "" {
		err = ErrQuoteNotDraft
	}
	if err != nil {
		u.log.Warn("sending quote failed after metering; releasing usage", zap.String("quote_id", q.ID), zap.Int("items", len(q.Items)), zap.Error(err))
		if relErr := u.usage.ReleaseUsage(ctx, rec, len(q.Items)); relErr != nil {
			u.log.Error("releasing usage failed", zap.String("quote_id", q.ID), zap.String("user_id", q.UserID), zap.Error(relErr))
		}
		return entities.Quote{}, err
	}
	updated.Items = q.Items

	metrics.QuoteStatusChanges.WithLabelValues(string(entities.QuoteStatusSentToVendor)).Inc()
	u.log.Info("quote sent to vendor", zap.String("quote_id", q.ID), zap.Int("items", len(q.Items)))
	u.publish(ctx, interfaces.QuoteEventUpdated, updated)
	return updated, nil
}

func (u *QuoteUseCase) PriceQuote(ctx context.Context, scope entities.QuoteScope, id string) (pricing.QuoteBreakdown, error) {
	q, err := u.GetQuote(ctx, scope, id)
	if err != nil {
		return pricing.QuoteBreakdown{}, err
	}
	return priceItems(ctx, u.catalog, u.calc, q.Items)
}

func (u *QuoteUseCase) PipelineSummary(ctx context.Context, scope entities.QuoteScope) (entities.PipelineSummary, error) {
	quotes, err := u.ListQuotes(ctx, scope)
	if err != nil {
		return nil, err
	}
	return entities.SummarizePipeline(quotes), nil
}

func (u *QuoteUseCase) loadScoped(ctx context.Context, scope entities.QuoteScope, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" || !InScope(scope, q) {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) publish(ctx context.Context, typ interfaces.QuoteEventType, q entities.Quote) {
	if u.events == nil {
		return
	}
	ev := interfaces.QuoteEvent{Type: typ, QuoteID: q.ID, UserID: q.UserID, LabID: q.LabID, Status: q.Status}
	if err := u.events.Publish(ctx, ev); err != nil {
		u.log.Warn("publishing quote event failed", zap.String("quote_id", q.ID), zap.Error(err))
	}
}

// InScope reports whether q is visible to scope.
func InScope(scope entities.QuoteScope, q entities.Quote) bool {
	if scope.All {
		return true
	}
	if scope.UserID != "" && q.UserID == scope.UserID {
		return true
	}
	return scope.LabID != "" && q.LabID == scope.LabID
}

func priceItems(ctx context.Context, catalog interfaces.ICatalogRepository, calc pricing.Calculator, items []entities.QuoteItem) (pricing.QuoteBreakdown, error) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products := map[string]entities.Product{}
	if catalog != nil && len(ids) > 0 {
		var err error
		products, err = catalog.GetProducts(ctx, ids)
		if err != nil {
			return pricing.QuoteBreakdown{}, err
		}
	}
	return calc.PriceQuote(items, products), nil
}

// applyOverride sets a price override when the patch carries one. A blank
// value removes the stored override.
func applyOverride(dst **string, v *string) {
	if v == nil {
		return
	}
	if strings.TrimSpace(*v) == "" {
		*dst = nil
		return
	}
	val := strings.TrimSpace(*v)
	*dst = &val
}

func newQuoteNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("Q-%s-%s", now.Format("20060102"), suffix)
}
