package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"labtracker/internal/domain/entities"
	"labtracker/internal/domain/pricing"
	"labtracker/internal/infrastructure/logger"
	"labtracker/internal/infrastructure/metrics"
	"labtracker/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrPaymentNotFound                = errors.New("payment not found")
	ErrInvalidPaymentQuoteID          = errors.New("invalid quote_id")
	ErrInvalidProviderPayload         = errors.New("invalid payment provider payload")
	ErrQuoteNotAwaitingPayment        = errors.New("quote not awaiting payment")
	ErrQuoteTotalNotPositive          = errors.New("quote total must be positive")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
	ErrPaymentDeclined                = errors.New("payment declined by provider")
)

// IQuotePaymentUseCase charges a quote and records the result.

type IQuotePaymentUseCase interface {
	PayQuote(ctx context.Context, scope entities.QuoteScope, quoteID string, providerPayload json.RawMessage) (entities.QuotePayment, error)
	GetByID(ctx context.Context, id string) (entities.QuotePayment, error)
	ListByQuoteID(ctx context.Context, scope entities.QuoteScope, quoteID string) ([]entities.QuotePayment, error)
}

// PaymentOptions tunes payload validation. MockMode accepts empty payloads
// for a gateway running in mock mode.
type PaymentOptions struct {
	MockMode       bool
	TestPayerEmail string
}

type QuotePaymentUseCaseDeps struct {
	Payments   interfaces.IQuotePaymentRepository
	Quotes     interfaces.IQuoteRepository
	Items      interfaces.IQuoteItemRepository
	Catalog    interfaces.ICatalogRepository
	Gateway    interfaces.IPaymentGateway
	Events     interfaces.IQuoteEventPublisher
	Calculator pricing.Calculator
	Options    PaymentOptions
	Logger     *zap.Logger
}

type QuotePaymentUseCase struct {
	payments interfaces.IQuotePaymentRepository
	quotes   interfaces.IQuoteRepository
	items    interfaces.IQuoteItemRepository
	catalog  interfaces.ICatalogRepository
	gateway  interfaces.IPaymentGateway
	events   interfaces.IQuoteEventPublisher
	calc     pricing.Calculator
	opts     PaymentOptions
	log      *zap.Logger
	now      func() time.Time
}

var _ IQuotePaymentUseCase = (*QuotePaymentUseCase)(nil)

func NewQuotePaymentUseCase(d QuotePaymentUseCaseDeps) *QuotePaymentUseCase {
	return &QuotePaymentUseCase{
		payments: d.Payments,
		quotes:   d.Quotes,
		items:    d.Items,
		catalog:  d.Catalog,
		gateway:  d.Gateway,
		events:   d.Events,
		calc:     d.Calculator,
		opts:     d.Options,
		log:      logger.OrNop(d.Logger).Named("payment"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// PayQuote charges the priced total of a quote in approved_payment_pending,
// stores the provider response and moves the quote to paid.
func (u *QuotePaymentUseCase) PayQuote(ctx context.Context, scope entities.QuoteScope, quoteID string, providerPayload json.RawMessage) (entities.QuotePayment, error) {
	quoteID = strings.TrimSpace(quoteID)
	log := u.log.With(zap.String("quote_id", quoteID))
	if quoteID == "" {
		return entities.QuotePayment{}, ErrInvalidPaymentQuoteID
	}
	if len(providerPayload) == 0 || !json.Valid(providerPayload) {
		if !u.opts.MockMode {
			return entities.QuotePayment{}, ErrInvalidProviderPayload
		}
		providerPayload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		return entities.QuotePayment{}, errors.New("payment gateway not configured")
	}

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.QuotePayment{}, err
	}
	if q.ID == "" || !InScope(scope, q) {
		return entities.QuotePayment{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusApprovedPaymentPending {
		log.Info("quote not awaiting payment", zap.String("status", string(q.Status)))
		return entities.QuotePayment{}, ErrQuoteNotAwaitingPayment
	}

	items, err := u.items.ListByQuoteID(ctx, q.ID)
	if err != nil {
		return entities.QuotePayment{}, err
	}
	breakdown, err := priceItems(ctx, u.catalog, u.calc, items)
	if err != nil {
		return entities.QuotePayment{}, err
	}
	if breakdown.Total <= 0 {
		return entities.QuotePayment{}, ErrQuoteTotalNotPositive
	}

	request, err := u.enrichPayload(providerPayload, q, breakdown.Total)
	if err != nil {
		return entities.QuotePayment{}, err
	}

	providerID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, request)
	if err != nil {
		log.Error("payment gateway failed", zap.Error(err))
		return entities.QuotePayment{}, classifyGatewayError(err)
	}
	log.Info("payment gateway responded", zap.String("provider_payment_id", providerID), zap.String("provider_status", providerStatus))

	status := paymentStatusFromProvider(providerStatus)
	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Warn("provider response unmarshal failed", zap.Error(err))
	}

	created, err := u.payments.Create(ctx, entities.QuotePayment{
		ID:                 providerID,
		QuoteID:            q.ID,
		Date:               u.now(),
		Status:             status,
		Amount:             breakdown.Total,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	})
	if err != nil {
		log.Error("payment repository create failed", zap.String("payment_id", providerID), zap.Error(err))
		return entities.QuotePayment{}, err
	}

	switch status {
	case entities.PaymentStatusApproved:
		updated, err := u.quotes.UpdateStatus(ctx, q.ID, entities.QuoteStatusPaid)
		if err != nil {
			log.Error("marking quote paid failed", zap.String("payment_id", created.ID), zap.Error(err))
			return entities.QuotePayment{}, err
		}
		metrics.QuoteStatusChanges.WithLabelValues(string(entities.QuoteStatusPaid)).Inc()
		if u.events != nil {
			ev := interfaces.QuoteEvent{Type: interfaces.QuoteEventUpdated, QuoteID: updated.ID, UserID: updated.UserID, LabID: updated.LabID, Status: updated.Status}
			if err := u.events.Publish(ctx, ev); err != nil {
				log.Warn("publishing quote event failed", zap.Error(err))
			}
		}
	case entities.PaymentStatusDenied:
		return created, ErrPaymentDeclined
	}

	log.Info("quote payment recorded", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)), zap.Float64("amount", created.Amount))
	return created, nil
}

func (u *QuotePaymentUseCase) GetByID(ctx context.Context, id string) (entities.QuotePayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuotePayment{}, errors.New("invalid payment id")
	}
	p, err := u.payments.GetByID(ctx, id)
	if err != nil {
		return entities.QuotePayment{}, err
	}
	if p.ID == "" {
		return entities.QuotePayment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *QuotePaymentUseCase) ListByQuoteID(ctx context.Context, scope entities.QuoteScope, quoteID string) ([]entities.QuotePayment, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, ErrInvalidPaymentQuoteID
	}
	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if q.ID == "" || !InScope(scope, q) {
		return nil, ErrQuoteNotFound
	}
	return u.payments.ListByQuoteID(ctx, quoteID)
}

// enrichPayload links the provider request to the quote and forces the
// amount to the priced total.
func (u *QuotePaymentUseCase) enrichPayload(raw json.RawMessage, q entities.Quote, total float64) (json.RawMessage, error) {
	var req map[string]any
	if err := json.Unmarshal(raw, &req); err != nil || req == nil {
		return nil, ErrInvalidProviderPayload
	}
	if !u.opts.MockMode && !hasNonEmptyString(req, "payment_method_id") {
		return nil, ErrInvalidProviderPayload
	}

	ensurePayer(req, u.opts.TestPayerEmail)
	if !u.opts.MockMode && !hasPayer(req) {
		return nil, ErrInvalidProviderPayload
	}
	if _, ok := req["external_reference"]; !ok {
		req["external_reference"] = q.ID
	}
	if _, ok := req["description"]; !ok {
		req["description"] = fmt.Sprintf("Lab testing quote %s", q.QuoteNumber)
	}
	req["transaction_amount"] = total

	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	if hasNonEmptyString(payer, "email") {
		return true
	}
	id, ok := payer["id"]
	return ok && id != nil && strings.TrimSpace(fmt.Sprintf("%v", id)) != ""
}

// ensurePayer fills payer.type and, when neither id nor email is present, the
// configured sandbox email.
func ensurePayer(m map[string]any, fallbackEmail string) {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		payer = map[string]any{}
		m["payer"] = payer
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if !hasPayer(m) && fallbackEmail != "" {
		payer["email"] = fallbackEmail
	}
}

func paymentStatusFromProvider(s string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	}
	return entities.PaymentStatusPending
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found"), strings.Contains(msg, `"code":2002`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayCustomerNotFound, err)
	case strings.Contains(msg, `"error":"unauthorized"`), strings.Contains(msg, `"status":401`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayUnauthorized, err)
	case strings.Contains(msg, `"error":"bad_request"`), strings.Contains(msg, `"status":400`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayBadRequest, err)
	}
	return err
}
