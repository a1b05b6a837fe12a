package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"labtracker/internal/domain/entities"
	"labtracker/internal/domain/pricing"
	mock_interfaces "labtracker/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type paymentMocks struct {
	payments *mock_interfaces.MockIQuotePaymentRepository
	quotes   *mock_interfaces.MockIQuoteRepository
	items    *mock_interfaces.MockIQuoteItemRepository
	catalog  *mock_interfaces.MockICatalogRepository
	gateway  *mock_interfaces.MockIPaymentGateway
	events   *mock_interfaces.MockIQuoteEventPublisher
}

func newPaymentUseCaseForTest(ctrl *gomock.Controller, opts PaymentOptions) (*QuotePaymentUseCase, paymentMocks) {
	m := paymentMocks{
		payments: mock_interfaces.NewMockIQuotePaymentRepository(ctrl),
		quotes:   mock_interfaces.NewMockIQuoteRepository(ctrl),
		items:    mock_interfaces.NewMockIQuoteItemRepository(ctrl),
		catalog:  mock_interfaces.NewMockICatalogRepository(ctrl),
		gateway:  mock_interfaces.NewMockIPaymentGateway(ctrl),
		events:   mock_interfaces.NewMockIQuoteEventPublisher(ctrl),
	}
	uc := NewQuotePaymentUseCase(QuotePaymentUseCaseDeps{
		Payments:   m.payments,
		Quotes:     m.quotes,
		Items:      m.items,
		Catalog:    m.catalog,
		Gateway:    m.gateway,
		Events:     m.events,
		Calculator: pricing.NewCalculator(60, 30),
		Options:    opts,
	})
	uc.now = func() time.Time { return fixedNow }
	return uc, m
}

func expectPricedQuote(m paymentMocks, status entities.QuoteStatus, price float64) {
	m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", QuoteNumber: "Q-1", UserID: "u-1", Status: status}, nil)
	if status != entities.QuoteStatusApprovedPaymentPending {
		return
	}
	m.items.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.QuoteItem{{ID: "i-1", ProductID: "p-1"}}, nil)
	m.catalog.EXPECT().GetProducts(gomock.Any(), []string{"p-1"}).Return(map[string]entities.Product{"p-1": {ID: "p-1", DefaultPrice: price}}, nil)
}

func TestQuotePaymentUseCase_PayQuote_Validations(t *testing.T) {
	scope := entities.QuoteScope{UserID: "u-1"}

	t.Run("empty quote id", func(t *testing.T) {
		uc := NewQuotePaymentUseCase(QuotePaymentUseCaseDeps{})
		if _, err := uc.PayQuote(context.Background(), scope, " ", json.RawMessage(`{}`)); !errors.Is(err, ErrInvalidPaymentQuoteID) {
			t.Fatalf("expected ErrInvalidPaymentQuoteID, got %v", err)
		}
	})

	t.Run("invalid json payload", func(t *testing.T) {
		uc := NewQuotePaymentUseCase(QuotePaymentUseCaseDeps{})
		if _, err := uc.PayQuote(context.Background(), scope, "q-1", json.RawMessage(`{`)); !errors.Is(err, ErrInvalidProviderPayload) {
			t.Fatalf("expected ErrInvalidProviderPayload, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewQuotePaymentUseCase(QuotePaymentUseCaseDeps{})
		_, err := uc.PayQuote(context.Background(), scope, "q-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if err == nil || err.Error() != "payment gateway not configured" {
			t.Fatalf("expected gateway not configured error, got %v", err)
		}
	})

	t.Run("quote not awaiting payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newPaymentUseCaseForTest(ctrl, PaymentOptions{})
		expectPricedQuote(m, entities.QuoteStatusDraft, 0)

		if _, err := uc.PayQuote(context.Background(), scope, "q-1", json.RawMessage(`{"payment_method_id":"pix"}`)); !errors.Is(err, ErrQuoteNotAwaitingPayment) {
			t.Fatalf("expected ErrQuoteNotAwaitingPayment, got %v", err)
		}
	})

	t.Run("quote of another user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newPaymentUseCaseForTest(ctrl, PaymentOptions{})
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", UserID: "u-2"}, nil)

		if _, err := uc.PayQuote(context.Background(), scope, "q-1", json.RawMessage(`{"payment_method_id":"pix"}`)); !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("zero total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newPaymentUseCaseForTest(ctrl, PaymentOptions{})
		expectPricedQuote(m, entities.QuoteStatusApprovedPaymentPending, 0)

		if _, err := uc.PayQuote(context.Background(), scope, "q-1", json.RawMessage(`{"payment_method_id":"pix"}`)); !errors.Is(err, ErrQuoteTotalNotPositive) {
			t.Fatalf("expected ErrQuoteTotalNotPositive, got %v", err)
		}
	})

	t.Run("missing payment method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newPaymentUseCaseForTest(ctrl, PaymentOptions{})
		expectPricedQuote(m, entities.QuoteStatusApprovedPaymentPending, 100)

		if _, err := uc.PayQuote(context.Background(), scope, "q-1", json.RawMessage(`{"payer":{"email":"a@b.com"}}`)); !errors.Is(err, ErrInvalidProviderPayload) {
			t.Fatalf("expected ErrInvalidProviderPayload, got %v", err)
		}
	})
}

func TestQuotePaymentUseCase_PayQuote_Gateway(t *testing.T) {
	scope := entities.QuoteScope{UserID: "u-1"}
	payload := json.RawMessage(`{"payment_method_id":"pix","transaction_amount":1}`)

	t.Run("approved marks quote paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newPaymentUseCaseForTest(ctrl, PaymentOptions{TestPayerEmail: "sandbox@x.com"})
		expectPricedQuote(m, entities.QuoteStatusApprovedPaymentPending, 250)

		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req json.RawMessage) (string, string, json.RawMessage, error) {
			var body map[string]any
			if err := json.Unmarshal(req, &body); err != nil {
				t.Fatalf("invalid request: %v", err)
			}
			if body["transaction_amount"] != float64(250) {
				t.Fatalf("amount must be the priced total, got %v", body["transaction_amount"])
			}
			if body["external_reference"] != "q-1" {
				t.Fatalf("expected external_reference q-1, got %v", body["external_reference"])
			}
			payer, _ := body["payer"].(map[string]any)
			if payer["email"] != "sandbox@x.com" {
				t.Fatalf("expected fallback payer email, got %v", payer)
			}
			return "mp-1", "approved", json.RawMessage(`{"id":"mp-1","status":"approved"}`), nil
		})
		m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.QuotePayment) (entities.QuotePayment, error) {
			if p.ID != "mp-1" || p.Status != entities.PaymentStatusApproved || p.Amount != 250 {
				t.Fatalf("unexpected payment %+v", p)
			}
			return p, nil
		})
		m.quotes.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusPaid).Return(entities.Quote{ID: "q-1", UserID: "u-1", Status: entities.QuoteStatusPaid}, nil)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		got, err := uc.PayQuote(context.Background(), scope, "q-1", payload)
		if err != nil || got.ID != "mp-1" {
			t.Fatalf("unexpected result %+v err=%v", got, err)
		}
	})

	t.Run("declined keeps quote pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newPaymentUseCaseForTest(ctrl, PaymentOptions{})
		expectPricedQuote(m, entities.QuoteStatusApprovedPaymentPending, 250)

		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-2", "rejected", json.RawMessage(`{"id":"mp-2"}`), nil)
		m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.QuotePayment) (entities.QuotePayment, error) { return p, nil })

		got, err := uc.PayQuote(context.Background(), scope, "q-1", json.RawMessage(`{"payment_method_id":"pix","payer":{"id":"123"}}`))
		if !errors.Is(err, ErrPaymentDeclined) {
			t.Fatalf("expected ErrPaymentDeclined, got %v", err)
		}
		if got.Status != entities.PaymentStatusDenied {
			t.Fatalf("expected denied payment, got %s", got.Status)
		}
	})

	t.Run("gateway unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newPaymentUseCaseForTest(ctrl, PaymentOptions{TestPayerEmail: "sandbox@x.com"})
		expectPricedQuote(m, entities.QuoteStatusApprovedPaymentPending, 250)

		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New(`{"error":"unauthorized","status":401}`))

		if _, err := uc.PayQuote(context.Background(), scope, "q-1", payload); !errors.Is(err, ErrPaymentGatewayUnauthorized) {
			t.Fatalf("expected ErrPaymentGatewayUnauthorized, got %v", err)
		}
	})

	t.Run("mock mode accepts an empty payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newPaymentUseCaseForTest(ctrl, PaymentOptions{MockMode: true})
		expectPricedQuote(m, entities.QuoteStatusApprovedPaymentPending, 80)

		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mock-1", "approved", json.RawMessage(`{"id":"mock-1"}`), nil)
		m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.QuotePayment) (entities.QuotePayment, error) { return p, nil })
		m.quotes.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusPaid).Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPaid}, nil)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		got, err := uc.PayQuote(context.Background(), scope, "q-1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusApproved || got.Amount != 80 || got.ID == "" {
			t.Fatalf("unexpected payment %+v", got)
		}
	})
}

func TestQuotePaymentUseCase_Lookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPaymentUseCaseForTest(ctrl, PaymentOptions{})

	m.payments.EXPECT().GetByID(gomock.Any(), "mp-404").Return(entities.QuotePayment{}, nil)
	if _, err := uc.GetByID(context.Background(), "mp-404"); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}

	m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", UserID: "u-1"}, nil)
	m.payments.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.QuotePayment{{ID: "mp-1", QuoteID: "q-1"}}, nil)
	got, err := uc.ListByQuoteID(context.Background(), entities.QuoteScope{UserID: "u-1"}, "q-1")
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected result %+v err=%v", got, err)
	}
}
