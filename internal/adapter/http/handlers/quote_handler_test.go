package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"labtracker/internal/adapter/http/handlers/mocks"
	"labtracker/internal/adapter/http/middleware"
	"labtracker/internal/domain/entities"
	"labtracker/internal/domain/pricing"
	"labtracker/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestQuoteHandler_CreateQuote(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl), nil)

		r := newRouter(nil)
		r.POST("/v1/quotes", h.CreateQuote)

		if w := serve(r, http.MethodPost, "/v1/quotes", `{}`); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl), nil)

		r := newRouter(&customerCaller)
		r.POST("/v1/quotes", h.CreateQuote)

		if w := serve(r, http.MethodPost, "/v1/quotes", "{"); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl), nil)

		r := newRouter(&customerCaller)
		r.POST("/v1/quotes", h.CreateQuote)

		if w := serve(r, http.MethodPost, "/v1/quotes", `{"lab_id":"lab-1","items":[]}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("impersonated customer owns the quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc, nil)

		rc := adminCaller
		rc.Impersonation = entities.ImpersonatedUser{Kind: entities.ImpersonationCustomer, ID: "cust-9"}
		r := newRouter(&rc)
		r.POST("/v1/quotes", h.CreateQuote)

		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, cmd usecase.CreateQuoteCommand) (entities.Quote, error) {
			if cmd.UserID != "cust-9" || cmd.LabID != "lab-1" || len(cmd.Items) != 1 || cmd.Items[0].ProductID != "p-1" {
				t.Fatalf("unexpected command: %+v", cmd)
			}
			return entities.Quote{ID: "q-1", Status: entities.QuoteStatusDraft, UserID: cmd.UserID, Items: cmd.Items}, nil
		})

		w := serve(r, http.MethodPost, "/v1/quotes", `{"lab_id":"lab-1","items":[{"product_id":"p-1","additional_samples":2}]}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "q-1" || body["status"] != "draft" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestQuoteHandler_ListAndGet(t *testing.T) {
	t.Run("list uses caller scope", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc, nil)

		r := newRouter(&customerCaller)
		r.GET("/v1/quotes", h.ListQuotes)

		uc.EXPECT().ListQuotes(gomock.Any(), entities.QuoteScope{UserID: "u-1"}).Return([]entities.Quote{{ID: "q-1"}, {ID: "q-2"}}, nil)

		w := serve(r, http.MethodGet, "/v1/quotes", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 2 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("get not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc, nil)

		r := newRouter(&customerCaller)
		r.GET("/v1/quotes/:id", h.GetQuote)

		uc.EXPECT().GetQuote(gomock.Any(), gomock.Any(), "q-404").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		if w := serve(r, http.MethodGet, "/v1/quotes/q-404", ""); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_UpdateQuoteStatus(t *testing.T) {
	t.Run("unknown status rejected before use case", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl), nil)

		r := newRouter(&customerCaller)
		r.PATCH("/v1/quotes/:id/status", h.UpdateQuoteStatus)

		w := serve(r, http.MethodPatch, "/v1/quotes/q-1/status", `{"status":"unknown_status"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "INVALID_QUOTE_STATUS" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc, nil)

		r := newRouter(&customerCaller)
		r.PATCH("/v1/quotes/:id/status", h.UpdateQuoteStatus)

		uc.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), "q-1", entities.QuoteStatusPaid).Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPaid}, nil)

		w := serve(r, http.MethodPatch, "/v1/quotes/q-1/status", `{"status":"paid"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_UpdateQuote(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl), nil)

		r := newRouter(&customerCaller)
		r.PATCH("/v1/quotes/:id", h.UpdateQuote)

		if w := serve(r, http.MethodPatch, "/v1/quotes/q-1", `{}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("patch forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc, nil)

		r := newRouter(&customerCaller)
		r.PATCH("/v1/quotes/:id", h.UpdateQuote)

		uc.EXPECT().UpdateQuote(gomock.Any(), gomock.Any(), "q-1", gomock.Any()).DoAndReturn(func(_, _ any, _ string, p entities.QuotePatch) (entities.Quote, error) {
			if p.TrackingNumber == nil || *p.TrackingNumber != "TRK-1" || p.Status != nil {
				t.Fatalf("unexpected patch: %+v", p)
			}
			return entities.Quote{ID: "q-1", TrackingNumber: "TRK-1"}, nil
		})

		if w := serve(r, http.MethodPatch, "/v1/quotes/q-1", `{"tracking_number":"TRK-1"}`); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_UpdateItemPricing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	h := NewQuoteHandler(uc, nil)

	r := newRouter(&customerCaller)
	r.PATCH("/v1/quotes/:id/items/:item_id", h.UpdateItemPricing)

	uc.EXPECT().UpdateItemPricing(gomock.Any(), gomock.Any(), "q-1", gomock.Any()).DoAndReturn(func(_, _ any, _ string, it entities.QuoteItem) (entities.QuoteItem, error) {
		if it.ID != "it-1" || it.Price == nil || *it.Price != "99.90" {
			t.Fatalf("unexpected item: %+v", it)
		}
		return it, nil
	})

	if w := serve(r, http.MethodPatch, "/v1/quotes/q-1/items/it-1", `{"price":"99.90"}`); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestQuoteHandler_DeleteQuote(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc, nil)

		r := newRouter(&customerCaller)
		r.DELETE("/v1/quotes/:id", h.DeleteQuote)

		uc.EXPECT().DeleteQuote(gomock.Any(), entities.QuoteScope{UserID: "u-1"}, "q-1").Return(nil)

		if w := serve(r, http.MethodDelete, "/v1/quotes/q-1", ""); w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("backend failure passes message through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc, nil)

		r := newRouter(&customerCaller)
		r.DELETE("/v1/quotes/:id", h.DeleteQuote)

		uc.EXPECT().DeleteQuote(gomock.Any(), gomock.Any(), "q-1").Return(errors.New("delete quote items: throttled"))

		w := serve(r, http.MethodDelete, "/v1/quotes/q-1", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		var body map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["message"] != "An internal error occurred: delete quote items: throttled" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestQuoteHandler_SendToVendor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	h := NewQuoteHandler(uc, nil)

	r := newRouter(&customerCaller)
	r.POST("/v1/quotes/:id/send", h.SendToVendor)

	uc.EXPECT().SendToVendor(gomock.Any(), gomock.Any(), "q-1").Return(entities.Quote{}, usecase.ErrUsageLimitExceeded)

	w := serve(r, http.MethodPost, "/v1/quotes/q-1/send", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	uc.EXPECT().SendToVendor(gomock.Any(), gomock.Any(), "q-2").Return(entities.Quote{}, usecase.ErrQuoteNotDraft)

	w = serve(r, http.MethodPost, "/v1/quotes/q-2/send", "")
	if w.Code != http.StatusConflict || !strings.Contains(w.Body.String(), "QUOTE_NOT_DRAFT") {
		t.Fatalf("expected 409 QUOTE_NOT_DRAFT, got %d: %s", w.Code, w.Body.String())
	}
}

func TestQuoteHandler_PricingAndPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	h := NewQuoteHandler(uc, nil)

	lab := middleware.RequestContext{UserID: "lab-user", Role: entities.AppRoleLab, LabID: "lab-1"}
	r := newRouter(&lab)
	r.GET("/v1/quotes/:id/pricing", h.GetQuotePricing)
	r.GET("/v1/dashboard/pipeline", h.GetPipeline)

	uc.EXPECT().PriceQuote(gomock.Any(), gomock.Any(), "q-1").Return(pricing.QuoteBreakdown{Total: 150}, nil)
	uc.EXPECT().PipelineSummary(gomock.Any(), entities.QuoteScope{UserID: "lab-user", LabID: "lab-1"}).
		Return(entities.SummarizePipeline([]entities.Quote{{Status: entities.QuoteStatusDraft}, {Status: entities.QuoteStatusDraft}, {Status: entities.QuoteStatusPaid}, {Status: "unknown_status"}}), nil)

	w := serve(r, http.MethodGet, "/v1/quotes/q-1/pricing", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var priced map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &priced)
	if priced["total"] != float64(150) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	w = serve(r, http.MethodGet, "/v1/dashboard/pipeline", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Counts map[string]int `json:"counts"`
		Total  int            `json:"total"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Counts["draft"] != 2 || body.Counts["paid"] != 1 || body.Counts["completed"] != 0 || body.Total != 3 {
		t.Fatalf("unexpected pipeline: %s", w.Body.String())
	}
}

func TestMapQuoteError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{usecase.ErrInvalidQuoteID, http.StatusBadRequest},
		{usecase.ErrInvalidQuoteInput, http.StatusBadRequest},
		{usecase.ErrInvalidItemsCount, http.StatusBadRequest},
		{usecase.ErrInvalidQuoteStatus, http.StatusBadRequest},
		{usecase.ErrQuoteNotFound, http.StatusNotFound},
		{usecase.ErrQuoteItemNotFound, http.StatusNotFound},
		{usecase.ErrUsageLimitExceeded, http.StatusConflict},
		{usecase.ErrQuoteNotDraft, http.StatusConflict},
		{usecase.ErrSubscriptionNotFound, http.StatusConflict},
		{usecase.ErrSubscriptionInactive, http.StatusConflict},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := mapQuoteError(tc.err); got.HTTPStatus != tc.code {
			t.Fatalf("for err %v expected %d got %d", tc.err, tc.code, got.HTTPStatus)
		}
	}
}
