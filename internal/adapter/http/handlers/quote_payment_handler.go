package handlers

import (
	"errors"
	"net/http"

	request "labtracker/internal/adapter/http/dto/request"
	response "labtracker/internal/adapter/http/dto/response"
	"labtracker/internal/infrastructure/logger"
	"labtracker/internal/usecase"
	"labtracker/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QuotePaymentHandler handles HTTP requests for quote payments.
type QuotePaymentHandler struct {
	usecase usecase.IQuotePaymentUseCase
	log     *zap.Logger
}

func NewQuotePaymentHandler(uc usecase.IQuotePaymentUseCase, log *zap.Logger) *QuotePaymentHandler {
	return &QuotePaymentHandler{usecase: uc, log: logger.OrNop(log).Named("payment_handler")}
}

// PayQuote godoc
// @Summary  Charge a quote awaiting payment
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    quote_id path string true "Quote ID"
// @Param    body     body request.QuotePaymentCreateRequest false "Provider payload"
// @Success  200 {object} response.QuotePaymentResponse
// @Failure  402 {object} pkg.HTTPError
// @Failure  409 {object} pkg.HTTPError
// @Security Bearer
// @Router   /payments/{quote_id} [post]
func (h *QuotePaymentHandler) PayQuote(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	quoteID := c.Param("quote_id")
	h.log.Info("create payment start", zap.String("quote_id", quoteID))

	raw, err := c.GetRawData()
	if err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	// an unusable body is passed on empty; the use case rejects it unless
	// the gateway runs in mock mode
	payload, err := request.ParseProviderPayload(raw)
	if err != nil {
		h.log.Info("unusable payment payload", zap.String("quote_id", quoteID), zap.Error(err))
		payload = nil
	}

	created, err := h.usecase.PayQuote(c.Request.Context(), rc.Scope(), quoteID, payload)
	if err != nil {
		appErr := mapQuotePaymentError(err)
		h.log.Warn("create payment failed", zap.String("quote_id", quoteID), zap.Int("status", appErr.HTTPStatus), zap.Error(err))
		writeError(c, appErr)
		return
	}
	h.log.Info("create payment success", zap.String("quote_id", quoteID), zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))

	c.JSON(http.StatusOK, response.FromQuotePayment(created))
}

// GetLatestPayment godoc
// @Summary  Latest payment of a quote
// @Tags     payments
// @Produce  json
// @Param    quote_id path string true "Quote ID"
// @Success  200 {object} response.QuotePaymentResponse
// @Failure  404 {object} pkg.HTTPError
// @Security Bearer
// @Router   /payments/{quote_id} [get]
func (h *QuotePaymentHandler) GetLatestPayment(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	quoteID := c.Param("quote_id")

	payments, err := h.usecase.ListByQuoteID(c.Request.Context(), rc.Scope(), quoteID)
	if err != nil {
		writeError(c, mapQuotePaymentError(err))
		return
	}
	if len(payments) == 0 {
		writeError(c, mapQuotePaymentError(usecase.ErrPaymentNotFound))
		return
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	c.JSON(http.StatusOK, response.FromQuotePayment(latest))
}

func mapQuotePaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentQuoteID), errors.Is(err, usecase.ErrInvalidProviderPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentDeclined):
		return pkg.NewDomainErrorSimple("PAYMENT_DECLINED", "Payment declined", http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotAwaitingPayment):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_AWAITING_PAYMENT", "Quote is not awaiting payment", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteTotalNotPositive):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_PRICED", "Quote total must be positive", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
