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

var (
	errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)
)

// QuoteHandler handles HTTP requests for quotes, their items and the
// dashboard pipeline. Every call is scoped to the effective caller.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
	log     *zap.Logger
}

func NewQuoteHandler(uc usecase.IQuoteUseCase, log *zap.Logger) *QuoteHandler {
	return &QuoteHandler{usecase: uc, log: logger.OrNop(log).Named("quote_handler")}
}

// CreateQuote godoc
// @Summary  Create a draft quote
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    body body request.CreateQuoteRequest true "Quote"
// @Success  201 {object} response.QuoteResponse
// @Failure  400 {object} pkg.HTTPError
// @Security Bearer
// @Router   /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}

	q, err := h.usecase.CreateQuote(c.Request.Context(), usecase.CreateQuoteCommand{
		UserID: rc.EffectiveUserID(),
		LabID:  payload.LabID,
		Notes:  payload.Notes,
		Items:  payload.ItemEntities(),
	})
	if err != nil {
		h.fail(c, "create", "", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q))
}

// ListQuotes godoc
// @Summary  List quotes visible to the caller
// @Tags     quotes
// @Produce  json
// @Success  200 {array} response.QuoteResponse
// @Security Bearer
// @Router   /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	quotes, err := h.usecase.ListQuotes(c.Request.Context(), rc.Scope())
	if err != nil {
		h.fail(c, "list", "", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

// GetQuote godoc
// @Summary  Get a quote with its items
// @Tags     quotes
// @Produce  json
// @Param    id path string true "Quote ID"
// @Success  200 {object} response.QuoteResponse
// @Failure  404 {object} pkg.HTTPError
// @Security Bearer
// @Router   /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	q, err := h.usecase.GetQuote(c.Request.Context(), rc.Scope(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// UpdateQuoteStatus godoc
// @Summary  Set a quote's status
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    id   path string true "Quote ID"
// @Param    body body request.UpdateQuoteStatusRequest true "Status"
// @Success  200 {object} response.QuoteResponse
// @Failure  400 {object} pkg.HTTPError
// @Security Bearer
// @Router   /quotes/{id}/status [patch]
func (h *QuoteHandler) UpdateQuoteStatus(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var payload request.UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}
	status, err := payload.ResolveStatus()
	if err != nil {
		writeError(c, mapQuoteError(usecase.ErrInvalidQuoteStatus))
		return
	}

	q, err := h.usecase.UpdateStatus(c.Request.Context(), rc.Scope(), c.Param("id"), status)
	if err != nil {
		h.fail(c, "update-status", c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// UpdateQuote godoc
// @Summary  Patch quote fields
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    id   path string true "Quote ID"
// @Param    body body request.UpdateQuoteRequest true "Patch"
// @Success  200 {object} response.QuoteResponse
// @Security Bearer
// @Router   /quotes/{id} [patch]
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var payload request.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}
	patch, err := payload.ToPatch()
	if err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}

	q, err := h.usecase.UpdateQuote(c.Request.Context(), rc.Scope(), c.Param("id"), patch)
	if err != nil {
		h.fail(c, "update", c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// UpdateItemPricing godoc
// @Summary  Set price overrides on a quote item
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    id      path string true "Quote ID"
// @Param    item_id path string true "Item ID"
// @Param    body    body request.UpdateItemPricingRequest true "Pricing"
// @Success  200 {object} response.QuoteItemResponse
// @Security Bearer
// @Router   /quotes/{id}/items/{item_id} [patch]
func (h *QuoteHandler) UpdateItemPricing(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var payload request.UpdateItemPricingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}

	item, err := h.usecase.UpdateItemPricing(c.Request.Context(), rc.Scope(), c.Param("id"), payload.ToEntity(c.Param("item_id")))
	if err != nil {
		h.fail(c, "update-item", c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteItem(item))
}

// DeleteQuote godoc
// @Summary  Delete a quote and its items
// @Tags     quotes
// @Param    id path string true "Quote ID"
// @Success  204
// @Failure  404 {object} pkg.HTTPError
// @Security Bearer
// @Router   /quotes/{id} [delete]
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	if err := h.usecase.DeleteQuote(c.Request.Context(), rc.Scope(), c.Param("id")); err != nil {
		h.fail(c, "delete", c.Param("id"), err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SendToVendor godoc
// @Summary  Send a quote to its lab, metering its items
// @Tags     quotes
// @Produce  json
// @Param    id path string true "Quote ID"
// @Success  200 {object} response.QuoteResponse
// @Failure  409 {object} pkg.HTTPError
// @Security Bearer
// @Router   /quotes/{id}/send [post]
func (h *QuoteHandler) SendToVendor(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	q, err := h.usecase.SendToVendor(c.Request.Context(), rc.Scope(), c.Param("id"))
	if err != nil {
		h.fail(c, "send", c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// GetQuotePricing godoc
// @Summary  Price a quote
// @Tags     quotes
// @Produce  json
// @Param    id path string true "Quote ID"
// @Success  200 {object} response.QuotePricingResponse
// @Security Bearer
// @Router   /quotes/{id}/pricing [get]
func (h *QuoteHandler) GetQuotePricing(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	b, err := h.usecase.PriceQuote(c.Request.Context(), rc.Scope(), c.Param("id"))
	if err != nil {
		h.fail(c, "pricing", c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteBreakdown(c.Param("id"), b))
}

// GetPipeline godoc
// @Summary  Count visible quotes per status
// @Tags     dashboard
// @Produce  json
// @Success  200 {object} response.PipelineResponse
// @Security Bearer
// @Router   /dashboard/pipeline [get]
func (h *QuoteHandler) GetPipeline(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	s, err := h.usecase.PipelineSummary(c.Request.Context(), rc.Scope())
	if err != nil {
		h.fail(c, "pipeline", "", err)
		return
	}
	c.JSON(http.StatusOK, response.FromPipelineSummary(s))
}

func (h *QuoteHandler) fail(c *gin.Context, op, quoteID string, err error) {
	appErr := mapQuoteError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error("quote operation failed", zap.String("op", op), zap.String("quote_id", quoteID), zap.Error(err))
	}
	writeError(c, appErr)
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidQuoteInput), errors.Is(err, usecase.ErrEmptyQuotePatch), errors.Is(err, usecase.ErrInvalidItemsCount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidQuoteStatus):
		return pkg.NewDomainErrorSimple("INVALID_QUOTE_STATUS", "Unknown quote status", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteItemNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_ITEM_NOT_FOUND", "Quote item not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotDraft):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_DRAFT", "Only draft quotes can be sent to the vendor", http.StatusConflict)
	case errors.Is(err, usecase.ErrUsageLimitExceeded):
		return pkg.NewDomainErrorSimple("USAGE_LIMIT_EXCEEDED", "Monthly item limit exceeded", http.StatusConflict)
	case errors.Is(err, usecase.ErrSubscriptionNotFound):
		return pkg.NewDomainErrorSimple("SUBSCRIPTION_NOT_FOUND", "No subscription for this user", http.StatusConflict)
	case errors.Is(err, usecase.ErrSubscriptionInactive):
		return pkg.NewDomainErrorSimple("SUBSCRIPTION_INACTIVE", "Subscription is not active", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
