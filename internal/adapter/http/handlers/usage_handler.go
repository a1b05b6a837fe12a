package handlers

import (
	"errors"
	"net/http"

	request "labtracker/internal/adapter/http/dto/request"
	response "labtracker/internal/adapter/http/dto/response"
	"labtracker/internal/adapter/http/middleware"
	"labtracker/internal/domain/entities"
	"labtracker/internal/infrastructure/logger"
	"labtracker/internal/usecase"
	"labtracker/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UsageHandler exposes usage metering and subscription assignment.
type UsageHandler struct {
	usecase usecase.IUsageUseCase
	log     *zap.Logger
}

func NewUsageHandler(uc usecase.IUsageUseCase, log *zap.Logger) *UsageHandler {
	return &UsageHandler{usecase: uc, log: logger.OrNop(log).Named("usage_handler")}
}

// GetUsage godoc
// @Summary  Current month usage against the subscription limit
// @Tags     usage
// @Produce  json
// @Success  200 {object} response.UsageResponse
// @Failure  409 {object} pkg.HTTPError
// @Security Bearer
// @Router   /usage [get]
func (h *UsageHandler) GetUsage(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	if !meteredCaller(c, rc) {
		return
	}
	userID := rc.EffectiveUserID()
	st, err := h.usecase.GetStatus(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, "get", userID, err)
		return
	}
	c.JSON(http.StatusOK, response.FromUsageStatus(userID, st))
}

// TrackUsage godoc
// @Summary  Add items to the caller's monthly usage
// @Tags     functions
// @Accept   json
// @Produce  json
// @Param    body body request.TrackUsageRequest true "Items"
// @Success  200 {object} response.TrackUsageResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  409 {object} pkg.HTTPError
// @Security Bearer
// @Router   /functions/track-usage [post]
func (h *UsageHandler) TrackUsage(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	if !meteredCaller(c, rc) {
		return
	}
	var payload request.TrackUsageRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	userID := rc.EffectiveUserID()
	rec, err := h.usecase.TrackUsage(c.Request.Context(), userID, payload.ItemsCount)
	if err != nil {
		h.fail(c, "track", userID, err)
		return
	}
	c.JSON(http.StatusOK, response.TrackUsageResponse{Success: true, ItemsSentThisMonth: rec.ItemsSentThisMonth})
}

// SetSubscription godoc
// @Summary  Assign a subscription tier to a user
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    user_id path string true "User ID"
// @Param    body    body request.SetSubscriptionRequest true "Tier"
// @Success  200 {object} response.SubscriptionResponse
// @Failure  400 {object} pkg.HTTPError
// @Security Bearer
// @Router   /admin/subscriptions/{user_id} [put]
func (h *UsageHandler) SetSubscription(c *gin.Context) {
	var payload request.SetSubscriptionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	userID := c.Param("user_id")
	sub, err := h.usecase.SetSubscription(c.Request.Context(), userID, entities.SubscriptionTier(payload.Tier), payload.MonthlyItemLimit)
	if err != nil {
		h.fail(c, "set-subscription", userID, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSubscription(sub))
}

// meteredCaller rejects usage calls while a lab is impersonated. Usage is
// metered per customer and a lab identity has none.
func meteredCaller(c *gin.Context, rc middleware.RequestContext) bool {
	if rc.Impersonation.Active() && rc.Impersonation.Kind == entities.ImpersonationLab {
		writeError(c, errLabImpersonation)
		return false
	}
	return true
}

func (h *UsageHandler) fail(c *gin.Context, op, userID string, err error) {
	appErr := mapUsageError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error("usage operation failed", zap.String("op", op), zap.String("user_id", userID), zap.Error(err))
	}
	writeError(c, appErr)
}

func mapUsageError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidUserID), errors.Is(err, usecase.ErrInvalidItemsCount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidSubscriptionTier):
		return pkg.NewDomainErrorSimple("INVALID_TIER", "Tier must be free, pro or enterprise", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUsageLimitExceeded):
		return pkg.NewDomainErrorSimple("USAGE_LIMIT_EXCEEDED", "Monthly item limit exceeded", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
