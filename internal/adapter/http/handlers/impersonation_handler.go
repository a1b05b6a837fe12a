package handlers

import (
	"errors"
	"net/http"

	request "labtracker/internal/adapter/http/dto/request"
	response "labtracker/internal/adapter/http/dto/response"
	"labtracker/internal/impersonation"
	"labtracker/internal/infrastructure/logger"
	"labtracker/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImpersonationHandler lets an admin session act as a customer or a lab.
// The session is named by the X-Session-ID header.
type ImpersonationHandler struct {
	sw  impersonation.ISwitch
	log *zap.Logger
}

func NewImpersonationHandler(sw impersonation.ISwitch, log *zap.Logger) *ImpersonationHandler {
	return &ImpersonationHandler{sw: sw, log: logger.OrNop(log).Named("impersonation_handler")}
}

// GetImpersonation godoc
// @Summary  Impersonation active for the session
// @Tags     impersonation
// @Produce  json
// @Param    X-Session-ID header string true "Session"
// @Success  200 {object} response.ImpersonationResponse
// @Security Bearer
// @Router   /impersonation [get]
func (h *ImpersonationHandler) GetImpersonation(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	current, err := h.sw.Current(c.Request.Context(), rc.SessionID)
	if err != nil {
		writeError(c, mapImpersonationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromImpersonation(current))
}

// StartCustomer godoc
// @Summary  Act as a customer
// @Tags     impersonation
// @Accept   json
// @Produce  json
// @Param    X-Session-ID header string true "Session"
// @Param    body body request.StartCustomerImpersonationRequest true "Customer"
// @Success  200 {object} response.ImpersonationResponse
// @Failure  400 {object} pkg.HTTPError
// @Security Bearer
// @Router   /impersonation/customer [post]
func (h *ImpersonationHandler) StartCustomer(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var payload request.StartCustomerImpersonationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	u, err := h.sw.StartCustomer(c.Request.Context(), rc.SessionID, payload.CustomerID, payload.Email, payload.Name)
	if err != nil {
		writeError(c, mapImpersonationError(err))
		return
	}
	h.log.Info("admin impersonating customer", zap.String("admin", rc.UserID), zap.String("customer", u.ID))
	c.JSON(http.StatusOK, response.FromImpersonation(u))
}

// StartLab godoc
// @Summary  Act as a lab
// @Tags     impersonation
// @Accept   json
// @Produce  json
// @Param    X-Session-ID header string true "Session"
// @Param    body body request.StartLabImpersonationRequest true "Lab"
// @Success  200 {object} response.ImpersonationResponse
// @Failure  400 {object} pkg.HTTPError
// @Security Bearer
// @Router   /impersonation/lab [post]
func (h *ImpersonationHandler) StartLab(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var payload request.StartLabImpersonationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	u, err := h.sw.StartLab(c.Request.Context(), rc.SessionID, payload.LabID, payload.Name, payload.Role)
	if err != nil {
		writeError(c, mapImpersonationError(err))
		return
	}
	h.log.Info("admin impersonating lab", zap.String("admin", rc.UserID), zap.String("lab", u.ID))
	c.JSON(http.StatusOK, response.FromImpersonation(u))
}

// StopImpersonation godoc
// @Summary  Return to the admin's own identity
// @Tags     impersonation
// @Param    X-Session-ID header string true "Session"
// @Success  204
// @Security Bearer
// @Router   /impersonation [delete]
func (h *ImpersonationHandler) StopImpersonation(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	if err := h.sw.Stop(c.Request.Context(), rc.SessionID); err != nil {
		writeError(c, mapImpersonationError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func mapImpersonationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, impersonation.ErrMissingSession):
		return pkg.NewDomainErrorSimple("MISSING_SESSION", "X-Session-ID header is required", http.StatusBadRequest)
	case errors.Is(err, impersonation.ErrMissingTarget):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
