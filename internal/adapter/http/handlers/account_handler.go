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

// AccountHandler serves the caller's account view and the privileged
// account functions. Role checks happen in the route middleware.
type AccountHandler struct {
	users usecase.IUserUseCase
	log   *zap.Logger
}

func NewAccountHandler(users usecase.IUserUseCase, log *zap.Logger) *AccountHandler {
	return &AccountHandler{users: users, log: logger.OrNop(log).Named("account_handler")}
}

// Me godoc
// @Summary  Caller role, onboarding status and impersonation
// @Tags     account
// @Produce  json
// @Success  200 {object} response.MeResponse
// @Security Bearer
// @Router   /me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	onboarded, err := h.users.GetOnboardingStatus(c.Request.Context(), rc.UserID)
	if err != nil {
		h.log.Info("onboarding status unavailable", zap.String("user_id", rc.UserID), zap.Error(err))
		onboarded = false
	}

	res := response.MeResponse{
		UserID:              rc.UserID,
		Email:               rc.Email,
		Role:                string(rc.Role),
		LabID:               rc.LabID,
		OnboardingCompleted: onboarded,
	}
	if rc.Impersonation.Active() {
		imp := response.FromImpersonation(rc.Impersonation)
		res.Impersonating = &imp
	}
	c.JSON(http.StatusOK, res)
}

// ListUsers godoc
// @Summary  List every profile with its role
// @Tags     functions
// @Produce  json
// @Success  200 {object} map[string][]response.UserResponse
// @Failure  403 {object} pkg.HTTPError
// @Security Bearer
// @Router   /functions/list-users [post]
func (h *AccountHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, "list-users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": response.FromUsers(users)})
}

// ListAdmins godoc
// @Summary  List admin accounts
// @Tags     functions
// @Produce  json
// @Success  200 {object} map[string][]response.UserResponse
// @Failure  403 {object} pkg.HTTPError
// @Security Bearer
// @Router   /functions/list-admins [post]
func (h *AccountHandler) ListAdmins(c *gin.Context) {
	admins, err := h.users.ListAdmins(c.Request.Context())
	if err != nil {
		h.fail(c, "list-admins", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admins": response.FromUsers(admins)})
}

// UpdateUserRole godoc
// @Summary  Change a user's role
// @Tags     functions
// @Accept   json
// @Produce  json
// @Param    body body request.UpdateUserRoleRequest true "Role change"
// @Success  200 {object} response.UserRoleResponse
// @Failure  400 {object} pkg.HTTPError
// @Security Bearer
// @Router   /functions/update-user-role [post]
func (h *AccountHandler) UpdateUserRole(c *gin.Context) {
	var payload request.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	role, ok := payload.ResolveRole()
	if !ok {
		writeError(c, mapAccountError(usecase.ErrInvalidRole))
		return
	}

	updated, err := h.users.UpdateUserRole(c.Request.Context(), payload.UserID, role)
	if err != nil {
		h.fail(c, "update-user-role", err)
		return
	}
	c.JSON(http.StatusOK, response.UserRoleResponse{UserID: updated.UserID, Role: string(updated.Role)})
}

// GetLabUserEmail godoc
// @Summary  Contact email of a lab's account
// @Tags     functions
// @Accept   json
// @Produce  json
// @Param    body body request.GetLabUserEmailRequest true "Lab"
// @Success  200 {object} response.LabUserEmailResponse
// @Failure  404 {object} pkg.HTTPError
// @Security Bearer
// @Router   /functions/get-lab-user-email [post]
func (h *AccountHandler) GetLabUserEmail(c *gin.Context) {
	var payload request.GetLabUserEmailRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	email, err := h.users.GetLabUserEmail(c.Request.Context(), payload.LabID)
	if err != nil {
		h.fail(c, "get-lab-user-email", err)
		return
	}
	c.JSON(http.StatusOK, response.LabUserEmailResponse{LabID: payload.LabID, Email: email})
}

func (h *AccountHandler) fail(c *gin.Context, op string, err error) {
	appErr := mapAccountError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error("account function failed", zap.String("op", op), zap.Error(err))
	}
	writeError(c, appErr)
}

func mapAccountError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidUserID), errors.Is(err, usecase.ErrInvalidLabID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidRole):
		return pkg.NewDomainErrorSimple("INVALID_ROLE", "Role must be admin, lab or customer", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrLabUserNotFound):
		return pkg.NewDomainErrorSimple("LAB_USER_NOT_FOUND", "No user found for this lab", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
