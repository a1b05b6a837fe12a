package request

import (
	"strings"

	"labtracker/internal/domain/entities"
)

type UpdateUserRoleRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

func (r UpdateUserRoleRequest) ResolveRole() (entities.AppRole, bool) {
	role := entities.AppRole(strings.ToLower(strings.TrimSpace(r.Role)))
	return role, role.IsValid()
}

type GetLabUserEmailRequest struct {
	LabID string `json:"lab_id" binding:"required"`
}

type TrackUsageRequest struct {
	ItemsCount int `json:"items_count" binding:"required,gt=0"`
}

// SetSubscriptionRequest assigns a tier. A zero limit uses the tier default.
type SetSubscriptionRequest struct {
	Tier             string `json:"tier" binding:"required"`
	MonthlyItemLimit int    `json:"monthly_item_limit" binding:"omitempty,min=0"`
}

type StartCustomerImpersonationRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}

type StartLabImpersonationRequest struct {
	LabID string `json:"lab_id" binding:"required"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
