package response

import (
	"labtracker/internal/domain/entities"
	"labtracker/internal/domain/metering"
)

type UserResponse struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	FullName            string `json:"full_name"`
	Role                string `json:"role"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
}

func FromUsers(users []entities.UserWithRole) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserResponse{
			ID:                  u.ID,
			Email:               u.Email,
			FullName:            u.FullName,
			Role:                string(u.Role),
			OnboardingCompleted: u.OnboardingCompleted,
		})
	}
	return out
}

type UserRoleResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type LabUserEmailResponse struct {
	LabID string `json:"lab_id"`
	Email string `json:"email"`
}

// MeResponse describes the caller, including any impersonation in effect.
type MeResponse struct {
	UserID              string                 `json:"user_id"`
	Email               string                 `json:"email,omitempty"`
	Role                string                 `json:"role"`
	LabID               string                 `json:"lab_id,omitempty"`
	OnboardingCompleted bool                   `json:"onboarding_completed"`
	Impersonating       *ImpersonationResponse `json:"impersonating,omitempty"`
}

type ImpersonationResponse struct {
	Active bool   `json:"active"`
	Kind   string `json:"kind,omitempty"`
	ID     string `json:"id,omitempty"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
}

func FromImpersonation(u entities.ImpersonatedUser) ImpersonationResponse {
	if !u.Active() {
		return ImpersonationResponse{}
	}
	return ImpersonationResponse{Active: true, Kind: string(u.Kind), ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

type UsageResponse struct {
	UserID           string  `json:"user_id"`
	Tier             string  `json:"tier,omitempty"`
	MonthlyItemLimit int     `json:"monthly_item_limit"`
	ItemsSent        int     `json:"items_sent_this_month"`
	Remaining        int     `json:"remaining"`
	UsagePercentage  float64 `json:"usage_percentage"`
	DaysUntilReset   int     `json:"days_until_reset"`
	HasSubscription  bool    `json:"has_subscription"`
	IsActive         bool    `json:"is_active"`
}

func FromUsageStatus(userID string, s metering.Status) UsageResponse {
	res := UsageResponse{
		UserID:          userID,
		Remaining:       s.Remaining,
		UsagePercentage: s.UsagePercentage,
		DaysUntilReset:  s.DaysUntilReset,
	}
	if sub := s.Subscription; sub != nil {
		res.HasSubscription = true
		res.Tier = string(sub.Tier)
		res.MonthlyItemLimit = sub.MonthlyItemLimit
		res.IsActive = sub.IsActive
	}
	if s.Usage != nil {
		res.ItemsSent = s.Usage.ItemsSentThisMonth
	}
	return res
}

type TrackUsageResponse struct {
	Success            bool `json:"success"`
	ItemsSentThisMonth int  `json:"items_sent_this_month"`
}

type SubscriptionResponse struct {
	UserID           string `json:"user_id"`
	Tier             string `json:"tier"`
	MonthlyItemLimit int    `json:"monthly_item_limit"`
	IsActive         bool   `json:"is_active"`
}

func FromSubscription(s entities.Subscription) SubscriptionResponse {
	return SubscriptionResponse{UserID: s.UserID, Tier: string(s.Tier), MonthlyItemLimit: s.MonthlyItemLimit, IsActive: s.IsActive}
}
