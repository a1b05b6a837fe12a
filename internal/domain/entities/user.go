package entities

import "time"

// AppRole is the role stored in user_roles.
type AppRole string

const (
	AppRoleAdmin    AppRole = "admin"
	AppRoleLab      AppRole = "lab"
	AppRoleCustomer AppRole = "customer"
)

// LeastPrivilegedRole is assumed whenever a role cannot be resolved.
const LeastPrivilegedRole = AppRoleCustomer

// IsValid reports whether r is a known role.
func (r AppRole) IsValid() bool {
	switch r {
	case AppRoleAdmin, AppRoleLab, AppRoleCustomer:
		return true
	}
	return false
}

// UserRole maps a user to its role.
type UserRole struct {
	UserID    string    `json:"user_id"`
	Role      AppRole   `json:"role"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile holds the public account data of a user.
type Profile struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	FullName            string    `json:"full_name"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
}

// UserWithRole is the list-users projection.
type UserWithRole struct {
	Profile
	Role AppRole `json:"role"`
}

// LabUser links a user account to a lab.
type LabUser struct {
	LabID  string `json:"lab_id"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Lab is the organization that prices, ships and tests samples.
type Lab struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// Product is a testable product referenced by quote items.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Compound     string  `json:"compound"`
	DefaultPrice float64 `json:"default_price"`
}
