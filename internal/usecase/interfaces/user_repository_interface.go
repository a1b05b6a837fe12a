package interfaces

import (
	"context"
	"labtracker/internal/domain/entities"
)

// IUserRoleRepository abstracts the user_roles table.
// GetRole returns "" with nil error when the user has no role row.

type IUserRoleRepository interface {
	GetRole(ctx context.Context, userID string) (entities.AppRole, error)
	SetRole(ctx context.Context, userID string, role entities.AppRole) (entities.UserRole, error)
	ListRoles(ctx context.Context) ([]entities.UserRole, error)
}

// IProfileRepository abstracts the profiles table.

type IProfileRepository interface {
	GetByID(ctx context.Context, id string) (entities.Profile, error)
	List(ctx context.Context) ([]entities.Profile, error)
}

// ILabUserRepository abstracts the lab_users table.

type ILabUserRepository interface {
	ListByLabID(ctx context.Context, labID string) ([]entities.LabUser, error)
	GetByUserID(ctx context.Context, userID string) (entities.LabUser, error)
}
