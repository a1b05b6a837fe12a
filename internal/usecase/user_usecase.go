package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"labtracker/internal/domain/entities"
	"labtracker/internal/infrastructure/logger"
	"labtracker/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidLabID    = errors.New("invalid lab id")
	ErrLabUserNotFound = errors.New("lab user not found")
	ErrProfileNotFound = errors.New("profile not found")
)

// IUserUseCase backs the account administration functions and the
// per-request role resolution.

type IUserUseCase interface {
	ResolveRole(ctx context.Context, userID string) (entities.AppRole, error)
	ResolveLabID(ctx context.Context, userID string) (string, error)
	ListUsers(ctx context.Context) ([]entities.UserWithRole, error)
	ListAdmins(ctx context.Context) ([]entities.UserWithRole, error)
	UpdateUserRole(ctx context.Context, userID string, role entities.AppRole) (entities.UserRole, error)
	GetLabUserEmail(ctx context.Context, labID string) (string, error)
	GetOnboardingStatus(ctx context.Context, userID string) (bool, error)
}

type UserUseCase struct {
	roles    interfaces.IUserRoleRepository
	profiles interfaces.IProfileRepository
	labUsers interfaces.ILabUserRepository
	log      *zap.Logger
}

var _ IUserUseCase = (*UserUseCase)(nil)

func NewUserUseCase(roles interfaces.IUserRoleRepository, profiles interfaces.IProfileRepository, labUsers interfaces.ILabUserRepository, log *zap.Logger) *UserUseCase {
	return &UserUseCase{roles: roles, profiles: profiles, labUsers: labUsers, log: logger.OrNop(log).Named("user")}
}

// ResolveRole reads the caller's role. Users without a role row are
// customers; lookup failures are returned to the caller.
func (u *UserUseCase) ResolveRole(ctx context.Context, userID string) (entities.AppRole, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", ErrInvalidUserID
	}
	role, err := u.roles.GetRole(ctx, userID)
	if err != nil {
		return "", err
	}
	if !role.IsValid() {
		return entities.LeastPrivilegedRole, nil
	}
	return role, nil
}

// ResolveLabID returns the lab a lab-role user belongs to, or "".
func (u *UserUseCase) ResolveLabID(ctx context.Context, userID string) (string, error) {
	if u.labUsers == nil {
		return "", nil
	}
	lu, err := u.labUsers.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return lu.LabID, nil
}

func (u *UserUseCase) ListUsers(ctx context.Context) ([]entities.UserWithRole, error) {
	profiles, err := u.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := u.roles.ListRoles(ctx)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string]entities.AppRole, len(roles))
	for _, r := range roles {
		byUser[r.UserID] = r.Role
	}

	out := make([]entities.UserWithRole, 0, len(profiles))
	for _, p := range profiles {
		role, ok := byUser[p.ID]
		if !ok || !role.IsValid() {
			role = entities.LeastPrivilegedRole
		}
		out = append(out, entities.UserWithRole{Profile: p, Role: role})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (u *UserUseCase) ListAdmins(ctx context.Context) ([]entities.UserWithRole, error) {
	users, err := u.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	admins := make([]entities.UserWithRole, 0)
	for _, usr := range users {
		if usr.Role == entities.AppRoleAdmin {
			admins = append(admins, usr)
		}
	}
	return admins, nil
}

func (u *UserUseCase) UpdateUserRole(ctx context.Context, userID string, role entities.AppRole) (entities.UserRole, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.UserRole{}, ErrInvalidUserID
	}
	if !role.IsValid() {
		return entities.UserRole{}, ErrInvalidRole
	}

	p, err := u.profiles.GetByID(ctx, userID)
	if err != nil {
		return entities.UserRole{}, err
	}
	if p.ID == "" {
		return entities.UserRole{}, ErrProfileNotFound
	}

	updated, err := u.roles.SetRole(ctx, userID, role)
	if err != nil {
		return entities.UserRole{}, err
	}
	u.log.Info("user role updated", zap.String("user_id", userID), zap.String("role", string(role)))
	return updated, nil
}

// GetLabUserEmail returns the email of the first account linked to labID.
func (u *UserUseCase) GetLabUserEmail(ctx context.Context, labID string) (string, error) {
	labID = strings.TrimSpace(labID)
	if labID == "" {
		return "", ErrInvalidLabID
	}

	labUsers, err := u.labUsers.ListByLabID(ctx, labID)
	if err != nil {
		return "", err
	}
	for _, lu := range labUsers {
		p, err := u.profiles.GetByID(ctx, lu.UserID)
		if err != nil {
			return "", err
		}
		if p.ID != "" && p.Email != "" {
			return p.Email, nil
		}
	}
	return "", ErrLabUserNotFound
}

func (u *UserUseCase) GetOnboardingStatus(ctx context.Context, userID string) (bool, error) {
	p, err := u.profiles.GetByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return false, err
	}
	if p.ID == "" {
		return false, ErrProfileNotFound
	}
	return p.OnboardingCompleted, nil
}
