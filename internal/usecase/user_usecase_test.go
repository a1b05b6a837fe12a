package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"labtracker/internal/domain/entities"
	mock_interfaces "labtracker/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type userMocks struct {
	roles    *mock_interfaces.MockIUserRoleRepository
	profiles *mock_interfaces.MockIProfileRepository
	labUsers *mock_interfaces.MockILabUserRepository
}

func newUserUseCaseForTest(ctrl *gomock.Controller) (*UserUseCase, userMocks) {
	m := userMocks{
		roles:    mock_interfaces.NewMockIUserRoleRepository(ctrl),
		profiles: mock_interfaces.NewMockIProfileRepository(ctrl),
		labUsers: mock_interfaces.NewMockILabUserRepository(ctrl),
	}
	return NewUserUseCase(m.roles, m.profiles, m.labUsers, nil), m
}

func TestUserUseCase_ResolveRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newUserUseCaseForTest(ctrl)

	m.roles.EXPECT().GetRole(gomock.Any(), "u-1").Return(entities.AppRoleAdmin, nil)
	m.roles.EXPECT().GetRole(gomock.Any(), "u-2").Return(entities.AppRole(""), nil)
	m.roles.EXPECT().GetRole(gomock.Any(), "u-3").Return(entities.AppRole(""), errors.New("db"))

	if r, err := uc.ResolveRole(context.Background(), "u-1"); err != nil || r != entities.AppRoleAdmin {
		t.Fatalf("expected admin, got %s err=%v", r, err)
	}
	if r, err := uc.ResolveRole(context.Background(), "u-2"); err != nil || r != entities.AppRoleCustomer {
		t.Fatalf("expected customer default, got %s err=%v", r, err)
	}
	if _, err := uc.ResolveRole(context.Background(), "u-3"); err == nil {
		t.Fatalf("expected lookup error")
	}
}

func TestUserUseCase_ListUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newUserUseCaseForTest(ctrl)

	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.profiles.EXPECT().List(gomock.Any()).Return([]entities.Profile{
		{ID: "u-old", Email: "old@x.com", CreatedAt: old},
		{ID: "u-new", Email: "new@x.com", CreatedAt: old.AddDate(0, 1, 0)},
	}, nil).Times(2)
	m.roles.EXPECT().ListRoles(gomock.Any()).Return([]entities.UserRole{{UserID: "u-old", Role: entities.AppRoleAdmin}}, nil).Times(2)

	users, err := uc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[0].ID != "u-new" {
		t.Fatalf("expected newest first, got %+v", users)
	}
	if users[0].Role != entities.AppRoleCustomer || users[1].Role != entities.AppRoleAdmin {
		t.Fatalf("unexpected roles %+v", users)
	}

	admins, err := uc.ListAdmins(context.Background())
	if err != nil || len(admins) != 1 || admins[0].ID != "u-old" {
		t.Fatalf("unexpected admins %+v err=%v", admins, err)
	}
}

func TestUserUseCase_UpdateUserRole(t *testing.T) {
	t.Run("invalid role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newUserUseCaseForTest(ctrl)

		if _, err := uc.UpdateUserRole(context.Background(), "u-1", "superuser"); !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("expected ErrInvalidRole, got %v", err)
		}
	})

	t.Run("unknown profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newUserUseCaseForTest(ctrl)

		m.profiles.EXPECT().GetByID(gomock.Any(), "u-1").Return(entities.Profile{}, nil)

		if _, err := uc.UpdateUserRole(context.Background(), "u-1", entities.AppRoleLab); !errors.Is(err, ErrProfileNotFound) {
			t.Fatalf("expected ErrProfileNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newUserUseCaseForTest(ctrl)

		m.profiles.EXPECT().GetByID(gomock.Any(), "u-1").Return(entities.Profile{ID: "u-1"}, nil)
		m.roles.EXPECT().SetRole(gomock.Any(), "u-1", entities.AppRoleLab).Return(entities.UserRole{UserID: "u-1", Role: entities.AppRoleLab}, nil)

		got, err := uc.UpdateUserRole(context.Background(), "u-1", entities.AppRoleLab)
		if err != nil || got.Role != entities.AppRoleLab {
			t.Fatalf("unexpected result %+v err=%v", got, err)
		}
	})
}

func TestUserUseCase_GetLabUserEmail(t *testing.T) {
	t.Run("first user with email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newUserUseCaseForTest(ctrl)

		m.labUsers.EXPECT().ListByLabID(gomock.Any(), "lab-1").Return([]entities.LabUser{{LabID: "lab-1", UserID: "u-a"}, {LabID: "lab-1", UserID: "u-b"}}, nil)
		m.profiles.EXPECT().GetByID(gomock.Any(), "u-a").Return(entities.Profile{ID: "u-a"}, nil)
		m.profiles.EXPECT().GetByID(gomock.Any(), "u-b").Return(entities.Profile{ID: "u-b", Email: "lab@x.com"}, nil)

		got, err := uc.GetLabUserEmail(context.Background(), "lab-1")
		if err != nil || got != "lab@x.com" {
			t.Fatalf("expected lab@x.com, got %q err=%v", got, err)
		}
	})

	t.Run("no users", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newUserUseCaseForTest(ctrl)

		m.labUsers.EXPECT().ListByLabID(gomock.Any(), "lab-1").Return(nil, nil)

		if _, err := uc.GetLabUserEmail(context.Background(), "lab-1"); !errors.Is(err, ErrLabUserNotFound) {
			t.Fatalf("expected ErrLabUserNotFound, got %v", err)
		}
	})

	t.Run("blank lab", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newUserUseCaseForTest(ctrl)

		if _, err := uc.GetLabUserEmail(context.Background(), ""); !errors.Is(err, ErrInvalidLabID) {
			t.Fatalf("expected ErrInvalidLabID, got %v", err)
		}
	})
}

func TestUserUseCase_GetOnboardingStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newUserUseCaseForTest(ctrl)

	m.profiles.EXPECT().GetByID(gomock.Any(), "u-1").Return(entities.Profile{ID: "u-1", OnboardingCompleted: true}, nil)

	done, err := uc.GetOnboardingStatus(context.Background(), "u-1")
	if err != nil || !done {
		t.Fatalf("expected completed onboarding, got %v err=%v", done, err)
	}
}
