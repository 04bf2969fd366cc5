package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/authgrid/auth-service/internal/core/domain"
	"github.com/authgrid/auth-service/internal/core/ports"
)

// UserService implements user reads and mutations.
type UserService struct {
	users   ports.CredentialRepository
	roles   ports.RoleRepository
	history ports.HistoryRepository
	log     zerolog.Logger
}

func NewUserService(
	users ports.CredentialRepository,
	roles ports.RoleRepository,
	history ports.HistoryRepository,
	log zerolog.Logger,
) *UserService {
	return &UserService{users: users, roles: roles, history: history, log: log}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindUserByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return users, nil
}

// Update changes email and password after verifying the old password.
// Tokens issued before the change stay valid; only explicit logout
// revokes them.
func (s *UserService) Update(ctx context.Context, id, email, oldPassword, newPassword, newPasswordConfirm string) (*domain.User, error) {
	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if newPassword == "" || newPassword != newPasswordConfirm {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if email != "" {
		user.Email = email
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logActivity(ctx, user.ID, domain.ActivityUpdate)
	return user, nil
}

// Disable locks the account out of all authorization checks. A second
// call fails: the caller should know the account was already disabled.
func (s *UserService) Disable(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Disabled {
		return nil, domain.ErrAlreadyDisabled
	}

	user.Disabled = true
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logActivity(ctx, user.ID, domain.ActivityDisable)
	return user, nil
}

// AssignRole moves the user to another role.
func (s *UserService) AssignRole(ctx context.Context, userID, roleID string) (*domain.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindRoleByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if user.RoleID == role.ID {
		return nil, domain.ErrRoleUnchanged
	}

	user.RoleID = role.ID
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logActivity(ctx, user.ID, domain.ActivityRoleChange)
	return user, nil
}

// RoleWithPermissions resolves the user's role and the permission rows
// its grants reference.
func (s *UserService) RoleWithPermissions(ctx context.Context, userID string) (*domain.RolePermissions, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.RoleID == "" {
		return nil, domain.ErrRoleNotFound
	}

	role, err := s.roles.FindRoleByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	grants, err := s.roles.ListGrants(ctx, role.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.PermissionID)
	}
	permissions, err := s.roles.ListPermissions(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &domain.RolePermissions{Name: role.Name, Permissions: permissions}, nil
}

func (s *UserService) History(ctx context.Context, userID string, page, perPage int64) (*domain.HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	entries, err := s.history.List(ctx, userID, page, perPage)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrHistoryNotFound
	}

	return &domain.HistoryPage{History: entries, Page: page, PerPage: perPage}, nil
}

func (s *UserService) logActivity(ctx context.Context, userID, activity string) {
	if err := s.history.Append(ctx, userID, activity); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("activity", activity).Msg("history append failed")
	}
}
