package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/authgrid/auth-service/internal/core/domain"
	"github.com/authgrid/auth-service/internal/core/ports"
)

// AuthService implements registration, login and logout.
type AuthService struct {
	users   ports.CredentialRepository
	roles   ports.RoleRepository
	tokens  ports.TokenService
	history ports.HistoryRepository
	log     zerolog.Logger
}

func NewAuthService(
	users ports.CredentialRepository,
	roles ports.RoleRepository,
	tokens ports.TokenService,
	history ports.HistoryRepository,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, roles: roles, tokens: tokens, history: history, log: log}
}

// Register creates a user with the default role. The default role must
// have been seeded first; its absence is a deployment fault, not a
// user error.
func (s *AuthService) Register(ctx context.Context, email, password, passwordConfirm string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if password != passwordConfirm {
		return nil, domain.ErrPasswordMismatch
	}

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	role, err := s.roles.FindRoleByName(ctx, domain.DefaultRoleName)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, domain.ErrDefaultRoleMissing
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.CreateUser(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, created.ID, domain.ActivityRegister)
	return created, nil
}

// Login verifies the password and issues a token. Disabled users still
// authenticate; every authorization check afterwards denies them.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user.Email, user.RoleID)
	if err != nil {
		return "", nil, err
	}

	s.logActivity(ctx, user.ID, domain.ActivityLogin)
	return token, user, nil
}

// LoginExternal issues a token for an email a social provider already
// verified. The user must exist locally; providers never auto-create
// accounts.
func (s *AuthService) LoginExternal(ctx context.Context, email string) (string, *domain.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	token, _, err := s.tokens.Issue(user.Email, user.RoleID)
	if err != nil {
		return "", nil, err
	}

	s.logActivity(ctx, user.ID, domain.ActivityLogin)
	return token, user, nil
}

// Logout revokes the presented token via the denylist.
func (s *AuthService) Logout(ctx context.Context, claims *domain.Claims) error {
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return err
	}

	user, err := s.users.FindUserByEmail(ctx, claims.Subject)
	if err != nil {
		return err
	}

	s.logActivity(ctx, user.ID, domain.ActivityLogout)
	return nil
}

// logActivity appends to the history log best-effort: a failed append
// must not fail the request that triggered it.
func (s *AuthService) logActivity(ctx context.Context, userID, activity string) {
	if err := s.history.Append(ctx, userID, activity); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("activity", activity).Msg("history append failed")
	}
}
