package ports

import (
	"context"

	"github.com/authgrid/auth-service/internal/core/domain"
)

// AuthService implements registration, login and logout.
type AuthService interface {
	// Register creates a user with the default role. Password and its
	// confirmation must match.
	Register(ctx context.Context, email, password, passwordConfirm string) (*domain.User, error)
	// Login verifies the password and issues a token. A disabled user
	// still authenticates; authorization denies them afterwards.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// LoginExternal issues a token for an email already verified by a
	// social provider; no password is involved.
	LoginExternal(ctx context.Context, email string) (string, *domain.User, error)
	// Logout revokes the presented token.
	Logout(ctx context.Context, claims *domain.Claims) error
}
