package ports

import (
	"context"

	"github.com/authgrid/auth-service/internal/core/domain"
)

// CredentialRepository persists users and their role assignment.
type CredentialRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	// ListUsers returns all users ordered by email.
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
}
