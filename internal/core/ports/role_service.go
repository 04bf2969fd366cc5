package ports

import (
	"context"

	"github.com/authgrid/auth-service/internal/core/domain"
)

// RoleService covers role CRUD and grant management.
type RoleService interface {
	// Create makes a role and writes its grants atomically; a duplicate
	// name fails with domain.ErrRoleExists.
	Create(ctx context.Context, name string, grants []domain.GrantInput) (*domain.Role, error)
	// Update renames the role and/or replaces its grants. Empty name or
	// nil grants leave that part untouched.
	Update(ctx context.Context, id, name string, grants []domain.GrantInput) (*domain.Role, error)
	Get(ctx context.Context, id string) (*domain.RoleDetail, error)
	List(ctx context.Context) ([]domain.Role, error)
	// Delete removes the role and cascades its grants.
	Delete(ctx context.Context, id string) (*domain.Role, error)
}
