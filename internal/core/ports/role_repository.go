package ports

import (
	"context"

	"github.com/authgrid/auth-service/internal/core/domain"
)

// RoleRepository persists roles, the permission catalog, and the
// role→permission grant rows that drive authorization decisions.
type RoleRepository interface {
	CreateRole(ctx context.Context, role *domain.Role) (*domain.Role, error)
	FindRoleByID(ctx context.Context, id string) (*domain.Role, error)
	FindRoleByName(ctx context.Context, name string) (*domain.Role, error)
	// ListRoles returns all roles ordered by name.
	ListRoles(ctx context.Context) ([]domain.Role, error)
	RenameRole(ctx context.Context, id, name string) error
	// UpdateRole renames the role (when name is non-empty) and writes
	// the grant batch in one transaction. A failure in either part
	// leaves both the role and its grants untouched.
	UpdateRole(ctx context.Context, id, name string, grants []domain.GrantInput) error
	// DeleteRole removes the role and all of its grants in one
	// transaction.
	DeleteRole(ctx context.Context, id string) error

	FindPermissionByID(ctx context.Context, id string) (*domain.Permission, error)
	FindPermissionByName(ctx context.Context, name string) (*domain.Permission, error)
	ListPermissions(ctx context.Context, ids []string) ([]domain.Permission, error)

	// SetGrants writes the given grants for a role atomically. Every
	// referenced permission must already exist in the catalog; any miss
	// rolls the whole batch back with domain.ErrPermissionNotFound.
	SetGrants(ctx context.Context, roleID string, grants []domain.GrantInput) error
	ListGrants(ctx context.Context, roleID string) ([]domain.PermissionGrant, error)
	// FindGrant returns (nil, nil) when no grant row exists for the
	// pair; absence is a deny, not an error.
	FindGrant(ctx context.Context, roleID, permissionID string) (*domain.PermissionGrant, error)

	// EnsurePermission and EnsureRole are idempotent inserts used by
	// bootstrap seeding: they report whether a row was created and
	// never fail on an existing row.
	EnsurePermission(ctx context.Context, name string) (created bool, err error)
	EnsureRole(ctx context.Context, name string) (role *domain.Role, created bool, err error)
	UpsertGrant(ctx context.Context, roleID, permissionID, value string) error
}
