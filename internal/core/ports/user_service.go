package ports

import (
	"context"

	"github.com/authgrid/auth-service/internal/core/domain"
)

// UserService covers user reads and mutations behind the protected
// endpoints.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Update changes email and password after verifying the old
	// password. Previously issued tokens stay valid.
	Update(ctx context.Context, id, email, oldPassword, newPassword, newPasswordConfirm string) (*domain.User, error)
	// Disable marks the user disabled. Disabling twice fails with
	// domain.ErrAlreadyDisabled.
	Disable(ctx context.Context, id string) (*domain.User, error)
	// AssignRole moves the user to another role; assigning the role the
	// user already holds fails with domain.ErrRoleUnchanged.
	AssignRole(ctx context.Context, userID, roleID string) (*domain.User, error)
	// RoleWithPermissions resolves the user's role and the permission
	// rows granted to it.
	RoleWithPermissions(ctx context.Context, userID string) (*domain.RolePermissions, error)
	History(ctx context.Context, userID string, page, perPage int64) (*domain.HistoryPage, error)
}
