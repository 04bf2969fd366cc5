package ports

import (
	"context"

	"github.com/authgrid/auth-service/internal/core/domain"
)

// AccessService is the authorization decision engine. It owns no state;
// every call is a pure read of the credential store and the permission
// graph.
type AccessService interface {
	// Authorize allows the caller iff at least one of the required
	// permissions evaluates true for the caller's role. Callers pass
	// alternative-sufficient sets ("self" OR "all" variants). On allow
	// the resolved user is returned; on deny the error is
	// domain.ErrUserNotFound or domain.ErrForbidden.
	Authorize(ctx context.Context, email string, permissions ...string) (*domain.User, error)
	// Evaluate resolves a single (role, permission) grant. Missing
	// permission, missing grant row or a non-true value all evaluate
	// to false; absence is deny.
	Evaluate(ctx context.Context, roleID, permission string) (bool, error)
}
