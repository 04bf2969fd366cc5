package service

import (
	"context"
	"errors"

	"github.com/authgrid/auth-service/internal/core/domain"
	"github.com/authgrid/auth-service/internal/core/ports"
)

// AccessService is the authorization decision engine: a pure function
// of the credential store and the permission graph at call time. It
// holds no mutable state and is safe for concurrent use.
type AccessService struct {
	users ports.CredentialRepository
	roles ports.RoleRepository
}

func NewAccessService(users ports.CredentialRepository, roles ports.RoleRepository) *AccessService {
	return &AccessService{users: users, roles: roles}
}

// Authorize resolves the caller and allows iff at least one required
// permission evaluates true for the caller's role.
func (s *AccessService) Authorize(ctx context.Context, email string, permissions ...string) (*domain.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.Disabled {
		return nil, domain.ErrForbidden
	}
	if user.RoleID == "" {
		return nil, domain.ErrForbidden
	}

	for _, p := range permissions {
		allowed, err := s.Evaluate(ctx, user.RoleID, p)
		if err != nil {
			return nil, err
		}
		if allowed {
			return user, nil
		}
	}
	return nil, domain.ErrForbidden
}

// Evaluate is fail-closed: a missing permission, a missing grant row or
// a value other than the true literal all deny. Only a real store error
// surfaces as an error.
func (s *AccessService) Evaluate(ctx context.Context, roleID, permission string) (bool, error) {
	perm, err := s.roles.FindPermissionByName(ctx, permission)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionNotFound) {
			return false, nil
		}
		return false, err
	}

	grant, err := s.roles.FindGrant(ctx, roleID, perm.ID)
	if err != nil {
		return false, err
	}
	if grant == nil {
		return false, nil
	}
	return grant.Allows(), nil
}
