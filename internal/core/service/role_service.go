package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/authgrid/auth-service/internal/core/domain"
	"github.com/authgrid/auth-service/internal/core/ports"
)

// RoleService implements role CRUD and grant management.
type RoleService struct {
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, log zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, log: log}
}

// Create makes a role and writes its grants. The grant batch is
// all-or-nothing; if it fails the freshly created role is removed so no
// half-granted role is left behind.
func (s *RoleService) Create(ctx context.Context, name string, grants []domain.GrantInput) (*domain.Role, error) {
	if _, err := s.roles.FindRoleByName(ctx, name); err == nil {
		return nil, domain.ErrRoleExists
	} else if !errors.Is(err, domain.ErrRoleNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	role, err := s.roles.CreateRole(ctx, &domain.Role{Name: name, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		return nil, err
	}

	if len(grants) > 0 {
		if err := s.roles.SetGrants(ctx, role.ID, grants); err != nil {
			if delErr := s.roles.DeleteRole(ctx, role.ID); delErr != nil {
				s.log.Error().Err(delErr).Str("role_id", role.ID).Msg("cleanup of half-created role failed")
			}
			return nil, err
		}
	}
	return role, nil
}

// Update renames the role and/or replaces its grants. An empty name or
// nil grant list leaves that part untouched. Both changes land in one
// transaction; a bad grant batch rolls the rename back too.
func (s *RoleService) Update(ctx context.Context, id, name string, grants []domain.GrantInput) (*domain.Role, error) {
	role, err := s.roles.FindRoleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newName := ""
	if name != "" && name != role.Name {
		newName = name
	}
	if newName == "" && grants == nil {
		return role, nil
	}

	if err := s.roles.UpdateRole(ctx, role.ID, newName, grants); err != nil {
		return nil, err
	}
	if newName != "" {
		role.Name = newName
	}
	return role, nil
}

func (s *RoleService) Get(ctx context.Context, id string) (*domain.RoleDetail, error) {
	role, err := s.roles.FindRoleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	grants, err := s.roles.ListGrants(ctx, role.ID)
	if err != nil {
		return nil, err
	}

	return &domain.RoleDetail{
		ID:          role.ID,
		Name:        role.Name,
		CreatedAt:   role.CreatedAt,
		Permissions: grants,
	}, nil
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roles.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, domain.ErrRoleNotFound
	}
	return roles, nil
}

// Delete removes the role together with its grants.
func (s *RoleService) Delete(ctx context.Context, id string) (*domain.Role, error) {
	role, err := s.roles.FindRoleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.roles.DeleteRole(ctx, role.ID); err != nil {
		return nil, err
	}
	return role, nil
}
