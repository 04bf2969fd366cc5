package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/authgrid/auth-service/internal/core/domain"
	"github.com/authgrid/auth-service/internal/core/ports"
)

// SeedService populates the permission catalog and the built-in roles.
// Every entry is upserted independently, so re-running is safe, but a
// real store error aborts the run and propagates instead of being
// swallowed.
type SeedService struct {
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewSeedService(roles ports.RoleRepository, log zerolog.Logger) *SeedService {
	return &SeedService{roles: roles, log: log}
}

func (s *SeedService) Seed(ctx context.Context) (*ports.SeedReport, error) {
	report := &ports.SeedReport{}

	for _, name := range domain.AllPermissions() {
		created, err := s.roles.EnsurePermission(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("seed permission %q: %w", name, err)
		}
		report.Permissions = append(report.Permissions, ports.SeedOutcome{Name: name, Created: created})
	}

	for _, roleName := range []string{domain.RoleSuperuser, domain.RoleUser, domain.RoleNonRegistered} {
		role, created, err := s.roles.EnsureRole(ctx, roleName)
		if err != nil {
			return nil, fmt.Errorf("seed role %q: %w", roleName, err)
		}
		report.Roles = append(report.Roles, ports.SeedOutcome{Name: roleName, Created: created})

		for permName, allowed := range domain.DefaultRoles[roleName] {
			perm, err := s.roles.FindPermissionByName(ctx, permName)
			if err != nil {
				return nil, fmt.Errorf("seed role %q: resolve permission %q: %w", roleName, permName, err)
			}

			value := domain.GrantFalse
			if allowed {
				value = domain.GrantTrue
			}
			if err := s.roles.UpsertGrant(ctx, role.ID, perm.ID, value); err != nil {
				return nil, fmt.Errorf("seed role %q: grant %q: %w", roleName, permName, err)
			}
		}

		s.log.Info().Str("role", roleName).Bool("created", created).Msg("role seeded")
	}

	return report, nil
}
