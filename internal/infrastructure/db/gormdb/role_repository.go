package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/authgrid/auth-service/internal/core/domain"
)

// RoleRepository implements ports.RoleRepository: roles, the permission
// catalog and the grant rows, all on the relational store.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) CreateRole(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	m := roleModel{ID: role.ID, Name: role.Name, CreatedAt: role.CreatedAt, UpdatedAt: role.UpdatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrRoleExists
		}
		return nil, fmt.Errorf("create role: %w", err)
	}
	return m.toDomain(), nil
}

func (r *RoleRepository) FindRoleByID(ctx context.Context, id string) (*domain.Role, error) {
	var m roleModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role by id: %w", err)
	}
	return m.toDomain(), nil
}

func (r *RoleRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	var m roleModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role by name: %w", err)
	}
	return m.toDomain(), nil
}

func (r *RoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	var ms []roleModel
	if err := r.db.WithContext(ctx).Order("name").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	roles := make([]domain.Role, 0, len(ms))
	for i := range ms {
		roles = append(roles, *ms[i].toDomain())
	}
	return roles, nil
}

func (r *RoleRepository) RenameRole(ctx context.Context, id, name string) error {
	res := r.db.WithContext(ctx).Model(&roleModel{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrRoleExists
		}
		return fmt.Errorf("rename role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

// UpdateRole renames the role and writes the grant batch in one
// transaction; a failed batch rolls the rename back too.
func (r *RoleRepository) UpdateRole(ctx context.Context, id, name string, grants []domain.GrantInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if name != "" {
			res := tx.Model(&roleModel{}).Where("id = ?", id).
				Updates(map[string]any{"name": name, "updated_at": time.Now().UTC()})
			if res.Error != nil {
				if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
					return domain.ErrRoleExists
				}
				return fmt.Errorf("rename role: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrRoleNotFound
			}
		}
		return writeGrants(tx, id, grants)
	})
}

// DeleteRole removes the role and its grants in one transaction; the
// grants never outlive the role.
func (r *RoleRepository) DeleteRole(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&grantModel{}).Error; err != nil {
			return fmt.Errorf("delete grants: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&roleModel{})
		if res.Error != nil {
			return fmt.Errorf("delete role: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrRoleNotFound
		}
		return nil
	})
}

func (r *RoleRepository) FindPermissionByID(ctx context.Context, id string) (*domain.Permission, error) {
	var m permissionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPermissionNotFound
		}
		return nil, fmt.Errorf("find permission by id: %w", err)
	}
	return m.toDomain(), nil
}

func (r *RoleRepository) FindPermissionByName(ctx context.Context, name string) (*domain.Permission, error) {
	var m permissionModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPermissionNotFound
		}
		return nil, fmt.Errorf("find permission by name: %w", err)
	}
	return m.toDomain(), nil
}

func (r *RoleRepository) ListPermissions(ctx context.Context, ids []string) ([]domain.Permission, error) {
	if len(ids) == 0 {
		return []domain.Permission{}, nil
	}
	var ms []permissionModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	permissions := make([]domain.Permission, 0, len(ms))
	for i := range ms {
		permissions = append(permissions, *ms[i].toDomain())
	}
	return permissions, nil
}

// SetGrants writes the batch in one transaction. A reference to a
// permission outside the catalog rolls the whole batch back, so no
// partial-grant state is ever visible.
func (r *RoleRepository) SetGrants(ctx context.Context, roleID string, grants []domain.GrantInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return writeGrants(tx, roleID, grants)
	})
}

func writeGrants(tx *gorm.DB, roleID string, grants []domain.GrantInput) error {
	for _, g := range grants {
		var perm permissionModel
		if err := tx.Where("id = ?", g.PermissionID).First(&perm).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPermissionNotFound
			}
			return fmt.Errorf("resolve permission: %w", err)
		}

		value := g.Value
		if value == "" {
			value = domain.GrantTrue
		}
		if err := upsertGrant(tx, roleID, perm.ID, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *RoleRepository) ListGrants(ctx context.Context, roleID string) ([]domain.PermissionGrant, error) {
	var ms []grantModel
	if err := r.db.WithContext(ctx).Where("role_id = ?", roleID).Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	grants := make([]domain.PermissionGrant, 0, len(ms))
	for _, m := range ms {
		grants = append(grants, domain.PermissionGrant{
			RoleID:       m.RoleID,
			PermissionID: m.PermissionID,
			Value:        m.Value,
		})
	}
	return grants, nil
}

// FindGrant returns (nil, nil) for a missing row; the decision engine
// treats absence as deny.
func (r *RoleRepository) FindGrant(ctx context.Context, roleID, permissionID string) (*domain.PermissionGrant, error) {
	var m grantModel
	err := r.db.WithContext(ctx).
		Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find grant: %w", err)
	}
	return &domain.PermissionGrant{RoleID: m.RoleID, PermissionID: m.PermissionID, Value: m.Value}, nil
}

func (r *RoleRepository) EnsurePermission(ctx context.Context, name string) (bool, error) {
	var m permissionModel
	res := r.db.WithContext(ctx).
		Where(permissionModel{Name: name}).
		Attrs(permissionModel{CreatedAt: time.Now().UTC()}).
		FirstOrCreate(&m)
	if res.Error != nil {
		return false, fmt.Errorf("ensure permission: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *RoleRepository) EnsureRole(ctx context.Context, name string) (*domain.Role, bool, error) {
	now := time.Now().UTC()
	var m roleModel
	res := r.db.WithContext(ctx).
		Where(roleModel{Name: name}).
		Attrs(roleModel{CreatedAt: now, UpdatedAt: now}).
		FirstOrCreate(&m)
	if res.Error != nil {
		return nil, false, fmt.Errorf("ensure role: %w", res.Error)
	}
	return m.toDomain(), res.RowsAffected > 0, nil
}

func (r *RoleRepository) UpsertGrant(ctx context.Context, roleID, permissionID, value string) error {
	return upsertGrant(r.db.WithContext(ctx), roleID, permissionID, value)
}

func upsertGrant(tx *gorm.DB, roleID, permissionID, value string) error {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role_id"}, {Name: "permission_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&grantModel{RoleID: roleID, PermissionID: permissionID, Value: value}).Error
	if err != nil {
		return fmt.Errorf("upsert grant: %w", err)
	}
	return nil
}
