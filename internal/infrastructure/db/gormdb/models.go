package gormdb

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/authgrid/auth-service/internal/core/domain"
)

// userModel is the users table. Email uniqueness is enforced by the
// database, not just checked in the service.
type userModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Disabled     bool   `gorm:"not null;default:false"`
	RoleID       string `gorm:"size:36;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type roleModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"uniqueIndex;size:100;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (roleModel) TableName() string { return "roles" }

func (m *roleModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type permissionModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"uniqueIndex;size:100;not null"`
	CreatedAt time.Time
}

func (permissionModel) TableName() string { return "permissions" }

func (m *permissionModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// grantModel is the role_permissions junction table. The composite
// primary key guarantees at most one grant per (role, permission) pair.
type grantModel struct {
	RoleID       string `gorm:"primaryKey;size:36;column:role_id"`
	PermissionID string `gorm:"primaryKey;size:36;column:permission_id"`
	Value        string `gorm:"size:8;not null"`
}

func (grantModel) TableName() string { return "role_permissions" }

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Disabled:     m.Disabled,
		RoleID:       m.RoleID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (m *roleModel) toDomain() *domain.Role {
	return &domain.Role{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m *permissionModel) toDomain() *domain.Permission {
	return &domain.Permission{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
}
