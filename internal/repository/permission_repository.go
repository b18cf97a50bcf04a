package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stocka-io/stocka-api/internal/models"
	"gorm.io/gorm"
)

// PermissionRepository handles role/permission database operations
type PermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

// GetRoleByName retrieves a role by exact name within a business.
func (r *PermissionRepository) GetRoleByName(ctx context.Context, name string, businessID uuid.UUID) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).
		Where("name = ? AND business_id = ?", name, businessID).
		First(&role).Error; err != nil {
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}
	return &role, nil
}

// GetPermissionByName retrieves a permission by exact name within a business.
func (r *PermissionRepository) GetPermissionByName(ctx context.Context, name string, businessID uuid.UUID) (*models.Permission, error) {
	var perm models.Permission
	if err := r.db.WithContext(ctx).
		Where("name = ? AND business_id = ?", name, businessID).
		First(&perm).Error; err != nil {
		return nil, fmt.Errorf("failed to get permission by name: %w", err)
	}
	return &perm, nil
}

// HasBinding reports whether a role-permission binding exists within a
// business.
func (r *PermissionRepository) HasBinding(ctx context.Context, roleID, permissionID, businessID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RolePermission{}).
		Where("role_id = ? AND permission_id = ? AND business_id = ?", roleID, permissionID, businessID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check role permission binding: %w", err)
	}
	return count > 0, nil
}
