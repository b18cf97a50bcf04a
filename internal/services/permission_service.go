package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocka-io/stocka-api/internal/repository"
	"gorm.io/gorm"
)

// PermissionService decides whether a role may perform a named action inside
// one business. Every role is treated uniformly — there is no implicit
// superadmin bypass; a binding row is the only thing that grants.
type PermissionService struct {
	permRepo *repository.PermissionRepository
}

// NewPermissionService creates a new permission service
func NewPermissionService(permRepo *repository.PermissionRepository) *PermissionService {
	return &PermissionService{permRepo: permRepo}
}

// Check resolves (roleName, permissionName) within a business. Names are
// case-sensitive exact matches. A missing role, permission or binding is a
// plain denial; only store failures surface as errors, and callers must treat
// those as denial too.
func (s *PermissionService) Check(ctx context.Context, roleName, permissionName string, businessID uuid.UUID) (bool, error) {
	role, err := s.permRepo.GetRoleByName(ctx, roleName, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	perm, err := s.permRepo.GetPermissionByName(ctx, permissionName, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return s.permRepo.HasBinding(ctx, role.ID, perm.ID, businessID)
}
