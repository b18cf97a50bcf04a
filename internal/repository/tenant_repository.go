package repository

import (
	"context"
	"fmt"

	"github.com/stocka-io/stocka-api/internal/models"
	"gorm.io/gorm"
)

// TenantRepository handles business rows and the atomic tenant bootstrap.
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// ExistsByEmail reports whether a business row exists for the email.
func (r *TenantRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Business{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count businesses by email: %w", err)
	}
	return count > 0, nil
}

// BootstrapInput carries everything the bootstrap transaction creates. The
// user's Password must already be hashed.
type BootstrapInput struct {
	Business        models.Business
	LocationName    string
	Address         string
	PermissionNames []string
	RoleNames       []models.RoleName
	// FullGrantRoles receive a binding for every permission in the catalog.
	FullGrantRoles []models.RoleName
	// AdminRole is the role the first user is bound to.
	AdminRole models.RoleName
	User      models.User
}

// BootstrapResult reports the rows the caller needs after commit.
type BootstrapResult struct {
	Business  *models.Business
	AdminRole *models.Role
	User      *models.User
}

// Bootstrap provisions a complete tenant in one transaction: business, head
// office location, permission catalog, default roles, role-permission
// bindings and the first user. Any failure rolls the whole thing back.
func (r *TenantRepository) Bootstrap(ctx context.Context, in BootstrapInput) (*BootstrapResult, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin bootstrap transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	business := in.Business
	if err := tx.Create(&business).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create business: %w", err)
	}

	location := models.Location{
		BusinessID: business.ID,
		Name:       in.LocationName,
		Address:    in.Address,
	}
	if err := tx.Create(&location).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	permissions := make([]models.Permission, 0, len(in.PermissionNames))
	for _, name := range in.PermissionNames {
		permissions = append(permissions, models.Permission{
			BusinessID: business.ID,
			Name:       name,
		})
	}
	if err := tx.Create(&permissions).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create permission catalog: %w", err)
	}

	roles := make(map[models.RoleName]*models.Role, len(in.RoleNames))
	for _, name := range in.RoleNames {
		role := &models.Role{
			BusinessID: business.ID,
			Name:       string(name),
		}
		if err := tx.Create(role).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create role %q: %w", name, err)
		}
		roles[name] = role
	}

	adminRole, ok := roles[in.AdminRole]
	if !ok {
		tx.Rollback()
		return nil, fmt.Errorf("admin role %q not in default role set", in.AdminRole)
	}

	bindings := make([]models.RolePermission, 0, len(in.FullGrantRoles)*len(permissions))
	for _, roleName := range in.FullGrantRoles {
		role, ok := roles[roleName]
		if !ok {
			tx.Rollback()
			return nil, fmt.Errorf("grant role %q not in default role set", roleName)
		}
		for _, perm := range permissions {
			bindings = append(bindings, models.RolePermission{
				BusinessID:   business.ID,
				RoleID:       role.ID,
				PermissionID: perm.ID,
			})
		}
	}
	if err := tx.Create(&bindings).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create role permission bindings: %w", err)
	}

	user := in.User
	user.BusinessID = business.ID
	user.RoleID = adminRole.ID
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit bootstrap transaction: %w", err)
	}

	return &BootstrapResult{
		Business:  &business,
		AdminRole: adminRole,
		User:      &user,
	}, nil
}
