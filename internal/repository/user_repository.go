package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stocka-io/stocka-api/internal/models"
	"gorm.io/gorm"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail retrieves a user by email. Absence surfaces as
// gorm.ErrRecordNotFound in the wrapped error.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// ExistsByEmail reports whether a user row exists for the email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count users by email: %w", err)
	}
	return count > 0, nil
}

// GetRoleByID retrieves a role row by primary key within a business.
func (r *UserRepository) GetRoleByID(ctx context.Context, id, businessID uuid.UUID) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&role).Error; err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return &role, nil
}
