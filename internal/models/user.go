package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account belonging to exactly one business. Password holds a
// bcrypt hash, never the plaintext.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BusinessID  uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	RoleID      uuid.UUID `gorm:"type:uuid;not null;index" json:"role_id"`
	FirstName   string    `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName    string    `gorm:"type:varchar(100);not null" json:"lastName"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	Deactivated bool      `gorm:"default:false" json:"deactivated"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
