package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business represents a tenant. Every Role, Permission, RolePermission and
// User row carries its id — tenant isolation starts here.
type Business struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone       string    `gorm:"type:varchar(50)" json:"phone"`
	Industry    string    `gorm:"type:varchar(100)" json:"industry"`
	RegStatus   string    `gorm:"type:varchar(100)" json:"regStatus"`
	Size        string    `gorm:"type:varchar(50)" json:"size"`
	Description string    `gorm:"type:text" json:"description"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Business) TableName() string {
	return "businesses"
}

// BeforeCreate hook
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Location is a physical site belonging to a business. Registration seeds a
// single "Head office" location from the supplied address.
type Location struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Address    string    `gorm:"type:text" json:"address"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Location) TableName() string {
	return "locations"
}

// BeforeCreate hook
func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
