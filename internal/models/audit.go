package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog represents an audit log entry for an auth event
type AuditLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BusinessID   uuid.UUID `gorm:"type:uuid;index" json:"business_id"`
	Email        string    `gorm:"type:varchar(255);index" json:"email"`
	Action       string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Status       string    `gorm:"type:varchar(20);index" json:"status"` // success, failure
	IPAddress    string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent    string    `gorm:"type:text" json:"user_agent"`
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"timestamp"`
}

// Audit actions recorded by the auth service.
const (
	AuditActionLogin    = "login"
	AuditActionLogout   = "logout"
	AuditActionRefresh  = "refresh"
	AuditActionRegister = "register"
)

// TableName overrides the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate hook
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
