package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleName is a closed set of the default role names seeded at registration.
// Role names are only unique per (name, business_id) — two tenants may both
// own a "superadmin" row.
type RoleName string

const (
	RoleSuperAdmin       RoleName = "superadmin"
	RoleAdmin            RoleName = "admin"
	RoleInboundsManager  RoleName = "inbounds manager"
	RoleOutboundsManager RoleName = "outbounds manager"
)

// DefaultRoleNames lists the roles every new tenant starts with.
func DefaultRoleNames() []RoleName {
	return []RoleName{RoleSuperAdmin, RoleAdmin, RoleInboundsManager, RoleOutboundsManager}
}

// Role is a named collection of permissions scoped to one business.
type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BusinessID  uuid.UUID `gorm:"type:uuid;not null;index:idx_roles_name_business,unique" json:"business_id"`
	Name        string    `gorm:"type:varchar(100);not null;index:idx_roles_name_business,unique" json:"name"`
	Description string    `gorm:"type:text" json:"description"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Role) TableName() string {
	return "roles"
}

// BeforeCreate hook
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Permission is a named capability scoped to one business.
type Permission struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BusinessID  uuid.UUID `gorm:"type:uuid;not null;index:idx_permissions_name_business,unique" json:"business_id"`
	Name        string    `gorm:"type:varchar(100);not null;index:idx_permissions_name_business,unique" json:"name"`
	Description string    `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Permission) TableName() string {
	return "permissions"
}

// BeforeCreate hook
func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// RolePermission binds one role to one permission inside one business.
// Presence of a row is the only proof a role may perform an action.
type RolePermission struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BusinessID   uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	RoleID       uuid.UUID `gorm:"type:uuid;not null;index" json:"role_id"`
	PermissionID uuid.UUID `gorm:"type:uuid;not null;index" json:"permission_id"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (RolePermission) TableName() string {
	return "role_permissions"
}

// BeforeCreate hook
func (rp *RolePermission) BeforeCreate(tx *gorm.DB) error {
	if rp.ID == uuid.Nil {
		rp.ID = uuid.New()
	}
	return nil
}

// permissionDomains are the resource areas the default catalog covers. Each
// domain gets a Create/View/Update/Delete permission, 36 rows in total.
var permissionDomains = []string{
	"User",
	"Role",
	"Business",
	"Inventory",
	"Receiver",
	"Supplier",
	"Product",
	"Outbound",
	"Inbound",
}

var permissionActions = []string{"Create", "View", "Update", "Delete"}

// DefaultPermissionNames returns the full permission catalog seeded for every
// new tenant, e.g. "CreateProduct", "ViewInbound".
func DefaultPermissionNames() []string {
	names := make([]string, 0, len(permissionDomains)*len(permissionActions))
	for _, domain := range permissionDomains {
		for _, action := range permissionActions {
			names = append(names, action+domain)
		}
	}
	return names
}
