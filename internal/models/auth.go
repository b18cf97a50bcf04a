package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the signed content of every token and the request-scoped user
// context attached by the auth middleware. It is never trusted without
// signature verification.
type Identity struct {
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	RoleName   string    `json:"roleName"`
	BusinessID uuid.UUID `json:"businessId"`
}

// Claims represents the custom JWT claims carried by access and refresh tokens
type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// LoginRequest is the /auth/login body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the /auth/refresh and /auth/logout body
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is the success envelope for login and registration
type AuthResponse struct {
	Auth    bool     `json:"auth"`
	Access  string   `json:"access"`
	Refresh string   `json:"refresh"`
	Data    Identity `json:"data"`
}

// RegisterRequest is the /register body
type RegisterRequest struct {
	User            RegisterUser    `json:"user"`
	BusinessContact BusinessContact `json:"businessContact"`
	BusinessData    BusinessProfile `json:"businessData"`
}

// RegisterUser is the initial admin account of a new tenant
type RegisterUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// BusinessContact carries the contact details of a new tenant
type BusinessContact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// BusinessProfile carries the descriptive profile of a new tenant
type BusinessProfile struct {
	Industry    string `json:"industry"`
	RegStatus   string `json:"regStatus"`
	Size        string `json:"size"`
	Description string `json:"description"`
}

// RegisterResponse is the /register success envelope
type RegisterResponse struct {
	Auth       bool      `json:"auth"`
	BusinessID uuid.UUID `json:"businessId"`
	Access     string    `json:"access"`
	Refresh    string    `json:"refresh"`
	Data       Identity  `json:"data"`
}
