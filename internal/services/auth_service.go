package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stocka-io/stocka-api/internal/auth"
	"github.com/stocka-io/stocka-api/internal/models"
	"github.com/stocka-io/stocka-api/internal/repository"
	"github.com/stocka-io/stocka-api/internal/session"
	"gorm.io/gorm"
)

// RequestMeta carries per-request client details for the audit trail.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// AuthService handles login, logout and access-token refresh.
type AuthService struct {
	userRepo  *repository.UserRepository
	auditRepo *repository.AuditRepository
	tokens    *auth.TokenService
	sessions  session.Store
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo *repository.UserRepository,
	auditRepo *repository.AuditRepository,
	tokens *auth.TokenService,
	sessions session.Store,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		tokens:    tokens,
		sessions:  sessions,
	}
}

// Login authenticates a user and opens a new session. On success the refresh
// token is registered in the session store with the refresh lifetime.
func (s *AuthService) Login(ctx context.Context, email, password string, meta RequestMeta) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.audit(ctx, uuid.Nil, email, models.AuditActionLogin, meta, ErrUserNotFound)
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Deactivated {
		s.audit(ctx, user.BusinessID, email, models.AuditActionLogin, meta, ErrAccountDeactivated)
		return nil, ErrAccountDeactivated
	}

	if err := auth.CheckPassword(user.Password, password); err != nil {
		s.audit(ctx, user.BusinessID, email, models.AuditActionLogin, meta, ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	role, err := s.userRepo.GetRoleByID(ctx, user.RoleID, user.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user role: %w", err)
	}

	identity := models.Identity{
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		RoleName:   role.Name,
		BusinessID: user.BusinessID,
	}

	access, err := s.tokens.IssueAccessToken(identity)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(identity)
	if err != nil {
		return nil, err
	}

	// Session registration is on the synchronous path: a store failure fails
	// the login, never a token pair without a live session.
	if err := s.sessions.Put(ctx, refresh, identity.Email, s.tokens.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	s.audit(ctx, user.BusinessID, email, models.AuditActionLogin, meta, nil)

	return &models.AuthResponse{
		Auth:    true,
		Access:  access,
		Refresh: refresh,
		Data:    identity,
	}, nil
}

// Logout deletes the session entry backing a refresh token. A missing entry
// surfaces as session.ErrNotFound so the handler can report 404.
func (s *AuthService) Logout(ctx context.Context, refreshToken string, meta RequestMeta) error {
	err := s.sessions.Delete(ctx, refreshToken)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		// Fail closed: an unreachable store reads as "not found" to the client.
		log.Error().Err(err).Msg("Session store delete failed during logout")
		err = session.ErrNotFound
	}

	email := ""
	if identity, verr := s.tokens.VerifyRefreshToken(refreshToken); verr == nil {
		email = identity.Email
	}
	s.audit(ctx, uuid.Nil, email, models.AuditActionLogout, meta, err)
	return err
}

// Refresh mints a new access token for a live refresh token. The refresh
// token itself is reused until logout or expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, meta RequestMeta) (string, error) {
	access, err := s.tokens.RotateAccessToken(ctx, refreshToken)
	if err != nil {
		s.audit(ctx, uuid.Nil, "", models.AuditActionRefresh, meta, err)
		return "", err
	}
	return access, nil
}

// audit records an auth event best-effort; a failed write never fails the
// request.
func (s *AuthService) audit(ctx context.Context, businessID uuid.UUID, email, action string, meta RequestMeta, cause error) {
	entry := &models.AuditLog{
		BusinessID: businessID,
		Email:      email,
		Action:     action,
		Status:     "success",
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	}
	if cause != nil {
		entry.Status = "failure"
		entry.ErrorMessage = cause.Error()
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("Failed to write audit log")
	}
}
