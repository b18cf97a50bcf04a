package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/stocka-io/stocka-api/internal/auth"
	"github.com/stocka-io/stocka-api/internal/models"
	"github.com/stocka-io/stocka-api/internal/repository"
	"github.com/stocka-io/stocka-api/internal/session"
)

// headOfficeName is the location every new tenant starts with.
const headOfficeName = "Head office"

// RegisterService provisions new tenants. The relational work is one atomic
// transaction; tokens and the session entry are minted only after commit.
type RegisterService struct {
	tenantRepo *repository.TenantRepository
	userRepo   *repository.UserRepository
	auditRepo  *repository.AuditRepository
	tokens     *auth.TokenService
	sessions   session.Store
	bcryptCost int
}

// NewRegisterService creates a new register service
func NewRegisterService(
	tenantRepo *repository.TenantRepository,
	userRepo *repository.UserRepository,
	auditRepo *repository.AuditRepository,
	tokens *auth.TokenService,
	sessions session.Store,
	bcryptCost int,
) *RegisterService {
	return &RegisterService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		tokens:     tokens,
		sessions:   sessions,
		bcryptCost: bcryptCost,
	}
}

// Register bootstraps a tenant: business, head office, the default permission
// catalog, the default roles, full bindings for superadmin and admin, and the
// first user bound to superadmin. On success it opens the first session.
func (s *RegisterService) Register(ctx context.Context, req models.RegisterRequest, meta RequestMeta) (*models.RegisterResponse, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	// The pre-check only reads, so it runs outside the transaction.
	userTaken, err := s.userRepo.ExistsByEmail(ctx, req.User.Email)
	if err != nil {
		return nil, err
	}
	businessTaken, err := s.tenantRepo.ExistsByEmail(ctx, req.BusinessContact.Email)
	if err != nil {
		return nil, err
	}
	switch {
	case userTaken && businessTaken:
		return nil, ErrBothEmailsTaken
	case userTaken:
		return nil, ErrUserEmailTaken
	case businessTaken:
		return nil, ErrBusinessEmailTaken
	}

	hash, err := auth.HashPassword(req.User.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	result, err := s.tenantRepo.Bootstrap(ctx, repository.BootstrapInput{
		Business: models.Business{
			Name:        req.BusinessContact.Name,
			Email:       req.BusinessContact.Email,
			Phone:       req.BusinessContact.Phone,
			Industry:    req.BusinessData.Industry,
			RegStatus:   req.BusinessData.RegStatus,
			Size:        req.BusinessData.Size,
			Description: req.BusinessData.Description,
		},
		LocationName:    headOfficeName,
		Address:         req.BusinessContact.Address,
		PermissionNames: models.DefaultPermissionNames(),
		RoleNames:       models.DefaultRoleNames(),
		FullGrantRoles:  []models.RoleName{models.RoleSuperAdmin, models.RoleAdmin},
		AdminRole:       models.RoleSuperAdmin,
		User: models.User{
			FirstName: req.User.FirstName,
			LastName:  req.User.LastName,
			Email:     req.User.Email,
			Password:  hash,
		},
	})
	if err != nil {
		s.auditRegister(ctx, req.User.Email, meta, err)
		return nil, err
	}

	identity := models.Identity{
		FirstName:  result.User.FirstName,
		LastName:   result.User.LastName,
		Email:      result.User.Email,
		RoleName:   result.AdminRole.Name,
		BusinessID: result.Business.ID,
	}

	access, err := s.tokens.IssueAccessToken(identity)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(identity)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Put(ctx, refresh, identity.Email, s.tokens.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	s.auditRegister(ctx, req.User.Email, meta, nil)

	return &models.RegisterResponse{
		Auth:       true,
		BusinessID: result.Business.ID,
		Access:     access,
		Refresh:    refresh,
		Data:       identity,
	}, nil
}

func validateRegisterRequest(req models.RegisterRequest) error {
	if req.User.FirstName == "" || req.User.LastName == "" ||
		req.User.Email == "" || req.User.Password == "" ||
		req.BusinessContact.Name == "" || req.BusinessContact.Email == "" {
		return ErrMissingFields
	}
	return nil
}

func (s *RegisterService) auditRegister(ctx context.Context, email string, meta RequestMeta, cause error) {
	entry := &models.AuditLog{
		Email:     email,
		Action:    models.AuditActionRegister,
		Status:    "success",
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}
	if cause != nil {
		entry.Status = "failure"
		entry.ErrorMessage = cause.Error()
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Msg("Failed to write audit log")
	}
}
